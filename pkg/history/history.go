// Package history persists a record of contact syncs keyed by profile URL.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/codeGROOVE-dev/sfcache"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/localfs"

	"github.com/codeGROOVE-dev/rolodex/pkg/httpcache"
	"github.com/codeGROOVE-dev/rolodex/pkg/profile"
)

// retention is how long sync records are kept. Effectively forever.
const retention = 10 * 365 * 24 * time.Hour

// Record is one sync event for a profile.
type Record struct {
	ProfileURL string                                    `json:"profileUrl"`
	Name       string                                    `json:"name"`
	SyncedAt   time.Time                                 `json:"syncedAt"`
	Fields     map[profile.FieldName]string              `json:"fields,omitempty"`
	Approved   []profile.FieldName                       `json:"approved,omitempty"`
	Scores     map[profile.FieldName]profile.Confidence `json:"scores,omitempty"`
}

// Store persists sync records on disk.
type Store struct {
	cache  *sfcache.TieredCache[string, []byte]
	logger *slog.Logger
}

// New creates a Store persisting under ~/.cache/rolodex/history.
func New(logger *slog.Logger) (*Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return NewWithPath(filepath.Join(cacheDir, "rolodex", "history"), logger)
}

// NewWithPath creates a Store persisting at the given path.
func NewWithPath(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	persist, err := localfs.New[string, []byte]("rolodex-history", path)
	if err != nil {
		return nil, fmt.Errorf("create persistence layer: %w", err)
	}

	tc, err := sfcache.NewTiered[string, []byte](persist, sfcache.TTL(retention))
	if err != nil {
		return nil, fmt.Errorf("create history store: %w", err)
	}

	return &Store{cache: tc, logger: logger}, nil
}

// Close flushes and closes the underlying store.
func (s *Store) Close() error {
	return s.cache.Close()
}

// Save records a sync event, replacing any prior record for the same
// profile URL.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if rec.ProfileURL == "" {
		return fmt.Errorf("record has no profile URL: %w", profile.ErrProfileNotFound)
	}
	if rec.SyncedAt.IsZero() {
		rec.SyncedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal sync record: %w", err)
	}

	if err := s.cache.Set(ctx, httpcache.URLToKey(rec.ProfileURL), data, retention); err != nil {
		return fmt.Errorf("persist sync record: %w", err)
	}

	s.logger.DebugContext(ctx, "sync recorded", "url", rec.ProfileURL, "name", rec.Name)
	return nil
}

// Lookup returns the last sync record for a profile URL, if any.
func (s *Store) Lookup(ctx context.Context, profileURL string) (Record, bool, error) {
	data, found, err := s.cache.Get(ctx, httpcache.URLToKey(profileURL))
	if err != nil {
		return Record{}, false, fmt.Errorf("read sync record: %w", err)
	}
	if !found {
		return Record{}, false, nil
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("unmarshal sync record: %w", err)
	}
	return rec, true, nil
}

// FromExtracted builds a sync record from an extraction result.
func FromExtracted(e *profile.Extracted, profileURL, name string, now time.Time) Record {
	rec := Record{
		ProfileURL: profileURL,
		Name:       name,
		SyncedAt:   now.UTC(),
		Fields:     e.Values(),
		Scores:     make(map[profile.FieldName]profile.Confidence),
	}
	for field := range rec.Fields {
		rec.Scores[field] = e.Confidence(field)
	}
	for _, item := range e.FieldsNeedingApproval() {
		rec.Approved = append(rec.Approved, item.Field)
	}
	return rec
}
