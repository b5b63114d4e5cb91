package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/codeGROOVE-dev/rolodex/pkg/profile"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewWithPath(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewWithPath() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return store
}

func TestSaveAndLookup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	rec := Record{
		ProfileURL: "https://www.linkedin.com/in/janedoe",
		Name:       "Jane Doe",
		SyncedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Fields: map[profile.FieldName]string{
			profile.Name:  "Jane Doe",
			profile.Email: "jane.doe@gmail.com",
		},
		Approved: []profile.FieldName{profile.Phone},
		Scores: map[profile.FieldName]profile.Confidence{
			profile.Name:  profile.High,
			profile.Email: profile.High,
		},
	}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, found, err := store.Lookup(ctx, "https://www.linkedin.com/in/janedoe")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !found {
		t.Fatal("Lookup() found = false, want the saved record")
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("Lookup() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveReplacesPriorRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	url := "https://www.linkedin.com/in/janedoe"

	for _, name := range []string{"Jane Doe", "Jane van der Doe"} {
		if err := store.Save(ctx, Record{ProfileURL: url, Name: name, SyncedAt: time.Now().UTC()}); err != nil {
			t.Fatalf("Save(%q) error = %v", name, err)
		}
	}

	got, found, err := store.Lookup(ctx, url)
	if err != nil || !found {
		t.Fatalf("Lookup() = %v, %v", found, err)
	}
	if got.Name != "Jane van der Doe" {
		t.Errorf("Name = %q, want the later record", got.Name)
	}
}

func TestLookupMiss(t *testing.T) {
	store := newTestStore(t)

	_, found, err := store.Lookup(context.Background(), "https://www.linkedin.com/in/never-synced")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if found {
		t.Error("Lookup() found = true for an unsynced profile")
	}
}

func TestSaveRequiresProfileURL(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(context.Background(), Record{Name: "Jane Doe"}); err == nil {
		t.Error("Save() = nil error for a record without a profile URL")
	}
}

func TestFromExtracted(t *testing.T) {
	e := profile.New()
	e.SetField(profile.Name, "Jane Doe", profile.High)
	e.SetField(profile.Email, "jane.doe@gmail.com", profile.High)
	e.SetField(profile.Phone, "4155550134", profile.Medium)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := FromExtracted(e, "https://www.linkedin.com/in/janedoe", "Jane Doe", now)

	if rec.ProfileURL != "https://www.linkedin.com/in/janedoe" || rec.Name != "Jane Doe" {
		t.Errorf("record identity = %q / %q", rec.ProfileURL, rec.Name)
	}
	if !rec.SyncedAt.Equal(now) {
		t.Errorf("SyncedAt = %v, want %v", rec.SyncedAt, now)
	}
	if rec.Fields[profile.Phone] != "4155550134" {
		t.Errorf("Fields = %v, want the phone value carried over", rec.Fields)
	}
	if rec.Scores[profile.Phone] != profile.Medium {
		t.Errorf("Scores[phone] = %v, want Medium", rec.Scores[profile.Phone])
	}
	if len(rec.Approved) != 1 || rec.Approved[0] != profile.Phone {
		t.Errorf("Approved = %v, want the Medium-confidence phone only", rec.Approved)
	}
}
