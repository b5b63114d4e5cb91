// Command rolodex extracts contact fields from profile pages and prints
// them as JSON, ready for a Google Contacts sync.
//
// Usage:
//
//	rolodex https://www.linkedin.com/in/johndoe   # requires LINKEDIN_* env vars or browser cookies
//	rolodex -file saved-profile.html
//	rolodex -report https://www.linkedin.com/in/johndoe
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/rolodex/pkg/contact"
	"github.com/codeGROOVE-dev/rolodex/pkg/history"
	"github.com/codeGROOVE-dev/rolodex/pkg/httpcache"
	"github.com/codeGROOVE-dev/rolodex/pkg/linkedin"
	"github.com/codeGROOVE-dev/rolodex/pkg/profile"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	verbose := flag.Bool("v", false, "verbose logging (same as -debug)")
	noBrowser := flag.Bool("no-browser", false, "disable reading cookies from browser stores (enabled by default)")
	noCache := flag.Bool("no-cache", false, "disable HTTP caching (enabled by default with 7-day TTL)")
	cacheTTL := flag.Duration("cache-ttl", 7*24*time.Hour, "cache time-to-live (use 24h for testing)")
	file := flag.String("file", "", "extract from a saved HTML file instead of fetching")
	report := flag.Bool("report", false, "print the extraction report instead of the contact")
	noHistory := flag.Bool("no-history", false, "do not record the extraction in sync history")
	flag.Parse()

	if flag.NArg() < 1 && *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: rolodex [options] <profile-url>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nAuthentication:")
		fmt.Fprintln(os.Stderr, "  Browser cookies are read automatically. To use environment")
		fmt.Fprintln(os.Stderr, "  variables instead, set:")
		fmt.Fprintln(os.Stderr, "    export LINKEDIN_LI_AT=\"your-li_at-value\"")
		fmt.Fprintln(os.Stderr, "    export LINKEDIN_JSESSIONID=\"your-jsessionid-value\"")
		fmt.Fprintln(os.Stderr, "    export LINKEDIN_LIDC=\"your-lidc-value\"")
		os.Exit(1)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	if *debug || *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx := context.Background()

	// Setup cache
	var httpCache *httpcache.Cache
	if !*noCache && *file == "" {
		var err error
		httpCache, err = httpcache.New(*cacheTTL)
		if err != nil {
			logger.Warn("failed to initialize cache, continuing without cache", "error", err)
		} else {
			defer func() {
				if err := httpCache.Close(); err != nil {
					logger.Warn("failed to close cache", "error", err)
				}
			}()
			logger.Debug("HTTP cache initialized", "ttl", cacheTTL.String())
		}
	}

	extracted, profileURL, err := run(ctx, logger, httpCache, *file, *noBrowser)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
	}

	now := time.Now()
	if !*noHistory {
		recordHistory(ctx, logger, extracted, profileURL, now)
	}

	var output any
	if *report {
		output = extracted.Report(now)
	} else {
		c := contact.FromExtracted(extracted, now)
		output = struct {
			Contact  contact.Contact        `json:"contact"`
			FillPlan []contact.FillItem     `json:"fillPlan"`
			Approval []profile.ApprovalItem `json:"needsApproval,omitempty"`
		}{
			Contact:  c,
			FillPlan: contact.FillPlan(c, extracted),
			Approval: extracted.FieldsNeedingApproval(),
		}
	}

	if err := outputJSON(output); err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	logger *slog.Logger,
	httpCache *httpcache.Cache,
	file string,
	noBrowser bool,
) (*profile.Extracted, string, error) {
	if file != "" {
		content, err := os.ReadFile(file) //nolint:gosec // path comes from the operator
		if err != nil {
			return nil, "", fmt.Errorf("read file: %w", err)
		}
		profileURL := ""
		if flag.NArg() > 0 {
			profileURL = linkedin.NormalizeURL(flag.Arg(0))
		}
		extracted, err := linkedin.ExtractFromHTML(ctx, string(content), profileURL, logger)
		return extracted, profileURL, err
	}

	input := flag.Arg(0)
	if !strings.Contains(input, "://") && strings.HasPrefix(input, "http") {
		return nil, "", fmt.Errorf("malformed URL: %q", input)
	}

	opts := []linkedin.Option{linkedin.WithLogger(logger)}
	if httpCache != nil {
		opts = append(opts, linkedin.WithCache(httpCache))
	}
	if noBrowser {
		opts = append(opts, linkedin.WithoutBrowser())
	}

	client, err := linkedin.New(ctx, opts...)
	if err != nil {
		return nil, "", err
	}

	profileURL := linkedin.NormalizeURL(input)
	extracted, err := client.Fetch(ctx, profileURL)
	return extracted, profileURL, err
}

// recordHistory is best effort; extraction output matters more than the
// bookkeeping.
func recordHistory(ctx context.Context, logger *slog.Logger, extracted *profile.Extracted, profileURL string, now time.Time) {
	if profileURL == "" {
		return
	}
	store, err := history.New(logger)
	if err != nil {
		logger.Warn("failed to open sync history", "error", err)
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close sync history", "error", err)
		}
	}()

	rec := history.FromExtracted(extracted, profileURL, extracted.Field(profile.Name), now)
	if err := store.Save(ctx, rec); err != nil {
		logger.Warn("failed to record sync history", "error", err)
	}
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
