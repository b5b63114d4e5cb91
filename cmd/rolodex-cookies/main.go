// Command rolodex-cookies diagnoses session cookie availability. It
// checks each cookie source in the order the extractor consults them and
// reports which essential cookies were found, optionally verifying the
// session by fetching a profile.
//
// Usage:
//
//	rolodex-cookies
//	rolodex-cookies -url https://www.linkedin.com/in/johndoe
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/codeGROOVE-dev/rolodex/pkg/auth"
	"github.com/codeGROOVE-dev/rolodex/pkg/linkedin"
	"github.com/codeGROOVE-dev/rolodex/pkg/profile"
)

func main() {
	profileURL := flag.String("url", "", "verify the session by fetching this profile")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logLevel := slog.LevelWarn
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx := context.Background()

	sources := []struct {
		name string
		src  auth.Source
	}{
		{"environment", auth.EnvSource{}},
		{"browser", auth.NewBrowserSource(logger)},
	}

	var chosen map[string]string
	for _, s := range sources {
		cookies, err := s.src.Cookies(ctx)
		if err != nil {
			fmt.Printf("%-12s error: %v\n", s.name, err)
			continue
		}
		if len(cookies) == 0 {
			fmt.Printf("%-12s no cookies\n", s.name)
			continue
		}

		fmt.Printf("%-12s %d cookie(s)\n", s.name, len(cookies))
		for _, name := range auth.EssentialCookies() {
			if _, ok := cookies[name]; ok {
				fmt.Printf("  found   %s\n", name)
			} else {
				fmt.Printf("  missing %s\n", name)
			}
		}
		if chosen == nil {
			chosen = cookies
		}
	}

	if chosen == nil {
		fmt.Println("\nNo session cookies found in any source.")
		fmt.Println("Sign in with a supported browser, or set:")
		for _, envVar := range auth.EnvVars() {
			fmt.Printf("  export %s=...\n", envVar)
		}
		os.Exit(1)
	}

	if *profileURL == "" {
		return
	}

	fmt.Printf("\nVerifying session against %s\n", *profileURL)
	client, err := linkedin.New(ctx, linkedin.WithCookies(chosen), linkedin.WithLogger(logger))
	if err != nil {
		fmt.Printf("session setup failed: %v\n", err)
		os.Exit(1)
	}

	extracted, err := client.Fetch(ctx, *profileURL)
	if err != nil {
		fmt.Printf("fetch failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("session OK: extracted %q with %d field(s)\n",
		extracted.Field(profile.Name), len(extracted.Values()))
}
