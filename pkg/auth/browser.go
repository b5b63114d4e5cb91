package auth

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // Import all browser cookie stores
	"github.com/browserutils/kooky/browser/chrome"
	"github.com/browserutils/kooky/browser/firefox"
)

// BrowserSource reads session cookies from browser cookie stores.
type BrowserSource struct {
	logger *slog.Logger
}

// NewBrowserSource creates a new browser cookie source.
func NewBrowserSource(logger *slog.Logger) *BrowserSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowserSource{logger: logger}
}

// Cookies returns session cookies from browser stores.
func (s *BrowserSource) Cookies(ctx context.Context) (map[string]string, error) {
	s.logger.DebugContext(ctx, "reading browser cookies", "domain", Domain)

	// Try Zen Browser first (Firefox-based, not auto-detected by kooky)
	cookies := s.tryZenBrowser(ctx)
	if len(cookies) > 0 {
		return cookies, nil
	}

	// Try Chrome Canary (not auto-detected by kooky)
	cookies = s.tryChromeCanary(ctx)
	if len(cookies) > 0 {
		return cookies, nil
	}

	// Try Firefox profiles (including Developer Edition)
	cookies = s.tryFirefoxProfiles(ctx)
	if len(cookies) > 0 {
		return cookies, nil
	}

	// Fall back to kooky's automatic browser detection
	kookies, err := kooky.ReadCookies(ctx, kooky.Valid, kooky.DomainHasSuffix(Domain))
	if err != nil {
		s.logger.Debug("failed to read browser cookies", "error", err)
		return nil, nil //nolint:nilnil // failed browser read is not a fatal error
	}

	if len(kookies) == 0 {
		return nil, nil //nolint:nilnil // no browser cookies is not an error
	}

	return s.filterEssentialCookies(kookies), nil
}

// tryZenBrowser attempts to read cookies from Zen Browser profiles (Firefox-based).
func (s *BrowserSource) tryZenBrowser(ctx context.Context) map[string]string {
	home := os.Getenv("HOME")
	if home == "" {
		return nil
	}

	zenDir := filepath.Join(home, "Library", "Application Support", "zen", "Profiles")
	pattern := filepath.Join(zenDir, "*", "cookies.sqlite")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return nil
	}

	for _, f := range matches {
		kookies, err := firefox.ReadCookies(ctx, f, kooky.Valid, kooky.DomainHasSuffix(Domain))
		if err != nil {
			s.logger.Debug("failed to read Zen Browser cookies",
				"profile", filepath.Base(filepath.Dir(f)),
				"error", err)
			continue
		}
		if len(kookies) > 0 {
			s.logger.Debug("found Zen Browser cookies",
				"profile", filepath.Base(filepath.Dir(f)),
				"count", len(kookies))
			return s.filterEssentialCookies(kookies)
		}
	}

	return nil
}

// tryChromeCanary attempts to read cookies from Chrome Canary profiles.
func (s *BrowserSource) tryChromeCanary(ctx context.Context) map[string]string {
	home := os.Getenv("HOME")
	if home == "" {
		return nil
	}

	canaryDir := filepath.Join(home, "Library", "Application Support", "Google", "Chrome Canary")
	profiles := []string{"Default", "Profile 1", "Profile 2", "Profile 3", "Profile 4", "Profile 5"}

	for _, profile := range profiles {
		cookiesFile := filepath.Join(canaryDir, profile, "Cookies")
		if _, err := os.Stat(cookiesFile); err != nil {
			continue
		}

		kookies, err := chrome.ReadCookies(ctx, cookiesFile, kooky.Valid, kooky.DomainHasSuffix(Domain))
		if err != nil {
			// Check for encryption errors and warn user
			if strings.Contains(err.Error(), "encryption") || strings.Contains(err.Error(), "decrypt") {
				s.logger.Warn("Chrome Canary cookies exist but cannot be decrypted",
					"profile", profile,
					"hint", "try using Firefox, Zen Browser, or set cookies via environment variables")
			} else {
				s.logger.Debug("failed to read Chrome Canary cookies", "profile", profile, "error", err)
			}
			continue
		}

		if len(kookies) > 0 {
			s.logger.Debug("found Chrome Canary cookies", "profile", profile, "count", len(kookies))
			return s.filterEssentialCookies(kookies)
		}
	}

	return nil
}

// tryFirefoxProfiles attempts to read cookies from Firefox profiles.
func (s *BrowserSource) tryFirefoxProfiles(ctx context.Context) map[string]string {
	home := os.Getenv("HOME")
	if home == "" {
		return nil
	}

	dir := filepath.Join(home, "Library", "Application Support", "Firefox", "Profiles")
	pattern := filepath.Join(dir, "*", "cookies.sqlite")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return nil
	}

	for _, f := range matches {
		kookies, err := firefox.ReadCookies(ctx, f, kooky.Valid, kooky.DomainHasSuffix(Domain))
		if err == nil && len(kookies) > 0 {
			s.logger.Debug("found Firefox cookies",
				"profile", filepath.Base(filepath.Dir(f)),
				"count", len(kookies))
			return s.filterEssentialCookies(kookies)
		}
	}

	return nil
}

// filterEssentialCookies extracts only the session cookies the fetcher needs.
func (s *BrowserSource) filterEssentialCookies(kookies []*kooky.Cookie) map[string]string {
	essentialSet := make(map[string]bool)
	for _, name := range essentialCookies {
		essentialSet[name] = true
	}

	cookies := make(map[string]string)
	for _, c := range kookies {
		if essentialSet[c.Name] {
			cookies[c.Name] = c.Value
		}
	}

	// Log which essential cookies were found vs missing
	var found, missing []string
	for _, name := range essentialCookies {
		if _, ok := cookies[name]; ok {
			found = append(found, name)
		} else {
			missing = append(missing, name)
		}
	}

	if len(found) > 0 {
		s.logger.Info("browser cookies found", "keys", found)
	}
	if len(missing) > 0 {
		s.logger.Info("browser cookies missing", "keys", missing)
	}

	return cookies
}
