package linkedin

import (
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/codeGROOVE-dev/rolodex/pkg/profile"
)

// Profile pages embed HTML-encoded JSON inside <code> tags. The embedded
// records carry the canonical name, headline, and position data.
var (
	codeBlockPattern = regexp.MustCompile(`(?s)<code[^>]*>(.*?)</code>`)
	publicIDPattern  = regexp.MustCompile(`/in/([^/?#]+)`)
)

// seedFromEmbeddedData fills fields from the structured JSON embedded in
// the page. Seeds only improve what the markup pass found; existing
// values of equal or higher confidence are left alone.
func seedFromEmbeddedData(extracted *profile.Extracted, content, profileURL string, logger *slog.Logger) {
	section := findProfileSection(content, publicIdentifierFromURL(profileURL))
	if section == "" {
		return
	}

	first := unescapeJSON(extractJSONField(section, "firstName"))
	last := unescapeJSON(extractJSONField(section, "lastName"))
	if first != "" {
		name := first
		if last != "" {
			name += " " + last
		}
		extracted.SetField(profile.Name, name, profile.High)
	}

	if headline := unescapeJSON(extractJSONField(section, "headline")); headline != "" {
		extracted.SetField(profile.Title, headline, profile.Medium)
	}
	if loc := unescapeJSON(extractJSONField(section, "geoLocationName")); loc != "" {
		extracted.SetField(profile.Location, loc, profile.High)
	}
	if company := unescapeJSON(extractJSONField(section, "companyName")); company != "" {
		extracted.SetField(profile.CurrentEmployer, company, profile.High)
	}

	if logger != nil {
		logger.Debug("seeded fields from embedded data", "name", first != "", "company", extractJSONField(section, "companyName") != "")
	}
}

// findProfileSection locates the embedded JSON record for the requested
// profile. An exact publicIdentifier match wins; otherwise the first
// profile record is used, since the page was fetched for this URL.
func findProfileSection(content, target string) string {
	var fallback string
	for _, code := range extractCodeBlocks(content) {
		if !strings.Contains(code, `"publicIdentifier":`) {
			continue
		}
		if target != "" && strings.Contains(code, fmt.Sprintf(`"publicIdentifier":%q`, target)) {
			return windowAround(code, fmt.Sprintf(`"publicIdentifier":%q`, target))
		}
		if fallback == "" {
			fallback = code
		}
	}
	return fallback
}

// windowAround extracts a slice of text centered on the first occurrence
// of search, keeping field lookups scoped to one profile record.
func windowAround(s, search string) string {
	idx := strings.Index(s, search)
	if idx == -1 {
		return s
	}
	start := max(0, idx-5000)
	end := min(len(s), idx+5000)
	return s[start:end]
}

// extractCodeBlocks extracts and HTML-decodes content from <code> tags.
func extractCodeBlocks(s string) []string {
	matches := codeBlockPattern.FindAllStringSubmatch(s, -1)
	var blocks []string
	for _, m := range matches {
		if len(m) > 1 {
			blocks = append(blocks, html.UnescapeString(m[1]))
		}
	}
	return blocks
}

// extractJSONField extracts a field value from a JSON string.
func extractJSONField(s, field string) string {
	re := regexp.MustCompile(fmt.Sprintf(`%q:"([^"]*)"`, field))
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}

func unescapeJSON(s string) string {
	if s == "" {
		return ""
	}
	var unescaped string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &unescaped); err != nil {
		return s
	}
	return unescaped
}

// publicIdentifierFromURL extracts the public identifier slug from a
// profile URL. Vanity URLs may be percent-encoded.
func publicIdentifierFromURL(s string) string {
	m := publicIDPattern.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	slug := m[1]
	if strings.Contains(slug, "%") {
		if decoded, err := url.QueryUnescape(slug); err == nil {
			return decoded
		}
	}
	return slug
}
