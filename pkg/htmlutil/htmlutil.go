// Package htmlutil provides small HTML helpers for profile page parsing.
package htmlutil

import (
	"html"
	"regexp"
	"strings"
)

// Pre-compiled patterns for meta extraction.
var (
	titlePattern      = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	ogTitlePattern    = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`)
	firstH1Pattern    = regexp.MustCompile(`(?i)<h1[^>]*>([^<]+)</h1>`)
	descPattern       = regexp.MustCompile(`(?i)<meta[^>]+name=["']description["'][^>]+content=["']([^"']+)["']`)
	ogDescPattern     = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`)
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// siteSuffixPattern strips the site name profile pages append to their
// titles, e.g. "Jane Doe - CEO | LinkedIn".
var siteSuffixPattern = regexp.MustCompile(`\s*[|\x{2013}-]\s*LinkedIn\s*$`)

// Title extracts a page title, preferring the <title> tag, then og:title,
// then the first <h1>. Site-name suffixes are stripped.
func Title(htmlContent string) string {
	for _, pattern := range []*regexp.Regexp{titlePattern, ogTitlePattern, firstH1Pattern} {
		if m := pattern.FindStringSubmatch(htmlContent); len(m) > 1 {
			title := strings.TrimSpace(html.UnescapeString(m[1]))
			return strings.TrimSpace(siteSuffixPattern.ReplaceAllString(title, ""))
		}
	}
	return ""
}

// Description extracts the meta description, falling back to og:description.
func Description(htmlContent string) string {
	for _, pattern := range []*regexp.Regexp{descPattern, ogDescPattern} {
		if m := pattern.FindStringSubmatch(htmlContent); len(m) > 1 {
			return strings.TrimSpace(html.UnescapeString(m[1]))
		}
	}
	return ""
}

// StripTags removes HTML tags and collapses whitespace.
func StripTags(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}
	content := tagPattern.ReplaceAllString(htmlContent, " ")
	content = html.UnescapeString(content)
	return strings.TrimSpace(multiSpacePattern.ReplaceAllString(content, " "))
}
