// Package headline decomposes profile headlines into title and employer.
package headline

import (
	"regexp"
	"strings"

	"github.com/codeGROOVE-dev/rolodex/pkg/profile"
)

// Parsed is the result of decomposing a headline.
type Parsed struct {
	Title      string
	Company    string
	Confidence profile.Confidence
}

// separatorPatterns split "<title> <sep> <company>" headlines.
// First match wins; order matters because "@" and "at" bind the employer
// more strongly than the generic pipe and hyphen separators.
var separatorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(.+?)\s+@\s+(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s+at\s+(.+)$`),
	regexp.MustCompile(`^(.+?)\s*\|\s*(.+)$`),
	regexp.MustCompile(`^(.+?)\s*-\s*(.+)$`),
}

// Parse splits a headline into title and company.
//
// When a separator pattern matches, both parts come back at High
// confidence. When none does, the whole headline becomes the title at
// Medium confidence with no company.
func Parse(headline string) Parsed {
	headline = strings.TrimSpace(headline)
	if headline == "" {
		return Parsed{}
	}

	for _, pattern := range separatorPatterns {
		if m := pattern.FindStringSubmatch(headline); m != nil {
			return Parsed{
				Title:      strings.TrimSpace(m[1]),
				Company:    strings.TrimSpace(m[2]),
				Confidence: profile.High,
			}
		}
	}

	return Parsed{Title: headline, Confidence: profile.Medium}
}

// firstSegmentPattern keeps the text before the first pipe or bullet.
// Only those characters mark a role boundary: a hyphen inside a role name
// ("Co-Founder") is part of the role, never a separator.
var (
	firstSegmentPattern = regexp.MustCompile(`^([^|•]+?)(\s*[|•]|$)`)
	roleEmployerPattern = regexp.MustCompile(`(?i)^(.+?)\s+(?:at|@)\s+(.+)$`)
)

// PrimaryRole extracts the first role from a compound headline such as
// "CISO | CIO | Investor" or "Co-Founder & Staff Engineer at Antidote
// Health". The segment before the first pipe or bullet is kept; if that
// segment reads "<role> at <employer>", only the role is returned, with
// the employer alongside.
func PrimaryRole(headline string) (role, employer string) {
	headline = strings.TrimSpace(headline)
	if headline == "" {
		return "", ""
	}

	role = headline
	if m := firstSegmentPattern.FindStringSubmatch(headline); m != nil {
		role = strings.TrimSpace(m[1])
	}

	if m := roleEmployerPattern.FindStringSubmatch(role); m != nil {
		role = strings.TrimSpace(m[1])
		employer = strings.TrimSpace(m[2])
	}

	return role, employer
}

// employerStopRunes end an employer name pulled out of free-form headline
// text: a dash, bullet, pipe, or comma means the employer phrase is over.
var employerFromTextPattern = regexp.MustCompile(`(?i)(?:\bat|@)\s+([^-–—•|,]+)`)

// CompanyFromText pulls an employer name out of free-form headline text,
// used as a fallback when no structured employer was found. Phrases like
// "of my organization" are noise, not employers.
func CompanyFromText(text string) string {
	m := employerFromTextPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	company := strings.TrimSpace(m[1])
	lower := strings.ToLower(company)
	if strings.Contains(lower, "organization") || len(company) <= 2 {
		return ""
	}
	return company
}
