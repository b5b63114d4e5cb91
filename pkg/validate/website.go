package validate

import (
	"net/url"
	"regexp"
	"strings"
)

// eventPathPatterns mark URL paths that point at an event or meeting
// rather than a durable personal site. The last pattern catches the short
// random-looking slugs scheduling tools append.
var eventPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/event/`),
	regexp.MustCompile(`/meeting/`),
	regexp.MustCompile(`/webinar/`),
	regexp.MustCompile(`/register`),
	regexp.MustCompile(`/invite/`),
	regexp.MustCompile(`/join/`),
	regexp.MustCompile(`/[a-z0-9]{8,12}$`),
}

// personalDomainPatterns upgrade a website to High confidence: a bare
// name.tld on a common TLD, or an explicitly personal path.
var personalDomainPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(www\.)?[a-z0-9-]+\.(com|org|net|io|co|me|dev|tech|ai)$`),
	regexp.MustCompile(`(?i)portfolio`),
	regexp.MustCompile(`(?i)personal`),
	regexp.MustCompile(`(?i)blog`),
}

// Website scores a raw website candidate using the default validator.
func Website(raw string) Result { return defaultValidator.Website(raw) }

// WebsiteStrict applies the fill-time website gate using the default validator.
func WebsiteStrict(raw string) bool { return defaultValidator.WebsiteStrict(raw) }

// Website scores a raw website candidate.
//
// Social platforms are rejected outright. Event and meeting platforms stay
// valid but are capped at Low - the link works today but may be a
// temporary registration page. Everything else defaults to Medium, with
// personal-looking domains upgraded to High.
func (v *Validator) Website(raw string) Result {
	if raw == "" {
		return Result{}
	}

	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return Result{Reason: "Invalid URL format"}
	}
	hostname := strings.ToLower(u.Hostname())
	pathname := strings.ToLower(u.EscapedPath())

	if containsAny(hostname, v.lists.SocialPlatforms) {
		return Result{Reason: "Social media platform"}
	}
	if containsAny(hostname, v.lists.EventPlatforms) {
		return Result{
			Valid:      true,
			Confidence: low,
			Reason:     "Event/meeting platform - may be temporary",
			Cleaned:    raw,
		}
	}
	for _, pattern := range eventPathPatterns {
		if pattern.MatchString(pathname) {
			return Result{
				Valid:      true,
				Confidence: low,
				Reason:     "Appears to be an event/meeting link",
				Cleaned:    raw,
			}
		}
	}

	confidence := medium
	for _, pattern := range personalDomainPatterns {
		if pattern.MatchString(hostname) || pattern.MatchString(pathname) {
			confidence = high
			break
		}
	}

	return Result{Valid: true, Confidence: confidence, Cleaned: raw}
}

// WebsiteStrict applies the fill-time website gate. Shortlinks (bit.ly,
// lnkd.in, ...) are rejected even when the scoring path would pass them:
// a shortened URL can never be verified as a personal site.
func (v *Validator) WebsiteStrict(raw string) bool {
	if raw == "" {
		return false
	}
	if containsAny(strings.ToLower(raw), v.lists.URLStrictBlocklist) {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "https" || u.Scheme == "http"
}
