package validate

import (
	"regexp"
	"strings"
)

// emailPattern is the standard local@domain.tld shape check: the domain
// must contain a dot and end in a TLD of at least two letters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email scores a raw email candidate using the default validator.
func Email(raw string) Result { return defaultValidator.Email(raw) }

// EmailStrict applies the fill-time email gate using the default validator.
func EmailStrict(raw string) bool { return defaultValidator.EmailStrict(raw) }

// Email scores a raw email candidate.
//
// The blocklist is the real filter: addresses containing a system-mailbox
// marker (noreply, support, ...) are rejected outright. Anything that
// passes the blocklist and the shape check scores High - a syntactically
// valid personal address needs no further review.
func (v *Validator) Email(raw string) Result {
	if raw == "" {
		return Result{}
	}

	lower := strings.ToLower(raw)
	if containsAny(lower, v.lists.EmailBlocklist) {
		return Result{Reason: "System/non-personal email"}
	}
	if !emailPattern.MatchString(raw) {
		return Result{Reason: "Invalid email format"}
	}

	domain := lower[strings.LastIndex(lower, "@")+1:]
	confidence := high
	switch {
	case containsList(v.lists.PersonalProviders, domain):
		confidence = high
	case !strings.Contains(domain, "example") && !strings.Contains(domain, "test"):
		confidence = high
	default:
		confidence = medium
	}

	return Result{Valid: true, Confidence: confidence, Cleaned: raw}
}

// EmailStrict applies the fill-time email gate. Its blocklist additionally
// covers linkedin.com and placeholder domains.
func (v *Validator) EmailStrict(raw string) bool {
	if raw == "" {
		return false
	}
	if containsAny(strings.ToLower(raw), v.lists.EmailStrictBlocklist) {
		return false
	}
	return emailPattern.MatchString(raw)
}

func containsList(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
