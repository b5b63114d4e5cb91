// Package validate classifies raw candidate strings as contact fields.
//
// Each validator is pure and total: given any string it returns a Result,
// never an error. Scoring validators attach a confidence level for the
// merge pipeline; the *Strict variants are boolean gates used at fill time
// and reject a wider set of candidates. Both paths share one reject set
// for timestamps and garbage digit runs so they cannot drift apart.
package validate

import (
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/rolodex/pkg/profile"
)

// Result is the outcome of one validator call. Produced fresh per
// candidate; only its value and confidence are folded into a profile.
type Result struct {
	Valid      bool               `json:"isValid"`
	Confidence profile.Confidence `json:"confidence"`
	Reason     string             `json:"reason,omitempty"`
	Cleaned    string             `json:"cleaned,omitempty"` // normalized value when valid
}

// Lists holds the lookup tables the validators consult. Injectable so
// tests can run against alternate lists.
type Lists struct {
	// EmailBlocklist marks system mailboxes: any address containing one
	// of these substrings is not a person.
	EmailBlocklist []string
	// EmailStrictBlocklist is the fill-time email gate's blocklist.
	EmailStrictBlocklist []string
	// SocialPlatforms are hostnames that are never personal websites.
	SocialPlatforms []string
	// EventPlatforms are scheduling/meeting hosts; links to them are
	// valid but likely temporary.
	EventPlatforms []string
	// URLStrictBlocklist is the fill-time website gate's blocklist,
	// including URL shorteners that can never be verified as personal.
	URLStrictBlocklist []string
	// PersonalProviders are consumer mail domains.
	PersonalProviders []string
}

// DefaultLists returns the standard lookup tables.
func DefaultLists() Lists {
	return Lists{
		EmailBlocklist: []string{
			"noreply", "no-reply", "donotreply", "support", "help",
			"info", "admin", "notification", "system",
		},
		EmailStrictBlocklist: []string{
			"noreply", "support", "help", "info", "no-reply",
			"notification", "linkedin.com", "example.com", "test.com",
		},
		SocialPlatforms: []string{
			"linkedin.com", "facebook.com", "twitter.com", "instagram.com",
			"youtube.com", "tiktok.com", "snapchat.com", "pinterest.com",
			"reddit.com", "medium.com", "dev.to", "github.com",
		},
		EventPlatforms: []string{
			"lu.ma", "calendly.com", "eventbrite.com", "meetup.com",
			"zoom.us", "teams.microsoft.com", "whereby.com", "meet.google.com",
			"crowdcast.io", "hopin.com", "airmeet.com", "bizzabo.com",
			"cvent.com", "whova.com", "accelevents.com", "hubilo.com",
		},
		URLStrictBlocklist: []string{
			"linkedin.com", "lnkd.in",
			"facebook.com", "twitter.com", "instagram.com", "youtube.com",
			"tiktok.com", "snapchat.com",
			"bit.ly", "tinyurl.com", "ow.ly", "buff.ly",
			"calendly.com", "lu.ma", "eventbrite.com", "meetup.com", "zoom.us",
			"teams.microsoft.com", "whereby.com", "meet.google.com",
		},
		PersonalProviders: []string{
			"gmail.com", "outlook.com", "yahoo.com", "hotmail.com",
		},
	}
}

// Validator applies the field validators with a fixed set of lists and a
// clock for the timestamp guard.
type Validator struct {
	lists Lists
	now   func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithLists replaces the default lookup tables.
func WithLists(lists Lists) Option {
	return func(v *Validator) { v.lists = lists }
}

// WithNow replaces the clock used by the timestamp guard.
func WithNow(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{lists: DefaultLists(), now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultValidator = New()

// Local aliases keep the scoring tables readable.
const (
	low    = profile.Low
	medium = profile.Medium
	high   = profile.High
)

// millisecondsIn2000 is 2000-01-01T00:00:00Z as a Unix millisecond
// timestamp. Digit runs that decode to a plausible millisecond timestamp
// between then and ten years from now are IDs or dates, never phones.
const millisecondsIn2000 = 946684800000

const tenYears = 10 * 365 * 24 * time.Hour

// looksLikeTimestamp reports whether a digit run decodes to a plausible
// millisecond Unix timestamp. Page text is full of these and they must
// never be mistaken for phone numbers.
func looksLikeTimestamp(digits string, now time.Time) bool {
	if len(digits) < 13 {
		return false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return false
	}
	return n > millisecondsIn2000 && n < now.Add(tenYears).UnixMilli()
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
