package validate

import (
	"testing"

	"github.com/codeGROOVE-dev/rolodex/pkg/profile"
)

func TestWebsite(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name   string
		raw    string
		valid  bool
		conf   profile.Confidence
		reason string
	}{
		{name: "empty", raw: "", valid: false},
		{name: "not a url", raw: "://nope", valid: false, reason: "Invalid URL format"},
		{name: "linkedin rejected", raw: "https://www.linkedin.com/in/janedoe", valid: false, reason: "Social media platform"},
		{name: "facebook rejected", raw: "https://facebook.com/janedoe", valid: false, reason: "Social media platform"},
		{name: "github rejected", raw: "https://github.com/janedoe", valid: false, reason: "Social media platform"},
		{
			name: "calendly capped at low", raw: "https://calendly.com/mennyb/30min",
			valid: true, conf: profile.Low, reason: "Event/meeting platform - may be temporary",
		},
		{
			name: "luma capped at low", raw: "https://lu.ma/abc",
			valid: true, conf: profile.Low, reason: "Event/meeting platform - may be temporary",
		},
		{
			name: "event path", raw: "https://acme.org/event/spring-gala",
			valid: true, conf: profile.Low, reason: "Appears to be an event/meeting link",
		},
		{
			name: "register path", raw: "https://acme.org/register",
			valid: true, conf: profile.Low, reason: "Appears to be an event/meeting link",
		},
		{
			name: "short random slug", raw: "https://acme.org/x7k2p9qw3f",
			valid: true, conf: profile.Low, reason: "Appears to be an event/meeting link",
		},
		{name: "personal domain", raw: "https://janedoe.dev/", valid: true, conf: profile.High},
		{name: "bare com domain", raw: "https://janedoe.com", valid: true, conf: profile.High},
		{name: "portfolio path", raw: "https://sites.example.co.uk/my-portfolio", valid: true, conf: profile.High},
		{name: "plain site stays medium", raw: "https://research.university.ac.uk/people/jane", valid: true, conf: profile.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Website(tt.raw)
			if got.Valid != tt.valid || got.Confidence != tt.conf || got.Reason != tt.reason {
				t.Errorf("Website(%q) = %+v, want valid=%v conf=%v reason=%q",
					tt.raw, got, tt.valid, tt.conf, tt.reason)
			}
		})
	}
}

func TestWebsiteStrict(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "empty", raw: "", want: false},
		{name: "personal site", raw: "https://janedoe.dev", want: true},
		{name: "http allowed", raw: "http://janedoe.dev", want: true},
		{name: "lnkd shortlink rejected", raw: "https://lnkd.in/gmZZ3vrP", want: false},
		{name: "bitly rejected", raw: "https://bit.ly/3xYz", want: false},
		{name: "tinyurl rejected", raw: "https://tinyurl.com/abc", want: false},
		{name: "linkedin rejected", raw: "https://www.linkedin.com/in/janedoe", want: false},
		{name: "calendly rejected", raw: "https://calendly.com/mennyb/30min", want: false},
		{name: "no scheme rejected", raw: "janedoe.dev", want: false},
		{name: "ftp rejected", raw: "ftp://janedoe.dev/file", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.WebsiteStrict(tt.raw); got != tt.want {
				t.Errorf("WebsiteStrict(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

// The scoring path passes a calendly link at Low while the fill gate
// rejects it outright. A scheduling link may be shown for approval but
// must never be filled unreviewed.
func TestWebsiteScoringVersusStrict(t *testing.T) {
	v := testValidator()
	const raw = "https://calendly.com/mennyb/30min"

	if got := v.Website(raw); !got.Valid || got.Confidence != profile.Low {
		t.Errorf("Website(%q) = %+v, want valid at Low", raw, got)
	}
	if v.WebsiteStrict(raw) {
		t.Errorf("WebsiteStrict(%q) = true, want false", raw)
	}
}
