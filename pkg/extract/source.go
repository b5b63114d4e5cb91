// Package extract orchestrates one profile extraction pass over a page
// content source, applying validators and parsers in priority order and
// merging results by confidence.
package extract

import "context"

// SectionKind names a category of structured contact section.
type SectionKind string

// Section kinds the orchestrator probes for.
const (
	EmailSection   SectionKind = "email"
	PhoneSection   SectionKind = "phone"
	WebsiteSection SectionKind = "website"
)

// Link is one anchor found inside a section.
type Link struct {
	Href string
	Text string
}

// Section is a header-labeled chunk of page content believed to hold one
// field category.
type Section struct {
	Header string
	Text   string
	Links  []Link
}

// TopCard holds the statically rendered identity region of a profile
// page: the fields readable without activating anything.
type TopCard struct {
	Name       string
	Headline   string
	Location   string
	ProfileURL string
	About      string
	Experience []string
	Education  []string
}

// Source abstracts a page as a supplier of candidate strings. Implemented
// per target environment: a captured DOM, a live page, or a test fixture.
//
// Methods never return errors; a source that cannot supply something
// returns zero values and the orchestrator treats the field as not found.
type Source interface {
	// TopCard returns the visible identity region.
	TopCard() TopCard

	// VisibleText returns the already-rendered page text.
	VisibleText() string

	// FindSections returns the structured contact sections of the given
	// kind, or nil if none are available yet.
	FindSections(kind SectionKind) []Section

	// ActivateContactAffordance requests that the richer contact-info
	// affordance (e.g. an expandable panel) be opened. Returns false if
	// no such affordance exists. Best-effort; may no-op.
	ActivateContactAffordance(ctx context.Context) bool

	// CloseContactAffordance closes the affordance if it was opened.
	// Best-effort; returns false if closing failed.
	CloseContactAffordance() bool
}
