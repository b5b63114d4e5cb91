package page

import (
	"context"

	"github.com/codeGROOVE-dev/rolodex/pkg/extract"
)

// Static is an in-memory extract.Source for tests and harnesses. Fields
// are plain data; the zero value is a page with nothing on it.
type Static struct {
	Card          extract.TopCard
	Text          string
	Sections      map[extract.SectionKind][]extract.Section
	HasAffordance bool

	// SectionsAfterActivate defers section visibility until the
	// affordance has been activated, mimicking an overlay that renders
	// its content on demand.
	SectionsAfterActivate bool

	activated   bool
	closeFails  bool
	ActivateHit int
	CloseHit    int
}

// FailClose makes CloseContactAffordance report failure.
func (s *Static) FailClose() { s.closeFails = true }

// TopCard returns the configured top card.
func (s *Static) TopCard() extract.TopCard { return s.Card }

// VisibleText returns the configured page text.
func (s *Static) VisibleText() string { return s.Text }

// FindSections returns the configured sections for kind.
func (s *Static) FindSections(kind extract.SectionKind) []extract.Section {
	if s.SectionsAfterActivate && !s.activated {
		return nil
	}
	return s.Sections[kind]
}

// ActivateContactAffordance marks the affordance open if one exists.
func (s *Static) ActivateContactAffordance(_ context.Context) bool {
	s.ActivateHit++
	if !s.HasAffordance {
		return false
	}
	s.activated = true
	return true
}

// CloseContactAffordance closes the affordance.
func (s *Static) CloseContactAffordance() bool {
	s.CloseHit++
	return !s.closeFails
}
