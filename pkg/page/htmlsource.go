// Package page provides extract.Source implementations: a goquery-backed
// source over captured profile HTML, and a static in-memory source for
// tests and harnesses.
package page

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/codeGROOVE-dev/rolodex/pkg/extract"
	"github.com/codeGROOVE-dev/rolodex/pkg/htmlutil"
)

// Selector lists for the statically rendered top card. Ordered by
// specificity; first hit wins.
var (
	nameSelectors = []string{
		"main h1",
		"h1.text-heading-xlarge",
		`[data-anonymize="person-name"]`,
	}
	headlineSelectors = []string{
		".text-body-medium.break-words",
		"main .text-body-medium",
		"div.text-body-medium",
	}
	locationSelectors = []string{
		".text-body-small.inline.t-black--light.break-words",
		"main .text-body-small",
		`[data-anonymize="location"]`,
	}
)

// contactSectionSelector finds the structured contact sections of the
// contact-info overlay.
const contactSectionSelector = ".pv-contact-info__contact-type"

// overlaySelectors locate the contact-info overlay itself.
var overlaySelectors = []string{
	`.artdeco-modal[role="dialog"]`,
	".artdeco-modal",
	`[role="dialog"]`,
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// HTMLSource implements extract.Source over a captured profile page.
//
// A capture is static, so ActivateContactAffordance cannot click
// anything; it reports whether the capture already contains a populated
// contact-info overlay.
type HTMLSource struct {
	doc        *goquery.Document
	raw        string
	profileURL string
	logger     *slog.Logger
}

// Option configures an HTMLSource.
type Option func(*HTMLSource)

// WithProfileURL records the URL the capture was taken from.
func WithProfileURL(url string) Option {
	return func(s *HTMLSource) { s.profileURL = url }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *HTMLSource) { s.logger = logger }
}

// NewHTMLSource parses captured page HTML into a Source.
func NewHTMLSource(html string, opts ...Option) (*HTMLSource, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	s := &HTMLSource{doc: doc, raw: html, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TopCard probes the statically rendered identity region.
func (s *HTMLSource) TopCard() extract.TopCard {
	card := extract.TopCard{ProfileURL: s.profileURL}

	card.Name = s.firstText(nameSelectors)
	if card.Name == "" {
		card.Name = htmlutil.Title(s.raw)
	}
	card.Headline = s.firstText(headlineSelectors)
	if card.Headline == "" {
		card.Headline = htmlutil.Description(s.raw)
	}
	card.Location = s.firstText(locationSelectors)
	card.About = cleanText(s.doc.Find("section.pv-about-section").First().Text())

	s.doc.Find(`section[data-section="experience"] li`).Each(func(_ int, sel *goquery.Selection) {
		if entry := cleanText(sel.Text()); entry != "" {
			card.Experience = append(card.Experience, entry)
		}
	})
	s.doc.Find(`section[data-section="education"] li`).Each(func(_ int, sel *goquery.Selection) {
		if entry := cleanText(sel.Text()); entry != "" {
			card.Education = append(card.Education, entry)
		}
	})

	return card
}

// VisibleText returns the rendered page text with scripts and styles
// stripped and whitespace collapsed.
func (s *HTMLSource) VisibleText() string {
	doc := s.doc.Clone()
	doc.Find("script, style, noscript").Remove()
	return cleanText(doc.Find("body").Text())
}

// FindSections returns the contact sections of the overlay whose header
// names the given kind.
func (s *HTMLSource) FindSections(kind extract.SectionKind) []extract.Section {
	var sections []extract.Section
	s.contactSections().Each(func(_ int, sel *goquery.Selection) {
		header := cleanText(sel.Find(".pv-contact-info__header, h3, h2").First().Text())
		if !strings.Contains(strings.ToLower(header), string(kind)) {
			return
		}
		section := extract.Section{
			Header: header,
			Text:   cleanText(sel.Text()),
		}
		sel.Find("a").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			section.Links = append(section.Links, extract.Link{
				Href: href,
				Text: cleanText(a.Text()),
			})
		})
		sections = append(sections, section)
	})
	return sections
}

// ActivateContactAffordance reports whether the capture holds a populated
// contact-info overlay: it must carry a contact-info header and at least
// one contact data indicator, otherwise it is some other dialog.
func (s *HTMLSource) ActivateContactAffordance(_ context.Context) bool {
	for _, selector := range overlaySelectors {
		overlay := s.doc.Find(selector).First()
		if overlay.Length() == 0 {
			continue
		}
		text := overlay.Text()
		hasHeader := strings.Contains(strings.ToLower(text), "contact info") ||
			overlay.Find("#pv-contact-info").Length() > 0
		hasData := strings.Contains(text, "@") ||
			strings.Contains(text, "Email") || strings.Contains(text, "Phone") ||
			overlay.Find(contactSectionSelector).Length() > 0
		if hasHeader && hasData {
			return true
		}
	}
	return s.doc.Find(contactSectionSelector).Length() > 0
}

// CloseContactAffordance is a no-op for a static capture.
func (*HTMLSource) CloseContactAffordance() bool { return true }

func (s *HTMLSource) contactSections() *goquery.Selection {
	sections := s.doc.Find(contactSectionSelector)
	if sections.Length() > 0 {
		return sections
	}
	// Older captures lack the contact-type class; fall back to sections
	// inside any dialog.
	return s.doc.Find(`[role="dialog"] section`)
}

func (s *HTMLSource) firstText(selectors []string) string {
	for _, selector := range selectors {
		if text := cleanText(s.doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func cleanText(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
