package extract

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/rolodex/pkg/headline"
	"github.com/codeGROOVE-dev/rolodex/pkg/profile"
	"github.com/codeGROOVE-dev/rolodex/pkg/validate"
)

// ErrPassInProgress is returned when Run is called while another pass is
// still between PROBING_VISIBLE and DONE. Two concurrent passes would
// fight over the same transient contact-info affordance.
var ErrPassInProgress = errors.New("extraction pass already in progress")

// State tracks where an extraction pass is.
type State int

// Pass states, in order.
const (
	StateIdle State = iota
	StateProbingVisible
	StateAwaitingModal
	StateMerging
	StateDone
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProbingVisible:
		return "probing_visible"
	case StateAwaitingModal:
		return "awaiting_modal"
	case StateMerging:
		return "merging"
	case StateDone:
		return "done"
	default:
		return "invalid"
	}
}

const (
	defaultModalTimeout = 5 * time.Second
	modalPollInterval   = 250 * time.Millisecond
)

// Orchestrator runs extraction passes. One pass at a time; the profile
// being built is owned exclusively by the in-flight pass.
type Orchestrator struct {
	validator    *validate.Validator
	logger       *slog.Logger
	clock        Clock
	modalTimeout time.Duration

	mu      sync.Mutex
	running bool
	state   State
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithValidator sets the validator used to score candidates.
func WithValidator(v *validate.Validator) Option {
	return func(o *Orchestrator) { o.validator = v }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithClock sets the clock used for the modal wait.
func WithClock(clock Clock) Option {
	return func(o *Orchestrator) { o.clock = clock }
}

// WithModalTimeout bounds how long a pass waits for contact sections to
// appear after activating the affordance.
func WithModalTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.modalTimeout = d }
}

// New creates an Orchestrator.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		validator:    validate.New(),
		logger:       slog.Default(),
		clock:        realClock{},
		modalTimeout: defaultModalTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current pass state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Run executes one extraction pass against src.
//
// The pass always completes: probing errors are recovered locally and
// surface only as absent fields, and an elapsed modal timeout simply
// moves the pass on with whatever was gathered. The only error Run
// returns is ErrPassInProgress.
func (o *Orchestrator) Run(ctx context.Context, src Source) (*profile.Extracted, error) {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil, ErrPassInProgress
	}
	o.running = true
	o.state = StateProbingVisible
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.running = false
		o.state = StateDone
		o.mu.Unlock()
	}()

	prof := profile.New()

	o.safely("probe_visible", func() { o.probeVisible(src, prof) })

	activated := false
	o.safely("activate_affordance", func() { activated = src.ActivateContactAffordance(ctx) })

	if activated {
		o.setState(StateAwaitingModal)
		o.awaitSections(ctx, src)
	} else {
		o.logger.DebugContext(ctx, "no contact affordance, using visible data only")
	}

	o.setState(StateMerging)
	o.safely("merge_email", func() { o.mergeEmailSections(src, prof) })
	o.safely("merge_phone", func() { o.mergePhoneSections(src, prof) })
	o.safely("merge_website", func() { o.mergeWebsiteSections(src, prof) })

	if activated {
		closed := false
		o.safely("close_affordance", func() { closed = src.CloseContactAffordance() })
		if !closed {
			o.logger.WarnContext(ctx, "failed to close contact affordance")
		}
	}

	o.logger.InfoContext(ctx, "extraction pass complete",
		"name", prof.Field(profile.Name),
		"fields", len(prof.Values()),
		"needs_approval", len(prof.FieldsNeedingApproval()))

	return prof, nil
}

// safely runs fn, recovering any panic so a misbehaving source never
// aborts the pass. The failed step reads as "field not found".
func (o *Orchestrator) safely(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Warn("probe step failed", "step", step, "panic", r)
		}
	}()
	fn()
}

// awaitSections polls for structured contact sections until one appears
// or the timeout elapses. Timeout is the cancellation: the pass proceeds
// to merging either way.
func (o *Orchestrator) awaitSections(ctx context.Context, src Source) {
	deadline := o.clock.Now().Add(o.modalTimeout)
	for {
		if o.sectionsAvailable(src) {
			return
		}
		if !o.clock.Now().Before(deadline) {
			o.logger.Debug("modal wait timed out, proceeding with visible data")
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-o.clock.After(modalPollInterval):
		}
	}
}

func (o *Orchestrator) sectionsAvailable(src Source) bool {
	available := false
	o.safely("poll_sections", func() {
		for _, kind := range []SectionKind{EmailSection, PhoneSection, WebsiteSection} {
			if len(src.FindSections(kind)) > 0 {
				available = true
				return
			}
		}
	})
	return available
}

// Candidate patterns for free-text scanning.
var (
	emailFindPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)
	urlFindPattern   = regexp.MustCompile(`https?://[^\s)\]}"']+`)

	phoneFindPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,4}[\s-]?\d{6,12}`),
		regexp.MustCompile(`\+\d{1,3}[\s-]?\(?\d{1,4}\)?[\s-]?\d{1,4}[\s-]?\d{1,9}`),
		regexp.MustCompile(`\(\d{3}\)[\s-]?\d{3}[\s-]?\d{4}`),
		regexp.MustCompile(`\b\d{3}[\s-]?\d{3}[\s-]?\d{4}\b`),
		regexp.MustCompile(`\b05\d[\s-]?\d{3}[\s-]?\d{4}\b`),
	}
)

// probeVisible scans the top card and rendered page text. Phone is
// deliberately not scanned page-wide: free text is a dominant source of
// IDs and timestamps masquerading as numbers, so phones come only from
// structured sections.
func (o *Orchestrator) probeVisible(src Source, prof *profile.Extracted) {
	card := src.TopCard()

	if name := strings.TrimSpace(card.Name); name != "" {
		prof.SetField(profile.Name, name, profile.High)
	}
	if card.ProfileURL != "" {
		prof.SetField(profile.ProfileURL, card.ProfileURL, profile.High)
	}
	if card.Location != "" && !strings.Contains(card.Location, "Connection") &&
		!strings.Contains(card.Location, "follower") {
		prof.SetField(profile.Location, card.Location, profile.High)
	}
	if card.About != "" {
		prof.SetField(profile.About, card.About, profile.Medium)
	}
	prof.SetList(profile.Experience, card.Experience, profile.Medium)
	prof.SetList(profile.Education, card.Education, profile.Medium)

	if card.Headline != "" {
		parsed := headline.Parse(card.Headline)
		prof.SetField(profile.Title, parsed.Title, parsed.Confidence)
		if parsed.Company != "" {
			prof.SetField(profile.CurrentEmployer, parsed.Company, parsed.Confidence)
		} else if company := headline.CompanyFromText(card.Headline); company != "" {
			prof.SetField(profile.CurrentEmployer, company, profile.Medium)
		}
	}

	text := src.VisibleText()

	for _, candidate := range emailFindPattern.FindAllString(text, -1) {
		if result := o.validator.Email(candidate); result.Valid {
			prof.SetField(profile.Email, candidate, result.Confidence)
			break
		}
	}

	var bestSite string
	var bestConfidence profile.Confidence
	for _, candidate := range urlFindPattern.FindAllString(text, -1) {
		if result := o.validator.Website(candidate); result.Valid && result.Confidence > bestConfidence {
			bestSite = candidate
			bestConfidence = result.Confidence
		}
	}
	if bestSite != "" {
		prof.SetField(profile.Website, bestSite, bestConfidence)
	}
}

func (o *Orchestrator) mergeEmailSections(src Source, prof *profile.Extracted) {
	for _, section := range src.FindSections(EmailSection) {
		// mailto links are the most reliable carrier.
		for _, link := range section.Links {
			address, ok := strings.CutPrefix(link.Href, "mailto:")
			if !ok {
				continue
			}
			if result := o.validator.Email(address); result.Valid {
				if prof.SetField(profile.Email, address, result.Confidence) {
					o.logger.Debug("email accepted from link", "confidence", result.Confidence)
				}
				return
			}
		}
		for _, candidate := range emailFindPattern.FindAllString(section.Text, -1) {
			if result := o.validator.Email(candidate); result.Valid {
				prof.SetField(profile.Email, candidate, result.Confidence)
				return
			}
		}
	}
}

func (o *Orchestrator) mergePhoneSections(src Source, prof *profile.Extracted) {
	for _, section := range src.FindSections(PhoneSection) {
		var candidates []string
		for _, link := range section.Links {
			if strings.HasPrefix(link.Href, "tel:") && link.Text != "" {
				candidates = append(candidates, strings.TrimSpace(link.Text))
			}
		}
		for _, pattern := range phoneFindPatterns {
			candidates = append(candidates, pattern.FindAllString(section.Text, -1)...)
		}

		// +-prefixed numbers are more likely genuine international
		// numbers, so they are always tried first.
		sort.SliceStable(candidates, func(i, j int) bool {
			return strings.HasPrefix(candidates[i], "+") && !strings.HasPrefix(candidates[j], "+")
		})

		for _, candidate := range candidates {
			candidate = strings.TrimSpace(candidate)
			result := o.validator.Phone(candidate)
			if !result.Valid {
				o.logger.Debug("phone candidate rejected", "reason", result.Reason)
				continue
			}
			if prof.SetField(profile.Phone, candidate, result.Confidence) {
				o.logger.Debug("phone accepted", "confidence", result.Confidence)
			}
			return
		}
	}
}

func (o *Orchestrator) mergeWebsiteSections(src Source, prof *profile.Extracted) {
	for _, section := range src.FindSections(WebsiteSection) {
		done := false
		for _, link := range section.Links {
			candidate := websiteCandidate(link)
			if candidate == "" {
				continue
			}
			if result := o.validator.Website(candidate); result.Valid {
				prof.SetField(profile.Website, candidate, result.Confidence)
				if result.Confidence >= profile.Medium {
					done = true
					break
				}
			}
		}
		if done {
			continue
		}
		for _, candidate := range urlFindPattern.FindAllString(section.Text, -1) {
			if strings.Contains(candidate, "..") {
				continue
			}
			if result := o.validator.Website(candidate); result.Valid {
				// SetField keeps the higher-confidence value.
				prof.SetField(profile.Website, candidate, result.Confidence)
			}
		}
	}
}

// websiteCandidate turns a section link into a URL candidate. Links
// without an href sometimes carry a bare domain as text.
func websiteCandidate(link Link) string {
	href := strings.TrimSpace(link.Href)
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "javascript:") {
		return ""
	}
	if href != "" {
		return href
	}
	text := strings.TrimSpace(link.Text)
	if text == "" || strings.Contains(text, "@") || !strings.Contains(text, ".") {
		return ""
	}
	if !strings.HasPrefix(text, "http") {
		text = "https://" + text
	}
	return text
}
