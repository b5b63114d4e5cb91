// Package linkedin fetches profile pages using authenticated session
// cookies and runs field extraction over them.
package linkedin

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/rolodex/pkg/auth"
	"github.com/codeGROOVE-dev/rolodex/pkg/extract"
	"github.com/codeGROOVE-dev/rolodex/pkg/httpcache"
	"github.com/codeGROOVE-dev/rolodex/pkg/page"
	"github.com/codeGROOVE-dev/rolodex/pkg/profile"
)

// Client fetches profile pages with authenticated cookies and extracts
// contact fields from them.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
	orch       *extract.Orchestrator
}

type config struct {
	cookies   map[string]string
	cache     httpcache.Cacher
	logger    *slog.Logger
	orch      *extract.Orchestrator
	noBrowser bool
}

// Option configures a Client.
type Option func(*config)

// WithCookies sets explicit session cookie values, bypassing environment
// and browser lookup.
func WithCookies(cookies map[string]string) Option {
	return func(c *config) { c.cookies = cookies }
}

// WithCache sets the HTTP response cache.
func WithCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithOrchestrator sets the extraction orchestrator.
func WithOrchestrator(orch *extract.Orchestrator) Option {
	return func(c *config) { c.orch = orch }
}

// WithoutBrowser disables browser cookie store lookup. Explicit cookies
// and environment variables are still consulted.
func WithoutBrowser() Option {
	return func(c *config) { c.noBrowser = true }
}

// New creates a Client. Cookies are resolved from the first available
// source: explicit values, environment variables, then browser stores.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	sources := []auth.Source{auth.NewStaticSource(cfg.cookies), auth.EnvSource{}}
	if !cfg.noBrowser {
		sources = append(sources, auth.NewBrowserSource(cfg.logger))
	}

	cookies, err := auth.Chain(ctx, sources...)
	if err != nil {
		return nil, fmt.Errorf("cookie lookup failed: %w", err)
	}
	if len(cookies) == 0 {
		return nil, fmt.Errorf("%w (set %s)", profile.ErrNoCookies, strings.Join(auth.EnvVars(), ", "))
	}

	jar, err := auth.NewCookieJar(cookies)
	if err != nil {
		return nil, fmt.Errorf("cookie jar creation failed: %w", err)
	}

	cfg.logger.InfoContext(ctx, "session cookies resolved", "count", len(cookies))

	orch := cfg.orch
	if orch == nil {
		orch = extract.New(extract.WithLogger(cfg.logger))
	}

	return &Client{
		httpClient: &http.Client{Jar: jar, Timeout: 30 * time.Second},
		cache:      cfg.cache,
		logger:     cfg.logger,
		orch:       orch,
	}, nil
}

// Fetch retrieves a profile page and extracts contact fields from it.
// The argument may be a full profile URL or a bare public identifier.
func (c *Client) Fetch(ctx context.Context, profileURL string) (*profile.Extracted, error) {
	profileURL = NormalizeURL(profileURL)
	c.logger.InfoContext(ctx, "fetching profile", "url", profileURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	setBrowserHeaders(req)

	body, err := httpcache.FetchURLWithValidator(ctx, c.cache, c.httpClient, req, c.logger, isProfilePage)
	if err != nil {
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}

	content := string(body)
	if isAuthWall(content) {
		return nil, profile.ErrAuthRequired
	}

	return c.Extract(ctx, content, profileURL)
}

// Extract runs field extraction over already-fetched page content.
func (c *Client) Extract(ctx context.Context, content, profileURL string) (*profile.Extracted, error) {
	return extractContent(ctx, c.orch, content, profileURL, c.logger)
}

// ExtractFromHTML runs field extraction over saved page content. No
// session cookies are needed.
func ExtractFromHTML(ctx context.Context, content, profileURL string, logger *slog.Logger) (*profile.Extracted, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return extractContent(ctx, extract.New(extract.WithLogger(logger)), content, profileURL, logger)
}

func extractContent(ctx context.Context, orch *extract.Orchestrator, content, profileURL string, logger *slog.Logger) (*profile.Extracted, error) {
	src, err := page.NewHTMLSource(content, page.WithProfileURL(profileURL), page.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("page parsing failed: %w", err)
	}

	extracted, err := orch.Run(ctx, src)
	if err != nil {
		return nil, err
	}

	// Embedded structured data is more reliable than rendered markup;
	// let it fill anything the markup pass missed.
	seedFromEmbeddedData(extracted, content, profileURL, logger)

	name := extracted.Field(profile.Name)
	if name == "" {
		return nil, profile.ErrNoName
	}

	logger.InfoContext(ctx, "profile extracted",
		"name", name,
		"fields", len(extracted.Values()))
	return extracted, nil
}

// NormalizeURL expands a bare public identifier into a full profile URL.
func NormalizeURL(s string) string {
	if strings.HasPrefix(s, "http") {
		return s
	}
	return "https://www.linkedin.com/in/" + strings.Trim(s, "/")
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	// Don't set Accept-Encoding - let Go's HTTP client handle compression automatically
	req.Header.Set("DNT", "1")
	req.Header.Set("Sec-GPC", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Sec-Fetch-Site", "none")
}

// isProfilePage reports whether a response body looks like an actual
// profile page rather than a login wall or interstitial. Login walls
// must not be cached.
func isProfilePage(body []byte) bool {
	return !isAuthWall(string(body))
}

func isAuthWall(content string) bool {
	if strings.Contains(content, "authwall") {
		return true
	}
	// Signed-out pages carry neither embedded profile data nor a name.
	return !strings.Contains(content, `"publicIdentifier":`) &&
		!strings.Contains(content, `property="og:title"`) &&
		!strings.Contains(content, "<h1")
}
