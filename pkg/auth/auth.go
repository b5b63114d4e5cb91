// Package auth provides session cookie management for authenticated
// profile page fetching.
package auth

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// Domain is the cookie domain for profile fetching.
const Domain = "linkedin.com"

// envVars maps environment variable names to session cookie names.
var envVars = map[string]string{
	"LINKEDIN_LI_AT":      "li_at",
	"LINKEDIN_JSESSIONID": "JSESSIONID",
	"LINKEDIN_LIDC":       "lidc",
	"LINKEDIN_BCOOKIE":    "bcookie",
}

// essentialCookies are the cookies a session actually needs; everything
// else a browser store holds is noise.
var essentialCookies = []string{"li_at", "JSESSIONID", "lidc", "bcookie"}

// Source represents a source of authentication cookies.
type Source interface {
	// Cookies returns session cookies, or nil if unavailable.
	Cookies(ctx context.Context) (map[string]string, error)
}

// Chain returns cookies from the first source that provides them.
func Chain(ctx context.Context, sources ...Source) (map[string]string, error) {
	for _, src := range sources {
		cookies, err := src.Cookies(ctx)
		if err != nil {
			return nil, err
		}
		if len(cookies) > 0 {
			return cookies, nil
		}
	}
	return nil, nil //nolint:nilnil // no source had cookies, but this is not an error
}

// NewCookieJar creates an http.CookieJar populated with the given cookies.
func NewCookieJar(cookies map[string]string) (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse("https://" + Domain)
	if err != nil {
		return nil, err
	}

	var httpCookies []*http.Cookie
	for name, value := range cookies {
		if value != "" {
			httpCookies = append(httpCookies, &http.Cookie{
				Name:   name,
				Value:  value,
				Domain: "." + Domain,
				Path:   "/",
			})
		}
	}

	jar.SetCookies(u, httpCookies)
	return jar, nil
}

// EssentialCookies returns the cookie names a session needs, in
// importance order.
func EssentialCookies() []string {
	out := make([]string, len(essentialCookies))
	copy(out, essentialCookies)
	return out
}

// EnvVars returns the environment variable names consulted by EnvSource,
// for help messages.
func EnvVars() []string {
	vars := make([]string, 0, len(envVars))
	for envVar := range envVars {
		vars = append(vars, envVar)
	}
	return vars
}
