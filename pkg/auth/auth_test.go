package auth

import (
	"context"
	"net/url"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestChainPrefersEarlierSources(t *testing.T) {
	t.Setenv("LINKEDIN_LI_AT", "env-token")

	cookies, err := Chain(context.Background(),
		NewStaticSource(map[string]string{"li_at": "static-token"}),
		EnvSource{},
	)
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}
	if cookies["li_at"] != "static-token" {
		t.Errorf("li_at = %q, want the static source to win", cookies["li_at"])
	}
}

func TestChainFallsThroughEmptySources(t *testing.T) {
	t.Setenv("LINKEDIN_LI_AT", "env-token")

	cookies, err := Chain(context.Background(), NewStaticSource(nil), EnvSource{})
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}
	if cookies["li_at"] != "env-token" {
		t.Errorf("li_at = %q, want the env fallback", cookies["li_at"])
	}
}

func TestChainNoSources(t *testing.T) {
	cookies, err := Chain(context.Background(), NewStaticSource(nil))
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}
	if cookies != nil {
		t.Errorf("Chain() = %v, want nil when nothing is available", cookies)
	}
}

func TestEnvSource(t *testing.T) {
	t.Setenv("LINKEDIN_LI_AT", "token")
	t.Setenv("LINKEDIN_JSESSIONID", `"ajax:123"`)
	t.Setenv("LINKEDIN_LIDC", "")
	t.Setenv("LINKEDIN_BCOOKIE", "")

	cookies, err := EnvSource{}.Cookies(context.Background())
	if err != nil {
		t.Fatalf("Cookies() error = %v", err)
	}

	want := map[string]string{
		"li_at":      "token",
		"JSESSIONID": `"ajax:123"`,
	}
	if diff := cmp.Diff(want, cookies); diff != "" {
		t.Errorf("Cookies() mismatch (-want +got):\n%s", diff)
	}
}

func TestStaticSourceReturnsCopy(t *testing.T) {
	src := NewStaticSource(map[string]string{"li_at": "token"})

	first, err := src.Cookies(context.Background())
	if err != nil {
		t.Fatalf("Cookies() error = %v", err)
	}
	first["li_at"] = "mutated"

	second, err := src.Cookies(context.Background())
	if err != nil {
		t.Fatalf("Cookies() error = %v", err)
	}
	if second["li_at"] != "token" {
		t.Errorf("li_at = %q after caller mutation, want token", second["li_at"])
	}
}

func TestNewCookieJar(t *testing.T) {
	jar, err := NewCookieJar(map[string]string{
		"li_at": "token",
		"empty": "",
	})
	if err != nil {
		t.Fatalf("NewCookieJar() error = %v", err)
	}

	u, err := url.Parse("https://www.linkedin.com/in/janedoe")
	if err != nil {
		t.Fatal(err)
	}

	got := make(map[string]string)
	for _, c := range jar.Cookies(u) {
		got[c.Name] = c.Value
	}
	if got["li_at"] != "token" {
		t.Errorf("jar cookies = %v, want li_at for subdomain requests", got)
	}
	if _, ok := got["empty"]; ok {
		t.Error("empty-valued cookie made it into the jar")
	}
}

func TestEnvVars(t *testing.T) {
	vars := EnvVars()
	sort.Strings(vars)

	want := []string{"LINKEDIN_BCOOKIE", "LINKEDIN_JSESSIONID", "LINKEDIN_LIDC", "LINKEDIN_LI_AT"}
	if diff := cmp.Diff(want, vars); diff != "" {
		t.Errorf("EnvVars() mismatch (-want +got):\n%s", diff)
	}
}
