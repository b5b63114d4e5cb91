package httpcache

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewWithPath(time.Hour, t.TempDir())
	if err != nil {
		t.Fatalf("NewWithPath() error = %v", err)
	}
	t.Cleanup(func() {
		if err := cache.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return cache
}

func newRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, http.NoBody)
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestURLToKey(t *testing.T) {
	a := URLToKey("https://www.linkedin.com/in/janedoe")
	b := URLToKey("https://www.linkedin.com/in/janedoe")
	c := URLToKey("https://www.linkedin.com/in/other")

	if a != b {
		t.Error("URLToKey() is not deterministic")
	}
	if a == c {
		t.Error("URLToKey() collides for different URLs")
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}
}

func TestHTTPErrorMessage(t *testing.T) {
	err := &HTTPError{URL: "https://example.com/x", StatusCode: 404}
	if got := err.Error(); got != "HTTP 404 fetching https://example.com/x" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &HTTPError{StatusCode: http.StatusTooManyRequests}, true},
		{"server error", &HTTPError{StatusCode: http.StatusInternalServerError}, true},
		{"bad gateway", &HTTPError{StatusCode: http.StatusBadGateway}, true},
		{"not found", &HTTPError{StatusCode: http.StatusNotFound}, false},
		{"forbidden", &HTTPError{StatusCode: http.StatusForbidden}, false},
		{"network error", errors.New("dial tcp: connection refused"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetchURLWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>profile</html>")) //nolint:errcheck // test server
	}))
	defer srv.Close()

	body, err := FetchURL(context.Background(), nil, srv.Client(), newRequest(t, srv.URL), nil)
	if err != nil {
		t.Fatalf("FetchURL() error = %v", err)
	}
	if string(body) != "<html>profile</html>" {
		t.Errorf("body = %q", body)
	}
}

func TestFetchURLServesSecondCallFromCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Write([]byte("cached body")) //nolint:errcheck // test server
	}))
	defer srv.Close()

	cache := newTestCache(t)
	for range 2 {
		body, err := FetchURL(context.Background(), cache, srv.Client(), newRequest(t, srv.URL), nil)
		if err != nil {
			t.Fatalf("FetchURL() error = %v", err)
		}
		if string(body) != "cached body" {
			t.Errorf("body = %q", body)
		}
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestFetchURLCachesHTTPErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cache := newTestCache(t)
	for range 2 {
		_, err := FetchURL(context.Background(), cache, srv.Client(), newRequest(t, srv.URL), nil)
		var httpErr *HTTPError
		if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
			t.Fatalf("FetchURL() error = %v, want HTTP 404", err)
		}
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want the 404 served from cache on the second call", got)
	}
}

func TestFetchURLValidatorPreventsCaching(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Write([]byte("please sign in")) //nolint:errcheck // test server
	}))
	defer srv.Close()

	cache := newTestCache(t)
	rejectAll := func([]byte) bool { return false }

	for range 2 {
		body, err := FetchURLWithValidator(context.Background(), cache, srv.Client(), newRequest(t, srv.URL), nil, rejectAll)
		if err != nil {
			t.Fatalf("FetchURLWithValidator() error = %v", err)
		}
		// The body still comes back even though it was not cached.
		if string(body) != "please sign in" {
			t.Errorf("body = %q", body)
		}
	}

	if got := hits.Load(); got != 2 {
		t.Errorf("server hits = %d, want 2: rejected responses must not be cached", got)
	}
}
