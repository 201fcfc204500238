package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type fakeFallback struct {
	calls int32
	body  []byte
	err   error
}

func (f *fakeFallback) Run(context.Context, string, map[string]string) ([]byte, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.body, f.err
}

func testProfiles(n int) []Profile {
	ps := make([]Profile, 0, n)
	for i := 0; i < n; i++ {
		ps = append(ps, Profile{Name: "p" + string(rune('a'+i)), Headers: map[string]string{"Accept": "application/json"}})
	}
	return ps
}

func TestFetchFirstAttemptSuccess(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	fb := &fakeFallback{err: errors.New("should not run")}
	f := New(WithProfiles(testProfiles(2)), WithTimeouts([]time.Duration{time.Second}), WithFallback(fb))

	body, err := f.Fetch(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body %s", body)
	}
	if hits != 1 {
		t.Fatalf("expected exactly one request, got %d", hits)
	}
	if fb.calls != 0 {
		t.Fatalf("fallback must not run on success")
	}
}

func TestFetchExhaustionRunsFallbackOnce(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	fb := &fakeFallback{err: errors.New("curl: exit status 22")}
	f := New(WithProfiles(testProfiles(2)), WithTimeouts([]time.Duration{time.Second, 2 * time.Second}), WithFallback(fb))

	_, err := f.Fetch(context.Background(), srv.URL, url.Values{"a": {"1"}})
	if err == nil {
		t.Fatalf("expected failure")
	}
	var fail *Failure
	if !errors.As(err, &fail) {
		t.Fatalf("expected *Failure, got %T", err)
	}
	if hits != 4 {
		t.Fatalf("expected 2 profiles x 2 timeouts = 4 attempts, got %d", hits)
	}
	if fb.calls != 1 {
		t.Fatalf("expected exactly one fallback invocation, got %d", fb.calls)
	}
	if fail.LastStatus != http.StatusForbidden {
		t.Fatalf("unexpected last status %d", fail.LastStatus)
	}
	msg := err.Error()
	if !strings.Contains(msg, "403") || !strings.Contains(msg, "curl: exit status 22") {
		t.Fatalf("error should carry both primary and fallback detail: %s", msg)
	}
	if !strings.Contains(msg, "blocked") {
		t.Fatalf("error should carry a body preview: %s", msg)
	}
}

func TestFetchFallbackRescues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	fb := &fakeFallback{body: []byte(`[1,2,3]`)}
	f := New(WithProfiles(testProfiles(1)), WithTimeouts([]time.Duration{time.Second}), WithFallback(fb))

	body, err := f.Fetch(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != `[1,2,3]` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestFetchManualRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"moved":true}`))
	})
	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	f := New(
		WithProfiles(testProfiles(1)),
		WithTimeouts([]time.Duration{time.Second}),
		WithFallback(&fakeFallback{err: errors.New("no")}),
		WithTransport(srv.Client().Transport),
	)

	body, err := f.Fetch(context.Background(), srv.URL+"/old", nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != `{"moved":true}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestFetchWarmupCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
	})
	mux.HandleFunc("/api/data", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err != nil || c.Value != "abc" {
			http.Error(w, "no session", http.StatusForbidden)
			return
		}
		w.Write([]byte(`{"warm":true}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	profiles := []Profile{{Name: "warm", Warmup: true, Headers: map[string]string{"Accept": "application/json"}}}
	f := New(WithProfiles(profiles), WithTimeouts([]time.Duration{time.Second}), WithFallback(&fakeFallback{err: errors.New("no")}))

	body, err := f.Fetch(context.Background(), srv.URL+"/api/data", nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != `{"warm":true}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestResolveRedirectUpgradesScheme(t *testing.T) {
	got, err := resolveRedirect("http://example.com/a/b", "/c?d=1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "https://example.com/c?d=1" {
		t.Fatalf("unexpected %s", got)
	}

	got, err = resolveRedirect("https://example.com/a", "http://other.example.com/b")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "https://other.example.com/b" {
		t.Fatalf("unexpected %s", got)
	}

	if _, err := resolveRedirect("https://example.com/a", ""); err == nil {
		t.Fatalf("expected error for missing location")
	}
}
