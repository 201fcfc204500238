// Package fetch performs resilient HTTP GETs against market data providers
// that may rate-limit, redirect, or block certain request signatures.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"KIndex/internal/domain/models"
	drepo "KIndex/internal/domain/repository"
	applogger "KIndex/pkg/logger"
)

const maxBodySize = 8 << 20

// Option configures a Fetcher.
type Option func(*Fetcher)

// Fetcher walks an ordered profile/timeout ladder sequentially, then falls
// back to an external HTTP client exactly once. It holds no mutable state
// across calls; each attempt owns its own cookie jar.
type Fetcher struct {
	profiles  []Profile
	timeouts  []time.Duration
	fallback  Fallback
	transport http.RoundTripper
	metrics   drepo.Metrics
	logger    *applogger.Logger
}

func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		profiles: DefaultProfiles(),
		timeouts: []time.Duration{10 * time.Second, 20 * time.Second},
		fallback: NewCurlFallback("curl", 20*time.Second),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithProfiles overrides the attempt ladder.
func WithProfiles(ps []Profile) Option {
	return func(f *Fetcher) { f.profiles = ps }
}

// WithTimeouts overrides the per-profile timeout ladder.
func WithTimeouts(ts []time.Duration) Option {
	return func(f *Fetcher) { f.timeouts = ts }
}

// WithFallback overrides the exhausted-retries fallback transport.
func WithFallback(fb Fallback) Option {
	return func(f *Fetcher) { f.fallback = fb }
}

// WithTransport overrides the underlying round tripper. Tests use this to
// trust a local TLS server.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) { f.transport = rt }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m drepo.Metrics) Option {
	return func(f *Fetcher) { f.metrics = m }
}

// WithLogger attaches a logger.
func WithLogger(l *applogger.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// Fetch GETs the endpoint with the given query parameters. It tries every
// profile with its timeout ladder in order, strictly sequentially, then the
// fallback once. Only after all of that does it fail, with a *Failure.
func (f *Fetcher) Fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	target := endpoint
	if len(params) > 0 {
		target = endpoint + "?" + params.Encode()
	}

	start := time.Now()
	fail := &Failure{URL: endpoint}

	for _, p := range f.profiles {
		for _, to := range f.timeouts {
			body, status, err := f.attempt(ctx, p, to, target)
			rec := models.FetchAttempt{Profile: p.Name, Timeout: to.String(), Status: status}
			switch {
			case err == nil:
				rec.Outcome = "success"
				fail.Attempts = append(fail.Attempts, rec)
				f.record(p.Name, "success")
				f.latency(endpoint, time.Since(start))
				return body, nil
			case status != 0:
				rec.Outcome = "httpError"
				fail.LastStatus = status
				fail.BodyPreview = preview(body)
			default:
				rec.Outcome = "transportError"
				fail.LastErr = err
			}
			fail.Attempts = append(fail.Attempts, rec)
			f.record(p.Name, rec.Outcome)
			if f.logger != nil {
				f.logger.Warn("fetch attempt failed",
					applogger.String("profile", p.Name),
					applogger.String("timeout", to.String()),
					applogger.Int("status", status),
					applogger.Error(err),
				)
			}
			if ctx.Err() != nil {
				fail.LastErr = ctx.Err()
				return nil, fail
			}
		}
	}

	// Exactly one fallback invocation per exhausted-retries fetch.
	var headers map[string]string
	if len(f.profiles) > 0 {
		headers = f.profiles[0].Headers
	}
	body, ferr := f.fallback.Run(ctx, target, headers)
	if ferr == nil {
		f.record("fallback", "success")
		if f.metrics != nil {
			f.metrics.RecordFallback("success")
		}
		f.latency(endpoint, time.Since(start))
		return body, nil
	}
	fail.FallbackErr = ferr
	f.record("fallback", "transportError")
	if f.metrics != nil {
		f.metrics.RecordFallback("error")
	}
	return nil, fail
}

// attempt issues one GET under one profile/timeout combination. A non-nil
// status with nil body means an HTTP-level failure; status 0 means the
// transport failed.
func (f *Fetcher) attempt(ctx context.Context, p Profile, timeout time.Duration, target string) ([]byte, int, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, 0, fmt.Errorf("cookie jar: %w", err)
	}

	client := &http.Client{
		Timeout:   timeout,
		Transport: f.transport,
		Jar:       jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	if p.Warmup {
		if err := f.warmup(ctx, client, p, target); err != nil && f.logger != nil {
			// Warm-up trouble is not fatal; the real request may still work.
			f.logger.Debug("warmup failed", applogger.String("profile", p.Name), applogger.Error(err))
		}
	}

	resp, err := f.do(ctx, client, p, target)
	if err != nil {
		return nil, 0, err
	}

	if isRedirect(resp.StatusCode) {
		loc := resp.Header.Get("Location")
		drain(resp)
		resolved, rerr := resolveRedirect(target, loc)
		if rerr != nil {
			return nil, resp.StatusCode, rerr
		}
		resp, err = f.do(ctx, client, p, resolved)
		if err != nil {
			return nil, 0, err
		}
	}

	defer drain(resp)
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, 0, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, resp.StatusCode, nil
}

// warmup GETs the provider root so the jar picks up any session cookies
// before the real request.
func (f *Fetcher) warmup(ctx context.Context, client *http.Client, p Profile, target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return err
	}
	root := u.Scheme + "://" + u.Host + "/"
	resp, err := f.do(ctx, client, p, root)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

func (f *Fetcher) do(ctx context.Context, client *http.Client, p Profile, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}
	return client.Do(req)
}

// resolveRedirect resolves a Location header against the original URL and
// forces insecure schemes up to https before the single follow-up request.
func resolveRedirect(original, location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("redirect without location")
	}
	base, err := url.Parse(original)
	if err != nil {
		return "", fmt.Errorf("parse original url: %w", err)
	}
	loc, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parse location: %w", err)
	}
	resolved := base.ResolveReference(loc)
	if resolved.Scheme == "http" {
		resolved.Scheme = "https"
	}
	return resolved.String(), nil
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	_ = resp.Body.Close()
}

func (f *Fetcher) record(profile, outcome string) {
	if f.metrics != nil {
		f.metrics.RecordFetchAttempt(profile, outcome)
	}
}

func (f *Fetcher) latency(endpoint string, d time.Duration) {
	if f.metrics == nil {
		return
	}
	if u, err := url.Parse(endpoint); err == nil {
		f.metrics.RecordFetchLatency(u.Host, d.Seconds())
	}
}
