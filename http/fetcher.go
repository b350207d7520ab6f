// Package http provides the HTTP-based implementation of obrdocs.Fetcher
// and sitemap-based URL discovery. The site serves static HTML, so no
// JavaScript rendering is involved, but requests carry browser-like headers
// and a jittered inter-request delay to avoid tripping bot mitigation.
package http

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/obrtools/obrdocs"
)

// DefaultFetchTimeout is the default per-request timeout.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is a realistic browser user agent. Plain library/default
// agents get served challenge interstitials instead of content.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// Ensure Fetcher implements obrdocs.Fetcher at compile time.
var _ obrdocs.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw HTML over HTTP.
//
// Before every request it sleeps for a duration sampled uniformly from the
// configured delay window, serializing network access at a human-ish rate.
// Redirects (including 308) are followed transparently by the underlying
// client so the body returned is always the final target's body.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	referer   string
	delayMin  time.Duration
	delayMax  time.Duration
	sleep     func(time.Duration)
	detector  *ChallengeDetector
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithReferer sets the Referer header sent with every request.
func WithReferer(referer string) Option {
	return func(f *Fetcher) {
		f.referer = referer
	}
}

// WithDelay sets the inter-request delay window. Each request is preceded by
// a sleep sampled uniformly from [min, max]. A zero max disables the delay.
func WithDelay(min, max time.Duration) Option {
	return func(f *Fetcher) {
		f.delayMin = min
		f.delayMax = max
	}
}

// WithSleep replaces the sleep function, for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(f *Fetcher) {
		f.sleep = sleep
	}
}

// WithDetector replaces the challenge detector.
func WithDetector(d *ChallengeDetector) Option {
	return func(f *Fetcher) {
		f.detector = d
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		sleep:     time.Sleep,
		detector:  NewChallengeDetector(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the raw body from the given URL.
//
// Failures are typed: transport errors are EUNAVAILABLE, non-2xx statuses
// are EHTTP, and responses matching the challenge-page signature are
// ECHALLENGE at any status, so an interstitial is never mistaken for
// content.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.delay()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, obrdocs.Errorf(obrdocs.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")
	if f.referer != "" {
		req.Header.Set("Referer", f.referer)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, obrdocs.Errorf(obrdocs.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, obrdocs.Errorf(obrdocs.EUNAVAILABLE, "reading body of %s: %v", url, err)
	}

	// Challenge detection runs before status classification: interstitials
	// are served with 200 as well as 403/503.
	if f.detector.Detect(body) {
		return nil, obrdocs.Errorf(obrdocs.ECHALLENGE, "challenge page served for %s (HTTP %d)", url, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, obrdocs.Errorf(obrdocs.EHTTP, "HTTP %d for %s", resp.StatusCode, url)
	}

	return body, nil
}

// delay sleeps for a uniformly sampled duration in [delayMin, delayMax].
func (f *Fetcher) delay() {
	if f.delayMax <= 0 {
		return
	}
	d := f.delayMin
	if span := f.delayMax - f.delayMin; span > 0 {
		d += time.Duration(rand.Int64N(int64(span) + 1))
	}
	if d > 0 {
		f.sleep(d)
	}
}
