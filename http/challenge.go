package http

import (
	"bytes"
	"strings"
)

// defaultChallengeMarkers are lowercase substrings found in the bot-challenge
// interstitials served in front of the documentation site. Matching any of
// them classifies the response as a challenge page.
var defaultChallengeMarkers = []string{
	"just a moment...",
	"checking your browser",
	"cf-browser-verification",
	"cf_chl_opt",
	"challenge-platform",
	"attention required! | cloudflare",
	"verify you are human",
}

// ChallengeDetector recognizes bot-challenge pages from their body signature.
type ChallengeDetector struct {
	markers [][]byte
}

// NewChallengeDetector constructs a detector with the built-in marker set.
func NewChallengeDetector(extraMarkers ...string) *ChallengeDetector {
	markers := make([][]byte, 0, len(defaultChallengeMarkers)+len(extraMarkers))
	for _, m := range defaultChallengeMarkers {
		markers = append(markers, []byte(m))
	}
	for _, m := range extraMarkers {
		m = strings.TrimSpace(strings.ToLower(m))
		if m == "" {
			continue
		}
		markers = append(markers, []byte(m))
	}
	return &ChallengeDetector{markers: markers}
}

// Detect reports whether the body matches the challenge-page signature.
// The check is case-insensitive and independent of the HTTP status code.
func (d *ChallengeDetector) Detect(body []byte) bool {
	if len(body) == 0 {
		return false
	}
	lower := bytes.ToLower(body)
	for _, marker := range d.markers {
		if bytes.Contains(lower, marker) {
			return true
		}
	}
	return false
}
