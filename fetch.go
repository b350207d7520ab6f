package obrdocs

import "context"

// Provenance records whether a raw artifact came from the on-disk cache or a
// fresh network request.
type Provenance string

// Provenance values.
const (
	ProvenanceCache   Provenance = "cache"
	ProvenanceNetwork Provenance = "network"
)

// Fetcher retrieves raw HTML from URLs over the network.
//
// Implementations must follow redirects transparently (including permanent
// redirects) and must classify bot-challenge interstitials as ECHALLENGE
// rather than returning them as content, regardless of HTTP status. Typed
// failures use the error codes ECHALLENGE, EHTTP and EUNAVAILABLE.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
