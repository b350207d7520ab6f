package fs

import (
	"context"
	"os"

	"github.com/obrtools/obrdocs"
)

// Ensure RawCache implements obrdocs.RawSource at compile time.
var _ obrdocs.RawSource = (*RawCache)(nil)

// RawCache resolves raw page HTML through a presence-keyed file cache.
//
// A task hits the cache when its raw HTML file exists and is non-empty;
// freshness is never checked. Misses go to the network through the wrapped
// fetcher, whose politeness delay therefore applies only to real requests.
// Fetched bytes are persisted before being returned, and fetch failures
// leave no file behind, so a failed page is retried on the next run.
type RawCache struct {
	layout  *Layout
	fetcher obrdocs.Fetcher
}

// NewRawCache creates a RawCache over layout backed by fetcher.
func NewRawCache(layout *Layout, fetcher obrdocs.Fetcher) *RawCache {
	return &RawCache{layout: layout, fetcher: fetcher}
}

// Resolve returns the task's raw HTML and where it came from. With force set
// the cache is bypassed and the file rewritten from the network.
func (c *RawCache) Resolve(ctx context.Context, task obrdocs.PageTask, force bool) ([]byte, obrdocs.Provenance, error) {
	path := c.layout.RawHTML(task)

	if !force {
		body, err := os.ReadFile(path)
		if err == nil && len(body) > 0 {
			return body, obrdocs.ProvenanceCache, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return nil, "", obrdocs.Errorf(obrdocs.EINTERNAL, "reading cache for %s: %v", task.URL, err)
		}
		// Missing or empty file: treat as a miss.
	}

	body, err := c.fetcher.Fetch(ctx, task.URL)
	if err != nil {
		return nil, "", err
	}

	if err := WriteFileAtomic(path, body); err != nil {
		return nil, "", obrdocs.Errorf(obrdocs.EINTERNAL, "persisting %s: %v", task.URL, err)
	}

	return body, obrdocs.ProvenanceNetwork, nil
}
