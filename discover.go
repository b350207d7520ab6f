package obrdocs

import "context"

// Discoverer resolves the set of pages to process for a category.
//
// The returned tasks are deduplicated by normalized URL; order is not
// significant. Discovery strategies (sitemap, index page) implement this
// interface and are composed into an ordered fallback chain by the crawl
// package.
type Discoverer interface {
	Discover(ctx context.Context, category Category) ([]PageTask, error)
}
