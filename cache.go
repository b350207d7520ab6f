package obrdocs

import "context"

// RawSource resolves the raw HTML artifact for a task, deciding between the
// cache and a fresh network fetch.
//
// The cache is keyed purely on raw-artifact presence: a non-empty artifact is
// reused unless force is true, regardless of whether earlier runs managed to
// convert it. Caching is a fetch-layer optimization, not a success memo.
type RawSource interface {
	Resolve(ctx context.Context, task PageTask, force bool) ([]byte, Provenance, error)
}
