package crawl

import (
	"context"

	"github.com/obrtools/obrdocs"
)

// Ensure Fallback implements obrdocs.Discoverer.
var _ obrdocs.Discoverer = (*Fallback)(nil)

// Fallback tries discovery strategies in order and returns the first
// non-empty result. A strategy that errors or finds nothing hands over to
// the next one.
type Fallback struct {
	strategies []obrdocs.Discoverer
}

// NewFallback creates a Fallback over the given strategies, tried in order.
func NewFallback(strategies ...obrdocs.Discoverer) *Fallback {
	return &Fallback{strategies: strategies}
}

// Discover runs the strategies until one yields tasks. When all fail, the
// last error is returned; when all succeed but find nothing, ENOTFOUND.
func (f *Fallback) Discover(ctx context.Context, category obrdocs.Category) ([]obrdocs.PageTask, error) {
	var lastErr error
	for _, strategy := range f.strategies {
		tasks, err := strategy.Discover(ctx, category)
		if err != nil {
			lastErr = err
			continue
		}
		if len(tasks) > 0 {
			return tasks, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, obrdocs.Errorf(obrdocs.ENOTFOUND, "no pages discovered for category %q", category)
}
