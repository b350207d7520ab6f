package mock

import (
	"context"

	"github.com/obrtools/obrdocs"
)

var _ obrdocs.Discoverer = (*Discoverer)(nil)

// Discoverer is a mock implementation of obrdocs.Discoverer.
type Discoverer struct {
	DiscoverFn func(ctx context.Context, category obrdocs.Category) ([]obrdocs.PageTask, error)
}

func (d *Discoverer) Discover(ctx context.Context, category obrdocs.Category) ([]obrdocs.PageTask, error) {
	return d.DiscoverFn(ctx, category)
}
