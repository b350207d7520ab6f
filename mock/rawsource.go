package mock

import (
	"context"

	"github.com/obrtools/obrdocs"
)

var _ obrdocs.RawSource = (*RawSource)(nil)

// RawSource is a mock implementation of obrdocs.RawSource.
type RawSource struct {
	ResolveFn func(ctx context.Context, task obrdocs.PageTask, force bool) ([]byte, obrdocs.Provenance, error)
}

func (s *RawSource) Resolve(ctx context.Context, task obrdocs.PageTask, force bool) ([]byte, obrdocs.Provenance, error) {
	return s.ResolveFn(ctx, task, force)
}
