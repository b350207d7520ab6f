package mock

import (
	"context"

	"github.com/obrtools/obrdocs"
)

var _ obrdocs.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of obrdocs.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}
