package mock

import "github.com/obrtools/obrdocs"

var _ obrdocs.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of obrdocs.Cleaner.
type Cleaner struct {
	CleanFn func(rawHTML, baseURL string) (string, error)
}

func (c *Cleaner) Clean(rawHTML, baseURL string) (string, error) {
	return c.CleanFn(rawHTML, baseURL)
}
