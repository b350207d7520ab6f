package mock

import "github.com/obrtools/obrdocs"

var _ obrdocs.Converter = (*Converter)(nil)

// Converter is a mock implementation of obrdocs.Converter.
type Converter struct {
	ConvertFn func(task obrdocs.PageTask, cleanedHTML string) (*obrdocs.Document, error)
}

func (c *Converter) Convert(task obrdocs.PageTask, cleanedHTML string) (*obrdocs.Document, error) {
	return c.ConvertFn(task, cleanedHTML)
}
