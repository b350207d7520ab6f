// Package readability provides a content-extraction fallback for pages whose
// markup matches none of the structural selectors.
package readability

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/obrtools/obrdocs"
)

// Ensure Cleaner implements obrdocs.Cleaner at compile time.
var _ obrdocs.Cleaner = (*Cleaner)(nil)

// Cleaner extracts main content using the readability algorithm. It is less
// precise than selector-based cleaning but works on arbitrary markup, which
// makes it a reasonable last resort.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean extracts the main content of rawHTML as sanitized HTML. Links are
// resolved against baseURL by the underlying parser.
func (c *Cleaner) Clean(rawHTML, baseURL string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", obrdocs.Errorf(obrdocs.EINVALID, "empty HTML input")
	}

	pageURL, err := url.Parse(baseURL)
	if err != nil {
		return "", obrdocs.Errorf(obrdocs.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return "", obrdocs.Errorf(obrdocs.ECONVERSION, "readability extraction: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return "", obrdocs.Errorf(obrdocs.ECONVERSION, "readability produced no content")
	}

	return article.Content, nil
}
