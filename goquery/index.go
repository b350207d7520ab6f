package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/obrtools/obrdocs"
)

// Ensure IndexDiscoverer implements obrdocs.Discoverer.
var _ obrdocs.Discoverer = (*IndexDiscoverer)(nil)

// IndexDiscoverer is the fallback discovery strategy: it fetches a
// category's human-readable index page and extracts same-origin links under
// the category's path prefix. It is used when the sitemap is blocked or
// unparseable.
type IndexDiscoverer struct {
	site    obrdocs.Site
	fetcher obrdocs.Fetcher
}

// NewIndexDiscoverer creates an IndexDiscoverer for the given site.
func NewIndexDiscoverer(site obrdocs.Site, fetcher obrdocs.Fetcher) *IndexDiscoverer {
	return &IndexDiscoverer{site: site, fetcher: fetcher}
}

// Discover fetches the category index page and returns one task per
// same-origin link under the category prefix, deduplicated by identity.
func (d *IndexDiscoverer) Discover(ctx context.Context, category obrdocs.Category) ([]obrdocs.PageTask, error) {
	indexURL := d.site.IndexURL(category)

	body, err := d.fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	urls, err := ExtractPrefixedLinks(string(body), indexURL, category.PathPrefix())
	if err != nil {
		return nil, err
	}

	var tasks []obrdocs.PageTask
	seen := make(map[string]bool)
	for _, u := range urls {
		task, err := d.site.TaskFromURL(u)
		if err != nil || task.Category != category {
			continue
		}
		if seen[task.ID()] {
			continue
		}
		seen[task.ID()] = true
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// ExtractPrefixedLinks parses HTML and returns all same-origin links whose
// path falls under prefix, resolved against baseURL and normalized.
// Fragment-only links and off-origin links are ignored.
func ExtractPrefixedLinks(html, baseURL, prefix string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, obrdocs.Errorf(obrdocs.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, obrdocs.Errorf(obrdocs.EINVALID, "parsing index page: %v", err)
	}

	var links []string
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Host != base.Host {
			return
		}
		if !strings.HasPrefix(resolved.Path, prefix) && resolved.Path+"/" != prefix {
			return
		}
		normalized := obrdocs.NormalizeURL(resolved.String())
		if seen[normalized] {
			return
		}
		seen[normalized] = true
		links = append(links, normalized)
	})

	return links, nil
}

// isNonHTTPLink reports whether the href uses a scheme that can never be a
// documentation page (javascript:, mailto:, tel:, data:).
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}
