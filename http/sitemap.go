package http

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/beevik/etree"
	"github.com/obrtools/obrdocs"
)

// Ensure SitemapDiscoverer implements obrdocs.Discoverer.
var _ obrdocs.Discoverer = (*SitemapDiscoverer)(nil)

// SitemapDiscoverer resolves a category's page set from the site's sitemap.
// It is the primary discovery strategy: sitemaps are a stable,
// machine-readable format, unlike the index page markup.
//
// Sitemap locations come from robots.txt Sitemap: directives when available,
// falling back to the conventional /sitemap.xml. Sitemap indexes are
// resolved recursively. All requests go through the challenge-aware Fetcher,
// so a blocked sitemap surfaces as a typed failure and the caller can fall
// back to index-page discovery.
type SitemapDiscoverer struct {
	site    obrdocs.Site
	fetcher obrdocs.Fetcher
}

// NewSitemapDiscoverer creates a SitemapDiscoverer for the given site.
func NewSitemapDiscoverer(site obrdocs.Site, fetcher obrdocs.Fetcher) *SitemapDiscoverer {
	return &SitemapDiscoverer{site: site, fetcher: fetcher}
}

// Discover returns the tasks for every sitemap URL under the category's path
// prefix, deduplicated by normalized URL.
func (d *SitemapDiscoverer) Discover(ctx context.Context, category obrdocs.Category) ([]obrdocs.PageTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	urls, err := d.collectURLs(ctx)
	if err != nil {
		return nil, err
	}

	var tasks []obrdocs.PageTask
	seen := make(map[string]bool)
	for _, u := range urls {
		task, err := d.site.TaskFromURL(u)
		if err != nil {
			// Outside the configured prefixes; the sitemap covers the
			// whole site.
			continue
		}
		if task.Category != category || seen[task.ID()] {
			continue
		}
		seen[task.ID()] = true
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// collectURLs gathers every <loc> entry from the site's sitemaps.
func (d *SitemapDiscoverer) collectURLs(ctx context.Context) ([]string, error) {
	sitemapURLs := d.sitemapLocations(ctx)

	var all []string
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for _, sitemapURL := range sitemapURLs {
		urls, err := d.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if !seenURLs[u] {
				seenURLs[u] = true
				all = append(all, u)
			}
		}
	}
	return all, nil
}

// sitemapLocations returns sitemap URLs from robots.txt directives, or the
// conventional /sitemap.xml location when robots.txt is missing or silent.
func (d *SitemapDiscoverer) sitemapLocations(ctx context.Context) []string {
	body, err := d.fetcher.Fetch(ctx, d.site.RobotsURL())
	if err == nil {
		if sitemaps := parseSitemapsFromRobots(body); len(sitemaps) > 0 {
			return sitemaps
		}
	}
	return []string{d.site.SitemapURL()}
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func parseSitemapsFromRobots(body []byte) []string {
	var sitemaps []string
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[len("sitemap:"):])
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	return sitemaps
}

// processSitemap fetches and parses a sitemap, handling both urlset and
// sitemapindex documents.
func (d *SitemapDiscoverer) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := d.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, obrdocs.Errorf(obrdocs.EINVALID, "parsing sitemap XML at %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, obrdocs.Errorf(obrdocs.EINVALID, "empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		return d.processSitemapIndex(ctx, root, seen)
	}
	return parseURLSet(root), nil
}

// processSitemapIndex resolves a <sitemapindex> element recursively.
func (d *SitemapDiscoverer) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]string, error) {
	var all []string
	for _, sitemap := range root.SelectElements("sitemap") {
		loc := sitemap.SelectElement("loc")
		if loc == nil {
			continue
		}
		sitemapURL := strings.TrimSpace(loc.Text())
		if sitemapURL == "" {
			continue
		}
		urls, err := d.processSitemap(ctx, sitemapURL, seen)
		if err != nil {
			return nil, err
		}
		all = append(all, urls...)
	}
	return all, nil
}

// parseURLSet extracts URLs from a <urlset> element.
func parseURLSet(root *etree.Element) []string {
	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
