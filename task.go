package obrdocs

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category identifies one of the two documentation sections that are
// harvested. Pages outside these sections are ignored.
type Category string

// Supported documentation categories.
const (
	CategoryAPIs      Category = "apis"
	CategoryReference Category = "reference"
)

// Categories returns all configured categories in processing order.
func Categories() []Category {
	return []Category{CategoryAPIs, CategoryReference}
}

// Valid reports whether c is a configured category.
func (c Category) Valid() bool {
	return c == CategoryAPIs || c == CategoryReference
}

// PathPrefix returns the URL path prefix for the category, with leading and
// trailing slashes.
func (c Category) PathPrefix() string {
	return "/extensions/" + string(c) + "/"
}

// DefaultBaseURL is the documentation site this tool was built for.
const DefaultBaseURL = "https://docs.owlbear.rodeo"

// Site describes the documentation site being harvested. The zero value
// points at DefaultBaseURL.
type Site struct {
	BaseURL string
}

func (s Site) base() string {
	if s.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimSuffix(s.BaseURL, "/")
}

// SitemapURL returns the conventional sitemap location for the site.
func (s Site) SitemapURL() string {
	return s.base() + "/sitemap.xml"
}

// RobotsURL returns the robots.txt location for the site.
func (s Site) RobotsURL() string {
	return s.base() + "/robots.txt"
}

// IndexURL returns the human-readable index page for a category, used as the
// discovery fallback when the sitemap is unusable.
func (s Site) IndexURL(c Category) string {
	return s.base() + c.PathPrefix()
}

// Host returns the hostname of the site's base URL.
func (s Site) Host() string {
	u, err := url.Parse(s.base())
	if err != nil {
		return ""
	}
	return u.Host
}

// TaskFromURL builds a PageTask from a page URL. The URL is normalized and
// must fall under one of the configured category path prefixes.
func (s Site) TaskFromURL(rawURL string) (PageTask, error) {
	normalized := NormalizeURL(rawURL)

	u, err := url.Parse(normalized)
	if err != nil {
		return PageTask{}, Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Host != s.Host() {
		return PageTask{}, Errorf(EINVALID, "URL %q is outside %s", rawURL, s.Host())
	}

	for _, c := range Categories() {
		prefix := c.PathPrefix()
		if u.Path+"/" == prefix {
			// The category root itself (the index page).
			return PageTask{URL: normalized, Category: c, Slug: "index"}, nil
		}
		if strings.HasPrefix(u.Path, prefix) {
			return PageTask{
				URL:      normalized,
				Category: c,
				Slug:     SlugFromURL(normalized),
			}, nil
		}
	}
	return PageTask{}, Errorf(EINVALID, "URL %q is outside the configured category prefixes", rawURL)
}

// PageTask identifies a single page to process. Identity is (Category, Slug);
// tasks are created during discovery and immutable thereafter.
type PageTask struct {
	URL      string   `json:"url"`
	Category Category `json:"category"`
	Slug     string   `json:"slug"`
}

// Validate returns an error if the task contains invalid fields.
func (t PageTask) Validate() error {
	if t.URL == "" {
		return Errorf(EINVALID, "task URL required")
	}
	if !t.Category.Valid() {
		return Errorf(EINVALID, "unknown category %q", t.Category)
	}
	if t.Slug == "" {
		return Errorf(EINVALID, "task slug required")
	}
	return nil
}

// ID returns the task identity, unique within a run.
func (t PageTask) ID() string {
	return string(t.Category) + "/" + t.Slug
}

// NormalizeURL strips the fragment and any trailing slash from a URL so that
// discovery can deduplicate aliases of the same page.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return strings.TrimSpace(rawURL)
	}
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}

var unsafeSlugChars = regexp.MustCompile(`[^0-9A-Za-z._-]+`)

// SlugFromURL derives a filesystem-safe slug from the last segment of the
// URL path. An empty path yields "index".
func SlugFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	segment := rawURL
	if err == nil {
		segment = path.Base(strings.TrimSuffix(u.Path, "/"))
	}
	safe := strings.Trim(unsafeSlugChars.ReplaceAllString(segment, "_"), "_")
	if safe == "" || safe == "." {
		return "index"
	}
	return safe
}

var slugSeparators = regexp.MustCompile(`[-_]+`)

// TitleFromSlug produces a human-readable title guess from a slug, used when
// a page has no level-one heading.
func TitleFromSlug(slug string) string {
	words := slugSeparators.ReplaceAllString(slug, " ")
	return cases.Title(language.English).String(words)
}
