// Package goquery implements HTML sanitization and index-page link
// extraction using CSS selectors. The selector lists target the Docusaurus
// markup the documentation site is built with.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/obrtools/obrdocs"
)

// mainSelectors identify the content container, tried in order. The first
// match wins.
var mainSelectors = []string{
	"article.theme-doc-markdown",
	"article .markdown",
	"main .theme-doc-markdown",
	"main .markdown",
	"#__docusaurus .markdown",
	`[itemprop="articleBody"]`,
	"article",
}

// noiseSelectors are removed from the content container: navigation chrome,
// sidebars, tables of contents, scripts and styles.
var noiseSelectors = []string{
	"header",
	"nav",
	"footer",
	"aside",
	".theme-doc-toc-desktop",
	".theme-doc-toc-mobile",
	".table-of-contents",
	".theme-doc-sidebar-container",
	".breadcrumbs",
	".pagination-nav",
	"script",
	"style",
	"noscript",
}

// mediaSelectors cover embedded media that never survives into Markdown.
var mediaSelectors = []string{
	"img",
	"picture",
	"source",
	"svg",
	"video",
	"audio",
	"iframe",
}

// Ensure Cleaner implements obrdocs.Cleaner at compile time.
var _ obrdocs.Cleaner = (*Cleaner)(nil)

// Cleaner sanitizes raw page HTML down to the content subtree.
//
// It selects the main content container, removes noise regions and media,
// strips decorative heading anchors, absolutizes links against the page URL
// and finally runs the result through an attribute allow-list policy so only
// content-relevant markup remains. The same input always produces the same
// output.
type Cleaner struct {
	policy   *bluemonday.Policy
	fallback obrdocs.Cleaner
}

// CleanerOption configures a Cleaner.
type CleanerOption func(*Cleaner)

// WithFallback sets a cleaner used when none of the structural selectors
// match the document.
func WithFallback(fallback obrdocs.Cleaner) CleanerOption {
	return func(c *Cleaner) {
		c.fallback = fallback
	}
}

// NewCleaner creates a new Cleaner.
func NewCleaner(opts ...CleanerOption) *Cleaner {
	c := &Cleaner{policy: contentPolicy()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// contentPolicy builds the attribute allow-list. Structural elements pass
// through, links keep their href, and pre/code keep their class so the
// converter can preserve code-block language tags. Everything else
// (styling, tracking, data attributes) is dropped.
func contentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"a", "p", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "dl", "dt", "dd",
		"pre", "code",
		"table", "thead", "tbody", "tfoot", "tr", "th", "td",
		"blockquote", "em", "strong", "b", "i", "u", "s", "sup", "sub",
		"br", "hr",
		"div", "span", "section", "article", "details", "summary",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("class").OnElements("pre", "code")
	return p
}

// Clean sanitizes rawHTML, resolving relative links against baseURL.
func (c *Cleaner) Clean(rawHTML, baseURL string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", obrdocs.Errorf(obrdocs.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", obrdocs.Errorf(obrdocs.EINVALID, "parsing HTML: %v", err)
	}

	main := pickMain(doc)
	if main == nil {
		if c.fallback != nil {
			// The fallback extracts content but keeps whatever attributes
			// its parser preserves; its output goes through the same noise
			// removal and sanitization below.
			extracted, err := c.fallback.Clean(rawHTML, baseURL)
			if err != nil {
				return "", err
			}
			doc, err = goquery.NewDocumentFromReader(strings.NewReader(extracted))
			if err != nil {
				return "", obrdocs.Errorf(obrdocs.EINTERNAL, "parsing fallback output: %v", err)
			}
		}
		main = doc.Find("body").First()
		if main.Length() == 0 {
			main = doc.Selection
		}
	}

	for _, sel := range noiseSelectors {
		main.Find(sel).Remove()
	}
	for _, sel := range mediaSelectors {
		main.Find(sel).Remove()
	}
	removeDecorativeAnchors(main)
	absolutizeLinks(main, baseURL)

	html, err := goquery.OuterHtml(main)
	if err != nil {
		return "", obrdocs.Errorf(obrdocs.EINTERNAL, "serializing content: %v", err)
	}

	return c.policy.Sanitize(html), nil
}

// pickMain returns the first matching content container, or nil when none of
// the structural selectors match.
func pickMain(doc *goquery.Document) *goquery.Selection {
	for _, sel := range mainSelectors {
		if m := doc.Find(sel).First(); m.Length() > 0 {
			return m
		}
	}
	return nil
}

// removeDecorativeAnchors drops the permalink anchors Docusaurus attaches to
// headings. They carry no content, only a "#fragment" link and a zero-width
// glyph.
func removeDecorativeAnchors(main *goquery.Selection) {
	main.Find("a.hash-link, a.anchor").Remove()
	main.Find(`a[href^="#"]`).Each(func(_ int, a *goquery.Selection) {
		if text := strings.TrimSpace(strings.ReplaceAll(a.Text(), "​", "")); text == "" {
			a.Remove()
		}
	})
}

// absolutizeLinks rewrites href attributes to absolute URLs so the Markdown
// post-processor can recognize internal documentation links.
func absolutizeLinks(main *goquery.Selection, baseURL string) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return
	}
	main.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		a.SetAttr("href", base.ResolveReference(ref).String())
	})
}

// Title extracts the page title from the first level-one heading of cleaned
// content, falling back to the provided default.
func Title(cleanedHTML, fallback string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleanedHTML))
	if err != nil {
		return fallback
	}
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		if text := strings.TrimSpace(strings.ReplaceAll(h1.Text(), "​", "")); text != "" {
			return text
		}
	}
	return fallback
}
