package goquery_test

import (
	"testing"

	"github.com/obrtools/obrdocs"
	"github.com/obrtools/obrdocs/goquery"
	"github.com/obrtools/obrdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://docs.owlbear.rodeo/extensions/apis/action"

func TestCleaner_Clean(t *testing.T) {
	t.Parallel()

	t.Run("keeps content, drops chrome", func(t *testing.T) {
		t.Parallel()

		raw := `<html><body>
<nav class="navbar">Site navigation</nav>
<aside class="theme-doc-sidebar-container">Sidebar</aside>
<article class="theme-doc-markdown">
<nav class="breadcrumbs">Home / APIs</nav>
<h1>Action</h1>
<p>Controls the action popover.</p>
<div class="theme-doc-toc-desktop">On this page</div>
<nav class="pagination-nav">Previous / Next</nav>
</article>
<footer>Copyright</footer>
</body></html>`

		out, err := goquery.NewCleaner().Clean(raw, pageURL)
		require.NoError(t, err)

		assert.Contains(t, out, "<h1>Action</h1>")
		assert.Contains(t, out, "Controls the action popover.")
		assert.NotContains(t, out, "Site navigation")
		assert.NotContains(t, out, "Sidebar")
		assert.NotContains(t, out, "On this page")
		assert.NotContains(t, out, "Home / APIs")
		assert.NotContains(t, out, "Previous / Next")
		assert.NotContains(t, out, "Copyright")
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		raw := `<article class="theme-doc-markdown"><h1>Player</h1><p>State of the local player.</p></article>`

		c := goquery.NewCleaner()
		first, err := c.Clean(raw, pageURL)
		require.NoError(t, err)
		second, err := c.Clean(raw, pageURL)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("removes media and scripts", func(t *testing.T) {
		t.Parallel()

		raw := `<article class="theme-doc-markdown">
<p>Text</p>
<img src="/img/a.png" alt="screenshot">
<svg><path d="M0 0"/></svg>
<iframe src="https://example.com/embed"></iframe>
<script>track()</script>
</article>`

		out, err := goquery.NewCleaner().Clean(raw, pageURL)
		require.NoError(t, err)
		assert.Contains(t, out, "Text")
		assert.NotContains(t, out, "img")
		assert.NotContains(t, out, "svg")
		assert.NotContains(t, out, "iframe")
		assert.NotContains(t, out, "track()")
	})

	t.Run("removes decorative heading anchors", func(t *testing.T) {
		t.Parallel()

		raw := `<article class="theme-doc-markdown">
<h2>Setup<a class="hash-link" href="#setup">​</a></h2>
<h2>Usage<a href="#usage">​</a></h2>
<p>See the <a href="#setup">setup section</a> above.</p>
</article>`

		out, err := goquery.NewCleaner().Clean(raw, pageURL)
		require.NoError(t, err)
		assert.NotContains(t, out, "hash-link")
		assert.NotContains(t, out, `href="#usage"`)
		// Anchors with real text survive.
		assert.Contains(t, out, "setup section")
	})

	t.Run("absolutizes relative links", func(t *testing.T) {
		t.Parallel()

		raw := `<article class="theme-doc-markdown">
<p><a href="/extensions/apis/player">player</a></p>
</article>`

		out, err := goquery.NewCleaner().Clean(raw, pageURL)
		require.NoError(t, err)
		assert.Contains(t, out, `href="https://docs.owlbear.rodeo/extensions/apis/player"`)
	})

	t.Run("strips styling and tracking attributes", func(t *testing.T) {
		t.Parallel()

		raw := `<article class="theme-doc-markdown">
<p style="color:red" data-track="1">Text</p>
<pre><code class="language-ts">let x = 1;</code></pre>
</article>`

		out, err := goquery.NewCleaner().Clean(raw, pageURL)
		require.NoError(t, err)
		assert.NotContains(t, out, "style=")
		assert.NotContains(t, out, "data-track")
		// Code block language class must survive for the converter.
		assert.Contains(t, out, `class="language-ts"`)
	})

	t.Run("falls back to body when no selector matches", func(t *testing.T) {
		t.Parallel()

		raw := `<html><body><p>Plain page.</p></body></html>`

		out, err := goquery.NewCleaner().Clean(raw, pageURL)
		require.NoError(t, err)
		assert.Contains(t, out, "Plain page.")
	})

	t.Run("uses configured fallback cleaner", func(t *testing.T) {
		t.Parallel()

		fallback := &mock.Cleaner{
			CleanFn: func(rawHTML, baseURL string) (string, error) {
				return "<p>from fallback</p>", nil
			},
		}

		out, err := goquery.NewCleaner(goquery.WithFallback(fallback)).
			Clean(`<html><body><p>Plain page.</p></body></html>`, pageURL)
		require.NoError(t, err)
		assert.Equal(t, "<p>from fallback</p>", out)
	})

	t.Run("fallback output is sanitized like the selector path", func(t *testing.T) {
		t.Parallel()

		fallback := &mock.Cleaner{
			CleanFn: func(rawHTML, baseURL string) (string, error) {
				return `<div id="content"><p style="color:red" data-track="1">rescued text</p>` +
					`<img src="/img/a.png"><a class="hash-link" href="#top">​</a></div>`, nil
			},
		}

		out, err := goquery.NewCleaner(goquery.WithFallback(fallback)).
			Clean(`<html><body><p>Plain page.</p></body></html>`, pageURL)
		require.NoError(t, err)
		assert.Contains(t, out, "rescued text")
		assert.NotContains(t, out, "style=")
		assert.NotContains(t, out, "data-track")
		assert.NotContains(t, out, "img")
		assert.NotContains(t, out, "hash-link")
	})

	t.Run("fallback errors propagate", func(t *testing.T) {
		t.Parallel()

		fallback := &mock.Cleaner{
			CleanFn: func(rawHTML, baseURL string) (string, error) {
				return "", obrdocs.Errorf(obrdocs.ECONVERSION, "no content found")
			},
		}

		_, err := goquery.NewCleaner(goquery.WithFallback(fallback)).
			Clean(`<html><body><p>Plain page.</p></body></html>`, pageURL)
		require.Error(t, err)
		assert.Equal(t, obrdocs.ECONVERSION, obrdocs.ErrorCode(err))
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewCleaner().Clean("  ", pageURL)
		require.Error(t, err)
		assert.Equal(t, obrdocs.EINVALID, obrdocs.ErrorCode(err))
	})
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Action", goquery.Title("<h1>Action</h1><p>x</p>", "Fallback"))
	assert.Equal(t, "Fallback", goquery.Title("<p>no heading</p>", "Fallback"))
	assert.Equal(t, "Fallback", goquery.Title("<h1>​</h1>", "Fallback"))
}
