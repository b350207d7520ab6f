package htmltomarkdown

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/obrtools/obrdocs"
	"golang.org/x/net/html/atom"
)

// PostProcessor normalizes converter output. All transforms skip fenced code
// blocks and inline code spans, where angle brackets and URLs are content.
type PostProcessor struct {
	site obrdocs.Site
}

// NewPostProcessor creates a PostProcessor for the given site.
func NewPostProcessor(site obrdocs.Site) *PostProcessor {
	return &PostProcessor{site: site}
}

var (
	// Decorative heading permalinks: an empty or zero-width-space link
	// target pointing at a fragment, e.g. [​](#setup "Direct link to Setup").
	anchorArtifactPattern = regexp.MustCompile(`\[(?:\s|\x{200B})*\]\(#[^)]*\)`)

	// Inline image references.
	imagePattern = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)

	// Absolute link targets, candidates for internal-link rewriting.
	linkTargetPattern = regexp.MustCompile(`\]\((https?://[^)\s]+)\)`)

	// Anything shaped like an HTML tag; the name is validated against the
	// known HTML element set before stripping.
	tagPattern = regexp.MustCompile(`</?([A-Za-z][A-Za-z0-9-]*)(?:\s[^<>]*)?/?>`)
)

// Process applies the post-processing pass: residual image references are
// dropped, heading anchor artifacts removed, internal documentation links
// rewritten to relative local paths, and leftover HTML tags stripped while
// keeping their text.
func (p *PostProcessor) Process(markdown string, task obrdocs.PageTask) string {
	lines := strings.Split(markdown, "\n")
	inFence := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		lines[i] = mapOutsideInlineCode(line, func(s string) string {
			s = imagePattern.ReplaceAllString(s, "")
			s = anchorArtifactPattern.ReplaceAllString(s, "")
			s = p.rewriteLinks(s, task)
			s = stripKnownTags(s)
			return s
		})
	}

	return strings.Join(lines, "\n")
}

// mapOutsideInlineCode applies fn to the segments of line that are outside
// backtick code spans.
func mapOutsideInlineCode(line string, fn func(string) string) string {
	segments := strings.Split(line, "`")
	for i := 0; i < len(segments); i += 2 {
		segments[i] = fn(segments[i])
	}
	return strings.Join(segments, "`")
}

// rewriteLinks turns absolute links under the site's category prefixes into
// relative local paths matching the md/<category>/<slug>.md layout. The path
// is relative to the file being produced, so same-category links stay flat
// and cross-category links go through the parent directory.
func (p *PostProcessor) rewriteLinks(s string, task obrdocs.PageTask) string {
	return linkTargetPattern.ReplaceAllStringFunc(s, func(match string) string {
		target := linkTargetPattern.FindStringSubmatch(match)[1]

		u, err := url.Parse(target)
		if err != nil {
			return match
		}
		fragment := u.Fragment

		linked, err := p.site.TaskFromURL(target)
		if err != nil {
			// External or out-of-scope link; leave it absolute.
			return match
		}

		var rel string
		if linked.Category == task.Category {
			rel = linked.Slug + ".md"
		} else {
			rel = "../" + string(linked.Category) + "/" + linked.Slug + ".md"
		}
		if fragment != "" {
			rel += "#" + fragment
		}
		return "](" + rel + ")"
	})
}

// stripKnownTags removes residual HTML tags whose name is a known HTML
// element, keeping any text between them. Unknown angle-bracket text (e.g.
// generic type parameters) is left alone.
func stripKnownTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return tagPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := tagPattern.FindStringSubmatch(match)[1]
		if atom.Lookup([]byte(strings.ToLower(name))) != 0 {
			return ""
		}
		return match
	})
}

// HasStrayTags reports whether markdown still contains tags of known HTML
// elements outside fenced code blocks and inline code spans. It is the
// verifiable post-condition of the conversion pass.
func HasStrayTags(markdown string) bool {
	lines := strings.Split(markdown, "\n")
	inFence := false
	found := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence || found {
			continue
		}
		mapOutsideInlineCode(line, func(s string) string {
			for _, m := range tagPattern.FindAllStringSubmatch(s, -1) {
				if atom.Lookup([]byte(strings.ToLower(m[1]))) != 0 {
					found = true
				}
			}
			return s
		})
	}
	return found
}
