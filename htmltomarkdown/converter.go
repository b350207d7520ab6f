// Package htmltomarkdown converts sanitized HTML into the final
// GitHub-flavored Markdown artifact, including the post-processing pass that
// normalizes internal links and removes converter residue.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/obrtools/obrdocs"
)

// Ensure Converter implements obrdocs.Converter at compile time.
var _ obrdocs.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown and the post-processing pass.
type Converter struct {
	conv *converter.Converter
	post *PostProcessor
}

// NewConverter creates a Converter for the given site. The site determines
// which absolute links count as internal during link rewriting.
func NewConverter(site obrdocs.Site) *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{
		conv: conv,
		post: NewPostProcessor(site),
	}
}

// Convert transforms sanitized HTML into the final Markdown document.
// Converter failures and empty output are classified as conversion_failure.
func (c *Converter) Convert(task obrdocs.PageTask, cleanedHTML string) (*obrdocs.Document, error) {
	if strings.TrimSpace(cleanedHTML) == "" {
		return nil, obrdocs.Errorf(obrdocs.ECONVERSION, "empty HTML input for %s", task.URL)
	}

	markdown, err := c.conv.ConvertString(cleanedHTML)
	if err != nil {
		return nil, obrdocs.Errorf(obrdocs.ECONVERSION, "converting %s: %v", task.URL, err)
	}

	markdown = c.post.Process(markdown, task)
	if strings.TrimSpace(markdown) == "" {
		return nil, obrdocs.Errorf(obrdocs.ECONVERSION, "conversion of %s produced no output", task.URL)
	}

	title := firstHeading(markdown)
	if title == "" {
		title = obrdocs.TitleFromSlug(task.Slug)
	}

	return &obrdocs.Document{
		Task:     task,
		Title:    title,
		Markdown: markdown,
	}, nil
}

var headingPattern = regexp.MustCompile(`^#\s+(.+)$`)

// firstHeading returns the text of the first level-one heading outside
// fenced code blocks, or an empty string.
func firstHeading(markdown string) string {
	inFence := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
