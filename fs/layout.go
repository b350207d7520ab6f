// Package fs provides the on-disk layout of a harvest run: the raw HTML
// cache, intermediate cleaned HTML, final Markdown, logs and the run
// manifest.
package fs

import (
	"os"
	"path"
	"path/filepath"

	"github.com/obrtools/obrdocs"
)

// Layout maps page tasks to file paths under a single output root.
//
// The tree is:
//
//	<root>/raw_html/<category>/<slug>.html
//	<root>/cleaned_html/<category>/<slug>.html
//	<root>/md/<category>/<slug>.md
//	<root>/logs/run.log
//	<root>/logs/failures.txt
//	<root>/url-map.json
type Layout struct {
	Root string
}

// NewLayout creates a Layout rooted at root.
func NewLayout(root string) *Layout {
	return &Layout{Root: root}
}

// RawHTML returns the absolute path of the task's raw HTML cache file.
func (l *Layout) RawHTML(task obrdocs.PageTask) string {
	return filepath.Join(l.Root, filepath.FromSlash(l.RelRawHTML(task)))
}

// CleanedHTML returns the absolute path of the task's cleaned HTML file.
func (l *Layout) CleanedHTML(task obrdocs.PageTask) string {
	return filepath.Join(l.Root, filepath.FromSlash(l.RelCleanedHTML(task)))
}

// Markdown returns the absolute path of the task's Markdown file.
func (l *Layout) Markdown(task obrdocs.PageTask) string {
	return filepath.Join(l.Root, filepath.FromSlash(l.RelMarkdown(task)))
}

// RelRawHTML returns the task's raw HTML path relative to the output root,
// with forward slashes. Relative paths are what the manifest records.
func (l *Layout) RelRawHTML(task obrdocs.PageTask) string {
	return path.Join("raw_html", string(task.Category), task.Slug+".html")
}

// RelCleanedHTML returns the task's cleaned HTML path relative to the root.
func (l *Layout) RelCleanedHTML(task obrdocs.PageTask) string {
	return path.Join("cleaned_html", string(task.Category), task.Slug+".html")
}

// RelMarkdown returns the task's Markdown path relative to the root.
func (l *Layout) RelMarkdown(task obrdocs.PageTask) string {
	return path.Join("md", string(task.Category), task.Slug+".md")
}

// RunLog returns the absolute path of the run log.
func (l *Layout) RunLog() string {
	return filepath.Join(l.Root, "logs", "run.log")
}

// FailuresLog returns the absolute path of the failures log.
func (l *Layout) FailuresLog() string {
	return filepath.Join(l.Root, "logs", "failures.txt")
}

// URLMap returns the absolute path of the run manifest.
func (l *Layout) URLMap() string {
	return filepath.Join(l.Root, "url-map.json")
}

// EnsureDirs creates the per-category directories and the logs directory.
func (l *Layout) EnsureDirs() error {
	dirs := []string{filepath.Join(l.Root, "logs")}
	for _, category := range obrdocs.Categories() {
		dirs = append(dirs,
			filepath.Join(l.Root, "raw_html", string(category)),
			filepath.Join(l.Root, "cleaned_html", string(category)),
			filepath.Join(l.Root, "md", string(category)),
		)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return obrdocs.Errorf(obrdocs.EINTERNAL, "creating %s: %v", dir, err)
		}
	}
	return nil
}
