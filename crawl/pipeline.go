// Package crawl orchestrates a harvest run: discovering page tasks,
// resolving raw HTML through the cache, cleaning, converting to Markdown and
// recording the run manifest. Pages are processed strictly sequentially and
// a failing page never aborts the run.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/obrtools/obrdocs"
	"github.com/obrtools/obrdocs/fs"
)

// Pipeline wires the harvest stages together. All fields except Logger are
// required.
type Pipeline struct {
	Discoverer obrdocs.Discoverer
	Source     obrdocs.RawSource
	Cleaner    obrdocs.Cleaner
	Converter  obrdocs.Converter
	Layout     *fs.Layout
	Logger     *slog.Logger

	// Force bypasses the raw HTML cache for every task.
	Force bool
}

// Summary aggregates the run's outcome per category.
type Summary struct {
	Manifest *obrdocs.RunManifest
	Expected map[obrdocs.Category]int
	Produced map[obrdocs.Category]int
}

// CategoryLine formats one category's outcome, e.g. "apis: 12/14 succeeded".
func (s *Summary) CategoryLine(category obrdocs.Category) string {
	return fmt.Sprintf("%s: %d/%d succeeded", category, s.Produced[category], s.Expected[category])
}

// Lines returns the human-readable summary: one line per category with
// expected tasks, followed by the URLs that did not make it.
func (s *Summary) Lines() []string {
	var lines []string
	for _, category := range obrdocs.Categories() {
		if s.Expected[category] == 0 {
			continue
		}
		lines = append(lines, s.CategoryLine(category))
	}
	for _, task := range s.Manifest.MissingItems {
		lines = append(lines, "missing: "+TruncateURL(task.URL, missingURLWidth))
	}
	return lines
}

// missingURLWidth bounds missing-item URLs in the terminal summary.
const missingURLWidth = 80

// Run executes a harvest. When overrides is non-empty, discovery is skipped
// and the given tasks are processed instead. The manifest is written even
// when every page fails; an error is returned only for infrastructure
// problems such as an unwritable output root.
func (p *Pipeline) Run(ctx context.Context, overrides []obrdocs.PageTask) (*Summary, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := p.Layout.EnsureDirs(); err != nil {
		return nil, err
	}

	failures, err := os.OpenFile(p.Layout.FailuresLog(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, obrdocs.Errorf(obrdocs.EINTERNAL, "opening failures log: %v", err)
	}
	defer failures.Close()

	builder := obrdocs.NewManifestBuilder()

	tasks := overrides
	if len(tasks) == 0 {
		tasks = p.discover(ctx, logger)
	}
	tasks = dedupTasks(tasks)
	builder.Expect(tasks...)

	for _, task := range tasks {
		if ctx.Err() != nil {
			logger.Warn("run canceled", "err", ctx.Err())
			break
		}
		size, err := p.processTask(ctx, task, builder, logger)
		if err != nil {
			builder.AddFailure(task, err)
			logger.Error("page failed", "url", task.URL, "code", obrdocs.ErrorCode(err), "err", err)
			writeFailureLine(failures, task, err)
			continue
		}
		logger.Info("page done", "url", task.URL, "size", FormatBytes(size))
	}

	manifest := builder.Build(p.Layout.Root, time.Now())
	if err := fs.WriteManifest(p.Layout.URLMap(), manifest); err != nil {
		return nil, err
	}

	return summarize(manifest), nil
}

// discover collects tasks for every category. A category whose discovery
// fails contributes zero tasks; the run continues.
func (p *Pipeline) discover(ctx context.Context, logger *slog.Logger) []obrdocs.PageTask {
	var tasks []obrdocs.PageTask
	for _, category := range obrdocs.Categories() {
		found, err := p.Discoverer.Discover(ctx, category)
		if err != nil {
			logger.Error("discovery failed", "category", category, "err", err)
			continue
		}
		tasks = append(tasks, found...)
	}
	return tasks
}

// processTask runs one task through resolve, clean and convert, persisting
// each artifact as it is produced. It returns the size of the Markdown
// written.
func (p *Pipeline) processTask(ctx context.Context, task obrdocs.PageTask, builder *obrdocs.ManifestBuilder, logger *slog.Logger) (int, error) {
	if err := task.Validate(); err != nil {
		return 0, err
	}

	body, prov, err := p.Source.Resolve(ctx, task, p.Force)
	if err != nil {
		return 0, err
	}

	cleaned, err := p.Cleaner.Clean(string(body), task.URL)
	if err != nil {
		return 0, err
	}
	if err := fs.WriteFileAtomic(p.Layout.CleanedHTML(task), []byte(cleaned)); err != nil {
		return 0, obrdocs.Errorf(obrdocs.EINTERNAL, "writing cleaned HTML for %s: %v", task.URL, err)
	}

	doc, err := p.Converter.Convert(task, cleaned)
	if err != nil {
		if prov == obrdocs.ProvenanceCache {
			// The cached raw HTML may be stale or truncated. Refetching is
			// deliberately left to a later forced run.
			logger.Warn("conversion failed on cached input", "url", task.URL, "raw", p.Layout.RawHTML(task))
		}
		return 0, err
	}
	if err := fs.WriteFileAtomic(p.Layout.Markdown(task), []byte(doc.Markdown)); err != nil {
		return 0, obrdocs.Errorf(obrdocs.EINTERNAL, "writing Markdown for %s: %v", task.URL, err)
	}

	builder.AddItem(task, obrdocs.ManifestEntry{
		URL:         task.URL,
		Category:    task.Category,
		Title:       doc.Title,
		Slug:        task.Slug,
		RawHTML:     p.Layout.RelRawHTML(task),
		CleanedHTML: p.Layout.RelCleanedHTML(task),
		Markdown:    p.Layout.RelMarkdown(task),
		ContentHash: ContentHash(doc.Markdown),
	})
	return len(doc.Markdown), nil
}

// dedupTasks drops tasks with duplicate identities, preserving order.
func dedupTasks(tasks []obrdocs.PageTask) []obrdocs.PageTask {
	deduper := NewDeduper(uint(len(tasks)) + 1)
	out := tasks[:0:len(tasks)]
	for _, task := range tasks {
		if deduper.Seen(task.ID()) {
			continue
		}
		out = append(out, task)
	}
	return out
}

// writeFailureLine appends one tab-separated failure record.
func writeFailureLine(w *os.File, task obrdocs.PageTask, err error) {
	ts := time.Now().In(obrdocs.LogZone).Format("2006-01-02T15:04:05-07:00")
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ts, task.URL, obrdocs.ErrorCode(err), obrdocs.ErrorMessage(err))
}

// summarize derives per-category counts from a built manifest.
func summarize(manifest *obrdocs.RunManifest) *Summary {
	s := &Summary{
		Manifest: manifest,
		Expected: make(map[obrdocs.Category]int),
		Produced: make(map[obrdocs.Category]int),
	}
	for _, task := range manifest.ExpectedItems {
		s.Expected[task.Category]++
	}
	for _, item := range manifest.Items {
		s.Produced[item.Category]++
	}
	return s
}
