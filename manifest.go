package obrdocs

import (
	"time"

	"github.com/google/uuid"
)

// ManifestTimezone is the fixed offset used for all manifest and log
// timestamps, part of the output contract consumed by downstream tooling.
const ManifestTimezone = "UTC+08:00"

// LogZone is the time.Location corresponding to ManifestTimezone.
var LogZone = time.FixedZone("UTC+8", 8*60*60)

// ManifestEntry records one fully produced page with relative paths to its
// artifacts inside the output root.
type ManifestEntry struct {
	URL         string   `json:"url"`
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	RawHTML     string   `json:"raw_html"`
	CleanedHTML string   `json:"cleaned_html"`
	Markdown    string   `json:"markdown"`
	ContentHash string   `json:"content_hash,omitempty"`
}

// Failure records a task that did not make it through the pipeline, with the
// final error cause so a later run can target retries without rediscovery.
type Failure struct {
	Task  PageTask `json:"task"`
	Code  string   `json:"code"`
	Cause string   `json:"cause"`
}

// RunManifest is the run-level record written to url-map.json.
//
// Invariant: ExpectedItems is a superset of Items ∪ MissingItems by task
// identity, and no task appears in both Items and MissingItems.
type RunManifest struct {
	ID            string          `json:"id"`
	GeneratedAt   string          `json:"generated_at"`
	Timezone      string          `json:"timezone"`
	OutputRoot    string          `json:"output_root"`
	ExpectedItems []PageTask      `json:"expected_items"`
	Items         []ManifestEntry `json:"items"`
	MissingItems  []PageTask      `json:"missing_items"`
}

// ManifestBuilder accumulates expected tasks, produced entries and failures
// over a run and emits a RunManifest that satisfies the partition invariant.
type ManifestBuilder struct {
	expected []PageTask
	seen     map[string]struct{}
	items    []ManifestEntry
	done     map[string]struct{}
	failures []Failure
}

// NewManifestBuilder returns an empty ManifestBuilder.
func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{
		seen: make(map[string]struct{}),
		done: make(map[string]struct{}),
	}
}

// Expect registers tasks the run intends to process. Duplicate identities
// are ignored.
func (b *ManifestBuilder) Expect(tasks ...PageTask) {
	for _, t := range tasks {
		if _, ok := b.seen[t.ID()]; ok {
			continue
		}
		b.seen[t.ID()] = struct{}{}
		b.expected = append(b.expected, t)
	}
}

// Expected returns the registered tasks in registration order.
func (b *ManifestBuilder) Expected() []PageTask {
	return b.expected
}

// AddItem records a fully successful task. Unexpected tasks are registered
// as expected first so the superset invariant holds.
func (b *ManifestBuilder) AddItem(task PageTask, entry ManifestEntry) {
	b.Expect(task)
	if _, ok := b.done[task.ID()]; ok {
		return
	}
	b.done[task.ID()] = struct{}{}
	b.items = append(b.items, entry)
}

// AddFailure records a task that failed at any pipeline stage, retaining the
// final error cause.
func (b *ManifestBuilder) AddFailure(task PageTask, err error) {
	b.Expect(task)
	b.failures = append(b.failures, Failure{
		Task:  task,
		Code:  ErrorCode(err),
		Cause: ErrorMessage(err),
	})
}

// Failures returns all recorded failures in order.
func (b *ManifestBuilder) Failures() []Failure {
	return b.failures
}

// Build emits the RunManifest. Missing items are the expected tasks that
// never produced an entry, so items and missing partition the processed set.
func (b *ManifestBuilder) Build(outputRoot string, now time.Time) *RunManifest {
	missing := []PageTask{}
	for _, t := range b.expected {
		if _, ok := b.done[t.ID()]; !ok {
			missing = append(missing, t)
		}
	}

	items := b.items
	if items == nil {
		items = []ManifestEntry{}
	}
	expected := b.expected
	if expected == nil {
		expected = []PageTask{}
	}

	return &RunManifest{
		ID:            uuid.NewString(),
		GeneratedAt:   now.In(LogZone).Format("2006-01-02T15:04:05-07:00"),
		Timezone:      ManifestTimezone,
		OutputRoot:    outputRoot,
		ExpectedItems: expected,
		Items:         items,
		MissingItems:  missing,
	}
}
