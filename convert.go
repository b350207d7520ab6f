package obrdocs

// Document is the final artifact produced for a task: link-normalized
// GitHub-flavored Markdown plus the page title.
type Document struct {
	Task     PageTask
	Title    string
	Markdown string
}

// Converter turns sanitized HTML into the final Markdown document.
//
// The title is taken from the first-level heading of the content, falling
// back to a title derived from the task slug. Conversion failures (including
// empty converter output) use the ECONVERSION error code. The Markdown must
// contain no residual markup of the stripped tag classes outside fenced code
// blocks.
type Converter interface {
	Convert(task PageTask, cleanedHTML string) (*Document, error)
}
