package obrdocs

// Cleaner sanitizes raw page HTML down to the content subtree.
//
// Clean is a deterministic pure function of its inputs: navigation chrome,
// decorative anchors, embedded media and non-semantic attributes are removed,
// and relative links are resolved against baseURL so that later link
// rewriting can work on absolute site URLs.
type Cleaner interface {
	Clean(rawHTML, baseURL string) (string, error)
}
