package crawl

import "github.com/obrtools/obrdocs/bloom"

// dedupFalsePositiveRate sizes the Bloom prefilter. False positives only
// cost a map lookup, never a dropped task.
const dedupFalsePositiveRate = 0.01

// Deduper tracks seen task identities. A Bloom filter screens the common
// case; an exact set confirms every probable hit, so a false positive can
// never discard a real task.
type Deduper struct {
	probable *bloom.Filter
	seen     map[string]struct{}
}

// NewDeduper creates a Deduper sized for the expected number of identities.
func NewDeduper(expected uint) *Deduper {
	if expected == 0 {
		expected = 1
	}
	return &Deduper{
		probable: bloom.NewFilter(expected, dedupFalsePositiveRate),
		seen:     make(map[string]struct{}),
	}
}

// Seen reports whether id has been seen before, recording it either way.
func (d *Deduper) Seen(id string) bool {
	if d.probable.Test(id) {
		if _, ok := d.seen[id]; ok {
			return true
		}
	}
	d.probable.Add(id)
	d.seen[id] = struct{}{}
	return false
}

// Len returns the number of distinct identities recorded.
func (d *Deduper) Len() int {
	return len(d.seen)
}
