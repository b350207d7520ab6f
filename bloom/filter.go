// Package bloom provides a probabilistic seen-set used to prescreen task
// identities during discovery deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter over task identity strings. It answers "was
// this identity probably recorded already?" in constant space; callers must
// confirm probable hits against an exact set before acting on them.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for the expected number of identities
// with the given false positive rate.
func NewFilter(expected uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(expected, fpRate),
	}
}

// Add records a task identity.
func (f *Filter) Add(id string) {
	f.f.AddString(id)
}

// Test reports whether the identity might already be recorded. False
// positives are possible; false negatives are not.
func (f *Filter) Test(id string) bool {
	return f.f.TestString(id)
}
