// Package data supplies labeled examples to the training engine.
//
// A Provider produces a lazy sequence of (input, target) pairs and
// signals exhaustion by returning nil. The trainer feeds each input
// tensor straight into its results map and later zeroes that buffer in
// place, so providers must hand out fresh tensors on every Next call
// rather than sharing long-lived ones.
package data

import "github.com/loom-ml/loom/internal/tensor"

// Example is one labeled (input, target) pair.
type Example struct {
	Input  *tensor.Tensor
	Target *tensor.Tensor
}

// Provider produces a finite or infinite sequence of examples.
type Provider interface {
	// Next returns the next example, or nil when the sequence is
	// exhausted.
	Next() *Example
	// Reset rewinds the provider to the start of its sequence.
	Reset()
	// Size returns the number of examples in one pass, or -1 if the
	// sequence is unbounded.
	Size() int
}

// SliceProvider serves a fixed in-memory list of examples.
type SliceProvider struct {
	examples []Example
	pos      int
}

// NewSliceProvider creates a provider over the given examples. The
// examples are held by reference; clones are handed out per call so
// the trainer's in-place buffer reset never touches the originals.
func NewSliceProvider(examples ...Example) *SliceProvider {
	return &SliceProvider{examples: examples}
}

// Next returns a fresh copy of the next example, or nil at the end.
func (p *SliceProvider) Next() *Example {
	if p.pos >= len(p.examples) {
		return nil
	}
	ex := p.examples[p.pos]
	p.pos++
	return &Example{
		Input:  ex.Input.Clone(),
		Target: ex.Target.Clone(),
	}
}

// Reset rewinds to the first example.
func (p *SliceProvider) Reset() {
	p.pos = 0
}

// Size returns the number of examples in one pass.
func (p *SliceProvider) Size() int {
	return len(p.examples)
}
