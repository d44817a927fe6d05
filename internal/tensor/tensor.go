// Package tensor provides the flat float32 tensor type the evaluation
// engine computes over.
//
// A Tensor is a shape plus a contiguous row-major []float32 backing
// store. The backing store is exposed directly through Data so that
// collaborators (layer calculators, weight initializers, error
// accumulators) can work in place without copies. Zero resets the
// backing store in place; the buffer is never reallocated once created.
package tensor

import "fmt"

// Tensor is a multi-dimensional numeric buffer backed by a flat
// row-major []float32.
type Tensor struct {
	shape  Shape
	stride []int
	data   []float32
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &Tensor{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		data:   make([]float32, shape.NumElements()),
	}, nil
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's backing store.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	t, err := New(shape)
	if err != nil {
		return nil, err
	}
	copy(t.data, data)

	return t, nil
}

// Zeros creates a zero-filled tensor with the given shape.
// It panics on an invalid shape; use New when the shape is not known
// to be valid.
func Zeros(shape Shape) *Tensor {
	t, err := New(shape)
	if err != nil {
		panic(err)
	}
	return t
}

// Vector creates a 1-D tensor holding a copy of data.
func Vector(data []float32) *Tensor {
	t, err := FromSlice(data, Shape{len(data)})
	if err != nil {
		panic(err)
	}
	return t
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Strides returns the tensor's memory strides.
func (t *Tensor) Strides() []int {
	return t.stride
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// Data returns the flat backing store.
// Mutations through the returned slice are visible to every holder of
// the tensor.
func (t *Tensor) Data() []float32 {
	return t.data
}

// At returns the element at the given row-major indices.
func (t *Tensor) At(indices ...int) float32 {
	return t.data[t.offset(indices)]
}

// Set stores v at the given row-major indices.
func (t *Tensor) Set(v float32, indices ...int) {
	t.data[t.offset(indices)] = v
}

func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: got %d indices for shape %v", len(indices), t.shape))
	}
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d of shape %v", idx, i, t.shape))
		}
		off += idx * t.stride[i]
	}
	return off
}

// Zero fills the backing store with zeros in place.
// The buffer is reused, not reallocated: holders of Data keep observing
// the same storage.
func (t *Tensor) Zero() {
	for i := range t.data {
		t.data[i] = 0
	}
}

// IsZero reports whether every element is zero.
func (t *Tensor) IsZero() bool {
	for _, v := range t.data {
		if v != 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	clone := &Tensor{
		shape:  t.shape.Clone(),
		stride: append([]int(nil), t.stride...),
		data:   make([]float32, len(t.data)),
	}
	copy(clone.data, t.data)
	return clone
}

// CopyFrom copies src's elements into t's backing store in place.
func (t *Tensor) CopyFrom(src *Tensor) error {
	if !t.shape.Equal(src.shape) {
		return fmt.Errorf("shape mismatch: %v vs %v", t.shape, src.shape)
	}
	copy(t.data, src.data)
	return nil
}

// String returns a compact debug representation.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(shape=%v, data=%v)", t.shape, t.data)
}
