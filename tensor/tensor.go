// Copyright 2026 Loom ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the flat float32 tensors
// the evaluation engine computes over.
//
// Example:
//
//	x := tensor.Vector([]float32{1, 2, 3})
//	x.Zero() // reset in place
package tensor

import (
	"github.com/loom-ml/loom/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} represents a 2×3 matrix.
type Shape = tensor.Shape

// Tensor is a multi-dimensional numeric buffer backed by a flat
// row-major []float32.
type Tensor = tensor.Tensor

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// FromSlice creates a tensor holding a copy of data.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a zero-filled tensor, panicking on an invalid shape.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Vector creates a 1-D tensor holding a copy of data.
func Vector(data []float32) *Tensor {
	return tensor.Vector(data)
}
