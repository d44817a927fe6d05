// Package random provides weight initialization policies.
//
// An Initializer fills a weight tensor's flat backing store in place.
// Each buffer is initialized independently; initializers must not
// depend on the order in which the trainer hands them buffers.
package random

import (
	"math"
	"math/rand"
)

// Initializer fills a flat numeric buffer with values per an
// initialization policy.
type Initializer interface {
	Initialize(buf []float32)
}

// Uniform draws values from U(min, max).
type Uniform struct {
	min, max float32
	rng      *rand.Rand
}

// NewUniform creates a uniform initializer.
//
//nolint:gosec // math/rand is fine for weight initialization (not security-critical)
func NewUniform(min, max float32, seed int64) *Uniform {
	return &Uniform{min: min, max: max, rng: rand.New(rand.NewSource(seed))}
}

// Initialize fills buf with values in [min, max).
func (u *Uniform) Initialize(buf []float32) {
	span := u.max - u.min
	for i := range buf {
		buf[i] = u.min + u.rng.Float32()*span
	}
}

// Normal draws values from N(mean, stddev²).
type Normal struct {
	mean, stddev float32
	rng          *rand.Rand
}

// NewNormal creates a gaussian initializer.
//
//nolint:gosec // math/rand is fine for weight initialization (not security-critical)
func NewNormal(mean, stddev float32, seed int64) *Normal {
	return &Normal{mean: mean, stddev: stddev, rng: rand.New(rand.NewSource(seed))}
}

// Initialize fills buf with gaussian values.
func (n *Normal) Initialize(buf []float32) {
	for i := range buf {
		buf[i] = n.mean + float32(n.rng.NormFloat64())*n.stddev
	}
}

// Xavier draws values from the Glorot uniform distribution
// U(-sqrt(6/(fanIn+fanOut)), sqrt(6/(fanIn+fanOut))), which helps
// maintain activation variance across layers.
type Xavier struct {
	bound float64
	rng   *rand.Rand
}

// NewXavier creates a Glorot uniform initializer for the given fan-in
// and fan-out.
//
//nolint:gosec // math/rand is fine for weight initialization (not security-critical)
func NewXavier(fanIn, fanOut int, seed int64) *Xavier {
	return &Xavier{
		bound: math.Sqrt(6.0 / float64(fanIn+fanOut)),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Initialize fills buf with values in [-bound, bound].
func (x *Xavier) Initialize(buf []float32) {
	for i := range buf {
		buf[i] = float32((x.rng.Float64()*2.0 - 1.0) * x.bound)
	}
}
