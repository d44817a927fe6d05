// Package calc defines the computation contracts the trainer drives:
// the layer calculator that populates per-layer results for one
// example, and the output error accumulator that scores a pass.
//
// The results map passed to a LayerCalculator holds activations only.
// Weight tensors live on their connections and must never be inserted
// into the map: the trainer zeroes every tensor in the map between
// examples, so anything a calculator stores there is treated as
// per-example scratch space.
package calc

import (
	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/tensor"
)

// Frontier is the set of layers already computed for the current
// example. The trainer re-seeds it with just the input layer before
// each example; calculators use it as a memoization frontier and mark
// every layer they compute.
type Frontier map[*graph.Layer]struct{}

// Clear removes all layers from the frontier.
func (f Frontier) Clear() {
	for l := range f {
		delete(f, l)
	}
}

// Add marks a layer as computed.
func (f Frontier) Add(l *graph.Layer) {
	f[l] = struct{}{}
}

// Has reports whether a layer has been computed.
func (f Frontier) Has(l *graph.Layer) bool {
	_, ok := f[l]
	return ok
}

// Results maps each computed layer to its activation tensor for the
// current example. Tensors are reused across examples: the trainer
// zeroes them in place between examples, and calculators may rely on
// finding zero-initialized scratch space.
type Results map[*graph.Layer]*tensor.Tensor

// LayerCalculator computes and fills in all values needed to produce
// the target layer's output, respecting topological dependencies.
//
// Calculate mutates results and frontier in place. On a nil return,
// results[target] is populated; if the already-computed layers in the
// frontier are insufficient to reach target, Calculate fails without
// a partial guarantee about the map's contents.
type LayerCalculator interface {
	Calculate(frontier Frontier, results Results, target *graph.Layer) error
}

// OutputError accumulates (predicted, target) pairs across a test pass
// and produces a scalar aggregate error.
type OutputError interface {
	// AddSample scores one example's prediction against its target.
	AddSample(predicted, target *tensor.Tensor) error
	// TotalError returns the aggregate over all added samples.
	TotalError() float32
	// Reset discards accumulated state.
	Reset()
}
