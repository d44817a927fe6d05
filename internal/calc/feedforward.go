package calc

import (
	"fmt"

	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/parallel"
	"github.com/loom-ml/loom/internal/tensor"
)

// Feedforward is a LayerCalculator for acyclic networks. A layer's
// activation is the sum of the contributions of its incoming
// connections: dense connections contribute a matrix-vector product,
// identity connections contribute the source activation unchanged.
//
// Output buffers are taken from the results map when present (they are
// expected to be zero-filled, which the trainer guarantees between
// examples) and allocated on first use otherwise.
type Feedforward struct {
	network *graph.Network
	par     parallel.Config
}

// NewFeedforward creates a calculator over the given network.
func NewFeedforward(network *graph.Network) *Feedforward {
	return &Feedforward{
		network: network,
		par:     parallel.DefaultConfig(),
	}
}

// Calculate populates results up to target, memoizing through frontier.
func (f *Feedforward) Calculate(frontier Frontier, results Results, target *graph.Layer) error {
	if frontier.Has(target) {
		if results[target] == nil {
			return fmt.Errorf("layer %s marked computed but has no result", target)
		}
		return nil
	}

	ingoing := f.network.IngoingTo(target)
	if len(ingoing) == 0 {
		return fmt.Errorf("layer %s has no incoming connections and no precomputed result", target)
	}

	// Dependencies first.
	for _, c := range ingoing {
		if err := f.Calculate(frontier, results, c.From()); err != nil {
			return err
		}
	}

	out, err := f.outputBuffer(results, target, ingoing)
	if err != nil {
		return err
	}

	for _, c := range ingoing {
		in := results[c.From()]
		if err := f.apply(c, in, out); err != nil {
			return err
		}
	}

	results[target] = out
	frontier.Add(target)
	return nil
}

// outputBuffer reuses the tensor already mapped to layer, or allocates
// one sized from the layer's incoming connections.
func (f *Feedforward) outputBuffer(results Results, layer *graph.Layer, ingoing []graph.Connection) (*tensor.Tensor, error) {
	if out, ok := results[layer]; ok && out != nil {
		return out, nil
	}

	width, err := layerWidth(results, ingoing)
	if err != nil {
		return nil, fmt.Errorf("layer %s: %w", layer, err)
	}
	return tensor.New(tensor.Shape{width})
}

func layerWidth(results Results, ingoing []graph.Connection) (int, error) {
	for _, c := range ingoing {
		switch conn := c.(type) {
		case *graph.Dense:
			return conn.Rows(), nil
		default:
			if in := results[c.From()]; in != nil {
				return in.NumElements(), nil
			}
		}
	}
	return 0, fmt.Errorf("cannot infer output width from %d connections", len(ingoing))
}

// apply accumulates one connection's contribution into out.
func (f *Feedforward) apply(c graph.Connection, in, out *tensor.Tensor) error {
	switch conn := c.(type) {
	case *graph.Dense:
		return f.matvec(conn, in, out)
	default:
		if in.NumElements() != out.NumElements() {
			return fmt.Errorf("connection %s->%s: width mismatch %d vs %d",
				c.From(), c.To(), in.NumElements(), out.NumElements())
		}
		inData, outData := in.Data(), out.Data()
		for i := range outData {
			outData[i] += inData[i]
		}
		return nil
	}
}

// matvec computes out += W·in, parallelized over output rows.
func (f *Feedforward) matvec(conn *graph.Dense, in, out *tensor.Tensor) error {
	rows, cols := conn.Rows(), conn.Cols()
	if in.NumElements() != cols {
		return fmt.Errorf("connection %s->%s: input width %d, weights expect %d",
			conn.From(), conn.To(), in.NumElements(), cols)
	}
	if out.NumElements() != rows {
		return fmt.Errorf("connection %s->%s: output width %d, weights produce %d",
			conn.From(), conn.To(), out.NumElements(), rows)
	}

	w := conn.Weights().Data()
	inData, outData := in.Data(), out.Data()

	parallel.For(rows, func(r int) {
		row := w[r*cols : (r+1)*cols]
		var sum float32
		for c, v := range row {
			sum += v * inData[c]
		}
		outData[r] += sum
	}, f.par)

	return nil
}
