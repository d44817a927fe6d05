// Package graph models a network as a directed acyclic graph of layers
// joined by connections.
//
// Layers are identity nodes: the engine compares them by pointer and
// never creates or destroys them once a network is built. Connections
// come in two flavors — some own a learnable weight tensor, some do
// not (pooling and pass-through edges). Rather than type-switching on
// concrete connection types, code that cares about weights queries the
// Weighted capability interface.
package graph

import (
	"fmt"

	"github.com/loom-ml/loom/internal/tensor"
)

// Layer is a node in the computation graph representing one stage of
// transformation. Layers have identity, not behavior: what a layer
// computes is the calculator's business.
type Layer struct {
	name string
}

// NewLayer creates a named layer.
func NewLayer(name string) *Layer {
	return &Layer{name: name}
}

// Name returns the layer's name.
func (l *Layer) Name() string {
	return l.name
}

func (l *Layer) String() string {
	return l.name
}

// Connection is an edge between two layers.
type Connection interface {
	// From returns the source layer.
	From() *Layer
	// To returns the destination layer.
	To() *Layer
}

// Weighted is the capability interface for connections that own a
// learnable weight tensor. Weight initialization and training touch
// only connections that implement it; everything else is skipped.
type Weighted interface {
	Connection

	// Weights returns the connection's weight tensor. The tensor's
	// flat backing store is shared, mutable state: initializers and
	// optimizers write it in place.
	Weights() *tensor.Tensor
}

// Dense is a fully connected edge owning a [rows, cols] weight tensor,
// where rows is the destination layer's width and cols the source
// layer's width.
type Dense struct {
	from, to *Layer
	weights  *tensor.Tensor
}

// NewDense creates a dense connection with zero-valued weights.
func NewDense(from, to *Layer, rows, cols int) (*Dense, error) {
	w, err := tensor.New(tensor.Shape{rows, cols})
	if err != nil {
		return nil, fmt.Errorf("dense %s->%s: %w", from, to, err)
	}
	return &Dense{from: from, to: to, weights: w}, nil
}

// From returns the source layer.
func (d *Dense) From() *Layer { return d.from }

// To returns the destination layer.
func (d *Dense) To() *Layer { return d.to }

// Weights returns the owned weight tensor.
func (d *Dense) Weights() *tensor.Tensor { return d.weights }

// Rows returns the destination width.
func (d *Dense) Rows() int { return d.weights.Shape()[0] }

// Cols returns the source width.
func (d *Dense) Cols() int { return d.weights.Shape()[1] }

// Identity is an unweighted pass-through edge. Both layers must have
// the same width; the destination receives the source activation
// unchanged.
type Identity struct {
	from, to *Layer
}

// NewIdentity creates an identity connection.
func NewIdentity(from, to *Layer) *Identity {
	return &Identity{from: from, to: to}
}

// From returns the source layer.
func (c *Identity) From() *Layer { return c.from }

// To returns the destination layer.
func (c *Identity) To() *Layer { return c.to }

// Network is a directed acyclic graph of layers with one designated
// input layer and one designated output layer for the data path being
// evaluated.
type Network struct {
	input       *Layer
	output      *Layer
	connections []Connection
}

// NewNetwork creates a network over the given connections.
func NewNetwork(input, output *Layer, connections ...Connection) (*Network, error) {
	if input == nil || output == nil {
		return nil, fmt.Errorf("network requires both an input and an output layer")
	}
	return &Network{
		input:       input,
		output:      output,
		connections: connections,
	}, nil
}

// InputLayer returns the designated input layer.
func (n *Network) InputLayer() *Layer { return n.input }

// OutputLayer returns the designated output layer.
func (n *Network) OutputLayer() *Layer { return n.output }

// Connections returns the network's edge list.
func (n *Network) Connections() []Connection {
	return n.connections
}

// IngoingTo returns the connections whose destination is layer.
func (n *Network) IngoingTo(layer *Layer) []Connection {
	var in []Connection
	for _, c := range n.connections {
		if c.To() == layer {
			in = append(in, c)
		}
	}
	return in
}

// Layers returns every layer referenced by the network's connections,
// plus the input and output layers, each exactly once.
func (n *Network) Layers() []*Layer {
	seen := make(map[*Layer]struct{})
	var layers []*Layer
	add := func(l *Layer) {
		if l == nil {
			return
		}
		if _, ok := seen[l]; ok {
			return
		}
		seen[l] = struct{}{}
		layers = append(layers, l)
	}

	add(n.input)
	for _, c := range n.connections {
		add(c.From())
		add(c.To())
	}
	add(n.output)
	return layers
}
