// Copyright 2026 Loom ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the public API for driving evaluation passes
// over a layer graph.
//
// Example:
//
//	trainer := train.New(train.Config{
//	    Network:         network,
//	    TestingProvider: provider,
//	    OutputError:     train.NewMeanAbsoluteError(),
//	    Calculator:      train.NewFeedforward(network),
//	})
//	trainer.Subscribe(train.NewProgress(1000))
//	total, err := trainer.Evaluate()
package train

import (
	"github.com/loom-ml/loom/internal/calc"
	"github.com/loom-ml/loom/internal/data"
	"github.com/loom-ml/loom/internal/events"
	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/random"
	"github.com/loom-ml/loom/internal/training"
)

// Graph types

// Layer is an identity node in the computation graph.
type Layer = graph.Layer

// Connection is an edge between two layers.
type Connection = graph.Connection

// Weighted is the capability interface for connections owning a weight
// tensor.
type Weighted = graph.Weighted

// Dense is a fully connected edge with a [rows, cols] weight tensor.
type Dense = graph.Dense

// Identity is an unweighted pass-through edge.
type Identity = graph.Identity

// Network is a layer graph with designated input and output layers.
type Network = graph.Network

// NewLayer creates a named layer.
func NewLayer(name string) *Layer { return graph.NewLayer(name) }

// NewDense creates a dense connection with zero-valued weights.
func NewDense(from, to *Layer, rows, cols int) (*Dense, error) {
	return graph.NewDense(from, to, rows, cols)
}

// NewIdentity creates an identity connection.
func NewIdentity(from, to *Layer) *Identity { return graph.NewIdentity(from, to) }

// NewNetwork creates a network over the given connections.
func NewNetwork(input, output *Layer, connections ...Connection) (*Network, error) {
	return graph.NewNetwork(input, output, connections...)
}

// Collaborator contracts

// LayerCalculator fills per-layer results up to a target layer.
type LayerCalculator = calc.LayerCalculator

// OutputError aggregates prediction error across a pass.
type OutputError = calc.OutputError

// Example is one labeled (input, target) pair.
type Example = data.Example

// Provider produces a sequence of examples, nil when exhausted.
type Provider = data.Provider

// Initializer fills a weight buffer in place.
type Initializer = random.Initializer

// NewFeedforward creates a calculator for acyclic networks.
func NewFeedforward(network *Network) *calc.Feedforward {
	return calc.NewFeedforward(network)
}

// NewMeanAbsoluteError creates an MAE accumulator.
func NewMeanAbsoluteError() *calc.MeanAbsoluteError { return calc.NewMeanAbsoluteError() }

// NewMeanSquaredError creates an MSE accumulator.
func NewMeanSquaredError() *calc.MeanSquaredError { return calc.NewMeanSquaredError() }

// NewSliceProvider creates a provider over in-memory examples.
func NewSliceProvider(examples ...Example) *data.SliceProvider {
	return data.NewSliceProvider(examples...)
}

// NewXavier creates a Glorot uniform initializer.
func NewXavier(fanIn, fanOut int, seed int64) *random.Xavier {
	return random.NewXavier(fanIn, fanOut, seed)
}

// Events

// Event is an immutable lifecycle record.
type Event = events.Event

// Listener receives events synchronously during dispatch.
type Listener = events.Listener

// Event kinds.
const (
	TrainingStarted  = events.TrainingStarted
	TrainingFinished = events.TrainingFinished
	SampleFinished   = events.SampleFinished
	TestingFinished  = events.TestingFinished
)

// Trainer

// Config holds the trainer's optional collaborator slots.
type Config = training.Config

// Trainer drives evaluation passes and weight initialization.
type Trainer = training.Trainer

// New creates a trainer with the given configuration.
func New(cfg Config) *Trainer { return training.New(cfg) }

// NewProgress creates a progress-logging listener.
func NewProgress(every int) *training.Progress { return training.NewProgress(every) }
