// Package training contains the orchestrator that drives evaluation
// passes over a layer graph.
//
// The Trainer composes externally-owned collaborators — an input
// provider, a layer calculator, an output error accumulator, and an
// optional weight initializer — into the test loop. It is deliberately
// tolerant of partial configuration: evaluating with a missing
// collaborator is a no-op that reports zero error, which keeps
// half-wired experimental setups from crashing.
//
// A Trainer is single-threaded. The results map and calculated-layers
// frontier are private mutable scratch state with no synchronization;
// concurrent Evaluate calls on one Trainer are undefined. Use one
// Trainer per worker.
package training

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/loom-ml/loom/internal/calc"
	"github.com/loom-ml/loom/internal/data"
	"github.com/loom-ml/loom/internal/events"
	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/random"
)

// Config holds the trainer's collaborator slots. Every slot is
// optional: a nil slot reads as "not configured", never an error.
type Config struct {
	Network          *graph.Network
	TrainingProvider data.Provider
	TestingProvider  data.Provider
	OutputError      calc.OutputError
	Calculator       calc.LayerCalculator
	Initializer      random.Initializer
}

// Trainer drives evaluation passes and pre-training weight
// initialization, reporting progress through its event bus.
type Trainer struct {
	events.Bus

	cfg   Config
	runID string
}

// New creates a trainer with the given configuration. Each trainer
// carries a unique run ID that identifies its passes in event payload
// sources and run records.
func New(cfg Config) *Trainer {
	return &Trainer{
		cfg:   cfg,
		runID: uuid.NewString(),
	}
}

// RunID returns the trainer's unique run identifier.
func (t *Trainer) RunID() string {
	return t.runID
}

// Network returns the configured network, or nil.
func (t *Trainer) Network() *graph.Network { return t.cfg.Network }

// SetNetwork overwrites the network slot.
func (t *Trainer) SetNetwork(n *graph.Network) { t.cfg.Network = n }

// TrainingProvider returns the configured training provider, or nil.
func (t *Trainer) TrainingProvider() data.Provider { return t.cfg.TrainingProvider }

// SetTrainingProvider overwrites the training provider slot.
func (t *Trainer) SetTrainingProvider(p data.Provider) { t.cfg.TrainingProvider = p }

// TestingProvider returns the configured testing provider, or nil.
func (t *Trainer) TestingProvider() data.Provider { return t.cfg.TestingProvider }

// SetTestingProvider overwrites the testing provider slot.
func (t *Trainer) SetTestingProvider(p data.Provider) { t.cfg.TestingProvider = p }

// OutputError returns the configured error accumulator, or nil.
func (t *Trainer) OutputError() calc.OutputError { return t.cfg.OutputError }

// SetOutputError overwrites the error accumulator slot.
func (t *Trainer) SetOutputError(e calc.OutputError) { t.cfg.OutputError = e }

// Calculator returns the configured layer calculator, or nil.
func (t *Trainer) Calculator() calc.LayerCalculator { return t.cfg.Calculator }

// SetCalculator overwrites the calculator slot.
func (t *Trainer) SetCalculator(c calc.LayerCalculator) { t.cfg.Calculator = c }

// Initializer returns the configured weight initializer, or nil.
func (t *Trainer) Initializer() random.Initializer { return t.cfg.Initializer }

// SetInitializer overwrites the initializer slot.
func (t *Trainer) SetInitializer(r random.Initializer) { t.cfg.Initializer = r }

// Train is the default training entry point: it brackets weight
// initialization with the training lifecycle events. Concrete training
// procedures build on the same dataflow contract as Evaluate but are
// supplied by callers.
func (t *Trainer) Train() error {
	t.Publish(events.Event{Kind: events.TrainingStarted, Source: t})
	t.InitializeWeights()
	t.Publish(events.Event{Kind: events.TrainingFinished, Source: t})
	return nil
}

// InitializeWeights passes the backing store of every weight-owning
// connection of the configured network to the configured initializer.
// Connections without owned weights are skipped. With no initializer
// or no network configured this is a silent no-op.
//
// Traversal order across connections is unspecified; initializers are
// required to treat each buffer independently.
func (t *Trainer) InitializeWeights() {
	r := t.cfg.Initializer
	n := t.cfg.Network
	if r == nil || n == nil {
		return
	}

	for _, c := range n.Connections() {
		if w, ok := c.(graph.Weighted); ok {
			r.Initialize(w.Weights().Data())
		}
	}
}

// Evaluate runs the network over the testing provider's examples and
// returns the aggregate error.
//
// If any of the testing provider, error accumulator, network, or
// calculator is unconfigured, Evaluate is a no-op returning 0 and a
// nil error. A failure inside a collaborator aborts the pass and
// propagates unchanged; no partial aggregate is returned.
//
// Per example the trainer seeds the results map with the input layer's
// activation, asks the calculator to populate results up to the output
// layer, scores the output against the target, zeroes every tensor in
// the results map in place, and emits a sample-finished event. After
// the provider exhausts, a testing-finished event fires and the
// accumulator's total is returned.
func (t *Trainer) Evaluate() (float32, error) {
	ip := t.cfg.TestingProvider
	e := t.cfg.OutputError
	n := t.cfg.Network
	c := t.cfg.Calculator

	if ip == nil || e == nil || n == nil || c == nil {
		return 0, nil
	}

	frontier := make(calc.Frontier)
	results := make(calc.Results)
	in := n.InputLayer()
	out := n.OutputLayer()

	for input := ip.Next(); input != nil; input = ip.Next() {
		frontier.Clear()
		frontier.Add(in)
		// No defensive copy: the reset below zeroes this buffer, so
		// providers hand out fresh tensors per call.
		results[in] = input.Input

		if err := c.Calculate(frontier, results, out); err != nil {
			return 0, fmt.Errorf("calculate up to layer %s: %w", out, err)
		}

		if err := e.AddSample(results[out], input.Target); err != nil {
			return 0, fmt.Errorf("accumulate output error: %w", err)
		}

		// Zero every tensor in the map, whatever layer it belongs to:
		// no stale activation may leak into the next example even when
		// the calculator reuses buffers across calls.
		for _, m := range results {
			m.Zero()
		}

		t.Publish(events.Event{Kind: events.SampleFinished, Source: t, Sample: input})
	}

	t.Publish(events.Event{Kind: events.TestingFinished, Source: t})

	return e.TotalError(), nil
}
