package storage

import (
	"context"
	"log"
	"time"

	"github.com/loom-ml/loom/internal/calc"
	"github.com/loom-ml/loom/internal/events"
)

// runIdentified is satisfied by event sources that carry a run ID
// (the trainer does).
type runIdentified interface {
	RunID() string
}

// Recorder is an event listener that persists an evaluation run. It
// counts sample-finished events and, when the pass finishes, writes a
// Record with the accumulator's aggregate error.
//
// Storage failures are logged and do not abort the evaluation: the
// record is advisory history, not part of the pass's result.
type Recorder struct {
	store  Store
	metric string
	acc    calc.OutputError

	samples int
}

// NewRecorder creates a recorder writing to store. metric names the
// error metric for the record; acc is the same accumulator the trainer
// scores with, read after the pass completes.
func NewRecorder(store Store, metric string, acc calc.OutputError) *Recorder {
	return &Recorder{store: store, metric: metric, acc: acc}
}

// HandleEvent implements events.Listener.
func (r *Recorder) HandleEvent(e events.Event) {
	switch e.Kind {
	case events.SampleFinished:
		r.samples++
	case events.TestingFinished:
		rec := Record{
			Metric:     r.metric,
			Samples:    r.samples,
			TotalError: r.acc.TotalError(),
			FinishedAt: time.Now(),
		}
		if src, ok := e.Source.(runIdentified); ok {
			rec.RunID = src.RunID()
		}
		if err := r.store.SaveRun(context.Background(), rec); err != nil {
			log.Printf("storage: save run %s: %v", rec.RunID, err)
		}
		r.samples = 0
	}
}
