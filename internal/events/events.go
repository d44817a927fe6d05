// Package events implements the synchronous lifecycle event stream of
// the training engine.
//
// Events are immutable records tagged with a Kind; the only payload is
// the example attached to SampleFinished events. A Bus multicasts each
// event to its listeners in subscription order.
package events

import "github.com/loom-ml/loom/internal/data"

// Kind discriminates the event variants.
type Kind int

// Event kinds.
const (
	TrainingStarted Kind = iota
	TrainingFinished
	SampleFinished
	TestingFinished
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case TrainingStarted:
		return "training-started"
	case TrainingFinished:
		return "training-finished"
	case SampleFinished:
		return "sample-finished"
	case TestingFinished:
		return "testing-finished"
	default:
		return "unknown"
	}
}

// Event is an immutable lifecycle record. It is constructed immediately
// before dispatch and never stored beyond the synchronous Publish call.
type Event struct {
	Kind   Kind
	Source any           // The trainer that emitted the event.
	Sample *data.Example // Set for SampleFinished only.
}

// Listener receives events synchronously during dispatch.
//
// Bus deduplicates listeners by interface equality, so listeners must
// have a comparable dynamic type (in practice: a pointer receiver).
type Listener interface {
	HandleEvent(Event)
}
