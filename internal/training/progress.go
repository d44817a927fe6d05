package training

import (
	"log"

	"github.com/dustin/go-humanize"

	"github.com/loom-ml/loom/internal/events"
)

// Progress is an event listener that logs evaluation progress. It
// counts sample-finished events and reports every Every samples plus a
// summary when the pass finishes.
type Progress struct {
	// Every is the sample interval between log lines; 0 logs only the
	// end-of-pass summary.
	Every int
	// Logger defaults to the standard logger.
	Logger *log.Logger

	samples int64
}

// NewProgress creates a progress listener logging every n samples.
func NewProgress(n int) *Progress {
	return &Progress{Every: n}
}

// Samples returns the number of sample-finished events seen.
func (p *Progress) Samples() int64 {
	return p.samples
}

// HandleEvent implements events.Listener.
func (p *Progress) HandleEvent(e events.Event) {
	switch e.Kind {
	case events.SampleFinished:
		p.samples++
		if p.Every > 0 && p.samples%int64(p.Every) == 0 {
			p.printf("evaluated %s samples", humanize.Comma(p.samples))
		}
	case events.TestingFinished:
		p.printf("evaluation pass finished after %s samples", humanize.Comma(p.samples))
	case events.TrainingStarted:
		p.printf("training started")
	case events.TrainingFinished:
		p.printf("training finished")
	}
}

func (p *Progress) printf(format string, args ...any) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
