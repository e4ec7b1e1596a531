package metrics

import (
	"errors"
	"time"
)

// PlanEvent summarizes one planning run for observability purposes.
type PlanEvent struct {
	Time        time.Time
	Source      string
	Days        int
	Tasks       int
	BookedHours float64
	Duration    time.Duration
	Err         error
}

// Succeeded reports whether the run completed without error.
func (ev PlanEvent) Succeeded() bool { return ev.Err == nil }

// Sink records planning runs.
type Sink interface {
	RecordPlan(ev PlanEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanEvent) error { return nil }

// MultiSink fans events out to several sinks.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordPlan(ev PlanEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordPlan(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
