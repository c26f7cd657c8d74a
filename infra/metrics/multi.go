package metrics

import coremetrics "github.com/askilde/dispatchdesk/core/metrics"

// MultiSink fans assignment events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAssignmentResults forwards the events to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordAssignmentResults(events []coremetrics.AssignmentEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordAssignmentResults(events); err != nil {
			return err
		}
	}
	return nil
}

// RecordFetch forwards fetch events to sinks implementing FetchRecorder.
func (m *MultiSink) RecordFetch(ev coremetrics.FetchEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.FetchRecorder); ok {
			if err := rec.RecordFetch(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
