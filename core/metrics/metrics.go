package metrics

import "time"

// AssignmentEvent represents one per-pair outcome of a batch submission.
type AssignmentEvent struct {
	RouteID  string
	DriverID string
	Assigned bool
	Time     time.Time
}

// FetchEvent captures one overview fetch against the backend.
type FetchEvent struct {
	State    string
	Kind     string // "fulfillees", "drivers", "collection"
	Count    int
	Duration time.Duration
	Failed   bool
}

// Sink records assignment outcomes for observability purposes.
type Sink interface {
	RecordAssignmentResults(events []AssignmentEvent) error
}

// FetchRecorder records overview fetch events. Sinks may optionally
// implement it.
type FetchRecorder interface {
	RecordFetch(ev FetchEvent) error
}

// NopSink discards all events.
type NopSink struct{}

// RecordAssignmentResults implements Sink.
func (NopSink) RecordAssignmentResults([]AssignmentEvent) error { return nil }

// RecordFetch implements FetchRecorder.
func (NopSink) RecordFetch(FetchEvent) error { return nil }
