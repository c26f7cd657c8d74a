package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/askilde/dispatchdesk/core/metrics"
)

// PromSink records assignment and fetch events in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	fetches     *prometheus.HistogramVec
}

// NewPromSink registers dispatch metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_outcomes_total",
		Help: "Total number of per-pair assignment outcomes",
	}, []string{"assigned"})
	fetches := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "overview_fetch_seconds",
		Help:    "Duration of overview fetches against the backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"state", "kind", "failed"})

	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(fetches); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fetches = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	return &PromSink{assignments: assignments, fetches: fetches}, nil
}

// RecordAssignmentResults increments the outcome counter per event.
func (s *PromSink) RecordAssignmentResults(events []coremetrics.AssignmentEvent) error {
	for _, ev := range events {
		s.assignments.WithLabelValues(strconv.FormatBool(ev.Assigned)).Inc()
	}
	return nil
}

// RecordFetch observes the fetch duration histogram.
func (s *PromSink) RecordFetch(ev coremetrics.FetchEvent) error {
	s.fetches.WithLabelValues(ev.State, ev.Kind, strconv.FormatBool(ev.Failed)).Observe(ev.Duration.Seconds())
	return nil
}
