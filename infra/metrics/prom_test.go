package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	coremetrics "github.com/askilde/dispatchdesk/core/metrics"
)

func TestPromSinkRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	events := []coremetrics.AssignmentEvent{
		{RouteID: "r1", DriverID: "d1", Assigned: true, Time: time.Now()},
		{RouteID: "r2", DriverID: "d2", Assigned: true, Time: time.Now()},
		{RouteID: "r3", DriverID: "d3", Assigned: false, Time: time.Now()},
	}
	if err := sink.RecordAssignmentResults(events); err != nil {
		t.Fatalf("record: %v", err)
	}
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var got *dto.MetricFamily
	for _, mf := range mfs {
		if mf.GetName() == "assignment_outcomes_total" {
			got = mf
		}
	}
	if got == nil {
		t.Fatalf("assignment_outcomes_total not registered")
	}
	totals := map[string]float64{}
	for _, m := range got.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "assigned" {
				totals[lp.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	if totals["true"] != 2 || totals["false"] != 1 {
		t.Fatalf("unexpected totals %v", totals)
	}
}

func TestPromSinkRecordsFetches(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	ev := coremetrics.FetchEvent{State: "forecast", Kind: "collection", Count: 3, Duration: 12 * time.Millisecond}
	if err := sink.RecordFetch(ev); err != nil {
		t.Fatalf("record fetch: %v", err)
	}
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "overview_fetch_seconds" {
			found = true
		}
	}
	if !found {
		t.Fatalf("overview_fetch_seconds not registered")
	}
}

func TestMultiSinkFanout(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	multi := NewMultiSink(coremetrics.NopSink{}, prom)
	if err := multi.RecordAssignmentResults([]coremetrics.AssignmentEvent{{Assigned: true}}); err != nil {
		t.Fatalf("multi record: %v", err)
	}
	if err := multi.RecordFetch(coremetrics.FetchEvent{State: "forecast", Kind: "drivers"}); err != nil {
		t.Fatalf("multi fetch: %v", err)
	}
}
