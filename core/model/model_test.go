package model

import "testing"

func TestParseState(t *testing.T) {
	for _, s := range States() {
		got, err := ParseState(s.String())
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		if got != s {
			t.Errorf("parse %s: got %v", s, got)
		}
	}
	if _, err := ParseState("bogus"); err == nil {
		t.Fatalf("expected error for unknown slug")
	}
}

func TestStatePathSegment(t *testing.T) {
	if got := StateUnassignedRoute.PathSegment(); got != "route/unassigned" {
		t.Errorf("unassigned segment: %s", got)
	}
	if got := StatePrebooking.PathSegment(); got != "prebooking" {
		t.Errorf("prebooking segment: %s", got)
	}
	if !StateAssignedRoute.IsRouteState() || StateForecast.IsRouteState() {
		t.Errorf("route-state classification wrong")
	}
}

func TestAssigneeResolution(t *testing.T) {
	d := Driver{ID: "d1", Name: Name{First: "Jo", Last: "March"}}
	p := Prebooking{ID: "p1", Driver: Driver{ID: "d2"}}
	var a Assignee = d
	if a.DriverID() != "d1" {
		t.Errorf("driver assignee: %s", a.DriverID())
	}
	a = p
	if a.DriverID() != "d2" {
		t.Errorf("prebooking assignee: %s", a.DriverID())
	}
	if d.Name.Full() != "Jo March" {
		t.Errorf("full name: %s", d.Name.Full())
	}
}

func TestForecastMissingSlots(t *testing.T) {
	f := Forecast{Slots: Slots{Total: 5, Assigned: 2}}
	if f.MissingSlots() != 3 {
		t.Errorf("missing slots: %d", f.MissingSlots())
	}
}
