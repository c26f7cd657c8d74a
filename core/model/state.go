package model

import "fmt"

// State enumerates the dispatch overview modes an operator can browse.
type State int

const (
	StateForecast State = iota
	StatePrebooking
	StateUnassignedRoute
	StateAssignedRoute
)

// States returns all dispatch states in display order.
func States() []State {
	return []State{StateForecast, StatePrebooking, StateUnassignedRoute, StateAssignedRoute}
}

// String returns the state slug used in URLs and backend paths.
func (s State) String() string {
	switch s {
	case StateForecast:
		return "forecast"
	case StatePrebooking:
		return "prebooking"
	case StateUnassignedRoute:
		return "unassignedRoute"
	case StateAssignedRoute:
		return "assignedRoute"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the state.
func (s State) DisplayName() string {
	switch s {
	case StateForecast:
		return "Forecasts"
	case StatePrebooking:
		return "Pre-bookings"
	case StateUnassignedRoute:
		return "Unassigned routes"
	case StateAssignedRoute:
		return "Assigned routes"
	default:
		return "unknown"
	}
}

// PathSegment returns the segment used in dispatch-scoped endpoint paths,
// e.g. dispatch/forecast/listfulfillees.
func (s State) PathSegment() string {
	switch s {
	case StateForecast:
		return "forecast"
	case StatePrebooking:
		return "prebooking"
	case StateUnassignedRoute:
		return "route/unassigned"
	case StateAssignedRoute:
		return "route/assigned"
	default:
		return "unknown"
	}
}

// IsRouteState reports whether the state lists routes rather than forecasts
// or pre-bookings.
func (s State) IsRouteState() bool {
	return s == StateUnassignedRoute || s == StateAssignedRoute
}

// ParseState resolves a state from its slug.
func ParseState(slug string) (State, error) {
	for _, s := range States() {
		if s.String() == slug {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown dispatch state %q", slug)
}
