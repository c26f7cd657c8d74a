package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/askilde/dispatchdesk/core/history"
	"github.com/askilde/dispatchdesk/core/logger"
	"github.com/askilde/dispatchdesk/core/metrics"
	"github.com/askilde/dispatchdesk/core/model"
)

// SessionState tracks where the pairing workspace is in its lifecycle.
type SessionState int

const (
	// SessionIdle means no pending pairings.
	SessionIdle SessionState = iota
	// SessionBuilding means at least one pairing is pending, none submitted.
	SessionBuilding
	// SessionSubmitting means a batch is in flight.
	SessionSubmitting
	// SessionReconciling means a response arrived and outcomes are being
	// split into successes and failures.
	SessionReconciling
)

// String returns the state slug.
func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionBuilding:
		return "building"
	case SessionSubmitting:
		return "submitting"
	case SessionReconciling:
		return "reconciling"
	default:
		return "unknown"
	}
}

// Pairing is one operator-chosen (route, assignee) tuple awaiting submission.
type Pairing struct {
	Route    model.Route
	Assignee model.Assignee
}

// SubmitResult summarizes one batch submission.
type SubmitResult struct {
	Outcomes []AssignmentOutcome
	Assigned int
	Failed   int
	// Done is true when every pairing was assigned; the caller should leave
	// the pairing view.
	Done bool
}

// Session is the operator's pairing workspace. It is constructed per view
// and passed to whatever drives it; there is no package-level instance.
type Session struct {
	assigner Assigner
	bus      *NotificationBus
	journal  history.Store
	sink     metrics.Sink
	log      logger.Logger

	mu               sync.Mutex
	state            SessionState
	pairings         []Pairing
	selectedRoute    *model.Route
	selectedAssignee model.Assignee
}

// NewSession creates a session. The bus, journal and sink may be nil;
// submission then only returns its result.
func NewSession(assigner Assigner, bus *NotificationBus, journal history.Store, sink metrics.Sink, log logger.Logger) *Session {
	if log == nil {
		log = logger.Nop{}
	}
	return &Session{assigner: assigner, bus: bus, journal: journal, sink: sink, log: log}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pairings returns the pending pairings in insertion order.
func (s *Session) Pairings() []Pairing {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Pairing, len(s.pairings))
	copy(out, s.pairings)
	return out
}

// SelectRoute stores the route side of the next pairing.
func (s *Session) SelectRoute(r model.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedRoute = &r
}

// SelectAssignee stores the assignee side of the next pairing.
func (s *Session) SelectAssignee(a model.Assignee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedAssignee = a
}

// PairSelected records a pairing from the two selection slots, reporting
// whether both were set.
func (s *Session) PairSelected() bool {
	s.mu.Lock()
	if s.selectedRoute == nil || s.selectedAssignee == nil {
		s.mu.Unlock()
		return false
	}
	r, a := *s.selectedRoute, s.selectedAssignee
	s.mu.Unlock()
	s.AddPairing(r, a)
	return true
}

// AddPairing records {route, assignee} and clears the selection slots. A
// route id is unique within the pending set: pairing an already-pending
// route replaces its assignee instead of adding a second entry.
func (s *Session) AddPairing(route model.Route, assignee model.Assignee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedRoute = nil
	s.selectedAssignee = nil
	for i, p := range s.pairings {
		if p.Route.ID == route.ID {
			s.pairings[i] = Pairing{Route: route, Assignee: assignee}
			return
		}
	}
	s.pairings = append(s.pairings, Pairing{Route: route, Assignee: assignee})
	if s.state == SessionIdle {
		s.state = SessionBuilding
	}
}

// RemovePairing deletes the pairing for the route; it always succeeds.
func (s *Session) RemovePairing(routeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pairings {
		if p.Route.ID == routeID {
			s.pairings = append(s.pairings[:i], s.pairings[i+1:]...)
			break
		}
	}
	if len(s.pairings) == 0 && s.state == SessionBuilding {
		s.state = SessionIdle
	}
}

// Reset clears the workspace. Tie it to view unmount.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairings = nil
	s.selectedRoute = nil
	s.selectedAssignee = nil
	s.state = SessionIdle
}

// Submit posts all pending pairings as one batch and reconciles the per-pair
// outcomes. Pairs the response marks assigned are evicted; failed or
// unresolved pairs stay pending. On a transport error the pending set is
// left untouched, since nothing was confirmed.
func (s *Session) Submit(ctx context.Context) (SubmitResult, error) {
	s.mu.Lock()
	if len(s.pairings) == 0 {
		s.mu.Unlock()
		return SubmitResult{}, nil
	}
	pending := make([]Pairing, len(s.pairings))
	copy(pending, s.pairings)
	s.state = SessionSubmitting
	s.mu.Unlock()

	reqs := make([]AssignmentRequest, 0, len(pending))
	for _, p := range pending {
		reqs = append(reqs, AssignmentRequest{RouteID: p.Route.ID, DriverID: p.Assignee.DriverID()})
	}

	outcomes, err := s.assigner.AssignDrivers(ctx, reqs)
	if err != nil {
		s.log.Errorf("assignment submission failed: %v", err)
		publish(s.bus, SeverityError, "could not submit assignments", 0)
		s.mu.Lock()
		s.state = SessionBuilding
		s.mu.Unlock()
		return SubmitResult{}, err
	}

	s.mu.Lock()
	s.state = SessionReconciling
	assignedRoutes := make(map[string]bool, len(outcomes))
	assigned, failed := 0, 0
	for _, o := range outcomes {
		if o.IsAssigned {
			assignedRoutes[o.RouteID] = true
			assigned++
		} else {
			failed++
		}
	}
	var remaining []Pairing
	for _, p := range s.pairings {
		if !assignedRoutes[p.Route.ID] {
			remaining = append(remaining, p)
		}
	}
	s.pairings = remaining
	done := len(remaining) == 0 && failed == 0
	if len(remaining) == 0 {
		s.state = SessionIdle
	} else {
		s.state = SessionBuilding
	}
	s.mu.Unlock()

	if assigned > 0 {
		publish(s.bus, SeveritySuccess, "routes assigned", assigned)
	}
	if failed > 0 {
		publish(s.bus, SeverityAlert, "routes could not be assigned", failed)
	}
	s.record(ctx, reqs, outcomes, assigned, failed)

	return SubmitResult{Outcomes: outcomes, Assigned: assigned, Failed: failed, Done: done}, nil
}

func (s *Session) record(ctx context.Context, reqs []AssignmentRequest, outcomes []AssignmentOutcome, assigned, failed int) {
	now := time.Now()
	if s.sink != nil {
		events := make([]metrics.AssignmentEvent, 0, len(outcomes))
		for _, o := range outcomes {
			events = append(events, metrics.AssignmentEvent{
				RouteID: o.RouteID, DriverID: o.DriverID, Assigned: o.IsAssigned, Time: now,
			})
		}
		if err := s.sink.RecordAssignmentResults(events); err != nil {
			s.log.Warnf("record assignment metrics: %v", err)
		}
	}
	if s.journal != nil {
		rec := history.Record{Timestamp: now, Requested: len(reqs), Assigned: assigned, Failed: failed}
		for _, o := range outcomes {
			rec.Outcomes = append(rec.Outcomes, history.Outcome{
				RouteID: o.RouteID, DriverID: o.DriverID, IsAssigned: o.IsAssigned,
			})
		}
		if err := s.journal.Append(ctx, rec); err != nil {
			s.log.Warnf("journal append: %v", err)
		}
	}
}
