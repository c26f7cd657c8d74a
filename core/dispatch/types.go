package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/askilde/dispatchdesk/core/model"
)

// ErrNotFound is returned by the route-list backend methods when the backend
// answers 404. Facet and forecast/prebooking fetches do not return it; they
// degrade to an empty collection instead.
var ErrNotFound = errors.New("not-found-error")

// Filters narrows an overview fetch. Dates bound the planned window, times
// are clock times within each day ("15:04"), and the id slices restrict the
// facets an operator has ticked.
type Filters struct {
	StartDate    time.Time
	EndDate      time.Time
	StartTime    string
	EndTime      string
	FulfilleeIDs []string
	DriverIDs    []string
	HaulierIDs   []string
}

// AssignmentRequest is one {route, driver} pair of a batch submission.
type AssignmentRequest struct {
	RouteID  string `json:"routeId"`
	DriverID string `json:"driverId"`
}

// AssignmentOutcome is the backend's verdict for one submitted pair.
type AssignmentOutcome struct {
	RouteID    string `json:"routeId"`
	DriverID   string `json:"driverId"`
	IsAssigned bool   `json:"isAssigned"`
}

// Assigner submits a pairing batch to the backend.
type Assigner interface {
	AssignDrivers(ctx context.Context, reqs []AssignmentRequest) ([]AssignmentOutcome, error)
}

// Backend provides the fetches the overview needs. It is implemented by
// infra/backend.Client.
type Backend interface {
	// ListFulfillees serves the fulfillee facet for forecast and prebooking
	// states, filtered by the current window.
	ListFulfillees(ctx context.Context, state model.State, f Filters) ([]model.Fulfillee, error)
	// ListDispatchDrivers serves the driver facet (prebooking state only).
	ListDispatchDrivers(ctx context.Context, state model.State, f Filters) ([]model.Driver, error)
	ListForecasts(ctx context.Context, f Filters) ([]model.Forecast, error)
	ListPrebookings(ctx context.Context, f Filters) ([]model.Prebooking, error)
	// ListUnassignedRoutes and ListAssignedRoutes return ErrNotFound on 404
	// and a wrapped generic error otherwise, unlike the silent-empty
	// convention of the other fetches.
	ListUnassignedRoutes(ctx context.Context, f Filters) ([]model.Route, error)
	ListAssignedRoutes(ctx context.Context, f Filters) ([]model.Route, error)
	// ListOutfits lists fulfillees from the agreements backend; it serves the
	// facet for the two route states.
	ListOutfits(ctx context.Context) ([]model.Fulfillee, error)
}
