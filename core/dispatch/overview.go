package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/askilde/dispatchdesk/core/logger"
	"github.com/askilde/dispatchdesk/core/metrics"
	"github.com/askilde/dispatchdesk/core/model"
)

// Result is everything one overview fetch yields: the facet lists for the
// filter widgets and the primary collection for the selected state. Only the
// collection matching the state is populated.
type Result struct {
	State       model.State
	Fulfillees  []model.Fulfillee
	Drivers     []model.Driver
	Forecasts   []model.Forecast
	Prebookings []model.Prebooking
	Routes      []model.Route
}

// Overview translates a (state, filters) tuple into the backend calls that
// populate the dispatch view.
type Overview struct {
	backend Backend
	bus     *NotificationBus
	sink    metrics.Sink
	log     logger.Logger
}

// NewOverview creates an overview query. Bus and sink may be nil.
func NewOverview(backend Backend, bus *NotificationBus, sink metrics.Sink, log logger.Logger) *Overview {
	if log == nil {
		log = logger.Nop{}
	}
	return &Overview{backend: backend, bus: bus, sink: sink, log: log}
}

// Fetch loads the facets and the primary collection for the state. Facet and
// forecast/prebooking collection failures surface a notification and leave
// the affected list empty; the two route collections distinguish a not-found
// backend answer from a general failure in the notification they surface.
// Fetches run sequentially in issuance order.
func (o *Overview) Fetch(ctx context.Context, state model.State, f Filters) Result {
	res := Result{State: state}
	o.fetchFulfillees(ctx, state, f, &res)
	if state == model.StatePrebooking {
		o.fetchDrivers(ctx, state, f, &res)
	}
	o.fetchCollection(ctx, state, f, &res)
	return res
}

func (o *Overview) fetchFulfillees(ctx context.Context, state model.State, f Filters, res *Result) {
	start := time.Now()
	var err error
	if state.IsRouteState() {
		// Route states take their fulfillee facet from the agreements
		// listing, not the dispatch-scoped endpoint.
		res.Fulfillees, err = o.backend.ListOutfits(ctx)
	} else {
		res.Fulfillees, err = o.backend.ListFulfillees(ctx, state, f)
	}
	o.record(state, "fulfillees", len(res.Fulfillees), time.Since(start), err != nil)
	if err != nil {
		o.log.Errorf("list fulfillees for %s: %v", state, err)
		publish(o.bus, SeverityError, "could not load fulfillees", 0)
		res.Fulfillees = nil
	}
}

func (o *Overview) fetchDrivers(ctx context.Context, state model.State, f Filters, res *Result) {
	start := time.Now()
	var err error
	res.Drivers, err = o.backend.ListDispatchDrivers(ctx, state, f)
	o.record(state, "drivers", len(res.Drivers), time.Since(start), err != nil)
	if err != nil {
		o.log.Errorf("list drivers for %s: %v", state, err)
		publish(o.bus, SeverityError, "could not load drivers", 0)
		res.Drivers = nil
	}
}

func (o *Overview) fetchCollection(ctx context.Context, state model.State, f Filters, res *Result) {
	start := time.Now()
	var n int
	var err error
	switch state {
	case model.StateForecast:
		res.Forecasts, err = o.backend.ListForecasts(ctx, f)
		n = len(res.Forecasts)
		if err != nil {
			publish(o.bus, SeverityError, "could not load forecasts", 0)
			res.Forecasts = nil
		}
	case model.StatePrebooking:
		res.Prebookings, err = o.backend.ListPrebookings(ctx, f)
		n = len(res.Prebookings)
		if err != nil {
			publish(o.bus, SeverityError, "could not load pre-bookings", 0)
			res.Prebookings = nil
		}
	case model.StateUnassignedRoute:
		res.Routes, err = o.backend.ListUnassignedRoutes(ctx, f)
		n = len(res.Routes)
		o.notifyRouteErr(err)
	case model.StateAssignedRoute:
		res.Routes, err = o.backend.ListAssignedRoutes(ctx, f)
		n = len(res.Routes)
		o.notifyRouteErr(err)
	}
	o.record(state, "collection", n, time.Since(start), err != nil)
	if err != nil {
		o.log.Errorf("list %s: %v", state, err)
		res.Routes = nil
	}
}

func (o *Overview) notifyRouteErr(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, ErrNotFound) {
		publish(o.bus, SeverityError, "routes not found", 0)
		return
	}
	publish(o.bus, SeverityError, "could not load routes", 0)
}

func (o *Overview) record(state model.State, kind string, n int, d time.Duration, failed bool) {
	rec, ok := o.sink.(metrics.FetchRecorder)
	if o.sink == nil || !ok {
		return
	}
	ev := metrics.FetchEvent{State: state.String(), Kind: kind, Count: n, Duration: d, Failed: failed}
	if err := rec.RecordFetch(ev); err != nil {
		o.log.Warnf("record fetch metrics: %v", err)
	}
}
