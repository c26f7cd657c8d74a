// Package backend implements the HTTP client for the dispatch and agreements
// APIs. All methods wrap a 404 response in dispatch.ErrNotFound and any other
// non-2xx status in a generic error; decode failures are wrapped as well.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/askilde/dispatchdesk/core/dispatch"
	"github.com/askilde/dispatchdesk/core/model"
	"github.com/askilde/dispatchdesk/infra/logger"
)

// Client talks to the dispatch backend. It implements dispatch.Backend and
// dispatch.Assigner.
type Client struct {
	http       *http.Client
	base       string
	agreements string
	log        logger.Logger
}

// New creates a client from the configuration.
func New(cfg Config) *Client {
	cfg.SetDefaults()
	return &Client{
		http:       &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		base:       strings.TrimSuffix(cfg.BaseURL, "/"),
		agreements: strings.TrimSuffix(cfg.AgreementsBaseURL, "/"),
		log:        logger.New("backend-client"),
	}
}

func (c *Client) post(ctx context.Context, base, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/"+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) get(ctx context.Context, base, path string, query url.Values, out any) error {
	u := base + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	c.log.Debugf("%s %s", req.Method, req.URL)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send %s request: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", path, dispatch.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: unexpected status code %d: %s", path, resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// ListFulfillees fetches the fulfillee facet for the given state, filtered by
// the current window.
func (c *Client) ListFulfillees(ctx context.Context, state model.State, f dispatch.Filters) ([]model.Fulfillee, error) {
	var out []model.Fulfillee
	path := "dispatch/" + state.PathSegment() + "/listfulfillees"
	if err := c.post(ctx, c.base, path, facetFromFilters(f), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDispatchDrivers fetches the driver facet for the given state.
func (c *Client) ListDispatchDrivers(ctx context.Context, state model.State, f dispatch.Filters) ([]model.Driver, error) {
	var out []model.Driver
	path := "dispatch/" + state.PathSegment() + "/listdrivers"
	body := driverFacetRequest{StartDate: formatDate(f.StartDate), EndDate: formatDate(f.EndDate)}
	if err := c.post(ctx, c.base, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListForecasts fetches forecasts matching the filters.
func (c *Client) ListForecasts(ctx context.Context, f dispatch.Filters) ([]model.Forecast, error) {
	var out []model.Forecast
	if err := c.post(ctx, c.base, "dispatch/forecast/list", listFromFilters(f), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateForecast creates the forecast and returns the server copy.
func (c *Client) CreateForecast(ctx context.Context, fc model.Forecast) (model.Forecast, error) {
	var out model.Forecast
	if err := c.post(ctx, c.base, "dispatch/forecast/create", fc, &out); err != nil {
		return model.Forecast{}, err
	}
	return out, nil
}

// UpdateForecast updates slot totals and window fields, returning the server
// copy.
func (c *Client) UpdateForecast(ctx context.Context, fc model.Forecast) (model.Forecast, error) {
	var out model.Forecast
	if err := c.post(ctx, c.base, "dispatch/forecast/update", fc, &out); err != nil {
		return model.Forecast{}, err
	}
	return out, nil
}

// ForecastDetails fetches one forecast by id.
func (c *Client) ForecastDetails(ctx context.Context, id string) (model.Forecast, error) {
	var out model.Forecast
	if err := c.post(ctx, c.base, "dispatch/forecast/details", forecastDetailsRequest{ForecastID: id}, &out); err != nil {
		return model.Forecast{}, err
	}
	return out, nil
}

// ListPrebookings fetches prebookings matching the filters.
func (c *Client) ListPrebookings(ctx context.Context, f dispatch.Filters) ([]model.Prebooking, error) {
	var out []model.Prebooking
	if err := c.post(ctx, c.base, "dispatch/prebooking/list", listFromFilters(f), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPrebookingsByIDs fetches specific prebookings.
func (c *Client) ListPrebookingsByIDs(ctx context.Context, ids []string) ([]model.Prebooking, error) {
	var out []model.Prebooking
	if err := c.post(ctx, c.base, "dispatch/prebooking/listbyids", prebookingsByIDsRequest{PrebookingIDs: ids}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePrebookings reserves the given drivers against a forecast and returns
// the created prebookings.
func (c *Client) CreatePrebookings(ctx context.Context, forecastID string, driverIDs []string) ([]model.Prebooking, error) {
	var out []model.Prebooking
	body := createPrebookingRequest{ForecastID: forecastID, DriverIDs: driverIDs}
	if err := c.post(ctx, c.base, "dispatch/prebooking/create", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeletePrebooking removes one prebooking.
func (c *Client) DeletePrebooking(ctx context.Context, id string) error {
	return c.post(ctx, c.base, "dispatch/prebooking/delete", deletePrebookingRequest{PrebookingID: id}, nil)
}

// ListUnassignedRoutes fetches routes without a driver. Callers must handle
// dispatch.ErrNotFound separately from a general failure.
func (c *Client) ListUnassignedRoutes(ctx context.Context, f dispatch.Filters) ([]model.Route, error) {
	return c.listRoutes(ctx, "dispatch/route/unassigned/list", f)
}

// ListAssignedRoutes fetches routes with a driver. Same error contract as
// ListUnassignedRoutes.
func (c *Client) ListAssignedRoutes(ctx context.Context, f dispatch.Filters) ([]model.Route, error) {
	return c.listRoutes(ctx, "dispatch/route/assigned/list", f)
}

func (c *Client) listRoutes(ctx context.Context, path string, f dispatch.Filters) ([]model.Route, error) {
	var out routeListResponse
	body := routeListRequest{listRequest: listFromFilters(f), Page: routePage, PageSize: routePageSize}
	if err := c.post(ctx, c.base, path, body, &out); err != nil {
		return nil, err
	}
	return out.Routes, nil
}

// ListUnassignedRoutesByIDs fetches specific unassigned routes. Same error
// contract as ListUnassignedRoutes.
func (c *Client) ListUnassignedRoutesByIDs(ctx context.Context, ids []string) ([]model.Route, error) {
	var out routeListResponse
	body := routesByIDsRequest{RouteIDs: ids, Page: routePage, PageSize: routePageSize}
	if err := c.post(ctx, c.base, "dispatch/route/unassigned/listbyids", body, &out); err != nil {
		return nil, err
	}
	return out.Routes, nil
}

// AssignDrivers submits the pairing batch and returns the per-pair outcomes.
func (c *Client) AssignDrivers(ctx context.Context, reqs []dispatch.AssignmentRequest) ([]dispatch.AssignmentOutcome, error) {
	var out []dispatch.AssignmentOutcome
	if err := c.post(ctx, c.base, "dispatch/route/assignDrivers", assignDriversRequest{Assignments: reqs}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// QueryDrivers searches drivers, returning the page and the total count.
func (c *Client) QueryDrivers(ctx context.Context, q DriverQuery) ([]model.Driver, int, error) {
	var body driverQueryRequest
	body.Filter.Date = formatDate(q.Date)
	body.Filter.Search = q.Search
	body.Sorting.Field = q.SortBy
	body.Sorting.Descending = q.SortDesc
	body.Page = q.Page
	body.PageSize = q.PageSize
	var out driverQueryResponse
	if err := c.post(ctx, c.base, "drivers/query", body, &out); err != nil {
		return nil, 0, err
	}
	return out.Result, out.TotalCount, nil
}

// DriverDetails fetches one driver by id.
func (c *Client) DriverDetails(ctx context.Context, id string) (model.Driver, error) {
	var out model.Driver
	if err := c.get(ctx, c.base, "drivers/details", url.Values{"id": {id}}, &out); err != nil {
		return model.Driver{}, err
	}
	return out, nil
}

// RouteDetails fetches one route by slug.
func (c *Client) RouteDetails(ctx context.Context, slug string) (model.Route, error) {
	var out model.Route
	if err := c.get(ctx, c.base, "routes/details", url.Values{"routeSlug": {slug}}, &out); err != nil {
		return model.Route{}, err
	}
	return out, nil
}

// ListOutfits lists fulfillees from the agreements backend. The response
// shape differs from the dispatch facet and is mapped here.
func (c *Client) ListOutfits(ctx context.Context) ([]model.Fulfillee, error) {
	var out outfitListResponse
	if err := c.get(ctx, c.agreements, "outfits/list", nil, &out); err != nil {
		return nil, err
	}
	fulfillees := make([]model.Fulfillee, 0, len(out.Outfits))
	for _, o := range out.Outfits {
		fulfillees = append(fulfillees, o.toModel())
	}
	return fulfillees, nil
}
