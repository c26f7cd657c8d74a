package backend

import (
	"time"

	"github.com/askilde/dispatchdesk/core/dispatch"
	"github.com/askilde/dispatchdesk/core/model"
)

// routePage is the fixed paging every route-list request carries. The backend
// caps lists at pageSize; this is "fetch everything up to 2000", not a cursor.
const (
	routePage     = 1
	routePageSize = 2000
)

const dateLayout = "2006-01-02"

type facetRequest struct {
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	StartTime    string   `json:"startTime,omitempty"`
	EndTime      string   `json:"endTime,omitempty"`
	FulfilleeIDs []string `json:"fulfilleeIds,omitempty"`
}

type driverFacetRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type listRequest struct {
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	StartTime    string   `json:"startTime,omitempty"`
	EndTime      string   `json:"endTime,omitempty"`
	FulfilleeIDs []string `json:"fulfilleeIds,omitempty"`
	DriverIDs    []string `json:"driverIds,omitempty"`
	HaulierIDs   []string `json:"haulierIds,omitempty"`
}

type routeListRequest struct {
	listRequest
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type routesByIDsRequest struct {
	RouteIDs []string `json:"routeIds"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}

type routeListResponse struct {
	Routes []model.Route `json:"routes"`
}

type prebookingsByIDsRequest struct {
	PrebookingIDs []string `json:"prebookingIds"`
}

type createPrebookingRequest struct {
	ForecastID string   `json:"forecastId"`
	DriverIDs  []string `json:"driverIds"`
}

type deletePrebookingRequest struct {
	PrebookingID string `json:"prebookingId"`
}

type forecastDetailsRequest struct {
	ForecastID string `json:"forecastId"`
}

type assignDriversRequest struct {
	Assignments []dispatch.AssignmentRequest `json:"assignments"`
}

// DriverQuery searches drivers by free text on a date.
type DriverQuery struct {
	Date     time.Time
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

type driverQueryRequest struct {
	Filter struct {
		Date   string `json:"date"`
		Search string `json:"search"`
	} `json:"filter"`
	Sorting struct {
		Field      string `json:"field"`
		Descending bool   `json:"descending"`
	} `json:"sorting"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type driverQueryResponse struct {
	Result     []model.Driver `json:"result"`
	TotalCount int            `json:"totalCount"`
}

// outfitDTO is the agreements backend's fulfillee shape, which differs from
// the dispatch one.
type outfitDTO struct {
	OutfitID    string `json:"outfitId"`
	CompanyName string `json:"companyName"`
}

type outfitListResponse struct {
	Outfits []outfitDTO `json:"outfits"`
}

func (o outfitDTO) toModel() model.Fulfillee {
	return model.Fulfillee{ID: o.OutfitID, Name: o.CompanyName}
}

func facetFromFilters(f dispatch.Filters) facetRequest {
	return facetRequest{
		StartDate:    formatDate(f.StartDate),
		EndDate:      formatDate(f.EndDate),
		StartTime:    f.StartTime,
		EndTime:      f.EndTime,
		FulfilleeIDs: f.FulfilleeIDs,
	}
}

func listFromFilters(f dispatch.Filters) listRequest {
	return listRequest{
		StartDate:    formatDate(f.StartDate),
		EndDate:      formatDate(f.EndDate),
		StartTime:    f.StartTime,
		EndTime:      f.EndTime,
		FulfilleeIDs: f.FulfilleeIDs,
		DriverIDs:    f.DriverIDs,
		HaulierIDs:   f.HaulierIDs,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
