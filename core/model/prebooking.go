package model

// Prebooking reserves a driver against a forecast slot before the driver is
// tied to a concrete route.
type Prebooking struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	ForecastID string `json:"forecastId"`
	Driver     Driver `json:"driver"`
}

// DriverID implements Assignee: a prebooking is assigned through its
// reserved driver.
func (p Prebooking) DriverID() string { return p.Driver.ID }
