package model

import "time"

// Location is a geographic coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is a postal address attached to a stop.
type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

// Stop is one ordered halt on a route.
type Stop struct {
	Location Location `json:"location"`
	Address  Address  `json:"address"`
}

// Route represents a planned delivery or pickup run. Routes are fetched
// read-only from the backend; the assigned driver only changes once a pairing
// is confirmed server-side.
type Route struct {
	ID         string    `json:"id"`
	Slug       string    `json:"slug"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Stops      []Stop    `json:"stops"`
	Complexity float64   `json:"complexity"`
	Driver     *Driver   `json:"driver,omitempty"`
}

// Assigned reports whether the route already has a driver.
func (r Route) Assigned() bool { return r.Driver != nil }
