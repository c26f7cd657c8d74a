package model

import "time"

// Slots tracks forecast capacity. Assigned is server-computed; Total is
// editable by the operator.
type Slots struct {
	Total    int `json:"total"`
	Assigned int `json:"assigned"`
}

// Forecast is a customer's expected demand for drivers on a date, time window
// and vehicle type.
type Forecast struct {
	ID            string    `json:"id"`
	FulfilleeID   string    `json:"fulfilleeId"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	StartLocation Address   `json:"startLocation"`
	VehicleType   string    `json:"vehicleType"`
	Slots         Slots     `json:"slots"`
}

// MissingSlots returns how many slots are still open. Slots.Assigned being at
// most Slots.Total is a precondition on server data, not validated here.
func (f Forecast) MissingSlots() int {
	return f.Slots.Total - f.Slots.Assigned
}
