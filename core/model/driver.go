package model

// Name holds a driver's first and last name as delivered by the backend.
type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// Full returns "First Last", tolerating empty parts.
func (n Name) Full() string {
	switch {
	case n.First == "":
		return n.Last
	case n.Last == "":
		return n.First
	default:
		return n.First + " " + n.Last
	}
}

// Haulier is the carrier company employing a driver.
type Haulier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Fulfillee is the customer or outfit on whose behalf a route is run.
type Fulfillee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Driver represents a vehicle operator. Drivers are referenced, never
// mutated, by this subsystem.
type Driver struct {
	ID      string   `json:"id"`
	Name    Name     `json:"name"`
	Phone   string   `json:"phone"`
	Haulier *Haulier `json:"haulier,omitempty"`
}

// DriverID implements Assignee.
func (d Driver) DriverID() string { return d.ID }

// Assignee is anything that can be paired with a route: a Driver directly,
// or a Prebooking through its reserved driver.
type Assignee interface {
	DriverID() string
}
