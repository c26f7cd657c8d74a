// Package history defines the journal of assignment batch submissions.
package history

import (
	"context"
	"time"
)

// Outcome mirrors one per-pair backend outcome for journalling purposes.
type Outcome struct {
	RouteID    string `json:"route_id"`
	DriverID   string `json:"driver_id"`
	IsAssigned bool   `json:"is_assigned"`
}

// Record captures one batch submission and its result.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Requested int       `json:"requested"`
	Assigned  int       `json:"assigned"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes"`
}

// Query defines filters for retrieving records.
type Query struct {
	Start    time.Time
	End      time.Time
	RouteID  string
	DriverID string
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
