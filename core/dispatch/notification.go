package dispatch

import (
	"time"

	"github.com/askilde/dispatchdesk/internal/eventbus"
)

// Severity classifies a user-facing notification.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityAlert
	SeverityError
)

// String returns the severity slug.
func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityAlert:
		return "alert"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a transient, dismissible message for the operator. Count
// carries the number of affected pairs where relevant.
type Notification struct {
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Count    int       `json:"count"`
	Time     time.Time `json:"time"`
}

// NotificationBus carries notifications from the service layer to consumers.
type NotificationBus = eventbus.Bus[Notification]

// NewNotificationBus creates a bus for notifications.
func NewNotificationBus() *NotificationBus { return eventbus.New[Notification]() }

func publish(bus *NotificationBus, sev Severity, msg string, count int) {
	if bus == nil {
		return
	}
	bus.Publish(Notification{Severity: sev, Message: msg, Count: count, Time: time.Now()})
}
