// Package notify delivers classified events as user-visible desktop
// notifications.
package notify

import "strings"

// Urgency levels defined by the freedesktop.org notification spec.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// Sink renders a classified event as a user notification. Delivery is
// best-effort: a failed Notify must never stop event processing.
type Sink interface {
	// Notify shows one notification with the given title and body.
	Notify(title, body string) error

	// Close releases the connection to the notification service.
	Close() error
}

// Options configures notification delivery.
type Options struct {
	// AppName is reported to the notification service.
	AppName string
	// Icon is the icon hint attached to every notification.
	Icon string
	// Urgency is the urgency hint attached to every notification.
	Urgency byte
}

// ParseUrgency maps a configured urgency name onto its wire value.
// Unrecognized names fall back to critical, the watchdog default.
func ParseUrgency(s string) byte {
	switch strings.ToLower(s) {
	case "low":
		return UrgencyLow
	case "normal":
		return UrgencyNormal
	default:
		return UrgencyCritical
	}
}
