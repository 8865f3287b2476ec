package notify

import (
	"github.com/godbus/dbus/v5"

	"github.com/hoffindustries/rolexhound/internal/errors"
)

const (
	notifyService = "org.freedesktop.Notifications"
	notifyPath    = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod  = "org.freedesktop.Notifications.Notify"

	// expireNever leaves the notification up until the server or user
	// dismisses it.
	expireNever int32 = -1
)

// DesktopSink delivers notifications over the D-Bus session bus via the
// org.freedesktop.Notifications service.
type DesktopSink struct {
	conn *dbus.Conn
	opts Options
}

var _ Sink = (*DesktopSink)(nil)

// NewDesktopSink connects to the session bus. A connection failure is a
// startup error; the watch loop never starts without a working sink.
func NewDesktopSink(opts Options) (*DesktopSink, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSinkInit, "failed to connect to session bus")
	}
	return &DesktopSink{conn: conn, opts: opts}, nil
}

// Notify shows one desktop notification. Each event stands on its own;
// notifications are never replaced or coalesced.
func (s *DesktopSink) Notify(title, body string) error {
	obj := s.conn.Object(notifyService, notifyPath)
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(s.opts.Urgency),
	}

	call := obj.Call(notifyMethod, 0,
		s.opts.AppName,
		uint32(0), // replaces_id: never replace
		s.opts.Icon,
		title,
		body,
		[]string{}, // no actions
		hints,
		expireNever,
	)
	if call.Err != nil {
		return errors.ErrSink.WithCause(call.Err)
	}
	return nil
}

// Close releases the bus connection.
func (s *DesktopSink) Close() error {
	return s.conn.Close()
}
