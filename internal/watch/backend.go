// Package watch owns the lifetime of the kernel watch resource: acquisition,
// the blocking read loop, and idempotent teardown.
package watch

import "github.com/hoffindustries/rolexhound/internal/inotify"

// Backend is the platform-specific acquisition side of a watch session.
// It owns the watch resource, reads raw event buffers, decodes them and
// delivers the resulting records.
type Backend interface {
	// Records returns the channel of decoded event records. The channel is
	// closed when the backend shuts down.
	Records() <-chan inotify.Record

	// Errors returns the channel of fatal acquisition errors. An error here
	// means the read or decode contract was violated and the session must
	// stop; the channel is closed when the backend shuts down.
	Errors() <-chan error

	// Close releases the watch registration and the underlying resource
	// exactly once. It is safe to call repeatedly and safe to call while a
	// read is in flight.
	Close() error
}

// Options configures a watch session.
type Options struct {
	// Path is the filesystem path to observe.
	Path string
	// BufferSize is the size of the raw event read buffer.
	BufferSize int
}

// setDefaults applies default values to unset options.
func (o *Options) setDefaults() {
	if o.BufferSize == 0 {
		o.BufferSize = 4096
	}
}
