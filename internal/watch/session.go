package watch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/hoffindustries/rolexhound/internal/errors"
	"github.com/hoffindustries/rolexhound/internal/inotify"
	"github.com/hoffindustries/rolexhound/internal/notify"
)

// State is the lifecycle state of a watch session.
type State int32

const (
	// Uninitialized is the state before the watch resource is acquired.
	Uninitialized State = iota
	// Active means the acquire-decode-classify-notify loop may run.
	Active
	// ShuttingDown means teardown has started.
	ShuttingDown
	// Closed is terminal: the watch resource has been released.
	Closed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	case ShuttingDown:
		return "shutting down"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session drives the watch loop for a single target: records arrive from
// the backend, are classified, and every non-ignored one is forwarded to
// the notification sink. The session is the only code path that releases
// the watch resource, and it does so exactly once.
type Session struct {
	logger    *slog.Logger
	target    Target
	backend   Backend
	sink      notify.Sink
	state     atomic.Int32
	closeOnce sync.Once
	closeErr  error
}

// Open acquires the platform watch backend for the configured path and
// returns an active session. Acquisition failures carry the queue-init or
// watch-rejected error code.
func Open(logger *slog.Logger, opts Options, sink notify.Sink) (*Session, error) {
	opts.setDefaults()

	target, err := NewTarget(opts.Path)
	if err != nil {
		return nil, err
	}

	backend, err := newBackend(logger, target.Path(), opts.BufferSize)
	if err != nil {
		return nil, err
	}

	return New(logger, target, backend, sink), nil
}

// New wires a session from an already-acquired backend. The session takes
// ownership of the backend and releases it on Close.
func New(logger *slog.Logger, target Target, backend Backend, sink notify.Sink) *Session {
	s := &Session{
		logger:  logger,
		target:  target,
		backend: backend,
		sink:    sink,
	}
	s.state.Store(int32(Active))
	return s
}

// Target returns the watched target.
func (s *Session) Target() Target {
	return s.target
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Run executes the watch loop until the context is cancelled, the backend
// shuts down, or a fatal acquisition error occurs. Absence of events is the
// expected idle condition; the loop blocks indefinitely waiting for them.
// Sink failures are logged and never abort the loop.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("Waiting for filesystem events...",
		"path", s.target.Path(),
		"name", s.target.DisplayName(),
	)

	records := s.backend.Records()
	errs := s.backend.Errors()

	// The backend closes both channels on shutdown; a fatal error may still
	// be buffered on errs when records closes, so neither closed channel
	// ends the loop until the other is drained.
	for records != nil || errs != nil {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			return errors.Wrap(err, errors.CodeReadFailure, "event acquisition failed")
		case rec, ok := <-records:
			if !ok {
				records = nil
				continue
			}
			s.dispatch(rec)
		}
	}
	return nil
}

// dispatch classifies one record and forwards it to the sink.
func (s *Session) dispatch(rec inotify.Record) {
	category := inotify.Classify(rec.Mask)
	if category == inotify.Ignored {
		s.logger.Debug("ignoring event", "mask", rec.Mask, "name", rec.Name)
		return
	}

	s.logger.Debug("event", "category", category.String(), "mask", rec.Mask, "name", rec.Name)

	if err := s.sink.Notify(s.target.DisplayName(), category.Message()); err != nil {
		// Delivery is best-effort; the loop keeps going.
		s.logger.Warn("notification delivery failed",
			"error", err,
			"category", category.String(),
		)
	}
}

// Close releases the watch resource. It is idempotent: concurrent and
// repeated calls tear down at most once, and a release error is logged
// rather than retried.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.state.Store(int32(ShuttingDown))
		s.logger.Info("Closing watch descriptors...", "path", s.target.Path())

		if err := s.backend.Close(); err != nil {
			s.logger.Warn("error releasing watch resource", "error", err)
			s.closeErr = err
		}
		s.state.Store(int32(Closed))
	})
	return s.closeErr
}
