// Package providers contains dependency injection providers for rolexhound.
package providers

import (
	"context"
	"os"

	"github.com/samber/do/v2"

	"github.com/hoffindustries/rolexhound/internal/config"
	"github.com/hoffindustries/rolexhound/internal/logger"
	"github.com/hoffindustries/rolexhound/internal/notify"
	"github.com/hoffindustries/rolexhound/internal/watch"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig(os.Args[1:], os.Stderr)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting rolexhound",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"watch_path", cfg.Watch.Path,
	)

	return log, nil
}

// ProvideSink provides the desktop notification sink.
func ProvideSink(i do.Injector) (notify.Sink, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return notify.NewDesktopSink(notify.Options{
		AppName: cfg.Notify.AppName,
		Icon:    cfg.Notify.Icon,
		Urgency: notify.ParseUrgency(cfg.Notify.Urgency),
	})
}

// SessionHandle wraps the watch session worker with shutdown capability.
type SessionHandle struct {
	*watch.Session
	cancel context.CancelFunc
	errs   chan error
}

// Err returns the channel carrying the session loop's terminal error.
func (h *SessionHandle) Err() <-chan error {
	return h.errs
}

// Shutdown implements do.Shutdownable.
func (h *SessionHandle) Shutdown() error {
	h.cancel()
	return h.Session.Close()
}

// ProvideSession acquires the watch resource and starts the watch loop in
// the background.
func ProvideSession(i do.Injector) (*SessionHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sink := do.MustInvoke[notify.Sink](i)

	session, err := watch.Open(log.Logger, watch.Options{
		Path:       cfg.Watch.Path,
		BufferSize: cfg.Watch.BufferSize,
	}, sink)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)

	go func() {
		errs <- session.Run(ctx)
	}()

	log.Info("Watch session started", "path", cfg.Watch.Path)

	return &SessionHandle{
		Session: session,
		cancel:  cancel,
		errs:    errs,
	}, nil
}
