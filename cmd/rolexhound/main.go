// Package main provides the entry point for the rolexhound filesystem watchdog.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/hoffindustries/rolexhound/internal/config"
	"github.com/hoffindustries/rolexhound/internal/di"
	"github.com/hoffindustries/rolexhound/internal/di/providers"
	"github.com/hoffindustries/rolexhound/internal/errors"
	"github.com/hoffindustries/rolexhound/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services; any failure here is fatal with its own status
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return exitStatus(err)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	session := do.MustInvoke[*providers.SessionHandle](injector)

	// Wait for a shutdown signal or a fatal loop error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)

	select {
	case sig := <-quit:
		log.Info("Exit signal received, shutting down...", "signal", sig.String())
	case err := <-session.Err():
		if err != nil {
			log.WithError(err).Error("Watch loop failed")
			if report := injector.Shutdown(); report != nil {
				log.Error("Shutdown error", "error", report)
			}
			return exitStatus(err)
		}
		log.Info("Watch loop finished")
	}

	// Shutdown all services; a second signal during teardown is ignored
	// because session teardown is idempotent.
	if report := injector.Shutdown(); report != nil {
		log.Error("Shutdown error", "error", report)
	}

	log.Info("Watch released. Goodbye.")
	return errors.StatusSuccess
}

// exitStatus maps an error onto the process exit status for its code.
func exitStatus(err error) int {
	var domainErr *errors.Error
	if errors.As(err, &domainErr) {
		return domainErr.ExitStatus()
	}
	return errors.StatusInternal
}
