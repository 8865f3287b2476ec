// Package di provides dependency injection configuration for rolexhound.
package di

import (
	"github.com/samber/do/v2"

	"github.com/hoffindustries/rolexhound/internal/config"
	"github.com/hoffindustries/rolexhound/internal/di/providers"
	"github.com/hoffindustries/rolexhound/internal/logger"
	"github.com/hoffindustries/rolexhound/internal/notify"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Notification delivery
	do.Provide(injector, providers.ProvideSink)

	// Watch session worker
	do.Provide(injector, providers.ProvideSession)

	return injector
}

// Bootstrap initializes all services. This triggers lazy initialization in
// dependency order; the first failure is returned so the entry point can
// map it onto its exit status.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[notify.Sink](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SessionHandle](injector); err != nil {
		return err
	}
	return nil
}
