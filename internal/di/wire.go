//go:build wireinject
// +build wireinject

package di

import (
	"CovidPulse/pkg/config"
	"CovidPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideClock,

		// Infrastructure clients
		ProvideHTTPClient,
		ProvideBytesCache,

		// Repositories and services
		ProvideStatsSource,
		ProvideNotifier,
		ProvideSnapshotStore,

		// Use cases
		ProvideRenderer,
		ProvideTracker,

		// Application server
		ProvideStatusServer,
		ProvideApp,
	)
	return &server.App{}, nil
}
