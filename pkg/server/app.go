package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CovidPulse/internal/domain/repository"
	"CovidPulse/internal/usecase"
	xhttp "CovidPulse/pkg/http"
	applogger "CovidPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	tracker    *usecase.Tracker
	notifier   repository.Notifier
	store      repository.SnapshotStore
	httpServer *xhttp.Server
	logger     *applogger.Logger
}

// New creates a new App instance. httpServer may be nil.
func New(
	tracker *usecase.Tracker,
	notifier repository.Notifier,
	store repository.SnapshotStore,
	httpServer *xhttp.Server,
	logger *applogger.Logger,
) *App {
	return &App{
		tracker:    tracker,
		notifier:   notifier,
		store:      store,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Run blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext runs the tracker until ctx is cancelled, then releases resources.
func (a *App) RunContext(ctx context.Context) error {
	if a.httpServer != nil {
		if err := a.httpServer.Start(); err != nil {
			a.logger.Error("status server start error", applogger.Error(err))
			return err
		}
	}

	err := a.tracker.Run(ctx)
	a.shutdown()
	return err
}

// shutdown gracefully stops all services.
func (a *App) shutdown() {
	if a.httpServer != nil {
		if err := a.httpServer.Stop(context.Background()); err != nil {
			a.logger.Warn("status server stop error", applogger.Error(err))
		}
	}
	if err := a.notifier.Close(); err != nil {
		a.logger.Warn("notifier close error", applogger.Error(err))
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("snapshot store close error", applogger.Error(err))
	}
	a.logger.Debug("shutdown complete")
}
