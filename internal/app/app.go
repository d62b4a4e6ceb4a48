// Package app assembles the tracker from configuration for the binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"bagbuilder-go/internal/api"
	"bagbuilder-go/internal/auth"
	"bagbuilder-go/internal/config"
	"bagbuilder-go/internal/logger"
	"bagbuilder-go/internal/store"
	"bagbuilder-go/internal/tracker"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// App holds the wired components.
type App struct {
	Config  config.Config
	Log     *zap.Logger
	Store   store.Store
	Tracker *tracker.Service
	JWT     auth.JWT
}

// New loads the configuration from configDir and wires every component.
func New(configDir string) (*App, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	st, err := store.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &App{
		Config:  cfg,
		Log:     log,
		Store:   st,
		Tracker: tracker.NewService(st, log),
		JWT:     auth.NewJWT(cfg.Auth),
	}, nil
}

// Serve runs the HTTP API until ctx is cancelled or the listener fails.
func (a *App) Serve(ctx context.Context) error {
	srv := api.NewServer(a.Config.Server, a.Tracker, a.Store, a.JWT, a.Log)
	errCh := srv.Start()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info("Shutdown signal received, gracefully shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
