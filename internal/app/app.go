// Package app ties the review gateway's components together and owns their
// lifecycle.
package app

import (
	"log/slog"

	"github.com/sevigo/snapreview/internal/config"
	"github.com/sevigo/snapreview/internal/server"
)

// App holds the main application components.
type App struct {
	cfg    *config.Config
	server *server.Server
	logger *slog.Logger
}

// NewApp sets up the application with all its dependencies.
func NewApp(cfg *config.Config, srv *server.Server, logger *slog.Logger) *App {
	cfg.LogSummary(logger)
	return &App{
		cfg:    cfg,
		server: srv,
		logger: logger,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	a.logger.Info("starting review gateway",
		"address", a.server.Addr(),
		"provider", a.cfg.AI.LLMProvider,
		"model", a.cfg.AI.GeneratorModel)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down review gateway")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("review gateway stopped with errors", "error", err)
		return err
	}

	a.logger.Info("review gateway stopped successfully")
	return nil
}
