// Package wire assembles the review gateway from its providers.
package wire

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/wire"

	"github.com/sevigo/snapreview/internal/app"
	"github.com/sevigo/snapreview/internal/config"
	"github.com/sevigo/snapreview/internal/core"
	"github.com/sevigo/snapreview/internal/llm"
	"github.com/sevigo/snapreview/internal/logger"
	"github.com/sevigo/snapreview/internal/server"
)

// AppSet provides everything InitializeApp needs.
var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	core.DefaultCatalog,
	llm.NewPromptManager,
	llm.NewGenerator,
	llm.NewReviewService,
	provideConfig,
	provideLoggerConfig,
	provideLogWriter,
	provideSlogLogger,
)

// provideConfig loads the configuration and rejects settings the gateway
// cannot run with.
func provideConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateForServer(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

// provideLogWriter opens the log destination. The cleanup closes it when it
// is a file.
func provideLogWriter(cfg logger.Config) (io.Writer, func()) {
	w := logger.OpenOutput(cfg)
	cleanup := func() {
		if f, ok := w.(*os.File); ok && f != os.Stdout && f != os.Stderr {
			_ = f.Close()
		}
	}
	return w, cleanup
}

func provideSlogLogger(cfg logger.Config, writer io.Writer) *slog.Logger {
	l := logger.NewLogger(cfg, writer)
	slog.SetDefault(l)
	return l
}
