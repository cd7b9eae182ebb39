package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/snapreview/internal/client"
	"github.com/sevigo/snapreview/internal/config"
	"github.com/sevigo/snapreview/internal/logger"
)

var (
	backendURL string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "snapreview",
	Short: "snapreview sends code snippets to a review gateway.",
	Long: `A CLI for the snapreview gateway. It submits a snippet for an AI review,
prints the review and the suggested fix, and can copy the fix to the clipboard.`,
	SilenceUsage: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&backendURL, "backend-url", "b", "", "review gateway base URL (env BACKEND_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")

	for key, flag := range map[string]string{
		"BACKEND_URL": "backend-url",
		"LOG_LEVEL":   "log-level",
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			slog.Error("Error binding flag", "error", err)
			os.Exit(1)
		}
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// newClient loads the client configuration and builds a gateway client.
// Logs go to stderr so stdout carries only command output.
func newClient() (*client.Client, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ValidateForClient(); err != nil {
		return nil, nil, err
	}

	logCfg := cfg.Logging
	if logCfg.Output == "" || logCfg.Output == "stdout" {
		logCfg.Output = "stderr"
	}
	log := logger.NewLogger(logCfg, nil)
	slog.SetDefault(log)

	return client.New(cfg.Client.BackendURL, nil, log), cfg, nil
}
