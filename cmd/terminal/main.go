package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/snapreview/internal/client"
	"github.com/sevigo/snapreview/internal/config"
	"github.com/sevigo/snapreview/internal/core"
	"github.com/sevigo/snapreview/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Parse command-line flags
	themeFlag := flag.String("theme", cfg.Client.Theme, "UI theme (cyan, matrix, amber, cyberpunk, ice, dracula, fire)")
	backendURL := flag.String("backend-url", cfg.Client.BackendURL, "review gateway base URL")
	listThemes := flag.Bool("list-themes", false, "List all available themes")
	flag.Parse()

	if *listThemes {
		fmt.Println("Available themes:")
		for _, theme := range ListThemes() {
			fmt.Printf("  - %s\n", theme)
		}
		return nil
	}

	theme, err := ParseTheme(*themeFlag)
	if err != nil {
		return err
	}
	cfg.Client.BackendURL = *backendURL
	if err := cfg.ValidateForClient(); err != nil {
		return err
	}

	// The alternate screen owns stdout, so logs go to a file unless another
	// non-stdout destination was configured.
	logCfg := cfg.Logging
	if logCfg.Output == "" || logCfg.Output == "stdout" {
		logCfg.Output = "file"
	}
	log := logger.NewLogger(logCfg, nil)
	slog.SetDefault(log)

	catalog, err := core.DefaultCatalog()
	if err != nil {
		return err
	}

	log.Info("terminal client starting up", "backend_url", cfg.Client.BackendURL, "theme", theme)
	c := client.New(cfg.Client.BackendURL, nil, log)
	m := initialModel(theme, catalog, c, clipboard.WriteAll, cfg.Client.HighlightStyle)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error("error running program", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info("terminal client shut down successfully")
	return nil
}
