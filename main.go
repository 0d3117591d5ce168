// goldturn TUI - A terminal interface for curating generated replies.
//
// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goldturn/goldturn-tui/internal/backend"
	"github.com/goldturn/goldturn-tui/internal/config"
	"github.com/goldturn/goldturn-tui/internal/model"
	"github.com/goldturn/goldturn-tui/internal/turns"
	"github.com/goldturn/goldturn-tui/internal/ui/chat"
	"github.com/goldturn/goldturn-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		backendURL  = flag.String("backend", "", "backend base URL (overrides config)")
		configPath  = flag.String("config", "", "path to config file")
		debugLog    = flag.Bool("debug", false, "write a debug log to goldturn-debug.log")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("goldturn %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *backendURL != "" {
		cfg.Backend.URL = *backendURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *debugLog || os.Getenv("GOLDTURN_DEBUG") != "" {
		f, err := tea.LogToFile("goldturn-debug.log", "goldturn")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running goldturn: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// run wires the store, backend client, turn service, and UI together and
// starts the event loop.
func run(cfg *config.Config) error {
	theme := styles.NewTheme()

	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:    cfg.Backend.URL,
		Timeout:    cfg.Backend.Timeout(),
		TurnHeader: cfg.Backend.TurnHeader,
	})

	store := model.NewStore()
	service := turns.NewService(store, client)
	runner := chat.NewRunner(service)

	m := chat.New(store, runner, theme, chat.Options{
		Markdown:   cfg.UI.Markdown,
		Timestamps: cfg.UI.Timestamps,
		ExportDir:  exportDir(cfg),
		BackendURL: cfg.Backend.URL,
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// The runner needs the program to report async progress back into the
	// event loop; the program needs the model. Attach after construction.
	runner.SetProgram(p)

	_, err := p.Run()
	return err
}

// exportDir resolves the transcript export directory, defaulting to
// ~/.goldturn/exports.
func exportDir(cfg *config.Config) string {
	if cfg.UI.ExportDir != "" {
		return cfg.UI.ExportDir
	}
	if dir, err := config.ConfigDir(); err == nil {
		return filepath.Join(dir, "exports")
	}
	return "."
}
