// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the goldturn TUI.
//
// This file implements the slash commands available from the input line.
package chat

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goldturn/goldturn-tui/internal/export"
	"github.com/goldturn/goldturn-tui/internal/ui/components"
)

// runCommand dispatches a slash command entered at the prompt.
func (m *Model) runCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/help":
		m.showHelp = !m.showHelp
		return m, nil

	case "/new":
		m.store.Reset()
		m.toasts.Clear()
		m.showHelp = false
		m.refreshViewport(true)
		return m, nil

	case "/export":
		return m, m.exportCmd(args)

	case "/quit", "/exit":
		return m, tea.Quit

	default:
		m.toasts.AddStatus(fmt.Sprintf("unknown command %s, try /help", cmd))
		return m, components.ToastTickCmd()
	}
}

// exportCmd writes the transcript in the requested format. Defaults to
// markdown when no format is given.
func (m *Model) exportCmd(args []string) tea.Cmd {
	format := "md"
	if len(args) > 0 {
		format = strings.ToLower(args[0])
	}

	messages := m.store.Messages()
	opts := &export.Options{
		OutputDir:         m.exportDir,
		IncludeTimestamps: m.timestamps,
	}

	return func() tea.Msg {
		var path string
		var err error
		switch format {
		case "md", "markdown":
			path, err = export.Markdown(messages, opts)
		case "jsonl", "json":
			path, err = export.JSONL(messages, opts)
		default:
			err = fmt.Errorf("unknown export format %q (md, jsonl)", format)
		}
		return ExportDoneMsg{Path: path, Err: err}
	}
}
