// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goldturn/goldturn-tui/internal/ui/styles"
	"github.com/goldturn/goldturn-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusStreaming
	StatusSavingEdit
	StatusEditing
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusStreaming:
		return "Streaming..."
	case StatusSavingEdit:
		return "Saving edit..."
	case StatusEditing:
		return "Editing"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusStreaming:
		return "~"
	case StatusSavingEdit:
		return styles.StatusIndicators.Pending
	case StatusEditing:
		return styles.StatusIndicators.Info
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar is the bottom status bar: app state, backend address, shortcuts.
type StatusBar struct {
	Status        Status
	BackendURL    string
	MessageCount  int
	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetBackend updates the backend address display.
func (s *StatusBar) SetBackend(url string) {
	s.BackendURL = url
}

// SetMessageCount updates the transcript length display.
func (s *StatusBar) SetMessageCount(n int) {
	s.MessageCount = n
}

// Render renders the status bar.
func (s *StatusBar) Render() string {
	var statusStyle lipgloss.Style
	switch s.Status {
	case StatusStreaming:
		statusStyle = s.theme.StatusStream
	case StatusSavingEdit:
		statusStyle = s.theme.StatusSaving
	case StatusError:
		statusStyle = s.theme.StatusError
	default:
		statusStyle = s.theme.ShortcutDesc
	}

	left := statusStyle.Render(s.Status.Icon() + " " + s.Status.String())
	if s.MessageCount > 0 {
		left += s.theme.ShortcutDesc.Render(fmt.Sprintf("  %d msgs", s.MessageCount))
	}

	right := s.theme.BackendAddress.Render(s.BackendURL)
	if s.ShowShortcuts {
		right = s.renderShortcuts() + "  " + right
	}

	// Pad the middle so left and right hug the edges.
	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
		right = util.TruncateWidth(right, s.Width-lipgloss.Width(left)-3)
	}

	return s.theme.StatusBar.Width(s.Width).Render(
		left + strings.Repeat(" ", gap) + right,
	)
}

func (s *StatusBar) renderShortcuts() string {
	pairs := s.shortcutPairs()
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts,
			s.theme.ShortcutKey.Render(p[0])+s.theme.ShortcutDesc.Render(" "+p[1]))
	}
	return strings.Join(parts, "  ")
}

// shortcutPairs returns the key hints relevant to the current state.
func (s *StatusBar) shortcutPairs() [][2]string {
	switch s.Status {
	case StatusEditing:
		return [][2]string{{"ctrl+s", "save"}, {"esc", "cancel"}}
	case StatusStreaming:
		return [][2]string{{"esc", "cancel"}}
	default:
		return [][2]string{{"e", "edit"}, {"/help", "commands"}, {"ctrl+c", "quit"}}
	}
}
