// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App    lipgloss.Style
	Header lipgloss.Style
	Title  lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserMessage  lipgloss.Style
	BotMessage   lipgloss.Style
	UserLabel    lipgloss.Style
	BotLabel     lipgloss.Style
	Timestamp    lipgloss.Style
	ErrorMessage lipgloss.Style
	StreamCursor lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// EDIT AREA STYLES
	// ==========================================================================

	EditContainer lipgloss.Style
	EditTitle     lipgloss.Style
	EditHint      lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar      lipgloss.Style
	StatusStream   lipgloss.Style
	StatusSaving   lipgloss.Style
	StatusError    lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style
	BackendAddress lipgloss.Style

	// ==========================================================================
	// TOAST AND SPINNER STYLES
	// ==========================================================================

	ToastError   lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastStatus  lipgloss.Style
	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// HELP STYLES
	// ==========================================================================

	HelpBox     lipgloss.Style
	HelpCommand lipgloss.Style
	HelpDesc    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	// Container
	t.App = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.Header = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true).
		Padding(0, 1)
	t.Title = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Messages
	t.UserMessage = lipgloss.NewStyle().
		Foreground(UserFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(UserBorder).
		PaddingLeft(1)
	t.BotMessage = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(BotBorder).
		PaddingLeft(1)
	t.UserLabel = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.BotLabel = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(Rose).
		Italic(true)
	t.StreamCursor = lipgloss.NewStyle().
		Foreground(Gold).
		Blink(true)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Edit
	t.EditContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(0, 1)
	t.EditTitle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	t.EditHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.StatusStream = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	t.StatusSaving = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	t.StatusError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.BackendAddress = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Toasts and spinner
	t.ToastError = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1).
		Bold(true)
	t.ToastSuccess = lipgloss.NewStyle().
		Foreground(Emerald).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(0, 1)
	t.ToastStatus = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.Spinner = lipgloss.NewStyle().
		Foreground(Gold)
	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Help
	t.HelpBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)
	t.HelpCommand = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.HelpDesc = lipgloss.NewStyle().
		Foreground(TextSecondary)

	return t
}

// Resize updates the layout dimensions after a terminal size change.
func (t *Theme) Resize(width, height int) {
	t.Width = width
	t.Height = height
}
