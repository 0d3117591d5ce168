// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the goldturn TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/goldturn/goldturn-tui/internal/model"
	"github.com/goldturn/goldturn-tui/internal/ui/components"
	"github.com/goldturn/goldturn-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady      State = iota // Ready for input
	StateStreaming               // Receiving a generated reply
	StateEditing                 // Editing a bot reply in the textarea
	StateSavingEdit              // Waiting for an edit save to persist
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateStreaming:
		return "streaming"
	case StateEditing:
		return "editing"
	case StateSavingEdit:
		return "saving-edit"
	default:
		return "unknown"
	}
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures the chat model.
type Options struct {
	// Markdown renders ready bot replies through glamour.
	Markdown bool
	// Timestamps shows a timestamp next to each message.
	Timestamps bool
	// ExportDir is the directory for /export transcripts.
	ExportDir string
	// BackendURL is shown in the status bar.
	BackendURL string
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	store *model.Store

	// Async work bridge
	runner *Runner

	// The bot message currently being edited (StateEditing/StateSavingEdit).
	editingID string

	// UI components
	viewport  viewport.Model
	input     textinput.Model
	editArea  textarea.Model
	spinner   spinner.Model
	statusBar *components.StatusBar
	toasts    *components.ToastManager

	// Markdown rendering
	renderer *glamour.TermRenderer
	markdown bool

	// Display options
	timestamps bool
	exportDir  string
	backendURL string

	// Key bindings
	keyMap KeyMap

	// Help overlay
	showHelp bool
}

// New creates a chat model backed by the given store and runner.
func New(store *model.Store, runner *Runner, theme *styles.Theme, opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Type a prompt, or /help for commands"
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.PlaceholderStyle = theme.InputPlaceholder
	input.CharLimit = 0
	input.Focus()

	editArea := textarea.New()
	editArea.Placeholder = "Edit the reply"
	editArea.CharLimit = 0
	editArea.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	vp := viewport.New(80, 20)

	m := &Model{
		state:      StateReady,
		theme:      theme,
		store:      store,
		runner:     runner,
		viewport:   vp,
		input:      input,
		editArea:   editArea,
		spinner:    sp,
		statusBar:  components.NewStatusBar(theme),
		toasts:     components.NewToastManager(),
		markdown:   opts.Markdown,
		timestamps: opts.Timestamps,
		exportDir:  opts.ExportDir,
		backendURL: opts.BackendURL,
		keyMap:     DefaultKeyMap(),
	}
	m.statusBar.SetBackend(opts.BackendURL)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current view state.
func (m *Model) State() State {
	return m.state
}

// Toasts exposes the toast manager, mainly for tests.
func (m *Model) Toasts() *components.ToastManager {
	return m.toasts
}

// resize recomputes component dimensions after a terminal size change and
// rebuilds the markdown renderer for the new wrap width.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.Resize(width, height)

	// Header takes 1 line, input box 3, status bar 1.
	vpHeight := height - 5
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.Width = width - 6
	m.editArea.SetWidth(width - 6)
	m.editArea.SetHeight(6)
	m.statusBar.SetWidth(width)

	wrap := width - 6
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		m.renderer = renderer
	}

	m.refreshViewport(true)
}

// refreshViewport re-renders the transcript. When follow is true the view
// snaps to the bottom, which is where new content appears.
func (m *Model) refreshViewport(follow bool) {
	m.viewport.SetContent(m.renderTranscript())
	m.statusBar.SetMessageCount(m.store.Len())
	if follow {
		m.viewport.GotoBottom()
	}
}

// lastEditable returns the newest bot message that can be edit-saved.
func (m *Model) lastEditable() (model.Message, bool) {
	messages := m.store.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Editable() {
			return messages[i], true
		}
	}
	return model.Message{}, false
}
