// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the goldturn TUI.
//
// This file implements the Bubble Tea update loop: keyboard handling per
// state, transcript refresh on store changes, and completion handling for
// generation and edit saves.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goldturn/goldturn-tui/internal/model"
	"github.com/goldturn/goldturn-tui/internal/ui/components"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TranscriptChangedMsg:
		m.refreshViewport(true)
		return m, nil

	case GenerateDoneMsg:
		return m.handleGenerateDone(msg)

	case EditDoneMsg:
		return m.handleEditDone(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			m.toasts.AddError("export failed: " + msg.Err.Error())
		} else {
			m.toasts.AddSuccess("exported " + msg.Path)
		}
		return m, components.ToastTickCmd()

	case spinner.TickMsg:
		if m.state == StateStreaming || m.state == StateSavingEdit {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		if m.toasts.HasToasts() {
			return m, components.ToastTickCmd()
		}
		return m, nil
	}

	return m, m.updateFocused(msg)
}

// updateFocused forwards unhandled messages to whichever input component has
// focus.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.state {
	case StateEditing:
		m.editArea, cmd = m.editArea.Update(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	// Scrolling works in every state.
	switch {
	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil
	}

	switch m.state {
	case StateReady:
		return m.handleReadyKey(msg)
	case StateStreaming:
		return m.handleStreamingKey(msg)
	case StateEditing:
		return m.handleEditingKey(msg)
	case StateSavingEdit:
		// Input is locked while a save is in flight.
		return m, nil
	}
	return m, nil
}

func (m *Model) handleReadyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submitInput()

	case key.Matches(msg, m.keyMap.Edit):
		return m.beginEdit()

	case key.Matches(msg, m.keyMap.Cancel):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.toasts.HasToasts() {
			m.toasts.DismissNewest()
			return m, nil
		}
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleStreamingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Cancel) {
		m.runner.Cancel()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.SaveEdit):
		return m.submitEdit()

	case key.Matches(msg, m.keyMap.Cancel):
		m.state = StateReady
		m.editingID = ""
		m.editArea.Reset()
		m.input.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.editArea, cmd = m.editArea.Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submitInput handles Enter in the ready state: slash commands run locally,
// anything else becomes a generation turn.
func (m *Model) submitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		m.input.Reset()
		return m.runCommand(text)
	}

	m.input.Reset()
	m.state = StateStreaming
	m.statusBar.SetStatus(components.StatusStreaming)
	m.runner.Generate(text)
	return m, m.spinner.Tick
}

// beginEdit moves the newest editable bot reply into the textarea.
func (m *Model) beginEdit() (tea.Model, tea.Cmd) {
	target, ok := m.lastEditable()
	if !ok {
		m.toasts.AddStatus("no saved reply to edit")
		return m, components.ToastTickCmd()
	}

	m.state = StateEditing
	m.editingID = target.ID
	m.editArea.SetValue(target.Content)
	m.editArea.Focus()
	m.input.Blur()
	m.statusBar.SetStatus(components.StatusEditing)
	return m, nil
}

// submitEdit sends the textarea content to the backend as an edit save.
func (m *Model) submitEdit() (tea.Model, tea.Cmd) {
	content := m.editArea.Value()
	id := m.editingID

	m.state = StateSavingEdit
	m.statusBar.SetStatus(components.StatusSavingEdit)
	m.editArea.Blur()
	m.runner.SaveEdit(id, content)
	return m, m.spinner.Tick
}

// =============================================================================
// COMPLETION HANDLING
// =============================================================================

func (m *Model) handleGenerateDone(msg GenerateDoneMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady
	m.statusBar.SetStatus(components.StatusReady)
	m.refreshViewport(true)

	// The bot message already shows the failure inline; the toast makes it
	// impossible to miss when the row has scrolled away.
	if msg.Err != nil {
		m.toasts.AddError("generation failed: " + msg.Err.Error())
		m.statusBar.SetStatus(components.StatusError)
		return m, components.ToastTickCmd()
	}
	return m, nil
}

func (m *Model) handleEditDone(msg EditDoneMsg) (tea.Model, tea.Cmd) {
	m.refreshViewport(true)

	if msg.Err != nil {
		// The message reverted to ready with its content intact; the edit
		// box stays open with the draft so the user can retry or cancel.
		m.state = StateEditing
		m.statusBar.SetStatus(components.StatusEditing)
		m.editArea.Focus()
		m.toasts.AddError("edit save failed: " + msg.Err.Error())
		return m, components.ToastTickCmd()
	}

	m.state = StateReady
	m.statusBar.SetStatus(components.StatusReady)
	m.editingID = ""
	m.editArea.Reset()
	m.input.Focus()
	m.toasts.AddSuccess("edit saved")
	return m, components.ToastTickCmd()
}

// messageByID is a test seam for inspecting store state through the model.
func (m *Model) messageByID(id string) (model.Message, bool) {
	return m.store.Get(id)
}
