// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the goldturn TUI.
//
// This file renders the chat layout: header, transcript viewport, input or
// edit area, status bar, and the toast overlay.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goldturn/goldturn-tui/internal/model"
	"github.com/goldturn/goldturn-tui/internal/ui/components"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.viewport.View())

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, m.renderInputArea())
	}
	sections = append(sections, m.statusBar.Render())

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if toasts := m.toasts.GetToasts(); len(toasts) > 0 {
		// The toast stack overlays the bottom-right corner.
		overlay := components.RenderToastStack(m.theme, toasts, m.width, 0)
		view = lipgloss.JoinVertical(lipgloss.Left, view, overlay)
	}
	return view
}

func (m *Model) renderHeader() string {
	title := m.theme.Header.Render("goldturn")
	sub := m.theme.Title.Render("turn curation")
	return title + " " + sub
}

func (m *Model) renderInputArea() string {
	switch m.state {
	case StateEditing:
		header := m.theme.EditTitle.Render("Editing reply") + " " +
			m.theme.EditHint.Render("ctrl+s save, esc cancel")
		return m.theme.EditContainer.Width(m.width - 2).Render(
			header + "\n" + m.editArea.View())

	case StateSavingEdit:
		return m.theme.EditContainer.Width(m.width - 2).Render(
			m.spinner.View() + " " + m.theme.ThinkingText.Render("saving edit..."))

	case StateStreaming:
		return m.theme.InputContainer.Width(m.width - 2).Render(
			m.spinner.View() + " " + m.theme.ThinkingText.Render("generating... esc to cancel"))

	default:
		return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
	}
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// renderTranscript renders the full conversation log.
func (m *Model) renderTranscript() string {
	messages := m.store.Messages()
	if len(messages) == 0 {
		return m.theme.ThinkingText.Render("\n  Start a conversation. The reply streams in as it is generated.\n")
	}

	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		parts = append(parts, m.renderMessage(msg))
	}
	return strings.Join(parts, "\n\n")
}

// renderMessage renders one transcript entry according to its role and
// status.
func (m *Model) renderMessage(msg model.Message) string {
	label := m.renderLabel(msg)

	switch {
	case msg.Role == model.RoleUser:
		return label + "\n" + m.theme.UserMessage.Render(msg.Content)

	case msg.Status == model.StatusStreaming:
		body := msg.Content + m.theme.StreamCursor.Render("|")
		return label + "\n" + m.theme.BotMessage.Render(body)

	case msg.Status == model.StatusError:
		body := m.theme.ErrorMessage.Render("generation failed: " + msg.Err)
		return label + "\n" + m.theme.BotMessage.Render(body)

	case msg.Status == model.StatusSavingEdit:
		body := msg.Content + "\n" + m.theme.ThinkingText.Render("saving edit...")
		return label + "\n" + m.theme.BotMessage.Render(body)

	default: // StatusReady
		return label + "\n" + m.theme.BotMessage.Render(m.renderReadyContent(msg))
	}
}

// renderReadyContent renders final bot content, through glamour when
// markdown is enabled.
func (m *Model) renderReadyContent(msg model.Message) string {
	body := msg.Content
	if m.markdown && m.renderer != nil {
		if rendered, err := m.renderer.Render(msg.Content); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	if msg.Err != "" {
		// Transient annotation from a failed edit save.
		body += "\n" + m.theme.ErrorMessage.Render(msg.Err)
	}
	return body
}

func (m *Model) renderLabel(msg model.Message) string {
	var label string
	if msg.Role == model.RoleUser {
		label = m.theme.UserLabel.Render(msg.Role.DisplayName())
	} else {
		label = m.theme.BotLabel.Render(msg.Role.DisplayName())
	}
	if m.timestamps {
		label += " " + m.theme.Timestamp.Render(msg.Timestamp.Format("15:04:05"))
	}
	return label
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

func (m *Model) renderHelp() string {
	rows := []struct{ cmd, desc string }{
		{"/help", "toggle this help"},
		{"/new", "start a new conversation"},
		{"/export [md|jsonl]", "write the transcript to disk"},
		{"/quit", "exit"},
		{"ctrl+e", "edit the last saved reply"},
		{"ctrl+s", "save the edit"},
		{"esc", "cancel stream / dismiss toast / close help"},
		{"ctrl+c", "quit"},
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(m.theme.HelpCommand.Render(padRight(r.cmd, 20)))
		sb.WriteString(m.theme.HelpDesc.Render(r.desc))
		sb.WriteString("\n")
	}
	return m.theme.HelpBox.Width(m.width - 2).Render(strings.TrimRight(sb.String(), "\n"))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
