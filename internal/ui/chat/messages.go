// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the goldturn TUI.
//
// This file defines the Bubble Tea message types used by the chat interface.
// All message types follow Bubble Tea conventions and are immutable.
package chat

// =============================================================================
// TRANSCRIPT MESSAGES
// =============================================================================

// TranscriptChangedMsg signals that a message in the store was updated and
// the viewport should re-render. Sent on every streaming increment and on
// every status transition.
type TranscriptChangedMsg struct {
	MessageID string
}

// GenerateDoneMsg signals that a generation turn finished, successfully or
// not. When Err is non-nil the store already carries the error state on the
// bot message; the UI additionally surfaces it as a toast.
type GenerateDoneMsg struct {
	BotID string
	Err   error
}

// EditDoneMsg signals that an edit save finished. On failure the edited
// message has already reverted to ready with its content preserved.
type EditDoneMsg struct {
	MessageID string
	Err       error
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// ExportDoneMsg reports the result of a transcript export.
type ExportDoneMsg struct {
	Path string
	Err  error
}
