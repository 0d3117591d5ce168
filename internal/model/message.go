// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleBot:
		return "Bot"
	default:
		return string(r)
	}
}

// =============================================================================
// STATUS TYPE
// =============================================================================

// Status tracks the lifecycle of a bot message. User messages are always
// StatusReady and never transition.
type Status string

const (
	// StatusStreaming means the reply body is still being received.
	StatusStreaming Status = "streaming"
	// StatusReady means the message content is final and displayable.
	StatusReady Status = "ready"
	// StatusSavingEdit means an edit of the reply is being persisted.
	StatusSavingEdit Status = "saving-edit"
	// StatusError means generation failed and Content was cleared.
	StatusError Status = "error"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single entry in the conversation log.
//
// Messages are value types: the Store hands out copies, so holding a Message
// never aliases store internals.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content is the text body. For bot messages it starts empty and is
	// replaced with the full accumulator on every streaming increment.
	Content string `json:"content"`

	// TurnID is the backend-assigned turn identifier. Bot messages only,
	// set once the reply has been associated with a backend-side turn.
	// A bot message without a TurnID cannot be edit-saved.
	TurnID string `json:"turn_id,omitempty"`

	// Status is meaningful for bot messages; see the Status constants.
	Status Status `json:"status"`

	// Err holds a human-readable failure description. Set when Status is
	// StatusError, or as a transient annotation after a failed edit save.
	Err string `json:"error,omitempty"`
}

// NewUserMessage creates a ready user message carrying the submitted prompt.
func NewUserMessage(content string) Message {
	return Message{
		ID:        generateID(),
		Role:      RoleUser,
		Timestamp: time.Now(),
		Content:   content,
		Status:    StatusReady,
	}
}

// NewBotMessage creates the streaming bot message paired with a prompt.
// Content starts empty and grows during ingestion.
func NewBotMessage() Message {
	return Message{
		ID:        generateID(),
		Role:      RoleBot,
		Timestamp: time.Now(),
		Status:    StatusStreaming,
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Editable reports whether the message can be the target of an edit save.
func (m *Message) Editable() bool {
	return m.Role == RoleBot && m.TurnID != "" && m.Status == StatusReady
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// Preview returns a truncated preview of the message content.
// Rune-based so multi-byte characters are never split.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
