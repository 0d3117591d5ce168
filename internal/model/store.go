// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
package model

import (
	"sync"
	"time"
)

// =============================================================================
// PATCH TYPE
// =============================================================================

// Patch describes a partial update to a message. Nil fields are left
// untouched; non-nil fields are merged into the target message.
type Patch struct {
	Content *string
	TurnID  *string
	Status  *Status
	Err     *string
}

// Pointer helpers for building patches inline.

// PatchContent returns a patch setting only the content.
func PatchContent(content string) Patch {
	return Patch{Content: &content}
}

// String returns a pointer to s, for use in Patch literals.
func String(s string) *string {
	return &s
}

// StatusOf returns a pointer to st, for use in Patch literals.
func StatusOf(st Status) *Status {
	return &st
}

// =============================================================================
// STORE
// =============================================================================

// Store maintains the ordered conversation log and provides update-by-id.
//
// The log is append-only: messages are never removed or reordered, only
// patched in place. All methods are safe for concurrent use; a Patch against
// a given id is applied atomically relative to any other Append/Patch, so
// interleaved protocol invocations cannot lose updates.
type Store struct {
	mu       sync.Mutex
	messages []Message
	index    map[string]int // id -> position in messages
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
	}
}

// Append adds one or more messages to the end of the log. Always succeeds.
func (s *Store) Append(msgs ...Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range msgs {
		s.index[m.ID] = len(s.messages)
		s.messages = append(s.messages, m)
	}
}

// AppendExchange atomically creates and appends a user/bot pair for a
// submitted prompt: the user message carries the prompt, the bot message
// starts streaming with empty content. The bot message always directly
// follows its user message; both keep their position for the lifetime of
// the store. Returns copies of the appended messages.
func (s *Store) AppendExchange(prompt string) (user Message, bot Message) {
	user = NewUserMessage(prompt)
	bot = NewBotMessage()
	s.Append(user, bot)
	return user, bot
}

// Patch merges the given fields into the message with matching id, leaving
// every other message untouched. Returns false without modifying anything
// if the id is unknown.
func (s *Store) Patch(id string, p Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false
	}

	m := &s.messages[i]
	if p.Content != nil {
		m.Content = *p.Content
	}
	if p.TurnID != nil {
		m.TurnID = *p.TurnID
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Err != nil {
		m.Err = *p.Err
	}
	return true
}

// Messages returns an ordered snapshot of the log. The returned slice is a
// copy; callers can mutate it freely without corrupting store state.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Get returns a copy of the message with the given id.
func (s *Store) Get(id string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return Message{}, false
	}
	return s.messages[i], true
}

// Len returns the number of messages in the log.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Reset discards the entire log, starting a fresh conversation. Message ids
// from before the reset are forgotten; patches against them become no-ops.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	s.index = make(map[string]int)
}

// LastUpdated returns the timestamp of the newest message, or the zero time
// for an empty store.
func (s *Store) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) == 0 {
		return time.Time{}
	}
	return s.messages[len(s.messages)-1].Timestamp
}
