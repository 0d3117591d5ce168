// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the goldturn TUI.
//
// This file implements the Runner, the bridge between the Bubble Tea event
// loop and the turn service. Network work runs in goroutines owned by the
// Runner; results and streaming progress re-enter the event loop through
// tea.Program.Send.
package chat

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goldturn/goldturn-tui/internal/turns"
)

// =============================================================================
// RUNNER
// =============================================================================

// cancelHandle wraps a cancel func so finished operations can tell whether
// the stored handle is still their own.
type cancelHandle struct {
	fn context.CancelFunc
}

// Runner executes generation turns and edit saves for a Bubble Tea program.
type Runner struct {
	mu      sync.Mutex
	program *tea.Program
	service *turns.Service
	active  *cancelHandle
}

// NewRunner creates a runner on top of the turn service. SetProgram must be
// called before any work is started.
func NewRunner(service *turns.Service) *Runner {
	return &Runner{service: service}
}

// SetProgram attaches the Bubble Tea program the runner reports into.
// The program is constructed after the model, so this cannot happen in
// NewRunner.
func (r *Runner) SetProgram(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.program = p
}

// begin sets up a cancellable context for a new operation and returns the
// program to report into, or nil when no program is attached yet.
func (r *Runner) begin() (*tea.Program, context.Context, *cancelHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	handle := &cancelHandle{fn: cancel}
	r.active = handle
	return r.program, ctx, handle
}

// finish releases the operation's context and clears the stored handle if
// no newer operation has replaced it.
func (r *Runner) finish(handle *cancelHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle.fn()
	if r.active == handle {
		r.active = nil
	}
}

// Generate starts a generation turn in the background. Streaming progress
// arrives as TranscriptChangedMsg, completion as GenerateDoneMsg.
func (r *Runner) Generate(prompt string) {
	program, ctx, handle := r.begin()
	if program == nil {
		r.finish(handle)
		return
	}

	go func() {
		defer r.finish(handle)

		botID, err := r.service.Send(ctx, prompt, func(messageID string) {
			program.Send(TranscriptChangedMsg{MessageID: messageID})
		})
		program.Send(GenerateDoneMsg{BotID: botID, Err: err})
	}()
}

// SaveEdit persists an edited reply in the background. Status transitions
// arrive as TranscriptChangedMsg, completion as EditDoneMsg.
func (r *Runner) SaveEdit(messageID, content string) {
	program, ctx, handle := r.begin()
	if program == nil {
		r.finish(handle)
		return
	}

	go func() {
		defer r.finish(handle)

		err := r.service.SaveEdit(ctx, messageID, content, func(id string) {
			program.Send(TranscriptChangedMsg{MessageID: id})
		})
		program.Send(EditDoneMsg{MessageID: messageID, Err: err})
	}()
}

// Cancel aborts the in-flight operation, if any. The aborted turn completes
// through its normal done message with a context error.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		r.active.fn()
		r.active = nil
	}
}
