// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the goldturn TUI.
//
// The package is organized as a standard Bubble Tea component:
//
//   - model.go: the Model struct, states, and construction
//   - update.go: message handling and state transitions
//   - view.go: rendering the transcript, input area, and overlays
//   - messages.go: Bubble Tea message types
//   - keys.go: keyboard bindings
//   - commands.go: slash command handling (/help, /new, /export, /quit)
//   - runner.go: the bridge between the event loop and the turn service
//
// Generation and edit saves run in goroutines owned by the Runner, which
// reports progress back into the event loop via tea.Program.Send. The Model
// never touches the network directly; it reads the conversation from the
// store and issues work through the Runner.
package chat
