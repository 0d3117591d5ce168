// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
//
// # Key Types
//
//   - Message: a single conversation entry with role, content, status, and
//     the backend-assigned turn identifier
//   - Store: the ordered, append-only conversation log with update-by-id
//   - Patch: a partial update merged into one message
//
// # Usage
//
// Create a store and record an exchange:
//
//	store := model.NewStore()
//	_, bot := store.AppendExchange("Explain UTF-8 in one sentence.")
//	store.Patch(bot.ID, model.Patch{
//	    Content: model.String("UTF-8 encodes Unicode..."),
//	    Status:  model.StatusOf(model.StatusReady),
//	})
//
// The store hands out copies on every read, so callers can never corrupt
// store internals through a returned Message.
package model
