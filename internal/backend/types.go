// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the text-generation backend.
package backend

// =============================================================================
// REQUEST TYPES
// =============================================================================

// GenerateRequest is the request body for POST /generate_response.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// SaveEditRequest is the request body for POST /save_edit.
type SaveEditRequest struct {
	TurnID  string `json:"turn_id"`
	Content string `json:"content"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// GenerateResult is the resolved outcome of a generation request.
type GenerateResult struct {
	// Content is the final reply text.
	Content string

	// TurnID is the backend-assigned turn identifier, empty when the
	// response carried none (raw streams and plain text bodies).
	TurnID string
}

// SaveEditResponse is the optional JSON body of a successful save.
// A nil Response means the backend did not normalize the saved text.
type SaveEditResponse struct {
	Response *string `json:"response"`
}

// errorBody is the JSON error payload the backend attaches to failures.
type errorBody struct {
	Error string `json:"error"`
}
