// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the text-generation backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeStatus
	ErrTypeInvalidResponse
	ErrTypeMissingTurnID
)

// Sentinel errors for easy checking.
var (
	// ErrMissingTurnID is returned when an edit save is attempted on a
	// reply that never received a turn identifier from the backend.
	ErrMissingTurnID = &ClientError{Type: ErrTypeMissingTurnID, Message: "missing turn identifier"}
)

// statusError builds the failure for a non-2xx response. The numeric status
// code is embedded in the message text; if the backend supplied a JSON
// {"error": "..."} body, its text is appended for context.
func statusError(op string, resp *http.Response) *ClientError {
	msg := op + " request failed: " + strconv.Itoa(resp.StatusCode)

	var payload errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload); err == nil && payload.Error != "" {
		msg += " (" + payload.Error + ")"
	}

	return &ClientError{Type: ErrTypeStatus, Message: msg}
}

// IsMissingTurnID checks if an error is a missing-turn-identifier error.
func IsMissingTurnID(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeMissingTurnID
	}
	return false
}

// IsStatusError checks if an error comes from a non-2xx backend response.
func IsStatusError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeStatus
	}
	return false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:5000)
	BaseURL string

	// Timeout for non-streaming requests (default: 30s). Generation
	// requests run without a deadline because replies may stream for an
	// arbitrary time; cancellation is the caller's context's job.
	Timeout time.Duration

	// TurnHeader is the response header carrying the turn identifier.
	// Checked before any JSON body field (default: X-Turn-Id).
	TurnHeader string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:    "http://127.0.0.1:5000",
		Timeout:    30 * time.Second,
		TurnHeader: "X-Turn-Id",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the generation backend.
//
// The Client is safe for concurrent use; overlapping Generate calls are
// allowed and each operates on its own response.
//
// Example:
//
//	client := backend.NewClient()
//	result, err := client.Generate(ctx, "Explain turn curation.", nil)
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	// streamClient has no timeout: a generation response may legitimately
	// stream for longer than any fixed deadline.
	streamClient *http.Client
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:5000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.TurnHeader == "" {
		config.TurnHeader = "X-Turn-Id"
	}

	return &Client{
		config:       config,
		httpClient:   &http.Client{Timeout: config.Timeout},
		streamClient: &http.Client{},
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// GENERATE
// =============================================================================

// DeltaFunc receives the entire accumulated reply text so far after each
// streamed increment, never just the delta, so a consumer reading at any
// moment sees a valid prefix of the final text.
type DeltaFunc func(textSoFar string)

// Generate submits a prompt to POST /generate_response and resolves the
// reply. Three response shapes are supported, in priority order:
//
//  1. JSON body: the string "response" field is the final content (the whole
//     object serialized back to text if the field is absent).
//  2. Streamed byte body: chunks are decoded incrementally and onDelta is
//     invoked with the accumulated text after every increment.
//  3. Plain text: the whole body is the final content, no intermediate
//     updates.
//
// The turn identifier is taken from the configured response header when
// present, otherwise from the JSON body's "turn_id" field. Raw streams carry
// no turn identifier.
func (c *Client) Generate(ctx context.Context, prompt string, onDelta DeltaFunc) (*GenerateResult, error) {
	body, err := json.Marshal(GenerateRequest{Prompt: prompt})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/generate_response", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "generate request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError("generate", resp)
	}

	// Header-supplied turn id wins; the JSON body field is only a fallback.
	turnID := resp.Header.Get(c.config.TurnHeader)

	if isJSONContentType(resp.Header.Get("Content-Type")) {
		return c.resolveJSON(resp.Body, turnID)
	}

	if resp.ContentLength < 0 {
		// Chunked/unknown-length body: the streaming path, and the only
		// one that produces intermediate updates.
		return c.resolveStream(ctx, resp.Body, turnID, onDelta)
	}

	return c.resolveText(resp.Body, turnID)
}

// resolveJSON handles a structured JSON generation response.
func (c *Client) resolveJSON(r io.Reader, headerTurnID string) (*GenerateResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read response", Cause: err}
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	result := &GenerateResult{TurnID: headerTurnID}

	var content string
	if field, ok := parsed["response"]; ok && json.Unmarshal(field, &content) == nil {
		result.Content = content
	} else {
		// No string response field: serialize the whole object as a
		// fallback so the reply is at least inspectable.
		result.Content = string(raw)
	}

	if result.TurnID == "" {
		var bodyTurnID string
		if field, ok := parsed["turn_id"]; ok && json.Unmarshal(field, &bodyTurnID) == nil {
			result.TurnID = bodyTurnID
		}
	}

	return result, nil
}

// resolveStream incrementally reads a byte stream, decoding chunks through a
// stateful UTF-8 decoder so multi-byte characters split across chunk
// boundaries survive intact.
func (c *Client) resolveStream(ctx context.Context, r io.Reader, turnID string, onDelta DeltaFunc) (*GenerateResult, error) {
	decoder := NewStreamDecoder()
	var accumulated strings.Builder
	buf := make([]byte, 4096)

	for {
		if err := ctx.Err(); err != nil {
			return nil, &ClientError{Type: ErrTypeConnection, Message: "generate stream interrupted", Cause: err}
		}

		n, err := r.Read(buf)
		if n > 0 {
			if text := decoder.Write(buf[:n]); text != "" {
				accumulated.WriteString(text)
				if onDelta != nil {
					onDelta(accumulated.String())
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to read stream", Cause: err}
		}
	}

	// Flush any partial sequence held back at end-of-stream.
	if tail := decoder.Flush(); tail != "" {
		accumulated.WriteString(tail)
		if onDelta != nil {
			onDelta(accumulated.String())
		}
	}

	return &GenerateResult{Content: accumulated.String(), TurnID: turnID}, nil
}

// resolveText reads the whole body as text with no intermediate updates.
func (c *Client) resolveText(r io.Reader, turnID string) (*GenerateResult, error) {
	decoder := NewStreamDecoder()
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read response", Cause: err}
	}
	return &GenerateResult{Content: decoder.Write(raw) + decoder.Flush(), TurnID: turnID}, nil
}

// =============================================================================
// SAVE EDIT
// =============================================================================

// SaveEdit persists an edited reply to POST /save_edit and returns the
// authoritative content: the backend may normalize the saved text by
// answering with a JSON string "response" field; otherwise the submitted
// content is assumed persisted as-is. A turn identifier is required.
func (c *Client) SaveEdit(ctx context.Context, turnID, content string) (string, error) {
	if turnID == "" {
		return "", ErrMissingTurnID
	}

	body, err := json.Marshal(SaveEditRequest{TurnID: turnID, Content: content})
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/save_edit", bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "save_edit request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError("save_edit", resp)
	}

	// A malformed success body is tolerated: the submitted content stands.
	var parsed SaveEditResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil && parsed.Response != nil {
		return *parsed.Response, nil
	}
	return content, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isJSONContentType reports whether a Content-Type header denotes JSON.
func isJSONContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct == "application/json" || strings.HasSuffix(ct, "+json")
}
