// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package turns drives the conversation protocols against the message store.
package turns

import (
	"context"
	"errors"

	"github.com/goldturn/goldturn-tui/internal/backend"
	"github.com/goldturn/goldturn-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrUnknownMessage is returned when an operation targets a message id that
// is not in the store.
var ErrUnknownMessage = errors.New("unknown message id")

// =============================================================================
// SERVICE
// =============================================================================

// ProgressFunc is invoked after every store mutation a protocol performs,
// with the id of the mutated message. The UI uses it to re-render.
type ProgressFunc func(messageID string)

// Service implements the response-ingestion and edit-persistence protocols.
// All mutations flow through the store's Patch entry point keyed by message
// id, so concurrent invocations never corrupt each other's messages.
type Service struct {
	store  *model.Store
	client *backend.Client
}

// NewService creates a protocol service over a store and a backend client.
func NewService(store *model.Store, client *backend.Client) *Service {
	return &Service{store: store, client: client}
}

// Store returns the conversation store the service mutates.
func (s *Service) Store() *model.Store {
	return s.store
}

// =============================================================================
// RESPONSE INGESTION
// =============================================================================

// Send submits a prompt and ingests the reply into the store.
//
// The user/bot pair is appended atomically; the bot message then walks its
// state machine: streaming (content replaced with the full accumulator on
// every increment) -> ready on success, or error on failure with content
// cleared and Err set. Failures are also returned to the caller so a
// page-level notification can be raised alongside the per-message state
// (generation errors are deliberately dual-channel).
//
// Send does not serialize with other Sends: each call owns its own message
// pair and the backend may see overlapping requests.
func (s *Service) Send(ctx context.Context, prompt string, progress ProgressFunc) (botID string, err error) {
	_, bot := s.store.AppendExchange(prompt)
	notify(progress, bot.ID)

	result, err := s.client.Generate(ctx, prompt, func(textSoFar string) {
		s.store.Patch(bot.ID, model.PatchContent(textSoFar))
		notify(progress, bot.ID)
	})
	if err != nil {
		s.store.Patch(bot.ID, model.Patch{
			Content: model.String(""),
			Status:  model.StatusOf(model.StatusError),
			Err:     model.String(errText(err, "response generation failed")),
		})
		notify(progress, bot.ID)
		return bot.ID, err
	}

	patch := model.Patch{
		Content: model.String(result.Content),
		Status:  model.StatusOf(model.StatusReady),
		Err:     model.String(""),
	}
	if result.TurnID != "" {
		patch.TurnID = model.String(result.TurnID)
	}
	s.store.Patch(bot.ID, patch)
	notify(progress, bot.ID)

	return bot.ID, nil
}

// =============================================================================
// EDIT PERSISTENCE
// =============================================================================

// SaveEdit overwrites a prior reply's content on the backend and reconciles
// the result into the store.
//
// Unlike a failed generation, a failed edit never destroys the existing good
// reply: on any failure the status reverts to ready, the prior content stays
// in place, only Err is annotated, and the error is returned so the caller
// can keep its edit box open with the draft intact.
func (s *Service) SaveEdit(ctx context.Context, messageID, content string, progress ProgressFunc) error {
	msg, ok := s.store.Get(messageID)
	if !ok {
		return ErrUnknownMessage
	}

	// Fail fast before any observable transition or network call.
	if msg.Role != model.RoleBot || msg.TurnID == "" {
		return backend.ErrMissingTurnID
	}

	s.store.Patch(messageID, model.Patch{
		Status: model.StatusOf(model.StatusSavingEdit),
	})
	notify(progress, messageID)

	resolved, err := s.client.SaveEdit(ctx, msg.TurnID, content)
	if err != nil {
		s.store.Patch(messageID, model.Patch{
			Status: model.StatusOf(model.StatusReady),
			Err:    model.String(errText(err, "failed to save edit")),
		})
		notify(progress, messageID)
		return err
	}

	s.store.Patch(messageID, model.Patch{
		Content: model.String(resolved),
		Status:  model.StatusOf(model.StatusReady),
		Err:     model.String(""),
	})
	notify(progress, messageID)

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// notify invokes a progress callback when one was supplied.
func notify(progress ProgressFunc, id string) {
	if progress != nil {
		progress(id)
	}
}

// errText prefers the error's own message, falling back to a generic
// description for errors with no useful text.
func errText(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
