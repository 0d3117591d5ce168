// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package turns drives the conversation protocols against the message store.
package turns

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldturn/goldturn-tui/internal/backend"
	"github.com/goldturn/goldturn-tui/internal/model"
)

// newTestService wires a fresh store and a client against srv.
func newTestService(srv *httptest.Server) *Service {
	client := backend.NewClientWithConfig(&backend.ClientConfig{BaseURL: srv.URL})
	return NewService(model.NewStore(), client)
}

// =============================================================================
// SEND - SUCCESS PATHS
// =============================================================================

func TestSend_PlainJSONReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response": "hi", "turn_id": "t1"}`))
	}))
	defer srv.Close()

	svc := newTestService(srv)
	botID, err := svc.Send(context.Background(), "hello", nil)
	require.NoError(t, err)

	bot, ok := svc.Store().Get(botID)
	require.True(t, ok)
	assert.Equal(t, model.StatusReady, bot.Status)
	assert.Equal(t, "hi", bot.Content)
	assert.Equal(t, "t1", bot.TurnID)
	assert.Empty(t, bot.Err)

	msgs := svc.Store().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, botID, msgs[1].ID)
}

func TestSend_StreamedReplyProgressesThroughPrefixes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.WriteHeader(http.StatusOK)
		for _, chunk := range []string{"He", "llo"} {
			w.Write([]byte(chunk))
			flusher.Flush()
		}
	}))
	defer srv.Close()

	svc := newTestService(srv)

	// Capture the content the store holds at each progress notification.
	var observed []string
	botID, err := svc.Send(context.Background(), "hello", func(id string) {
		if msg, ok := svc.Store().Get(id); ok {
			observed = append(observed, msg.Content)
		}
	})
	require.NoError(t, err)

	bot, _ := svc.Store().Get(botID)
	assert.Equal(t, model.StatusReady, bot.Status)
	assert.Equal(t, "Hello", bot.Content)
	assert.Empty(t, bot.TurnID, "raw streams leave the message un-editable")

	// Every observed state is a valid prefix of the final text.
	for _, content := range observed {
		assert.True(t, strings.HasPrefix("Hello", content),
			"store held %q, not a prefix of the final text", content)
	}
}

func TestSend_ConcurrentSendsDoNotInterfere(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req backend.GenerateRequest
		_ = decodeBody(r, &req)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response": "echo: ` + req.Prompt + `", "turn_id": "t-` + req.Prompt + `"}`))
	}))
	defer srv.Close()

	svc := newTestService(srv)

	done := make(chan string, 2)
	for _, prompt := range []string{"a", "b"} {
		go func(p string) {
			id, _ := svc.Send(context.Background(), p, nil)
			done <- id
		}(prompt)
	}
	id1, id2 := <-done, <-done

	m1, _ := svc.Store().Get(id1)
	m2, _ := svc.Store().Get(id2)
	assert.NotEqual(t, m1.Content, m2.Content)
	for _, m := range []model.Message{m1, m2} {
		assert.Equal(t, model.StatusReady, m.Status)
		assert.Equal(t, "echo: "+m.TurnID[2:], m.Content)
	}
}

// =============================================================================
// SEND - FAILURE PATH
// =============================================================================

func TestSend_ServerErrorMarksMessageAndSignalsCaller(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("partial "))
		flusher.Flush()
		// Connection drops mid-stream.
		panic(http.ErrAbortHandler)
	}))
	defer srv.Close()

	svc := newTestService(srv)
	botID, err := svc.Send(context.Background(), "hello", nil)
	require.Error(t, err, "generation failures are dual-channel: message state plus returned error")

	bot, _ := svc.Store().Get(botID)
	assert.Equal(t, model.StatusError, bot.Status)
	assert.Empty(t, bot.Content, "failed generation clears the content")
	assert.NotEmpty(t, bot.Err)
}

func TestSend_Non2xxStatusInErrText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := newTestService(srv)
	botID, err := svc.Send(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	bot, _ := svc.Store().Get(botID)
	assert.Equal(t, model.StatusError, bot.Status)
	assert.Empty(t, bot.Content)
	assert.Contains(t, bot.Err, "500")
}

// =============================================================================
// SAVE EDIT
// =============================================================================

// seedReadyBot appends a finished exchange and returns the bot message id.
func seedReadyBot(svc *Service, turnID string) string {
	_, bot := svc.Store().AppendExchange("prompt")
	patch := model.Patch{
		Content: model.String("original reply"),
		Status:  model.StatusOf(model.StatusReady),
	}
	if turnID != "" {
		patch.TurnID = model.String(turnID)
	}
	svc.Store().Patch(bot.ID, patch)
	return bot.ID
}

func TestSaveEdit_MissingTurnIDFailsFast(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	svc := newTestService(srv)
	botID := seedReadyBot(svc, "")

	var sawSavingEdit bool
	err := svc.SaveEdit(context.Background(), botID, "edited", func(id string) {
		if msg, ok := svc.Store().Get(id); ok && msg.Status == model.StatusSavingEdit {
			sawSavingEdit = true
		}
	})
	require.Error(t, err)
	assert.True(t, backend.IsMissingTurnID(err))
	assert.Zero(t, requests, "no network call without a turn id")
	assert.False(t, sawSavingEdit, "the message must never transition to saving-edit")

	bot, _ := svc.Store().Get(botID)
	assert.Equal(t, model.StatusReady, bot.Status)
	assert.Equal(t, "original reply", bot.Content)
}

func TestSaveEdit_SuccessNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("saved"))
	}))
	defer srv.Close()

	svc := newTestService(srv)
	botID := seedReadyBot(svc, "t1")

	var statuses []model.Status
	err := svc.SaveEdit(context.Background(), botID, "edited text", func(id string) {
		if msg, ok := svc.Store().Get(id); ok {
			statuses = append(statuses, msg.Status)
		}
	})
	require.NoError(t, err)

	bot, _ := svc.Store().Get(botID)
	assert.Equal(t, model.StatusReady, bot.Status)
	assert.Equal(t, "edited text", bot.Content, "submitted text is preserved verbatim")
	assert.Empty(t, bot.Err)

	// saving-edit is observable before the request resolves.
	require.Len(t, statuses, 2)
	assert.Equal(t, model.StatusSavingEdit, statuses[0])
	assert.Equal(t, model.StatusReady, statuses[1])
}

func TestSaveEdit_BackendNormalizedContentWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response": "normalized"}`))
	}))
	defer srv.Close()

	svc := newTestService(srv)
	botID := seedReadyBot(svc, "t1")

	require.NoError(t, svc.SaveEdit(context.Background(), botID, "edited", nil))
	bot, _ := svc.Store().Get(botID)
	assert.Equal(t, "normalized", bot.Content)
}

func TestSaveEdit_FailurePreservesContentAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	svc := newTestService(srv)
	botID := seedReadyBot(svc, "t1")

	err := svc.SaveEdit(context.Background(), botID, "edited", nil)
	require.Error(t, err, "edit failures re-signal the caller")
	assert.Contains(t, err.Error(), "400")

	bot, _ := svc.Store().Get(botID)
	assert.Equal(t, model.StatusReady, bot.Status, "a failed edit never enters the error status")
	assert.Equal(t, "original reply", bot.Content, "prior content stays in place")
	assert.Contains(t, bot.Err, "400")
}

func TestSaveEdit_UnknownMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	svc := newTestService(srv)
	err := svc.SaveEdit(context.Background(), "msg_missing", "edited", nil)
	assert.ErrorIs(t, err, ErrUnknownMessage)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// decodeBody decodes a JSON request body.
func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
