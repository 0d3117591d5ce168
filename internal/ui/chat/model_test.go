// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goldturn/goldturn-tui/internal/model"
	"github.com/goldturn/goldturn-tui/internal/ui/components"
	"github.com/goldturn/goldturn-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) (*Model, *model.Store) {
	t.Helper()
	store := model.NewStore()
	// Runner without an attached program: Generate/SaveEdit become no-ops,
	// which lets tests drive completion messages by hand.
	runner := NewRunner(nil)
	m := New(store, runner, styles.NewTheme(), Options{
		Markdown:   false,
		ExportDir:  t.TempDir(),
		BackendURL: "http://127.0.0.1:5000",
	})
	m.resize(100, 30)
	return m, store
}

func pressKey(m *Model, key tea.KeyType) {
	m.Update(tea.KeyMsg{Type: key})
}

// =============================================================================
// STATE TRANSITION TESTS
// =============================================================================

func TestSubmitPrompt_EntersStreaming(t *testing.T) {
	m, _ := newTestModel(t)

	m.input.SetValue("hello")
	pressKey(m, tea.KeyEnter)

	if m.State() != StateStreaming {
		t.Errorf("State = %v, want StateStreaming", m.State())
	}
	if m.input.Value() != "" {
		t.Error("Input should clear on submit")
	}
}

func TestSubmitEmptyPrompt_Ignored(t *testing.T) {
	m, _ := newTestModel(t)

	m.input.SetValue("   ")
	pressKey(m, tea.KeyEnter)

	if m.State() != StateReady {
		t.Errorf("Empty prompt must not start a turn, state = %v", m.State())
	}
}

func TestGenerateDone_ReturnsToReady(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateStreaming

	m.Update(GenerateDoneMsg{BotID: "msg_x"})

	if m.State() != StateReady {
		t.Errorf("State = %v, want StateReady", m.State())
	}
	if m.Toasts().HasToasts() {
		t.Error("Successful generation should not raise a toast")
	}
}

func TestGenerateDone_ErrorRaisesStickyToast(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateStreaming

	m.Update(GenerateDoneMsg{BotID: "msg_x", Err: errors.New("connection refused")})

	if m.State() != StateReady {
		t.Errorf("State = %v, want StateReady", m.State())
	}
	toasts := m.Toasts().GetToasts()
	if len(toasts) != 1 {
		t.Fatalf("Expected 1 toast, got %d", len(toasts))
	}
	if toasts[0].Kind != components.ToastKindError {
		t.Error("Generation failure should raise an error toast")
	}
	if toasts[0].Duration != 0 {
		t.Error("Error toasts must be sticky")
	}
}

// =============================================================================
// EDIT FLOW TESTS
// =============================================================================

func seedReadyBot(store *model.Store, content, turnID string) model.Message {
	_, bot := store.AppendExchange("prompt")
	store.Patch(bot.ID, model.Patch{
		Content: model.String(content),
		TurnID:  model.String(turnID),
		Status:  model.StatusOf(model.StatusReady),
	})
	m, _ := store.Get(bot.ID)
	return m
}

func TestBeginEdit_PreloadsTextarea(t *testing.T) {
	m, store := newTestModel(t)
	bot := seedReadyBot(store, "original reply", "turn-1")

	pressKey(m, tea.KeyCtrlE)

	if m.State() != StateEditing {
		t.Fatalf("State = %v, want StateEditing", m.State())
	}
	if m.editingID != bot.ID {
		t.Errorf("editingID = %q, want %q", m.editingID, bot.ID)
	}
	if m.editArea.Value() != "original reply" {
		t.Errorf("Textarea = %q, want original content", m.editArea.Value())
	}
}

func TestBeginEdit_NoEditableTarget(t *testing.T) {
	m, store := newTestModel(t)
	// A bot message without a turn id is not editable.
	_, bot := store.AppendExchange("prompt")
	store.Patch(bot.ID, model.Patch{Status: model.StatusOf(model.StatusReady)})

	pressKey(m, tea.KeyCtrlE)

	if m.State() != StateReady {
		t.Errorf("State = %v, want StateReady", m.State())
	}
	if !m.Toasts().HasToasts() {
		t.Error("Expected an informational toast when nothing is editable")
	}
}

func TestEditCancel_RestoresReady(t *testing.T) {
	m, store := newTestModel(t)
	seedReadyBot(store, "reply", "turn-1")

	pressKey(m, tea.KeyCtrlE)
	pressKey(m, tea.KeyEsc)

	if m.State() != StateReady {
		t.Errorf("State = %v, want StateReady", m.State())
	}
	if m.editingID != "" {
		t.Error("editingID should clear on cancel")
	}
}

func TestSubmitEdit_EntersSavingState(t *testing.T) {
	m, store := newTestModel(t)
	seedReadyBot(store, "reply", "turn-1")

	pressKey(m, tea.KeyCtrlE)
	m.editArea.SetValue("revised reply")
	pressKey(m, tea.KeyCtrlS)

	if m.State() != StateSavingEdit {
		t.Errorf("State = %v, want StateSavingEdit", m.State())
	}
}

func TestEditDone_SuccessToast(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateSavingEdit
	m.editingID = "msg_x"

	m.Update(EditDoneMsg{MessageID: "msg_x"})

	if m.State() != StateReady {
		t.Errorf("State = %v, want StateReady", m.State())
	}
	toasts := m.Toasts().GetToasts()
	if len(toasts) != 1 || toasts[0].Kind != components.ToastKindSuccess {
		t.Errorf("Expected a success toast, got %+v", toasts)
	}
}

func TestEditDone_FailureKeepsDraftOpen(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateSavingEdit
	m.editingID = "msg_x"
	m.editArea.SetValue("the draft")

	m.Update(EditDoneMsg{MessageID: "msg_x", Err: errors.New("save_edit request failed: 500")})

	if m.State() != StateEditing {
		t.Errorf("State = %v, want StateEditing (draft stays open)", m.State())
	}
	if m.editArea.Value() != "the draft" {
		t.Errorf("Draft = %q, want preserved", m.editArea.Value())
	}
	toasts := m.Toasts().GetToasts()
	if len(toasts) != 1 || toasts[0].Kind != components.ToastKindError {
		t.Fatalf("Expected an error toast, got %+v", toasts)
	}
	if !strings.Contains(toasts[0].Message, "edit save failed") {
		t.Errorf("Toast message = %q", toasts[0].Message)
	}
}

// =============================================================================
// COMMAND TESTS
// =============================================================================

func TestCommand_HelpToggles(t *testing.T) {
	m, _ := newTestModel(t)

	m.input.SetValue("/help")
	pressKey(m, tea.KeyEnter)
	if !m.showHelp {
		t.Error("/help should open the help overlay")
	}

	m.input.SetValue("/help")
	pressKey(m, tea.KeyEnter)
	if m.showHelp {
		t.Error("/help should toggle the overlay closed")
	}
}

func TestCommand_NewResetsTranscript(t *testing.T) {
	m, store := newTestModel(t)
	seedReadyBot(store, "reply", "turn-1")
	m.Toasts().AddError("stale")

	m.input.SetValue("/new")
	pressKey(m, tea.KeyEnter)

	if store.Len() != 0 {
		t.Errorf("Store should be empty after /new, has %d", store.Len())
	}
	if m.Toasts().HasToasts() {
		t.Error("/new should clear toasts")
	}
}

func TestCommand_Unknown(t *testing.T) {
	m, _ := newTestModel(t)

	m.input.SetValue("/bogus")
	pressKey(m, tea.KeyEnter)

	toasts := m.Toasts().GetToasts()
	if len(toasts) != 1 || !strings.Contains(toasts[0].Message, "unknown command") {
		t.Errorf("Expected unknown-command toast, got %+v", toasts)
	}
}

func TestCommand_ExportWritesFile(t *testing.T) {
	m, store := newTestModel(t)
	seedReadyBot(store, "reply body", "turn-1")

	_, cmd := m.runCommand("/export jsonl")
	if cmd == nil {
		t.Fatal("/export should return a command")
	}

	msg, ok := cmd().(ExportDoneMsg)
	if !ok {
		t.Fatalf("Expected ExportDoneMsg, got %T", msg)
	}
	if msg.Err != nil {
		t.Fatalf("Export failed: %v", msg.Err)
	}
	if !strings.HasSuffix(msg.Path, ".jsonl") {
		t.Errorf("Path = %q, want .jsonl", msg.Path)
	}
}

func TestCommand_ExportUnknownFormat(t *testing.T) {
	m, store := newTestModel(t)
	seedReadyBot(store, "reply", "turn-1")

	_, cmd := m.runCommand("/export xml")
	msg := cmd().(ExportDoneMsg)
	if msg.Err == nil {
		t.Error("Unknown export format should fail")
	}
}

// =============================================================================
// RENDERING TESTS
// =============================================================================

func TestView_RendersTranscript(t *testing.T) {
	m, store := newTestModel(t)
	seedReadyBot(store, "the reply text", "turn-1")
	m.refreshViewport(true)

	view := m.View()
	if !strings.Contains(view, "the reply text") {
		t.Error("View missing reply content")
	}
	if !strings.Contains(view, "goldturn") {
		t.Error("View missing header")
	}
}

func TestRenderMessage_ErrorState(t *testing.T) {
	m, store := newTestModel(t)
	_, bot := store.AppendExchange("prompt")
	store.Patch(bot.ID, model.Patch{
		Status: model.StatusOf(model.StatusError),
		Err:    model.String("backend unreachable"),
	})

	msg, _ := m.messageByID(bot.ID)
	out := m.renderMessage(msg)
	if !strings.Contains(out, "backend unreachable") {
		t.Errorf("Error row missing error text: %q", out)
	}
}

func TestRenderMessage_StreamingCursor(t *testing.T) {
	m, store := newTestModel(t)
	_, bot := store.AppendExchange("prompt")
	store.Patch(bot.ID, model.PatchContent("partial"))

	msg, _ := m.messageByID(bot.ID)
	out := m.renderMessage(msg)
	if !strings.Contains(out, "partial") {
		t.Errorf("Streaming row missing partial content: %q", out)
	}
}

func TestEscape_DismissesToastBeforeClearingInput(t *testing.T) {
	m, _ := newTestModel(t)
	m.Toasts().AddError("failure")
	m.input.SetValue("draft text")

	pressKey(m, tea.KeyEsc)

	if m.Toasts().HasToasts() {
		t.Error("Escape should dismiss the toast first")
	}
	if m.input.Value() != "draft text" {
		t.Error("Input draft should survive the toast dismissal")
	}
}
