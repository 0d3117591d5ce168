// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/goldturn/goldturn-tui/internal/ui/styles"
)

// =============================================================================
// TOAST LIFECYCLE TESTS
// =============================================================================

func TestErrorToast_IsSticky(t *testing.T) {
	toast := NewErrorToast("generation failed")
	toast.CreatedAt = time.Now().Add(-time.Hour)

	if toast.IsExpired() {
		t.Error("Error toasts must never auto-expire")
	}
}

func TestStatusToast_Expires(t *testing.T) {
	toast := NewStatusToast("exported")
	toast.CreatedAt = time.Now().Add(-DefaultToastDuration - time.Second)

	if !toast.IsExpired() {
		t.Error("Status toast should expire after its duration")
	}
}

func TestToastManager_TickKeepsStickyErrors(t *testing.T) {
	m := NewToastManager()

	old := NewErrorToast("failed")
	old.CreatedAt = time.Now().Add(-time.Hour)
	m.AddToast(old)

	expired := NewStatusToast("done")
	expired.CreatedAt = time.Now().Add(-time.Hour)
	m.AddToast(expired)

	remaining := m.TickToasts()
	if len(remaining) != 1 {
		t.Fatalf("Expected 1 remaining toast, got %d", len(remaining))
	}
	if remaining[0].Kind != ToastKindError {
		t.Error("Surviving toast should be the sticky error")
	}
}

func TestToastManager_DismissNewest(t *testing.T) {
	m := NewToastManager()
	m.AddError("first")
	m.AddError("second")

	m.DismissNewest()

	toasts := m.GetToasts()
	if len(toasts) != 1 || toasts[0].Message != "first" {
		t.Errorf("DismissNewest should remove the most recent toast: %+v", toasts)
	}
}

func TestToastManager_RemoveByID(t *testing.T) {
	m := NewToastManager()
	id := m.AddError("target")
	m.AddStatus("other")

	m.RemoveToast(id)

	for _, toast := range m.GetToasts() {
		if toast.ID == id {
			t.Error("Removed toast still present")
		}
	}
}

func TestToastManager_MaxToasts(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 10; i++ {
		m.AddStatus("toast")
	}
	if got := len(m.GetToasts()); got > 5 {
		t.Errorf("Toast stack grew to %d, cap is 5", got)
	}
}

// =============================================================================
// RENDERING TESTS
// =============================================================================

func TestRenderToast_ErrorShowsDismissHint(t *testing.T) {
	theme := styles.NewTheme()
	out := RenderToast(theme, NewErrorToast("save failed"), 80)

	if !strings.Contains(out, "save failed") {
		t.Errorf("Rendered toast missing message: %q", out)
	}
	if !strings.Contains(out, "dismiss") {
		t.Errorf("Error toast missing dismiss hint: %q", out)
	}
}

func TestRenderToastStack_Empty(t *testing.T) {
	theme := styles.NewTheme()
	if out := RenderToastStack(theme, nil, 80, 24); out != "" {
		t.Errorf("Empty stack should render nothing, got %q", out)
	}
}

func TestWrapToastText(t *testing.T) {
	out := wrapToastText("one two three four five", 9)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 9 {
			t.Errorf("Line %q exceeds wrap width", line)
		}
	}
}
