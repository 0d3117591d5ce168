// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// Every style must render without panicking.
	styled := []string{
		theme.UserMessage.Render("user"),
		theme.BotMessage.Render("bot"),
		theme.StatusBar.Render("status"),
		theme.ToastError.Render("error"),
		theme.EditContainer.Render("edit"),
		theme.HelpBox.Render("help"),
	}
	for i, s := range styled {
		if s == "" {
			t.Errorf("Style %d rendered empty output", i)
		}
	}
}

func TestThemeResize(t *testing.T) {
	theme := NewTheme()
	theme.Resize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("Resize not applied: %dx%d", theme.Width, theme.Height)
	}
}

func TestRenderError_IncludesIndicator(t *testing.T) {
	out := RenderError("something broke")
	if !strings.Contains(out, "[X]") {
		t.Errorf("RenderError output missing shape indicator: %q", out)
	}
	if !strings.Contains(out, "something broke") {
		t.Errorf("RenderError output missing message: %q", out)
	}
}

func TestRenderSuccess_IncludesIndicator(t *testing.T) {
	out := RenderSuccess("saved")
	if !strings.Contains(out, "[OK]") {
		t.Errorf("RenderSuccess output missing shape indicator: %q", out)
	}
}
