// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI pieces for the goldturn TUI: the
// bottom status bar and the non-blocking toast stack. Error toasts are
// sticky and require explicit dismissal; informational and success toasts
// expire on their own.
package components
