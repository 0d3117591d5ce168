// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for goldturn-tui: width-aware
// string truncation for terminal rendering and atomic file writes used by
// config saves and transcript exports.
package util
