// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for goldturn TUI.
//
// The Theme struct bundles every Lip Gloss style the interface uses, built
// once at startup from the terminal's detected color profile. Colors are
// AdaptiveColor pairs so light and dark terminals both get legible output.
// Status indicators carry ASCII shapes alongside color so state is readable
// without color vision.
package styles
