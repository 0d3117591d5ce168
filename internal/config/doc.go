// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for goldturn.
//
// The configuration is a small TOML file at ~/.goldturn/config.toml holding
// the backend address, the turn-id header name, the request timeout, and UI
// toggles. Environment variables (GOLDTURN_BACKEND_URL, GOLDTURN_TURN_HEADER,
// GOLDTURN_TIMEOUT_SECS) override the file; built-in defaults fill anything
// left unset. Saves go through an atomic write.
package config
