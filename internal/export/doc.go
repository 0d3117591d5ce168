// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to disk.
//
// Two formats are supported:
//
//   - Markdown: a readable document with role headings, timestamps, and
//     turn identifiers, suitable for review.
//   - JSONL: one JSON record per message in the message wire format,
//     suitable for dataset tooling.
//
// Output files are named transcript_<timestamp>.<ext> and written atomically.
package export
