// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goldturn/goldturn-tui/internal/model"
)

// =============================================================================
// JSONL EXPORTER
// =============================================================================

// JSONLExporter renders transcripts as newline-delimited JSON, one record per
// message. The record shape matches the message wire format so exported turns
// can be fed straight into dataset tooling.
type JSONLExporter struct{}

// NewJSONLExporter creates a JSONL exporter.
func NewJSONLExporter() *JSONLExporter {
	return &JSONLExporter{}
}

// Export converts the transcript to JSONL.
func (e *JSONLExporter) Export(messages []model.Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, msg := range messages {
		if err := enc.Encode(msg); err != nil {
			return nil, fmt.Errorf("encode message %s: %w", msg.ID, err)
		}
	}
	return buf.Bytes(), nil
}

// FileExtension returns ".jsonl".
func (e *JSONLExporter) FileExtension() string {
	return ".jsonl"
}
