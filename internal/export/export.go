// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to disk.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/goldturn/goldturn-tui/internal/model"
	"github.com/goldturn/goldturn-tui/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a transcript to a serialized format.
type Exporter interface {
	// Export renders the messages to the target format.
	Export(messages []model.Message) ([]byte, error)

	// FileExtension returns the extension for the format (e.g., ".md").
	FileExtension() string
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures transcript export.
type Options struct {
	// OutputDir is the directory where transcripts are written.
	OutputDir string

	// IncludeTimestamps includes per-message timestamps.
	IncludeTimestamps bool

	// Title is the transcript heading. Empty picks a default.
	Title string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeTimestamps: true,
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ToFile renders the transcript through the exporter and writes it atomically
// under opts.OutputDir. Returns the output path.
func ToFile(messages []model.Message, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("nothing to export")
	}

	content, err := exporter.Export(messages)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("transcript_%s%s",
		time.Now().Format("20060102_150405"),
		exporter.FileExtension(),
	)
	outputPath := filepath.Join(opts.OutputDir, filename)

	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return outputPath, nil
}

// Markdown exports the transcript as a Markdown document.
func Markdown(messages []model.Message, opts *Options) (string, error) {
	return ToFile(messages, NewMarkdownExporter(opts), opts)
}

// JSONL exports the transcript as newline-delimited JSON records.
func JSONL(messages []model.Message, opts *Options) (string, error) {
	return ToFile(messages, NewJSONLExporter(), opts)
}

// =============================================================================
// HELPERS
// =============================================================================

func roleLabel(role model.Role) string {
	switch role {
	case model.RoleUser:
		return "User"
	case model.RoleBot:
		return "Bot"
	default:
		if role == "" {
			return "Unknown"
		}
		runes := []rune(string(role))
		return strings.ToUpper(string(runes[0])) + string(runes[1:])
	}
}

func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
