// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/goldturn/goldturn-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders transcripts as Markdown documents.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts the transcript to Markdown.
func (e *MarkdownExporter) Export(messages []model.Message) ([]byte, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("transcript has no messages")
	}

	title := e.options.Title
	if title == "" {
		title = "Chat Transcript"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(title)))
	sb.WriteString(fmt.Sprintf("*Exported %s, %d messages*\n\n---\n\n",
		formatTimestamp(time.Now()), len(messages)))

	for i, msg := range messages {
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n",
				roleLabel(msg.Role), msg.Timestamp.Format("15:04:05")))
		} else {
			sb.WriteString(fmt.Sprintf("### %s\n\n", roleLabel(msg.Role)))
		}

		switch msg.Status {
		case model.StatusError:
			sb.WriteString(fmt.Sprintf("*Generation failed: %s*\n\n", msg.Err))
		default:
			sb.WriteString(strings.TrimSpace(msg.Content))
			sb.WriteString("\n\n")
		}

		if msg.TurnID != "" {
			sb.WriteString(fmt.Sprintf("<sub>turn %s</sub>\n\n", msg.TurnID))
		}

		if i < len(messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// escapeMarkdown escapes characters that would break heading formatting.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}
