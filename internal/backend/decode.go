// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the text-generation backend.
package backend

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// =============================================================================
// STREAM DECODER
// =============================================================================

// StreamDecoder converts a stream of raw bytes into text incrementally.
//
// The transport hands over chunks at arbitrary boundaries, so a multi-byte
// UTF-8 sequence can be split across two chunks. The decoder carries the
// partial trailing sequence between Write calls and emits it once the
// remaining bytes arrive; Flush releases whatever is still held back at
// end-of-stream (invalid remainders become U+FFFD). One decoder instance is
// scoped to one response body and must not be reused across streams.
type StreamDecoder struct {
	transformer transform.Transformer
	pending     []byte
}

// NewStreamDecoder creates a decoder for a single byte stream.
func NewStreamDecoder() *StreamDecoder {
	return &StreamDecoder{
		transformer: unicode.UTF8.NewDecoder(),
	}
}

// Write decodes the next chunk and returns the text that became complete
// with it. The returned string can be empty when the chunk only extends a
// partial multi-byte sequence.
func (d *StreamDecoder) Write(chunk []byte) string {
	if len(chunk) == 0 {
		return ""
	}

	src := chunk
	if len(d.pending) > 0 {
		src = append(d.pending, chunk...)
		d.pending = nil
	}

	return d.decode(src, false)
}

// Flush drains any partial sequence held back by previous Writes. Call once
// at end-of-stream.
func (d *StreamDecoder) Flush() string {
	if len(d.pending) == 0 {
		return ""
	}
	src := d.pending
	d.pending = nil
	return d.decode(src, true)
}

// decode runs the transformer over src, stashing any undecodable tail when
// the stream is not yet at EOF.
func (d *StreamDecoder) decode(src []byte, atEOF bool) string {
	var out strings.Builder
	dst := make([]byte, len(src)+utf8Slack)

	for len(src) > 0 {
		nDst, nSrc, err := d.transformer.Transform(dst, src, atEOF)
		out.Write(dst[:nDst])
		src = src[nSrc:]

		switch err {
		case nil:
			if len(src) > 0 {
				// Transformer stopped early without an error report;
				// treat the rest as pending.
				d.pending = append(d.pending, src...)
				return out.String()
			}
			return out.String()
		case transform.ErrShortSrc:
			// Partial multi-byte sequence: keep it for the next chunk.
			d.pending = append(d.pending, src...)
			return out.String()
		case transform.ErrShortDst:
			dst = make([]byte, 2*len(dst))
		default:
			// The UTF-8 decoder substitutes rather than fails; any other
			// error would be a programming bug. Emit what we have.
			return out.String()
		}
	}

	return out.String()
}

// utf8Slack covers replacement-character expansion: one invalid byte can
// become a three-byte U+FFFD encoding.
const utf8Slack = 16
