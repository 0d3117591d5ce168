// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package backend provides the HTTP client for the text-generation backend.

The backend contract is fixed and not owned by this repository:

	POST /generate_response  {"prompt": string}
	POST /save_edit          {"turn_id": string, "content": string}

A successful generation response is one of three shapes, resolved in this
priority order: a structured JSON object (string "response" field, optional
"turn_id"), a streamed byte body of arbitrary text, or plain text. Only the
streamed shape produces intermediate updates; they are delivered through a
DeltaFunc that always receives the full accumulated text.

The turn identifier pairs a prompt with its generated reply on the backend
and is required to edit that reply later. It arrives either in a response
header (checked first) or in the JSON body's "turn_id" field.

Failures carry a typed *ClientError; non-2xx responses embed the numeric
status code in the error text.
*/
package backend
