// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package turns drives the conversation protocols against the message store.

A turn is the backend-side record pairing a prompt with its generated reply,
identified by a turn id. Service implements the two client-side protocols
around turns:

  - Send: append a user/bot message pair, ingest the reply (streamed or
    whole-shot), and walk the bot message through streaming -> ready, or to
    error with content cleared.
  - SaveEdit: persist an edited reply through its turn id, transitioning the
    message ready -> saving-edit -> ready. A failed edit keeps the prior
    content and status, only annotating Err.

The error channels are intentionally asymmetric: generation failures are
absorbed into the message and returned (so a page-level notification can be
shown too), edit failures are absorbed into Err only and returned so the
caller can keep its draft.
*/
package turns
