// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the runtime core of the directory bot: the
// in-memory directory index with fuzzy search, the per-chat session gate,
// and the query engine that turns search results into chat responses.
package service

import (
	"context"

	"github.com/MKhiriev/go-directory-bot/models"
)

// DirectoryService owns the in-memory client collection and the search
// index built over it.
//
// The index is rebuilt wholesale on every Reload and swapped atomically:
// a search that started before a swap keeps using the old index, a search
// that starts after the swap sees the new one, and no search ever observes
// a half-built index.
type DirectoryService interface {
	// Reload re-reads the encrypted blob end-to-end (read, decrypt, parse,
	// normalize) and swaps the active index. Any failure along the way
	// degrades to an empty directory with a warning — the bot keeps
	// running. Returns the number of records now being served.
	Reload(ctx context.Context) int

	// Search runs a weighted fuzzy match of query across record names,
	// managers and codes, falling back to case-insensitive substring
	// containment when the fuzzy pass yields nothing. Results are ranked
	// best-first and truncated to limit. An empty or whitespace-only query
	// returns nil.
	Search(query string, limit int) []models.ClientRecord

	// Size returns the number of records in the active index.
	Size() int

	// Degraded reports whether the service is in the "no data" state —
	// the last load produced an empty collection. Distinct from a query
	// having no matches.
	Degraded() bool
}

// QueryService is the query engine: it answers authorized free text with a
// formatted response string.
type QueryService interface {
	// Answer searches the directory for query and renders the result as a
	// plain-text chat response: a "no matches" message or a one-based
	// enumerated list of records.
	Answer(ctx context.Context, query string) string
}

// SessionService is the per-message state machine gating directory access.
//
// Unauthorized chats get exactly one way in: sending the shared access code
// verbatim. Authorized chats never leave the authorized state; their text is
// routed to command handling or the query engine.
type SessionService interface {
	// Handle processes one inbound chat event and returns the responses to
	// send, in order. An empty slice means the event produced no output
	// (e.g. blank text from an authorized chat).
	Handle(ctx context.Context, msg models.InboundMessage) []models.OutboundMessage
}
