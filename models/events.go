// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// InboundMessage is a single chat event delivered by the transport adapter.
// The chat identity is opaque to the core: numeric transport identifiers are
// normalized to their decimal string form before they reach the session
// layer, so authorization state is keyed uniformly.
type InboundMessage struct {
	// ChatID is the normalized chat identity the message originates from.
	ChatID string

	// Text is the raw message text. May be empty.
	Text string

	// SessionStart marks the distinguished "session start" event
	// (e.g. the /start command of the Telegram Bot API).
	SessionStart bool
}

// OutboundMessage is a plain-text response addressed to a single chat.
type OutboundMessage struct {
	// ChatID is the normalized chat identity the message is sent to.
	ChatID string

	// Text is the response body.
	Text string
}
