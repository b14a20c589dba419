// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter connects the bot to its chat platform. The only
// implementation speaks the Telegram Bot API over long polling; the
// [ChatAdapter] interface keeps the rest of the program platform-agnostic.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-directory-bot/models"
)

// ChatAdapter is the transport boundary between the chat platform and the
// session gate.
type ChatAdapter interface {
	// Updates starts delivering inbound messages on the returned channel.
	// The channel is closed when ctx is cancelled. Polling errors are
	// retried internally with backoff and never surface here.
	Updates(ctx context.Context) <-chan models.InboundMessage

	// SendMessage delivers one outbound message to its chat.
	SendMessage(ctx context.Context, msg models.OutboundMessage) error
}
