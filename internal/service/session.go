// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/internal/store"
	"github.com/MKhiriev/go-directory-bot/models"
)

// Responses of the session gate. Exported so the transport layer's tests
// can assert on them without duplicating the wording.
const (
	MsgAccessPrompt   = "This directory is access-restricted. Send the access code to continue."
	MsgAccessGranted  = "Access granted. Send a client name, manager or code to search the directory."
	MsgWelcomeBack    = "You are already authorized. Send a client name, manager or code to search."
	MsgUnknownCommand = "Unknown command."
)

// CmdReload is the reserved command token that triggers an out-of-band
// directory rebuild, bypassing the file watcher.
const CmdReload = "/reload"

// cmdStart is the transport-level session-start command.
const cmdStart = "/start"

// sessionService is the default implementation of [SessionService].
//
// The state machine has two states per chat identity, UNAUTHORIZED and
// AUTHORIZED, persisted via the access registry. There is no transition out
// of AUTHORIZED and no lockout on failed code attempts: the access code is
// a single static shared secret by design of the deployment, not a
// hardened credential.
type sessionService struct {
	registry   store.AccessRegistry
	directory  DirectoryService
	query      QueryService
	accessCode string
	logger     *logger.Logger
}

// NewSessionService constructs a [SessionService] gating directory access
// behind accessCode.
func NewSessionService(registry store.AccessRegistry, directory DirectoryService, query QueryService, accessCode string, logger *logger.Logger) SessionService {
	logger.Debug().Msg("creating session service")
	return &sessionService{
		registry:   registry,
		directory:  directory,
		query:      query,
		accessCode: accessCode,
		logger:     logger,
	}
}

// Handle implements [SessionService].
func (s *sessionService) Handle(ctx context.Context, msg models.InboundMessage) []models.OutboundMessage {
	log := logger.FromContext(ctx)

	if !s.registry.IsAuthorized(msg.ChatID) {
		return s.handleUnauthorized(ctx, msg)
	}

	if msg.SessionStart || msg.Text == cmdStart {
		return reply(msg.ChatID, MsgWelcomeBack)
	}

	text := strings.TrimSpace(msg.Text)
	switch {
	case text == "":
		return nil // no distinguishable intent
	case text == CmdReload:
		n := s.directory.Reload(ctx)
		log.Info().Str("chat_id", msg.ChatID).Int("records", n).Msg("manual directory reload")
		return reply(msg.ChatID, fmt.Sprintf("Directory reloaded: %d records.", n))
	case strings.HasPrefix(text, "/"):
		return reply(msg.ChatID, MsgUnknownCommand)
	default:
		return reply(msg.ChatID, s.query.Answer(ctx, text))
	}
}

// handleUnauthorized runs the single transition of the gate: an exact match
// of the shared access code authorizes the chat, anything else re-prompts.
func (s *sessionService) handleUnauthorized(ctx context.Context, msg models.InboundMessage) []models.OutboundMessage {
	log := logger.FromContext(ctx)

	if !msg.SessionStart && msg.Text == s.accessCode {
		if err := s.registry.Authorize(ctx, msg.ChatID); err != nil {
			// Durability degraded only; the session is authorized for this run.
			log.Err(err).Str("chat_id", msg.ChatID).Msg("authorization persisted in memory only")
		}
		log.Info().Str("chat_id", msg.ChatID).Msg("chat authorized")
		return reply(msg.ChatID, MsgAccessGranted)
	}

	return reply(msg.ChatID, MsgAccessPrompt)
}

func reply(chatID, text string) []models.OutboundMessage {
	return []models.OutboundMessage{{ChatID: chatID, Text: text}}
}
