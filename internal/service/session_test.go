// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/internal/store"
	"github.com/MKhiriev/go-directory-bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.AccessRegistry
// ─────────────────────────────────────────────

type mockRegistry struct {
	members     map[string]bool
	authorizeFn func(ctx context.Context, chatID string) error
}

func newMockRegistry(authorized ...string) *mockRegistry {
	m := &mockRegistry{members: make(map[string]bool)}
	for _, id := range authorized {
		m.members[id] = true
	}
	return m
}

func (m *mockRegistry) IsAuthorized(chatID string) bool {
	return m.members[chatID]
}

func (m *mockRegistry) Authorize(ctx context.Context, chatID string) error {
	m.members[chatID] = true
	if m.authorizeFn != nil {
		return m.authorizeFn(ctx, chatID)
	}
	return nil
}

func (m *mockRegistry) Size() int { return len(m.members) }

// ─────────────────────────────────────────────
// Mock: DirectoryService
// ─────────────────────────────────────────────

type mockDirectory struct {
	reloadFn func(ctx context.Context) int
	searchFn func(query string, limit int) []models.ClientRecord
}

func (m *mockDirectory) Reload(ctx context.Context) int {
	if m.reloadFn != nil {
		return m.reloadFn(ctx)
	}
	return 0
}

func (m *mockDirectory) Search(query string, limit int) []models.ClientRecord {
	if m.searchFn != nil {
		return m.searchFn(query, limit)
	}
	return nil
}

func (m *mockDirectory) Size() int      { return 0 }
func (m *mockDirectory) Degraded() bool { return false }

// ─────────────────────────────────────────────
// Mock: QueryService
// ─────────────────────────────────────────────

type mockQuery struct {
	answerFn func(ctx context.Context, query string) string
}

func (m *mockQuery) Answer(ctx context.Context, query string) string {
	if m.answerFn != nil {
		return m.answerFn(ctx, query)
	}
	return ""
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testAccessCode = "open-sesame"

func newTestSession(registry store.AccessRegistry, directory DirectoryService, query QueryService) SessionService {
	if directory == nil {
		directory = &mockDirectory{}
	}
	if query == nil {
		query = &mockQuery{}
	}
	return NewSessionService(registry, directory, query, testAccessCode, logger.Nop())
}

func inbound(chatID, text string) models.InboundMessage {
	return models.InboundMessage{ChatID: chatID, Text: text}
}

// ─────────────────────────────────────────────
// Unauthorized chats
// ─────────────────────────────────────────────

func TestHandle_UnauthorizedSessionStartPrompts(t *testing.T) {
	s := newTestSession(newMockRegistry(), nil, nil)

	got := s.Handle(context.Background(), models.InboundMessage{ChatID: "100", SessionStart: true})

	require.Len(t, got, 1)
	assert.Equal(t, MsgAccessPrompt, got[0].Text)
	assert.Equal(t, "100", got[0].ChatID)
}

func TestHandle_UnauthorizedWrongCodeReprompts(t *testing.T) {
	registry := newMockRegistry()
	s := newTestSession(registry, nil, nil)

	got := s.Handle(context.Background(), inbound("100", "wrong-code"))

	require.Len(t, got, 1)
	assert.Equal(t, MsgAccessPrompt, got[0].Text)
	assert.False(t, registry.IsAuthorized("100"))
}

func TestHandle_UnauthorizedQueryIsNotSearched(t *testing.T) {
	searched := false
	directory := &mockDirectory{searchFn: func(string, int) []models.ClientRecord {
		searched = true
		return nil
	}}
	query := &mockQuery{answerFn: func(context.Context, string) string {
		searched = true
		return "leak"
	}}
	s := newTestSession(newMockRegistry(), directory, query)

	got := s.Handle(context.Background(), inbound("100", "acme"))

	require.Len(t, got, 1)
	assert.Equal(t, MsgAccessPrompt, got[0].Text)
	assert.False(t, searched, "unauthorized text must never reach the directory")
}

func TestHandle_CorrectCodeAuthorizesAndPersists(t *testing.T) {
	registry := newMockRegistry()
	s := newTestSession(registry, nil, nil)

	got := s.Handle(context.Background(), inbound("100", testAccessCode))

	require.Len(t, got, 1)
	assert.Equal(t, MsgAccessGranted, got[0].Text)
	assert.True(t, registry.IsAuthorized("100"))
}

func TestHandle_CodeMatchIsExact(t *testing.T) {
	registry := newMockRegistry()
	s := newTestSession(registry, nil, nil)

	for _, text := range []string{"OPEN-SESAME", " open-sesame", "open-sesame "} {
		got := s.Handle(context.Background(), inbound("100", text))
		require.Len(t, got, 1)
		assert.Equal(t, MsgAccessPrompt, got[0].Text, "text %q must not authorize", text)
	}
	assert.False(t, registry.IsAuthorized("100"))
}

func TestHandle_PersistFailureStillAuthorizesInMemory(t *testing.T) {
	registry := newMockRegistry()
	registry.authorizeFn = func(context.Context, string) error {
		return store.ErrRegistryPersist
	}
	s := newTestSession(registry, nil, nil)

	got := s.Handle(context.Background(), inbound("100", testAccessCode))

	require.Len(t, got, 1)
	assert.Equal(t, MsgAccessGranted, got[0].Text, "a persist failure must not block the session")
	assert.True(t, registry.IsAuthorized("100"))
}

// ─────────────────────────────────────────────
// Authorized chats
// ─────────────────────────────────────────────

func TestHandle_AuthorizedSessionStartWelcomesBack(t *testing.T) {
	s := newTestSession(newMockRegistry("100"), nil, nil)

	got := s.Handle(context.Background(), models.InboundMessage{ChatID: "100", Text: "/start", SessionStart: true})

	require.Len(t, got, 1)
	assert.Equal(t, MsgWelcomeBack, got[0].Text)
}

func TestHandle_AuthorizedQueryIsAnswered(t *testing.T) {
	query := &mockQuery{answerFn: func(_ context.Context, q string) string {
		require.Equal(t, "acme", q)
		return "1. Acme Corp — manager: Ivan, code: A1"
	}}
	s := newTestSession(newMockRegistry("100"), nil, query)

	got := s.Handle(context.Background(), inbound("100", "acme"))

	require.Len(t, got, 1)
	assert.Equal(t, "1. Acme Corp — manager: Ivan, code: A1", got[0].Text)
}

func TestHandle_ReloadCommandRebuildsDirectory(t *testing.T) {
	reloaded := false
	directory := &mockDirectory{reloadFn: func(context.Context) int {
		reloaded = true
		return 42
	}}
	s := newTestSession(newMockRegistry("100"), directory, nil)

	got := s.Handle(context.Background(), inbound("100", CmdReload))

	require.Len(t, got, 1)
	assert.True(t, reloaded)
	assert.Equal(t, "Directory reloaded: 42 records.", got[0].Text)
}

func TestHandle_UnknownCommandReplies(t *testing.T) {
	s := newTestSession(newMockRegistry("100"), nil, nil)

	got := s.Handle(context.Background(), inbound("100", "/frobnicate"))

	require.Len(t, got, 1)
	assert.Equal(t, MsgUnknownCommand, got[0].Text)
}

func TestHandle_EmptyTextIsIgnored(t *testing.T) {
	s := newTestSession(newMockRegistry("100"), nil, nil)

	assert.Nil(t, s.Handle(context.Background(), inbound("100", "")))
	assert.Nil(t, s.Handle(context.Background(), inbound("100", "   \n  ")))
}

func TestHandle_ChatsAreIsolated(t *testing.T) {
	registry := newMockRegistry("100")
	s := newTestSession(registry, nil, nil)

	got := s.Handle(context.Background(), inbound("200", "acme"))

	require.Len(t, got, 1)
	assert.Equal(t, MsgAccessPrompt, got[0].Text, "authorization of one chat must not leak to another")
	assert.False(t, registry.IsAuthorized("200"))
}
