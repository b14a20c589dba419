// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) ChatAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewTelegramAdapter(TelegramConfig{
		Token:       "test-token",
		BaseURL:     srv.URL,
		PollTimeout: time.Second,
	}, logger.Nop())
}

func receiveOne(t *testing.T, ch <-chan models.InboundMessage) models.InboundMessage {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "updates channel closed early")
		return msg
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for an inbound message")
		return models.InboundMessage{}
	}
}

func TestUpdates_DeliversInboundMessages(t *testing.T) {
	var polls atomic.Int64
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bottest-token/getUpdates", r.URL.Path)

		if polls.Add(1) > 1 {
			// Later polls long-poll against an empty queue.
			_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":[
			{"update_id":7,"message":{"chat":{"id":1001},"text":"/start"}},
			{"update_id":8,"message":{"chat":{"id":1001},"text":"acme"}}
		]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := a.Updates(ctx)

	first := receiveOne(t, ch)
	assert.Equal(t, "1001", first.ChatID)
	assert.Equal(t, "/start", first.Text)
	assert.True(t, first.SessionStart)

	second := receiveOne(t, ch)
	assert.Equal(t, "acme", second.Text)
	assert.False(t, second.SessionStart)
}

func TestUpdates_AdvancesOffsetPastDeliveredUpdates(t *testing.T) {
	offsets := make(chan string, 4)
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case offsets <- r.URL.Query().Get("offset"):
		default:
		}
		if r.URL.Query().Get("offset") == "0" {
			_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":41,"message":{"chat":{"id":1},"text":"hi"}}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := a.Updates(ctx)

	receiveOne(t, ch)

	assert.Equal(t, "0", <-offsets)
	assert.Equal(t, "42", <-offsets, "the next poll must acknowledge update 41")
}

func TestUpdates_SkipsUpdatesWithoutMessage(t *testing.T) {
	var polls atomic.Int64
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) > 1 {
			_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":[
			{"update_id":1},
			{"update_id":2,"message":{"chat":{"id":5},"text":"real"}}
		]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := receiveOne(t, a.Updates(ctx))
	assert.Equal(t, "real", msg.Text)
}

func TestUpdates_ChannelClosesOnCancel(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	ch := a.Updates(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel must close, not deliver")
	case <-time.After(3 * time.Second):
		t.Fatal("updates channel did not close after cancel")
	}
}

func TestSendMessage_PostsChatIDAndText(t *testing.T) {
	var got map[string]string
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	err := a.SendMessage(context.Background(), models.OutboundMessage{ChatID: "1001", Text: "hello"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"chat_id": "1001", "text": "hello"}, got)
}

func TestSendMessage_TokenRejected(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := a.SendMessage(context.Background(), models.OutboundMessage{ChatID: "1", Text: "x"})

	assert.ErrorIs(t, err, ErrBotUnauthorized)
}

func TestSendMessage_APIErrorCarriesDescription(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	})

	err := a.SendMessage(context.Background(), models.OutboundMessage{ChatID: "1", Text: "x"})

	require.ErrorIs(t, err, ErrBotAPI)
	assert.Contains(t, err.Error(), "chat not found")
}
