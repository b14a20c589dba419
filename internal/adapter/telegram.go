// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/models"
	"github.com/go-resty/resty/v2"
)

// sessionStartCommand marks the platform-level "open a conversation"
// command, surfaced to the session gate as [models.InboundMessage.SessionStart].
const sessionStartCommand = "/start"

// pollBackoff is the pause after a failed getUpdates round before retrying.
const pollBackoff = 3 * time.Second

// TelegramConfig carries the transport settings of [NewTelegramAdapter].
type TelegramConfig struct {
	Token       string
	BaseURL     string
	PollTimeout time.Duration
}

type telegramAdapter struct {
	client      *resty.Client
	pollTimeout time.Duration
	logger      *logger.Logger
}

// NewTelegramAdapter constructs a [ChatAdapter] speaking the Telegram Bot
// API over HTTPS long polling.
func NewTelegramAdapter(cfg TelegramConfig, logger *logger.Logger) ChatAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.telegram.org"
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 30 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/bot" + cfg.Token).
		// The HTTP timeout must outlive the long-poll window.
		SetTimeout(cfg.PollTimeout + 10*time.Second)

	logger.Debug().Dur("poll_timeout", cfg.PollTimeout).Msg("creating telegram adapter")
	return &telegramAdapter{client: cli, pollTimeout: cfg.PollTimeout, logger: logger}
}

// Updates implements [ChatAdapter].
func (t *telegramAdapter) Updates(ctx context.Context) <-chan models.InboundMessage {
	out := make(chan models.InboundMessage)

	go func() {
		defer close(out)

		var offset int64
		for {
			updates, err := t.getUpdates(ctx, offset)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				t.logger.Err(err).Msg("poll failed, backing off")
				select {
				case <-ctx.Done():
					return
				case <-time.After(pollBackoff):
				}
				continue
			}

			for _, u := range updates {
				if u.UpdateID >= offset {
					offset = u.UpdateID + 1
				}
				msg, ok := inboundFromUpdate(u)
				if !ok {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case out <- msg:
				}
			}
		}
	}()

	return out
}

// SendMessage implements [ChatAdapter].
func (t *telegramAdapter) SendMessage(ctx context.Context, msg models.OutboundMessage) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"chat_id": msg.ChatID, "text": msg.Text}).
		Post("/sendMessage")
	if err != nil {
		return fmt.Errorf("send message request: %w", err)
	}

	return mapBotError(resp)
}

func (t *telegramAdapter) getUpdates(ctx context.Context, offset int64) ([]telegramUpdate, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"timeout":         strconv.Itoa(int(t.pollTimeout / time.Second)),
			"offset":          strconv.FormatInt(offset, 10),
			"allowed_updates": `["message"]`,
		}).
		Get("/getUpdates")
	if err != nil {
		return nil, fmt.Errorf("get updates request: %w", err)
	}
	if err = mapBotError(resp); err != nil {
		return nil, err
	}

	var envelope telegramResponse
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("decode updates response: %w", err)
	}

	return envelope.Result, nil
}

// inboundFromUpdate maps one platform update to the transport-agnostic
// inbound message. Updates without a text message are dropped.
func inboundFromUpdate(u telegramUpdate) (models.InboundMessage, bool) {
	if u.Message == nil || u.Message.Chat.ID == 0 {
		return models.InboundMessage{}, false
	}

	return models.InboundMessage{
		ChatID:       strconv.FormatInt(u.Message.Chat.ID, 10),
		Text:         u.Message.Text,
		SessionStart: strings.TrimSpace(u.Message.Text) == sessionStartCommand,
	}, true
}

func mapBotError(resp *resty.Response) error {
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrBotUnauthorized
	}
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	var envelope telegramResponse
	if json.Unmarshal(resp.Body(), &envelope) == nil && envelope.Description != "" {
		body = envelope.Description
	}
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("%w: http %d: %s", ErrBotAPI, resp.StatusCode(), body)
}

// Wire types of the Telegram Bot API, reduced to the fields the bot reads.
type telegramResponse struct {
	OK          bool             `json:"ok"`
	Description string           `json:"description,omitempty"`
	Result      []telegramUpdate `json:"result,omitempty"`
}

type telegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *telegramMessage `json:"message,omitempty"`
}

type telegramMessage struct {
	Chat telegramChat `json:"chat"`
	Text string       `json:"text,omitempty"`
}

type telegramChat struct {
	ID int64 `json:"id"`
}
