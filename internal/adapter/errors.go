// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	// ErrBotUnauthorized means the bot token was rejected by the platform.
	ErrBotUnauthorized = errors.New("bot token rejected")

	// ErrBotAPI is the root of non-auth platform API failures.
	ErrBotAPI = errors.New("bot api error")
)
