// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-directory-bot application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the directory encryption key
	// material, the shared access code, and the application version.
	App App `envPrefix:"APP_"`

	// Bot holds the chat-transport settings (Telegram Bot API).
	Bot Bot `envPrefix:"BOT_"`

	// Storage holds the filesystem paths of the encrypted directory blob
	// and the access registry file.
	Storage Storage `envPrefix:"STORAGE_"`

	// Watcher holds the blob file-watcher settings.
	Watcher Watcher `envPrefix:"WATCHER_"`

	// Server holds address and timeout settings for the optional ops HTTP
	// server. The server is started only when HTTPAddress is non-empty.
	Server Server `envPrefix:"SERVER_"`

	// Search holds the directory search settings.
	Search Search `envPrefix:"SEARCH_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control the cipher
// store and the session gate.
type App struct {
	// DirectoryKey is the Base64-encoded 32-byte AES-256 key protecting the
	// directory blob. Must be kept confidential.
	// Env: APP_DIRECTORY_KEY
	DirectoryKey string `env:"DIRECTORY_KEY"`

	// Passphrase is the optional key-derivation fallback: when DirectoryKey
	// is empty, the AES key is derived from Passphrase and KeySalt via
	// Argon2id. Must be kept confidential.
	// Env: APP_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`

	// KeySalt is the Argon2id salt used together with Passphrase.
	// Not a secret; required only when Passphrase is used.
	// Env: APP_KEY_SALT
	KeySalt string `env:"KEY_SALT"`

	// AccessCode is the single shared secret that authorizes a chat.
	// Compared with exact string equality, no fuzzy tolerance.
	// Env: APP_ACCESS_CODE
	AccessCode string `env:"ACCESS_CODE"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the ops server's /version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Bot holds the configuration of the Telegram chat transport.
type Bot struct {
	// Token is the Bot API token. Must be kept confidential.
	// Env: BOT_TOKEN
	Token string `env:"TOKEN"`

	// APIBaseURL overrides the Bot API endpoint. Empty means the public
	// https://api.telegram.org. Used by tests to point the adapter at a
	// local stub server.
	// Env: BOT_API_BASE_URL
	APIBaseURL string `env:"API_BASE_URL"`

	// PollTimeout is the long-polling timeout of getUpdates (e.g. "30s").
	// Env: BOT_POLL_TIMEOUT
	PollTimeout time.Duration `env:"POLL_TIMEOUT"`
}

// Storage holds the filesystem locations of the two persisted artifacts.
type Storage struct {
	// BlobPath is the path of the encrypted directory blob produced by the
	// external export step (or by cmd/dirseal).
	// Env: STORAGE_BLOB_PATH
	BlobPath string `env:"BLOB_PATH"`

	// RegistryPath is the path of the access-registry JSON file. The file
	// is created on first authorization if it does not exist.
	// Env: STORAGE_REGISTRY_PATH
	RegistryPath string `env:"REGISTRY_PATH"`
}

// Watcher holds the blob file-watcher settings.
type Watcher struct {
	// Debounce is the quiet window that coalesces a burst of filesystem
	// events on the blob into a single index rebuild (e.g. "400ms").
	// Env: WATCHER_DEBOUNCE
	Debounce time.Duration `env:"DEBOUNCE"`
}

// Server holds network and timeout settings for the ops HTTP server.
type Server struct {
	// HTTPAddress is the TCP address on which the ops server listens, in
	// "host:port" format (e.g. "0.0.0.0:8080"). Empty disables the server.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Search holds the directory search settings.
type Search struct {
	// Limit is the maximum number of records returned per query.
	// Env: SEARCH_LIMIT
	Limit int `env:"LIMIT"`
}

// Defaults applied by the builder after all sources are merged.
const (
	DefaultPollTimeout = 30 * time.Second
	DefaultDebounce    = 400 * time.Millisecond
	DefaultSearchLimit = 5
)

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
