package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (missing key material or an empty access code).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidBotConfigs indicates invalid chat-transport settings
	// (for example, an empty bot token).
	ErrInvalidBotConfigs = errors.New("invalid bot configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty blob or registry path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
