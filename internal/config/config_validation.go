// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Key material is only checked for presence here; well-formedness (Base64,
// exact 32-byte length) is the cipher store's concern and is verified when
// the key is resolved.
//
// Returns nil if the configuration is valid, or a typed sentinel error
// otherwise. Any error returned here is fatal: the process must not start
// with an incomplete configuration.
func (cfg *StructuredConfig) validate() error {
	hasKey := cfg.App.DirectoryKey != ""
	hasPassphrase := cfg.App.Passphrase != "" && cfg.App.KeySalt != ""
	if !hasKey && !hasPassphrase {
		return ErrInvalidAppConfigs
	}

	if cfg.App.AccessCode == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Bot.Token == "" {
		return ErrInvalidBotConfigs
	}

	if cfg.Storage.BlobPath == "" || cfg.Storage.RegistryPath == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
