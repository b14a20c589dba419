// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for the passphrase fallback, following the OWASP (2024)
// recommendation: 1 iteration, 64 MiB memory, 4 threads, 32-byte output.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = keyLength
)

// ResolveKey turns the configured key material into the raw 32-byte AES key.
//
// Two sources are supported, tried in order:
//  1. keyBase64 — a Base64 (standard encoding) string of exactly 32 bytes;
//  2. passphrase + salt — an Argon2id derivation for deployments that prefer
//     a memorable secret over distributing raw key bytes.
//
// Returns [ErrInvalidKeyLength] if the decoded key has the wrong size or
// neither source is provided. Malformed Base64 is reported as its own
// wrapped error since it is a configuration defect, not a length problem.
func ResolveKey(keyBase64, passphrase, salt string) ([]byte, error) {
	if keyBase64 != "" {
		key, err := base64.StdEncoding.DecodeString(keyBase64)
		if err != nil {
			return nil, fmt.Errorf("decode key: %w", err)
		}
		if len(key) != keyLength {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidKeyLength, len(key))
		}
		return key, nil
	}

	if passphrase != "" && salt != "" {
		return argon2.IDKey([]byte(passphrase), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen), nil
	}

	return nil, fmt.Errorf("%w: no key material configured", ErrInvalidKeyLength)
}
