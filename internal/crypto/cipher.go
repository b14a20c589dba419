// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/MKhiriev/go-directory-bot/models"
)

// keyLength is the required AES-256 key size in bytes.
const keyLength = 32

// cipherService is the private implementation of [CipherService]. It holds a
// ready-to-use AEAD built once at construction; Encrypt and Decrypt are safe
// for concurrent use because cipher.AEAD is stateless apart from the key.
type cipherService struct {
	aead cipher.AEAD
}

// NewCipherService constructs a [CipherService] from a raw 32-byte key.
//
// Returns [ErrInvalidKeyLength] if key is not exactly 32 bytes. The key is
// configuration material, so callers should treat this error as fatal at
// process startup rather than attempting to recover.
func NewCipherService(key []byte) (CipherService, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &cipherService{aead: aead}, nil
}

// Encrypt implements [CipherService]. It seals plaintext with AES-256-GCM
// under a fresh random 12-byte nonce and splits the sealed blob into
// ciphertext and the trailing 16-byte authentication tag, Base64-encoding
// each part separately. Returns an error if the random nonce read fails.
func (c *cipherService) Encrypt(plaintext []byte) (models.EncryptedPayload, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return models.EncryptedPayload{}, fmt.Errorf("generate nonce: %w", err)
	}

	// Seal returns ciphertext ‖ tag; the payload keeps them apart.
	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	tagStart := len(sealed) - c.aead.Overhead()

	return models.EncryptedPayload{
		IV:         base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(sealed[:tagStart]),
		AuthTag:    base64.StdEncoding.EncodeToString(sealed[tagStart:]),
	}, nil
}

// Decrypt implements [CipherService]. It Base64-decodes the payload fields,
// validates their lengths, re-joins ciphertext and tag, and opens the blob.
//
// Error handling:
//   - broken Base64 in any field → [ErrMalformedPayload];
//   - nonce not 12 bytes or tag not 16 bytes → [ErrMalformedPayload];
//   - authentication tag mismatch → [ErrAuthenticationFailed].
//
// All of the above match [ErrDecryptFailed] via [errors.Is].
func (c *cipherService) Decrypt(payload models.EncryptedPayload) ([]byte, error) {
	nonce, err := base64.StdEncoding.DecodeString(payload.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: decode iv: %v", ErrMalformedPayload, err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(payload.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: decode ciphertext: %v", ErrMalformedPayload, err)
	}
	tag, err := base64.StdEncoding.DecodeString(payload.AuthTag)
	if err != nil {
		return nil, fmt.Errorf("%w: decode auth tag: %v", ErrMalformedPayload, err)
	}

	if len(nonce) != c.aead.NonceSize() {
		return nil, fmt.Errorf("%w: iv length %d, want %d", ErrMalformedPayload, len(nonce), c.aead.NonceSize())
	}
	if len(tag) != c.aead.Overhead() {
		return nil, fmt.Errorf("%w: auth tag length %d, want %d", ErrMalformedPayload, len(tag), c.aead.Overhead())
	}

	// Open verifies the tag before releasing any plaintext.
	plaintext, err := c.aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}
