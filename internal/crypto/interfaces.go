// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the cipher store of the directory bot: symmetric
// authenticated encryption of the client directory blob at rest.
//
// The cipher is AES-256-GCM with a fresh random 96-bit nonce per encryption.
// Nonce, ciphertext and authentication tag are carried as separate
// Base64-encoded fields of [models.EncryptedPayload] so the on-disk blob is
// a plain JSON object.
//
// The package knows nothing about files, chats or configuration sources; it
// only turns bytes into payloads and back.
package crypto

import "github.com/MKhiriev/go-directory-bot/models"

// CipherService encrypts and decrypts the directory blob with a fixed
// 256-bit key supplied at construction time.
//
// Decrypt fails closed: any structural defect of the payload (broken Base64,
// wrong nonce or tag length) and any authentication failure yields an error
// matching [ErrDecryptFailed]; unauthenticated or partially-decrypted data
// is never returned.
type CipherService interface {
	// Encrypt seals plaintext with a freshly generated random nonce and
	// returns the Base64-encoded payload. Returns an error only if the OS
	// CSPRNG fails.
	Encrypt(plaintext []byte) (models.EncryptedPayload, error)

	// Decrypt opens payload and returns the plaintext. Returns an error
	// matching [ErrDecryptFailed] if the payload is malformed or the
	// authentication tag does not validate.
	Decrypt(payload models.EncryptedPayload) ([]byte, error)
}
