// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EncryptedPayload is the on-disk form of the encrypted directory blob.
// Each field is Base64 (standard encoding) so the whole payload can be
// stored as a plain JSON object.
//
// IV, ciphertext and authentication tag are kept as separate fields rather
// than a single concatenated blob so that the exporter and the bot can
// validate the structure of a payload before attempting decryption.
type EncryptedPayload struct {
	// IV is the Base64-encoded 12-byte GCM nonce, freshly generated for
	// every encryption. Never reused for a given key.
	IV string `json:"iv"`

	// Ciphertext is the Base64-encoded encrypted directory content.
	Ciphertext string `json:"ciphertext"`

	// AuthTag is the Base64-encoded 16-byte GCM authentication tag.
	// Decryption fails wholesale if the tag does not validate.
	AuthTag string `json:"authTag"`
}
