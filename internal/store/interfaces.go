// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the persistence layer of the directory bot: the
// encrypted directory blob file and the access-registry file.
//
// Both artifacts are plain files. The blob is written by the external export
// step (or cmd/dirseal) and only read here; the registry is owned by this
// package and rewritten on every new authorization.
package store

import (
	"context"

	"github.com/MKhiriev/go-directory-bot/models"
)

// BlobFileStorage reads and writes the encrypted directory blob file.
type BlobFileStorage interface {
	// ReadPayload reads the blob file and unmarshals it into an
	// [models.EncryptedPayload]. Returns [ErrBlobNotFound] if the file does
	// not exist and [ErrBlobMalformed] if it is not a valid payload object.
	ReadPayload(ctx context.Context) (models.EncryptedPayload, error)

	// WritePayload atomically replaces the blob file with payload: the
	// payload is written to a temporary file in the same directory and
	// renamed over the target, so a concurrent reader never observes a
	// half-written blob.
	WritePayload(ctx context.Context, payload models.EncryptedPayload) error
}

// AccessRegistry is the persisted set of authorized chat identities.
//
// The in-memory set is the single source of truth during a run; the on-disk
// JSON array is a write-behind durability layer read once at startup.
// Membership is monotonic: identities are added, never removed, by this
// subsystem.
type AccessRegistry interface {
	// IsAuthorized reports whether identity has passed the access-code
	// check during this run or any previous one.
	IsAuthorized(identity string) bool

	// Authorize adds identity to the set and persists the updated list.
	// Adding an already-present identity is a no-op. On write failure the
	// in-memory set is still updated — the session proceeds as authorized —
	// and an error matching [ErrRegistryPersist] is returned so the caller
	// can log the degraded durability.
	Authorize(ctx context.Context, identity string) error

	// Size returns the number of authorized identities.
	Size() int
}

// Storages aggregates all persistence backends of the application.
type Storages struct {
	Blob     BlobFileStorage
	Registry AccessRegistry
}
