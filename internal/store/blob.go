// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/models"
)

// blobFileStorage is the default implementation of [BlobFileStorage].
// It treats the blob as an opaque JSON object; decryption is the cipher
// store's job, not this layer's.
type blobFileStorage struct {
	path   string
	logger *logger.Logger
}

// NewBlobFileStorage constructs a [BlobFileStorage] over the blob file at
// path.
func NewBlobFileStorage(path string, logger *logger.Logger) BlobFileStorage {
	logger.Debug().Str("path", path).Msg("creating blob file storage")
	return &blobFileStorage{
		path:   path,
		logger: logger,
	}
}

// ReadPayload implements [BlobFileStorage].
//
// Error handling:
//   - file does not exist → [ErrBlobNotFound];
//   - unreadable file or invalid JSON → [ErrBlobMalformed].
func (b *blobFileStorage) ReadPayload(ctx context.Context) (models.EncryptedPayload, error) {
	log := logger.FromContext(ctx)

	raw, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.EncryptedPayload{}, fmt.Errorf("%w: %s", ErrBlobNotFound, b.path)
		}
		log.Err(err).Str("path", b.path).Msg("error reading blob file")
		return models.EncryptedPayload{}, fmt.Errorf("%w: %v", ErrBlobMalformed, err)
	}

	var payload models.EncryptedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Err(err).Str("path", b.path).Msg("error unmarshalling blob file")
		return models.EncryptedPayload{}, fmt.Errorf("%w: %v", ErrBlobMalformed, err)
	}

	return payload, nil
}

// WritePayload implements [BlobFileStorage]. The payload is marshalled with
// indentation for operator-friendliness and written via a temporary file in
// the blob's directory followed by a rename, so concurrent readers (and the
// file watcher) observe either the old or the new blob, never a partial one.
func (b *blobFileStorage) WritePayload(ctx context.Context, payload models.EncryptedPayload) error {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp blob: %w", err)
	}

	if err := os.Rename(tmp.Name(), b.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace blob: %w", err)
	}

	return nil
}
