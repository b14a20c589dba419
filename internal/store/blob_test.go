package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.enc")
	blob := NewBlobFileStorage(path, logger.Nop())

	payload := models.EncryptedPayload{
		IV:         "bm9uY2UxMjM0NTY=",
		Ciphertext: "Y2lwaGVydGV4dA==",
		AuthTag:    "dGFnLXRhZy10YWctdGFn",
	}

	require.NoError(t, blob.WritePayload(context.Background(), payload))

	got, err := blob.ReadPayload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// No leftover temp files after an atomic replace.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestBlobFileStorage_ReadMissingFile(t *testing.T) {
	blob := NewBlobFileStorage(filepath.Join(t.TempDir(), "nope.enc"), logger.Nop())

	_, err := blob.ReadPayload(context.Background())
	require.ErrorIs(t, err, ErrBlobNotFound)
}

func TestBlobFileStorage_ReadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.enc")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o600))

	blob := NewBlobFileStorage(path, logger.Nop())

	_, err := blob.ReadPayload(context.Background())
	require.ErrorIs(t, err, ErrBlobMalformed)
}

func TestBlobFileStorage_WriteReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.enc")
	blob := NewBlobFileStorage(path, logger.Nop())

	first := models.EncryptedPayload{IV: "b25l", Ciphertext: "b25l", AuthTag: "b25l"}
	second := models.EncryptedPayload{IV: "dHdv", Ciphertext: "dHdv", AuthTag: "dHdv"}

	require.NoError(t, blob.WritePayload(context.Background(), first))
	require.NoError(t, blob.WritePayload(context.Background(), second))

	got, err := blob.ReadPayload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second, got)
}
