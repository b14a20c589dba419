package store

import (
	"github.com/MKhiriev/go-directory-bot/internal/config"
	"github.com/MKhiriev/go-directory-bot/internal/logger"
)

// NewStorages wires all persistence backends from the storage configuration.
func NewStorages(cfg config.Storage, logger *logger.Logger) (Storages, error) {
	registry, err := NewAccessRegistry(cfg.RegistryPath, logger)
	if err != nil {
		return Storages{}, err
	}

	return Storages{
		Blob:     NewBlobFileStorage(cfg.BlobPath, logger),
		Registry: registry,
	}, nil
}
