package service

import (
	"github.com/MKhiriev/go-directory-bot/internal/config"
	"github.com/MKhiriev/go-directory-bot/internal/crypto"
	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/internal/store"
)

type Services struct {
	DirectoryService DirectoryService
	QueryService     QueryService
	SessionService   SessionService
}

func NewServices(storages store.Storages, cipher crypto.CipherService, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	directory := NewDirectoryService(storages.Blob, cipher, logger)
	query := NewQueryService(directory, cfg.Search.Limit, logger)
	session := NewSessionService(storages.Registry, directory, query, cfg.App.AccessCode, logger)

	return &Services{
		DirectoryService: directory,
		QueryService:     query,
		SessionService:   session,
	}
}
