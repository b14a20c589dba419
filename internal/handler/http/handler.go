package http

import (
	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/internal/service"
	"github.com/MKhiriev/go-directory-bot/internal/store"
)

type Handler struct {
	services *service.Services
	registry store.AccessRegistry
	version  string

	logger *logger.Logger
}

func NewHandler(services *service.Services, registry store.AccessRegistry, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		registry: registry,
		version:  version,
		logger:   logger,
	}
}
