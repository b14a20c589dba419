package server

import (
	"github.com/MKhiriev/go-directory-bot/internal/config"
	myHTTP "github.com/MKhiriev/go-directory-bot/internal/handler/http"
	"github.com/MKhiriev/go-directory-bot/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer builds the operational HTTP server from its handler. An empty
// HTTP address is a misconfiguration here: the caller decides whether the
// surface is enabled at all and skips construction when it is not.
func NewServer(handler *myHTTP.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handler.Init(), cfg, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("Launching HTTP server")
	s.httpServer.RunServer()
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")
}
