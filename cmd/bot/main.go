package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-directory-bot/internal/adapter"
	"github.com/MKhiriev/go-directory-bot/internal/config"
	"github.com/MKhiriev/go-directory-bot/internal/crypto"
	myHTTP "github.com/MKhiriev/go-directory-bot/internal/handler/http"
	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/internal/server"
	"github.com/MKhiriev/go-directory-bot/internal/service"
	"github.com/MKhiriev/go-directory-bot/internal/store"
	"github.com/MKhiriev/go-directory-bot/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-directory-bot")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	key, err := crypto.ResolveKey(cfg.App.DirectoryKey, cfg.App.Passphrase, cfg.App.KeySalt)
	if err != nil {
		log.Fatal().Err(err).Msg("error resolving directory key")
	}
	cipher, err := crypto.NewCipherService(key)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating cipher service")
	}

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(storages, cipher, cfg, log)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// A failed initial load is not fatal: the bot answers with no matches
	// until a readable blob appears and the watcher picks it up.
	records := services.DirectoryService.Reload(ctx)
	log.Info().Int("records", records).Msg("initial directory load")

	ws := workers.NewWorkers(
		workers.NewBlobWatcher(cfg.Storage.BlobPath, cfg.Watcher.Debounce, services.DirectoryService, log),
	)
	ws.Run(ctx)

	if cfg.Server.HTTPAddress != "" {
		version := cfg.App.Version
		if version == "" {
			version = buildVersion
		}
		handler := myHTTP.NewHandler(services, storages.Registry, version, log)

		srv, err := server.NewServer(handler, cfg.Server, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating server")
		}
		go srv.RunServer()
		defer srv.Shutdown()
	}

	bot := adapter.NewTelegramAdapter(adapter.TelegramConfig{
		Token:       cfg.Bot.Token,
		BaseURL:     cfg.Bot.APIBaseURL,
		PollTimeout: cfg.Bot.PollTimeout,
	}, log)

	runBot(ctx, bot, services, log)

	ws.Wait()
	log.Info().Msg("bot stopped gracefully")
}

// runBot drains inbound messages through the session gate until the context
// is cancelled and the update channel closes.
func runBot(ctx context.Context, bot adapter.ChatAdapter, services *service.Services, log *logger.Logger) {
	for msg := range bot.Updates(ctx) {
		for _, out := range services.SessionService.Handle(ctx, msg) {
			if err := bot.SendMessage(ctx, out); err != nil {
				log.Err(err).Str("chat_id", out.ChatID).Msg("error sending reply")
			}
		}
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
