package main

import (
	"fmt"

	"github.com/MKhiriev/cardsync/internal/config"
	"github.com/MKhiriev/cardsync/internal/handler"
	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/server"
	"github.com/MKhiriev/cardsync/internal/service"
	"github.com/MKhiriev/cardsync/internal/store"
	"github.com/MKhiriev/cardsync/models"
)

// Stamped at build time via -ldflags "-X main.buildVersion=...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Printf("Build version: %s\n", buildInfo.BuildVersion())
	fmt.Printf("Build date: %s\n", buildInfo.BuildDate())
	fmt.Printf("Build commit: %s\n", buildInfo.BuildCommit())

	log := logger.NewLogger("cardsync-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log.Debug().Any("config", cfg).Msg("received configs")

	if err = cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid server configs")
	}

	storages := store.NewStorages(cfg.Storage, log)
	services := service.NewServices(storages, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
