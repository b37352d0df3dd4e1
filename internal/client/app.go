package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/cardsync/internal/adapter"
	"github.com/MKhiriev/cardsync/internal/config"
	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/service"
	"github.com/MKhiriev/cardsync/internal/store"
	"github.com/MKhiriev/cardsync/internal/workers"
)

type App struct {
	services *service.ClientServices
	cfg      *config.ClientConfig
	logger   *logger.Logger
}

func NewApp(cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	artifacts, err := adapter.NewHTTPArtifactClient(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("create artifact client: %w", err)
	}

	localStore, err := store.NewClientStorages(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	svcs := service.NewClientServices(localStore, artifacts, cfg, logger)

	return &App{services: svcs, cfg: cfg, logger: logger}, nil
}

// Services exposes the wired client services for command handlers.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Run keeps the local catalog fresh until ctx is cancelled: one
// immediate sync, then the periodic background job. A failed initial
// sync is logged and left to the next tick.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.services.SyncService.Sync(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("initial sync failed, will retry on schedule")
	}

	defer a.services.SyncJob.Stop()
	workers.NewWorkers(workers.WorkerFunc(func() {
		a.services.SyncJob.Start(ctx, a.cfg.Workers.SyncInterval)
	})).Run()

	<-ctx.Done()

	return nil
}
