package service

import (
	"github.com/MKhiriev/cardsync/internal/adapter"
	"github.com/MKhiriev/cardsync/internal/config"
	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/store"
)

type ClientServices struct {
	SyncService ClientSyncService
	SyncJob     ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, artifacts adapter.ArtifactClient, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	syncSvc := NewClientSyncService(storages.Catalog, storages.Ledger, artifacts, cfg.App, logger)

	return &ClientServices{
		SyncService: syncSvc,
		SyncJob:     NewClientSyncJob(syncSvc, logger),
	}
}
