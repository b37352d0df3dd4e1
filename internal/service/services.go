package service

import (
	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/store"
)

type Services struct {
	SyncService SyncService
}

func NewServices(storages *store.Storages, logger *logger.Logger) *Services {
	return &Services{
		SyncService: NewSyncService(storages.Artifacts, logger),
	}
}
