package store

import (
	"github.com/MKhiriev/cardsync/internal/config"
	"github.com/MKhiriev/cardsync/internal/logger"
)

// Storages groups the server-side storage layer. The artifact server is
// stateless: everything it serves comes from the published files under
// the data root, no database required.
type Storages struct {
	Artifacts ArtifactSource
}

func NewStorages(cfg config.Storage, logger *logger.Logger) *Storages {
	logger.Info().Msg("creating new storages...")

	return &Storages{
		Artifacts: NewArtifactFileStore(cfg.Files.DataRoot, logger),
	}
}
