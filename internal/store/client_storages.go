package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/cardsync/internal/config"
	"github.com/MKhiriev/cardsync/internal/logger"
)

// ClientStorages groups the client-side storage layer: the catalog
// store the apply engine writes into and the ledger tracking sync
// progress. Both may be served by the same backend instance.
type ClientStorages struct {
	// Catalog applies snapshots and patches and serves price reads.
	Catalog CatalogStore

	// Ledger tracks the current version, apply history and applied
	// dataset versions.
	Ledger SyncLedger
}

// NewClientStorages initialises the client storage layer. The backend
// is selected from the configured DSN:
//   - "postgres://" or "postgresql://" opens a shared Postgres catalog;
//   - a path ending in ".json" opens the map store persisted to that file;
//   - any other non-empty value is treated as a sqlite file path;
//   - empty keeps everything in process memory.
//
// SQL backends run pending schema migrations before first use.
func NewClientStorages(cfg *config.ClientConfig, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	dsn := cfg.Storage.DB.DSN

	if dsn == "" || strings.HasSuffix(dsn, ".json") {
		memory, err := NewMemoryCatalogStore(dsn, cfg.App.Dataset, cfg.App.ClientID)
		if err != nil {
			return nil, fmt.Errorf("local catalog store error: %w", err)
		}
		return &ClientStorages{Catalog: memory, Ledger: memory}, nil
	}

	var db *DB
	var err error

	if isPostgresDSN(dsn) {
		db, err = NewConnectPostgres(context.Background(), config.DB{DSN: dsn}, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
	} else {
		db, err = NewConnectSQLite(context.Background(), config.DB{DSN: dsn}, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Catalog: NewCatalogRepository(db, cfg.App.Dataset, cfg.App.ClientID, logger),
		Ledger:  NewLedgerRepository(db, cfg.App.Dataset, cfg.App.ClientID, logger),
	}, nil
}
