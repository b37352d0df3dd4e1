package store

import (
	"database/sql"
	"strings"

	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/migrations"
)

type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// retryable reports whether err is transient for this backend, as judged
// by the driver-specific classifier the connector installed.
func (db *DB) retryable(err error) bool {
	if db.errorClassificator == nil || err == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

// isPostgresDSN reports whether the DSN selects the pgx driver.
// Anything else is treated as an SQLite file path.
func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
