package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/utils"
	"github.com/MKhiriev/cardsync/models"
)

// ledgerRepository is the SQL-backed implementation of [SyncLedger].
// Apply transactions write the ledger rows themselves; this repository
// covers the read side plus the destructive reset.
type ledgerRepository struct {
	*DB
	dataset  string
	clientID string
	uuid     *utils.UUIDGenerator
	logger   *logger.Logger
}

// NewLedgerRepository constructs a [SyncLedger] scoped to one client and
// one dataset.
func NewLedgerRepository(db *DB, dataset, clientID string, logger *logger.Logger) SyncLedger {
	return &ledgerRepository{
		DB:       db,
		dataset:  dataset,
		clientID: clientID,
		uuid:     utils.NewUUIDGenerator(),
		logger:   logger,
	}
}

// GetSyncState returns the client's current position, or nil when the
// client has never completed an apply.
func (l *ledgerRepository) GetSyncState(ctx context.Context) (*models.ClientSyncState, error) {
	log := logger.FromContext(ctx)

	var state models.ClientSyncState
	var syncedAt string

	err := l.DB.QueryRowContext(ctx, getSyncState, l.clientID, l.dataset).Scan(
		&state.ClientID,
		&state.Dataset,
		&state.CurrentVersion,
		&state.StateHash,
		&syncedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "ledgerRepository.GetSyncState").
			Str("client_id", l.clientID).
			Str("dataset", l.dataset).
			Msg("failed to read sync state")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if ts, parseErr := utils.ParseTime(syncedAt); parseErr == nil {
		state.SyncedAt = ts
	}

	return &state, nil
}

// AppendApplyHistory records one sync attempt. Apply transactions write
// their own rows; this covers entries recorded outside one, cycles that
// failed during the fetch stage mostly.
func (l *ledgerRepository) AppendApplyHistory(ctx context.Context, entry models.ApplyHistoryEntry) error {
	log := logger.FromContext(ctx)

	id := entry.ID
	if id == "" {
		id = l.uuid.Generate()
	}
	appliedAt := entry.AppliedAt
	if appliedAt.IsZero() {
		appliedAt = utils.NowUTC()
	}

	if _, err := l.DB.ExecContext(ctx, insertApplyHistory,
		id,
		l.clientID,
		l.dataset,
		entry.FromVersion,
		entry.ToVersion,
		string(entry.Strategy),
		entry.DurationMs,
		entry.Result,
		entry.ErrorMessage,
		utils.FormatTime(appliedAt),
	); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			// Same entry id submitted twice (caller retry); the first row stands.
			return nil
		default:
			log.Err(err).
				Str("func", "ledgerRepository.AppendApplyHistory").
				Str("to_version", entry.ToVersion).
				Msg("failed to insert apply history entry")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

// ListApplyHistory returns the most recent apply attempts, newest first.
func (l *ledgerRepository) ListApplyHistory(ctx context.Context, limit int) ([]models.ApplyHistoryEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, listApplyHistory, l.dataset, limit)
	if err != nil {
		log.Err(err).
			Str("func", "ledgerRepository.ListApplyHistory").
			Str("dataset", l.dataset).
			Msg("failed to execute apply history query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.ApplyHistoryEntry, 0, limit)

	for rows.Next() {
		var entry models.ApplyHistoryEntry
		var appliedAt string

		scanErr := rows.Scan(
			&entry.ID,
			&entry.ClientID,
			&entry.Dataset,
			&entry.FromVersion,
			&entry.ToVersion,
			&entry.Strategy,
			&entry.DurationMs,
			&entry.Result,
			&entry.ErrorMessage,
			&appliedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "ledgerRepository.ListApplyHistory").
				Msg("failed to scan apply history row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if ts, parseErr := utils.ParseTime(appliedAt); parseErr == nil {
			entry.AppliedAt = ts
		}

		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "ledgerRepository.ListApplyHistory").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// ListDatasetVersions returns every version this client has successfully
// applied, oldest first.
func (l *ledgerRepository) ListDatasetVersions(ctx context.Context) ([]models.DatasetVersionRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, listDatasetVersions, l.dataset)
	if err != nil {
		log.Err(err).
			Str("func", "ledgerRepository.ListDatasetVersions").
			Str("dataset", l.dataset).
			Msg("failed to execute dataset versions query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	versions := make([]models.DatasetVersionRecord, 0, 50)

	for rows.Next() {
		var rec models.DatasetVersionRecord
		var createdAt string

		scanErr := rows.Scan(
			&rec.ID,
			&rec.Dataset,
			&rec.Version,
			&rec.StateHash,
			&rec.RecordCount,
			&createdAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "ledgerRepository.ListDatasetVersions").
				Msg("failed to scan dataset version row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if ts, parseErr := utils.ParseTime(createdAt); parseErr == nil {
			rec.CreatedAt = ts
		}

		versions = append(versions, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "ledgerRepository.ListDatasetVersions").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return versions, nil
}

// Reset wipes the catalog rows and every ledger row for this dataset in
// one transaction. The next sync starts from scratch with a full
// snapshot.
func (l *ledgerRepository) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "ledgerRepository.Reset").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, query := range []string{resetCatalogRows, resetSyncState, resetApplyHistory, resetDatasetVersions} {
		args := []any{l.dataset}
		if query == resetCatalogRows {
			args = nil
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "ledgerRepository.Reset").
				Str("dataset", l.dataset).
				Msg("failed to execute reset statement")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "ledgerRepository.Reset").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "ledgerRepository.Reset").
		Str("dataset", l.dataset).
		Msg("local sync state reset")

	return nil
}
