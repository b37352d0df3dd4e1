// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/utils"
	"github.com/MKhiriev/cardsync/internal/validators"
	"github.com/MKhiriev/cardsync/models"
)

// catalogRepository is the SQL-backed implementation of [CatalogStore].
// It runs every apply as a single transaction against the
// "catalog_prices" table plus the sync ledger tables, so that a failed
// apply leaves the previous version fully intact.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced
// with structured fields (dataset, version, printing_id, etc.).
type catalogRepository struct {
	*DB
	dataset   string
	clientID  string
	validator validators.Validator
	uuid      *utils.UUIDGenerator
	logger    *logger.Logger
}

// NewCatalogRepository constructs a [CatalogStore] backed by the provided
// database connection. The dataset and client id scope every ledger row
// this repository writes.
func NewCatalogRepository(db *DB, dataset, clientID string, logger *logger.Logger) CatalogStore {
	return &catalogRepository{
		DB:        db,
		dataset:   dataset,
		clientID:  clientID,
		validator: validators.NewArtifactValidator(),
		uuid:      utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

// rowQuerier lets the row-projection helpers run both inside and outside
// a transaction.
type rowQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// applyMaxAttempts bounds how many times one apply transaction is run
// when the backend reports transient failures: a serialization race on
// the shared Postgres catalog, or a busy local file. Attempts are
// back-to-back; the transaction itself already took long enough.
const applyMaxAttempts = 3

// ApplySnapshot replaces the rows tagged snap.Version with snap.Records
// and advances the sync state, all in one transaction.
//
// The expected hash, when present, is verified against the computed
// state hash after the rows are written. A mismatch is reported in the
// result and logged as a warning; the apply still commits, because the
// local rows faithfully reflect the published snapshot either way.
//
// On failure the transaction is rolled back and the current version is
// unchanged. Transient backend errors are retried up to
// [applyMaxAttempts] times before a failure entry is recorded in the
// apply history.
func (c *catalogRepository) ApplySnapshot(ctx context.Context, snap models.SnapshotApply) (models.SyncResult, error) {
	log := logger.FromContext(ctx)
	started := time.Now()

	result, fromVersion, err := c.applySnapshotTx(ctx, snap, started)
	for attempt := 2; err != nil && attempt <= applyMaxAttempts && c.retryable(err); attempt++ {
		log.Warn().
			Str("func", "catalogRepository.ApplySnapshot").
			Str("version", snap.Version).
			Int("attempt", attempt).
			Err(err).
			Msg("transient database error, retrying snapshot apply")
		result, fromVersion, err = c.applySnapshotTx(ctx, snap, started)
	}
	if err != nil {
		// The transaction is closed by now; sqlite holds a single
		// connection, so the failure entry must not overlap it.
		c.recordFailureHistory(ctx, fromVersion, snap.Version, models.StrategyFull, started, err)
		return models.SyncResult{}, err
	}

	if result.HashMismatch {
		log.Warn().
			Str("func", "catalogRepository.ApplySnapshot").
			Str("version", snap.Version).
			Str("expected_hash", snap.ExpectedHash).
			Str("computed_hash", result.StateHash).
			Msg("state hash mismatch after snapshot apply; keeping applied state")
	}

	log.Info().
		Str("func", "catalogRepository.ApplySnapshot").
		Str("version", snap.Version).
		Int("records", len(snap.Records)).
		Msg("snapshot applied")

	return result, nil
}

func (c *catalogRepository) applySnapshotTx(ctx context.Context, snap models.SnapshotApply, started time.Time) (models.SyncResult, *string, error) {
	log := logger.FromContext(ctx)

	if err := c.validator.Validate(ctx, snap.Records); err != nil {
		log.Err(err).
			Str("func", "catalogRepository.ApplySnapshot").
			Str("version", snap.Version).
			Msg("snapshot records failed validation")
		return models.SyncResult{}, nil, err
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "catalogRepository.ApplySnapshot").
			Str("version", snap.Version).
			Msg("failed to begin transaction")
		return models.SyncResult{}, nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	prior, err := c.syncStateOn(ctx, tx)
	if err != nil {
		return models.SyncResult{}, nil, err
	}
	var fromVersion *string
	if prior != nil {
		fromVersion = &prior.CurrentVersion
	}

	if _, err = tx.ExecContext(ctx, deleteVersionRows, snap.Version); err != nil {
		log.Err(err).
			Str("func", "catalogRepository.ApplySnapshot").
			Str("version", snap.Version).
			Msg("failed to clear snapshot version rows")
		return models.SyncResult{}, fromVersion, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = c.insertRecordsTx(ctx, tx, snap.Version, snap.Records); err != nil {
		return models.SyncResult{}, fromVersion, err
	}

	stateHash, err := c.finalizeApplyTx(ctx, tx, fromVersion, snap.Version, models.StrategyFull, started)
	if err != nil {
		return models.SyncResult{}, fromVersion, err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "catalogRepository.ApplySnapshot").
			Str("version", snap.Version).
			Msg("failed to commit transaction")
		return models.SyncResult{}, fromVersion, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return models.SyncResult{
		Dataset:        c.dataset,
		Strategy:       models.StrategyFull,
		FromVersion:    derefOrEmpty(fromVersion),
		ToVersion:      snap.Version,
		AppliedRecords: len(snap.Records),
		StateHash:      stateHash,
		HashMismatch:   snap.ExpectedHash != "" && snap.ExpectedHash != stateHash,
		DurationMs:     time.Since(started).Milliseconds(),
	}, fromVersion, nil
}

// ApplyPatch advances the catalog by one patch hop inside a single
// transaction: re-tag the base version's rows under the target version,
// drop the removed printings, then upsert the added and updated rows.
//
// The precondition is checked inside the transaction: the ledger's
// current version must equal the patch's fromVersion, otherwise
// [ErrPatchPrecondition] is returned and nothing changes. Rows already
// tagged with the target version are cleared up front so an interrupted
// earlier attempt cannot poison a re-run. Transient backend errors are
// retried the same way snapshot applies are.
func (c *catalogRepository) ApplyPatch(ctx context.Context, patch models.PatchApply) (models.SyncResult, error) {
	log := logger.FromContext(ctx)
	started := time.Now()

	p := patch.Patch
	from := p.FromVersion

	result, err := c.applyPatchTx(ctx, patch, started)
	for attempt := 2; err != nil && attempt <= applyMaxAttempts && c.retryable(err); attempt++ {
		log.Warn().
			Str("func", "catalogRepository.ApplyPatch").
			Str("to_version", p.ToVersion).
			Int("attempt", attempt).
			Err(err).
			Msg("transient database error, retrying patch apply")
		result, err = c.applyPatchTx(ctx, patch, started)
	}
	if err != nil {
		c.recordFailureHistory(ctx, &from, p.ToVersion, patch.Strategy, started, err)
		return models.SyncResult{}, err
	}

	if result.HashMismatch {
		log.Warn().
			Str("func", "catalogRepository.ApplyPatch").
			Str("to_version", p.ToVersion).
			Str("expected_hash", patch.ExpectedHash).
			Str("computed_hash", result.StateHash).
			Msg("state hash mismatch after patch apply; keeping applied state")
	}

	log.Info().
		Str("func", "catalogRepository.ApplyPatch").
		Str("strategy", string(patch.Strategy)).
		Str("from_version", p.FromVersion).
		Str("to_version", p.ToVersion).
		Int("changed", result.AppliedRecords).
		Int("removed", result.RemovedRecords).
		Msg("patch applied")

	return result, nil
}

func (c *catalogRepository) applyPatchTx(ctx context.Context, patch models.PatchApply, started time.Time) (models.SyncResult, error) {
	log := logger.FromContext(ctx)
	p := patch.Patch
	from := p.FromVersion

	if err := c.validator.Validate(ctx, p); err != nil {
		log.Err(err).
			Str("func", "catalogRepository.ApplyPatch").
			Str("from_version", p.FromVersion).
			Str("to_version", p.ToVersion).
			Msg("patch failed validation")
		return models.SyncResult{}, err
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "catalogRepository.ApplyPatch").
			Str("to_version", p.ToVersion).
			Msg("failed to begin transaction")
		return models.SyncResult{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	prior, err := c.syncStateOn(ctx, tx)
	if err != nil {
		return models.SyncResult{}, err
	}
	if prior == nil || prior.CurrentVersion != p.FromVersion {
		current := ""
		if prior != nil {
			current = prior.CurrentVersion
		}
		log.Warn().
			Str("func", "catalogRepository.ApplyPatch").
			Str("patch_from", p.FromVersion).
			Str("local_version", current).
			Msg("patch base does not match local version")
		return models.SyncResult{}, fmt.Errorf("%w: have %q, need %q", ErrPatchPrecondition, current, p.FromVersion)
	}

	// An interrupted earlier attempt may have left rows under the target
	// version; clear them so the hop starts from a clean slate.
	if _, err = tx.ExecContext(ctx, deleteVersionRows, p.ToVersion); err != nil {
		log.Err(err).
			Str("func", "catalogRepository.ApplyPatch").
			Str("to_version", p.ToVersion).
			Msg("failed to clear target version rows")
		return models.SyncResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, copyVersionRows, p.ToVersion, p.FromVersion); err != nil {
		log.Err(err).
			Str("func", "catalogRepository.ApplyPatch").
			Str("from_version", p.FromVersion).
			Str("to_version", p.ToVersion).
			Msg("failed to copy base version rows")
		return models.SyncResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(p.Removed) > 0 {
		query, args, buildErr := buildDeleteRemovedQuery(ctx, p.ToVersion, p.Removed)
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "catalogRepository.ApplyPatch").
				Str("to_version", p.ToVersion).
				Msg("failed to build removed-rows query")
			return models.SyncResult{}, buildErr
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "catalogRepository.ApplyPatch").
				Str("to_version", p.ToVersion).
				Int("removed", len(p.Removed)).
				Msg("failed to delete removed printings")
			return models.SyncResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	changed := make([]models.Record, 0, p.ChangedCount())
	changed = append(changed, p.Added...)
	changed = append(changed, p.Updated...)
	if err = c.insertRecordsTx(ctx, tx, p.ToVersion, changed); err != nil {
		return models.SyncResult{}, err
	}

	stateHash, err := c.finalizeApplyTx(ctx, tx, &from, p.ToVersion, patch.Strategy, started)
	if err != nil {
		return models.SyncResult{}, err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "catalogRepository.ApplyPatch").
			Str("to_version", p.ToVersion).
			Msg("failed to commit transaction")
		return models.SyncResult{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return models.SyncResult{
		Dataset:        c.dataset,
		Strategy:       patch.Strategy,
		FromVersion:    p.FromVersion,
		ToVersion:      p.ToVersion,
		AppliedPatches: 1,
		AppliedRecords: len(changed),
		RemovedRecords: len(p.Removed),
		StateHash:      stateHash,
		HashMismatch:   patch.ExpectedHash != "" && patch.ExpectedHash != stateHash,
		DurationMs:     time.Since(started).Milliseconds(),
	}, nil
}

// GetCatalogPriceRecords returns the most recently captured row per
// requested printing id. Printings the catalog has never seen are
// simply absent from the result.
func (c *catalogRepository) GetCatalogPriceRecords(ctx context.Context, printingIDs []string) (map[string]models.Record, error) {
	log := logger.FromContext(ctx)

	records := make(map[string]models.Record, len(printingIDs))

	for _, id := range printingIDs {
		query, args, err := buildLatestRecordQuery(ctx, id)
		if err != nil {
			log.Err(err).
				Str("func", "catalogRepository.GetCatalogPriceRecords").
				Str("printing_id", id).
				Msg("failed to build latest record query")
			return nil, err
		}

		var rec models.Record
		scanErr := c.DB.QueryRowContext(ctx, query, args...).Scan(
			&rec.PrintingID,
			&rec.Name,
			&rec.SetCode,
			&rec.CollectorNumber,
			&rec.ImageURL,
			&rec.MarketPrice,
			&rec.LowPrice,
			&rec.HighPrice,
			&rec.CapturedAt,
		)
		if errors.Is(scanErr, sql.ErrNoRows) {
			continue
		}
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "catalogRepository.GetCatalogPriceRecords").
				Str("printing_id", id).
				Msg("failed to scan catalog row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		records[id] = rec
	}

	return records, nil
}

// GetPriceTrend compares the two most recent distinct captures of one
// price column. With fewer than two captures the direction is "none";
// within ±[models.TrendEpsilon] the movement counts as flat.
func (c *catalogRepository) GetPriceTrend(ctx context.Context, printingID string, column models.PriceColumn) (models.PriceTrend, error) {
	log := logger.FromContext(ctx)

	trend := models.PriceTrend{
		PrintingID: printingID,
		Column:     column,
		Direction:  models.TrendNone,
	}

	query, args, err := buildTrendQuery(ctx, printingID, column)
	if err != nil {
		log.Err(err).
			Str("func", "catalogRepository.GetPriceTrend").
			Str("printing_id", printingID).
			Str("column", string(column)).
			Msg("failed to build trend query")
		return models.PriceTrend{}, err
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "catalogRepository.GetPriceTrend").
			Str("printing_id", printingID).
			Msg("failed to execute trend query")
		return models.PriceTrend{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	values := make([]float64, 0, 2)
	capturedAts := make([]string, 0, 2)

	for rows.Next() {
		var value float64
		var capturedAt string
		if scanErr := rows.Scan(&value, &capturedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "catalogRepository.GetPriceTrend").
				Str("printing_id", printingID).
				Msg("failed to scan trend row")
			return models.PriceTrend{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		values = append(values, value)
		capturedAts = append(capturedAts, capturedAt)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "catalogRepository.GetPriceTrend").
			Str("printing_id", printingID).
			Msg("error occurred during rows iteration")
		return models.PriceTrend{}, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return buildTrend(trend, values, capturedAts), nil
}

// buildTrend derives the movement from values ordered newest first.
// Shared with the in-memory store so both backends classify identically.
func buildTrend(trend models.PriceTrend, values []float64, capturedAts []string) models.PriceTrend {
	if len(values) == 0 {
		return trend
	}

	current := values[0]
	trend.Current = &current
	trend.LastCapturedAt = capturedAts[0]

	if len(values) < 2 {
		return trend
	}

	previous := values[1]
	delta := current - previous
	trend.Previous = &previous
	trend.Delta = &delta

	switch {
	case delta > models.TrendEpsilon:
		trend.Direction = models.TrendUp
	case delta < -models.TrendEpsilon:
		trend.Direction = models.TrendDown
	default:
		trend.Direction = models.TrendFlat
	}

	return trend
}

// CountRecords counts distinct printings tagged with version.
func (c *catalogRepository) CountRecords(ctx context.Context, version string) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := c.DB.QueryRowContext(ctx, countVersionRecords, version).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "catalogRepository.CountRecords").
			Str("version", version).
			Msg("failed to count version records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// ComputeStateHash fingerprints the rows tagged with version using the
// shared projection, so SQL and in-memory stores agree byte for byte.
func (c *catalogRepository) ComputeStateHash(ctx context.Context, version string) (string, error) {
	rows, err := c.versionRowsOn(ctx, c.DB, version)
	if err != nil {
		return "", err
	}

	return ComputeStateHashForRows(c.dataset, rows), nil
}

// insertRecordsTx upserts records under version through one prepared
// statement. Optional low/high prices fall back to the market price, so
// downstream price displays never divide by a missing bound.
func (c *catalogRepository) insertRecordsTx(ctx context.Context, tx *sql.Tx, version string, records []models.Record) error {
	log := logger.FromContext(ctx)

	if len(records) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, upsertCatalogRecord)
	if err != nil {
		log.Err(err).
			Str("func", "catalogRepository.insertRecordsTx").
			Str("version", version).
			Msg("failed to prepare statement")
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	log.Debug().
		Str("func", "catalogRepository.insertRecordsTx").
		Str("version", version).
		Int("count", len(records)).
		Msg("writing catalog rows in transaction")

	for idx, rec := range records {
		low := rec.MarketPrice
		if rec.LowPrice != nil {
			low = *rec.LowPrice
		}
		high := rec.MarketPrice
		if rec.HighPrice != nil {
			high = *rec.HighPrice
		}

		if _, execErr := stmt.ExecContext(ctx,
			rec.PrintingID,
			models.CatalogCondition,
			models.CatalogFinish,
			version,
			rec.Name,
			rec.SetCode,
			rec.CollectorNumber,
			rec.ImageURL,
			rec.MarketPrice,
			low,
			high,
			rec.CapturedAt,
		); execErr != nil {
			log.Err(execErr).
				Str("func", "catalogRepository.insertRecordsTx").
				Int("iteration", idx+1).
				Str("printing_id", rec.PrintingID).
				Msg("failed to execute prepared statement")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
	}

	return nil
}

// versionRowsOn projects every row tagged with version back into the
// wire record shape, the input of the state hash.
func (c *catalogRepository) versionRowsOn(ctx context.Context, q rowQuerier, version string) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := q.QueryContext(ctx, getVersionRows, version)
	if err != nil {
		log.Err(err).
			Str("func", "catalogRepository.versionRowsOn").
			Str("version", version).
			Msg("failed to execute query for version rows")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Record, 0, 50)

	for rows.Next() {
		var rec models.Record

		scanErr := rows.Scan(
			&rec.PrintingID,
			&rec.Name,
			&rec.SetCode,
			&rec.CollectorNumber,
			&rec.ImageURL,
			&rec.MarketPrice,
			&rec.LowPrice,
			&rec.HighPrice,
			&rec.CapturedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "catalogRepository.versionRowsOn").
				Str("version", version).
				Msg("failed to scan catalog row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "catalogRepository.versionRowsOn").
			Str("version", version).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// syncStateOn reads the ledger row for this client inside or outside a
// transaction. A missing row means the client has never synced; that is
// reported as nil, not an error.
func (c *catalogRepository) syncStateOn(ctx context.Context, q rowQuerier) (*models.ClientSyncState, error) {
	log := logger.FromContext(ctx)

	var state models.ClientSyncState
	var syncedAt string

	err := q.QueryRowContext(ctx, getSyncState, c.clientID, c.dataset).Scan(
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
			Str("func", "catalogRepository.syncStateOn").
			Str("client_id", c.clientID).
			Msg("failed to read sync state")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if ts, parseErr := utils.ParseTime(syncedAt); parseErr == nil {
		state.SyncedAt = ts
	}

	return &state, nil
}

// finalizeApplyTx computes the new state hash, advances the ledger and
// records the success history row, all inside the apply transaction.
func (c *catalogRepository) finalizeApplyTx(ctx context.Context, tx *sql.Tx, from *string, to string, strategy models.SyncStrategy, started time.Time) (string, error) {
	log := logger.FromContext(ctx)

	rows, err := c.versionRowsOn(ctx, tx, to)
	if err != nil {
		return "", err
	}
	stateHash := ComputeStateHashForRows(c.dataset, rows)

	var recordCount int
	if err = tx.QueryRowContext(ctx, countVersionRecords, to).Scan(&recordCount); err != nil {
		log.Err(err).
			Str("func", "catalogRepository.finalizeApplyTx").
			Str("version", to).
			Msg("failed to count version records")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	now := utils.FormatTime(utils.NowUTC())

	if _, err = tx.ExecContext(ctx, upsertSyncState,
		c.clientID, c.dataset, to, stateHash, now, now,
	); err != nil {
		log.Err(err).
			Str("func", "catalogRepository.finalizeApplyTx").
			Str("version", to).
			Msg("failed to upsert sync state")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, upsertDatasetVersion,
		c.dataset+":"+to, c.dataset, to, stateHash, recordCount, now,
	); err != nil {
		log.Err(err).
			Str("func", "catalogRepository.finalizeApplyTx").
			Str("version", to).
			Msg("failed to upsert dataset version record")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, insertApplyHistory,
		c.uuid.Generate(),
		c.clientID,
		c.dataset,
		from,
		to,
		string(strategy),
		time.Since(started).Milliseconds(),
		models.ApplyResultSuccess,
		nil,
		now,
	); err != nil {
		log.Err(err).
			Str("func", "catalogRepository.finalizeApplyTx").
			Str("version", to).
			Msg("failed to insert apply history")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return stateHash, nil
}

// recordFailureHistory appends a failure entry after the apply
// transaction rolled back. Best effort: a failure to record the failure
// is logged and swallowed, the apply error itself is what the caller
// sees.
func (c *catalogRepository) recordFailureHistory(ctx context.Context, from *string, to string, strategy models.SyncStrategy, started time.Time, applyErr error) {
	log := logger.FromContext(ctx)

	message := applyErr.Error()

	if _, err := c.DB.ExecContext(ctx, insertApplyHistory,
		c.uuid.Generate(),
		c.clientID,
		c.dataset,
		from,
		to,
		string(strategy),
		time.Since(started).Milliseconds(),
		models.ApplyResultFailure,
		&message,
		utils.FormatTime(utils.NowUTC()),
	); err != nil {
		log.Err(err).
			Str("func", "catalogRepository.recordFailureHistory").
			Str("version", to).
			Msg("failed to record failure history entry")
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
