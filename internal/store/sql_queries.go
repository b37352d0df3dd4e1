package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/cardsync/models"
)

const (
	upsertCatalogRecord = `INSERT INTO catalog_prices (
			printing_id,
			condition_id,
			finish_id,
			sync_version,
			name,
			set_code,
			collector_number,
			image_url,
			market_price,
			low_price,
			high_price,
			captured_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (printing_id, condition_id, finish_id, sync_version) DO UPDATE SET
			name             = excluded.name,
			set_code         = excluded.set_code,
			collector_number = excluded.collector_number,
			image_url        = excluded.image_url,
			market_price     = excluded.market_price,
			low_price        = excluded.low_price,
			high_price       = excluded.high_price,
			captured_at      = excluded.captured_at;`

	deleteVersionRows = `DELETE FROM catalog_prices
		WHERE sync_version = $1;`

	// copyVersionRows re-tags every row of the base version under the
	// target version, the starting point of every patch hop.
	copyVersionRows = `INSERT INTO catalog_prices (
			printing_id,
			condition_id,
			finish_id,
			sync_version,
			name,
			set_code,
			collector_number,
			image_url,
			market_price,
			low_price,
			high_price,
			captured_at
		)
		SELECT
			printing_id,
			condition_id,
			finish_id,
			$1,
			name,
			set_code,
			collector_number,
			image_url,
			market_price,
			low_price,
			high_price,
			captured_at
		FROM catalog_prices
		WHERE sync_version = $2;`

	getVersionRows = `SELECT
			printing_id,
			name,
			set_code,
			collector_number,
			image_url,
			market_price,
			low_price,
			high_price,
			captured_at
		FROM catalog_prices
		WHERE sync_version = $1;`

	countVersionRecords = `SELECT COUNT(DISTINCT printing_id)
		FROM catalog_prices
		WHERE sync_version = $1;`

	getSyncState = `SELECT client_id, dataset_name, current_version, state_hash, synced_at
		FROM client_sync_state
		WHERE client_id = $1 AND dataset_name = $2;`

	upsertSyncState = `INSERT INTO client_sync_state (
			client_id,
			dataset_name,
			current_version,
			state_hash,
			synced_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (client_id, dataset_name) DO UPDATE SET
			current_version = excluded.current_version,
			state_hash      = excluded.state_hash,
			synced_at       = excluded.synced_at,
			updated_at      = excluded.updated_at;`

	insertApplyHistory = `INSERT INTO sync_apply_history (
			id,
			client_id,
			dataset_name,
			from_version,
			to_version,
			strategy,
			duration_ms,
			result,
			error_message,
			applied_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	listApplyHistory = `SELECT id, client_id, dataset_name, from_version, to_version, strategy, duration_ms, result, error_message, applied_at
		FROM sync_apply_history
		WHERE dataset_name = $1
		ORDER BY applied_at DESC
		LIMIT $2;`

	// created_at is deliberately preserved on conflict: the row records
	// when the version was first applied by this client.
	upsertDatasetVersion = `INSERT INTO sync_dataset_versions (
			id,
			dataset_name,
			version,
			state_hash,
			record_count,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			state_hash   = excluded.state_hash,
			record_count = excluded.record_count;`

	listDatasetVersions = `SELECT id, dataset_name, version, state_hash, record_count, created_at
		FROM sync_dataset_versions
		WHERE dataset_name = $1
		ORDER BY created_at ASC, version ASC;`

	resetCatalogRows = `DELETE FROM catalog_prices;`

	resetSyncState = `DELETE FROM client_sync_state
		WHERE dataset_name = $1;`

	resetApplyHistory = `DELETE FROM sync_apply_history
		WHERE dataset_name = $1;`

	resetDatasetVersions = `DELETE FROM sync_dataset_versions
		WHERE dataset_name = $1;`
)

// buildDeleteRemovedQuery deletes the removed printing ids from the rows
// tagged with version. squirrel expands the id slice into an IN clause.
func buildDeleteRemovedQuery(_ context.Context, version string, printingIDs []string) (string, []any, error) {
	query, args, err := sq.Delete("catalog_prices").
		Where(sq.Eq{"sync_version": version}).
		Where(sq.Eq{"printing_id": printingIDs}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildTrendQuery selects the two most recent distinct captures of one
// price column for one printing. The column is validated against the
// known set before it is placed in the SQL text.
//
// DISTINCT matters: patch application copies unchanged rows forward, so
// the same (value, captured_at) capture appears once per version it
// survived into.
func buildTrendQuery(_ context.Context, printingID string, column models.PriceColumn) (string, []any, error) {
	if !models.KnownPriceColumn(column) {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownPriceColumn, column)
	}

	query, args, err := sq.Select(string(column), "captured_at").
		Distinct().
		From("catalog_prices").
		Where(sq.Eq{"printing_id": printingID}).
		Where(string(column) + " IS NOT NULL").
		OrderBy("captured_at DESC").
		Limit(2).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildLatestRecordQuery selects the most recently captured row for one
// printing regardless of version tag. Ties on captured_at (the common
// case, because rows are copied forward between versions) are broken by
// the newer version tag.
func buildLatestRecordQuery(_ context.Context, printingID string) (string, []any, error) {
	query, args, err := sq.Select(
		"printing_id",
		"name",
		"set_code",
		"collector_number",
		"image_url",
		"market_price",
		"low_price",
		"high_price",
		"captured_at",
	).
		From("catalog_prices").
		Where(sq.Eq{"printing_id": printingID}).
		OrderBy("captured_at DESC", "sync_version DESC").
		Limit(1).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
