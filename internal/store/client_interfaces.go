package store

import (
	"context"

	"github.com/MKhiriev/cardsync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// CatalogStore is the local price-catalog apply engine and read surface.
type CatalogStore interface {
	// ApplySnapshot replaces the catalog rows tagged snap.Version with
	// snap.Records in one transaction and advances the sync state.
	ApplySnapshot(ctx context.Context, snap models.SnapshotApply) (models.SyncResult, error)

	// ApplyPatch advances the catalog by one patch hop. Returns
	// ErrPatchPrecondition without touching state when the local
	// version differs from the patch's fromVersion.
	ApplyPatch(ctx context.Context, patch models.PatchApply) (models.SyncResult, error)

	// GetCatalogPriceRecords returns, per requested printing id, the
	// most recently captured row. Unknown ids are absent from the map.
	GetCatalogPriceRecords(ctx context.Context, printingIDs []string) (map[string]models.Record, error)

	// GetPriceTrend compares the two most recent captures of one price
	// column for one printing.
	GetPriceTrend(ctx context.Context, printingID string, column models.PriceColumn) (models.PriceTrend, error)

	// CountRecords counts distinct printings tagged with version.
	CountRecords(ctx context.Context, version string) (int, error)

	// ComputeStateHash fingerprints the rows tagged with version.
	ComputeStateHash(ctx context.Context, version string) (string, error)
}

// SyncLedger reads and maintains the client's sync bookkeeping rows.
type SyncLedger interface {
	// GetSyncState returns the ledger row for this client and dataset,
	// or nil when the client has never synced.
	GetSyncState(ctx context.Context) (*models.ClientSyncState, error)

	// AppendApplyHistory records one apply attempt, successful or not.
	AppendApplyHistory(ctx context.Context, entry models.ApplyHistoryEntry) error

	// ListApplyHistory returns the most recent apply attempts, newest
	// first, capped at limit.
	ListApplyHistory(ctx context.Context, limit int) ([]models.ApplyHistoryEntry, error)

	// ListDatasetVersions returns every version this client has applied.
	ListDatasetVersions(ctx context.Context) ([]models.DatasetVersionRecord, error)

	// Reset deletes catalog rows, sync state, history and version
	// bookkeeping for the dataset. Test and troubleshooting use only;
	// never called by sync flows.
	Reset(ctx context.Context) error
}
