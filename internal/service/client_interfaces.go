package service

import (
	"context"
	"time"

	"github.com/MKhiriev/cardsync/models"
)

// ClientSyncService defines the client-side contract for keeping the local
// price catalog converged with the published dataset and for reading what
// the catalog knows.
type ClientSyncService interface {
	// Sync performs one complete synchronization cycle: it fetches the
	// manifest, selects a catch-up strategy against the local version, and
	// applies the chosen artifacts (nothing for noop, each chain patch in
	// order, one compacted patch, or the latest snapshot).
	// A patch precondition failure anywhere in the cycle triggers exactly
	// one automatic full-snapshot retry before the error is surfaced.
	// Returns a summary of what was applied, or an error if any step fails.
	Sync(ctx context.Context) (models.SyncResult, error)

	// GetSyncStatus reports where this client stands relative to the
	// published dataset: the local and latest versions, whether a sync is
	// needed, and the advisory refresh gate derived from the publisher's
	// sync policy. An unreachable server degrades to a local-only status
	// instead of an error so the command still works offline.
	GetSyncStatus(ctx context.Context) (models.ClientSyncStatus, error)

	// GetHistory returns the most recent apply attempts, newest first,
	// capped at limit. A non-positive limit selects a default of 20.
	GetHistory(ctx context.Context, limit int) ([]models.ApplyHistoryEntry, error)

	// GetVersions returns every dataset version this client has ever
	// successfully applied, oldest first.
	GetVersions(ctx context.Context) ([]models.DatasetVersionRecord, error)

	// GetTrend compares the two most recent captured values of one price
	// column for one printing. Returns an error for a column outside the
	// known price column set.
	GetTrend(ctx context.Context, printingID string, column models.PriceColumn) (models.PriceTrend, error)

	// GetRecords returns, per requested printing id, the most recently
	// captured catalog row. Unknown ids are simply absent from the map.
	GetRecords(ctx context.Context, printingIDs []string) (map[string]models.Record, error)

	// Reset wipes the local catalog, sync state and history for the
	// dataset. Troubleshooting use only; never part of a sync cycle.
	Reset(ctx context.Context) error
}

// ClientSyncJob defines the contract for a background worker that
// periodically calls Sync to keep the catalog fresh without user action.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every interval,
	// defaulting to 1 hour if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
