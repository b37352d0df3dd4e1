package service

import (
	"context"

	"github.com/MKhiriev/cardsync/models"
)

// StrategyService picks the catch-up path from a local version to the
// manifest's latest. The same implementation runs on both sides of the
// wire: the server uses it for /sync/status hints and patch planning,
// the client for deciding what to fetch.
type StrategyService interface {
	SelectStrategy(ctx context.Context, local *string, manifest models.Manifest) (models.StrategyDecision, error)
}

// SyncService answers the artifact server's read endpoints from the
// published data root.
type SyncService interface {
	Health(ctx context.Context) (models.HealthResponse, error)
	Status(ctx context.Context, current string) (models.ServerSyncStatus, error)
	PlanPatch(ctx context.Context, from, to string, expand bool) (PatchPlan, error)
	Snapshot(ctx context.Context, version string, includeRecords bool) (models.SnapshotInfoResponse, error)

	// Manifest returns the published manifest after validation.
	Manifest(ctx context.Context) (models.Manifest, error)

	// Artifact returns one published file verbatim for pass-through
	// serving of snapshots, patches and compacted patches.
	Artifact(ctx context.Context, relPath string) ([]byte, error)
}

// PatchPlan is the outcome of planning one patch request. Mode selects
// which of the remaining fields carry meaning.
type PatchPlan struct {
	// Mode is one of the models.PatchMode* values.
	Mode string

	FromVersion string
	ToVersion   string

	// LatestVersion accompanies the full_required mode.
	LatestVersion string

	// Paths lists the chain's relative patch paths in apply order.
	Paths []string

	// Patches carries the inlined chain bodies when expansion was requested.
	Patches []models.PatchFile

	// Compacted is the single pre-merged patch body for the compacted mode.
	Compacted *models.PatchFile
}
