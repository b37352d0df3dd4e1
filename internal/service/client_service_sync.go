// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/cardsync/internal/adapter"
	"github.com/MKhiriev/cardsync/internal/config"
	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/store"
	"github.com/MKhiriev/cardsync/models"
	"golang.org/x/sync/errgroup"
)

// patchPrefetchLimit caps how many chain patches are fetched from the
// server at once. Applies stay strictly ordered regardless.
const patchPrefetchLimit = 4

type clientSyncService struct {
	catalog  store.CatalogStore
	ledger   store.SyncLedger
	adapter  adapter.ArtifactClient
	selector StrategyService

	dataset string
	logger  *logger.Logger
}

func NewClientSyncService(catalog store.CatalogStore, ledger store.SyncLedger, artifacts adapter.ArtifactClient, appCfg config.ClientApp, logger *logger.Logger) ClientSyncService {
	return &clientSyncService{
		catalog:  catalog,
		ledger:   ledger,
		adapter:  artifacts,
		selector: NewStrategyService(),
		dataset:  appCfg.Dataset,
		logger:   logger,
	}
}

func (s *clientSyncService) Sync(ctx context.Context) (models.SyncResult, error) {
	started := time.Now()

	manifest, err := s.adapter.GetManifest(ctx)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("fetch manifest: %w", err)
	}

	state, err := s.ledger.GetSyncState(ctx)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("read sync state: %w", err)
	}

	var local *string
	if state != nil && state.CurrentVersion != "" {
		local = &state.CurrentVersion
	}

	decision, err := s.selector.SelectStrategy(ctx, local, manifest)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("select strategy: %w", err)
	}

	s.logger.Debug().
		Str("func", "clientSyncService.Sync").
		Str("strategy", string(decision.Strategy)).
		Str("latest_version", decision.LatestVersion).
		Int("missed", decision.MissedCount).
		Msg("sync strategy selected")

	result, err := s.execute(ctx, manifest, decision, state)
	if err != nil && errors.Is(err, store.ErrPatchPrecondition) {
		// The ledger's version was not what the catalog rows answer to;
		// however it diverged, one snapshot resync recovers.
		s.logger.Warn().
			Err(err).
			Str("func", "clientSyncService.Sync").
			Msg("patch precondition failed, forcing full resync")
		result, err = s.applyFull(ctx, manifest)
	}
	if err != nil {
		if errors.Is(err, adapter.ErrFetchFailed) {
			// Apply failures leave their own history row; a failed fetch
			// dies before any transaction opens, so the trace lands here.
			s.recordFetchFailure(ctx, local, manifest.LatestVersion, decision.Strategy, started, err)
		}
		return models.SyncResult{}, err
	}

	result.DurationMs = time.Since(started).Milliseconds()

	s.logger.Info().
		Str("func", "clientSyncService.Sync").
		Str("strategy", string(result.Strategy)).
		Str("from_version", result.FromVersion).
		Str("to_version", result.ToVersion).
		Int("applied_patches", result.AppliedPatches).
		Int("applied_records", result.AppliedRecords).
		Bool("hash_mismatch", result.HashMismatch).
		Int64("duration_ms", result.DurationMs).
		Msg("sync cycle finished")

	return result, nil
}

func (s *clientSyncService) execute(ctx context.Context, manifest models.Manifest, decision models.StrategyDecision, state *models.ClientSyncState) (models.SyncResult, error) {
	switch decision.Strategy {
	case models.StrategyNoop:
		result := models.SyncResult{
			Dataset:     s.dataset,
			Strategy:    models.StrategyNoop,
			ToVersion:   decision.LatestVersion,
			FromVersion: decision.LatestVersion,
		}
		if state != nil {
			result.StateHash = state.StateHash
		}
		return result, nil

	case models.StrategyChain:
		return s.applyChain(ctx, manifest, decision.ChainPaths)

	case models.StrategyCompacted:
		return s.applyCompacted(ctx, *decision.Compacted)

	default: // models.StrategyFull
		return s.applyFull(ctx, manifest)
	}
}

// applyChain fetches every patch in the span concurrently, then applies
// them strictly in publish order: each hop's precondition depends on the
// previous hop having landed.
func (s *clientSyncService) applyChain(ctx context.Context, manifest models.Manifest, paths []string) (models.SyncResult, error) {
	patches := make([]models.PatchFile, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(patchPrefetchLimit)
	for i, rel := range paths {
		g.Go(func() error {
			patch, err := s.adapter.GetPatch(gctx, rel)
			if err != nil {
				return fmt.Errorf("fetch chain patch %s: %w", rel, err)
			}
			patches[i] = patch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.SyncResult{}, err
	}

	total := models.SyncResult{Dataset: s.dataset, Strategy: models.StrategyChain}
	for i, patch := range patches {
		hop, err := s.catalog.ApplyPatch(ctx, models.PatchApply{
			Patch:        patch,
			Strategy:     models.StrategyChain,
			ExpectedHash: expectedStateHash(manifest, patch.ToVersion),
		})
		if err != nil {
			return models.SyncResult{}, fmt.Errorf("apply patch %s -> %s: %w", patch.FromVersion, patch.ToVersion, err)
		}

		if i == 0 {
			total.FromVersion = hop.FromVersion
		}
		total.ToVersion = hop.ToVersion
		total.AppliedPatches += hop.AppliedPatches
		total.AppliedRecords += hop.AppliedRecords
		total.RemovedRecords += hop.RemovedRecords
		total.StateHash = hop.StateHash
		total.HashMismatch = total.HashMismatch || hop.HashMismatch
	}

	return total, nil
}

func (s *clientSyncService) applyCompacted(ctx context.Context, entry models.CompactedPatch) (models.SyncResult, error) {
	patch, err := s.adapter.GetPatch(ctx, entry.Path)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("fetch compacted patch %s: %w", entry.Path, err)
	}

	result, err := s.catalog.ApplyPatch(ctx, models.PatchApply{
		Patch:        patch,
		Strategy:     models.StrategyCompacted,
		ExpectedHash: entry.PatchHash,
	})
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("apply compacted patch %s -> %s: %w", patch.FromVersion, patch.ToVersion, err)
	}

	return result, nil
}

func (s *clientSyncService) applyFull(ctx context.Context, manifest models.Manifest) (models.SyncResult, error) {
	rel, hash := manifest.LatestSnapshot, manifest.LatestHash
	if entry, ok := manifest.VersionEntry(manifest.LatestVersion); ok && entry.Snapshot != "" {
		rel, hash = entry.Snapshot, entry.SnapshotHash
	}
	if rel == "" {
		return models.SyncResult{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, manifest.LatestVersion)
	}

	records, err := s.adapter.GetSnapshotRecords(ctx, rel)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("fetch snapshot %s: %w", rel, err)
	}

	result, err := s.catalog.ApplySnapshot(ctx, models.SnapshotApply{
		Version:      manifest.LatestVersion,
		Records:      records,
		ExpectedHash: hash,
	})
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("apply snapshot %s: %w", manifest.LatestVersion, err)
	}

	return result, nil
}

// recordFetchFailure appends a failure entry for a cycle that never
// reached the catalog. Best effort: the fetch error is what the caller
// sees either way.
func (s *clientSyncService) recordFetchFailure(ctx context.Context, from *string, to string, strategy models.SyncStrategy, started time.Time, fetchErr error) {
	message := fetchErr.Error()

	if err := s.ledger.AppendApplyHistory(ctx, models.ApplyHistoryEntry{
		FromVersion:  from,
		ToVersion:    to,
		Strategy:     strategy,
		DurationMs:   time.Since(started).Milliseconds(),
		Result:       models.ApplyResultFailure,
		ErrorMessage: &message,
	}); err != nil {
		s.logger.Warn().
			Err(err).
			Str("func", "clientSyncService.recordFetchFailure").
			Msg("failed to record fetch failure in apply history")
	}
}

// expectedStateHash looks up the published state hash for one version.
// Patch and snapshot entries converge on the same state, so either hash
// serves; empty means the publisher did not announce one.
func expectedStateHash(manifest models.Manifest, version string) string {
	entry, ok := manifest.VersionEntry(version)
	if !ok {
		return ""
	}
	if entry.PatchHash != "" {
		return entry.PatchHash
	}
	return entry.SnapshotHash
}
