// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/store"
	"github.com/MKhiriev/cardsync/internal/validators"
	"github.com/MKhiriev/cardsync/models"
)

// syncService answers the artifact server's endpoints from the published
// data root. It is read-only and stateless: every request re-resolves
// against the current manifest, so a pipeline publish becomes visible
// without a restart.
type syncService struct {
	source    store.ArtifactSource
	selector  StrategyService
	validator validators.Validator

	logger *logger.Logger
}

func NewSyncService(source store.ArtifactSource, logger *logger.Logger) SyncService {
	return &syncService{
		source:    source,
		selector:  NewStrategyService(),
		validator: validators.NewArtifactValidator(),
		logger:    logger,
	}
}

func (s *syncService) Health(ctx context.Context) (models.HealthResponse, error) {
	manifest, err := s.manifest(ctx)
	if err != nil {
		return models.HealthResponse{}, err
	}

	return models.HealthResponse{
		OK:            true,
		Dataset:       manifest.Dataset,
		LatestVersion: manifest.LatestVersion,
		GeneratedAt:   manifest.GeneratedAt,
	}, nil
}

// Status runs the same strategy selection a client would run so the
// strategyHint both sides compute is always identical.
func (s *syncService) Status(ctx context.Context, current string) (models.ServerSyncStatus, error) {
	manifest, err := s.manifest(ctx)
	if err != nil {
		return models.ServerSyncStatus{}, err
	}

	var local *string
	if current != "" {
		local = &current
	}

	decision, err := s.selector.SelectStrategy(ctx, local, manifest)
	if err != nil {
		return models.ServerSyncStatus{}, fmt.Errorf("select strategy: %w", err)
	}

	return models.ServerSyncStatus{
		Dataset:        manifest.Dataset,
		LatestVersion:  manifest.LatestVersion,
		LatestHash:     manifest.LatestHash,
		CurrentVersion: current,
		NeedsSync:      current != manifest.LatestVersion,
		StrategyHint:   decision.Strategy,
		MissedCount:    decision.MissedCount,
		Policy:         manifest.EffectivePolicy(),
	}, nil
}

// PlanPatch resolves one patch request into a servable plan. An empty to
// targets the manifest's latest version. The strategy is always selected
// against latest, exactly as clients do, so the server never hands a
// chain to someone who should resync from a snapshot.
func (s *syncService) PlanPatch(ctx context.Context, from, to string, expand bool) (PatchPlan, error) {
	if from == "" {
		return PatchPlan{}, ErrMissingFromVersion
	}

	manifest, err := s.manifest(ctx)
	if err != nil {
		return PatchPlan{}, err
	}
	if to == "" {
		to = manifest.LatestVersion
	}

	decision, err := s.selector.SelectStrategy(ctx, &from, manifest)
	if err != nil {
		return PatchPlan{}, fmt.Errorf("select strategy: %w", err)
	}

	s.logger.Debug().
		Str("func", "syncService.PlanPatch").
		Str("from", from).
		Str("to", to).
		Str("strategy", string(decision.Strategy)).
		Int("missed", decision.MissedCount).
		Msg("patch request planned")

	switch decision.Strategy {
	case models.StrategyFull:
		return PatchPlan{
			Mode:          models.PatchModeFullRequired,
			LatestVersion: manifest.LatestVersion,
		}, nil

	case models.StrategyNoop:
		return PatchPlan{Mode: models.PatchModeNoop, FromVersion: from, ToVersion: to}, nil

	case models.StrategyCompacted:
		// The pre-merged span has to match the requested one exactly;
		// for a custom to the chain below takes over instead.
		entry, ok := manifest.CompactedEntry(from, to)
		if ok && s.source.ArtifactExists(entry.Path) {
			patch, readErr := s.source.ReadPatch(ctx, entry.Path)
			if readErr != nil {
				return PatchPlan{}, fmt.Errorf("read compacted patch %s: %w", entry.Path, readErr)
			}
			return PatchPlan{
				Mode:        models.PatchModeCompacted,
				FromVersion: from,
				ToVersion:   to,
				Compacted:   &patch,
			}, nil
		}
	}

	return s.planChain(ctx, manifest, from, to, expand)
}

func (s *syncService) Snapshot(ctx context.Context, version string, includeRecords bool) (models.SnapshotInfoResponse, error) {
	manifest, err := s.manifest(ctx)
	if err != nil {
		return models.SnapshotInfoResponse{}, err
	}

	if version == "" {
		version = manifest.LatestVersion
	}

	var rel, hash string
	if entry, ok := manifest.VersionEntry(version); ok {
		rel, hash = entry.Snapshot, entry.SnapshotHash
	}
	if rel == "" {
		// Top-level fallback for manifests that only publish the latest
		// snapshot pointer.
		rel, hash = manifest.LatestSnapshot, manifest.LatestHash
	}
	if rel == "" {
		return models.SnapshotInfoResponse{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, version)
	}
	if !s.source.ArtifactExists(rel) {
		return models.SnapshotInfoResponse{}, fmt.Errorf("%w: %s", ErrSnapshotFileMissing, rel)
	}

	info := models.SnapshotInfoResponse{
		Version:      version,
		SnapshotPath: rel,
		SnapshotHash: hash,
	}
	if includeRecords {
		records, readErr := s.source.ReadSnapshotRecords(ctx, rel)
		if readErr != nil {
			return models.SnapshotInfoResponse{}, fmt.Errorf("read snapshot %s: %w", rel, readErr)
		}
		info.Records = records
	}

	return info, nil
}

// Manifest returns the validated manifest for clients that walk the
// full version history themselves.
func (s *syncService) Manifest(ctx context.Context) (models.Manifest, error) {
	return s.manifest(ctx)
}

// Artifact serves one published file verbatim. The bytes on disk are
// exactly what clients hash against, so they are never re-encoded here.
func (s *syncService) Artifact(ctx context.Context, relPath string) ([]byte, error) {
	data, err := s.source.ReadArtifact(ctx, relPath)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", relPath, err)
	}
	return data, nil
}

// manifest reads and validates the published manifest. Validation is the
// same strict check clients run, so a half-published manifest is refused
// here rather than shipped downstream.
func (s *syncService) manifest(ctx context.Context) (models.Manifest, error) {
	manifest, err := s.source.ReadManifest(ctx)
	if err != nil {
		return models.Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	if err = s.validator.Validate(ctx, manifest); err != nil {
		return models.Manifest{}, fmt.Errorf("validate manifest: %w", err)
	}
	return manifest, nil
}

func (s *syncService) planChain(ctx context.Context, manifest models.Manifest, from, to string, expand bool) (PatchPlan, error) {
	fromIdx := manifest.VersionIndex(from)
	toIdx := manifest.VersionIndex(to)
	if fromIdx < 0 || toIdx <= fromIdx {
		return PatchPlan{}, fmt.Errorf("%w: %s -> %s", ErrPatchNotFound, from, to)
	}

	paths, ok, err := chainPatchPaths(ctx, manifest, fromIdx, toIdx)
	if err != nil {
		return PatchPlan{}, err
	}
	if !ok || len(paths) == 0 {
		return PatchPlan{}, fmt.Errorf("%w: %s -> %s", ErrPatchNotFound, from, to)
	}

	plan := PatchPlan{
		Mode:        models.PatchModeChain,
		FromVersion: from,
		ToVersion:   to,
		Paths:       paths,
	}
	if !expand {
		return plan, nil
	}

	plan.Patches = make([]models.PatchFile, 0, len(paths))
	for _, rel := range paths {
		patch, readErr := s.source.ReadPatch(ctx, rel)
		if readErr != nil {
			if errors.Is(readErr, store.ErrPatchFileMissing) {
				return PatchPlan{}, fmt.Errorf("%w: %s", ErrPatchNotFound, rel)
			}
			return PatchPlan{}, fmt.Errorf("read chain patch %s: %w", rel, readErr)
		}
		plan.Patches = append(plan.Patches, patch)
	}

	return plan, nil
}
