// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/store"
	"github.com/MKhiriev/cardsync/internal/utils"
	"github.com/MKhiriev/cardsync/models"
)

// ErrNoVersions means a manifest build was attempted on an index
// without a single published version.
var ErrNoVersions = errors.New("cannot build manifest without at least one version")

// Pipeline builds and rebuilds the published artifact tree for one
// dataset: snapshots, incremental patches, compacted patches, the
// versions index and the manifest.
type Pipeline struct {
	artifacts *store.ArtifactFileStore
	dataset   string
	logger    *logger.Logger

	now func() time.Time
}

// NewPipeline returns a [Pipeline] publishing into the given artifact store.
func NewPipeline(artifacts *store.ArtifactFileStore, dataset string, logger *logger.Logger) *Pipeline {
	return &Pipeline{
		artifacts: artifacts,
		dataset:   dataset,
		logger:    logger,
		now:       utils.NowUTC,
	}
}

// VersionFromDate derives the dataset version string for a publish
// date, e.g. 2026-08-25 becomes "v260825". Publish order and lexical
// order coincide under this scheme.
func VersionFromDate(t time.Time) string {
	year, month, day := t.UTC().Date()
	return fmt.Sprintf("v%02d%02d%02d", year%100, int(month), day)
}

// PatchStats summarizes one generated patch artifact.
type PatchStats struct {
	Path      string `json:"path"`
	PatchHash string `json:"patchHash"`
	Added     int    `json:"added"`
	Updated   int    `json:"updated"`
	Removed   int    `json:"removed"`
}

// RebuildStats counts the artifacts a rebuild regenerated.
type RebuildStats struct {
	Incrementals int `json:"incrementals"`
	Compacted    int `json:"compacted"`
}

// BuildDailyResult summarizes one full publish cycle.
type BuildDailyResult struct {
	Dataset            string `json:"dataset"`
	Version            string `json:"version"`
	Rows               int    `json:"rows"`
	SnapshotHash       string `json:"snapshotHash"`
	IncrementalPatches int    `json:"incrementalPatches"`
	CompactedPatches   int    `json:"compactedPatches"`
}

// Ingest normalizes one source dump into the snapshot for version and
// returns the version entry describing it. Only the snapshot file is
// written; folding the entry into the index is the caller's step.
func (p *Pipeline) Ingest(ctx context.Context, sourcePath, version string) (models.DatasetVersion, error) {
	records, err := LoadSource(sourcePath)
	if err != nil {
		return models.DatasetVersion{}, err
	}

	snapshotRel := store.SnapshotPath(version)
	if err = p.artifacts.WriteSnapshot(ctx, snapshotRel, records); err != nil {
		return models.DatasetVersion{}, err
	}

	entry := models.DatasetVersion{
		Version:      version,
		Snapshot:     snapshotRel,
		SnapshotHash: store.ComputeStateHashForRows(p.dataset, records),
		RowCount:     len(records),
		CreatedAt:    utils.FormatTime(p.now()),
	}

	p.logger.Info().
		Str("func", "Pipeline.Ingest").
		Str("version", version).
		Int("rows", entry.RowCount).
		Msg("snapshot ingested")

	return entry, nil
}

// Diff builds the incremental patch transforming fromVersion into
// toVersion and writes it under patches/.
func (p *Pipeline) Diff(ctx context.Context, fromVersion, toVersion, fromSnapshotRel, toSnapshotRel string) (PatchStats, error) {
	patchRel := store.PatchPath(fromVersion, toVersion)

	patch, err := p.buildPatch(ctx, fromVersion, toVersion, fromSnapshotRel, toSnapshotRel, patchRel)
	if err != nil {
		return PatchStats{}, err
	}

	return PatchStats{
		Path:      patchRel,
		PatchHash: patch.PatchHash,
		Added:     len(patch.Added),
		Updated:   len(patch.Updated),
		Removed:   len(patch.Removed),
	}, nil
}

// Compact builds one pre-merged patch covering the whole
// fromVersion..toVersion span, writes it under compacted/ and returns
// its manifest entry.
func (p *Pipeline) Compact(ctx context.Context, fromVersion, toVersion, fromSnapshotRel, toSnapshotRel string) (models.CompactedPatch, error) {
	patchRel := store.CompactedPatchPath(fromVersion, toVersion)

	patch, err := p.buildPatch(ctx, fromVersion, toVersion, fromSnapshotRel, toSnapshotRel, patchRel)
	if err != nil {
		return models.CompactedPatch{}, err
	}

	return models.CompactedPatch{
		FromVersion: fromVersion,
		ToVersion:   toVersion,
		Path:        patchRel,
		PatchHash:   patch.PatchHash,
		CreatedAt:   utils.FormatTime(p.now()),
	}, nil
}

// RebuildArtifacts regenerates every derived artifact from the index's
// snapshots: incremental patches for consecutive version pairs and
// compacted patches from the versions inside the retention window to
// the latest. Existing patch links are discarded first, so every link
// in the rebuilt index points at a file this rebuild actually wrote.
func (p *Pipeline) RebuildArtifacts(ctx context.Context, index *models.VersionsIndex) (RebuildStats, error) {
	sortVersions(index.Versions)

	if len(index.Versions) == 0 {
		index.CompactedPatches = []models.CompactedPatch{}
		return RebuildStats{}, nil
	}

	for i := range index.Versions {
		index.Versions[i].PatchFromPrevious = ""
		index.Versions[i].PatchHash = ""
	}

	stats := RebuildStats{}
	for i := 1; i < len(index.Versions); i++ {
		previous := index.Versions[i-1]
		current := &index.Versions[i]

		patch, err := p.Diff(ctx, previous.Version, current.Version, previous.Snapshot, current.Snapshot)
		if err != nil {
			return RebuildStats{}, err
		}

		current.PatchFromPrevious = patch.Path
		current.PatchHash = patch.PatchHash
		stats.Incrementals++
	}

	latest := index.Versions[len(index.Versions)-1]
	retention := models.DefaultSyncPolicy().CompactedRetentionDays

	start := len(index.Versions) - (retention + 1)
	if start < 0 {
		start = 0
	}

	compacted := make([]models.CompactedPatch, 0)
	for _, from := range index.Versions[start : len(index.Versions)-1] {
		entry, err := p.Compact(ctx, from.Version, latest.Version, from.Snapshot, latest.Snapshot)
		if err != nil {
			return RebuildStats{}, err
		}
		compacted = append(compacted, entry)
	}

	index.CompactedPatches = compacted
	stats.Compacted = len(compacted)

	p.logger.Info().
		Str("func", "Pipeline.RebuildArtifacts").
		Int("incrementals", stats.Incrementals).
		Int("compacted", stats.Compacted).
		Msg("patch artifacts rebuilt")

	return stats, nil
}

// BuildManifest assembles the manifest from the index. The latest
// version is the last in publish order; the default sync policy is
// embedded so clients and server agree on thresholds.
func (p *Pipeline) BuildManifest(index models.VersionsIndex) (models.Manifest, error) {
	versions := make([]models.DatasetVersion, len(index.Versions))
	copy(versions, index.Versions)
	sortVersions(versions)

	if len(versions) == 0 {
		return models.Manifest{}, ErrNoVersions
	}

	dataset := index.Dataset
	if dataset == "" {
		dataset = p.dataset
	}

	latest := versions[len(versions)-1]
	policy := models.DefaultSyncPolicy()

	return models.Manifest{
		Dataset:          dataset,
		LatestVersion:    latest.Version,
		LatestSnapshot:   latest.Snapshot,
		LatestHash:       latest.SnapshotHash,
		SyncPolicy:       &policy,
		Versions:         versions,
		CompactedPatches: index.CompactedPatches,
		GeneratedAt:      utils.FormatTime(p.now()),
	}, nil
}

// BuildDaily runs the full publish cycle: ingest the dump as version
// (today's by default), fold it into the index, rebuild every patch
// artifact, store the index and publish the manifest last.
func (p *Pipeline) BuildDaily(ctx context.Context, sourcePath, version string) (BuildDailyResult, error) {
	if version == "" {
		version = VersionFromDate(p.now())
	}

	index, err := p.artifacts.ReadVersionsIndex(ctx, p.dataset)
	if err != nil {
		return BuildDailyResult{}, err
	}

	entry, err := p.Ingest(ctx, sourcePath, version)
	if err != nil {
		return BuildDailyResult{}, err
	}

	upsertVersion(&index, entry)

	stats, err := p.RebuildArtifacts(ctx, &index)
	if err != nil {
		return BuildDailyResult{}, err
	}

	if err = p.artifacts.WriteVersionsIndex(ctx, index); err != nil {
		return BuildDailyResult{}, err
	}

	manifest, err := p.BuildManifest(index)
	if err != nil {
		return BuildDailyResult{}, err
	}

	if err = p.artifacts.WriteManifest(ctx, manifest); err != nil {
		return BuildDailyResult{}, err
	}

	p.logger.Info().
		Str("func", "Pipeline.BuildDaily").
		Str("dataset", manifest.Dataset).
		Str("version", version).
		Int("rows", entry.RowCount).
		Msg("daily build published")

	return BuildDailyResult{
		Dataset:            manifest.Dataset,
		Version:            version,
		Rows:               entry.RowCount,
		SnapshotHash:       entry.SnapshotHash,
		IncrementalPatches: stats.Incrementals,
		CompactedPatches:   stats.Compacted,
	}, nil
}

// PublishManifest rebuilds the manifest from the stored versions index
// and writes it. Covers the case where the index was edited or
// artifacts were rebuilt out of band.
func (p *Pipeline) PublishManifest(ctx context.Context) (models.Manifest, error) {
	index, err := p.artifacts.ReadVersionsIndex(ctx, p.dataset)
	if err != nil {
		return models.Manifest{}, err
	}

	manifest, err := p.BuildManifest(index)
	if err != nil {
		return models.Manifest{}, err
	}

	if err = p.artifacts.WriteManifest(ctx, manifest); err != nil {
		return models.Manifest{}, err
	}

	return manifest, nil
}

// buildPatch diffs two published snapshots and writes the patch payload
// at patchRel. The patch hash is the state hash of the destination
// snapshot, which is what a client verifies after applying the patch.
func (p *Pipeline) buildPatch(ctx context.Context, fromVersion, toVersion, fromSnapshotRel, toSnapshotRel, patchRel string) (models.PatchFile, error) {
	oldRows, err := p.artifacts.ReadSnapshotRecords(ctx, fromSnapshotRel)
	if err != nil {
		return models.PatchFile{}, fmt.Errorf("read snapshot %s: %w", fromSnapshotRel, err)
	}

	newRows, err := p.artifacts.ReadSnapshotRecords(ctx, toSnapshotRel)
	if err != nil {
		return models.PatchFile{}, fmt.Errorf("read snapshot %s: %w", toSnapshotRel, err)
	}

	added, updated, removed := diffRecords(oldRows, newRows)

	patch := models.PatchFile{
		FromVersion: fromVersion,
		ToVersion:   toVersion,
		Added:       added,
		Updated:     updated,
		Removed:     removed,
		PatchHash:   store.ComputeStateHashForRows(p.dataset, newRows),
	}

	if err = p.artifacts.WritePatch(ctx, patchRel, patch); err != nil {
		return models.PatchFile{}, err
	}

	return patch, nil
}

// diffRecords splits the difference between two row sets into added
// (new-only), updated (shared but changed) and removed (old-only ids),
// each sorted by printing id.
func diffRecords(oldRows, newRows []models.Record) (added, updated []models.Record, removed []string) {
	oldByID := make(map[string]models.Record, len(oldRows))
	for _, row := range oldRows {
		oldByID[row.PrintingID] = row
	}
	newByID := make(map[string]models.Record, len(newRows))
	for _, row := range newRows {
		newByID[row.PrintingID] = row
	}

	added = make([]models.Record, 0)
	updated = make([]models.Record, 0)
	removed = make([]string, 0)

	for id, row := range newByID {
		old, ok := oldByID[id]
		switch {
		case !ok:
			added = append(added, row)
		case !old.Equal(row):
			updated = append(updated, row)
		}
	}

	for id := range oldByID {
		if _, ok := newByID[id]; !ok {
			removed = append(removed, id)
		}
	}

	sort.Slice(added, func(i, j int) bool { return added[i].PrintingID < added[j].PrintingID })
	sort.Slice(updated, func(i, j int) bool { return updated[i].PrintingID < updated[j].PrintingID })
	sort.Strings(removed)

	return added, updated, removed
}

// sortVersions orders entries by ascending version string, the publish
// order for vYYMMDD versions.
func sortVersions(versions []models.DatasetVersion) {
	sort.SliceStable(versions, func(i, j int) bool {
		return strings.ToLower(versions[i].Version) < strings.ToLower(versions[j].Version)
	})
}

// upsertVersion replaces or appends one version entry and restores
// publish order.
func upsertVersion(index *models.VersionsIndex, entry models.DatasetVersion) {
	versions := make([]models.DatasetVersion, 0, len(index.Versions)+1)
	for _, row := range index.Versions {
		if row.Version != entry.Version {
			versions = append(versions, row)
		}
	}

	versions = append(versions, entry)
	sortVersions(versions)
	index.Versions = versions
}
