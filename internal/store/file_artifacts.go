// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/models"
)

// Artifact tree layout relative to the data root.
const (
	ManifestFileName      = "manifest.json"
	VersionsIndexFileName = "versions_index.json"
)

// SnapshotPath returns the relative artifact path of a version's
// full snapshot.
func SnapshotPath(version string) string {
	return "versions/" + version + ".snapshot.json"
}

// PatchPath returns the relative artifact path of the incremental
// patch bridging from -> to.
func PatchPath(from, to string) string {
	return "patches/" + to + ".from-" + from + ".patch.json"
}

// CompactedPatchPath returns the relative artifact path of the
// compacted patch bridging from -> to in one hop.
func CompactedPatchPath(from, to string) string {
	return "compacted/" + to + ".from-" + from + ".compacted.json"
}

// ArtifactFileStore serves and publishes sync artifacts under one data
// root directory: manifest.json at the top, snapshots under versions/,
// patches under patches/ and compacted/.
//
// It implements [ArtifactSource] for the server's read path and carries
// the write methods the publish pipeline uses. The manifest is cached
// per store instance, keyed by a content fingerprint of the file, so
// repeated status requests do not re-read and re-parse it.
type ArtifactFileStore struct {
	root   string
	logger *logger.Logger

	mu                  sync.Mutex
	manifestFingerprint string
	manifest            models.Manifest
	haveManifest        bool
}

// NewArtifactFileStore opens an artifact store rooted at dataRoot.
// The directory does not have to exist yet; the pipeline creates it on
// first write.
func NewArtifactFileStore(dataRoot string, logger *logger.Logger) *ArtifactFileStore {
	return &ArtifactFileStore{
		root:   dataRoot,
		logger: logger,
	}
}

// ReadManifest returns the published manifest, parsing the file only
// when its fingerprint changed since the last read.
func (a *ArtifactFileStore) ReadManifest(ctx context.Context) (models.Manifest, error) {
	log := logger.FromContext(ctx)

	path := filepath.Join(a.root, ManifestFileName)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Manifest{}, ErrManifestMissing
		}
		return models.Manifest{}, fmt.Errorf("stat manifest file: %w", err)
	}

	// mtime plus size is the filesystem stand-in for an object-store
	// ETag. Good enough to skip re-parsing between publishes.
	fingerprint := fmt.Sprintf("%d:%d", info.ModTime().UnixNano(), info.Size())

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.haveManifest && a.manifestFingerprint == fingerprint {
		return a.manifest, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Manifest{}, ErrManifestMissing
		}
		return models.Manifest{}, fmt.Errorf("read manifest file: %w", err)
	}

	var manifest models.Manifest
	if err = json.Unmarshal(data, &manifest); err != nil {
		return models.Manifest{}, fmt.Errorf("decode manifest file: %w", err)
	}

	a.manifest = manifest
	a.manifestFingerprint = fingerprint
	a.haveManifest = true

	log.Debug().
		Str("func", "ArtifactFileStore.ReadManifest").
		Str("dataset", manifest.Dataset).
		Str("latest_version", manifest.LatestVersion).
		Msg("manifest reloaded from disk")

	return manifest, nil
}

// ReadPatch loads one patch payload, incremental or compacted, by its
// manifest-relative path.
func (a *ArtifactFileStore) ReadPatch(_ context.Context, relPath string) (models.PatchFile, error) {
	path, err := a.resolve(relPath)
	if err != nil {
		return models.PatchFile{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.PatchFile{}, fmt.Errorf("%w: %s", ErrPatchFileMissing, relPath)
		}
		return models.PatchFile{}, fmt.Errorf("read patch file %s: %w", relPath, err)
	}

	var patch models.PatchFile
	if err = json.Unmarshal(data, &patch); err != nil {
		return models.PatchFile{}, fmt.Errorf("decode patch file %s: %w", relPath, err)
	}

	return patch, nil
}

// ReadSnapshotRecords loads one snapshot payload by its
// manifest-relative path. Snapshot files are a plain JSON array of
// records.
func (a *ArtifactFileStore) ReadSnapshotRecords(_ context.Context, relPath string) ([]models.Record, error) {
	path, err := a.resolve(relPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotFileMissing, relPath)
		}
		return nil, fmt.Errorf("read snapshot file %s: %w", relPath, err)
	}

	var records []models.Record
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot file %s: %w", relPath, err)
	}

	return records, nil
}

// ReadArtifact returns the raw bytes of one artifact for pass-through
// serving. The payload is not decoded; clients validate what they fetch.
func (a *ArtifactFileStore) ReadArtifact(_ context.Context, relPath string) ([]byte, error) {
	path, err := a.resolve(relPath)
	if err != nil {
		return nil, err
	}

	// Directories read as missing, same as ArtifactExists reports them.
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, relPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, relPath)
		}
		return nil, fmt.Errorf("read artifact file %s: %w", relPath, err)
	}

	return data, nil
}

// ArtifactExists reports whether the artifact at relPath is present.
func (a *ArtifactFileStore) ArtifactExists(relPath string) bool {
	path, err := a.resolve(relPath)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteManifest publishes the manifest. Written last by the pipeline so
// readers never see it reference artifacts that do not exist yet.
func (a *ArtifactFileStore) WriteManifest(_ context.Context, manifest models.Manifest) error {
	return a.writeJSON(ManifestFileName, manifest)
}

// WriteSnapshot publishes one snapshot as a plain JSON array of records.
func (a *ArtifactFileStore) WriteSnapshot(_ context.Context, relPath string, records []models.Record) error {
	return a.writeJSON(relPath, records)
}

// WritePatch publishes one patch payload, incremental or compacted.
func (a *ArtifactFileStore) WritePatch(_ context.Context, relPath string, patch models.PatchFile) error {
	return a.writeJSON(relPath, patch)
}

// ReadVersionsIndex loads the publisher's version inventory. A missing
// file yields an empty index for the given dataset, the state before
// the first publish.
func (a *ArtifactFileStore) ReadVersionsIndex(_ context.Context, dataset string) (models.VersionsIndex, error) {
	index := models.VersionsIndex{
		Dataset:          dataset,
		Versions:         []models.DatasetVersion{},
		CompactedPatches: []models.CompactedPatch{},
	}

	data, err := os.ReadFile(filepath.Join(a.root, VersionsIndexFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return index, nil
		}
		return models.VersionsIndex{}, fmt.Errorf("read versions index: %w", err)
	}

	if err = json.Unmarshal(data, &index); err != nil {
		return models.VersionsIndex{}, fmt.Errorf("decode versions index: %w", err)
	}

	if index.Dataset == "" {
		index.Dataset = dataset
	}
	if index.Versions == nil {
		index.Versions = []models.DatasetVersion{}
	}
	if index.CompactedPatches == nil {
		index.CompactedPatches = []models.CompactedPatch{}
	}

	return index, nil
}

// WriteVersionsIndex stores the publisher's version inventory.
func (a *ArtifactFileStore) WriteVersionsIndex(_ context.Context, index models.VersionsIndex) error {
	return a.writeJSON(VersionsIndexFileName, index)
}

// resolve maps a manifest-relative path onto the data root. Paths that
// would escape the root are reported as missing rather than rejected
// with a distinct error, so probing requests learn nothing about the
// filesystem above it.
func (a *ArtifactFileStore) resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: %s", ErrArtifactMissing, relPath)
	}
	return filepath.Join(a.root, cleaned), nil
}

func (a *ArtifactFileStore) writeJSON(relPath string, payload any) error {
	path, err := a.resolve(relPath)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return fmt.Errorf("create artifact dir: %w", mkErr)
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode artifact %s: %w", relPath, err)
	}

	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", relPath, err)
	}

	return nil
}
