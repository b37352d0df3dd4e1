// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Default synchronization policy values applied when a manifest
// carries no syncPolicy block. Publishers may override any of them.
const (
	DefaultCompactedThresholdMissed = 5
	DefaultForceFullThresholdMissed = 21
	DefaultCompactedRetentionDays   = 21
	DefaultExpectedPublishTimeUTC   = "22:30"
	DefaultRefreshUnlockLagMinutes  = 60
)

// Manifest is the published description of a dataset: its complete
// ordered version history, the latest version pointer, optional
// compacted patches and the synchronization policy.
//
// The manifest is the single source of truth for version ordering.
// Version strings are opaque identifiers; clients must never compare
// them lexically and instead rely on their position in Versions.
type Manifest struct {
	// Dataset is the logical dataset name, e.g. "default_cards".
	Dataset string `json:"dataset"`

	// LatestVersion is the version every client should converge to.
	LatestVersion string `json:"latestVersion"`

	// LatestSnapshot is the relative path of the snapshot for
	// LatestVersion, kept at the top level as a fallback for clients
	// that do not walk the versions array.
	LatestSnapshot string `json:"latestSnapshot,omitempty"`

	// LatestHash is the expected state hash after applying LatestVersion.
	LatestHash string `json:"latestHash,omitempty"`

	// SyncPolicy holds publisher-tuned thresholds. Nil means defaults.
	SyncPolicy *SyncPolicy `json:"syncPolicy,omitempty"`

	// Versions is the full publish history in publish order.
	// Array position defines version ordering.
	Versions []DatasetVersion `json:"versions"`

	// CompactedPatches lists pre-merged multi-version patches
	// that let a lagging client catch up in a single hop.
	CompactedPatches []CompactedPatch `json:"compactedPatches,omitempty"`

	// GeneratedAt is the manifest build timestamp (RFC 3339).
	GeneratedAt string `json:"generatedAt,omitempty"`
}

// DatasetVersion describes one published version of the dataset.
// Entries are immutable once published.
type DatasetVersion struct {
	// Version is the opaque version identifier, e.g. "v251101".
	Version string `json:"version"`

	// Snapshot is the relative path of the full snapshot file.
	Snapshot string `json:"snapshot,omitempty"`

	// SnapshotHash is the expected state hash after applying Snapshot.
	SnapshotHash string `json:"snapshotHash,omitempty"`

	// PatchFromPrevious is the relative path of the incremental patch
	// from the immediately preceding version. Empty means no patch was
	// published for this hop and a chain through it is broken.
	PatchFromPrevious string `json:"patchFromPrevious,omitempty"`

	// PatchHash is the expected state hash after applying PatchFromPrevious.
	PatchHash string `json:"patchHash,omitempty"`

	// RowCount is the number of records in the snapshot.
	RowCount int `json:"rowCount,omitempty"`

	// CreatedAt is the publish timestamp (RFC 3339).
	CreatedAt string `json:"createdAt,omitempty"`
}

// SyncPolicy carries the publisher-controlled thresholds that drive
// strategy selection and refresh gating on clients.
type SyncPolicy struct {
	// CompactedThresholdMissed is the minimum number of missed versions
	// at which a compacted patch is preferred over a chain.
	CompactedThresholdMissed int `json:"compactedThresholdMissed"`

	// ForceFullThresholdMissed is the number of missed versions at which
	// clients must fall back to a full snapshot resync.
	ForceFullThresholdMissed int `json:"forceFullThresholdMissed"`

	// CompactedRetentionDays bounds how far back compacted patches
	// are generated by the publisher.
	CompactedRetentionDays int `json:"compactedRetentionDays"`

	// ExpectedPublishTimeUTC is the daily publish time ("HH:MM", UTC).
	ExpectedPublishTimeUTC string `json:"expectedPublishTimeUtc"`

	// RefreshUnlockLagMinutes is the advisory delay after the expected
	// publish time before clients should consider refreshing again.
	RefreshUnlockLagMinutes int `json:"refreshUnlockLagMinutes"`
}

// CompactedPatch references a pre-merged patch spanning several versions.
type CompactedPatch struct {
	FromVersion string `json:"fromVersion"`
	ToVersion   string `json:"toVersion"`
	Path        string `json:"path"`
	PatchHash   string `json:"patchHash,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// VersionsIndex is the publisher's working inventory of published
// versions. It lives next to the artifacts as versions_index.json and
// is the input manifests are rebuilt from.
type VersionsIndex struct {
	Dataset          string           `json:"dataset"`
	Versions         []DatasetVersion `json:"versions"`
	CompactedPatches []CompactedPatch `json:"compactedPatches"`
}

// DefaultSyncPolicy returns the policy used when a manifest has none.
func DefaultSyncPolicy() SyncPolicy {
	return SyncPolicy{
		CompactedThresholdMissed: DefaultCompactedThresholdMissed,
		ForceFullThresholdMissed: DefaultForceFullThresholdMissed,
		CompactedRetentionDays:   DefaultCompactedRetentionDays,
		ExpectedPublishTimeUTC:   DefaultExpectedPublishTimeUTC,
		RefreshUnlockLagMinutes:  DefaultRefreshUnlockLagMinutes,
	}
}

// EffectivePolicy returns the manifest's policy with defaults applied
// for a missing block. Individual zero fields inside a present block
// are kept as published.
func (m Manifest) EffectivePolicy() SyncPolicy {
	if m.SyncPolicy == nil {
		return DefaultSyncPolicy()
	}
	return *m.SyncPolicy
}

// VersionIndex returns the position of version in the publish order,
// or -1 when the manifest does not know it.
func (m Manifest) VersionIndex(version string) int {
	for i := range m.Versions {
		if m.Versions[i].Version == version {
			return i
		}
	}
	return -1
}

// VersionEntry returns the manifest entry for version.
func (m Manifest) VersionEntry(version string) (DatasetVersion, bool) {
	if i := m.VersionIndex(version); i >= 0 {
		return m.Versions[i], true
	}
	return DatasetVersion{}, false
}

// CompactedEntry returns the compacted patch covering exactly
// the span from -> to.
func (m Manifest) CompactedEntry(from, to string) (CompactedPatch, bool) {
	for i := range m.CompactedPatches {
		entry := m.CompactedPatches[i]
		if entry.FromVersion == from && entry.ToVersion == to {
			return entry, true
		}
	}
	return CompactedPatch{}, false
}
