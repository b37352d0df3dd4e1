// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Apply outcome values recorded in the history ledger.
const (
	ApplyResultSuccess = "success"
	ApplyResultFailure = "failure"
)

// ApplyHistoryEntry is one append-only audit row describing a single
// apply attempt, successful or not. Failed attempts are recorded after
// the transaction rolled back, so the ledger survives the failure.
type ApplyHistoryEntry struct {
	// ID is a generated UUID.
	ID string `json:"id"`

	ClientID string `json:"clientId"`
	Dataset  string `json:"dataset"`

	// FromVersion is the version the apply started from.
	// Nil for a first sync or a full resync from an unknown state.
	FromVersion *string `json:"fromVersion,omitempty"`

	// ToVersion is the version the apply targeted.
	ToVersion string `json:"toVersion"`

	// Strategy is the catch-up path that produced this attempt.
	Strategy SyncStrategy `json:"strategy"`

	// DurationMs is the wall-clock duration of the apply.
	DurationMs int64 `json:"durationMs"`

	// Result is ApplyResultSuccess or ApplyResultFailure.
	Result string `json:"result"`

	// ErrorMessage carries the failure detail for failed attempts.
	ErrorMessage *string `json:"errorMessage,omitempty"`

	AppliedAt time.Time `json:"appliedAt"`
}

// SnapshotApply is the input for replacing the local catalog with one
// published snapshot.
type SnapshotApply struct {
	// Version tags every inserted row and becomes the current version.
	Version string

	// Records is the full dataset at Version.
	Records []Record

	// ExpectedHash is the published state hash for Version. Empty skips
	// verification; a mismatch is reported, never rolled back.
	ExpectedHash string
}

// PatchApply is the input for advancing the local catalog by one patch
// hop. The hop only applies when the local version equals
// Patch.FromVersion.
type PatchApply struct {
	Patch PatchFile

	// Strategy labels the history entry: chain or compacted.
	Strategy SyncStrategy

	// ExpectedHash is the published state hash for Patch.ToVersion.
	// Empty skips verification.
	ExpectedHash string
}

// SyncResult summarizes one completed synchronization cycle.
type SyncResult struct {
	Dataset  string       `json:"dataset"`
	Strategy SyncStrategy `json:"strategy"`

	// FromVersion is empty when the cycle started from no local state.
	FromVersion string `json:"fromVersion,omitempty"`
	ToVersion   string `json:"toVersion"`

	// AppliedPatches is the number of patch hops applied (0 for noop/full).
	AppliedPatches int `json:"appliedPatches"`

	// AppliedRecords counts rows written across all hops.
	AppliedRecords int `json:"appliedRecords"`

	// RemovedRecords counts rows deleted across all hops.
	RemovedRecords int `json:"removedRecords"`

	// StateHash is the deterministic fingerprint after the cycle.
	StateHash string `json:"stateHash,omitempty"`

	// HashMismatch is set when a published expected hash did not match
	// the computed one. The applied state is kept; this is a warning.
	HashMismatch bool `json:"hashMismatch,omitempty"`

	DurationMs int64 `json:"durationMs"`
}
