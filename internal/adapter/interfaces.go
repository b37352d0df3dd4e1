// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for fetching published
// sync artifacts from the artifact server.
//
// The primary abstraction is [ArtifactClient], which decouples the sync
// orchestrator from the underlying protocol. The package ships an
// HTTP/REST implementation ([NewHTTPArtifactClient]) built on resty.
//
// Every payload is strictly validated before it is returned: a manifest
// without a latest version, a patch without its version pair or a record
// without a printing id aborts the fetch. Callers match transport and
// validation failures alike with [errors.Is] against [ErrFetchFailed].
package adapter

import (
	"context"

	"github.com/MKhiriev/cardsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/artifact_client_mock.go -package=mock

// ArtifactClient defines transport-agnostic access to the published
// artifact tree. Implementations are responsible for serialisation,
// payload validation, and mapping transport-level failures to
// [ErrFetchFailed].
type ArtifactClient interface {
	// GetManifest fetches and validates the published manifest, the
	// single source of truth for version ordering and sync policy.
	// Returns an error wrapping [ErrFetchFailed] if the request fails,
	// the server responds with a non-2xx status, or the payload does
	// not validate.
	GetManifest(ctx context.Context) (models.Manifest, error)

	// GetPatch fetches one patch payload, incremental or compacted, by
	// its manifest-relative path. The patch is validated before it is
	// returned. Returns an error wrapping [ErrFetchFailed] on any
	// transport or validation failure.
	GetPatch(ctx context.Context, relPath string) (models.PatchFile, error)

	// GetSnapshotRecords fetches one full snapshot by its
	// manifest-relative path. Snapshot payloads are a plain JSON array
	// of records; each record is validated. Returns an error wrapping
	// [ErrFetchFailed] on any transport or validation failure.
	GetSnapshotRecords(ctx context.Context, relPath string) ([]models.Record, error)

	// GetServerStatus asks the server how a client at version current
	// relates to the latest publish. current may be empty for a client
	// that has never synced. The server runs the same strategy
	// selection as this client, so the hint is advisory confirmation,
	// not an instruction.
	GetServerStatus(ctx context.Context, current string) (models.ServerSyncStatus, error)
}
