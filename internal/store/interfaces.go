package store

import (
	"context"

	"github.com/MKhiriev/cardsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/artifact_source_mock.go -package=mock

// ArtifactSource reads published sync artifacts for the dataset the
// artifact server serves.
type ArtifactSource interface {
	ReadManifest(ctx context.Context) (models.Manifest, error)
	ReadPatch(ctx context.Context, relPath string) (models.PatchFile, error)
	ReadSnapshotRecords(ctx context.Context, relPath string) ([]models.Record, error)

	// ReadArtifact returns the raw bytes of one published artifact for
	// pass-through serving, without decoding or validating the payload.
	ReadArtifact(ctx context.Context, relPath string) ([]byte, error)

	ArtifactExists(relPath string) bool
}
