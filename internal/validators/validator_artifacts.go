package validators

import (
	"context"
	"fmt"
	"math"

	"github.com/MKhiriev/cardsync/models"
)

const (
	FieldLatestVersion = "latestVersion"
	FieldVersions      = "versions"
	FieldFromVersion   = "fromVersion"
	FieldToVersion     = "toVersion"
	FieldRecords       = "records"
	FieldPrintingID    = "printingId"
	FieldMarketPrice   = "marketPrice"
)

type ArtifactValidator struct {
}

func NewArtifactValidator() Validator {
	return &ArtifactValidator{}
}

func (v *ArtifactValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Manifest:
		return v.validateManifest(ctx, value, fields...)
	case *models.Manifest:
		return v.validateManifest(ctx, *value, fields...)

	case models.PatchFile:
		return v.validatePatchFile(ctx, value, fields...)
	case *models.PatchFile:
		return v.validatePatchFile(ctx, *value, fields...)

	case models.Record:
		return v.validateRecord(ctx, value, fields...)
	case *models.Record:
		return v.validateRecord(ctx, *value, fields...)

	case []models.Record:
		return v.validateRecords(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// checked!
func (v *ArtifactValidator) validateManifest(ctx context.Context, manifest models.Manifest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLatestVersion, FieldVersions}
	}

	for _, f := range fields {
		switch f {
		case FieldLatestVersion:
			if manifest.LatestVersion == "" {
				return ErrMissingLatestVersion
			}
		case FieldVersions:
			if len(manifest.Versions) == 0 {
				return ErrNoVersions
			}
			for i, entry := range manifest.Versions {
				if entry.Version == "" {
					return fmt.Errorf("%w: index %d", ErrEmptyVersionEntry, i)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// checked!
func (v *ArtifactValidator) validatePatchFile(ctx context.Context, patch models.PatchFile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFromVersion, FieldToVersion, FieldRecords}
	}

	for _, f := range fields {
		switch f {
		case FieldFromVersion:
			if patch.FromVersion == "" {
				return ErrMissingFromVersion
			}
		case FieldToVersion:
			if patch.ToVersion == "" {
				return ErrMissingToVersion
			}
		case FieldRecords:
			if err := v.validateRecords(ctx, patch.Added); err != nil {
				return fmt.Errorf("added: %w", err)
			}
			if err := v.validateRecords(ctx, patch.Updated); err != nil {
				return fmt.Errorf("updated: %w", err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// checked!
func (v *ArtifactValidator) validateRecord(ctx context.Context, record models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPrintingID, FieldMarketPrice}
	}

	for _, f := range fields {
		switch f {
		case FieldPrintingID:
			if record.PrintingID == "" {
				return ErrEmptyPrintingID
			}
		case FieldMarketPrice:
			if math.IsNaN(record.MarketPrice) || math.IsInf(record.MarketPrice, 0) || record.MarketPrice < 0 {
				return ErrInvalidPrice
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ArtifactValidator) validateRecords(ctx context.Context, records []models.Record, fields ...string) error {
	for i, record := range records {
		if err := v.validateRecord(ctx, record, fields...); err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}
	}
	return nil
}
