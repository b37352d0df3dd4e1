package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/cardsync/internal/config"
	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/utils"
	"github.com/MKhiriev/cardsync/internal/validators"
	"github.com/MKhiriev/cardsync/models"
)

type httpArtifactClient struct {
	client    *utils.HTTPClient
	validator validators.Validator

	logger *logger.Logger
}

// NewHTTPArtifactClient constructs an HTTP/REST implementation of
// [ArtifactClient]. It normalises and validates the base URL from
// adapterCfg.BaseURL and configures the underlying HTTP client with the
// resolved base URL and request timeout. A timeout mid-fetch is treated
// like any other fetch failure; nothing is applied locally.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed
// as a valid URL.
func NewHTTPArtifactClient(adapterCfg config.ClientAdapter, logger *logger.Logger) (ArtifactClient, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid artifact server base url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.SetBaseURL(baseURL).SetTimeout(adapterCfg.RequestTimeout)

	return &httpArtifactClient{
		client:    client,
		validator: validators.NewArtifactValidator(),
		logger:    logger,
	}, nil
}

// normalizeBaseURL turns a configured address into a clean base URL.
// A bare host:port gets an http scheme, and a trailing slash is dropped
// so request paths can always start with "/".
func normalizeBaseURL(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	if addr == "" {
		return "", errors.New("base url is not set")
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	parsed, err := url.Parse(addr)
	if err != nil {
		return "", err
	}
	if parsed.Host == "" || parsed.Scheme == "" {
		return "", errors.New("base url needs a scheme and a host")
	}

	return strings.TrimRight(parsed.String(), "/"), nil
}

// GetManifest implements [ArtifactClient]. It GETs /sync/manifest,
// decodes the body and validates it strictly: a manifest missing its
// latest version or version entries is a fetch failure, never a
// silently defaulted value.
func (h *httpArtifactClient) GetManifest(ctx context.Context) (models.Manifest, error) {
	log := logger.FromContext(ctx)

	resp, err := h.client.R().SetContext(ctx).Get("/sync/manifest")
	if err != nil {
		return models.Manifest{}, fmt.Errorf("%w: manifest request: %w", ErrFetchFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Manifest{}, err
	}

	var manifest models.Manifest
	if err = json.Unmarshal(resp.Body(), &manifest); err != nil {
		return models.Manifest{}, fmt.Errorf("%w: decode manifest: %w", ErrFetchFailed, err)
	}
	if err = h.validator.Validate(ctx, manifest); err != nil {
		return models.Manifest{}, fmt.Errorf("%w: validate manifest: %w", ErrFetchFailed, err)
	}

	log.Debug().
		Str("func", "httpArtifactClient.GetManifest").
		Str("dataset", manifest.Dataset).
		Str("latest_version", manifest.LatestVersion).
		Int("versions", len(manifest.Versions)).
		Msg("manifest fetched")

	return manifest, nil
}

// GetPatch implements [ArtifactClient]. It GETs the raw patch artifact
// at /artifacts/<relPath> and validates the decoded payload.
func (h *httpArtifactClient) GetPatch(ctx context.Context, relPath string) (models.PatchFile, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/artifacts/" + relPath)
	if err != nil {
		return models.PatchFile{}, fmt.Errorf("%w: patch request %s: %w", ErrFetchFailed, relPath, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PatchFile{}, err
	}

	var patch models.PatchFile
	if err = json.Unmarshal(resp.Body(), &patch); err != nil {
		return models.PatchFile{}, fmt.Errorf("%w: decode patch %s: %w", ErrFetchFailed, relPath, err)
	}
	if err = h.validator.Validate(ctx, patch); err != nil {
		return models.PatchFile{}, fmt.Errorf("%w: validate patch %s: %w", ErrFetchFailed, relPath, err)
	}

	return patch, nil
}

// GetSnapshotRecords implements [ArtifactClient]. It GETs the raw
// snapshot artifact at /artifacts/<relPath>. Snapshot files are a plain
// JSON array of records.
func (h *httpArtifactClient) GetSnapshotRecords(ctx context.Context, relPath string) ([]models.Record, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/artifacts/" + relPath)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot request %s: %w", ErrFetchFailed, relPath, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var records []models.Record
	if err = json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot %s: %w", ErrFetchFailed, relPath, err)
	}
	if err = h.validator.Validate(ctx, records); err != nil {
		return nil, fmt.Errorf("%w: validate snapshot %s: %w", ErrFetchFailed, relPath, err)
	}

	return records, nil
}

// GetServerStatus implements [ArtifactClient]. It GETs /sync/status
// with the client's current version, empty for a never-synced client.
func (h *httpArtifactClient) GetServerStatus(ctx context.Context, current string) (models.ServerSyncStatus, error) {
	req := h.client.R().SetContext(ctx)
	if current != "" {
		req.SetQueryParam("current", current)
	}

	resp, err := req.Get("/sync/status")
	if err != nil {
		return models.ServerSyncStatus{}, fmt.Errorf("%w: status request: %w", ErrFetchFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ServerSyncStatus{}, err
	}

	var status models.ServerSyncStatus
	if err = json.Unmarshal(resp.Body(), &status); err != nil {
		return models.ServerSyncStatus{}, fmt.Errorf("%w: decode status: %w", ErrFetchFailed, err)
	}

	return status, nil
}
