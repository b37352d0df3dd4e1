// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/cardsync/internal/utils"
	"github.com/MKhiriev/cardsync/models"
)

// defaultHistoryLimit caps history listings when the caller passes no
// explicit limit.
const defaultHistoryLimit = 20

// Refresh gate reasons reported by GetSyncStatus.
const (
	reasonNeverSynced       = "never synced"
	reasonBehindLatest      = "behind latest"
	reasonUpToDate          = "up to date"
	reasonPublishPassed     = "new publish window passed"
	reasonServerUnavailable = "manifest unavailable"
)

// GetSyncStatus implements ClientSyncService. The server answers with
// the same strategy selection a local manifest walk would produce, so
// the status call needs one round trip and no artifact fetches. The
// refresh gate is advisory: Sync never consults it.
func (s *clientSyncService) GetSyncStatus(ctx context.Context) (models.ClientSyncStatus, error) {
	state, err := s.ledger.GetSyncState(ctx)
	if err != nil {
		return models.ClientSyncStatus{}, fmt.Errorf("read sync state: %w", err)
	}

	status := models.ClientSyncStatus{Dataset: s.dataset}
	if state != nil {
		status.LocalVersion = state.CurrentVersion
	}

	server, err := s.adapter.GetServerStatus(ctx, status.LocalVersion)
	if err != nil {
		// The status command still answers when the server is down; it
		// just cannot say anything about the published side.
		s.logger.Warn().
			Err(err).
			Str("func", "clientSyncService.GetSyncStatus").
			Msg("server status unavailable, answering from local state only")

		status.CanRefreshNow = true
		status.Reason = reasonServerUnavailable
		return status, nil
	}

	status.LatestVersion = server.LatestVersion
	status.NeedsSync = server.NeedsSync

	now := utils.NowUTC()
	switch {
	case state == nil:
		status.CanRefreshNow = true
		status.Reason = reasonNeverSynced

	case server.NeedsSync:
		status.CanRefreshNow = true
		status.Reason = reasonBehindLatest

	default:
		// Converged. Refreshing again only makes sense once the next
		// daily publish window has opened and had time to land.
		unlock := refreshUnlockAt(state.SyncedAt, server.Policy)
		if now.Before(unlock) {
			status.CanRefreshNow = false
			status.Reason = reasonUpToDate
		} else {
			status.CanRefreshNow = true
			status.Reason = reasonPublishPassed
		}
	}

	ref := now
	if state != nil && !server.NeedsSync {
		ref = state.SyncedAt
	}
	next := refreshUnlockAt(ref, server.Policy)
	if !next.After(now) {
		next = refreshUnlockAt(now, server.Policy)
	}
	status.NextExpectedPublishAt = &next

	return status, nil
}

func (s *clientSyncService) GetHistory(ctx context.Context, limit int) ([]models.ApplyHistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := s.ledger.ListApplyHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list apply history: %w", err)
	}
	return entries, nil
}

func (s *clientSyncService) GetVersions(ctx context.Context) ([]models.DatasetVersionRecord, error) {
	versions, err := s.ledger.ListDatasetVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dataset versions: %w", err)
	}
	return versions, nil
}

func (s *clientSyncService) GetTrend(ctx context.Context, printingID string, column models.PriceColumn) (models.PriceTrend, error) {
	trend, err := s.catalog.GetPriceTrend(ctx, printingID, column)
	if err != nil {
		return models.PriceTrend{}, fmt.Errorf("price trend for %s: %w", printingID, err)
	}
	return trend, nil
}

func (s *clientSyncService) GetRecords(ctx context.Context, printingIDs []string) (map[string]models.Record, error) {
	records, err := s.catalog.GetCatalogPriceRecords(ctx, printingIDs)
	if err != nil {
		return nil, fmt.Errorf("get catalog records: %w", err)
	}
	return records, nil
}

func (s *clientSyncService) Reset(ctx context.Context) error {
	if err := s.ledger.Reset(ctx); err != nil {
		return fmt.Errorf("reset local catalog: %w", err)
	}

	s.logger.Info().
		Str("func", "clientSyncService.Reset").
		Str("dataset", s.dataset).
		Msg("local catalog reset")

	return nil
}

// nextPublishAfter returns the first daily publish instant strictly
// after t, per the policy's expected publish time ("HH:MM", UTC). A
// missing or malformed time falls back to the default.
func nextPublishAfter(t time.Time, policy models.SyncPolicy) time.Time {
	clock, err := time.Parse("15:04", policy.ExpectedPublishTimeUTC)
	if err != nil {
		clock, _ = time.Parse("15:04", models.DefaultExpectedPublishTimeUTC)
	}

	t = t.UTC()
	pub := time.Date(t.Year(), t.Month(), t.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	if !pub.After(t) {
		pub = pub.AddDate(0, 0, 1)
	}
	return pub
}

// refreshUnlockAt returns when the advisory refresh gate opens for a
// client that converged at syncedAt: the first expected publish after
// that moment plus the policy's unlock lag.
func refreshUnlockAt(syncedAt time.Time, policy models.SyncPolicy) time.Time {
	lag := time.Duration(policy.RefreshUnlockLagMinutes) * time.Minute
	return nextPublishAfter(syncedAt, policy).Add(lag)
}
