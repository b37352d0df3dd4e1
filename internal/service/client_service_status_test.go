// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/cardsync/internal/store"
	"github.com/MKhiriev/cardsync/internal/utils"
	"github.com/MKhiriev/cardsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── Publish window helpers ───────────────────────────────────────────────────

func TestNextPublishAfter_DailySchedule(t *testing.T) {
	policy := models.SyncPolicy{ExpectedPublishTimeUTC: "22:30"}

	// Утром окно ещё сегодняшнее
	morning := time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.August, 20, 22, 30, 0, 0, time.UTC), nextPublishAfter(morning, policy))

	// Ровно в момент публикации — следующее окно уже завтрашнее
	atPublish := time.Date(2026, time.August, 20, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.August, 21, 22, 30, 0, 0, time.UTC), nextPublishAfter(atPublish, policy))

	lateNight := time.Date(2026, time.August, 20, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.August, 21, 22, 30, 0, 0, time.UTC), nextPublishAfter(lateNight, policy))

	// Вход в локальной зоне нормализуется в UTC: 01:15 MSK = 22:15 UTC
	msk := time.FixedZone("MSK", 3*60*60)
	eveningMSK := time.Date(2026, time.August, 21, 1, 15, 0, 0, msk)
	assert.Equal(t, time.Date(2026, time.August, 20, 22, 30, 0, 0, time.UTC), nextPublishAfter(eveningMSK, policy))
}

func TestNextPublishAfter_MalformedTimeFallsBackToDefault(t *testing.T) {
	policy := models.SyncPolicy{ExpectedPublishTimeUTC: "quarter past nine"}

	morning := time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.August, 20, 22, 30, 0, 0, time.UTC), nextPublishAfter(morning, policy))
}

func TestRefreshUnlockAt_AddsConfiguredLag(t *testing.T) {
	policy := models.SyncPolicy{ExpectedPublishTimeUTC: "22:30", RefreshUnlockLagMinutes: 90}

	// Синхронизация сразу после публикации: разблокировка — следующее
	// окно плюс лаг
	syncedAt := time.Date(2026, time.August, 20, 22, 40, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.August, 22, 0, 0, 0, 0, time.UTC), refreshUnlockAt(syncedAt, policy))

	zeroLag := models.SyncPolicy{ExpectedPublishTimeUTC: "06:00"}
	beforeDawn := time.Date(2026, time.August, 20, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.August, 20, 6, 0, 0, 0, time.UTC), refreshUnlockAt(beforeDawn, zeroLag))
}

// ── GetSyncStatus ────────────────────────────────────────────────────────────

func TestClientSyncService_GetSyncStatus_NeverSynced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockLedger, mockAdapter, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	mockLedger.EXPECT().GetSyncState(ctx).Return(nil, nil)
	mockAdapter.EXPECT().GetServerStatus(ctx, "").Return(models.ServerSyncStatus{
		Dataset:       "default_cards",
		LatestVersion: "v3",
		NeedsSync:     true,
		StrategyHint:  models.StrategyFull,
		MissedCount:   3,
		Policy:        models.DefaultSyncPolicy(),
	}, nil)

	status, err := svc.GetSyncStatus(ctx)
	require.NoError(t, err)

	assert.Equal(t, "default_cards", status.Dataset)
	assert.Empty(t, status.LocalVersion)
	assert.Equal(t, "v3", status.LatestVersion)
	assert.True(t, status.NeedsSync)
	assert.True(t, status.CanRefreshNow)
	assert.Equal(t, "never synced", status.Reason)
	require.NotNil(t, status.NextExpectedPublishAt)
	assert.True(t, status.NextExpectedPublishAt.After(utils.NowUTC()))
}

func TestClientSyncService_GetSyncStatus_BehindLatest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockLedger, mockAdapter, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	state := &models.ClientSyncState{
		CurrentVersion: "v1",
		SyncedAt:       utils.NowUTC().Add(-2 * time.Hour),
	}
	mockLedger.EXPECT().GetSyncState(ctx).Return(state, nil)
	mockAdapter.EXPECT().GetServerStatus(ctx, "v1").Return(models.ServerSyncStatus{
		Dataset:       "default_cards",
		LatestVersion: "v3",
		NeedsSync:     true,
		StrategyHint:  models.StrategyChain,
		MissedCount:   2,
		Policy:        models.DefaultSyncPolicy(),
	}, nil)

	status, err := svc.GetSyncStatus(ctx)
	require.NoError(t, err)

	assert.Equal(t, "v1", status.LocalVersion)
	assert.Equal(t, "v3", status.LatestVersion)
	assert.True(t, status.NeedsSync)
	assert.True(t, status.CanRefreshNow)
	assert.Equal(t, "behind latest", status.Reason)
}

func TestClientSyncService_GetSyncStatus_ConvergedInsideWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockLedger, mockAdapter, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	// Только что синхронизировались: следующее окно публикации ещё не
	// наступило, обновляться рано
	state := &models.ClientSyncState{
		CurrentVersion: "v3",
		StateHash:      "state-hash-v3",
		SyncedAt:       utils.NowUTC(),
	}
	mockLedger.EXPECT().GetSyncState(ctx).Return(state, nil)
	mockAdapter.EXPECT().GetServerStatus(ctx, "v3").Return(models.ServerSyncStatus{
		Dataset:       "default_cards",
		LatestVersion: "v3",
		NeedsSync:     false,
		StrategyHint:  models.StrategyNoop,
		Policy:        models.DefaultSyncPolicy(),
	}, nil)

	status, err := svc.GetSyncStatus(ctx)
	require.NoError(t, err)

	assert.False(t, status.NeedsSync)
	assert.False(t, status.CanRefreshNow)
	assert.Equal(t, "up to date", status.Reason)

	require.NotNil(t, status.NextExpectedPublishAt)
	assert.Equal(t, refreshUnlockAt(state.SyncedAt, models.DefaultSyncPolicy()), *status.NextExpectedPublishAt)
}

func TestClientSyncService_GetSyncStatus_ConvergedWindowPassed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockLedger, mockAdapter, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	// Последняя синхронизация два дня назад: с тех пор точно было окно
	// публикации, даже если сервер пока отдаёт ту же версию
	state := &models.ClientSyncState{
		CurrentVersion: "v3",
		SyncedAt:       utils.NowUTC().Add(-48 * time.Hour),
	}
	mockLedger.EXPECT().GetSyncState(ctx).Return(state, nil)
	mockAdapter.EXPECT().GetServerStatus(ctx, "v3").Return(models.ServerSyncStatus{
		Dataset:       "default_cards",
		LatestVersion: "v3",
		NeedsSync:     false,
		StrategyHint:  models.StrategyNoop,
		Policy:        models.DefaultSyncPolicy(),
	}, nil)

	status, err := svc.GetSyncStatus(ctx)
	require.NoError(t, err)

	assert.True(t, status.CanRefreshNow)
	assert.Equal(t, "new publish window passed", status.Reason)

	// Прошедшее окно не показываем — указатель сдвинут на будущее
	require.NotNil(t, status.NextExpectedPublishAt)
	assert.True(t, status.NextExpectedPublishAt.After(utils.NowUTC()))
}

func TestClientSyncService_GetSyncStatus_ServerUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockLedger, mockAdapter, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	state := &models.ClientSyncState{
		CurrentVersion: "v2",
		SyncedAt:       utils.NowUTC().Add(-time.Hour),
	}
	mockLedger.EXPECT().GetSyncState(ctx).Return(state, nil)
	mockAdapter.EXPECT().GetServerStatus(ctx, "v2").
		Return(models.ServerSyncStatus{}, errors.New("dial tcp: connection refused"))

	// Оффлайн — не ошибка: статус отвечает из локального состояния
	status, err := svc.GetSyncStatus(ctx)
	require.NoError(t, err)

	assert.Equal(t, "v2", status.LocalVersion)
	assert.Empty(t, status.LatestVersion)
	assert.False(t, status.NeedsSync)
	assert.True(t, status.CanRefreshNow)
	assert.Equal(t, "manifest unavailable", status.Reason)
	assert.Nil(t, status.NextExpectedPublishAt)
}

func TestClientSyncService_GetSyncStatus_LedgerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockLedger, _, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	mockLedger.EXPECT().GetSyncState(ctx).Return(nil, errors.New("sql: database is closed"))

	_, err := svc.GetSyncStatus(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read sync state")
}

// ── Read APIs ────────────────────────────────────────────────────────────────

func TestClientSyncService_GetHistory_DefaultLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockLedger, _, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	entries := []models.ApplyHistoryEntry{
		{ID: "h1", Dataset: "default_cards", ToVersion: "v3", Strategy: models.StrategyChain, Result: models.ApplyResultSuccess},
	}
	// Без явного лимита отдаём последние 20 записей
	mockLedger.EXPECT().ListApplyHistory(ctx, 20).Return(entries, nil)

	got, err := svc.GetHistory(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestClientSyncService_GetHistory_ExplicitLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockLedger, _, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	mockLedger.EXPECT().ListApplyHistory(ctx, 5).Return(nil, nil)

	_, err := svc.GetHistory(ctx, 5)
	require.NoError(t, err)
}

func TestClientSyncService_GetHistory_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockLedger, _, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	mockLedger.EXPECT().ListApplyHistory(ctx, 20).Return(nil, errors.New("table missing"))

	_, err := svc.GetHistory(ctx, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list apply history")
}

func TestClientSyncService_GetVersions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockLedger, _, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	rows := []models.DatasetVersionRecord{
		{ID: "default_cards:v1", Dataset: "default_cards", Version: "v1", RecordCount: 10},
		{ID: "default_cards:v2", Dataset: "default_cards", Version: "v2", RecordCount: 12},
	}
	mockLedger.EXPECT().ListDatasetVersions(ctx).Return(rows, nil)

	got, err := svc.GetVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestClientSyncService_GetTrend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCatalog, _, _, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	trend := models.PriceTrend{PrintingID: "c1", Column: models.PriceColumnMarket, Direction: models.TrendUp}
	mockCatalog.EXPECT().GetPriceTrend(ctx, "c1", models.PriceColumnMarket).Return(trend, nil)

	got, err := svc.GetTrend(ctx, "c1", models.PriceColumnMarket)
	require.NoError(t, err)
	assert.Equal(t, trend, got)
}

func TestClientSyncService_GetTrend_UnknownColumn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCatalog, _, _, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	mockCatalog.EXPECT().GetPriceTrend(ctx, "c1", models.PriceColumn("avg_price")).
		Return(models.PriceTrend{}, store.ErrUnknownPriceColumn)

	_, err := svc.GetTrend(ctx, "c1", models.PriceColumn("avg_price"))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUnknownPriceColumn)
}

func TestClientSyncService_GetRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCatalog, _, _, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	records := map[string]models.Record{"c1": serverRecord("c1", 1.10)}
	mockCatalog.EXPECT().GetCatalogPriceRecords(ctx, []string{"c1", "c2"}).Return(records, nil)

	got, err := svc.GetRecords(ctx, []string{"c1", "c2"})
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

// ── Reset ────────────────────────────────────────────────────────────────────

func TestClientSyncService_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockLedger, _, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	mockLedger.EXPECT().Reset(ctx).Return(nil)

	require.NoError(t, svc.Reset(ctx))
}

func TestClientSyncService_Reset_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockLedger, _, _ := newTestClientSyncSvc(t, ctrl)
	ctx := context.Background()

	mockLedger.EXPECT().Reset(ctx).Return(errors.New("database is locked"))

	err := svc.Reset(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reset local catalog")
}
