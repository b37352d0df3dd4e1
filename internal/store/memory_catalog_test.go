package store

import (
	"path/filepath"
	"testing"

	"github.com/MKhiriev/cardsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	captureDay1 = "2026-08-19T22:30:00Z"
	captureDay2 = "2026-08-20T22:30:00Z"
	captureDay3 = "2026-08-21T22:30:00Z"
)

func newMemoryStore(t *testing.T) *MemoryCatalogStore {
	t.Helper()
	s, err := NewMemoryCatalogStore("", testDataset, testClientID)
	require.NoError(t, err)
	return s
}

func memRecord(id string, price float64, capturedAt string) models.Record {
	return models.Record{
		PrintingID:      id,
		Name:            "Card " + id,
		SetCode:         "neo",
		CollectorNumber: "1",
		MarketPrice:     price,
		CapturedAt:      capturedAt,
	}
}

func TestMemoryApplySnapshot_Idempotent(t *testing.T) {
	s := newMemoryStore(t)
	ctx := testContext()

	snap := models.SnapshotApply{
		Version: "v250101",
		Records: []models.Record{
			memRecord("aaa", 1.00, captureDay1),
			memRecord("bbb", 2.00, captureDay1),
		},
	}

	first, err := s.ApplySnapshot(ctx, snap)
	require.NoError(t, err)
	second, err := s.ApplySnapshot(ctx, snap)
	require.NoError(t, err)

	// Replaying the same snapshot yields byte-identical state.
	assert.Equal(t, first.StateHash, second.StateHash)

	count, err := s.CountRecords(ctx, "v250101")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	state, err := s.GetSyncState(ctx)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "v250101", state.CurrentVersion)
	assert.Equal(t, first.StateHash, state.StateHash)

	history, err := s.ListApplyHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, entry := range history {
		assert.Equal(t, models.ApplyResultSuccess, entry.Result)
		assert.Equal(t, models.StrategyFull, entry.Strategy)
	}
}

func TestMemoryApplyPatch_ChainAndCompactedConverge(t *testing.T) {
	ctx := testContext()

	// v1: a, b, c. v2: a repriced, d added, c removed. v3: b repriced, e added.
	baseSnapshot := models.SnapshotApply{
		Version: "v1",
		Records: []models.Record{
			memRecord("a", 1.00, captureDay1),
			memRecord("b", 2.00, captureDay1),
			memRecord("c", 3.00, captureDay1),
		},
	}
	patchV1V2 := models.PatchFile{
		FromVersion: "v1",
		ToVersion:   "v2",
		Added:       []models.Record{memRecord("d", 4.00, captureDay2)},
		Updated:     []models.Record{memRecord("a", 1.50, captureDay2)},
		Removed:     []string{"c"},
	}
	patchV2V3 := models.PatchFile{
		FromVersion: "v2",
		ToVersion:   "v3",
		Added:       []models.Record{memRecord("e", 5.00, captureDay3)},
		Updated:     []models.Record{memRecord("b", 2.50, captureDay3)},
	}
	// The compacted span carries each surviving row as of v3.
	compactedV1V3 := models.PatchFile{
		FromVersion: "v1",
		ToVersion:   "v3",
		Added: []models.Record{
			memRecord("d", 4.00, captureDay2),
			memRecord("e", 5.00, captureDay3),
		},
		Updated: []models.Record{
			memRecord("a", 1.50, captureDay2),
			memRecord("b", 2.50, captureDay3),
		},
		Removed: []string{"c"},
	}

	chained := newMemoryStore(t)
	_, err := chained.ApplySnapshot(ctx, baseSnapshot)
	require.NoError(t, err)
	_, err = chained.ApplyPatch(ctx, models.PatchApply{Patch: patchV1V2, Strategy: models.StrategyChain})
	require.NoError(t, err)
	chainResult, err := chained.ApplyPatch(ctx, models.PatchApply{Patch: patchV2V3, Strategy: models.StrategyChain})
	require.NoError(t, err)

	compacted := newMemoryStore(t)
	_, err = compacted.ApplySnapshot(ctx, baseSnapshot)
	require.NoError(t, err)
	compactedResult, err := compacted.ApplyPatch(ctx, models.PatchApply{Patch: compactedV1V3, Strategy: models.StrategyCompacted})
	require.NoError(t, err)

	// Both routes land on v3 with the identical fingerprint.
	assert.Equal(t, chainResult.StateHash, compactedResult.StateHash)

	chainState, err := chained.GetSyncState(ctx)
	require.NoError(t, err)
	compactedState, err := compacted.GetSyncState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v3", chainState.CurrentVersion)
	assert.Equal(t, "v3", compactedState.CurrentVersion)
	assert.Equal(t, chainState.StateHash, compactedState.StateHash)

	// One hop, one history entry for the compacted route.
	compactedHistory, err := compacted.ListApplyHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, compactedHistory, 2) // snapshot + compacted hop
	assert.Equal(t, models.StrategyCompacted, compactedHistory[0].Strategy)

	count, err := chained.CountRecords(ctx, "v3")
	require.NoError(t, err)
	assert.Equal(t, 4, count) // a, b, d, e — c removed
}

func TestMemoryApplyPatch_PreconditionFailure(t *testing.T) {
	s := newMemoryStore(t)
	ctx := testContext()

	_, err := s.ApplySnapshot(ctx, models.SnapshotApply{
		Version: "v1",
		Records: []models.Record{memRecord("a", 1.00, captureDay1)},
	})
	require.NoError(t, err)

	wrongBase := models.PatchFile{
		FromVersion: "v2",
		ToVersion:   "v3",
		Updated:     []models.Record{memRecord("a", 9.99, captureDay3)},
	}

	_, err = s.ApplyPatch(ctx, models.PatchApply{Patch: wrongBase, Strategy: models.StrategyChain})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPatchPrecondition)

	// Nothing moved.
	state, stateErr := s.GetSyncState(ctx)
	require.NoError(t, stateErr)
	assert.Equal(t, "v1", state.CurrentVersion)

	history, histErr := s.ListApplyHistory(ctx, 10)
	require.NoError(t, histErr)
	require.Len(t, history, 2)
	assert.Equal(t, models.ApplyResultFailure, history[0].Result)
	require.NotNil(t, history[0].ErrorMessage)
	assert.Contains(t, *history[0].ErrorMessage, "patch precondition failed")
}

func TestMemoryApplySnapshot_ValidationFailure(t *testing.T) {
	s := newMemoryStore(t)
	ctx := testContext()

	_, err := s.ApplySnapshot(ctx, models.SnapshotApply{
		Version: "v1",
		Records: []models.Record{{PrintingID: "", MarketPrice: 1.00}},
	})

	require.Error(t, err)

	state, stateErr := s.GetSyncState(ctx)
	require.NoError(t, stateErr)
	assert.Nil(t, state)

	history, histErr := s.ListApplyHistory(ctx, 10)
	require.NoError(t, histErr)
	require.Len(t, history, 1)
	assert.Equal(t, models.ApplyResultFailure, history[0].Result)
}

func TestMemoryApplySnapshot_HashMismatchReported(t *testing.T) {
	s := newMemoryStore(t)
	ctx := testContext()

	result, err := s.ApplySnapshot(ctx, models.SnapshotApply{
		Version:      "v1",
		Records:      []models.Record{memRecord("a", 1.00, captureDay1)},
		ExpectedHash: "definitely-not-it",
	})

	// Reported, never rolled back.
	require.NoError(t, err)
	assert.True(t, result.HashMismatch)

	state, stateErr := s.GetSyncState(ctx)
	require.NoError(t, stateErr)
	require.NotNil(t, state)
	assert.Equal(t, "v1", state.CurrentVersion)
}

func TestMemoryGetPriceTrend_Boundaries(t *testing.T) {
	tests := []struct {
		name          string
		firstPrice    float64
		secondPrice   float64
		wantDirection models.TrendDirection
	}{
		{name: "just inside the flat band", firstPrice: 10.00, secondPrice: 10.0089, wantDirection: models.TrendFlat},
		{name: "just above the flat band", firstPrice: 10.00, secondPrice: 10.0091, wantDirection: models.TrendUp},
		{name: "just below the flat band", firstPrice: 10.00, secondPrice: 9.9909, wantDirection: models.TrendDown},
		{name: "unchanged price", firstPrice: 10.00, secondPrice: 10.00, wantDirection: models.TrendFlat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newMemoryStore(t)
			ctx := testContext()

			_, err := s.ApplySnapshot(ctx, models.SnapshotApply{
				Version: "v1",
				Records: []models.Record{memRecord("a", tc.firstPrice, captureDay1)},
			})
			require.NoError(t, err)
			_, err = s.ApplyPatch(ctx, models.PatchApply{
				Patch: models.PatchFile{
					FromVersion: "v1",
					ToVersion:   "v2",
					Updated:     []models.Record{memRecord("a", tc.secondPrice, captureDay2)},
				},
				Strategy: models.StrategyChain,
			})
			require.NoError(t, err)

			trend, err := s.GetPriceTrend(ctx, "a", models.PriceColumnMarket)

			require.NoError(t, err)
			assert.Equal(t, tc.wantDirection, trend.Direction)
			require.NotNil(t, trend.Current)
			assert.InDelta(t, tc.secondPrice, *trend.Current, 1e-9)
			require.NotNil(t, trend.Previous)
			assert.InDelta(t, tc.firstPrice, *trend.Previous, 1e-9)
			assert.Equal(t, captureDay2, trend.LastCapturedAt)
		})
	}
}

func TestMemoryGetPriceTrend_CopyForwardIsOneCapture(t *testing.T) {
	s := newMemoryStore(t)
	ctx := testContext()

	// "a" never changes; the patch only touches "b". The copy-forward
	// duplicate of "a" under v2 must not count as a second capture.
	_, err := s.ApplySnapshot(ctx, models.SnapshotApply{
		Version: "v1",
		Records: []models.Record{
			memRecord("a", 10.00, captureDay1),
			memRecord("b", 2.00, captureDay1),
		},
	})
	require.NoError(t, err)
	_, err = s.ApplyPatch(ctx, models.PatchApply{
		Patch: models.PatchFile{
			FromVersion: "v1",
			ToVersion:   "v2",
			Updated:     []models.Record{memRecord("b", 2.50, captureDay2)},
		},
		Strategy: models.StrategyChain,
	})
	require.NoError(t, err)

	trend, err := s.GetPriceTrend(ctx, "a", models.PriceColumnMarket)

	require.NoError(t, err)
	assert.Equal(t, models.TrendNone, trend.Direction)
	require.NotNil(t, trend.Current)
	assert.InDelta(t, 10.00, *trend.Current, 1e-9)
	assert.Nil(t, trend.Previous)
}

func TestMemoryGetPriceTrend_UnknownColumn(t *testing.T) {
	s := newMemoryStore(t)

	_, err := s.GetPriceTrend(testContext(), "a", models.PriceColumn("sync_version"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPriceColumn)
}

func TestMemoryGetPriceTrend_OptionalColumnSkipsNulls(t *testing.T) {
	s := newMemoryStore(t)
	ctx := testContext()

	withLow := memRecord("a", 10.00, captureDay2)
	withLow.LowPrice = float64Ptr(9.00)

	// Day 1 had no low price at all.
	_, err := s.ApplySnapshot(ctx, models.SnapshotApply{
		Version: "v1",
		Records: []models.Record{memRecord("a", 10.00, captureDay1)},
	})
	require.NoError(t, err)
	_, err = s.ApplyPatch(ctx, models.PatchApply{
		Patch: models.PatchFile{
			FromVersion: "v1",
			ToVersion:   "v2",
			Updated:     []models.Record{withLow},
		},
		Strategy: models.StrategyChain,
	})
	require.NoError(t, err)

	trend, err := s.GetPriceTrend(ctx, "a", models.PriceColumnLow)

	require.NoError(t, err)
	assert.Equal(t, models.TrendNone, trend.Direction)
	require.NotNil(t, trend.Current)
	assert.InDelta(t, 9.00, *trend.Current, 1e-9)
}

func TestMemoryGetCatalogPriceRecords_LatestCaptureWins(t *testing.T) {
	s := newMemoryStore(t)
	ctx := testContext()

	_, err := s.ApplySnapshot(ctx, models.SnapshotApply{
		Version: "v1",
		Records: []models.Record{memRecord("a", 10.00, captureDay1)},
	})
	require.NoError(t, err)
	_, err = s.ApplyPatch(ctx, models.PatchApply{
		Patch: models.PatchFile{
			FromVersion: "v1",
			ToVersion:   "v2",
			Updated:     []models.Record{memRecord("a", 12.00, captureDay2)},
		},
		Strategy: models.StrategyChain,
	})
	require.NoError(t, err)

	records, err := s.GetCatalogPriceRecords(ctx, []string{"a", "missing"})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 12.00, records["a"].MarketPrice, 1e-9)
	assert.Equal(t, captureDay2, records["a"].CapturedAt)
}

func TestMemoryStore_PersistAndReload(t *testing.T) {
	ctx := testContext()
	path := filepath.Join(t.TempDir(), "catalog", "local.json")

	s, err := NewMemoryCatalogStore(path, testDataset, testClientID)
	require.NoError(t, err)

	applied, err := s.ApplySnapshot(ctx, models.SnapshotApply{
		Version: "v1",
		Records: []models.Record{memRecord("a", 1.00, captureDay1)},
	})
	require.NoError(t, err)

	// A fresh store over the same file sees everything.
	reloaded, err := NewMemoryCatalogStore(path, testDataset, testClientID)
	require.NoError(t, err)

	state, err := reloaded.GetSyncState(ctx)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "v1", state.CurrentVersion)
	assert.Equal(t, applied.StateHash, state.StateHash)

	hash, err := reloaded.ComputeStateHash(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, applied.StateHash, hash)

	history, err := reloaded.ListApplyHistory(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestMemoryStore_Reset(t *testing.T) {
	s := newMemoryStore(t)
	ctx := testContext()

	_, err := s.ApplySnapshot(ctx, models.SnapshotApply{
		Version: "v1",
		Records: []models.Record{memRecord("a", 1.00, captureDay1)},
	})
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))

	state, err := s.GetSyncState(ctx)
	require.NoError(t, err)
	assert.Nil(t, state)

	count, err := s.CountRecords(ctx, "v1")
	require.NoError(t, err)
	assert.Zero(t, count)

	history, err := s.ListApplyHistory(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)

	versions, err := s.ListDatasetVersions(ctx)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestMemoryListDatasetVersions_TracksEveryApply(t *testing.T) {
	s := newMemoryStore(t)
	ctx := testContext()

	_, err := s.ApplySnapshot(ctx, models.SnapshotApply{
		Version: "v1",
		Records: []models.Record{memRecord("a", 1.00, captureDay1)},
	})
	require.NoError(t, err)
	_, err = s.ApplyPatch(ctx, models.PatchApply{
		Patch: models.PatchFile{
			FromVersion: "v1",
			ToVersion:   "v2",
			Added:       []models.Record{memRecord("b", 2.00, captureDay2)},
		},
		Strategy: models.StrategyChain,
	})
	require.NoError(t, err)

	versions, err := s.ListDatasetVersions(ctx)

	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "v1", versions[0].Version)
	assert.Equal(t, "v2", versions[1].Version)
	assert.Equal(t, testDataset+":v2", versions[1].ID)
	assert.Equal(t, 2, versions[1].RecordCount)
}

func TestMemoryStore_MatchesSQLHashProjection(t *testing.T) {
	s := newMemoryStore(t)
	ctx := testContext()

	records := []models.Record{
		memRecord("bbb", 2.00, captureDay1),
		memRecord("aaa", 1.00, captureDay1),
	}
	result, err := s.ApplySnapshot(ctx, models.SnapshotApply{Version: "v1", Records: records})
	require.NoError(t, err)

	// The map store hashes through the same projection as SQL rows, so
	// both backends converge on the same fingerprint for equal content.
	assert.Equal(t, ComputeStateHashForRows(testDataset, records), result.StateHash)
}
