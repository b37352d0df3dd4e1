// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/MKhiriev/cardsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// vptr is a shorthand for taking the address of a version literal in tests.
func vptr(s string) *string {
	return &s
}

// patchRel names the incremental patch file between two adjacent versions
// the way the producer pipeline lays them out.
func patchRel(from, to string) string {
	return fmt.Sprintf("patches/%s.from-%s.patch.json", to, from)
}

// chainManifest builds a manifest with versions v1..vN, each carrying the
// incremental patch from its predecessor, latest pointing at vN.
func chainManifest(n int) models.Manifest {
	m := models.Manifest{Dataset: "default_cards"}
	for i := 1; i <= n; i++ {
		entry := models.DatasetVersion{
			Version:  fmt.Sprintf("v%d", i),
			Snapshot: fmt.Sprintf("versions/v%d.snapshot.json", i),
		}
		if i > 1 {
			entry.PatchFromPrevious = patchRel(fmt.Sprintf("v%d", i-1), entry.Version)
		}
		m.Versions = append(m.Versions, entry)
	}
	m.LatestVersion = fmt.Sprintf("v%d", n)
	return m
}

// withCompacted returns m extended with one pre-merged patch entry.
func withCompacted(m models.Manifest, from, to string) models.Manifest {
	m.CompactedPatches = append(m.CompactedPatches, models.CompactedPatch{
		FromVersion: from,
		ToVersion:   to,
		Path:        fmt.Sprintf("compacted/%s.from-%s.compacted.json", to, from),
	})
	return m
}

// chainSpan lists the patch paths covering from → to in a chainManifest.
func chainSpan(fromN, toN int) []string {
	paths := make([]string, 0, toN-fromN)
	for i := fromN + 1; i <= toN; i++ {
		paths = append(paths, patchRel(fmt.Sprintf("v%d", i-1), fmt.Sprintf("v%d", i)))
	}
	return paths
}

// ─────────────────────────────────────────────────────────────────────────────
// SelectStrategy — decision matrix (table-driven)
// ─────────────────────────────────────────────────────────────────────────────

// TestStrategyService_SelectStrategy_DecisionMatrix covers every branch of
// strategy selection. Each sub-test is named after the condition it
// exercises so failures are immediately self-documenting. Thresholds in
// play are the defaults: compacted at 5 missed, forced full at 21.
func TestStrategyService_SelectStrategy_DecisionMatrix(t *testing.T) {
	gapped := chainManifest(4)
	gapped.Versions[2].PatchFromPrevious = "" // v2 → v3 hop never published

	rolledBack := chainManifest(4)
	rolledBack.LatestVersion = "v2" // history moved backwards past local v4

	tests := []struct {
		name          string
		local         *string
		manifest      models.Manifest
		wantStrategy  models.SyncStrategy
		wantMissed    int
		wantPaths     []string
		wantCompacted *models.CompactedPatch
	}{
		// ── Nothing usable published ─────────────────────────────────────────

		{
			name:         "NoVersions → Full",
			local:        vptr("v1"),
			manifest:     models.Manifest{Dataset: "default_cards"},
			wantStrategy: models.StrategyFull,
			wantMissed:   0,
		},
		{
			name:  "NoLatest → Full",
			local: vptr("v1"),
			manifest: models.Manifest{
				Dataset:  "default_cards",
				Versions: chainManifest(2).Versions,
			},
			wantStrategy: models.StrategyFull,
			wantMissed:   0,
		},
		{
			name:  "LatestUnknownToHistory → Full",
			local: vptr("v1"),
			manifest: func() models.Manifest {
				m := chainManifest(3)
				m.LatestVersion = "v99"
				return m
			}(),
			wantStrategy: models.StrategyFull,
			wantMissed:   3,
		},

		// ── Local version unusable ───────────────────────────────────────────

		{
			name:         "NeverSynced → Full",
			local:        nil,
			manifest:     chainManifest(3),
			wantStrategy: models.StrategyFull,
			wantMissed:   3,
		},
		{
			name:         "EmptyLocal → Full",
			local:        vptr(""),
			manifest:     chainManifest(3),
			wantStrategy: models.StrategyFull,
			wantMissed:   3,
		},
		{
			name:         "LocalUnknownToHistory → Full",
			local:        vptr("v0"),
			manifest:     chainManifest(3),
			wantStrategy: models.StrategyFull,
			wantMissed:   3,
		},
		{
			name:         "LocalAfterLatest → Full",
			local:        vptr("v4"),
			manifest:     rolledBack,
			wantStrategy: models.StrategyFull,
			wantMissed:   -2,
		},

		// ── Converged ────────────────────────────────────────────────────────

		{
			name:         "LocalIsLatest → Noop",
			local:        vptr("v3"),
			manifest:     chainManifest(3),
			wantStrategy: models.StrategyNoop,
			wantMissed:   0,
		},

		// ── Small gaps walk the chain ────────────────────────────────────────

		{
			name:         "OneBehind → Chain",
			local:        vptr("v2"),
			manifest:     chainManifest(3),
			wantStrategy: models.StrategyChain,
			wantMissed:   1,
			wantPaths:    chainSpan(2, 3),
		},
		{
			name:         "FourBehind/BelowCompactedThreshold → Chain",
			local:        vptr("v1"),
			manifest:     withCompacted(chainManifest(5), "v1", "v5"),
			wantStrategy: models.StrategyChain,
			wantMissed:   4,
			wantPaths:    chainSpan(1, 5),
		},

		// ── Compacted threshold reached ──────────────────────────────────────

		{
			name:         "FiveBehind/ExactCompactedSpan → Compacted",
			local:        vptr("v1"),
			manifest:     withCompacted(chainManifest(6), "v1", "v6"),
			wantStrategy: models.StrategyCompacted,
			wantMissed:   5,
			wantCompacted: &models.CompactedPatch{
				FromVersion: "v1",
				ToVersion:   "v6",
				Path:        "compacted/v6.from-v1.compacted.json",
			},
		},
		{
			name:         "FiveBehind/NoCompactedEntry → Chain",
			local:        vptr("v1"),
			manifest:     chainManifest(6),
			wantStrategy: models.StrategyChain,
			wantMissed:   5,
			wantPaths:    chainSpan(1, 6),
		},
		{
			name:         "FiveBehind/CompactedSpanMismatch → Chain",
			local:        vptr("v1"),
			manifest:     withCompacted(chainManifest(6), "v2", "v6"),
			wantStrategy: models.StrategyChain,
			wantMissed:   5,
			wantPaths:    chainSpan(1, 6),
		},
		{
			name:         "TwentyBehind/ExactCompactedSpan → Compacted",
			local:        vptr("v1"),
			manifest:     withCompacted(chainManifest(21), "v1", "v21"),
			wantStrategy: models.StrategyCompacted,
			wantMissed:   20,
			wantCompacted: &models.CompactedPatch{
				FromVersion: "v1",
				ToVersion:   "v21",
				Path:        "compacted/v21.from-v1.compacted.json",
			},
		},

		// ── Forced full threshold reached ────────────────────────────────────

		{
			name:         "TwentyOneBehind → Full",
			local:        vptr("v1"),
			manifest:     withCompacted(chainManifest(22), "v1", "v22"),
			wantStrategy: models.StrategyFull,
			wantMissed:   21,
		},

		// ── Broken chain downgrades to full ──────────────────────────────────

		{
			name:         "GapInChain → Full",
			local:        vptr("v1"),
			manifest:     gapped,
			wantStrategy: models.StrategyFull,
			wantMissed:   3,
		},
	}

	svc := NewStrategyService()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := svc.SelectStrategy(context.Background(), tc.local, tc.manifest)

			require.NoError(t, err)
			assert.Equal(t, tc.wantStrategy, decision.Strategy, "strategy mismatch")
			assert.Equal(t, tc.wantMissed, decision.MissedCount, "missed count mismatch")
			assert.Equal(t, tc.manifest.LatestVersion, decision.LatestVersion, "latest version mismatch")
			assert.Equal(t, tc.wantPaths, decision.ChainPaths, "chain paths mismatch")
			assert.Equal(t, tc.wantCompacted, decision.Compacted, "compacted entry mismatch")
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// SelectStrategy — policy overrides and edge cases
// ─────────────────────────────────────────────────────────────────────────────

// A published policy block replaces the default thresholds entirely.
func TestStrategyService_SelectStrategy_PublishedPolicyOverridesThresholds(t *testing.T) {
	manifest := withCompacted(chainManifest(4), "v1", "v4")
	manifest.SyncPolicy = &models.SyncPolicy{
		CompactedThresholdMissed: 2,
		ForceFullThresholdMissed: 10,
		CompactedRetentionDays:   10,
		ExpectedPublishTimeUTC:   "22:30",
		RefreshUnlockLagMinutes:  60,
	}

	svc := NewStrategyService()
	decision, err := svc.SelectStrategy(context.Background(), vptr("v1"), manifest)

	require.NoError(t, err)
	assert.Equal(t, models.StrategyCompacted, decision.Strategy,
		"3 missed reaches the published compacted threshold of 2")
	assert.Equal(t, 3, decision.MissedCount)
	require.NotNil(t, decision.Compacted)
	assert.Equal(t, "compacted/v4.from-v1.compacted.json", decision.Compacted.Path)
}

func TestStrategyService_SelectStrategy_ForceFullIgnoresCompactedEntry(t *testing.T) {
	manifest := withCompacted(chainManifest(3), "v1", "v3")
	manifest.SyncPolicy = &models.SyncPolicy{
		CompactedThresholdMissed: 1,
		ForceFullThresholdMissed: 2,
		CompactedRetentionDays:   10,
		ExpectedPublishTimeUTC:   "22:30",
		RefreshUnlockLagMinutes:  60,
	}

	svc := NewStrategyService()
	decision, err := svc.SelectStrategy(context.Background(), vptr("v1"), manifest)

	require.NoError(t, err)
	assert.Equal(t, models.StrategyFull, decision.Strategy,
		"the forced-full threshold outranks an available compacted patch")
	assert.Nil(t, decision.Compacted)
}

func TestStrategyService_SelectStrategy_ChainPathsPreservePublishOrder(t *testing.T) {
	svc := NewStrategyService()
	decision, err := svc.SelectStrategy(context.Background(), vptr("v1"), chainManifest(4))

	require.NoError(t, err)
	require.Equal(t, models.StrategyChain, decision.Strategy)
	assert.Equal(t, []string{
		patchRel("v1", "v2"),
		patchRel("v2", "v3"),
		patchRel("v3", "v4"),
	}, decision.ChainPaths)
}

func TestStrategyService_SelectStrategy_ContextCancelled(t *testing.T) {
	// A long chain with thresholds pushed out of the way ensures the
	// cancellation check fires while walking hops.
	manifest := chainManifest(500)
	manifest.SyncPolicy = &models.SyncPolicy{
		CompactedThresholdMissed: 5_000,
		ForceFullThresholdMissed: 10_000,
		CompactedRetentionDays:   21,
		ExpectedPublishTimeUTC:   "22:30",
		RefreshUnlockLagMinutes:  60,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	svc := NewStrategyService()
	_, err := svc.SelectStrategy(ctx, vptr("v1"), manifest)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
