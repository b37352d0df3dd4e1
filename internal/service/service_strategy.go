package service

import (
	"context"

	"github.com/MKhiriev/cardsync/models"
)

// strategyService is the concrete implementation of StrategyService.
// Selection is a pure function of the local version and the manifest;
// no storage layer or logger is required because the operation is
// stateless and produces no side effects.
type strategyService struct{}

// NewStrategyService constructs a StrategyService ready for use.
// Because SelectStrategy is a stateless, in-memory operation,
// no dependencies (storage, config, logger) are needed.
func NewStrategyService() StrategyService {
	return &strategyService{}
}

// SelectStrategy implements StrategyService.
//
// Candidate paths are considered in priority order:
//
//  1. noop — the local version already is the manifest's latest.
//  2. full — nothing cheaper can work: no local version, the local or
//     latest version is unknown to the manifest, the local version sits
//     after latest (the history was rolled back), the gap reached the
//     forceFullThresholdMissed policy limit, or the patch chain covering
//     the gap has a hole.
//  3. compacted — the gap reached compactedThresholdMissed and the
//     manifest publishes a pre-merged patch spanning exactly
//     local → latest.
//  4. chain — every intermediate incremental patch, in publish order.
//
// The missed count is the distance between the two versions' positions
// in the manifest's versions array; version strings themselves are never
// compared. For an unknown or absent local version the missed count is
// the full history length.
//
// ctx cancellation is checked per hop while walking the chain so that
// callers can abort early on long version histories.
func (s *strategyService) SelectStrategy(ctx context.Context, local *string, manifest models.Manifest) (models.StrategyDecision, error) {
	latest := manifest.LatestVersion
	if len(manifest.Versions) == 0 || latest == "" {
		return models.StrategyDecision{Strategy: models.StrategyFull, LatestVersion: latest}, nil
	}

	// Until proven otherwise the answer is a full resync spanning the
	// whole published history.
	full := models.StrategyDecision{
		Strategy:      models.StrategyFull,
		LatestVersion: latest,
		MissedCount:   len(manifest.Versions),
	}

	latestIdx := manifest.VersionIndex(latest)
	if latestIdx < 0 {
		return full, nil
	}
	if local == nil || *local == "" {
		return full, nil
	}
	localIdx := manifest.VersionIndex(*local)
	if localIdx < 0 {
		return full, nil
	}

	if localIdx == latestIdx {
		return models.StrategyDecision{Strategy: models.StrategyNoop, LatestVersion: latest}, nil
	}

	missed := latestIdx - localIdx
	full.MissedCount = missed
	if missed < 0 {
		// The local version was published after the current latest: the
		// manifest moved backwards. No patch leads there; resnapshot.
		return full, nil
	}

	policy := manifest.EffectivePolicy()
	if missed >= policy.ForceFullThresholdMissed {
		return full, nil
	}

	if missed >= policy.CompactedThresholdMissed {
		if entry, ok := manifest.CompactedEntry(*local, latest); ok {
			return models.StrategyDecision{
				Strategy:      models.StrategyCompacted,
				LatestVersion: latest,
				MissedCount:   missed,
				Compacted:     &entry,
			}, nil
		}
		// No pre-merged patch spans exactly this gap; fall through to
		// the incremental chain.
	}

	paths, ok, err := chainPatchPaths(ctx, manifest, localIdx, latestIdx)
	if err != nil {
		return models.StrategyDecision{}, err
	}
	if !ok {
		// A hop in the span has no published patch, so the chain cannot
		// reach latest. Downgrade to the snapshot instead of serving a
		// broken chain.
		return full, nil
	}

	return models.StrategyDecision{
		Strategy:      models.StrategyChain,
		LatestVersion: latest,
		MissedCount:   missed,
		ChainPaths:    paths,
	}, nil
}

// chainPatchPaths collects the relative patch paths that advance the
// dataset from the version at fromIdx to the version at toIdx, one
// incremental hop per version in between. ok is false when any hop in
// the span lacks a published patchFromPrevious.
func chainPatchPaths(ctx context.Context, manifest models.Manifest, fromIdx, toIdx int) (paths []string, ok bool, err error) {
	paths = make([]string, 0, toIdx-fromIdx)
	for i := fromIdx + 1; i <= toIdx; i++ {
		if err = ctx.Err(); err != nil {
			return nil, false, err
		}

		rel := manifest.Versions[i].PatchFromPrevious
		if rel == "" {
			return nil, false, nil
		}
		paths = append(paths, rel)
	}

	return paths, true, nil
}
