package models

// SyncStrategy names the catch-up path a client takes to reach the
// latest published version.
type SyncStrategy string

const (
	// StrategyNoop means the local version already equals the latest.
	StrategyNoop SyncStrategy = "noop"

	// StrategyChain applies every intermediate incremental patch in order.
	StrategyChain SyncStrategy = "chain"

	// StrategyCompacted applies one pre-merged patch covering the whole gap.
	StrategyCompacted SyncStrategy = "compacted"

	// StrategyFull discards local rows and re-applies the latest snapshot.
	StrategyFull SyncStrategy = "full"
)

// StrategyDecision is the outcome of strategy selection against a manifest.
type StrategyDecision struct {
	// Strategy is the selected catch-up path.
	Strategy SyncStrategy

	// LatestVersion is the manifest's latest version at decision time.
	LatestVersion string

	// MissedCount is the distance between the local and latest version
	// in manifest order. For an unknown or absent local version it is
	// the full history length.
	MissedCount int

	// ChainPaths holds the patch paths to apply in order.
	// Populated only for StrategyChain.
	ChainPaths []string

	// Compacted is the manifest entry backing a compacted catch-up.
	// Populated only for StrategyCompacted.
	Compacted *CompactedPatch
}
