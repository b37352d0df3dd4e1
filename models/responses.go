package models

// HealthResponse is the GET /health body.
type HealthResponse struct {
	OK            bool   `json:"ok"`
	Dataset       string `json:"dataset"`
	LatestVersion string `json:"latestVersion"`
	GeneratedAt   string `json:"generatedAt,omitempty"`
}

// MetricsResponse is the GET /metrics body.
type MetricsResponse struct {
	Requests      int64 `json:"requests"`
	Errors        int64 `json:"errors"`
	UptimeSeconds int64 `json:"uptimeSeconds"`
	TrackedIPs    int   `json:"trackedIps"`
}

// ServerSyncStatus is the GET /sync/status body. The server runs the
// same strategy selection as clients so both sides agree on the hint.
type ServerSyncStatus struct {
	Dataset        string       `json:"dataset"`
	LatestVersion  string       `json:"latestVersion"`
	LatestHash     string       `json:"latestHash,omitempty"`
	CurrentVersion string       `json:"currentVersion,omitempty"`
	NeedsSync      bool         `json:"needsSync"`
	StrategyHint   SyncStrategy `json:"strategyHint"`
	MissedCount    int          `json:"missedCount"`

	// Policy is the effective policy, defaults filled in when the
	// manifest publishes none.
	Policy SyncPolicy `json:"policy"`
}

// PatchModeResponse is the GET /sync/patch body for the noop and
// full_required modes.
type PatchModeResponse struct {
	Mode          string `json:"mode"`
	FromVersion   string `json:"fromVersion,omitempty"`
	ToVersion     string `json:"toVersion,omitempty"`
	LatestVersion string `json:"latestVersion,omitempty"`
}

// PatchChainResponse is the GET /sync/patch chain body listing the
// relative patch paths to apply in order.
type PatchChainResponse struct {
	Mode        string   `json:"mode"`
	FromVersion string   `json:"fromVersion"`
	ToVersion   string   `json:"toVersion"`
	Patches     []string `json:"patches"`
}

// PatchChainExpandedResponse is the chain body with expand=1:
// the same shape with patch payloads inlined in apply order.
type PatchChainExpandedResponse struct {
	Mode        string      `json:"mode"`
	FromVersion string      `json:"fromVersion"`
	ToVersion   string      `json:"toVersion"`
	Patches     []PatchFile `json:"patches"`
}

// SnapshotInfoResponse is the GET /sync/snapshot body. Records is
// inlined only with includeRecords=1.
type SnapshotInfoResponse struct {
	Version      string   `json:"version"`
	SnapshotPath string   `json:"snapshotPath"`
	SnapshotHash string   `json:"snapshotHash,omitempty"`
	Records      []Record `json:"records,omitempty"`
}

// ErrorResponse is the uniform error body, a machine-readable code.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Patch response mode values.
const (
	PatchModeNoop         = "noop"
	PatchModeChain        = "chain"
	PatchModeCompacted    = "compacted"
	PatchModeFullRequired = "full_required"
)

// Error codes returned by the artifact server.
const (
	ErrCodeMissingFrom         = "missing_from"
	ErrCodePatchNotFound       = "patch_not_found"
	ErrCodeSnapshotNotFound    = "snapshot_not_found"
	ErrCodeSnapshotFileMissing = "snapshot_file_missing"
	ErrCodeManifestMissing     = "manifest_missing"
	ErrCodeRateLimited         = "rate_limited"
	ErrCodeNotFound            = "not_found"
	ErrCodeInternal            = "internal_error"
)
