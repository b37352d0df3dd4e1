package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/utils"
	"github.com/MKhiriev/cardsync/internal/validators"
	"github.com/MKhiriev/cardsync/models"
)

// MemoryCatalogStore keeps the catalog and the sync ledger in maps,
// optionally mirrored to one JSON file. It backs clients that run
// without a database: the zero-setup mode for kiosks and tests.
//
// It implements both [CatalogStore] and [SyncLedger] with the same
// semantics as the SQL repositories, including the shared state hash,
// so a client can switch backends without a resync.
type MemoryCatalogStore struct {
	path     string
	inMemory bool
	dataset  string
	clientID string

	validator validators.Validator
	uuid      *utils.UUIDGenerator

	mu       sync.RWMutex
	versions map[string]map[string]models.Record
	state    *models.ClientSyncState
	history  []models.ApplyHistoryEntry
	applied  []models.DatasetVersionRecord
}

type memoryPersistedState struct {
	Versions map[string]map[string]models.Record `json:"versions"`
	State    *models.ClientSyncState             `json:"state,omitempty"`
	History  []models.ApplyHistoryEntry          `json:"history,omitempty"`
	Applied  []models.DatasetVersionRecord       `json:"applied,omitempty"`
}

// NewMemoryCatalogStore opens the map-backed store. An empty or
// ":memory:" path keeps everything in process memory; any other path is
// loaded at start and rewritten after every mutation.
func NewMemoryCatalogStore(path, dataset, clientID string) (*MemoryCatalogStore, error) {
	if path == "" {
		path = ":memory:"
	}

	inMemory := path == ":memory:" || path == "memory"
	s := &MemoryCatalogStore{
		path:      path,
		inMemory:  inMemory,
		dataset:   dataset,
		clientID:  clientID,
		validator: validators.NewArtifactValidator(),
		uuid:      utils.NewUUIDGenerator(),
		versions:  make(map[string]map[string]models.Record),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MemoryCatalogStore) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local catalog file: %w", err)
	}

	var st memoryPersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode local catalog file: %w", err)
	}

	if st.Versions == nil {
		st.Versions = make(map[string]map[string]models.Record)
	}

	s.versions = st.Versions
	s.state = st.State
	s.history = st.History
	s.applied = st.Applied

	return nil
}

func (s *MemoryCatalogStore) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local catalog dir: %w", err)
		}
	}

	state := memoryPersistedState{
		Versions: s.versions,
		State:    s.state,
		History:  s.history,
		Applied:  s.applied,
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local catalog: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write local catalog file: %w", err)
	}

	return nil
}

// ApplySnapshot replaces the rows tagged snap.Version with snap.Records
// and makes snap.Version the current version.
func (s *MemoryCatalogStore) ApplySnapshot(ctx context.Context, snap models.SnapshotApply) (models.SyncResult, error) {
	log := logger.FromContext(ctx)
	started := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	fromVersion := s.currentVersionLocked()

	if err := s.validator.Validate(ctx, snap.Records); err != nil {
		s.appendHistoryLocked(fromVersion, snap.Version, models.StrategyFull, started, err)
		_ = s.persist()
		return models.SyncResult{}, err
	}

	rows := make(map[string]models.Record, len(snap.Records))
	for _, rec := range snap.Records {
		rows[rec.PrintingID] = rec
	}
	s.versions[snap.Version] = rows

	stateHash := s.finalizeLocked(fromVersion, snap.Version, models.StrategyFull, started)

	if err := s.persist(); err != nil {
		return models.SyncResult{}, err
	}

	mismatch := snap.ExpectedHash != "" && snap.ExpectedHash != stateHash
	if mismatch {
		log.Warn().
			Str("func", "MemoryCatalogStore.ApplySnapshot").
			Str("version", snap.Version).
			Str("expected_hash", snap.ExpectedHash).
			Str("computed_hash", stateHash).
			Msg("state hash mismatch after snapshot apply; keeping applied state")
	}

	return models.SyncResult{
		Dataset:        s.dataset,
		Strategy:       models.StrategyFull,
		FromVersion:    derefOrEmpty(fromVersion),
		ToVersion:      snap.Version,
		AppliedRecords: len(snap.Records),
		StateHash:      stateHash,
		HashMismatch:   mismatch,
		DurationMs:     time.Since(started).Milliseconds(),
	}, nil
}

// ApplyPatch advances the catalog by one patch hop. The hop only runs
// when the current version equals the patch base; otherwise
// [ErrPatchPrecondition] is returned and nothing changes.
func (s *MemoryCatalogStore) ApplyPatch(ctx context.Context, patch models.PatchApply) (models.SyncResult, error) {
	log := logger.FromContext(ctx)
	started := time.Now()

	p := patch.Patch
	from := p.FromVersion

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validator.Validate(ctx, p); err != nil {
		s.appendHistoryLocked(&from, p.ToVersion, patch.Strategy, started, err)
		_ = s.persist()
		return models.SyncResult{}, err
	}

	if s.state == nil || s.state.CurrentVersion != p.FromVersion {
		current := ""
		if s.state != nil {
			current = s.state.CurrentVersion
		}
		log.Warn().
			Str("func", "MemoryCatalogStore.ApplyPatch").
			Str("patch_from", p.FromVersion).
			Str("local_version", current).
			Msg("patch base does not match local version")
		preconditionErr := fmt.Errorf("%w: have %q, need %q", ErrPatchPrecondition, current, p.FromVersion)
		s.appendHistoryLocked(&from, p.ToVersion, patch.Strategy, started, preconditionErr)
		_ = s.persist()
		return models.SyncResult{}, preconditionErr
	}

	rows := make(map[string]models.Record, len(s.versions[p.FromVersion]))
	for id, rec := range s.versions[p.FromVersion] {
		rows[id] = rec
	}
	for _, id := range p.Removed {
		delete(rows, id)
	}
	for _, rec := range p.Added {
		rows[rec.PrintingID] = rec
	}
	for _, rec := range p.Updated {
		rows[rec.PrintingID] = rec
	}
	s.versions[p.ToVersion] = rows

	stateHash := s.finalizeLocked(&from, p.ToVersion, patch.Strategy, started)

	if err := s.persist(); err != nil {
		return models.SyncResult{}, err
	}

	mismatch := patch.ExpectedHash != "" && patch.ExpectedHash != stateHash
	if mismatch {
		log.Warn().
			Str("func", "MemoryCatalogStore.ApplyPatch").
			Str("to_version", p.ToVersion).
			Str("expected_hash", patch.ExpectedHash).
			Str("computed_hash", stateHash).
			Msg("state hash mismatch after patch apply; keeping applied state")
	}

	return models.SyncResult{
		Dataset:        s.dataset,
		Strategy:       patch.Strategy,
		FromVersion:    p.FromVersion,
		ToVersion:      p.ToVersion,
		AppliedPatches: 1,
		AppliedRecords: p.ChangedCount(),
		RemovedRecords: len(p.Removed),
		StateHash:      stateHash,
		HashMismatch:   mismatch,
		DurationMs:     time.Since(started).Milliseconds(),
	}, nil
}

// GetCatalogPriceRecords returns the newest captured row per requested
// printing id, searching every stored version. Ties on captured_at are
// broken by the lexically newer version tag, matching the SQL backend.
func (s *MemoryCatalogStore) GetCatalogPriceRecords(_ context.Context, printingIDs []string) (map[string]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make(map[string]models.Record, len(printingIDs))

	for _, id := range printingIDs {
		var best models.Record
		var bestVersion string
		found := false

		for version, rows := range s.versions {
			rec, ok := rows[id]
			if !ok {
				continue
			}
			if !found ||
				rec.CapturedAt > best.CapturedAt ||
				(rec.CapturedAt == best.CapturedAt && version > bestVersion) {
				best = rec
				bestVersion = version
				found = true
			}
		}

		if found {
			records[id] = best
		}
	}

	return records, nil
}

// GetPriceTrend compares the two most recent distinct captures of one
// price column across every stored version.
func (s *MemoryCatalogStore) GetPriceTrend(_ context.Context, printingID string, column models.PriceColumn) (models.PriceTrend, error) {
	if !models.KnownPriceColumn(column) {
		return models.PriceTrend{}, fmt.Errorf("%w: %q", ErrUnknownPriceColumn, column)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type capture struct {
		value      float64
		capturedAt string
	}

	seen := make(map[capture]struct{})
	captures := make([]capture, 0, 8)

	for _, rows := range s.versions {
		rec, ok := rows[printingID]
		if !ok {
			continue
		}
		value, ok := priceColumnValue(rec, column)
		if !ok {
			continue
		}
		c := capture{value: value, capturedAt: rec.CapturedAt}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		captures = append(captures, c)
	}

	sort.Slice(captures, func(i, j int) bool {
		return captures[i].capturedAt > captures[j].capturedAt
	})
	if len(captures) > 2 {
		captures = captures[:2]
	}

	values := make([]float64, 0, 2)
	capturedAts := make([]string, 0, 2)
	for _, c := range captures {
		values = append(values, c.value)
		capturedAts = append(capturedAts, c.capturedAt)
	}

	trend := models.PriceTrend{
		PrintingID: printingID,
		Column:     column,
		Direction:  models.TrendNone,
	}

	return buildTrend(trend, values, capturedAts), nil
}

func priceColumnValue(rec models.Record, column models.PriceColumn) (float64, bool) {
	switch column {
	case models.PriceColumnMarket:
		return rec.MarketPrice, true
	case models.PriceColumnLow:
		if rec.LowPrice == nil {
			return 0, false
		}
		return *rec.LowPrice, true
	case models.PriceColumnHigh:
		if rec.HighPrice == nil {
			return 0, false
		}
		return *rec.HighPrice, true
	}
	return 0, false
}

// CountRecords counts distinct printings tagged with version.
func (s *MemoryCatalogStore) CountRecords(_ context.Context, version string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.versions[version]), nil
}

// ComputeStateHash fingerprints the rows tagged with version using the
// same projection as the SQL backend.
func (s *MemoryCatalogStore) ComputeStateHash(_ context.Context, version string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ComputeStateHashForRows(s.dataset, s.rowsLocked(version)), nil
}

// GetSyncState returns a copy of the current position, or nil when the
// client has never completed an apply.
func (s *MemoryCatalogStore) GetSyncState(_ context.Context) (*models.ClientSyncState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return nil, nil
	}
	state := *s.state
	return &state, nil
}

// AppendApplyHistory records one apply attempt in the ledger.
func (s *MemoryCatalogStore) AppendApplyHistory(_ context.Context, entry models.ApplyHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = s.uuid.Generate()
	}
	if entry.ClientID == "" {
		entry.ClientID = s.clientID
	}
	if entry.Dataset == "" {
		entry.Dataset = s.dataset
	}
	if entry.AppliedAt.IsZero() {
		entry.AppliedAt = utils.NowUTC()
	}

	s.history = append(s.history, entry)

	return s.persist()
}

// ListApplyHistory returns the most recent apply attempts, newest first.
func (s *MemoryCatalogStore) ListApplyHistory(_ context.Context, limit int) ([]models.ApplyHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]models.ApplyHistoryEntry, len(s.history))
	copy(entries, s.history)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AppliedAt.After(entries[j].AppliedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// ListDatasetVersions returns every successfully applied version,
// oldest first.
func (s *MemoryCatalogStore) ListDatasetVersions(_ context.Context) ([]models.DatasetVersionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := make([]models.DatasetVersionRecord, len(s.applied))
	copy(versions, s.applied)

	sort.SliceStable(versions, func(i, j int) bool {
		if versions[i].CreatedAt.Equal(versions[j].CreatedAt) {
			return versions[i].Version < versions[j].Version
		}
		return versions[i].CreatedAt.Before(versions[j].CreatedAt)
	})

	return versions, nil
}

// Reset wipes the catalog rows and the whole ledger. The next sync
// starts from scratch with a full snapshot.
func (s *MemoryCatalogStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.versions = make(map[string]map[string]models.Record)
	s.state = nil
	s.history = nil
	s.applied = nil

	return s.persist()
}

func (s *MemoryCatalogStore) rowsLocked(version string) []models.Record {
	rows := make([]models.Record, 0, len(s.versions[version]))
	for _, rec := range s.versions[version] {
		rows = append(rows, rec)
	}
	return rows
}

func (s *MemoryCatalogStore) currentVersionLocked() *string {
	if s.state == nil {
		return nil
	}
	v := s.state.CurrentVersion
	return &v
}

// finalizeLocked advances the sync state, upserts the dataset version
// record and appends the success history entry. Mirrors what the SQL
// backend does inside the apply transaction.
func (s *MemoryCatalogStore) finalizeLocked(from *string, to string, strategy models.SyncStrategy, started time.Time) string {
	stateHash := ComputeStateHashForRows(s.dataset, s.rowsLocked(to))
	now := utils.NowUTC()

	s.state = &models.ClientSyncState{
		ClientID:       s.clientID,
		Dataset:        s.dataset,
		CurrentVersion: to,
		StateHash:      stateHash,
		SyncedAt:       now,
	}

	id := s.dataset + ":" + to
	replaced := false
	for i := range s.applied {
		if s.applied[i].ID == id {
			// created_at survives re-application, matching the SQL upsert.
			s.applied[i].StateHash = stateHash
			s.applied[i].RecordCount = len(s.versions[to])
			replaced = true
			break
		}
	}
	if !replaced {
		s.applied = append(s.applied, models.DatasetVersionRecord{
			ID:          id,
			Dataset:     s.dataset,
			Version:     to,
			StateHash:   stateHash,
			RecordCount: len(s.versions[to]),
			CreatedAt:   now,
		})
	}

	s.appendHistoryLocked(from, to, strategy, started, nil)

	return stateHash
}

func (s *MemoryCatalogStore) appendHistoryLocked(from *string, to string, strategy models.SyncStrategy, started time.Time, applyErr error) {
	entry := models.ApplyHistoryEntry{
		ID:          s.uuid.Generate(),
		ClientID:    s.clientID,
		Dataset:     s.dataset,
		FromVersion: from,
		ToVersion:   to,
		Strategy:    strategy,
		DurationMs:  time.Since(started).Milliseconds(),
		Result:      models.ApplyResultSuccess,
		AppliedAt:   utils.NowUTC(),
	}
	if applyErr != nil {
		message := applyErr.Error()
		entry.Result = models.ApplyResultFailure
		entry.ErrorMessage = &message
	}

	s.history = append(s.history, entry)
}
