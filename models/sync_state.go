package models

import "time"

// ClientSyncState is the ledger row tracking where one client stands
// for one dataset. One row per (client, dataset).
type ClientSyncState struct {
	ClientID       string    `json:"clientId"`
	Dataset        string    `json:"dataset"`
	CurrentVersion string    `json:"currentVersion"`
	StateHash      string    `json:"stateHash"`
	SyncedAt       time.Time `json:"syncedAt"`
}

// DatasetVersionRecord is ledger bookkeeping for every version a client
// has successfully applied, keyed "dataset:version". Upserted on apply.
type DatasetVersionRecord struct {
	ID          string    `json:"id"`
	Dataset     string    `json:"dataset"`
	Version     string    `json:"version"`
	StateHash   string    `json:"stateHash"`
	RecordCount int       `json:"recordCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
