// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// cardsync command-line surfaces.
//
// All Msg* constants are human-readable message strings printed by CLI
// commands or written into log entries to describe the outcome of an
// operation. Keeping them in one place ensures consistent wording across
// the binaries.
package app

const (
	// MsgAlreadyUpToDate is printed when a sync cycle finds the local
	// catalog already at the latest published version.
	MsgAlreadyUpToDate = "already up to date"

	// MsgSyncCompleted is printed after a sync cycle applied artifacts
	// and advanced the local version.
	MsgSyncCompleted = "sync completed"

	// MsgSyncFailed prefixes the error detail when a sync cycle could
	// not be completed.
	MsgSyncFailed = "sync failed"

	// MsgNeverSynced is printed by status displays when the client has
	// no local catalog state yet.
	MsgNeverSynced = "never synced"

	// MsgCatalogReset is printed after the local catalog, sync state and
	// history have been wiped for the dataset.
	MsgCatalogReset = "local catalog reset"

	// MsgNoRecordsFound is printed when a record lookup matches none of
	// the requested printing ids.
	MsgNoRecordsFound = "no records found"

	// MsgNoTrendData is printed when fewer than two captured values
	// exist for the requested price column.
	MsgNoTrendData = "not enough price history"

	// MsgNoHistory is printed when the apply-history ledger is empty.
	MsgNoHistory = "no sync attempts recorded"

	// MsgNoVersionsApplied is printed when the client has not applied
	// any dataset version yet.
	MsgNoVersionsApplied = "no versions applied yet"
)
