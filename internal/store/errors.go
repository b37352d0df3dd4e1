package store

import "errors"

// Domain sentinels. The sync engine matches on these with [errors.Is]
// to pick a recovery path, falling back to a full snapshot mostly.
var (
	// ErrPatchPrecondition is returned when a patch apply is attempted
	// while the local current version differs from the patch's
	// fromVersion. The local state is left untouched; the caller is
	// expected to fall back to a full snapshot resync.
	ErrPatchPrecondition = errors.New("patch precondition failed: local version is not the patch base")

	// ErrManifestMissing is returned when the artifact root has no
	// readable manifest file.
	ErrManifestMissing = errors.New("manifest file is missing")

	// ErrSnapshotFileMissing is returned when a manifest names a
	// snapshot artifact that does not exist on disk.
	ErrSnapshotFileMissing = errors.New("snapshot file is missing")

	// ErrPatchFileMissing is returned when a manifest names a patch
	// artifact that does not exist on disk.
	ErrPatchFileMissing = errors.New("patch file is missing")

	// ErrArtifactMissing is returned by raw artifact reads when the
	// requested path does not exist under the data root.
	ErrArtifactMissing = errors.New("artifact file is missing")

	// ErrUnknownPriceColumn is returned when a trend lookup targets a
	// column outside the known price column set.
	ErrUnknownPriceColumn = errors.New("unknown price column")
)

// Low-level database failures. Repository methods wrap the driver error
// with one of these, so callers can tell which stage of a query went
// wrong without parsing message text.
var (
	// ErrBuildingSQLQuery: the query builder rejected its inputs before
	// any SQL reached the database.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery: a read-only query failed.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction: the driver could not start a transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction: the commit failed; the transaction counts
	// as rolled back and the previous version is still in place.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrPreparingStatement: the upsert statement the apply loop reuses
	// could not be prepared.
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement: an INSERT, UPDATE or DELETE failed.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow: a result row did not fit the destination struct.
	ErrScanningRow = errors.New("failed to scan catalog row")

	// ErrScanningRows: row iteration broke mid-result-set.
	ErrScanningRows = errors.New("failed to scan catalog rows")
)
