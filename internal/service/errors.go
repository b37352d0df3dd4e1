package service

import "errors"

var (
	ErrMissingFromVersion = errors.New("from version is required")

	ErrPatchNotFound       = errors.New("no patch chain covers the requested span")
	ErrSnapshotNotFound    = errors.New("snapshot is not published")
	ErrSnapshotFileMissing = errors.New("snapshot file is missing from the data root")
)
