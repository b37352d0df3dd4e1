// Package pipeline builds the artifact tree the sync server serves:
// versioned snapshots normalized from raw card dumps, incremental
// patches between consecutive versions, compacted patches covering the
// retention window, the publisher's versions index and the manifest.
//
// The manifest is always written last, so a reader never observes it
// referencing artifacts that do not exist yet.
package pipeline
