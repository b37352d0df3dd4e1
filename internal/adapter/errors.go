package adapter

import "errors"

var (
	// ErrFetchFailed marks any aborted artifact fetch: transport
	// failure, non-2xx status, or a payload that failed validation.
	// The attempt is recoverable; nothing was applied locally.
	ErrFetchFailed = errors.New("artifact fetch failed")

	// ErrArtifactNotFound narrows ErrFetchFailed for HTTP 404, a stale
	// manifest referencing an artifact the server no longer has.
	ErrArtifactNotFound = errors.New("artifact not found on server")

	// ErrRateLimited narrows ErrFetchFailed for HTTP 429.
	ErrRateLimited = errors.New("rate limited by server")
)
