package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError folds a non-2xx response into ErrFetchFailed, narrowing
// the two statuses the orchestrator reacts to differently.
func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	code := resp.StatusCode()
	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	switch code {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w: %s", ErrFetchFailed, ErrArtifactNotFound, body)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w: %s", ErrFetchFailed, ErrRateLimited, body)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrFetchFailed, code, body)
	}
}
