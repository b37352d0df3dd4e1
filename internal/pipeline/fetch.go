package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/cardsync/internal/utils"
)

// sourceFetchTimeout bounds one source dump download. Dumps run to
// hundreds of megabytes, so this sits far above the artifact fetch
// timeout the sync client uses.
const sourceFetchTimeout = 10 * time.Minute

// FetchSource downloads a source dump from sourceURL into destPath,
// creating parent directories as needed. The response streams straight
// to disk instead of being buffered.
func FetchSource(ctx context.Context, sourceURL, destPath string) error {
	if dir := filepath.Dir(destPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create source dir: %w", err)
		}
	}

	client := utils.NewHTTPClient()
	client.SetTimeout(sourceFetchTimeout)

	resp, err := client.R().SetContext(ctx).SetOutput(destPath).Get(sourceURL)
	if err != nil {
		return fmt.Errorf("fetch source dump: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		// Whatever the server sent was saved; an error page is not a dump.
		_ = os.Remove(destPath)
		return fmt.Errorf("fetch source dump: unexpected status %d", resp.StatusCode())
	}

	return nil
}
