package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/models"
)

// defaultSyncInterval is used when Start gets a zero or negative
// interval. The dataset publishes once a day, so anything tighter only
// burns requests.
const defaultSyncInterval = time.Hour

type clientSyncJob struct {
	syncService ClientSyncService
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates the background worker that calls Sync on a
// schedule. The job is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{syncService: syncService, logger: logger}
}

// Start implements ClientSyncJob. Only one loop runs per job: starting
// again first stops the previous loop, then launches a fresh one that
// syncs every interval until ctx is cancelled or Stop is called. The
// first cycle fires after one full interval; the caller is expected to
// have synced once already when freshness at startup matters.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go j.run(jobCtx, interval)
}

// run ticks until the context dies. Cycle failures are logged and the
// schedule keeps going: the server being down for the night is not a
// reason to stop checking.
func (j *clientSyncJob) run(ctx context.Context, interval time.Duration) {
	defer j.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := j.syncService.Sync(ctx)
			if err != nil {
				j.logger.Warn().
					Err(err).
					Str("func", "clientSyncJob.run").
					Msg("scheduled sync cycle failed")
				continue
			}

			if result.Strategy != models.StrategyNoop {
				j.logger.Info().
					Str("func", "clientSyncJob.run").
					Str("strategy", string(result.Strategy)).
					Str("to_version", result.ToVersion).
					Msg("scheduled sync advanced the catalog")
			}
		}
	}
}

// Stop implements ClientSyncJob. It cancels the loop's context and
// blocks until the goroutine has fully exited. Safe to call when the
// job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
