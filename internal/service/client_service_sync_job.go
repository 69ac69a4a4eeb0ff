package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
)

const defaultSyncInterval = 45 * time.Second

type clientSyncJob struct {
	engine  SyncEngine
	trigger chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a job that runs engine.Sync on a ticker and on
// Trigger. The job is idle until Start is called.
func NewClientSyncJob(engine SyncEngine) SyncJob {
	return &clientSyncJob{
		engine:  engine,
		trigger: make(chan struct{}, 1),
	}
}

// Start stops any previously running loop, runs one cycle right away and
// then one every interval. Zero or negative interval defaults to 45 seconds.
// The loop exits when ctx is cancelled or Stop is called.
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

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		j.run(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.run(jobCtx)
			case <-j.trigger:
				j.run(jobCtx)
			}
		}
	}()
}

func (j *clientSyncJob) run(ctx context.Context) {
	_, err := j.engine.Sync(ctx)
	switch {
	case err == nil, errors.Is(err, ErrSyncInProgress), errors.Is(err, ErrNotAuthenticated):
	default:
		logger.FromContext(ctx).Debug().Err(err).
			Str("func", "clientSyncJob.run").
			Str("engine", j.engine.Name()).
			Msg("scheduled cycle failed")
	}
}

// Trigger never blocks: a second request while one is queued is dropped.
func (j *clientSyncJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

// Stop cancels the loop and blocks until it has exited. Safe to call when
// the job is not running.
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
