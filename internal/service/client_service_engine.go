// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/metrics"
	"github.com/MKhiriev/go-mission-sync/internal/store"
	"github.com/MKhiriev/go-mission-sync/models"
)

type syncEngine struct {
	name      string
	transport Transport
	strategy  ChangeSetStrategy
	puller    Puller
	local     store.LocalStore
	metrics   *metrics.SyncMetrics
	now       func() time.Time

	status  *StatusBroadcaster
	running atomic.Bool
	// session is set when transport availability implies a signed-in session.
	session bool

	cursorMu sync.Mutex
	cursor   time.Time
}

// EngineOption customises a sync engine.
type EngineOption func(e *syncEngine)

// WithPuller adds a pull phase after every push. Pulled records are merged
// into local as create-or-no-op.
func WithPuller(p Puller) EngineOption {
	return func(e *syncEngine) {
		e.puller = p
	}
}

// WithMetrics reports every cycle to m.
func WithMetrics(m *metrics.SyncMetrics) EngineOption {
	return func(e *syncEngine) {
		e.metrics = m
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) EngineOption {
	return func(e *syncEngine) {
		e.now = now
	}
}

// NewSyncEngine builds one engine around transport and strategy. The engine
// is named after its transport.
func NewSyncEngine(transport Transport, strategy ChangeSetStrategy, local store.LocalStore, opts ...EngineOption) SyncEngine {
	e := &syncEngine{
		name:      transport.Name(),
		transport: transport,
		strategy:  strategy,
		local:     local,
		now:       time.Now,
		cursor:    time.UnixMilli(0).UTC(),
	}
	if st, ok := transport.(SessionTransport); ok {
		e.session = st.RequiresSession()
	}
	for _, opt := range opts {
		opt(e)
	}

	e.status = NewStatusBroadcaster(models.SyncStatus{Engine: e.name})
	return e
}

func (e *syncEngine) Name() string {
	return e.name
}

func (e *syncEngine) ForceSync(ctx context.Context) (models.CycleResult, error) {
	return e.Sync(ctx)
}

func (e *syncEngine) Sync(ctx context.Context) (models.CycleResult, error) {
	if !e.running.CompareAndSwap(false, true) {
		e.metrics.ObserveCycle(e.name, metrics.ResultInFlight, 0)
		return models.CycleResult{}, ErrSyncInProgress
	}
	defer e.running.Store(false)

	log := logger.FromContext(ctx).With().Str("engine", e.name).Logger()
	start := e.now()

	if err := e.transport.Available(ctx); err != nil {
		switch {
		case errors.Is(err, ErrNotAuthenticated):
			e.status.Update(func(s *models.SyncStatus) {
				s.IsAuthenticated = false
			})
			e.metrics.ObserveCycle(e.name, metrics.ResultNoAuth, e.now().Sub(start))
			return models.CycleResult{}, ErrNotAuthenticated

		case errors.Is(err, ErrHubUnreachable):
			e.status.Update(func(s *models.SyncStatus) {
				s.IsOnline = false
			})
			e.metrics.ObserveCycle(e.name, metrics.ResultSkipped, e.now().Sub(start))
			log.Debug().Err(err).Msg("remote unreachable, cycle skipped")
			return models.CycleResult{Skipped: true}, nil

		default:
			msg := err.Error()
			e.status.Update(func(s *models.SyncStatus) {
				s.LastError = &msg
				s.IsOnline = false
			})
			e.metrics.ObserveCycle(e.name, metrics.ResultError, e.now().Sub(start))
			log.Error().Err(err).Msg("sync engine unavailable")
			return models.CycleResult{}, err
		}
	}

	e.status.Update(func(s *models.SyncStatus) {
		s.IsSyncing = true
		if e.session {
			s.IsAuthenticated = true
		}
	})

	result, cycleErr := e.cycle(ctx)

	pending, countErr := e.strategy.Count(ctx)
	if countErr != nil {
		log.Warn().Err(countErr).Msg("failed to refresh pending count")
	}

	finished := e.now()
	e.status.Update(func(s *models.SyncStatus) {
		s.IsSyncing = false
		if countErr == nil {
			s.PendingCount = pending
		}
		if cycleErr != nil {
			msg := cycleErr.Error()
			s.LastError = &msg
			s.IsOnline = false
			return
		}
		s.LastError = nil
		s.LastSyncTime = &finished
		s.IsOnline = true
	})

	took := finished.Sub(start)
	outcome := metrics.ResultOK
	if cycleErr != nil {
		outcome = metrics.ResultError
	}
	e.metrics.ObserveCycle(e.name, outcome, took)
	e.metrics.AddPushed(e.name, result.Pushed)
	e.metrics.AddPulled(e.name, result.Pulled, result.Merged)
	if countErr == nil {
		e.metrics.SetPending(e.name, pending)
	}

	event := log.Info()
	if cycleErr != nil {
		event = log.Error().Err(cycleErr)
	}
	event.
		Int("pending", result.Pending).
		Int("pushed", result.Pushed).
		Int("pulled", result.Pulled).
		Int("merged", result.Merged).
		Dur("took", took).
		Msg("sync cycle finished")

	return result, cycleErr
}

// cycle pushes and then pulls. A failed push does not prevent the pull.
func (e *syncEngine) cycle(ctx context.Context) (models.CycleResult, error) {
	var (
		result models.CycleResult
		errs   []error
	)

	cs, err := e.strategy.Pending(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("select pending records: %w", err))
	} else if cs.Len() > 0 {
		result.Pending = cs.Len()

		report, err := e.transport.Push(ctx, cs)
		if err != nil {
			errs = append(errs, err)
		}

		groups := make([]string, 0, len(report.Failures))
		for group := range report.Failures {
			groups = append(groups, group)
		}
		sort.Strings(groups)
		for _, group := range groups {
			errs = append(errs, report.Failures[group])
		}

		result.Pushed = len(report.Pushed)
		if len(report.Pushed) > 0 {
			if err = e.strategy.Acknowledge(ctx, report.Pushed); err != nil {
				errs = append(errs, fmt.Errorf("acknowledge pushed records: %w", err))
			}
		}
	}

	if e.puller != nil {
		pulled, merged, err := e.pull(ctx)
		result.Pulled, result.Merged = pulled, merged
		if err != nil {
			errs = append(errs, err)
		}
	}

	return result, errors.Join(errs...)
}

// pull merges everything received after the cursor in one local write. A
// record whose id exists locally, soft-deleted or not, is left untouched.
// The cursor only moves once the merge has committed.
func (e *syncEngine) pull(ctx context.Context) (int, int, error) {
	log := logger.FromContext(ctx)

	recs, cursor, skipped, err := e.puller.Pull(ctx, e.Cursor())
	if err != nil {
		return 0, 0, fmt.Errorf("pull: %w", err)
	}
	for _, skipErr := range skipped {
		log.Warn().Err(skipErr).
			Str("func", "syncEngine.pull").
			Str("engine", e.name).
			Msg("skipping pulled record")
	}

	merged := 0
	if len(recs) > 0 {
		err = e.local.Write(ctx, func(tx store.LocalTx) error {
			merged = 0
			for _, rec := range recs {
				exists, err := tx.Exists(ctx, rec.Kind, rec.ID)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				if err = tx.Create(ctx, rec); err != nil {
					return err
				}
				merged++
			}
			return nil
		})
		if err != nil {
			return len(recs), 0, fmt.Errorf("merge pulled records: %w", err)
		}
	}

	e.cursorMu.Lock()
	e.cursor = cursor
	e.cursorMu.Unlock()

	return len(recs), merged, nil
}

// Cursor returns the lastPulledAt value the next pull will send.
func (e *syncEngine) Cursor() time.Time {
	e.cursorMu.Lock()
	defer e.cursorMu.Unlock()
	return e.cursor
}

func (e *syncEngine) Status() models.SyncStatus {
	return e.status.Snapshot()
}

func (e *syncEngine) Subscribe(fn func(models.SyncStatus)) func() {
	return e.status.Subscribe(fn)
}

func (e *syncEngine) PendingCount(ctx context.Context) (int, error) {
	n, err := e.strategy.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count pending records: %w", err)
	}

	e.status.Update(func(s *models.SyncStatus) {
		s.PendingCount = n
	})
	e.metrics.SetPending(e.name, n)
	return n, nil
}
