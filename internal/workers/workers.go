package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
)

type entry struct {
	name     string
	worker   Worker
	interval time.Duration
	enabled  bool
	running  bool
}

type Workers struct {
	mu      sync.Mutex
	ctx     context.Context
	entries []*entry

	logger *logger.Logger
}

func NewWorkers(logger *logger.Logger) *Workers {
	return &Workers{logger: logger}
}

// Add registers worker under name. A disabled worker is not started by Run
// until Resume is called for it.
func (w *Workers) Add(name string, worker Worker, interval time.Duration, enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries = append(w.entries, &entry{
		name:     name,
		worker:   worker,
		interval: interval,
		enabled:  enabled,
	})
}

// Run starts every enabled worker with ctx. Workers resumed later are started
// with the same ctx.
func (w *Workers) Run(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.ctx = ctx
	for _, e := range w.entries {
		if e.enabled {
			w.start(e)
		}
	}
}

// Resume enables the named worker and starts it if Run was already called.
// Unknown names are ignored.
func (w *Workers) Resume(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e := w.find(name)
	if e == nil {
		return
	}
	e.enabled = true
	if w.ctx != nil && !e.running {
		w.start(e)
	}
}

// Pause disables and stops the named worker.
func (w *Workers) Pause(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e := w.find(name)
	if e == nil {
		return
	}
	e.enabled = false
	if e.running {
		e.worker.Stop()
		e.running = false
		w.logger.Info().Str("worker", e.name).Msg("worker paused")
	}
}

// Stop stops every running worker, last registered first.
func (w *Workers) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := len(w.entries) - 1; i >= 0; i-- {
		e := w.entries[i]
		if e.running {
			e.worker.Stop()
			e.running = false
		}
	}
	w.ctx = nil
}

func (w *Workers) start(e *entry) {
	e.worker.Start(w.ctx, e.interval)
	e.running = true
	w.logger.Info().Str("worker", e.name).Dur("interval", e.interval).Msg("worker started")
}

func (w *Workers) find(name string) *entry {
	for _, e := range w.entries {
		if e.name == name {
			return e
		}
	}
	return nil
}
