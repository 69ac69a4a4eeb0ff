// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
)

// fakeWorker записывает вызовы Start и Stop в общий журнал.
type fakeWorker struct {
	name      string
	journal   *[]string
	intervals []time.Duration
}

func (f *fakeWorker) Start(_ context.Context, interval time.Duration) {
	f.intervals = append(f.intervals, interval)
	*f.journal = append(*f.journal, "start "+f.name)
}

func (f *fakeWorker) Stop() {
	*f.journal = append(*f.journal, "stop "+f.name)
}

func newFakes(journal *[]string, names ...string) []*fakeWorker {
	fakes := make([]*fakeWorker, 0, len(names))
	for _, n := range names {
		fakes = append(fakes, &fakeWorker{name: n, journal: journal})
	}
	return fakes
}

func TestWorkers_RunStartsEnabledOnly(t *testing.T) {
	var journal []string
	fakes := newFakes(&journal, "hub", "cloud")

	ws := NewWorkers(logger.Nop())
	ws.Add("hub", fakes[0], 30*time.Second, true)
	ws.Add("cloud", fakes[1], time.Minute, false)
	ws.Run(context.Background())

	assert.Equal(t, []string{"start hub"}, journal)
	assert.Equal(t, []time.Duration{30 * time.Second}, fakes[0].intervals)
}

func TestWorkers_ResumeAndPause(t *testing.T) {
	var journal []string
	fakes := newFakes(&journal, "cloud")

	ws := NewWorkers(logger.Nop())
	ws.Add("cloud", fakes[0], time.Minute, false)

	// до Run только включает
	ws.Resume("cloud")
	assert.Empty(t, journal)

	ws.Run(context.Background())
	assert.Equal(t, []string{"start cloud"}, journal)

	// повторный Resume не перезапускает
	ws.Resume("cloud")
	assert.Len(t, journal, 1)

	ws.Pause("cloud")
	ws.Pause("cloud")
	assert.Equal(t, []string{"start cloud", "stop cloud"}, journal)

	ws.Resume("cloud")
	assert.Equal(t, []string{"start cloud", "stop cloud", "start cloud"}, journal)

	ws.Resume("unknown")
	ws.Pause("unknown")
	assert.Len(t, journal, 3)
}

func TestWorkers_StopInReverseOrder(t *testing.T) {
	var journal []string
	fakes := newFakes(&journal, "hub", "cloud", "idle")

	ws := NewWorkers(logger.Nop())
	ws.Add("hub", fakes[0], 0, true)
	ws.Add("cloud", fakes[1], 0, true)
	ws.Add("idle", fakes[2], 0, false)
	ws.Run(context.Background())
	journal = journal[:0]

	ws.Stop()
	assert.Equal(t, []string{"stop cloud", "stop hub"}, journal)

	// после Stop Resume ждёт следующего Run
	ws.Resume("hub")
	assert.Equal(t, []string{"stop cloud", "stop hub"}, journal)
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers(logger.Nop())

	// не паникует без зарегистрированных заданий
	ws.Run(context.Background())
	ws.Stop()
}
