package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSyncMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSyncMetrics(reg)

	m.ObserveCycle("cloud", ResultOK, 10*time.Millisecond)
	m.ObserveCycle("cloud", ResultOK, 20*time.Millisecond)
	m.ObserveCycle("hub", ResultSkipped, time.Millisecond)
	m.AddPushed("cloud", 7)
	m.AddPushed("cloud", 0)
	m.AddPulled("hub", 4, 1)
	m.SetPending("cloud", 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cycles.WithLabelValues("cloud", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycles.WithLabelValues("hub", ResultSkipped)))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.pushed.WithLabelValues("cloud")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.pulled.WithLabelValues("hub")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.merged.WithLabelValues("hub")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.pending.WithLabelValues("cloud")))
}

func TestHubMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHubMetrics(reg)

	m.ObservePush(5, 2, nil)
	m.ObservePush(1, 0, errors.New("bad"))
	m.ObservePull(9, nil)
	m.SetRecords(12)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("push", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("push", ResultError)))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.received))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.stored))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.served))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.records))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var s *SyncMetrics
	var h *HubMetrics

	assert.NotPanics(t, func() {
		s.ObserveCycle("cloud", ResultOK, time.Second)
		s.AddPushed("cloud", 1)
		s.AddPulled("hub", 1, 1)
		s.SetPending("cloud", 1)
		h.ObservePush(1, 1, nil)
		h.ObservePull(1, nil)
		h.SetRecords(1)
	})
}
