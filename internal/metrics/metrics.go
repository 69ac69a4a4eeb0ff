// Package metrics exposes Prometheus collectors of the sync engines and the
// hub. Collectors are registered on an explicit registerer so tests and the
// two binaries never share global state.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cycle results used as the "result" label.
const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultSkipped  = "skipped"
	ResultNoAuth   = "unauthenticated"
	ResultInFlight = "in_flight"
)

// SyncMetrics tracks sync cycles per engine. A nil *SyncMetrics is valid and
// records nothing.
type SyncMetrics struct {
	cycles   *prometheus.CounterVec
	pushed   *prometheus.CounterVec
	pulled   *prometheus.CounterVec
	merged   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	pending  *prometheus.GaugeVec
}

// NewSyncMetrics registers the sync collectors on reg.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	factory := promauto.With(reg)

	return &SyncMetrics{
		// Cycles counts finished cycles by engine and result
		cycles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mission_sync_cycles_total",
			Help: "Total number of sync cycles by engine and result",
		}, []string{"engine", "result"}),

		pushed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mission_sync_records_pushed_total",
			Help: "Records whose push to the remote replica committed",
		}, []string{"engine"}),

		pulled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mission_sync_records_pulled_total",
			Help: "Records received from the remote replica",
		}, []string{"engine"}),

		// Merged is the subset of pulled records that were new locally
		merged: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mission_sync_records_merged_total",
			Help: "Pulled records created in the local store",
		}, []string{"engine"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mission_sync_cycle_duration_seconds",
			Help:    "Duration of sync cycles in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"engine"}),

		pending: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mission_sync_pending_records",
			Help: "Local records waiting for the next push",
		}, []string{"engine"}),
	}
}

// ObserveCycle records one finished cycle.
func (m *SyncMetrics) ObserveCycle(engine, result string, took time.Duration) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(engine, result).Inc()
	m.duration.WithLabelValues(engine).Observe(took.Seconds())
}

func (m *SyncMetrics) AddPushed(engine string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.pushed.WithLabelValues(engine).Add(float64(n))
}

func (m *SyncMetrics) AddPulled(engine string, pulled, merged int) {
	if m == nil {
		return
	}
	if pulled > 0 {
		m.pulled.WithLabelValues(engine).Add(float64(pulled))
	}
	if merged > 0 {
		m.merged.WithLabelValues(engine).Add(float64(merged))
	}
}

func (m *SyncMetrics) SetPending(engine string, n int) {
	if m == nil {
		return
	}
	m.pending.WithLabelValues(engine).Set(float64(n))
}

// HubMetrics tracks the hub side of the protocol. A nil *HubMetrics is valid.
type HubMetrics struct {
	requests *prometheus.CounterVec
	received prometheus.Counter
	stored   prometheus.Counter
	served   prometheus.Counter
	records  prometheus.Gauge
}

// NewHubMetrics registers the hub collectors on reg.
func NewHubMetrics(reg prometheus.Registerer) *HubMetrics {
	factory := promauto.With(reg)

	return &HubMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mission_hub_requests_total",
			Help: "Hub protocol requests by operation and result",
		}, []string{"op", "result"}),
		received: factory.NewCounter(prometheus.CounterOpts{
			Name: "mission_hub_records_received_total",
			Help: "Records received in push requests",
		}),
		stored: factory.NewCounter(prometheus.CounterOpts{
			Name: "mission_hub_records_stored_total",
			Help: "Pushed records that were new or newer than the stored copy",
		}),
		served: factory.NewCounter(prometheus.CounterOpts{
			Name: "mission_hub_records_served_total",
			Help: "Records returned by pull requests",
		}),
		records: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mission_hub_records",
			Help: "Records held by the hub",
		}),
	}
}

func (m *HubMetrics) ObservePush(received, stored int, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues("push", result(err)).Inc()
	m.received.Add(float64(received))
	m.stored.Add(float64(stored))
}

func (m *HubMetrics) ObservePull(served int, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues("pull", result(err)).Inc()
	m.served.Add(float64(served))
}

func (m *HubMetrics) SetRecords(n int) {
	if m == nil {
		return
	}
	m.records.Set(float64(n))
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
