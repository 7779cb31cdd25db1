package db

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/llehouerou/synaudio/internal/dberr"
)

const metricsNamespace = "synaudio"

// Metrics holds the executor's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Queries  *prometheus.CounterVec
	Errors   *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Sessions prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "db",
			Name:      "queries_total",
			Help:      "Queries executed against the library store, by kind.",
		}, []string{"kind"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "db",
			Name:      "query_errors_total",
			Help:      "Failed store operations, by kind and error kind.",
		}, []string{"kind", "error"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Query latency, by kind.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"kind"}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "db",
			Name:      "sessions_open",
			Help:      "Sessions currently holding a connection.",
		}),
	}

	for _, c := range []prometheus.Collector{m.Queries, m.Errors, m.Duration, m.Sessions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.Queries.WithLabelValues(kind).Inc()
	m.Duration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) observeError(kind string, errKind dberr.Kind) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(kind, string(errKind)).Inc()
}

func (m *Metrics) sessionOpened() {
	if m == nil {
		return
	}
	m.Sessions.Inc()
}

func (m *Metrics) sessionClosed() {
	if m == nil {
		return
	}
	m.Sessions.Dec()
}
