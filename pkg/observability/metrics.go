package observability

import (
	"github.com/aretw0/canopy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes tick counts and durations as Prometheus collectors.
type Metrics struct {
	ticks     *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewMetrics registers the engine collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ticks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "canopy_ticks_total",
			Help: "Recorded ticks per node and result.",
		}, []string{"node", "result"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "canopy_tick_duration_seconds",
			Help:    "Tick wall time per node.",
			Buckets: prometheus.DefBuckets,
		}, []string{"node"}),
	}
}

// Hook returns the tick hook feeding these collectors.
func (m *Metrics) Hook() func(canopy.TickEvent) {
	return func(ev canopy.TickEvent) {
		m.ticks.WithLabelValues(ev.Node, ev.Result.String()).Inc()
		m.durations.WithLabelValues(ev.Node).Observe(ev.Duration.Seconds())
	}
}
