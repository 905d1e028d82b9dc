package requestq

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PromMetrics is a MetricsPolicy implementation backed by Prometheus
// counters, for callers that already run a registry.
type PromMetrics struct {
	reg prometheus.Registerer

	enqueued  prometheus.Counter
	admitted  prometheus.Counter
	completed prometheus.Counter
	timedOut  prometheus.Counter
	cleared   prometheus.Counter
}

// NewPromMetrics registers the queue counters with reg and returns the
// MetricsPolicy to pass in Options.Metrics.
func NewPromMetrics(reg prometheus.Registerer) *PromMetrics {
	factory := promauto.With(reg)

	return &PromMetrics{
		reg: reg,
		enqueued: factory.NewCounter(prometheus.CounterOpts{
			Name: "requestq_enqueued_total",
			Help: "Number of requests submitted to the queue.",
		}),
		admitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "requestq_admitted_total",
			Help: "Number of requests admitted for execution.",
		}),
		completed: factory.NewCounter(prometheus.CounterOpts{
			Name: "requestq_completed_total",
			Help: "Number of operations that returned, regardless of outcome.",
		}),
		timedOut: factory.NewCounter(prometheus.CounterOpts{
			Name: "requestq_timed_out_total",
			Help: "Number of requests settled by the per-request timeout.",
		}),
		cleared: factory.NewCounter(prometheus.CounterOpts{
			Name: "requestq_cleared_total",
			Help: "Number of waiting requests rejected by Clear or Shutdown.",
		}),
	}
}

// TrackDepth registers gauges over a live queue snapshot. stats is
// called on every scrape; pass the Stats method of the queue this
// PromMetrics instance was given to.
func (m *PromMetrics) TrackDepth(stats func() Stats) {
	factory := promauto.With(m.reg)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "requestq_queued",
		Help: "Number of requests waiting for admission.",
	}, func() float64 {
		return float64(stats().Queued)
	})

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "requestq_active",
		Help: "Number of admitted requests currently in flight.",
	}, func() float64 {
		return float64(stats().Active)
	})
}

func (m *PromMetrics) IncEnqueued()       { m.enqueued.Inc() }
func (m *PromMetrics) IncAdmitted()       { m.admitted.Inc() }
func (m *PromMetrics) IncCompleted()      { m.completed.Inc() }
func (m *PromMetrics) IncTimedOut()       { m.timedOut.Inc() }
func (m *PromMetrics) AddCleared(n int64) { m.cleared.Add(float64(n)) }
