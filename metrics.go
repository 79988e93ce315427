package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "almanac"

// Metrics holds the collectors for one run. A nil *Metrics records nothing.
type Metrics struct {
	// SeedsEvaluated counts work-items launched.
	SeedsEvaluated prometheus.Counter

	// WorkGroups counts work-groups dispatched.
	WorkGroups prometheus.Counter

	// DispatchSeconds measures one MinReduce call end to end.
	DispatchSeconds prometheus.Histogram

	// UploadBytes counts bytes transferred to the device.
	UploadBytes prometheus.Counter

	// RangesTotal counts seed ranges folded by the optimizer, by outcome.
	// Labels: outcome (evaluated, empty)
	RangesTotal *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SeedsEvaluated: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "seeds_evaluated_total",
			Help:      "Seeds evaluated by the kernel",
		}),
		WorkGroups: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "work_groups_total",
			Help:      "Work-groups dispatched",
		}),
		DispatchSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "dispatch_seconds",
			Help:      "Duration of one seed-range reduction",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
		}),
		UploadBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upload_bytes_total",
			Help:      "Bytes transferred to the device",
		}),
		RangesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ranges_total",
			Help:      "Seed ranges processed by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) recordDispatch(seeds, groups int64, d time.Duration) {
	if m == nil {
		return
	}
	m.SeedsEvaluated.Add(float64(seeds))
	m.WorkGroups.Add(float64(groups))
	m.DispatchSeconds.Observe(d.Seconds())
}

func (m *Metrics) recordUpload(n int) {
	if m == nil {
		return
	}
	m.UploadBytes.Add(float64(n))
}

func (m *Metrics) recordRange(empty bool) {
	if m == nil {
		return
	}
	outcome := "evaluated"
	if empty {
		outcome = "empty"
	}
	m.RangesTotal.WithLabelValues(outcome).Inc()
}
