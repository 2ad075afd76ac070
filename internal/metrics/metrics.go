package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Probe results used as the "result" label.
const (
	ResultOK       = "ok"
	ResultAbsent   = "absent"
	ResultTimeout  = "timeout"
	ResultFault    = "fault"
	ResultCanceled = "canceled"
)

// Metrics holds the probe session metrics. A nil *Metrics records nothing.
type Metrics struct {
	// Probe metrics
	Probes        *prometheus.CounterVec
	ProbeDuration prometheus.Histogram
	ProberResets  prometheus.Counter

	// Translation metrics
	SkippedStreams *prometheus.CounterVec

	// Box walker metrics
	BoxWalks *prometheus.CounterVec
}

// New creates the metrics and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Probes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "probes_total",
				Help:      "Total number of probe sessions by result",
			},
			[]string{"result"}, // ok, absent, timeout, fault, canceled
		),
		ProbeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_duration_seconds",
			Help:      "Wall-clock duration of probe sessions",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10), // 10ms to ~43m
		}),
		ProberResets: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prober_resets_total",
			Help:      "Number of times the prober was discarded after a timeout or fault",
		}),
		SkippedStreams: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "skipped_streams_total",
				Help:      "Streams dropped because their translation faulted",
			},
			[]string{"kind"},
		),
		BoxWalks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "box_walks_total",
				Help:      "ISO-BMFF box walks by outcome",
			},
			[]string{"result"}, // moov_first, co64, not_optimized, unreadable
		),
	}
}

// RecordProbe records one finished probe session
func (m *Metrics) RecordProbe(result string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.Probes.WithLabelValues(result).Inc()
	m.ProbeDuration.Observe(durationSeconds)
}

func (m *Metrics) RecordReset() {
	if m == nil {
		return
	}
	m.ProberResets.Inc()
}

func (m *Metrics) RecordSkippedStream(kind string) {
	if m == nil {
		return
	}
	m.SkippedStreams.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordBoxWalk(result string) {
	if m == nil {
		return
	}
	m.BoxWalks.WithLabelValues(result).Inc()
}
