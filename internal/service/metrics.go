package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the conversion counters and upstream latency histogram.
type Metrics struct {
	conversions *prometheus.CounterVec
	upstream    prometheus.Histogram
}

// NewMetrics registers the conversion metrics with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marc_conversions_total",
				Help: "Total number of MARC conversions by output format and outcome.",
			},
			[]string{"format", "outcome"},
		),
		upstream: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pergamum_request_duration_seconds",
				Help:    "Latency of busca_marc calls to the Pergamum web service.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	for _, c := range []prometheus.Collector{m.conversions, m.upstream} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeConversion(format, outcome string) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(format, outcome).Inc()
}

func (m *Metrics) observeUpstream(seconds float64) {
	if m == nil {
		return
	}
	m.upstream.Observe(seconds)
}
