package listing

import (
	"github.com/prometheus/client_golang/prometheus"

	"imgmeta"
)

// Metrics holds the Prometheus collectors for extraction outcomes.
type Metrics struct {
	ExtractionsTotal *prometheus.CounterVec
	ExtractedBytes   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ExtractionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "imgmeta_extractions_total",
				Help: "Metadata extractions by format and outcome",
			},
			[]string{"format", "outcome"},
		),
		ExtractedBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "imgmeta_extracted_bytes",
				Help:    "Size of files whose metadata was extracted",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.ExtractionsTotal, m.ExtractedBytes)
	}
	return m
}

// Observe records one extraction result.
func (m *Metrics) Observe(res imgmeta.Result) {
	format := string(res.Format)
	if format == "" {
		format = "unknown"
	}
	if res.Err != nil {
		m.ExtractionsTotal.WithLabelValues(format, res.Kind().String()).Inc()
		return
	}
	m.ExtractionsTotal.WithLabelValues(format, "ok").Inc()
	m.ExtractedBytes.Observe(float64(res.FileSize()))
}
