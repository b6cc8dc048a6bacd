package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values shared by the receipt counters.
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// ReceiptMetrics tracks receipt processing and lookups.
type ReceiptMetrics struct {
	processed *prometheus.CounterVec
	points    prometheus.Histogram
	lookups   *prometheus.CounterVec
}

// NewReceiptMetrics registers the receipt metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewReceiptMetrics(reg prometheus.Registerer) *ReceiptMetrics {
	if reg == nil {
		return &ReceiptMetrics{}
	}
	processed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "receipts_processed_total",
		Help: "Receipts submitted for processing, by outcome.",
	}, []string{"outcome"})
	points := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "receipts_points",
		Help:    "Points awarded to accepted receipts.",
		Buckets: []float64{0, 10, 25, 50, 75, 100, 150, 200, 300, 500},
	})
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "receipts_lookups_total",
		Help: "Points lookups by id, by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(processed, points, lookups)
	return &ReceiptMetrics{
		processed: processed,
		points:    points,
		lookups:   lookups,
	}
}

// ObserveProcessed counts a processing attempt and, when accepted, its points.
func (m *ReceiptMetrics) ObserveProcessed(outcome string, points int64) {
	if m == nil || m.processed == nil {
		return
	}
	m.processed.WithLabelValues(normalizeLabel(outcome)).Inc()
	if outcome == OutcomeAccepted {
		m.points.Observe(float64(points))
	}
}

// ObserveLookup counts a points lookup.
func (m *ReceiptMetrics) ObserveLookup(outcome string) {
	if m == nil || m.lookups == nil {
		return
	}
	m.lookups.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

// ProcessedCounter exposes the processed counter for an outcome.
func (m *ReceiptMetrics) ProcessedCounter(outcome string) prometheus.Counter {
	return m.processed.WithLabelValues(normalizeLabel(outcome))
}

// LookupCounter exposes the lookup counter for an outcome.
func (m *ReceiptMetrics) LookupCounter(outcome string) prometheus.Counter {
	return m.lookups.WithLabelValues(normalizeLabel(outcome))
}
