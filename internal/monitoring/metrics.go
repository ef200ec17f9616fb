package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector handles Prometheus metrics collection and reporting
type MetricsCollector struct {
	registry *prometheus.Registry
	metrics  map[string]prometheus.Collector
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	deductionsApplied := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_deductions_total",
			Help: "Pantry deductions applied after cooking",
		},
		[]string{"outcome"},
	)

	billItemsSaved := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bill_items_saved_total",
			Help: "Scanned bill items saved to the pantry",
		},
		[]string{"outcome"},
	)

	modelCalls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_calls_total",
			Help: "Generative model calls by feature",
		},
		[]string{"feature", "status"},
	)

	modelLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_call_duration_seconds",
			Help:    "Latency of generative model calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
		[]string{"feature"},
	)

	expiringItems := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pantry_expiring_items",
			Help: "Items expired or expiring within the warning window",
		},
		[]string{"state"},
	)

	// Create metrics map
	metrics := map[string]prometheus.Collector{
		"request_duration": requestDuration,
		"deductions":       deductionsApplied,
		"bill_items":       billItemsSaved,
		"model_calls":      modelCalls,
		"model_latency":    modelLatency,
		"expiring_items":   expiringItems,
	}

	// Register metrics
	for _, metric := range metrics {
		registry.MustRegister(metric)
	}

	return &MetricsCollector{
		registry: registry,
		metrics:  metrics,
	}
}

// Registry exposes the underlying registry for the /metrics handler
func (mc *MetricsCollector) Registry() *prometheus.Registry {
	return mc.registry
}

// RecordRequest records the duration of a served HTTP request
func (mc *MetricsCollector) RecordRequest(method, path, status string, seconds float64) {
	if histogram, ok := mc.metrics["request_duration"].(*prometheus.HistogramVec); ok {
		histogram.WithLabelValues(method, path, status).Observe(seconds)
	}
}

// RecordDeductions records applied and exhausted pantry deductions
func (mc *MetricsCollector) RecordDeductions(updated, deleted int) {
	if counter, ok := mc.metrics["deductions"].(*prometheus.CounterVec); ok {
		counter.WithLabelValues("updated").Add(float64(updated))
		counter.WithLabelValues("deleted").Add(float64(deleted))
	}
}

// RecordBillItems records merged and created items from a saved bill
func (mc *MetricsCollector) RecordBillItems(merged, created int) {
	if counter, ok := mc.metrics["bill_items"].(*prometheus.CounterVec); ok {
		counter.WithLabelValues("merged").Add(float64(merged))
		counter.WithLabelValues("created").Add(float64(created))
	}
}

// RecordModelCall records a generative model call outcome and latency
func (mc *MetricsCollector) RecordModelCall(feature string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	if counter, ok := mc.metrics["model_calls"].(*prometheus.CounterVec); ok {
		counter.WithLabelValues(feature, status).Inc()
	}
	if histogram, ok := mc.metrics["model_latency"].(*prometheus.HistogramVec); ok {
		histogram.WithLabelValues(feature).Observe(seconds)
	}
}

// RecordExpiryCounts records the current expired and expiring-soon item counts
func (mc *MetricsCollector) RecordExpiryCounts(expired, expiringSoon int) {
	if gauge, ok := mc.metrics["expiring_items"].(*prometheus.GaugeVec); ok {
		gauge.WithLabelValues("expired").Set(float64(expired))
		gauge.WithLabelValues("expiring_soon").Set(float64(expiringSoon))
	}
}
