package monitoring

import (
	"sync"
	"time"
)

// Monitor collects and provides runtime stats for the service
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// IncrementMetric adds delta to a numeric metric, starting from zero
// when the metric has not been recorded yet.
func (m *Monitor) IncrementMetric(name string, delta int) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	current, _ := m.metrics[name].(int)
	m.metrics[name] = current + delta
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// RecordModelCall records the outcome of a generative model call
func (m *Monitor) RecordModelCall(feature string, duration time.Duration, err error) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	prefix := "ai_" + feature + "_"

	calls, _ := m.metrics[prefix+"calls"].(int)
	m.metrics[prefix+"calls"] = calls + 1
	if err != nil {
		failures, _ := m.metrics[prefix+"failures"].(int)
		m.metrics[prefix+"failures"] = failures + 1
	}
	m.metrics[prefix+"last_duration_ms"] = duration.Milliseconds()
	m.metrics[prefix+"last_called"] = time.Now().Format(time.RFC3339)
}
