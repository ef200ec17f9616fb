package monitoring

import (
	"errors"
	"testing"
	"time"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	// Check if our metric is present
	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}

	// Check value
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	// Check uptime presence
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_IncrementMetric(t *testing.T) {
	m := NewMonitor()

	m.IncrementMetric("items_saved", 3)
	m.IncrementMetric("items_saved", 2)

	value, exists := m.GetMetric("items_saved")
	if !exists {
		t.Fatalf("Expected 'items_saved' to be present in metrics, but it was not")
	}
	if value != 5 {
		t.Errorf("Expected 'items_saved' to be 5, but got %v", value)
	}
}

func TestMonitor_RecordModelCall(t *testing.T) {
	m := NewMonitor()

	m.RecordModelCall("bill_scan", 800*time.Millisecond, nil)
	m.RecordModelCall("bill_scan", 200*time.Millisecond, errors.New("rate limit"))

	metrics := m.GetMetrics()

	value, exists := metrics["ai_bill_scan_calls"]
	if !exists {
		t.Fatalf("Expected 'ai_bill_scan_calls' to be present in metrics, but it was not")
	}
	if value != 2 {
		t.Errorf("Expected 'ai_bill_scan_calls' to be 2, but got %v", value)
	}

	value, exists = metrics["ai_bill_scan_failures"]
	if !exists {
		t.Fatalf("Expected 'ai_bill_scan_failures' to be present in metrics, but it was not")
	}
	if value != 1 {
		t.Errorf("Expected 'ai_bill_scan_failures' to be 1, but got %v", value)
	}

	// Check timestamp is recorded
	_, exists = metrics["ai_bill_scan_last_called"]
	if !exists {
		t.Errorf("Expected 'ai_bill_scan_last_called' to be present in metrics, but it was not")
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()

	// Our test metric should be gone, but uptime should still be there
	_, exists := metrics["test_metric"]
	if exists {
		t.Errorf("Expected 'test_metric' to be removed after Reset(), but it was present")
	}

	// Uptime should still be present (it's added on GetMetrics call)
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}
