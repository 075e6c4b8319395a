// Package telemetry provides metrics collection and reporting
// for monitoring the DocSummary pipeline.
package telemetry

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MetricsCollector provides a thread-safe interface for collecting
// application metrics for monitoring and troubleshooting.
type MetricsCollector struct {
	counters   map[string]int64
	gauges     map[string]float64
	timers     map[string][]time.Duration
	latestTime map[string]time.Time
	mu         sync.RWMutex
}

// PipelineMetrics defines constants for metrics related to the
// summarization pipeline
const (
	// Remote call counts by phase
	MetricMapCalls     = "pipeline.calls.map"
	MetricCombineCalls = "pipeline.calls.combine"

	// Success/failure metrics
	MetricCallsSuccess = "pipeline.calls.success"
	MetricCallsFailure = "pipeline.calls.failure"

	// Chunking metrics
	MetricChunks         = "pipeline.chunks"
	MetricDocumentLength = "pipeline.document_length"

	// Rate governor metrics
	MetricRateLimitWaits    = "ratelimit.waits"
	MetricRateLimitWaitTime = "ratelimit.wait_time"
	MetricEstimatedTokens   = "ratelimit.estimated_tokens"

	// Phase timings
	MetricMapTime     = "pipeline.time.map"
	MetricCombineTime = "pipeline.time.combine"
	MetricTotalTime   = "pipeline.time.total"
)

// NewMetricsCollector creates a new MetricsCollector instance
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		counters:   make(map[string]int64),
		gauges:     make(map[string]float64),
		timers:     make(map[string][]time.Duration),
		latestTime: make(map[string]time.Time),
	}
}

// IncrementCounter increments a named counter by the specified amount
func (m *MetricsCollector) IncrementCounter(name string, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[name] += amount
}

// SetGauge sets a named gauge to the specified value
func (m *MetricsCollector) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gauges[name] = value
}

// RecordTimer records a duration for the specified timer
func (m *MetricsCollector) RecordTimer(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timers[name] = append(m.timers[name], duration)

	// Limit the number of stored durations to avoid unbounded growth
	if len(m.timers[name]) > 100 {
		m.timers[name] = m.timers[name][1:]
	}
}

// RecordTimestamp records the current time for the specified event
func (m *MetricsCollector) RecordTimestamp(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.latestTime[name] = time.Now()
}

// GetCounter retrieves the current value of a counter
func (m *MetricsCollector) GetCounter(name string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.counters[name]
}

// GetGauge retrieves the current value of a gauge
func (m *MetricsCollector) GetGauge(name string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.gauges[name]
}

// GetTimerCount returns the number of recorded durations for a timer
func (m *MetricsCollector) GetTimerCount(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.timers[name])
}

// GetTimerAverage calculates the average duration for a timer
func (m *MetricsCollector) GetTimerAverage(name string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	durations, exists := m.timers[name]
	if !exists || len(durations) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range durations {
		total += d
	}

	return total / time.Duration(len(durations))
}

// GetTimerMax returns the largest recorded duration for a timer
func (m *MetricsCollector) GetTimerMax(name string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var max time.Duration
	for _, d := range m.timers[name] {
		if d > max {
			max = d
		}
	}
	return max
}

// GetTimeSince calculates the time elapsed since a recorded timestamp
func (m *MetricsCollector) GetTimeSince(name string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	timestamp, exists := m.latestTime[name]
	if !exists {
		return 0
	}

	return time.Since(timestamp)
}

// GetReport generates a sorted, human-readable report of all collected
// metrics
func (m *MetricsCollector) GetReport() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var report strings.Builder
	report.WriteString("Metrics Report:\n==============\n\n")

	report.WriteString("Counters:\n")
	for _, name := range sortedKeys(m.counters) {
		fmt.Fprintf(&report, "  %s: %d\n", name, m.counters[name])
	}

	report.WriteString("\nGauges:\n")
	for _, name := range sortedKeys(m.gauges) {
		fmt.Fprintf(&report, "  %s: %.2f\n", name, m.gauges[name])
	}

	report.WriteString("\nTimers (avg):\n")
	for _, name := range sortedKeys(m.timers) {
		fmt.Fprintf(&report, "  %s: %s\n", name, m.averageLocked(name))
	}

	return report.String()
}

// averageLocked computes a timer average; callers must hold the lock.
func (m *MetricsCollector) averageLocked(name string) time.Duration {
	durations := m.timers[name]
	if len(durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return total / time.Duration(len(durations))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
