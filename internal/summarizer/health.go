package summarizer

import (
	"context"
	"time"

	"github.com/localrivet/docsummary/internal/telemetry"
)

// HealthStatus represents the health status of the summarization boundary
type HealthStatus string

const (
	// StatusHealthy indicates the provider is operational
	StatusHealthy HealthStatus = "healthy"

	// StatusUnhealthy indicates the provider is not operational
	StatusUnhealthy HealthStatus = "unhealthy"

	healthCheckTimeout = 5 * time.Second
)

// HealthReport contains information about the current health of the
// summarization provider and recent call statistics.
type HealthReport struct {
	Status       HealthStatus `json:"status"`
	Provider     string       `json:"provider"`
	Timestamp    time.Time    `json:"timestamp"`
	CallsSuccess int64        `json:"calls_success"`
	CallsFailure int64        `json:"calls_failure"`
	RateWaits    int64        `json:"rate_limit_waits"`
	AvgMapTimeMS float64      `json:"avg_map_time_ms"`
	CheckError   string       `json:"check_error,omitempty"`
}

// CheckHealth issues a minimal completion against the backing provider
// and assembles a report from the collector's recent statistics.
func (s *AISummarizer) CheckHealth(ctx context.Context) *HealthReport {
	report := &HealthReport{
		Provider:     s.provider.Name(),
		Timestamp:    time.Now(),
		CallsSuccess: s.metrics.GetCounter(telemetry.MetricCallsSuccess),
		CallsFailure: s.metrics.GetCounter(telemetry.MetricCallsFailure),
		RateWaits:    s.metrics.GetCounter(telemetry.MetricRateLimitWaits),
		AvgMapTimeMS: float64(s.metrics.GetTimerAverage(telemetry.MetricMapTime).Milliseconds()),
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	_, err := s.provider.Complete(ctx, "Reply with the single word: ok", 8)
	if err != nil {
		report.Status = StatusUnhealthy
		report.CheckError = err.Error()
		return report
	}

	report.Status = StatusHealthy
	return report
}
