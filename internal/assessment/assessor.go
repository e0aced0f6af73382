// ABOUTME: Assessment entry point used by the API, CLI, and MCP server
// ABOUTME: Applies the call timeout and replaces every failure with fallback text

package assessment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harper/aquaguard/internal/models"
	"github.com/harper/aquaguard/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Assessor turns sensor readings into assessment text. It never returns an error:
// callers always get something printable.
type Assessor struct {
	source  Source
	timeout time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewAssessor creates an Assessor over source. A zero timeout leaves the caller's deadline alone.
func NewAssessor(source Source, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Assessor {
	return &Assessor{
		source:  source,
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
}

// WithClock replaces the time source used for latency metrics.
func (a *Assessor) WithClock(c clockwork.Clock) *Assessor {
	a.clock = c
	return a
}

// Assess returns generated text for r, or one of the fallback strings.
func (a *Assessor) Assess(ctx context.Context, r models.SensorReading) string {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := a.clock.Now()
	text, err := a.source.Generate(ctx, r)
	a.metrics.AssessmentDuration.Observe(a.clock.Since(start).Seconds())

	switch {
	case errors.Is(err, ErrEmptyResponse):
		a.metrics.AssessmentsTotal.WithLabelValues(observability.OutcomeEmpty).Inc()
		a.logger.Warn("assessment service returned no text", "location", r.LocationName)
		return FallbackEmpty
	case err != nil:
		a.metrics.AssessmentsTotal.WithLabelValues(observability.OutcomeError).Inc()
		a.logger.Error("assessment service error", "location", r.LocationName, "error", err)
		return FallbackError
	}

	a.metrics.AssessmentsTotal.WithLabelValues(observability.OutcomeSuccess).Inc()
	return text
}
