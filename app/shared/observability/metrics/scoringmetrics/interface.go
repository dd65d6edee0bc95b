// Package scoringmetrics records operational metrics for the scoring
// service. Implementations must be safe for concurrent use.
package scoringmetrics

import (
	"context"
	"time"
)

// ScoringMetrics is the instrumentation surface used by the scoring service.
type ScoringMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, gameID, service string)
	RecordOperationSuccess(ctx context.Context, operation, gameID, service string)
	RecordOperationFailure(ctx context.Context, operation, gameID, service string)
	RecordOperationDuration(ctx context.Context, operation, gameID, service string, duration time.Duration)

	// RecordComputeDuration tracks scoreboard pipeline runs separately from
	// the operations that trigger them.
	RecordComputeDuration(ctx context.Context, gameID string, duration time.Duration)
	RecordInvalidationsDetected(ctx context.Context, gameID string, count int)
}
