package scoringmetrics

import (
	"context"
	"time"
)

// NoopMetrics discards all measurements. Used in tests and tools.
type NoopMetrics struct{}

func NewNoop() *NoopMetrics { return &NoopMetrics{} }

func (NoopMetrics) RecordOperationAttempt(context.Context, string, string, string) {}

func (NoopMetrics) RecordOperationSuccess(context.Context, string, string, string) {}

func (NoopMetrics) RecordOperationFailure(context.Context, string, string, string) {}

func (NoopMetrics) RecordOperationDuration(context.Context, string, string, string, time.Duration) {}

func (NoopMetrics) RecordComputeDuration(context.Context, string, time.Duration) {}

func (NoopMetrics) RecordInvalidationsDetected(context.Context, string, int) {}
