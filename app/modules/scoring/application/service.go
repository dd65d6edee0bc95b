package scoringservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/invalidation"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/pipeline"
	scoringdb "github.com/spicy-golf/scorekeeper/app/modules/scoring/infrastructure/repositories"
	"github.com/spicy-golf/scorekeeper/app/shared/observability/attr"
	scoringmetrics "github.com/spicy-golf/scorekeeper/app/shared/observability/metrics/scoringmetrics"
	"github.com/spicy-golf/scorekeeper/app/shared/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GameService implements the Service interface.
type GameService struct {
	repo     scoringdb.Repository
	engine   *pipeline.Engine
	detector *invalidation.Detector
	logger   *slog.Logger
	metrics  scoringmetrics.ScoringMetrics
	tracer   trace.Tracer
}

// NewGameService creates a new GameService.
func NewGameService(
	repo scoringdb.Repository,
	engine *pipeline.Engine,
	logger *slog.Logger,
	metrics scoringmetrics.ScoringMetrics,
	tracer trace.Tracer,
) *GameService {
	return &GameService{
		repo:     repo,
		engine:   engine,
		detector: invalidation.NewDetector(engine),
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
	}
}

// operationFunc is the signature for service operation functions.
type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery so every operation is observed the same way.
func (s *GameService) withTelemetry(
	ctx context.Context,
	operationName string,
	gameID string,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("game_id", gameID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, gameID, "GameService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, gameID, "GameService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.GameID(gameID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, gameID, "GameService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GameID(gameID),
			attr.Error(wrappedErr),
			attr.Any("result_has_failure", result.Failure != nil),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, gameID, "GameService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GameID(gameID),
			attr.Any("failure_payload", result.Failure),
		)
	}

	if result.Success != nil {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GameID(gameID),
			attr.Any("success_type", fmt.Sprintf("%T", result.Success)),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, gameID, "GameService")
	return result, nil
}

// compute runs the pipeline with timing and fingerprints the snapshot.
func (s *GameService) compute(ctx context.Context, g *scoringtypes.Game) (*scoringtypes.Scoreboard, string, error) {
	start := time.Now()
	board, err := s.engine.Compute(g)
	s.metrics.RecordComputeDuration(ctx, g.ID, time.Since(start))
	if err != nil {
		return nil, "", err
	}
	fp, err := scoringtypes.Fingerprint(g)
	if err != nil {
		return nil, "", err
	}
	return board, fp, nil
}
