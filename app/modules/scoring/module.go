package scoring

import (
	"context"
	"log/slog"
	"net/http"

	scoringservice "github.com/spicy-golf/scorekeeper/app/modules/scoring/application"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/pipeline"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/infrastructure/eventbus"
	scoringhandlers "github.com/spicy-golf/scorekeeper/app/modules/scoring/infrastructure/handlers"
	scoringdb "github.com/spicy-golf/scorekeeper/app/modules/scoring/infrastructure/repositories"
	"github.com/spicy-golf/scorekeeper/app/shared/observability/metrics/scoringmetrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module wires the scoring service, its repository, and its HTTP surface.
type Module struct {
	Service  scoringservice.Service
	Handlers *scoringhandlers.ScoringHandlers
	EventBus eventbus.EventBus
	logger   *slog.Logger
}

// NewModule assembles the scoring module against a live database handle
// and event bus.
func NewModule(
	ctx context.Context,
	db *bun.DB,
	bus eventbus.EventBus,
	logger *slog.Logger,
	registry prometheus.Registerer,
	tracer trace.Tracer,
) (*Module, error) {
	logger.InfoContext(ctx, "scoring.NewModule called")

	repo := &scoringdb.GameDBImpl{DB: db}
	metrics := scoringmetrics.NewPrometheusMetrics(registry)
	engine := pipeline.New()

	service := scoringservice.NewGameService(repo, engine, logger, metrics, tracer)
	handlers := scoringhandlers.NewScoringHandlers(service, bus, logger)

	return &Module{
		Service:  service,
		Handlers: handlers,
		EventBus: bus,
		logger:   logger,
	}, nil
}

// Routes returns the module's HTTP routes for mounting on the app router.
func (m *Module) Routes() http.Handler {
	return m.Handlers.Routes()
}

// Close releases the module's resources.
func (m *Module) Close() error {
	m.logger.Info("Stopping scoring module")
	if m.EventBus != nil {
		if err := m.EventBus.Close(); err != nil {
			m.logger.Error("Error closing event bus", "error", err)
			return err
		}
	}
	return nil
}
