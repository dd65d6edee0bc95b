// Package eventbus publishes scoring events over NATS JetStream so every
// device showing a game recomputes from the authoritative snapshot. Events
// carry the game ID and snapshot fingerprint, never the scoreboard itself;
// consumers fetch and verify against the fingerprint.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/spicy-golf/scorekeeper/app/shared/observability/attr"
)

// TopicScoreboardUpdated is published after every successful mutation.
const TopicScoreboardUpdated = "scorekeeper.scoreboard.updated"

// ScoreboardUpdatedEvent tells listeners a game's snapshot changed.
type ScoreboardUpdatedEvent struct {
	GameID        string `json:"gameId"`
	Fingerprint   string `json:"fingerprint"`
	Invalidations int    `json:"invalidations,omitempty"`
	OccurredAt    string `json:"occurredAt"`
}

// EventBus is the publishing surface handlers use.
type EventBus interface {
	PublishScoreboardUpdated(ctx context.Context, event ScoreboardUpdatedEvent) error
	Close() error
}

type eventBus struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewEventBus connects a watermill publisher to NATS JetStream. Streams are
// auto-provisioned so a fresh environment needs no manual setup.
func NewEventBus(natsURL string, logger *slog.Logger) (EventBus, error) {
	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:       natsURL,
			Marshaler: &wmnats.NATSMarshaler{},
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
				nc.Timeout(30 * time.Second),
				nc.ReconnectWait(1 * time.Second),
			},
			JetStream: wmnats.JetStreamConfig{
				AutoProvision: true,
			},
			SubjectCalculator: wmnats.DefaultSubjectCalculator,
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}
	return &eventBus{publisher: publisher, logger: logger}, nil
}

func (eb *eventBus) PublishScoreboardUpdated(ctx context.Context, event ScoreboardUpdatedEvent) error {
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if cid := attr.CorrelationIDFromContext(ctx); cid != "" {
		msg.Metadata.Set("correlation_id", cid)
	}

	if err := eb.publisher.Publish(TopicScoreboardUpdated, msg); err != nil {
		eb.logger.ErrorContext(ctx, "Failed to publish scoreboard update",
			attr.GameID(event.GameID),
			attr.Error(err),
		)
		return fmt.Errorf("publish %s: %w", TopicScoreboardUpdated, err)
	}
	eb.logger.DebugContext(ctx, "Published scoreboard update",
		attr.GameID(event.GameID),
		attr.Fingerprint(event.Fingerprint),
	)
	return nil
}

func (eb *eventBus) Close() error {
	return eb.publisher.Close()
}
