// Package attr provides typed slog attributes for the domain so log fields
// stay consistently named across services and handlers.
package attr

import (
	"context"
	"log/slog"
)

type correlationKey struct{}

// WithCorrelationID stores a correlation ID on the context. Handlers set it
// from the incoming message or request; services only read it.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFromContext returns the correlation ID, "" when unset.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// ExtractCorrelationID returns the correlation ID as a log attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationIDFromContext(ctx))
}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func GameID(id string) slog.Attr { return slog.String("game_id", id) }

func Hole(n int) slog.Attr { return slog.Int("hole", n) }

func TeamID(id string) slog.Attr { return slog.String("team_id", id) }

func PlayerID(id string) slog.Attr { return slog.String("player_id", id) }

func RoundID(id string) slog.Attr { return slog.String("round_id", id) }

func OptionName(name string) slog.Attr { return slog.String("option_name", name) }

func Fingerprint(fp string) slog.Attr { return slog.String("fingerprint", fp) }
