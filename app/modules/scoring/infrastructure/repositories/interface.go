package scoringdb

import (
	"context"
	"errors"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
)

// ErrGameNotFound indicates the requested game does not exist. Services
// treat it as a domain failure, not an infrastructure error.
var ErrGameNotFound = errors.New("game not found")

// Repository is the persistence contract for game snapshots. GetGame returns
// a fully assembled snapshot; the save methods persist one aggregate each so
// a mutation writes only what it touched.
type Repository interface {
	GetGame(ctx context.Context, gameID string) (*scoringtypes.Game, error)
	CreateGame(ctx context.Context, g *scoringtypes.Game) error

	// SaveSpec replaces the game's working option set.
	SaveSpec(ctx context.Context, gameID string, spec []scoringtypes.Option) error

	// SaveHole upserts one hole row (teams, team options, overrides).
	SaveHole(ctx context.Context, gameID string, hole *scoringtypes.GameHole) error

	// SaveRound upserts one round row (scores).
	SaveRound(ctx context.Context, gameID string, round *scoringtypes.Round) error
}
