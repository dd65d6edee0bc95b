package scoringservice

import (
	"context"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/invalidation"
	"github.com/spicy-golf/scorekeeper/app/shared/results"
)

// GameOperationResult is the envelope every operation returns.
type GameOperationResult = results.OperationResult

// ScoreboardPayload is the success payload of operations that recompute the
// board. Invalidations lists activations the edit undermined; the caller
// surfaces them, the engine never deletes them on its own.
type ScoreboardPayload struct {
	GameID        string                         `json:"gameId"`
	Scoreboard    *scoringtypes.Scoreboard       `json:"scoreboard"`
	Fingerprint   string                         `json:"fingerprint"`
	Invalidations []invalidation.InvalidatedItem `json:"invalidations,omitempty"`
}

// FailurePayload is the generic business-failure payload: the operation ran,
// the domain said no.
type FailurePayload struct {
	GameID string `json:"gameId"`
	Reason string `json:"reason"`
}

// Service defines the interface for scoring operations.
type Service interface {
	CreateGame(ctx context.Context, g *scoringtypes.Game) (GameOperationResult, error)
	GetScoreboard(ctx context.Context, gameID string) (GameOperationResult, error)

	SetScore(ctx context.Context, gameID, playerID string, hole, gross int) (GameOperationResult, error)
	ClearScore(ctx context.Context, gameID, playerID string, hole int) (GameOperationResult, error)

	TogglePlayerJunk(ctx context.Context, gameID string, hole int, teamID, playerID, junkName string, on bool) (GameOperationResult, error)
	ToggleTeamMultiplier(ctx context.Context, gameID string, hole int, teamID, name string, on bool) (GameOperationResult, error)
	SetCustomMultiplier(ctx context.Context, gameID string, hole int, teamID string, value float64) (GameOperationResult, error)
	RecordTeeFlip(ctx context.Context, gameID string, hole int, teamID, playerID string, declined bool) (GameOperationResult, error)

	SetHoleOption(ctx context.Context, gameID string, hole int, option scoringtypes.Option) (GameOperationResult, error)
	ClearHoleOption(ctx context.Context, gameID string, hole int, optionName string) (GameOperationResult, error)
	SetGameOption(ctx context.Context, gameID, optionName, value string) (GameOperationResult, error)
	ResetSpec(ctx context.Context, gameID string) (GameOperationResult, error)
}
