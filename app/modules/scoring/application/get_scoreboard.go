package scoringservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
)

// GetScoreboard loads the game snapshot and computes its scoreboard. A
// snapshot that is not ready (spec or rounds missing) is a domain failure,
// never a partially computed board.
func (s *GameService) GetScoreboard(ctx context.Context, gameID string) (GameOperationResult, error) {
	if ctx == nil {
		return GameOperationResult{Error: ErrNilContext}, ErrNilContext
	}
	if gameID == "" {
		return failure(gameID, ErrInvalidGameID), ErrInvalidGameID
	}

	return s.withTelemetry(ctx, "GetScoreboard", gameID, func(ctx context.Context) (GameOperationResult, error) {
		g, err := s.repo.GetGame(ctx, gameID)
		if err != nil {
			return failure(gameID, err), err
		}
		board, fp, err := s.compute(ctx, g)
		if err != nil {
			if errors.Is(err, scoringtypes.ErrNotReady) {
				return failure(gameID, err), nil
			}
			return failure(gameID, err), err
		}
		return GameOperationResult{Success: &ScoreboardPayload{
			GameID:      gameID,
			Scoreboard:  board,
			Fingerprint: fp,
		}}, nil
	})
}

// CreateGame persists a new game after checking the snapshot can be scored
// and that every expression in its spec parses. A game without an ID gets
// one minted.
func (s *GameService) CreateGame(ctx context.Context, g *scoringtypes.Game) (GameOperationResult, error) {
	if ctx == nil {
		return GameOperationResult{Error: ErrNilContext}, ErrNilContext
	}
	if g == nil {
		return failure("", ErrInvalidGameID), ErrInvalidGameID
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	return s.withTelemetry(ctx, "CreateGame", g.ID, func(ctx context.Context) (GameOperationResult, error) {
		if err := scoringtypes.CheckReady(g); err != nil {
			return failure(g.ID, err), nil
		}
		if err := validateSpec(g.Spec); err != nil {
			return failure(g.ID, err), nil
		}
		if len(g.SpecRef) == 0 {
			g.SpecRef = cloneOptions(g.Spec)
		}
		if err := s.repo.CreateGame(ctx, g); err != nil {
			return failure(g.ID, err), err
		}
		board, fp, err := s.compute(ctx, g)
		if err != nil {
			return failure(g.ID, err), err
		}
		return GameOperationResult{Success: &ScoreboardPayload{
			GameID:      g.ID,
			Scoreboard:  board,
			Fingerprint: fp,
		}}, nil
	})
}

func failure(gameID string, err error) GameOperationResult {
	return GameOperationResult{Failure: &FailurePayload{GameID: gameID, Reason: err.Error()}}
}
