package scoringservice

import (
	"context"
	"time"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/shared/observability/attr"
)

const maxGross = 30

// SetScore records a gross score for a player on a hole, recomputes the
// board, and reports any later activations the edit invalidated.
func (s *GameService) SetScore(ctx context.Context, gameID, playerID string, hole, gross int) (GameOperationResult, error) {
	if ctx == nil {
		return GameOperationResult{Error: ErrNilContext}, ErrNilContext
	}
	if gross <= 0 || gross > maxGross {
		return failure(gameID, ErrInvalidGross), ErrInvalidGross
	}

	return s.withTelemetry(ctx, "SetScore", gameID, func(ctx context.Context) (GameOperationResult, error) {
		return s.editScore(ctx, gameID, playerID, hole, &gross)
	})
}

// ClearScore removes a player's gross score on a hole.
func (s *GameService) ClearScore(ctx context.Context, gameID, playerID string, hole int) (GameOperationResult, error) {
	if ctx == nil {
		return GameOperationResult{Error: ErrNilContext}, ErrNilContext
	}
	return s.withTelemetry(ctx, "ClearScore", gameID, func(ctx context.Context) (GameOperationResult, error) {
		return s.editScore(ctx, gameID, playerID, hole, nil)
	})
}

func (s *GameService) editScore(ctx context.Context, gameID, playerID string, hole int, gross *int) (GameOperationResult, error) {
	g, err := s.repo.GetGame(ctx, gameID)
	if err != nil {
		return failure(gameID, err), err
	}
	if !holeInScope(g, hole) {
		return failure(gameID, ErrHoleOutOfRange), nil
	}
	r := g.Round(playerID)
	if r == nil {
		return failure(gameID, ErrUnknownPlayer), nil
	}

	key := scoringtypes.HoleKey(hole)
	if r.Scores == nil {
		r.Scores = make(map[string]*scoringtypes.Score)
	}
	if gross == nil {
		delete(r.Scores, key)
	} else {
		sc := r.Scores[key]
		if sc == nil {
			sc = &scoringtypes.Score{}
			r.Scores[key] = sc
		}
		sc.History = append(sc.History, scoringtypes.ScoreEdit{Gross: *gross, At: time.Now().UTC()})
		sc.Gross = *gross
	}
	if err := s.repo.SaveRound(ctx, gameID, r); err != nil {
		return failure(gameID, err), err
	}

	board, fp, err := s.compute(ctx, g)
	if err != nil {
		return failure(gameID, err), err
	}
	invalidated, err := s.detector.Detect(g, board, hole)
	if err != nil {
		return failure(gameID, err), err
	}
	if len(invalidated) > 0 {
		s.metrics.RecordInvalidationsDetected(ctx, gameID, len(invalidated))
		s.logger.InfoContext(ctx, "Edit invalidated later activations",
			attr.GameID(gameID),
			attr.Hole(hole),
			attr.Int("count", len(invalidated)),
		)
	}

	return GameOperationResult{Success: &ScoreboardPayload{
		GameID:        gameID,
		Scoreboard:    board,
		Fingerprint:   fp,
		Invalidations: invalidated,
	}}, nil
}

func holeInScope(g *scoringtypes.Game, hole int) bool {
	for _, n := range g.Scope.HoleNumbers() {
		if n == hole {
			return true
		}
	}
	return false
}
