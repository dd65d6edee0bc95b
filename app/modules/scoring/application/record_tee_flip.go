package scoringservice

import (
	"context"
	"errors"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/opts"
)

var (
	errTeeFlipDisabled = errors.New("tee flip is not enabled for this game")
	errTeamsNotTied    = errors.New("teams are not tied entering the hole")
)

// RecordTeeFlip records the result of a tee flip on a hole where the teams
// arrive tied: either the winning team, or that the group declined to flip.
// Re-recording replaces the previous result for the hole.
func (s *GameService) RecordTeeFlip(ctx context.Context, gameID string, hole int, teamID, playerID string, declined bool) (GameOperationResult, error) {
	if ctx == nil {
		return GameOperationResult{Error: ErrNilContext}, ErrNilContext
	}
	return s.withTelemetry(ctx, "RecordTeeFlip", gameID, func(ctx context.Context) (GameOperationResult, error) {
		g, err := s.repo.GetGame(ctx, gameID)
		if err != nil {
			return failure(gameID, err), err
		}
		gh := g.Hole(hole)
		if gh == nil || !holeInScope(g, hole) {
			return failure(gameID, ErrHoleOutOfRange), nil
		}
		if !opts.BoolForHole(scoringtypes.OptionNameTeeFlip, gh, g) {
			return failure(gameID, errTeeFlipDisabled), nil
		}

		board, _, err := s.compute(ctx, g)
		if err != nil {
			return failure(gameID, err), err
		}
		if !teamsTiedEntering(board, g, hole) {
			return failure(gameID, errTeamsNotTied), nil
		}

		materializeTeams(g, gh)
		team := gh.Team(teamID)
		if team == nil {
			return failure(gameID, errors.New("team not on hole")), nil
		}

		purgeOption(gh, scoringtypes.OptionNameTeeFlipWinner)
		purgeOption(gh, scoringtypes.OptionNameTeeFlipDeclined)
		name := scoringtypes.OptionNameTeeFlipWinner
		if declined {
			name = scoringtypes.OptionNameTeeFlipDeclined
		}
		team.Options = append(team.Options, scoringtypes.TeamOption{
			OptionName: name,
			PlayerID:   playerID,
			FirstHole:  hole,
		})

		return s.saveHoleAndCompute(ctx, g, gh)
	})
}

// teamsTiedEntering reports whether the two teams were level after the hole
// before this one. The first hole in scope counts as tied; nobody is ahead
// before play starts.
func teamsTiedEntering(board *scoringtypes.Scoreboard, g *scoringtypes.Game, hole int) bool {
	scope := g.Scope.HoleNumbers()
	if len(scope) > 0 && scope[0] == hole {
		return true
	}
	hr := board.HoleResultFor(hole - 1)
	if hr == nil || len(hr.Teams) == 0 {
		return false
	}
	for _, tr := range hr.Teams {
		if tr.RunningDiff != 0 {
			return false
		}
	}
	return true
}
