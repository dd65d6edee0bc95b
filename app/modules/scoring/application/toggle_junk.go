package scoringservice

import (
	"context"
	"errors"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/opts"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/pipeline"
)

var errNotUserJunk = errors.New("junk is not user-markable")

// TogglePlayerJunk marks or unmarks a user junk (prox, snake) for a player.
// Exclusive junk is atomic: marking it for one player removes it from every
// other player and team on the hole in the same write.
func (s *GameService) TogglePlayerJunk(ctx context.Context, gameID string, hole int, teamID, playerID, junkName string, on bool) (GameOperationResult, error) {
	if ctx == nil {
		return GameOperationResult{Error: ErrNilContext}, ErrNilContext
	}
	return s.withTelemetry(ctx, "TogglePlayerJunk", gameID, func(ctx context.Context) (GameOperationResult, error) {
		g, err := s.repo.GetGame(ctx, gameID)
		if err != nil {
			return failure(gameID, err), err
		}
		gh := g.Hole(hole)
		if gh == nil || !holeInScope(g, hole) {
			return failure(gameID, ErrHoleOutOfRange), nil
		}

		j := effectiveJunkOption(g, gh, junkName)
		if j == nil {
			return failure(gameID, ErrUnknownOption), nil
		}
		if j.BasedOn != scoringtypes.BasedOnUser {
			return failure(gameID, errNotUserJunk), nil
		}

		materializeTeams(g, gh)
		team := gh.Team(teamID)
		if team == nil {
			return failure(gameID, errors.New("team not on hole")), nil
		}

		if on && j.Limit == scoringtypes.LimitOnePerGroup {
			purgeOption(gh, junkName)
		} else {
			removeOption(team, junkName, playerID)
		}
		if on {
			team.Options = append(team.Options, scoringtypes.TeamOption{
				OptionName: junkName,
				PlayerID:   playerID,
			})
		}

		return s.saveHoleAndCompute(ctx, g, gh)
	})
}

func (s *GameService) saveHoleAndCompute(ctx context.Context, g *scoringtypes.Game, gh *scoringtypes.GameHole) (GameOperationResult, error) {
	if err := s.repo.SaveHole(ctx, g.ID, gh); err != nil {
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
}

func effectiveJunkOption(g *scoringtypes.Game, gh *scoringtypes.GameHole, name string) *scoringtypes.JunkOption {
	o, ok := opts.ForHole(name, gh, g)
	if !ok || o.Type != scoringtypes.OptionTypeJunk {
		return nil
	}
	return o.Junk
}

// materializeTeams writes derived teams onto the hole so options recorded on
// them persist. Holes with explicit teams are left alone.
func materializeTeams(g *scoringtypes.Game, gh *scoringtypes.GameHole) {
	if len(gh.Teams) == 0 {
		gh.Teams = pipeline.HoleTeams(g, gh)
	}
}

// purgeOption removes every mark of the named option on the hole,
// regardless of team or player.
func purgeOption(gh *scoringtypes.GameHole, name string) {
	for _, t := range gh.Teams {
		kept := t.Options[:0]
		for _, to := range t.Options {
			if to.OptionName != name {
				kept = append(kept, to)
			}
		}
		t.Options = kept
	}
}

// removeOption removes marks of the named option held by one player (or the
// team itself when playerID is empty).
func removeOption(t *scoringtypes.Team, name, playerID string) {
	kept := t.Options[:0]
	for _, to := range t.Options {
		if to.OptionName == name && to.PlayerID == playerID {
			continue
		}
		kept = append(kept, to)
	}
	t.Options = kept
}
