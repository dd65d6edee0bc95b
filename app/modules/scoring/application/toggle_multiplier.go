package scoringservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/mult"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/opts"
)

var (
	errNotAvailable  = errors.New("multiplier is not available to this team right now")
	errOverrideHeld  = errors.New("a custom multiplier is active on this hole")
	errNotMultiplier = errors.New("option is not a multiplier")
)

// ToggleTeamMultiplier activates or removes a user multiplier (double,
// press) for a team on a hole. Activation is gated by the option's
// availability expression and any max_off_tee cap; removal cascades to
// activations that referenced the removed one.
func (s *GameService) ToggleTeamMultiplier(ctx context.Context, gameID string, hole int, teamID, name string, on bool) (GameOperationResult, error) {
	if ctx == nil {
		return GameOperationResult{Error: ErrNilContext}, ErrNilContext
	}
	return s.withTelemetry(ctx, "ToggleTeamMultiplier", gameID, func(ctx context.Context) (GameOperationResult, error) {
		g, err := s.repo.GetGame(ctx, gameID)
		if err != nil {
			return failure(gameID, err), err
		}
		gh := g.Hole(hole)
		if gh == nil || !holeInScope(g, hole) {
			return failure(gameID, ErrHoleOutOfRange), nil
		}
		m := effectiveMultiplier(g, gh, name)
		if m == nil {
			return failure(gameID, errNotMultiplier), nil
		}

		board, _, err := s.compute(ctx, g)
		if err != nil {
			return failure(gameID, err), err
		}
		hr := board.HoleResultFor(hole)

		materializeTeams(g, gh)
		team := gh.Team(teamID)
		if team == nil {
			return failure(gameID, errors.New("team not on hole")), nil
		}

		if on {
			if hr != nil {
				if _, _, held := mult.ActiveOverride(hr); held && !m.Override {
					return failure(gameID, errOverrideHeld), nil
				}
				if !s.engine.Multipliers().Available(g, gh, board, hr, m, teamID, betterOf(g), hr.PossiblePoints) {
					return failure(gameID, errNotAvailable), nil
				}
			}
			if m.Override {
				purgeHoleScopedMultipliers(g, gh, hole)
			}
			team.Options = append(team.Options, scoringtypes.TeamOption{
				OptionName: name,
				FirstHole:  hole,
			})
		} else {
			removeActivation(team, name, hole)
			if err := s.cascadeRemove(g, gh, hole, name); err != nil {
				return failure(gameID, err), err
			}
		}

		return s.saveHoleAndCompute(ctx, g, gh)
	})
}

// SetCustomMultiplier records the hole-toolbar numeric multiplier. It
// replaces every hole-scoped activation on the hole; value 0 clears it.
func (s *GameService) SetCustomMultiplier(ctx context.Context, gameID string, hole int, teamID string, value float64) (GameOperationResult, error) {
	if ctx == nil {
		return GameOperationResult{Error: ErrNilContext}, ErrNilContext
	}
	return s.withTelemetry(ctx, "SetCustomMultiplier", gameID, func(ctx context.Context) (GameOperationResult, error) {
		g, err := s.repo.GetGame(ctx, gameID)
		if err != nil {
			return failure(gameID, err), err
		}
		gh := g.Hole(hole)
		if gh == nil || !holeInScope(g, hole) {
			return failure(gameID, ErrHoleOutOfRange), nil
		}
		m := customMultiplier(g)
		if m == nil {
			return failure(gameID, errors.New("spec has no custom multiplier option")), nil
		}

		materializeTeams(g, gh)
		team := gh.Team(teamID)
		if team == nil {
			return failure(gameID, errors.New("team not on hole")), nil
		}

		purgeHoleScopedMultipliers(g, gh, hole)
		purgeOption(gh, m.Name)
		if value > 0 {
			team.Options = append(team.Options, scoringtypes.TeamOption{
				OptionName: m.Name,
				Value:      strconv.FormatFloat(value, 'f', -1, 64),
				FirstHole:  hole,
			})
		}

		return s.saveHoleAndCompute(ctx, g, gh)
	})
}

// cascadeRemove removes activations on the hole whose availability
// expression references the removed multiplier, then repeats until nothing
// else depends on what was removed.
func (s *GameService) cascadeRemove(g *scoringtypes.Game, gh *scoringtypes.GameHole, hole int, removedName string) error {
	removed := []string{removedName}
	for len(removed) > 0 {
		name := removed[0]
		removed = removed[1:]
		for _, t := range gh.Teams {
			for _, to := range t.Options {
				if to.FirstHole != hole || to.OptionName == name {
					continue
				}
				m := effectiveMultiplier(g, gh, to.OptionName)
				if m == nil {
					continue
				}
				dep, err := mult.DependsOn(m.Availability, name)
				if err != nil {
					return fmt.Errorf("multiplier %q: %w", m.Name, err)
				}
				if dep {
					removeActivation(t, to.OptionName, hole)
					removed = append(removed, to.OptionName)
				}
			}
		}
	}
	return nil
}

// purgeHoleScopedMultipliers removes every hole-scoped multiplier activation
// made on the hole, for all teams. Rest-of-nine activations survive; an
// override does not erase a standing press.
func purgeHoleScopedMultipliers(g *scoringtypes.Game, gh *scoringtypes.GameHole, hole int) {
	for _, t := range gh.Teams {
		kept := t.Options[:0]
		for _, to := range t.Options {
			m := effectiveMultiplier(g, gh, to.OptionName)
			if m != nil && m.Scope == scoringtypes.ScopeHole && to.FirstHole == hole {
				continue
			}
			kept = append(kept, to)
		}
		t.Options = kept
	}
}

func removeActivation(t *scoringtypes.Team, name string, hole int) {
	kept := t.Options[:0]
	for _, to := range t.Options {
		if to.OptionName == name && to.FirstHole == hole {
			continue
		}
		kept = append(kept, to)
	}
	t.Options = kept
}

func effectiveMultiplier(g *scoringtypes.Game, gh *scoringtypes.GameHole, name string) *scoringtypes.MultiplierOption {
	o, ok := opts.ForHole(name, gh, g)
	if !ok || o.Type != scoringtypes.OptionTypeMultiplier {
		return nil
	}
	return o.Multiplier
}

func customMultiplier(g *scoringtypes.Game) *scoringtypes.MultiplierOption {
	for _, o := range g.Spec {
		if o.Type == scoringtypes.OptionTypeMultiplier && o.Multiplier.Override && o.Multiplier.InputValue {
			return o.Multiplier
		}
	}
	return nil
}

func betterOf(g *scoringtypes.Game) string {
	if o, ok := g.SpecOption(scoringtypes.OptionNameBetterPoints); ok && o.Game != nil {
		if v := o.Game.TextValue(); v != "" {
			return v
		}
	}
	return "higher"
}
