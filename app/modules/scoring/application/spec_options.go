package scoringservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/junk"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/logic"
)

var errNothingToReset = errors.New("game options already match the catalog spec")

// SetHoleOption stores a per-hole override of a spec option. An override
// equal to the game-level value is dropped instead of stored, so the
// override map only ever holds real differences.
func (s *GameService) SetHoleOption(ctx context.Context, gameID string, hole int, option scoringtypes.Option) (GameOperationResult, error) {
	if ctx == nil {
		return GameOperationResult{Error: ErrNilContext}, ErrNilContext
	}
	return s.withTelemetry(ctx, "SetHoleOption", gameID, func(ctx context.Context) (GameOperationResult, error) {
		g, err := s.repo.GetGame(ctx, gameID)
		if err != nil {
			return failure(gameID, err), err
		}
		gh := g.Hole(hole)
		if gh == nil || !holeInScope(g, hole) {
			return failure(gameID, ErrHoleOutOfRange), nil
		}
		name := option.Name()
		base, ok := g.SpecOption(name)
		if !ok {
			return failure(gameID, ErrUnknownOption), nil
		}
		if err := validateOption(option); err != nil {
			return failure(gameID, err), nil
		}

		if gh.Options == nil {
			gh.Options = make(map[string]scoringtypes.Option)
		}
		if optionsEqual(option, base) {
			delete(gh.Options, name)
		} else {
			gh.Options[name] = option
		}

		return s.saveHoleAndCompute(ctx, g, gh)
	})
}

// ClearHoleOption removes a per-hole override, restoring the game default.
func (s *GameService) ClearHoleOption(ctx context.Context, gameID string, hole int, optionName string) (GameOperationResult, error) {
	if ctx == nil {
		return GameOperationResult{Error: ErrNilContext}, ErrNilContext
	}
	return s.withTelemetry(ctx, "ClearHoleOption", gameID, func(ctx context.Context) (GameOperationResult, error) {
		g, err := s.repo.GetGame(ctx, gameID)
		if err != nil {
			return failure(gameID, err), err
		}
		gh := g.Hole(hole)
		if gh == nil || !holeInScope(g, hole) {
			return failure(gameID, ErrHoleOutOfRange), nil
		}
		delete(gh.Options, optionName)
		return s.saveHoleAndCompute(ctx, g, gh)
	})
}

// SetGameOption sets the game-level value of a game option.
func (s *GameService) SetGameOption(ctx context.Context, gameID, optionName, value string) (GameOperationResult, error) {
	if ctx == nil {
		return GameOperationResult{Error: ErrNilContext}, ErrNilContext
	}
	return s.withTelemetry(ctx, "SetGameOption", gameID, func(ctx context.Context) (GameOperationResult, error) {
		g, err := s.repo.GetGame(ctx, gameID)
		if err != nil {
			return failure(gameID, err), err
		}
		found := false
		for i := range g.Spec {
			if g.Spec[i].Type == scoringtypes.OptionTypeGame && g.Spec[i].Name() == optionName {
				v := value
				g.Spec[i].Game.Value = &v
				found = true
				break
			}
		}
		if !found {
			return failure(gameID, ErrUnknownOption), nil
		}
		if err := s.repo.SaveSpec(ctx, gameID, g.Spec); err != nil {
			return failure(gameID, err), err
		}
		return s.recomputeResult(ctx, g)
	})
}

// ResetSpec restores the working option set from the catalog original. When
// nothing differs, the caller gets a message instead of a silent no-op.
func (s *GameService) ResetSpec(ctx context.Context, gameID string) (GameOperationResult, error) {
	if ctx == nil {
		return GameOperationResult{Error: ErrNilContext}, ErrNilContext
	}
	return s.withTelemetry(ctx, "ResetSpec", gameID, func(ctx context.Context) (GameOperationResult, error) {
		g, err := s.repo.GetGame(ctx, gameID)
		if err != nil {
			return failure(gameID, err), err
		}
		if len(g.SpecRef) == 0 || optionListsEqual(g.Spec, g.SpecRef) {
			return failure(gameID, errNothingToReset), nil
		}
		g.Spec = cloneOptions(g.SpecRef)
		if err := s.repo.SaveSpec(ctx, gameID, g.Spec); err != nil {
			return failure(gameID, err), err
		}
		return s.recomputeResult(ctx, g)
	})
}

func (s *GameService) recomputeResult(ctx context.Context, g *scoringtypes.Game) (GameOperationResult, error) {
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

// validateSpec checks every expression in an option list. Used at game
// creation so a bad expression fails at the door, not mid-round.
func validateSpec(options []scoringtypes.Option) error {
	for _, o := range options {
		if err := validateOption(o); err != nil {
			return err
		}
	}
	return nil
}

func validateOption(o scoringtypes.Option) error {
	switch o.Type {
	case scoringtypes.OptionTypeJunk:
		if o.Junk.Logic != "" {
			if err := logic.Validate(o.Junk.Logic); err != nil {
				return fmt.Errorf("junk %q logic: %w", o.Junk.Name, err)
			}
		}
		if o.Junk.ScoreToPar != "" {
			if _, err := junk.ParseCondition(o.Junk.ScoreToPar); err != nil {
				return fmt.Errorf("junk %q score_to_par: %w", o.Junk.Name, err)
			}
		}
	case scoringtypes.OptionTypeMultiplier:
		if o.Multiplier.Availability != "" {
			if err := logic.Validate(o.Multiplier.Availability); err != nil {
				return fmt.Errorf("multiplier %q availability: %w", o.Multiplier.Name, err)
			}
		}
	}
	return nil
}

func optionsEqual(a, b scoringtypes.Option) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(aj, bj)
}

func optionListsEqual(a, b []scoringtypes.Option) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !optionsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// cloneOptions deep-copies an option list through its JSON form.
func cloneOptions(options []scoringtypes.Option) []scoringtypes.Option {
	data, err := json.Marshal(options)
	if err != nil {
		return nil
	}
	var out []scoringtypes.Option
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
