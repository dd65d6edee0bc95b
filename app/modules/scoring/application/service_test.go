package scoringservice

import (
	"context"
	"io"
	"log/slog"
	"testing"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/pipeline"
	scoringmetrics "github.com/spicy-golf/scorekeeper/app/shared/observability/metrics/scoringmetrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func strp(s string) *string { return &s }

// testGame is a two player, two team front nine with the option surface the
// operations need: a user junk, a plain double, a never-available press, a
// press answer and a custom override.
func testGame() *scoringtypes.Game {
	g := &scoringtypes.Game{
		ID: "g1",
		Spec: []scoringtypes.Option{
			{Type: scoringtypes.OptionTypeGame, Game: &scoringtypes.GameOption{
				Name: scoringtypes.OptionNameTeamScore, ValueType: scoringtypes.ValueTypeMenu, DefaultValue: "best_ball",
			}},
			{Type: scoringtypes.OptionTypeGame, Game: &scoringtypes.GameOption{
				Name: scoringtypes.OptionNameBetterPoints, ValueType: scoringtypes.ValueTypeMenu, DefaultValue: "higher",
			}},
			{Type: scoringtypes.OptionTypeGame, Game: &scoringtypes.GameOption{
				Name: scoringtypes.OptionNameTeeFlip, ValueType: scoringtypes.ValueTypeBool, DefaultValue: "false",
			}},
			{Type: scoringtypes.OptionTypeJunk, Junk: &scoringtypes.JunkOption{
				Name: "birdie", Value: 1, Scope: scoringtypes.ScopeHole,
				BasedOn: scoringtypes.BasedOnGross, ScoreToPar: "exactly -1",
			}},
			{Type: scoringtypes.OptionTypeJunk, Junk: &scoringtypes.JunkOption{
				Name: "prox", Value: 1, Scope: scoringtypes.ScopePlayer,
				BasedOn: scoringtypes.BasedOnUser, Limit: scoringtypes.LimitOnePerGroup,
			}},
			{Type: scoringtypes.OptionTypeMultiplier, Multiplier: &scoringtypes.MultiplierOption{
				Name: "double", Scope: scoringtypes.ScopeHole, BasedOn: scoringtypes.BasedOnUser,
			}},
			{Type: scoringtypes.OptionTypeMultiplier, Multiplier: &scoringtypes.MultiplierOption{
				Name: "press", Scope: scoringtypes.ScopeHole, BasedOn: scoringtypes.BasedOnUser,
				Availability: "{'===': [1, 2]}",
			}},
			{Type: scoringtypes.OptionTypeMultiplier, Multiplier: &scoringtypes.MultiplierOption{
				Name: "double_back", Scope: scoringtypes.ScopeHole, BasedOn: scoringtypes.BasedOnUser,
				Availability: "{'other_team_multiplied_with': [{'getCurrHole': []}, {'var': 'team'}, 'double']}",
			}},
			{Type: scoringtypes.OptionTypeMultiplier, Multiplier: &scoringtypes.MultiplierOption{
				Name: "custom", Scope: scoringtypes.ScopeNone, BasedOn: scoringtypes.BasedOnUser,
				Override: true, InputValue: true,
			}},
		},
		Players: []scoringtypes.Player{{ID: "p1"}, {ID: "p2"}},
		Rounds: []*scoringtypes.Round{
			{ID: "r1", PlayerID: "p1", Scores: map[string]*scoringtypes.Score{}},
			{ID: "r2", PlayerID: "p2", Scores: map[string]*scoringtypes.Score{}},
		},
		Scope: scoringtypes.GameScope{
			Holes:       "front9",
			TeamsConfig: &scoringtypes.TeamsConfig{Type: "fixed", Teams: [][]string{{"p1"}, {"p2"}}},
		},
	}
	for n := 1; n <= 9; n++ {
		g.Holes = append(g.Holes, &scoringtypes.GameHole{Hole: scoringtypes.HoleKey(n), Par: 4})
	}
	return g
}

func newTestService(g *scoringtypes.Game) (*GameService, *FakeRepository) {
	repo := NewFakeRepository(g)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	svc := NewGameService(repo, pipeline.New(), logger, scoringmetrics.NewNoop(), tracer)
	return svc, repo
}

func successPayload(t *testing.T, res GameOperationResult) *ScoreboardPayload {
	t.Helper()
	require.Nil(t, res.Failure, "unexpected failure: %+v", res.Failure)
	payload, ok := res.Success.(*ScoreboardPayload)
	require.True(t, ok, "success payload is %T", res.Success)
	return payload
}

func failureReason(t *testing.T, res GameOperationResult) string {
	t.Helper()
	require.NotNil(t, res.Failure)
	payload, ok := res.Failure.(*FailurePayload)
	require.True(t, ok, "failure payload is %T", res.Failure)
	return payload.Reason
}

func TestSetScore(t *testing.T) {
	ctx := context.Background()

	t.Run("records the score and recomputes", func(t *testing.T) {
		g := testGame()
		svc, repo := newTestService(g)

		res, err := svc.SetScore(ctx, "g1", "p1", 1, 4)
		require.NoError(t, err)
		payload := successPayload(t, res)
		assert.Equal(t, "g1", payload.GameID)
		assert.NotNil(t, payload.Scoreboard)
		assert.NotEmpty(t, payload.Fingerprint)
		assert.Contains(t, repo.Trace(), "SaveRound")

		sc := g.Round("p1").Scores["1"]
		require.NotNil(t, sc)
		assert.Equal(t, 4, sc.Gross)
		assert.Len(t, sc.History, 1)
	})

	t.Run("edits append to the score history", func(t *testing.T) {
		g := testGame()
		svc, _ := newTestService(g)

		_, err := svc.SetScore(ctx, "g1", "p1", 1, 5)
		require.NoError(t, err)
		_, err = svc.SetScore(ctx, "g1", "p1", 1, 4)
		require.NoError(t, err)

		sc := g.Round("p1").Scores["1"]
		assert.Equal(t, 4, sc.Gross)
		assert.Len(t, sc.History, 2)
	})

	t.Run("rejects an implausible gross", func(t *testing.T) {
		svc, repo := newTestService(testGame())
		for _, gross := range []int{0, -1, 31} {
			res, err := svc.SetScore(ctx, "g1", "p1", 1, gross)
			require.ErrorIs(t, err, ErrInvalidGross)
			assert.NotNil(t, res.Failure)
		}
		assert.Empty(t, repo.Trace(), "validation failures never hit the repository")
	})

	t.Run("unknown player is a domain failure", func(t *testing.T) {
		svc, _ := newTestService(testGame())
		res, err := svc.SetScore(ctx, "g1", "p9", 1, 4)
		require.NoError(t, err)
		require.NotNil(t, res.Failure)
		assert.Equal(t, ErrUnknownPlayer.Error(), failureReason(t, res))
	})

	t.Run("hole outside the game scope is a domain failure", func(t *testing.T) {
		svc, _ := newTestService(testGame())
		res, err := svc.SetScore(ctx, "g1", "p1", 10, 4)
		require.NoError(t, err)
		require.NotNil(t, res.Failure)
		assert.Equal(t, ErrHoleOutOfRange.Error(), failureReason(t, res))
	})

	t.Run("repository errors propagate", func(t *testing.T) {
		svc, repo := newTestService(testGame())
		repo.GetGameFn = func(ctx context.Context, gameID string) (*scoringtypes.Game, error) {
			return nil, context.DeadlineExceeded
		}
		_, err := svc.SetScore(ctx, "g1", "p1", 1, 4)
		require.Error(t, err)
	})

	t.Run("an edit reports later activations it invalidated", func(t *testing.T) {
		g := testGame()
		// A press recorded on hole 2 that is never actually available.
		g.Holes[1].Teams = []*scoringtypes.Team{
			{ID: "1", Rounds: []string{"r1"}},
			{ID: "2", Rounds: []string{"r2"}, Options: []scoringtypes.TeamOption{{OptionName: "press", FirstHole: 2}}},
		}
		svc, _ := newTestService(g)

		res, err := svc.SetScore(ctx, "g1", "p1", 1, 4)
		require.NoError(t, err)
		payload := successPayload(t, res)
		require.Len(t, payload.Invalidations, 1)
		assert.Equal(t, "press", payload.Invalidations[0].Name)
		assert.Equal(t, 2, payload.Invalidations[0].Hole)
	})
}

func TestClearScore(t *testing.T) {
	ctx := context.Background()
	g := testGame()
	svc, _ := newTestService(g)

	_, err := svc.SetScore(ctx, "g1", "p1", 1, 4)
	require.NoError(t, err)

	res, err := svc.ClearScore(ctx, "g1", "p1", 1)
	require.NoError(t, err)
	successPayload(t, res)
	assert.Nil(t, g.Round("p1").Scores["1"])
}

func TestGetScoreboard(t *testing.T) {
	ctx := context.Background()

	t.Run("computes the board and fingerprint", func(t *testing.T) {
		svc, _ := newTestService(testGame())
		res, err := svc.GetScoreboard(ctx, "g1")
		require.NoError(t, err)
		payload := successPayload(t, res)
		assert.Equal(t, "g1", payload.GameID)
		assert.Len(t, payload.Scoreboard.Holes, 9)
	})

	t.Run("empty game id is rejected", func(t *testing.T) {
		svc, _ := newTestService(testGame())
		_, err := svc.GetScoreboard(ctx, "")
		require.ErrorIs(t, err, ErrInvalidGameID)
	})

	t.Run("a snapshot that is not ready is a domain failure", func(t *testing.T) {
		g := testGame()
		g.Holes = nil
		svc, _ := newTestService(g)
		res, err := svc.GetScoreboard(ctx, "g1")
		require.NoError(t, err)
		assert.NotNil(t, res.Failure)
	})
}

func TestCreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and snapshots the catalog spec", func(t *testing.T) {
		g := testGame()
		svc, repo := newTestService(nil)

		res, err := svc.CreateGame(ctx, g)
		require.NoError(t, err)
		successPayload(t, res)
		assert.Contains(t, repo.Trace(), "CreateGame")
		assert.Len(t, g.SpecRef, len(g.Spec))
	})

	t.Run("a bad expression fails at the door", func(t *testing.T) {
		g := testGame()
		g.Spec = append(g.Spec, scoringtypes.Option{
			Type: scoringtypes.OptionTypeJunk,
			Junk: &scoringtypes.JunkOption{Name: "broken", Logic: "{'no_such_op': []}"},
		})
		svc, repo := newTestService(nil)

		res, err := svc.CreateGame(ctx, g)
		require.NoError(t, err)
		require.NotNil(t, res.Failure)
		assert.NotContains(t, repo.Trace(), "CreateGame")
	})

	t.Run("missing ID gets minted", func(t *testing.T) {
		g := testGame()
		g.ID = ""
		svc, _ := newTestService(nil)

		res, err := svc.CreateGame(ctx, g)
		require.NoError(t, err)
		payload := successPayload(t, res)
		require.NotEmpty(t, g.ID)
		assert.Equal(t, g.ID, payload.GameID)
	})

	t.Run("nil game is rejected", func(t *testing.T) {
		svc, _ := newTestService(nil)
		_, err := svc.CreateGame(ctx, nil)
		require.ErrorIs(t, err, ErrInvalidGameID)
	})
}

func TestTogglePlayerJunk(t *testing.T) {
	ctx := context.Background()

	t.Run("marks and exclusively re-marks", func(t *testing.T) {
		g := testGame()
		svc, repo := newTestService(g)

		res, err := svc.TogglePlayerJunk(ctx, "g1", 1, "1", "p1", "prox", true)
		require.NoError(t, err)
		successPayload(t, res)
		assert.Contains(t, repo.Trace(), "SaveHole")
		gh := g.Hole(1)
		require.True(t, gh.Team("1").HasOption("prox", "p1"))

		// Marking it for the other player moves the single prox.
		_, err = svc.TogglePlayerJunk(ctx, "g1", 1, "2", "p2", "prox", true)
		require.NoError(t, err)
		assert.False(t, gh.Team("1").HasOption("prox", "p1"))
		assert.True(t, gh.Team("2").HasOption("prox", "p2"))
	})

	t.Run("unmark removes the mark", func(t *testing.T) {
		g := testGame()
		svc, _ := newTestService(g)

		_, err := svc.TogglePlayerJunk(ctx, "g1", 1, "1", "p1", "prox", true)
		require.NoError(t, err)
		_, err = svc.TogglePlayerJunk(ctx, "g1", 1, "1", "p1", "prox", false)
		require.NoError(t, err)
		assert.False(t, g.Hole(1).Team("1").HasOption("prox", "p1"))
	})

	t.Run("score-derived junk cannot be marked by hand", func(t *testing.T) {
		svc, _ := newTestService(testGame())
		res, err := svc.TogglePlayerJunk(ctx, "g1", 1, "1", "p1", "birdie", true)
		require.NoError(t, err)
		assert.NotNil(t, res.Failure)
	})

	t.Run("unknown junk is a domain failure", func(t *testing.T) {
		svc, _ := newTestService(testGame())
		res, err := svc.TogglePlayerJunk(ctx, "g1", 1, "1", "p1", "snake", true)
		require.NoError(t, err)
		require.NotNil(t, res.Failure)
		assert.Equal(t, ErrUnknownOption.Error(), failureReason(t, res))
	})
}

func TestToggleTeamMultiplier(t *testing.T) {
	ctx := context.Background()

	t.Run("activates an available multiplier", func(t *testing.T) {
		g := testGame()
		svc, _ := newTestService(g)

		res, err := svc.ToggleTeamMultiplier(ctx, "g1", 3, "1", "double", true)
		require.NoError(t, err)
		successPayload(t, res)

		team := g.Hole(3).Team("1")
		require.Len(t, team.Options, 1)
		assert.Equal(t, "double", team.Options[0].OptionName)
		assert.Equal(t, 3, team.Options[0].FirstHole)
	})

	t.Run("gated multiplier is refused", func(t *testing.T) {
		g := testGame()
		svc, _ := newTestService(g)

		res, err := svc.ToggleTeamMultiplier(ctx, "g1", 3, "1", "press", true)
		require.NoError(t, err)
		require.NotNil(t, res.Failure)
		assert.Empty(t, g.Hole(3).Team("1").Options)
	})

	t.Run("removal cascades to activations that answered it", func(t *testing.T) {
		g := testGame()
		g.Holes[2].Teams = []*scoringtypes.Team{
			{ID: "1", Rounds: []string{"r1"}, Options: []scoringtypes.TeamOption{{OptionName: "double_back", FirstHole: 3}}},
			{ID: "2", Rounds: []string{"r2"}, Options: []scoringtypes.TeamOption{{OptionName: "double", FirstHole: 3}}},
		}
		svc, _ := newTestService(g)

		res, err := svc.ToggleTeamMultiplier(ctx, "g1", 3, "2", "double", false)
		require.NoError(t, err)
		successPayload(t, res)
		assert.Empty(t, g.Hole(3).Team("2").Options)
		assert.Empty(t, g.Hole(3).Team("1").Options, "the answering double_back goes with it")
	})

	t.Run("an active custom override blocks other activations", func(t *testing.T) {
		g := testGame()
		g.Rounds[0].Scores["1"] = &scoringtypes.Score{Gross: 4}
		g.Rounds[1].Scores["1"] = &scoringtypes.Score{Gross: 4}
		g.Holes[0].Teams = []*scoringtypes.Team{
			{ID: "1", Rounds: []string{"r1"}, Options: []scoringtypes.TeamOption{{OptionName: "custom", FirstHole: 1, Value: "4"}}},
			{ID: "2", Rounds: []string{"r2"}},
		}
		svc, _ := newTestService(g)

		res, err := svc.ToggleTeamMultiplier(ctx, "g1", 1, "2", "double", true)
		require.NoError(t, err)
		require.NotNil(t, res.Failure)
	})
}

func TestSetCustomMultiplier(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces hole-scoped activations", func(t *testing.T) {
		g := testGame()
		g.Holes[0].Teams = []*scoringtypes.Team{
			{ID: "1", Rounds: []string{"r1"}, Options: []scoringtypes.TeamOption{{OptionName: "double", FirstHole: 1}}},
			{ID: "2", Rounds: []string{"r2"}},
		}
		svc, _ := newTestService(g)

		res, err := svc.SetCustomMultiplier(ctx, "g1", 1, "1", 4)
		require.NoError(t, err)
		successPayload(t, res)

		team := g.Hole(1).Team("1")
		require.Len(t, team.Options, 1)
		assert.Equal(t, "custom", team.Options[0].OptionName)
		assert.Equal(t, "4", team.Options[0].Value)
	})

	t.Run("zero clears the override", func(t *testing.T) {
		g := testGame()
		svc, _ := newTestService(g)

		_, err := svc.SetCustomMultiplier(ctx, "g1", 1, "1", 8)
		require.NoError(t, err)
		_, err = svc.SetCustomMultiplier(ctx, "g1", 1, "1", 0)
		require.NoError(t, err)
		assert.Empty(t, g.Hole(1).Team("1").Options)
	})

	t.Run("spec without a custom option is a domain failure", func(t *testing.T) {
		g := testGame()
		g.Spec = g.Spec[:len(g.Spec)-1]
		svc, _ := newTestService(g)

		res, err := svc.SetCustomMultiplier(ctx, "g1", 1, "1", 4)
		require.NoError(t, err)
		assert.NotNil(t, res.Failure)
	})
}

func TestRecordTeeFlip(t *testing.T) {
	ctx := context.Background()
	flipGame := func() *scoringtypes.Game {
		g := testGame()
		for i, o := range g.Spec {
			if o.Name() == scoringtypes.OptionNameTeeFlip {
				g.Spec[i].Game.Value = strp("true")
			}
		}
		return g
	}

	t.Run("disabled option refuses the flip", func(t *testing.T) {
		svc, _ := newTestService(testGame())
		res, err := svc.RecordTeeFlip(ctx, "g1", 1, "1", "p1", false)
		require.NoError(t, err)
		assert.NotNil(t, res.Failure)
	})

	t.Run("first hole counts as tied and re-recording replaces", func(t *testing.T) {
		g := flipGame()
		svc, _ := newTestService(g)

		res, err := svc.RecordTeeFlip(ctx, "g1", 1, "1", "p1", false)
		require.NoError(t, err)
		successPayload(t, res)
		assert.True(t, g.Hole(1).Team("1").HasOption(scoringtypes.OptionNameTeeFlipWinner, "p1"))

		_, err = svc.RecordTeeFlip(ctx, "g1", 1, "2", "p2", true)
		require.NoError(t, err)
		assert.False(t, g.Hole(1).Team("1").HasOption(scoringtypes.OptionNameTeeFlipWinner, "p1"))
		assert.True(t, g.Hole(1).Team("2").HasOption(scoringtypes.OptionNameTeeFlipDeclined, "p2"))
	})

	t.Run("teams that are not tied cannot flip", func(t *testing.T) {
		g := flipGame()
		g.Rounds[0].Scores["1"] = &scoringtypes.Score{Gross: 3}
		g.Rounds[1].Scores["1"] = &scoringtypes.Score{Gross: 4}
		svc, _ := newTestService(g)

		res, err := svc.RecordTeeFlip(ctx, "g1", 2, "1", "p1", false)
		require.NoError(t, err)
		require.NotNil(t, res.Failure)
	})

	t.Run("tied teams may flip on a later hole", func(t *testing.T) {
		g := flipGame()
		g.Rounds[0].Scores["1"] = &scoringtypes.Score{Gross: 4}
		g.Rounds[1].Scores["1"] = &scoringtypes.Score{Gross: 4}
		svc, _ := newTestService(g)

		res, err := svc.RecordTeeFlip(ctx, "g1", 2, "2", "p2", false)
		require.NoError(t, err)
		successPayload(t, res)
		assert.True(t, g.Hole(2).Team("2").HasOption(scoringtypes.OptionNameTeeFlipWinner, "p2"))
	})
}

func TestSetGameOption(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the working spec", func(t *testing.T) {
		g := testGame()
		svc, repo := newTestService(g)

		res, err := svc.SetGameOption(ctx, "g1", scoringtypes.OptionNameTeamScore, "sum")
		require.NoError(t, err)
		successPayload(t, res)
		assert.Contains(t, repo.Trace(), "SaveSpec")

		o, ok := g.SpecOption(scoringtypes.OptionNameTeamScore)
		require.True(t, ok)
		assert.Equal(t, "sum", o.Game.TextValue())
	})

	t.Run("unknown option is a domain failure", func(t *testing.T) {
		svc, _ := newTestService(testGame())
		res, err := svc.SetGameOption(ctx, "g1", "no_such_option", "x")
		require.NoError(t, err)
		require.NotNil(t, res.Failure)
		assert.Equal(t, ErrUnknownOption.Error(), failureReason(t, res))
	})
}

func TestResetSpec(t *testing.T) {
	ctx := context.Background()

	t.Run("restores the catalog spec", func(t *testing.T) {
		g := testGame()
		svc, repo := newTestService(g)
		_, err := svc.CreateGame(ctx, g)
		require.NoError(t, err)
		_, err = svc.SetGameOption(ctx, "g1", scoringtypes.OptionNameTeamScore, "sum")
		require.NoError(t, err)

		res, err := svc.ResetSpec(ctx, "g1")
		require.NoError(t, err)
		successPayload(t, res)
		assert.Contains(t, repo.Trace(), "SaveSpec")

		o, _ := g.SpecOption(scoringtypes.OptionNameTeamScore)
		assert.Nil(t, o.Game.Value, "reset drops the user-set value")
	})

	t.Run("nothing to reset is a domain failure", func(t *testing.T) {
		g := testGame()
		svc, _ := newTestService(g)
		_, err := svc.CreateGame(ctx, g)
		require.NoError(t, err)

		res, err := svc.ResetSpec(ctx, "g1")
		require.NoError(t, err)
		assert.NotNil(t, res.Failure)
	})
}

func TestHoleOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a real difference and drops a no-op", func(t *testing.T) {
		g := testGame()
		svc, _ := newTestService(g)

		override := scoringtypes.Option{Type: scoringtypes.OptionTypeGame, Game: &scoringtypes.GameOption{
			Name: scoringtypes.OptionNameTeamScore, ValueType: scoringtypes.ValueTypeMenu,
			DefaultValue: "best_ball", Value: strp("sum"),
		}}
		res, err := svc.SetHoleOption(ctx, "g1", 5, override)
		require.NoError(t, err)
		successPayload(t, res)
		require.Contains(t, g.Hole(5).Options, scoringtypes.OptionNameTeamScore)

		// Writing the base value back removes the override entry.
		base, _ := g.SpecOption(scoringtypes.OptionNameTeamScore)
		_, err = svc.SetHoleOption(ctx, "g1", 5, base)
		require.NoError(t, err)
		assert.NotContains(t, g.Hole(5).Options, scoringtypes.OptionNameTeamScore)
	})

	t.Run("override for an unknown option is refused", func(t *testing.T) {
		svc, _ := newTestService(testGame())
		unknown := scoringtypes.Option{Type: scoringtypes.OptionTypeGame, Game: &scoringtypes.GameOption{Name: "mystery"}}
		res, err := svc.SetHoleOption(ctx, "g1", 5, unknown)
		require.NoError(t, err)
		require.NotNil(t, res.Failure)
		assert.Equal(t, ErrUnknownOption.Error(), failureReason(t, res))
	})

	t.Run("override with a bad expression is refused", func(t *testing.T) {
		svc, _ := newTestService(testGame())
		bad := scoringtypes.Option{Type: scoringtypes.OptionTypeJunk, Junk: &scoringtypes.JunkOption{
			Name: "birdie", Logic: "{'no_such_op': []}",
		}}
		res, err := svc.SetHoleOption(ctx, "g1", 5, bad)
		require.NoError(t, err)
		assert.NotNil(t, res.Failure)
	})

	t.Run("clear restores the game default", func(t *testing.T) {
		g := testGame()
		svc, _ := newTestService(g)

		override := scoringtypes.Option{Type: scoringtypes.OptionTypeGame, Game: &scoringtypes.GameOption{
			Name: scoringtypes.OptionNameTeamScore, ValueType: scoringtypes.ValueTypeMenu,
			DefaultValue: "best_ball", Value: strp("sum"),
		}}
		_, err := svc.SetHoleOption(ctx, "g1", 5, override)
		require.NoError(t, err)

		res, err := svc.ClearHoleOption(ctx, "g1", 5, scoringtypes.OptionNameTeamScore)
		require.NoError(t, err)
		successPayload(t, res)
		assert.NotContains(t, g.Hole(5).Options, scoringtypes.OptionNameTeamScore)
	})
}
