package invalidation

import (
	"testing"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/opts"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/pipeline"
)

const (
	availDown = "{'team_down_the_most': [{'getPrevHole': []}, {'var': 'team'}]}"
	availBack = "{'and': [{'team_second_to_last': [{'getPrevHole': []}, {'var': 'team'}]}, {'other_team_multiplied_with': [{'getCurrHole': []}, {'var': 'team'}, 'double']}]}"
)

func strp(s string) *string { return &s }

// pressGame is a two team front nine where doubles are gated on standings:
// only the team down the most may double, and double_back answers a double.
func pressGame() *scoringtypes.Game {
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
			{Type: scoringtypes.OptionTypeMultiplier, Multiplier: &scoringtypes.MultiplierOption{
				Name: "double", Scope: scoringtypes.ScopeHole, BasedOn: scoringtypes.BasedOnUser,
				Availability: availDown,
			}},
			{Type: scoringtypes.OptionTypeMultiplier, Multiplier: &scoringtypes.MultiplierOption{
				Name: "double_back", Scope: scoringtypes.ScopeHole, BasedOn: scoringtypes.BasedOnUser,
				Availability: availBack,
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

func score(g *scoringtypes.Game, playerID string, hole, gross int) {
	g.Round(playerID).Scores[scoringtypes.HoleKey(hole)] = &scoringtypes.Score{Gross: gross}
}

// activations puts team 2's double and team 1's answering double_back on
// hole 2.
func activations(g *scoringtypes.Game) {
	g.Holes[1].Teams = []*scoringtypes.Team{
		{ID: "1", Rounds: []string{"r1"}, Options: []scoringtypes.TeamOption{{OptionName: "double_back", FirstHole: 2}}},
		{ID: "2", Rounds: []string{"r2"}, Options: []scoringtypes.TeamOption{{OptionName: "double", FirstHole: 2}}},
	}
}

func compute(t *testing.T, g *scoringtypes.Game) (*Detector, *scoringtypes.Scoreboard) {
	t.Helper()
	engine := pipeline.New()
	board, err := engine.Compute(g)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	return NewDetector(engine), board
}

func TestDetectMultiplierInvalidation(t *testing.T) {
	t.Run("edit flips the standings under a double", func(t *testing.T) {
		g := pressGame()
		// After the edit team 2 leads, so team 2's hole 2 double no longer
		// belongs to the team down the most.
		score(g, "p1", 1, 4)
		score(g, "p2", 1, 3)
		score(g, "p1", 2, 4)
		score(g, "p2", 2, 3)
		activations(g)

		d, board := compute(t, g)
		items, err := d.Detect(g, board, 1)
		if err != nil {
			t.Fatalf("detect: %v", err)
		}
		// Team 1's answering double_back loses its footing too: it is no
		// longer second to last and the double it references is gone.
		if len(items) != 2 {
			t.Fatalf("got %d items, want both doubles: %+v", len(items), items)
		}

		back := items[0]
		if back.Kind != KindMultiplier || back.Name != "double_back" || back.TeamID != "1" || back.Hole != 2 {
			t.Fatalf("first item = %+v", back)
		}

		double := items[1]
		if double.Name != "double" || double.TeamID != "2" || double.Hole != 2 {
			t.Fatalf("second item = %+v", double)
		}
		// Team 2 keeps one birdie point on hole 2 once its double is gone.
		if double.ScoreImpact != 0.5 {
			t.Fatalf("ScoreImpact = %v, want 0.5", double.ScoreImpact)
		}
	})

	t.Run("score impact resolves dynamic values", func(t *testing.T) {
		g := pressGame()
		for i, o := range g.Spec {
			if o.Name() == "double" {
				g.Spec[i].Multiplier.ValueFrom = "table_stakes"
			}
		}
		score(g, "p1", 1, 4)
		score(g, "p2", 1, 3)
		score(g, "p1", 2, 4)
		score(g, "p2", 2, 3)
		activations(g)

		registry := opts.NewRegistry()
		registry.Register("table_stakes", func(opts.ResolveContext) float64 { return 4 })
		engine := pipeline.NewWithRegistry(registry)
		board, err := engine.Compute(g)
		if err != nil {
			t.Fatalf("compute: %v", err)
		}
		items, err := NewDetector(engine).Detect(g, board, 1)
		if err != nil {
			t.Fatalf("detect: %v", err)
		}

		var double *InvalidatedItem
		for i := range items {
			if items[i].Name == "double" {
				double = &items[i]
			}
		}
		if double == nil {
			t.Fatalf("no double item in %+v", items)
		}
		// One birdie point at the resolved x4: 1 * (1 - 1/4).
		if double.ScoreImpact != 0.75 {
			t.Fatalf("ScoreImpact = %v, want 0.75", double.ScoreImpact)
		}
	})

	t.Run("standings that still justify the double stay quiet", func(t *testing.T) {
		g := pressGame()
		score(g, "p1", 1, 3)
		score(g, "p2", 1, 4)
		score(g, "p1", 2, 4)
		score(g, "p2", 2, 4)
		activations(g)

		d, board := compute(t, g)
		items, err := d.Detect(g, board, 1)
		if err != nil {
			t.Fatalf("detect: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected no invalidations, got %+v", items)
		}
	})

	t.Run("holes at or before the edit are not re-checked", func(t *testing.T) {
		g := pressGame()
		score(g, "p1", 1, 4)
		score(g, "p2", 1, 3)
		score(g, "p1", 2, 4)
		score(g, "p2", 2, 3)
		activations(g)

		d, board := compute(t, g)
		items, err := d.Detect(g, board, 2)
		if err != nil {
			t.Fatalf("detect: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("hole 2 activations were made with its score known, got %+v", items)
		}
	})
}

func TestDetectTeeFlip(t *testing.T) {
	flipGame := func() *scoringtypes.Game {
		g := pressGame()
		for i, o := range g.Spec {
			if o.Name() == scoringtypes.OptionNameTeeFlip {
				g.Spec[i].Game.Value = strp("true")
			}
		}
		g.Holes[1].Teams = []*scoringtypes.Team{
			{ID: "1", Rounds: []string{"r1"}, Options: []scoringtypes.TeamOption{
				{OptionName: scoringtypes.OptionNameTeeFlipWinner, PlayerID: "p1"},
			}},
			{ID: "2", Rounds: []string{"r2"}},
		}
		return g
	}

	t.Run("broken tie invalidates the flip", func(t *testing.T) {
		g := flipGame()
		score(g, "p1", 1, 3)
		score(g, "p2", 1, 4)

		d, board := compute(t, g)
		items, err := d.Detect(g, board, 1)
		if err != nil {
			t.Fatalf("detect: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("got %+v, want one tee flip item", items)
		}
		it := items[0]
		if it.Kind != KindTeeFlip || it.Hole != 2 || it.Name != scoringtypes.OptionNameTeeFlipWinner || it.PlayerID != "p1" {
			t.Fatalf("item = %+v", it)
		}
	})

	t.Run("a flip over a surviving tie stands", func(t *testing.T) {
		g := flipGame()
		score(g, "p1", 1, 4)
		score(g, "p2", 1, 4)

		d, board := compute(t, g)
		items, err := d.Detect(g, board, 1)
		if err != nil {
			t.Fatalf("detect: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("teams are still tied, got %+v", items)
		}
	})

	t.Run("without the tee flip option nothing is checked", func(t *testing.T) {
		g := flipGame()
		for i, o := range g.Spec {
			if o.Name() == scoringtypes.OptionNameTeeFlip {
				g.Spec[i].Game.Value = strp("false")
			}
		}
		score(g, "p1", 1, 3)
		score(g, "p2", 1, 4)

		d, board := compute(t, g)
		items, err := d.Detect(g, board, 1)
		if err != nil {
			t.Fatalf("detect: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("got %+v, want none", items)
		}
	})
}
