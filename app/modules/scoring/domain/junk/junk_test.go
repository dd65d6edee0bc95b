package junk

import (
	"testing"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		in      string
		op      string
		value   int
		wantErr bool
	}{
		{in: "exactly -1", op: "exactly", value: -1},
		{in: "at_most -2", op: "at_most", value: -2},
		{in: "at_least 1", op: "at_least", value: 1},
		{in: "exactly", wantErr: true},
		{in: "roughly -1", wantErr: true},
		{in: "exactly x", wantErr: true},
	}
	for _, tt := range tests {
		cond, err := ParseCondition(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseCondition(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseCondition(%q): %v", tt.in, err)
		}
		if cond.Operator != tt.op || cond.Value != tt.value {
			t.Fatalf("ParseCondition(%q) = %+v", tt.in, cond)
		}
	}
}

func TestConditionHolds(t *testing.T) {
	if !(Condition{Operator: "exactly", Value: -1}).Holds(-1) {
		t.Fatal("exactly -1 should hold for -1")
	}
	if (Condition{Operator: "exactly", Value: -1}).Holds(-2) {
		t.Fatal("exactly -1 should not hold for -2")
	}
	if !(Condition{Operator: "at_most", Value: -2}).Holds(-3) {
		t.Fatal("at_most -2 should hold for -3")
	}
	if !(Condition{Operator: "at_least", Value: 1}).Holds(2) {
		t.Fatal("at_least 1 should hold for 2")
	}
}

func junkOption(j scoringtypes.JunkOption) scoringtypes.Option {
	cp := j
	return scoringtypes.Option{Type: scoringtypes.OptionTypeJunk, Junk: &cp}
}

// twoTeamHole builds a scored two-team hole result with one player per team.
func twoTeamHole(netA, netB int) *scoringtypes.HoleResult {
	scoreA, scoreB := float64(netA), float64(netB)
	return &scoringtypes.HoleResult{
		Hole: "1",
		Par:  4,
		Players: map[string]*scoringtypes.PlayerHoleResult{
			"p1": {PlayerID: "p1", TeamID: "1", HasScore: true, Gross: netA, Net: netA, ScoreToPar: netA - 4, NetToPar: netA - 4},
			"p2": {PlayerID: "p2", TeamID: "2", HasScore: true, Gross: netB, Net: netB, ScoreToPar: netB - 4, NetToPar: netB - 4},
		},
		Teams: map[string]*scoringtypes.TeamHoleResult{
			"1": {TeamID: "1", PlayerIDs: []string{"p1"}, Score: &scoreA, LowBall: scoreA, Total: scoreA},
			"2": {TeamID: "2", PlayerIDs: []string{"p2"}, Score: &scoreB, LowBall: scoreB, Total: scoreB},
		},
	}
}

func TestEvaluateHoleScoreToPar(t *testing.T) {
	g := &scoringtypes.Game{
		Spec: []scoringtypes.Option{
			junkOption(scoringtypes.JunkOption{Name: "birdie", Value: 1, Scope: scoringtypes.ScopePlayer, BasedOn: scoringtypes.BasedOnGross, ScoreToPar: "exactly -1"}),
		},
	}
	gh := &scoringtypes.GameHole{Hole: "1", Par: 4}
	hr := twoTeamHole(3, 4)

	if err := EvaluateHole(g, gh, &scoringtypes.Scoreboard{}, hr, "higher"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hr.Players["p1"].CountJunk("birdie") != 1 {
		t.Fatal("p1 made birdie and should hold the junk")
	}
	if hr.Players["p2"].CountJunk("birdie") != 0 {
		t.Fatal("p2 made par and should not hold the junk")
	}
}

func TestEvaluateHoleNetCondition(t *testing.T) {
	g := &scoringtypes.Game{
		Spec: []scoringtypes.Option{
			junkOption(scoringtypes.JunkOption{Name: "net_birdie", Value: 1, Scope: scoringtypes.ScopePlayer, BasedOn: scoringtypes.BasedOnNet, ScoreToPar: "exactly -1"}),
		},
	}
	gh := &scoringtypes.GameHole{Hole: "1", Par: 4}
	hr := twoTeamHole(4, 4)
	hr.Players["p1"].Net = 3
	hr.Players["p1"].NetToPar = -1

	if err := EvaluateHole(g, gh, &scoringtypes.Scoreboard{}, hr, "higher"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hr.Players["p1"].CountJunk("net_birdie") != 1 {
		t.Fatal("net condition should read the net score")
	}
	if hr.Players["p2"].CountJunk("net_birdie") != 0 {
		t.Fatal("p2 netted par")
	}
}

func TestEvaluateHoleUserJunk(t *testing.T) {
	g := &scoringtypes.Game{
		Spec: []scoringtypes.Option{
			junkOption(scoringtypes.JunkOption{Name: "prox", Value: 1, Scope: scoringtypes.ScopePlayer, BasedOn: scoringtypes.BasedOnUser, Limit: scoringtypes.LimitOnePerGroup}),
		},
	}
	gh := &scoringtypes.GameHole{
		Hole: "1",
		Teams: []*scoringtypes.Team{
			{ID: "1", Options: []scoringtypes.TeamOption{{OptionName: "prox", PlayerID: "p1"}}},
			{ID: "2"},
		},
	}
	hr := twoTeamHole(4, 4)

	if err := EvaluateHole(g, gh, &scoringtypes.Scoreboard{}, hr, "higher"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p1 := hr.Players["p1"]
	if p1.CountJunk("prox") != 1 {
		t.Fatal("marked prox should award")
	}
	if len(p1.Junk) != 1 || !p1.Junk[0].UserMarked {
		t.Fatalf("prox award should be user-marked: %+v", p1.Junk)
	}
	if hr.Players["p2"].CountJunk("prox") != 0 {
		t.Fatal("unmarked player should not hold prox")
	}
}

func TestEvaluateHoleTeamCalculation(t *testing.T) {
	lowBall := junkOption(scoringtypes.JunkOption{
		Name: "low_ball", Value: 2, Scope: scoringtypes.ScopeTeam,
		BasedOn: scoringtypes.BasedOnNet, Calculation: "best_ball", Better: "lower",
		Limit: scoringtypes.LimitOneTeamPerGroup,
	})
	lowTotal := junkOption(scoringtypes.JunkOption{
		Name: "low_total", Value: 2, Scope: scoringtypes.ScopeTeam,
		BasedOn: scoringtypes.BasedOnNet, Calculation: "sum", Better: "lower",
		Limit: scoringtypes.LimitOneTeamPerGroup,
	})
	g := &scoringtypes.Game{Spec: []scoringtypes.Option{lowBall, lowTotal}}
	gh := &scoringtypes.GameHole{Hole: "1", Par: 4}

	t.Run("best metric wins", func(t *testing.T) {
		hr := twoTeamHole(3, 5)
		if err := EvaluateHole(g, gh, &scoringtypes.Scoreboard{}, hr, "higher"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hr.Teams["1"].CountJunk("low_ball") != 1 || hr.Teams["1"].CountJunk("low_total") != 1 {
			t.Fatalf("team 1 should hold both: %+v", hr.Teams["1"].Junk)
		}
		if len(hr.Teams["2"].Junk) != 0 {
			t.Fatalf("team 2 should hold nothing: %+v", hr.Teams["2"].Junk)
		}
	})

	t.Run("ties award every tied team", func(t *testing.T) {
		hr := twoTeamHole(4, 4)
		if err := EvaluateHole(g, gh, &scoringtypes.Scoreboard{}, hr, "higher"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hr.Teams["1"].CountJunk("low_ball") != 1 || hr.Teams["2"].CountJunk("low_ball") != 1 {
			t.Fatal("tied teams should both hold low_ball")
		}
	})
}

func TestEvaluateHoleLogicError(t *testing.T) {
	g := &scoringtypes.Game{
		Spec: []scoringtypes.Option{
			junkOption(scoringtypes.JunkOption{Name: "broken", Value: 1, Scope: scoringtypes.ScopePlayer, Logic: "{'bogus_op': []}"}),
		},
	}
	gh := &scoringtypes.GameHole{Hole: "1", Par: 4}
	hr := twoTeamHole(4, 4)

	if err := EvaluateHole(g, gh, &scoringtypes.Scoreboard{}, hr, "higher"); err == nil {
		t.Fatal("broken junk logic must fail loud")
	}
}

func TestEvaluateHoleSkipsUnscoredPlayers(t *testing.T) {
	g := &scoringtypes.Game{
		Spec: []scoringtypes.Option{
			junkOption(scoringtypes.JunkOption{Name: "birdie", Value: 1, Scope: scoringtypes.ScopePlayer, BasedOn: scoringtypes.BasedOnGross, ScoreToPar: "exactly -1"}),
		},
	}
	gh := &scoringtypes.GameHole{Hole: "1", Par: 4}
	hr := twoTeamHole(3, 4)
	hr.Players["p2"].HasScore = false

	if err := EvaluateHole(g, gh, &scoringtypes.Scoreboard{}, hr, "higher"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hr.Players["p2"].CountJunk("birdie") != 0 {
		t.Fatal("unscored player must not earn score junk")
	}
}
