package logic

import (
	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
)

// ScoreEnv is the Env the junk and multiplier engines evaluate against. It
// is assembled per evaluation site; nil fields answer with zero values.
type ScoreEnv struct {
	Scoreboard *scoringtypes.Scoreboard
	Hole       *scoringtypes.HoleResult
	HoleNum    int

	PlayerResult *scoringtypes.PlayerHoleResult
	TeamResult   *scoringtypes.TeamHoleResult
	TeamResults  []*scoringtypes.TeamHoleResult

	// BetterPoints is "higher" (default) or "lower"; it flips the reading
	// of relative-standing operators.
	BetterPoints string

	PossiblePoints     float64
	PreMultiplierTotal float64

	// Wolf detection: the current player and the hole's wolf.
	PlayerID     string
	WolfPlayerID string
}

var _ Env = (*ScoreEnv)(nil)

func (e *ScoreEnv) Var(path string) any {
	switch path {
	case "team":
		return e.TeamResult
	case "teams":
		return e.TeamResults
	case "possiblePoints":
		return e.PossiblePoints
	case "team.rank":
		if e.TeamResult != nil {
			return float64(e.TeamResult.Rank)
		}
	case "team.tieCount":
		if e.TeamResult != nil {
			return float64(e.TeamResult.TieCount)
		}
	case "team.points":
		if e.TeamResult != nil {
			return e.TeamResult.Points
		}
	case "team.runningTotal":
		if e.TeamResult != nil {
			return e.TeamResult.RunningTotal
		}
	case "player.rank":
		if e.PlayerResult != nil {
			return float64(e.PlayerResult.Rank)
		}
	case "player.scoreToPar":
		if e.PlayerResult != nil {
			return float64(e.PlayerResult.ScoreToPar)
		}
	case "player.netToPar":
		if e.PlayerResult != nil {
			return float64(e.PlayerResult.NetToPar)
		}
	}
	return nil
}

func (e *ScoreEnv) Team(ref string) any {
	switch ref {
	case "this":
		if e.TeamResult == nil {
			return nil
		}
		return e.TeamResult
	case "other":
		if e.TeamResult == nil {
			return nil
		}
		for _, t := range e.TeamResults {
			if t.TeamID != e.TeamResult.TeamID {
				return t
			}
		}
	}
	return nil
}

func (e *ScoreEnv) CountJunk(team any, junkName string) float64 {
	t, ok := team.(*scoringtypes.TeamHoleResult)
	if !ok || t == nil {
		return 0
	}
	count := t.CountJunk(junkName)
	// Player junk counts toward the team for condition purposes.
	if e.Hole != nil {
		for _, pid := range t.PlayerIDs {
			if p := e.Hole.Players[pid]; p != nil {
				count += p.CountJunk(junkName)
			}
		}
	}
	return float64(count)
}

func (e *ScoreEnv) RankWithTies(rankTarget, tieCount int) bool {
	if e.TeamResult != nil {
		return e.TeamResult.Rank == rankTarget && e.TeamResult.TieCount == tieCount
	}
	if e.PlayerResult != nil {
		return e.PlayerResult.Rank == rankTarget && e.PlayerResult.TieCount == tieCount
	}
	return false
}

// standings sorts the hole's teams so the team down the most comes first.
// With higher points better (the default), down the most means the lowest
// running total.
func (e *ScoreEnv) standings(hole *scoringtypes.HoleResult) []*scoringtypes.TeamHoleResult {
	teams := make([]*scoringtypes.TeamHoleResult, 0, len(hole.Teams))
	for _, t := range hole.Teams {
		teams = append(teams, t)
	}
	lowerBetter := e.BetterPoints == "lower"
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			swap := teams[i].RunningTotal > teams[j].RunningTotal
			if lowerBetter {
				swap = teams[i].RunningTotal < teams[j].RunningTotal
			}
			if swap {
				teams[i], teams[j] = teams[j], teams[i]
			}
		}
	}
	return teams
}

func (e *ScoreEnv) TeamDownTheMost(hole, team any) bool {
	h, _ := hole.(*scoringtypes.HoleResult)
	if h == nil {
		// No previous hole (hole 1): every team can press.
		return true
	}
	t, _ := team.(*scoringtypes.TeamHoleResult)
	if t == nil {
		t = e.TeamResult
	}
	if t == nil || len(h.Teams) < 2 {
		return true
	}
	sorted := e.standings(h)
	allTied := true
	for _, st := range sorted {
		if st.RunningTotal != sorted[0].RunningTotal {
			allTied = false
			break
		}
	}
	if allTied {
		return true
	}
	return sorted[0].TeamID == t.TeamID
}

func (e *ScoreEnv) TeamSecondToLast(hole, team any) bool {
	h, _ := hole.(*scoringtypes.HoleResult)
	if h == nil {
		return false
	}
	t, _ := team.(*scoringtypes.TeamHoleResult)
	if t == nil {
		t = e.TeamResult
	}
	if t == nil || len(h.Teams) < 2 {
		return false
	}
	sorted := e.standings(h)
	return sorted[1].TeamID == t.TeamID
}

func (e *ScoreEnv) OtherTeamMultipliedWith(_, team any, multName string) bool {
	t, _ := team.(*scoringtypes.TeamHoleResult)
	if t == nil {
		t = e.TeamResult
	}
	if t == nil {
		return false
	}
	for _, other := range e.TeamResults {
		if other.TeamID == t.TeamID {
			continue
		}
		if other.HasMultiplier(multName) {
			return true
		}
	}
	return false
}

func (e *ScoreEnv) PrevHole() any {
	if e.HoleNum <= 1 || e.Scoreboard == nil {
		return nil
	}
	h := e.Scoreboard.HoleResultFor(e.HoleNum - 1)
	if h == nil {
		return nil
	}
	return h
}

func (e *ScoreEnv) CurrHole() any {
	if e.Hole == nil {
		return nil
	}
	return e.Hole
}

func (e *ScoreEnv) PlayersOnTeam(ref string) float64 {
	t, _ := e.Team(ref).(*scoringtypes.TeamHoleResult)
	if t == nil {
		return 0
	}
	return float64(len(t.PlayerIDs))
}

func (e *ScoreEnv) IsWolfPlayer() bool {
	return e.PlayerID != "" && e.PlayerID == e.WolfPlayerID
}

func (e *ScoreEnv) ParOrBetter(_, scoreType any) bool {
	if e.PlayerResult == nil || !e.PlayerResult.HasScore {
		return false
	}
	if s, _ := scoreType.(string); s == "net" {
		return e.PlayerResult.NetToPar <= 0
	}
	return e.PlayerResult.ScoreToPar <= 0
}

func (e *ScoreEnv) HolePar() float64 {
	if e.Hole == nil {
		return 0
	}
	return float64(e.Hole.Par)
}

func (e *ScoreEnv) ExistingPreMultiplierTotal(_ any, threshold float64) bool {
	return e.PreMultiplierTotal >= threshold
}
