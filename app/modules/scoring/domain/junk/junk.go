// Package junk awards bonus points from JunkOption records. No junk name is
// hardcoded; every rule comes from option data.
package junk

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/logic"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/opts"
)

// Condition is a parsed score_to_par condition.
type Condition struct {
	// Operator is "exactly", "at_most" or "at_least".
	Operator string
	Value    int
}

// ParseCondition parses a score_to_par string like "exactly -1" or
// "at_most -2". Malformed conditions are configuration errors.
func ParseCondition(condition string) (Condition, error) {
	parts := strings.Fields(condition)
	if len(parts) != 2 {
		return Condition{}, fmt.Errorf("junk: malformed score_to_par %q", condition)
	}
	switch parts[0] {
	case "exactly", "at_most", "at_least":
	default:
		return Condition{}, fmt.Errorf("junk: unknown score_to_par operator %q", parts[0])
	}
	v, err := strconv.Atoi(parts[1])
	if err != nil {
		return Condition{}, fmt.Errorf("junk: score_to_par value %q: %w", parts[1], err)
	}
	return Condition{Operator: parts[0], Value: v}, nil
}

// Holds tests the condition against a score-to-par value.
func (c Condition) Holds(scoreToPar int) bool {
	switch c.Operator {
	case "exactly":
		return scoreToPar == c.Value
	case "at_most":
		return scoreToPar <= c.Value
	case "at_least":
		return scoreToPar >= c.Value
	}
	return false
}

// EvaluateHole evaluates every junk option against a ranked hole result,
// appending awards to player and team results. Errors from condition
// expressions propagate; a broken junk rule must be visible, not scored
// around.
func EvaluateHole(
	g *scoringtypes.Game,
	gh *scoringtypes.GameHole,
	board *scoringtypes.Scoreboard,
	hr *scoringtypes.HoleResult,
	betterPoints string,
) error {
	for _, spec := range g.Spec {
		if spec.Type != scoringtypes.OptionTypeJunk {
			continue
		}
		// Per-hole overrides take precedence over the working spec.
		effective, _ := opts.ForHole(spec.Name(), gh, g)
		if effective.Type != scoringtypes.OptionTypeJunk {
			effective = spec
		}
		j := effective.Junk

		var err error
		if j.Scope == scoringtypes.ScopeTeam {
			err = evaluateTeamJunk(j, gh, board, hr, betterPoints)
		} else {
			err = evaluatePlayerJunk(j, gh, board, hr, betterPoints)
		}
		if err != nil {
			return fmt.Errorf("junk %q: %w", j.Name, err)
		}
	}
	return nil
}

func evaluatePlayerJunk(
	j *scoringtypes.JunkOption,
	gh *scoringtypes.GameHole,
	board *scoringtypes.Scoreboard,
	hr *scoringtypes.HoleResult,
	betterPoints string,
) error {
	for _, pid := range orderedPlayerIDs(hr) {
		pr := hr.Players[pid]
		award, err := shouldAwardPlayer(j, gh, board, hr, pr, betterPoints)
		if err != nil {
			return err
		}
		if award {
			pr.Junk = append(pr.Junk, scoringtypes.AwardedJunk{
				Name:       j.Name,
				Disp:       j.Disp,
				Value:      j.Value,
				PlayerID:   pid,
				UserMarked: j.BasedOn == scoringtypes.BasedOnUser,
			})
		}
	}
	return nil
}

func shouldAwardPlayer(
	j *scoringtypes.JunkOption,
	gh *scoringtypes.GameHole,
	board *scoringtypes.Scoreboard,
	hr *scoringtypes.HoleResult,
	pr *scoringtypes.PlayerHoleResult,
	betterPoints string,
) (bool, error) {
	// User junk is a direct toggle recorded on the player's team; the
	// engine reads it, it never decides to grant it.
	if j.BasedOn == scoringtypes.BasedOnUser {
		return userMarked(j.Name, pr.PlayerID, gh), nil
	}

	if j.ScoreToPar != "" {
		if !pr.HasScore {
			return false, nil
		}
		cond, err := ParseCondition(j.ScoreToPar)
		if err != nil {
			return false, err
		}
		score := pr.ScoreToPar
		if j.BasedOn == scoringtypes.BasedOnNet {
			score = pr.NetToPar
		}
		return cond.Holds(score), nil
	}

	if j.Logic != "" {
		env := &logic.ScoreEnv{
			Scoreboard:   board,
			Hole:         hr,
			HoleNum:      gh.Number(),
			PlayerResult: pr,
			TeamResult:   hr.Teams[pr.TeamID],
			TeamResults:  orderedTeams(hr),
			BetterPoints: betterPoints,
			PlayerID:     pr.PlayerID,
			WolfPlayerID: wolfPlayer(gh),
		}
		return logic.EvaluateString(j.Logic, env)
	}

	return false, nil
}

func evaluateTeamJunk(
	j *scoringtypes.JunkOption,
	gh *scoringtypes.GameHole,
	board *scoringtypes.Scoreboard,
	hr *scoringtypes.HoleResult,
	betterPoints string,
) error {
	teams := orderedTeams(hr)
	for _, tr := range teams {
		var award bool
		var err error
		switch {
		case j.Calculation == "logic" && j.Logic != "":
			env := &logic.ScoreEnv{
				Scoreboard:   board,
				Hole:         hr,
				HoleNum:      gh.Number(),
				TeamResult:   tr,
				TeamResults:  teams,
				BetterPoints: betterPoints,
			}
			award, err = logic.EvaluateString(j.Logic, env)
		case j.Calculation != "":
			award = calculationWinner(j, tr, teams)
		}
		if err != nil {
			return err
		}
		if award {
			tr.Junk = append(tr.Junk, scoringtypes.AwardedJunk{
				Name:  j.Name,
				Disp:  j.Disp,
				Value: j.Value,
			})
		}
	}
	return nil
}

// calculationWinner awards calculation-based team junk (low_ball, low_total)
// to the team holding the best metric. Ties award every tied team; the
// points stage splits the value.
func calculationWinner(j *scoringtypes.JunkOption, tr *scoringtypes.TeamHoleResult, teams []*scoringtypes.TeamHoleResult) bool {
	metric := func(t *scoringtypes.TeamHoleResult) (float64, bool) {
		if t.Score == nil {
			return 0, false
		}
		switch j.Calculation {
		case "sum":
			return t.Total, t.Total > 0
		default:
			return t.LowBall, t.LowBall > 0
		}
	}

	own, ok := metric(tr)
	if !ok {
		return false
	}
	better := j.Better
	if better == "" {
		better = "lower"
	}
	best := own
	found := false
	for _, t := range teams {
		v, ok := metric(t)
		if !ok {
			continue
		}
		if !found {
			best = v
			found = true
			continue
		}
		if (better == "lower" && v < best) || (better == "higher" && v > best) {
			best = v
		}
	}
	return found && own == best
}

// wolfPlayer returns the player recorded as the wolf for this hole. Wolf
// games record the pick as a team option named "wolf" carrying the player ID.
func wolfPlayer(gh *scoringtypes.GameHole) string {
	for _, t := range gh.Teams {
		for _, to := range t.Options {
			if to.OptionName == "wolf" && (to.FirstHole == 0 || to.FirstHole == gh.Number()) {
				return to.PlayerID
			}
		}
	}
	return ""
}

func userMarked(name, playerID string, gh *scoringtypes.GameHole) bool {
	for _, t := range gh.Teams {
		if t.HasOption(name, playerID) {
			return true
		}
	}
	return false
}

func orderedPlayerIDs(hr *scoringtypes.HoleResult) []string {
	ids := make([]string, 0, len(hr.Players))
	for id := range hr.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func orderedTeams(hr *scoringtypes.HoleResult) []*scoringtypes.TeamHoleResult {
	ids := make([]string, 0, len(hr.Teams))
	for id := range hr.Teams {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*scoringtypes.TeamHoleResult, 0, len(ids))
	for _, id := range ids {
		out = append(out, hr.Teams[id])
	}
	return out
}
