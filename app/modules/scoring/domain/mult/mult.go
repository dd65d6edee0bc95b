// Package mult evaluates MultiplierOption records: automatic triggers, user
// activations with rest-of-nine inheritance and stacking, override
// semantics, and the combined hole multiplier.
package mult

import (
	"fmt"
	"sort"
	"strconv"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/logic"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/opts"
)

// Engine resolves dynamic multiplier values through the option registry.
type Engine struct {
	Registry *opts.Registry
}

// NewEngine returns an engine over the given resolver registry.
func NewEngine(registry *opts.Registry) *Engine {
	return &Engine{Registry: registry}
}

// EvaluateHole applies every multiplier option to a junk-ranked hole result:
// automatic multipliers triggered by junk, user activations read from team
// options (including instances inherited from earlier holes of the nine),
// then the combined hole multiplier.
func (e *Engine) EvaluateHole(
	g *scoringtypes.Game,
	gh *scoringtypes.GameHole,
	board *scoringtypes.Scoreboard,
	hr *scoringtypes.HoleResult,
	betterPoints string,
	possiblePoints float64,
) error {
	holeNum := gh.Number()
	teams := orderedTeams(hr)

	for _, m := range effectiveMultiplierOptions(g, gh) {
		value, err := e.Registry.MultiplierValue(m, opts.ResolveContext{Game: g, Hole: gh})
		if err != nil {
			return fmt.Errorf("multiplier %q: %w", m.Name, err)
		}

		if m.SubType == scoringtypes.SubTypeAutomatic || m.SubType == scoringtypes.SubTypeBBQ {
			e.applyAutomatic(m, value, board, hr, holeNum, teams, betterPoints, possiblePoints)
			continue
		}
		e.applyActivations(g, m, value, board, hr, gh, holeNum, teams, betterPoints, possiblePoints)
	}

	hr.HoleMultiplier = combinedHoleMultiplier(teams)
	for _, tr := range teams {
		tr.TeeMultiplier = product(tr.Multipliers, false)
		tr.OverallMultiplier = product(tr.Multipliers, true)
	}
	return nil
}

// applyAutomatic applies junk-triggered multipliers (e.g. a birdie BBQ): a
// team earns it when the team or any of its players was awarded the
// triggering junk.
func (e *Engine) applyAutomatic(
	m *scoringtypes.MultiplierOption,
	value float64,
	board *scoringtypes.Scoreboard,
	hr *scoringtypes.HoleResult,
	holeNum int,
	teams []*scoringtypes.TeamHoleResult,
	betterPoints string,
	possiblePoints float64,
) {
	if m.BasedOn == "" {
		return
	}
	for _, tr := range teams {
		if !teamHasJunk(tr, hr, m.BasedOn) {
			continue
		}
		if !e.availabilityOpen(m, board, hr, holeNum, tr, teams, betterPoints, possiblePoints) {
			continue
		}
		tr.Multipliers = append(tr.Multipliers, scoringtypes.AppliedMultiplier{
			Name:      m.Name,
			Disp:      m.Disp,
			Value:     value,
			FirstHole: holeNum,
			Automatic: true,
		})
	}
}

// applyActivations applies user-recorded activations. A team option with
// firstHole equal to the current hole is an active instance; rest-of-nine
// and game scopes also pick up activations from earlier holes, each
// inherited instance retained and counted separately.
func (e *Engine) applyActivations(
	g *scoringtypes.Game,
	m *scoringtypes.MultiplierOption,
	value float64,
	board *scoringtypes.Scoreboard,
	hr *scoringtypes.HoleResult,
	gh *scoringtypes.GameHole,
	holeNum int,
	teams []*scoringtypes.TeamHoleResult,
	betterPoints string,
	possiblePoints float64,
) {
	scanFrom := holeNum
	switch m.Scope {
	case scoringtypes.ScopeRestOfNine:
		scanFrom = scoringtypes.NineStart(holeNum)
	case scoringtypes.ScopeGame:
		scanFrom = 1
	}

	for _, tr := range teams {
		var instances []scoringtypes.AppliedMultiplier
		for n := scanFrom; n <= holeNum; n++ {
			src := g.Hole(n)
			if src == nil {
				continue
			}
			team := src.Team(tr.TeamID)
			if team == nil {
				continue
			}
			for _, to := range team.Options {
				if to.OptionName != m.Name || to.FirstHole != n {
					continue
				}
				inst := scoringtypes.AppliedMultiplier{
					Name:      m.Name,
					Disp:      m.Disp,
					Value:     value,
					FirstHole: n,
					Inherited: n != holeNum,
					Override:  m.Override,
				}
				if m.InputValue {
					if v, err := strconv.ParseFloat(to.Value, 64); err == nil && v > 0 {
						inst.Value = v
					}
				}
				instances = append(instances, inst)
			}
		}
		if len(instances) == 0 {
			continue
		}
		if !e.availabilityOpen(m, board, hr, holeNum, tr, teams, betterPoints, possiblePoints) {
			continue
		}
		tr.Multipliers = append(tr.Multipliers, instances...)
	}
}

// availabilityOpen evaluates an availability expression and fails OPEN: an
// evaluation error must never hide a multiplier the user relies on. This is
// the deliberate asymmetry with junk evaluation, which fails loud.
func (e *Engine) availabilityOpen(
	m *scoringtypes.MultiplierOption,
	board *scoringtypes.Scoreboard,
	hr *scoringtypes.HoleResult,
	holeNum int,
	tr *scoringtypes.TeamHoleResult,
	teams []*scoringtypes.TeamHoleResult,
	betterPoints string,
	possiblePoints float64,
) bool {
	if m.Availability == "" {
		return true
	}
	env := &logic.ScoreEnv{
		Scoreboard:     board,
		Hole:           hr,
		HoleNum:        holeNum,
		TeamResult:     tr,
		TeamResults:    teams,
		BetterPoints:   betterPoints,
		PossiblePoints: possiblePoints,
	}
	ok, err := logic.EvaluateString(m.Availability, env)
	if err != nil {
		return true
	}
	return ok
}

// ActiveOverride returns the override multiplier instance active on the
// hole, if any. While one exists, every other multiplier control on the hole
// is hidden except the owner's own toggle.
func ActiveOverride(hr *scoringtypes.HoleResult) (teamID string, inst scoringtypes.AppliedMultiplier, ok bool) {
	for _, id := range sortedTeamIDs(hr) {
		for _, m := range hr.Teams[id].Multipliers {
			if m.Override {
				return id, m, true
			}
		}
	}
	return "", scoringtypes.AppliedMultiplier{}, false
}

// combinedHoleMultiplier walks every active instance on the hole. An
// override instance replaces the whole product with its own value.
func combinedHoleMultiplier(teams []*scoringtypes.TeamHoleResult) float64 {
	total := 1.0
	for _, tr := range teams {
		for _, m := range tr.Multipliers {
			if m.Override {
				return m.Value
			}
			total *= m.Value
		}
	}
	return total
}

func product(ms []scoringtypes.AppliedMultiplier, includeAutomatic bool) float64 {
	p := 1.0
	for _, m := range ms {
		if m.Automatic && !includeAutomatic {
			continue
		}
		p *= m.Value
	}
	return p
}

// DependsOn reports whether an availability expression's eligibility rests
// on another team holding the named multiplier. The parsed tree is walked
// for an other_team_multiplied_with application naming it; substring checks
// would false-positive on multiplier names containing each other.
func DependsOn(availability, removedName string) (bool, error) {
	if availability == "" {
		return false, nil
	}
	n, err := logic.Compile(availability)
	if err != nil {
		return false, err
	}
	return logic.References(n, "other_team_multiplied_with", removedName), nil
}

// Available reports whether a multiplier can be activated by a team right
// now: the availability expression holds (failing open) and a max_off_tee
// cap is not exceeded by the projected total.
func (e *Engine) Available(
	g *scoringtypes.Game,
	gh *scoringtypes.GameHole,
	board *scoringtypes.Scoreboard,
	hr *scoringtypes.HoleResult,
	m *scoringtypes.MultiplierOption,
	teamID string,
	betterPoints string,
	possiblePoints float64,
) bool {
	teams := orderedTeams(hr)
	var tr *scoringtypes.TeamHoleResult
	for _, t := range teams {
		if t.TeamID == teamID {
			tr = t
		}
	}
	if tr == nil {
		return false
	}
	if !e.availabilityOpen(m, board, hr, gh.Number(), tr, teams, betterPoints, possiblePoints) {
		return false
	}

	maxOffTee := opts.NumForHole(scoringtypes.OptionNameMaxOffTee, gh, g)
	if maxOffTee > 0 {
		value, err := e.Registry.MultiplierValue(m, opts.ResolveContext{Game: g, Hole: gh, TeamID: teamID})
		if err != nil {
			value = m.StaticValue()
		}
		projected := hr.HoleMultiplier * value
		if m.Override {
			projected = value
		}
		if projected > maxOffTee {
			return false
		}
	}
	return true
}

func effectiveMultiplierOptions(g *scoringtypes.Game, gh *scoringtypes.GameHole) []*scoringtypes.MultiplierOption {
	var out []*scoringtypes.MultiplierOption
	for _, spec := range g.Spec {
		if spec.Type != scoringtypes.OptionTypeMultiplier {
			continue
		}
		effective, _ := opts.ForHole(spec.Name(), gh, g)
		if effective.Type != scoringtypes.OptionTypeMultiplier {
			effective = spec
		}
		out = append(out, effective.Multiplier)
	}
	sort.SliceStable(out, func(i, j int) bool { return seq(out[i]) < seq(out[j]) })
	return out
}

func seq(m *scoringtypes.MultiplierOption) int {
	if m.Seq == nil {
		return 999
	}
	return *m.Seq
}

func teamHasJunk(tr *scoringtypes.TeamHoleResult, hr *scoringtypes.HoleResult, junkName string) bool {
	if tr.CountJunk(junkName) > 0 {
		return true
	}
	for _, pid := range tr.PlayerIDs {
		if p := hr.Players[pid]; p != nil && p.CountJunk(junkName) > 0 {
			return true
		}
	}
	return false
}

func sortedTeamIDs(hr *scoringtypes.HoleResult) []string {
	ids := make([]string, 0, len(hr.Teams))
	for id := range hr.Teams {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func orderedTeams(hr *scoringtypes.HoleResult) []*scoringtypes.TeamHoleResult {
	ids := sortedTeamIDs(hr)
	out := make([]*scoringtypes.TeamHoleResult, 0, len(ids))
	for _, id := range ids {
		out = append(out, hr.Teams[id])
	}
	return out
}
