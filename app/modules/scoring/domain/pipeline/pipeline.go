// Package pipeline computes a Scoreboard from a Game snapshot. Computation
// runs as a fixed ordered sequence of stages per hole (gross, pops, net,
// teams, team scores, ranking, junk, multipliers, points) followed by
// running totals and cumulatives. Every stage is driven by option data; no
// stage branches on a game's name.
package pipeline

import (
	"fmt"
	"sort"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/junk"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/mult"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/opts"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/points"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/rank"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/teamscore"
)

const defaultPar = 4

// WarnMarkAllPoints is surfaced on a fully scored hole where exclusive junk
// is still unmarked.
const WarnMarkAllPoints = "Mark all possible points"

// Engine computes scoreboards. It is stateless apart from the resolver
// registry and safe for concurrent use.
type Engine struct {
	registry *opts.Registry
	mult     *mult.Engine
}

// New returns an Engine with the default value resolver registry.
func New() *Engine {
	return NewWithRegistry(opts.NewRegistry())
}

// NewWithRegistry returns an Engine using a caller-supplied registry, for
// games whose multiplier values derive from custom game state.
func NewWithRegistry(r *opts.Registry) *Engine {
	return &Engine{registry: r, mult: mult.NewEngine(r)}
}

// Multipliers exposes the multiplier engine sharing this Engine's registry,
// used by callers that gate activations or detect dependent cascades.
func (e *Engine) Multipliers() *mult.Engine {
	return e.mult
}

// Compute derives the full scoreboard for a game snapshot. The result is a
// pure function of the snapshot: the same snapshot always computes the same
// board. Missing prerequisite data returns an error wrapping ErrNotReady
// rather than a partially correct board.
func (e *Engine) Compute(g *scoringtypes.Game) (*scoringtypes.Scoreboard, error) {
	if err := scoringtypes.CheckReady(g); err != nil {
		return nil, err
	}

	better := betterPoints(g)
	board := &scoringtypes.Scoreboard{
		GameID: g.ID,
		Holes:  make(map[string]*scoringtypes.HoleResult),
		Cumulative: scoringtypes.Cumulative{
			Players: make(map[string]*scoringtypes.PlayerCumulative),
			Teams:   make(map[string]*scoringtypes.TeamCumulative),
		},
	}

	running := map[string]float64{}
	for _, n := range g.Scope.HoleNumbers() {
		gh := g.Hole(n)
		if gh == nil {
			continue
		}
		hr, err := e.computeHole(g, gh, board, better)
		if err != nil {
			return nil, fmt.Errorf("hole %d: %w", n, err)
		}
		board.Holes[hr.Hole] = hr

		// Running totals advance only on fully scored holes, so expressions
		// on later holes (down-the-most, presses) see settled standings.
		if hr.Complete {
			for _, tr := range hr.Teams {
				running[tr.TeamID] += tr.Points
				tr.RunningTotal = running[tr.TeamID]
			}
		} else {
			for _, tr := range hr.Teams {
				tr.RunningTotal = running[tr.TeamID]
			}
		}
		applyRunningDiff(hr, better)
	}

	e.computeCumulatives(g, board, better)
	return board, nil
}

// computeHole runs the per-hole stages in order. Junk, multipliers and
// points are only computed once every player has a gross score; a partially
// entered hole shows scores but no provisional points.
func (e *Engine) computeHole(
	g *scoringtypes.Game,
	gh *scoringtypes.GameHole,
	board *scoringtypes.Scoreboard,
	better string,
) (*scoringtypes.HoleResult, error) {
	n := gh.Number()
	hr := &scoringtypes.HoleResult{
		Hole:           scoringtypes.HoleKey(n),
		Par:            holePar(gh),
		Players:        make(map[string]*scoringtypes.PlayerHoleResult),
		Teams:          make(map[string]*scoringtypes.TeamHoleResult),
		HoleMultiplier: 1,
	}

	e.stageGrossAndPops(g, gh, hr)
	e.stageTeams(g, gh, hr)
	e.stageTeamScores(g, gh, hr)
	stageRankPlayers(hr)
	stageRankTeams(hr)

	hr.Complete = hr.ScoresEntered > 0 && hr.ScoresEntered == len(g.Players)
	if !hr.Complete {
		for _, tr := range hr.Teams {
			tr.TeeMultiplier = 1
			tr.OverallMultiplier = 1
		}
		return hr, nil
	}

	if err := junk.EvaluateHole(g, gh, board, hr, better); err != nil {
		return nil, err
	}
	hr.PossiblePoints = possiblePoints(g, gh, hr)
	if err := e.mult.EvaluateHole(g, gh, board, hr, better, hr.PossiblePoints); err != nil {
		return nil, err
	}
	stagePoints(hr, better)
	stageWarnings(g, gh, hr)
	return hr, nil
}

// stageGrossAndPops seeds a player result per roster player with gross,
// handicap pops and net. Par-relative values exist only once a score does.
func (e *Engine) stageGrossAndPops(g *scoringtypes.Game, gh *scoringtypes.GameHole, hr *scoringtypes.HoleResult) {
	mode := opts.TextForHole(scoringtypes.OptionNameHandicaps, gh, g)
	low := 0
	if mode == scoringtypes.HandicapModeLow {
		low = lowestHandicap(g)
	}

	key := scoringtypes.HoleKey(gh.Number())
	for _, p := range g.Players {
		pr := &scoringtypes.PlayerHoleResult{PlayerID: p.ID}
		if r := g.Round(p.ID); r != nil {
			pr.Pops = popsForHole(adjustedHandicap(r, mode, low), holeAllocation(gh))
			if s := r.Scores[key]; s != nil && s.Gross > 0 {
				pr.HasScore = true
				pr.Gross = s.Gross
				pr.Net = s.Gross - pr.Pops
				pr.ScoreToPar = s.Gross - hr.Par
				pr.NetToPar = pr.Net - hr.Par
				hr.ScoresEntered++
			}
		}
		hr.Players[p.ID] = pr
	}
}

// stageTeams materializes the hole's teams. Explicit teams stored on the
// hole win; otherwise teams derive from the game's team configuration.
func (e *Engine) stageTeams(g *scoringtypes.Game, gh *scoringtypes.GameHole, hr *scoringtypes.HoleResult) {
	for _, t := range HoleTeams(g, gh) {
		tr := &scoringtypes.TeamHoleResult{
			TeamID:            t.ID,
			TeeMultiplier:     1,
			OverallMultiplier: 1,
		}
		for _, roundID := range t.Rounds {
			r := g.RoundByID(roundID)
			if r == nil {
				continue
			}
			tr.PlayerIDs = append(tr.PlayerIDs, r.PlayerID)
			if pr := hr.Players[r.PlayerID]; pr != nil {
				pr.TeamID = t.ID
			}
		}
		hr.Teams[t.ID] = tr
	}
}

// stageTeamScores aggregates scored players into a team score. The method
// comes from the team_score game option; a team with no scored players keeps
// a nil score so downstream stages can tell "incomplete" from "zero".
func (e *Engine) stageTeamScores(g *scoringtypes.Game, gh *scoringtypes.GameHole, hr *scoringtypes.HoleResult) {
	method := opts.TextForHole(scoringtypes.OptionNameTeamScore, gh, g)
	if method == "vegas" {
		stageVegas(g, gh, hr)
		return
	}
	for _, tr := range hr.Teams {
		var nets []float64
		for _, pid := range tr.PlayerIDs {
			if pr := hr.Players[pid]; pr != nil && pr.HasScore {
				nets = append(nets, float64(pr.Net))
			}
		}
		res, ok := teamscore.Calculate(method, nets)
		if !ok {
			continue
		}
		score := res.Score
		tr.Score = &score
		tr.LowBall = res.LowBall
		tr.Total = res.Total
	}
}

// stageVegas computes digit-concatenated team scores. Flip state depends on
// the opponent's best score to par, so both teams resolve together.
func stageVegas(g *scoringtypes.Game, gh *scoringtypes.GameHole, hr *scoringtypes.HoleResult) {
	teams := orderedTeamResults(hr)
	if len(teams) != 2 {
		return
	}
	cancel := opts.BoolForHole(scoringtypes.OptionNameBirdiesCancel, gh, g)

	type teamBalls struct {
		scores        []int
		birdie, eagle bool
	}
	balls := make([]teamBalls, 2)
	for i, tr := range teams {
		for _, pid := range tr.PlayerIDs {
			pr := hr.Players[pid]
			if pr == nil || !pr.HasScore {
				continue
			}
			balls[i].scores = append(balls[i].scores, pr.Gross)
			if pr.ScoreToPar == -1 {
				balls[i].birdie = true
			}
			if pr.ScoreToPar <= -2 {
				balls[i].eagle = true
			}
		}
	}
	for i, tr := range teams {
		other := balls[1-i]
		if len(balls[i].scores) < len(tr.PlayerIDs) {
			continue
		}
		res := teamscore.Vegas(balls[i].scores, other.birdie, other.eagle, balls[i].birdie, balls[i].eagle, cancel)
		score := res.Score
		tr.Score = &score
		tr.Total = res.Score
		tr.LowBall = res.Score
	}
}

func stageRankPlayers(hr *scoringtypes.HoleResult) {
	var scored []*scoringtypes.PlayerHoleResult
	for _, pid := range orderedPlayerIDs(hr) {
		if pr := hr.Players[pid]; pr.HasScore {
			scored = append(scored, pr)
		}
	}
	ranked := rank.WithTies(scored, func(p *scoringtypes.PlayerHoleResult) float64 {
		return float64(p.Net)
	}, rank.Lower)
	for _, r := range ranked {
		r.Item.Rank = r.Rank
		r.Item.TieCount = r.TieCount
	}
}

func stageRankTeams(hr *scoringtypes.HoleResult) {
	var scored []*scoringtypes.TeamHoleResult
	for _, tr := range orderedTeamResults(hr) {
		if tr.Score != nil {
			scored = append(scored, tr)
		}
	}
	ranked := rank.WithTies(scored, func(t *scoringtypes.TeamHoleResult) float64 {
		return *t.Score
	}, rank.Lower)
	for _, r := range ranked {
		r.Item.Rank = r.Rank
		r.Item.TieCount = r.TieCount
	}
}

// stagePoints totals each team's junk (its own plus its players') and
// applies the hole-wide multiplier. Base points carry the pre-multiplier
// total for expressions that gate on it.
func stagePoints(hr *scoringtypes.HoleResult, better string) {
	for _, tr := range hr.Teams {
		var junkValues []float64
		for _, j := range tr.Junk {
			junkValues = append(junkValues, j.Value)
		}
		for _, pid := range tr.PlayerIDs {
			if pr := hr.Players[pid]; pr != nil {
				for _, j := range pr.Junk {
					junkValues = append(junkValues, j.Value)
				}
			}
		}
		tr.BasePoints = points.Calculate(0, junkValues, nil)
		tr.Points = points.Calculate(0, junkValues, []float64{hr.HoleMultiplier})
	}

	teams := orderedTeamResults(hr)
	if len(teams) == 2 {
		a, b := teams[0], teams[1]
		a.HoleNetTotal = netTotal(a.Points, b.Points, better)
		b.HoleNetTotal = netTotal(b.Points, a.Points, better)
	}
}

func netTotal(own, other float64, better string) float64 {
	if better == "lower" {
		return other - own
	}
	return own - other
}

// stageWarnings flags a fully scored hole where exclusive junk has not all
// been marked, so the group settles it before moving on.
func stageWarnings(g *scoringtypes.Game, gh *scoringtypes.GameHole, hr *scoringtypes.HoleResult) {
	required, marked := 0, 0
	for _, spec := range g.Spec {
		j := effectiveJunk(spec, gh, g)
		if j == nil || j.Scope == scoringtypes.ScopeTeam || j.Limit != scoringtypes.LimitOnePerGroup {
			continue
		}
		required++
		for _, pr := range hr.Players {
			if pr.CountJunk(j.Name) > 0 {
				marked++
				break
			}
		}
	}
	if marked < required {
		hr.Warnings = append(hr.Warnings, WarnMarkAllPoints)
	}
}

// possiblePoints totals the junk value on offer for the hole: exclusive junk
// counts once, unlimited junk counts per award.
func possiblePoints(g *scoringtypes.Game, gh *scoringtypes.GameHole, hr *scoringtypes.HoleResult) float64 {
	total := 0.0
	for _, spec := range g.Spec {
		j := effectiveJunk(spec, gh, g)
		if j == nil {
			continue
		}
		switch j.Limit {
		case scoringtypes.LimitOnePerGroup, scoringtypes.LimitOneTeamPerGroup:
			total += j.Value
		default:
			awards := 0
			for _, pr := range hr.Players {
				awards += pr.CountJunk(j.Name)
			}
			for _, tr := range hr.Teams {
				awards += tr.CountJunk(j.Name)
			}
			total += j.Value * float64(awards)
		}
	}
	return total
}

func effectiveJunk(spec scoringtypes.Option, gh *scoringtypes.GameHole, g *scoringtypes.Game) *scoringtypes.JunkOption {
	if spec.Type != scoringtypes.OptionTypeJunk {
		return nil
	}
	if eff, ok := opts.ForHole(spec.Name(), gh, g); ok && eff.Type == scoringtypes.OptionTypeJunk {
		return eff.Junk
	}
	return spec.Junk
}

// applyRunningDiff sets each team's standing relative to the other team.
// Only meaningful for two-team games; flipped when lower is better so a
// positive diff always means "ahead".
func applyRunningDiff(hr *scoringtypes.HoleResult, better string) {
	teams := orderedTeamResults(hr)
	if len(teams) != 2 {
		return
	}
	a, b := teams[0], teams[1]
	a.RunningDiff = netTotal(a.RunningTotal, b.RunningTotal, better)
	b.RunningDiff = netTotal(b.RunningTotal, a.RunningTotal, better)
}

func betterPoints(g *scoringtypes.Game) string {
	if o, ok := g.SpecOption(scoringtypes.OptionNameBetterPoints); ok && o.Game != nil {
		if v := o.Game.TextValue(); v != "" {
			return v
		}
	}
	return "higher"
}

func holePar(gh *scoringtypes.GameHole) int {
	if gh.Par > 0 {
		return gh.Par
	}
	return defaultPar
}

// holeAllocation is the stroke index deciding which holes get pops first.
// Courses without one fall back to the hole number.
func holeAllocation(gh *scoringtypes.GameHole) int {
	if gh.Hdcp > 0 {
		return gh.Hdcp
	}
	return gh.Number()
}

// adjustedHandicap applies the game's handicap mode to a round's effective
// handicap. "low" games play off the lowest handicap in the group; "none"
// plays scratch.
func adjustedHandicap(r *scoringtypes.Round, mode string, low int) int {
	switch mode {
	case "none", "off":
		return 0
	case scoringtypes.HandicapModeLow:
		return r.EffectiveHandicap() - low
	default:
		return r.EffectiveHandicap()
	}
}

func lowestHandicap(g *scoringtypes.Game) int {
	low := 0
	for i, r := range g.Rounds {
		if h := r.EffectiveHandicap(); i == 0 || h < low {
			low = h
		}
	}
	return low
}

// popsForHole allocates handicap strokes the standard way: everyone gets
// strokes/18 on every hole, and holes whose allocation is within the
// remainder get one more.
func popsForHole(handicap, allocation int) int {
	if handicap <= 0 {
		return 0
	}
	pops := handicap / 18
	if allocation <= handicap%18 {
		pops++
	}
	return pops
}

// HoleTeams returns the hole's teams, deriving them from the game's team
// configuration when none are stored on the hole. Mutation paths use the
// same derivation to materialize teams before recording options on them.
func HoleTeams(g *scoringtypes.Game, gh *scoringtypes.GameHole) []*scoringtypes.Team {
	if len(gh.Teams) > 0 {
		return gh.Teams
	}
	cfg := g.Scope.TeamsConfig
	if cfg == nil {
		return nil
	}
	switch cfg.Type {
	case "seamless":
		// Every player is their own team, identified by their round.
		out := make([]*scoringtypes.Team, 0, len(g.Rounds))
		for _, r := range g.Rounds {
			out = append(out, &scoringtypes.Team{ID: r.PlayerID, Rounds: []string{r.ID}})
		}
		return out
	case "rotate":
		return rotatedTeams(g, cfg, gh.Number())
	default:
		return fixedTeams(g, cfg.Teams)
	}
}

func fixedTeams(g *scoringtypes.Game, groups [][]string) []*scoringtypes.Team {
	out := make([]*scoringtypes.Team, 0, len(groups))
	for i, playerIDs := range groups {
		t := &scoringtypes.Team{ID: fmt.Sprintf("%d", i+1)}
		for _, pid := range playerIDs {
			if r := g.Round(pid); r != nil {
				t.Rounds = append(t.Rounds, r.ID)
			}
		}
		out = append(out, t)
	}
	return out
}

// rotatedTeams pairs the first player with a different partner every
// rotation block, cycling through the remaining players in roster order.
func rotatedTeams(g *scoringtypes.Game, cfg *scoringtypes.TeamsConfig, holeNum int) []*scoringtypes.Team {
	n := len(g.Players)
	if n < 3 {
		return fixedTeams(g, [][]string{playerIDs(g)})
	}
	every := cfg.RotateEvery
	if every <= 0 {
		every = 1
	}
	block := ((holeNum - 1) / every) % (n - 1)
	partner := g.Players[1+block].ID

	first := []string{g.Players[0].ID, partner}
	var rest []string
	for _, p := range g.Players[1:] {
		if p.ID != partner {
			rest = append(rest, p.ID)
		}
	}
	return fixedTeams(g, [][]string{first, rest})
}

func playerIDs(g *scoringtypes.Game) []string {
	out := make([]string, 0, len(g.Players))
	for _, p := range g.Players {
		out = append(out, p.ID)
	}
	return out
}

func orderedPlayerIDs(hr *scoringtypes.HoleResult) []string {
	out := make([]string, 0, len(hr.Players))
	for pid := range hr.Players {
		out = append(out, pid)
	}
	sort.Strings(out)
	return out
}

func orderedTeamResults(hr *scoringtypes.HoleResult) []*scoringtypes.TeamHoleResult {
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
