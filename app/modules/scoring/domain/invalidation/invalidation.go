// Package invalidation re-checks user activations after a score edit.
// Editing an earlier hole can silently change the standings a later
// activation depended on; rather than deleting those activations, the engine
// reports them so the group can confirm or undo each one.
package invalidation

import (
	"fmt"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/mult"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/opts"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/pipeline"
)

// Item kinds.
const (
	KindMultiplier = "multiplier"
	KindTeeFlip    = "tee_flip"
)

// InvalidatedItem is one activation whose precondition no longer holds after
// an edit. Kind discriminates the variant: multiplier items carry the option
// name and score impact, tee flip items the recorded flip.
type InvalidatedItem struct {
	Kind      string  `json:"kind"`
	Hole      int     `json:"hole"`
	TeamID    string  `json:"teamId"`
	Name      string  `json:"name,omitempty"`
	FirstHole int     `json:"firstHole,omitempty"`
	PlayerID  string  `json:"playerId,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Cascade   bool    `json:"cascade,omitempty"`
	// ScoreImpact is the points the team would lose if the multiplier were
	// removed: points * (1 - 1/value).
	ScoreImpact float64 `json:"scoreImpact,omitempty"`
}

// Detector re-evaluates activation preconditions against a freshly computed
// board.
type Detector struct {
	engine *pipeline.Engine
}

func NewDetector(e *pipeline.Engine) *Detector {
	return &Detector{engine: e}
}

// Detect compares activations recorded on the game against the board
// computed after an edit to editedHole. Only holes after the edit are
// checked; the edited hole's own activations were made with its score in
// front of the group. Rest-of-nine activations are checked once, at their
// first hole.
func (d *Detector) Detect(g *scoringtypes.Game, after *scoringtypes.Scoreboard, editedHole int) ([]InvalidatedItem, error) {
	var items []InvalidatedItem
	for _, n := range g.Scope.HoleNumbers() {
		if n <= editedHole {
			continue
		}
		gh := g.Hole(n)
		hr := after.HoleResultFor(n)
		if gh == nil || hr == nil {
			continue
		}
		holeItems, err := d.detectHole(g, gh, after, hr)
		if err != nil {
			return nil, fmt.Errorf("hole %d: %w", n, err)
		}
		items = append(items, holeItems...)
	}

	items = append(items, detectTeeFlip(g, after, editedHole)...)
	return items, nil
}

func (d *Detector) detectHole(
	g *scoringtypes.Game,
	gh *scoringtypes.GameHole,
	board *scoringtypes.Scoreboard,
	hr *scoringtypes.HoleResult,
) ([]InvalidatedItem, error) {
	n := gh.Number()
	better := betterPoints(g)

	var items []InvalidatedItem
	var removed []string
	for _, t := range gh.Teams {
		for _, to := range t.Options {
			m := multiplierOption(g, gh, to.OptionName)
			if m == nil || to.FirstHole != n {
				continue
			}
			if d.engine.Multipliers().Available(g, gh, board, hr, m, t.ID, better, hr.PossiblePoints) {
				continue
			}
			items = append(items, d.invalidated(g, gh, m, t.ID, hr, "availability no longer holds", false))
			removed = append(removed, m.Name)
		}
	}

	// Cascade: a multiplier answered by another (a press answering a double)
	// loses its footing when the one it references is invalidated.
	for _, name := range removed {
		for _, t := range gh.Teams {
			for _, to := range t.Options {
				m := multiplierOption(g, gh, to.OptionName)
				if m == nil || to.FirstHole != n || m.Name == name {
					continue
				}
				dep, err := mult.DependsOn(m.Availability, name)
				if err != nil {
					return nil, fmt.Errorf("multiplier %q: %w", m.Name, err)
				}
				if dep && !contains(items, m.Name, t.ID, n) {
					items = append(items, d.invalidated(g, gh, m, t.ID, hr, fmt.Sprintf("depends on removed %q", name), true))
				}
			}
		}
	}
	return items, nil
}

func (d *Detector) invalidated(g *scoringtypes.Game, gh *scoringtypes.GameHole, m *scoringtypes.MultiplierOption, teamID string, hr *scoringtypes.HoleResult, reason string, cascade bool) InvalidatedItem {
	hole := gh.Number()
	item := InvalidatedItem{
		Kind:      KindMultiplier,
		Hole:      hole,
		TeamID:    teamID,
		Name:      m.Name,
		FirstHole: hole,
		Reason:    reason,
		Cascade:   cascade,
	}
	value, err := d.engine.Multipliers().Registry.MultiplierValue(m, opts.ResolveContext{Game: g, Hole: gh, TeamID: teamID})
	if err != nil {
		value = m.StaticValue()
	}
	if tr := hr.Teams[teamID]; tr != nil && value != 0 {
		item.ScoreImpact = tr.Points * (1 - 1/value)
	}
	return item
}

// detectTeeFlip flags a recorded tee flip when the standings that justified
// it changed. A flip settles tied teams at the turn; if the edit breaks the
// tie, the flip no longer applies.
func detectTeeFlip(g *scoringtypes.Game, after *scoringtypes.Scoreboard, editedHole int) []InvalidatedItem {
	if !opts.BoolForHole(scoringtypes.OptionNameTeeFlip, nil, g) {
		return nil
	}
	var items []InvalidatedItem
	for _, n := range g.Scope.HoleNumbers() {
		gh := g.Hole(n)
		if gh == nil {
			continue
		}
		for _, t := range gh.Teams {
			for _, to := range t.Options {
				if to.OptionName != scoringtypes.OptionNameTeeFlipWinner &&
					to.OptionName != scoringtypes.OptionNameTeeFlipDeclined {
					continue
				}
				if n > editedHole && !standingsTied(after, n-1) {
					items = append(items, InvalidatedItem{
						Kind:     KindTeeFlip,
						Hole:     n,
						TeamID:   t.ID,
						Name:     to.OptionName,
						PlayerID: to.PlayerID,
						Reason:   "teams are no longer tied",
					})
				}
			}
		}
	}
	return items
}

// standingsTied reports whether the two teams were level after hole n.
func standingsTied(board *scoringtypes.Scoreboard, n int) bool {
	hr := board.HoleResultFor(n)
	if hr == nil {
		return false
	}
	for _, tr := range hr.Teams {
		if tr.RunningDiff != 0 {
			return false
		}
	}
	return len(hr.Teams) > 0
}

func multiplierOption(g *scoringtypes.Game, gh *scoringtypes.GameHole, name string) *scoringtypes.MultiplierOption {
	o, ok := opts.ForHole(name, gh, g)
	if !ok || o.Type != scoringtypes.OptionTypeMultiplier {
		return nil
	}
	return o.Multiplier
}

func betterPoints(g *scoringtypes.Game) string {
	if o, ok := g.SpecOption(scoringtypes.OptionNameBetterPoints); ok && o.Game != nil {
		if v := o.Game.TextValue(); v != "" {
			return v
		}
	}
	return "higher"
}

func contains(items []InvalidatedItem, name, teamID string, hole int) bool {
	for _, it := range items {
		if it.Name == name && it.TeamID == teamID && it.Hole == hole {
			return true
		}
	}
	return false
}
