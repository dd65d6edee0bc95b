package scoringtypes

import (
	"strconv"
	"time"
)

// Well-known option names the engine treats specially.
const (
	OptionNameTeeFlip         = "tee_flip"
	OptionNameTeeFlipWinner   = "tee_flip_winner"
	OptionNameTeeFlipDeclined = "tee_flip_declined"
	OptionNameHandicaps       = "handicaps"
	OptionNameBetterPoints    = "better"
	OptionNameMaxOffTee       = "max_off_tee"
	OptionNameBirdiesCancel   = "birdies_cancel_flip"
	OptionNameTeamScore       = "team_score"
	OptionNameMatchPlay       = "match_play"
)

// HandicapModeLow normalizes the field to the lowest course handicap before
// pops are distributed.
const HandicapModeLow = "low"

// Player is a roster entry. Players are ordered and unique within a game.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamOption records an activated junk or multiplier selection on a team for
// a hole. PlayerID is set for player-scoped junk; FirstHole is set for
// multiplier activations and marks the hole the activation originated on,
// which is how rest-of-nine inheritance is reconstructed on later holes.
type TeamOption struct {
	OptionName string `json:"optionName"`
	Value      string `json:"value"`
	PlayerID   string `json:"playerId,omitempty"`
	FirstHole  int    `json:"firstHole,omitempty"`
}

// Team groups players (via their rounds) for one hole.
type Team struct {
	ID      string       `json:"team"`
	Rounds  []string     `json:"rounds"`
	Options []TeamOption `json:"options,omitempty"`
}

// HasOption reports whether the team carries an activation of the named
// option, optionally narrowed to a player.
func (t *Team) HasOption(name, playerID string) bool {
	for _, o := range t.Options {
		if o.OptionName != name {
			continue
		}
		if playerID != "" && o.PlayerID != playerID {
			continue
		}
		return true
	}
	return false
}

// GameHole is one hole's organizational state. Options is a sparse map of
// per-hole overrides keyed by option name, present only when an override
// exists.
type GameHole struct {
	Hole    string            `json:"hole"`
	Par     int               `json:"par,omitempty"`
	Hdcp    int               `json:"hdcp,omitempty"`
	Teams   []*Team           `json:"teams,omitempty"`
	Options map[string]Option `json:"options,omitempty"`
}

// Number returns the hole number as an int, 0 if the key is malformed.
func (h *GameHole) Number() int {
	n, err := strconv.Atoi(h.Hole)
	if err != nil {
		return 0
	}
	return n
}

// Team returns the team with the given id on this hole.
func (h *GameHole) Team(teamID string) *Team {
	for _, t := range h.Teams {
		if t.ID == teamID {
			return t
		}
	}
	return nil
}

// ScoreEdit is one entry of a score's audit history.
type ScoreEdit struct {
	Gross int       `json:"gross"`
	At    time.Time `json:"at"`
}

// Score exists only once a gross value has been entered for a hole.
type Score struct {
	Gross   int         `json:"gross"`
	Values  []int       `json:"values,omitempty"`
	History []ScoreEdit `json:"history,omitempty"`
}

// Round associates a player with a scored round. Scores is sparse, keyed by
// hole-number string.
type Round struct {
	ID             string            `json:"id"`
	PlayerID       string            `json:"playerId"`
	CourseHandicap int               `json:"courseHandicap"`
	GameHandicap   *int              `json:"gameHandicap,omitempty"`
	Tee            string            `json:"tee,omitempty"`
	Course         string            `json:"course,omitempty"`
	Scores         map[string]*Score `json:"scores,omitempty"`
}

// EffectiveHandicap is the game handicap when one was agreed, else the
// course handicap.
func (r *Round) EffectiveHandicap() int {
	if r.GameHandicap != nil {
		return *r.GameHandicap
	}
	return r.CourseHandicap
}

// TeamsConfig describes how hole teams are formed.
type TeamsConfig struct {
	// Type is "fixed", "rotate" or "seamless".
	Type        string     `json:"type"`
	RotateEvery int        `json:"rotateEvery,omitempty"`
	Teams       [][]string `json:"teams,omitempty"`
}

// GameScope bounds the holes in play and carries team configuration.
type GameScope struct {
	// Holes is "all18", "front9" or "back9".
	Holes       string       `json:"holes"`
	TeamsConfig *TeamsConfig `json:"teamsConfig,omitempty"`
}

// HoleNumbers returns the hole numbers in play, in order.
func (s GameScope) HoleNumbers() []int {
	switch s.Holes {
	case "front9":
		return holeRange(1, 9)
	case "back9":
		return holeRange(10, 18)
	default:
		return holeRange(1, 18)
	}
}

func holeRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

// Game is the root aggregate the engine scores. Spec is the working copy of
// the option set; SpecRef retains the catalog original for reset/diff.
type Game struct {
	ID       string      `json:"id"`
	Name     string      `json:"name,omitempty"`
	SpecName string      `json:"specName,omitempty"`
	Spec     []Option    `json:"spec"`
	SpecRef  []Option    `json:"specRef,omitempty"`
	Players  []Player    `json:"players"`
	Holes    []*GameHole `json:"holes"`
	Rounds   []*Round    `json:"rounds"`
	Scope    GameScope   `json:"scope"`
}

// Hole returns the GameHole for a hole number, nil if absent.
func (g *Game) Hole(n int) *GameHole {
	key := strconv.Itoa(n)
	for _, h := range g.Holes {
		if h.Hole == key {
			return h
		}
	}
	return nil
}

// Round returns the round for a player, nil if absent.
func (g *Game) Round(playerID string) *Round {
	for _, r := range g.Rounds {
		if r.PlayerID == playerID {
			return r
		}
	}
	return nil
}

// RoundByID returns the round with the given id, nil if absent.
func (g *Game) RoundByID(id string) *Round {
	for _, r := range g.Rounds {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// SpecOption returns the named option from the working spec.
func (g *Game) SpecOption(name string) (Option, bool) {
	for _, o := range g.Spec {
		if o.Name() == name {
			return o, true
		}
	}
	return Option{}, false
}

// NineStart returns the first hole of the nine containing hole n
// (1 for the front nine, 10 for the back).
func NineStart(n int) int {
	if n >= 10 {
		return 10
	}
	return 1
}

// NineEnd returns the last hole of the nine containing hole n.
func NineEnd(n int) int {
	if n >= 10 {
		return 18
	}
	return 9
}

// HoleKey is the canonical string form of a hole number.
func HoleKey(n int) string {
	return strconv.Itoa(n)
}
