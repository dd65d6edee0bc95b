package scoringtypes

// AwardedJunk is one junk award attributed to a player or team on a hole.
type AwardedJunk struct {
	Name       string  `json:"name"`
	Disp       string  `json:"disp,omitempty"`
	Value      float64 `json:"value"`
	PlayerID   string  `json:"playerId,omitempty"`
	UserMarked bool    `json:"userMarked,omitempty"`
}

// AppliedMultiplier is one multiplier instance active on a team for a hole.
// Inherited instances were activated on an earlier hole of the same nine and
// are display-only on this hole.
type AppliedMultiplier struct {
	Name      string  `json:"name"`
	Disp      string  `json:"disp,omitempty"`
	Value     float64 `json:"value"`
	FirstHole int     `json:"firstHole,omitempty"`
	Inherited bool    `json:"inherited,omitempty"`
	Override  bool    `json:"override,omitempty"`
	Automatic bool    `json:"automatic,omitempty"`
}

// PlayerHoleResult is one player's computed state for a hole.
type PlayerHoleResult struct {
	PlayerID string        `json:"playerId"`
	TeamID   string        `json:"teamId,omitempty"`
	HasScore bool          `json:"hasScore"`
	Gross    int           `json:"gross,omitempty"`
	Pops     int           `json:"pops"`
	Net      int           `json:"net,omitempty"`
	Junk     []AwardedJunk `json:"junk,omitempty"`

	// Par-relative scores, meaningful only while HasScore.
	ScoreToPar int `json:"scoreToPar,omitempty"`
	NetToPar   int `json:"netToPar,omitempty"`

	Rank     int `json:"rank,omitempty"`
	TieCount int `json:"tieCount,omitempty"`
}

// CountJunk counts awards of the named junk on the player.
func (p *PlayerHoleResult) CountJunk(name string) int {
	n := 0
	for _, j := range p.Junk {
		if j.Name == name {
			n++
		}
	}
	return n
}

// TeamHoleResult is one team's computed state for a hole. Score is nil while
// the team has no scored players (incomplete, never a silent zero).
type TeamHoleResult struct {
	TeamID    string   `json:"teamId"`
	PlayerIDs []string `json:"playerIds"`
	Score     *float64 `json:"score,omitempty"`

	// LowBall and Total are populated alongside Score so condition
	// expressions can compare them regardless of the selected method.
	LowBall float64 `json:"lowBall,omitempty"`
	Total   float64 `json:"total,omitempty"`

	Junk        []AwardedJunk       `json:"junk,omitempty"`
	Multipliers []AppliedMultiplier `json:"multipliers,omitempty"`

	// TeeMultiplier excludes automatically earned multipliers;
	// OverallMultiplier includes them.
	TeeMultiplier     float64 `json:"teeMultiplier"`
	OverallMultiplier float64 `json:"overallMultiplier"`

	Rank     int `json:"rank,omitempty"`
	TieCount int `json:"tieCount,omitempty"`

	BasePoints float64 `json:"basePoints"`
	Points     float64 `json:"points"`

	HoleNetTotal float64 `json:"holeNetTotal"`
	RunningTotal float64 `json:"runningTotal"`
	RunningDiff  float64 `json:"runningDiff"`
}

// HasMultiplier reports whether the named multiplier is active on the team.
func (t *TeamHoleResult) HasMultiplier(name string) bool {
	for _, m := range t.Multipliers {
		if m.Name == name {
			return true
		}
	}
	return false
}

// CountJunk counts awards of the named junk on the team.
func (t *TeamHoleResult) CountJunk(name string) int {
	n := 0
	for _, j := range t.Junk {
		if j.Name == name {
			n++
		}
	}
	return n
}

// HoleResult is the computed state of one hole.
type HoleResult struct {
	Hole     string `json:"hole"`
	Par      int    `json:"par,omitempty"`
	Complete bool   `json:"complete"`

	Players map[string]*PlayerHoleResult `json:"players"`
	Teams   map[string]*TeamHoleResult   `json:"teams"`

	HoleMultiplier float64 `json:"holeMultiplier"`

	// PossiblePoints is the junk value still on offer for this hole, used by
	// BBQ-style availability conditions and the marking warning.
	PossiblePoints float64 `json:"possiblePoints,omitempty"`
	ScoresEntered  int     `json:"scoresEntered"`

	Warnings []string `json:"warnings,omitempty"`
}

// PlayerCumulative is a player's running totals across holes played.
type PlayerCumulative struct {
	PlayerID    string  `json:"playerId"`
	GrossTotal  int     `json:"grossTotal"`
	PopsTotal   int     `json:"popsTotal"`
	NetTotal    int     `json:"netTotal"`
	PointsTotal float64 `json:"pointsTotal"`
	JunkTotal   float64 `json:"junkTotal"`
	HolesPlayed int     `json:"holesPlayed"`
	Rank        int     `json:"rank,omitempty"`
	TieCount    int     `json:"tieCount,omitempty"`
}

// TeamCumulative is a team's running totals across holes played.
type TeamCumulative struct {
	TeamID      string  `json:"teamId"`
	PointsTotal float64 `json:"pointsTotal"`
	JunkTotal   float64 `json:"junkTotal"`
	Rank        int     `json:"rank,omitempty"`
	TieCount    int     `json:"tieCount,omitempty"`
	MatchDiff   string  `json:"matchDiff,omitempty"`
	MatchOver   bool    `json:"matchOver,omitempty"`
}

// Cumulative aggregates the game so far. MatchStatus is set for two-team
// match play ("2 UP", "3 & 2", "AS").
type Cumulative struct {
	Players     map[string]*PlayerCumulative `json:"players"`
	Teams       map[string]*TeamCumulative   `json:"teams"`
	MatchStatus string                       `json:"matchStatus,omitempty"`
}

// ScoreboardMeta carries derived bookkeeping.
type ScoreboardMeta struct {
	// HolesPlayed lists hole numbers with any recorded score, in play order.
	HolesPlayed []string `json:"holesPlayed"`
}

// Scoreboard is the engine's output for one Game snapshot. It is a pure
// function of the snapshot's scoring-relevant fields and is treated as
// immutable by consumers.
type Scoreboard struct {
	GameID     string                 `json:"gameId"`
	Holes      map[string]*HoleResult `json:"holes"`
	Cumulative Cumulative             `json:"cumulative"`
	Meta       ScoreboardMeta         `json:"meta"`
}

// HoleResultFor returns the result for a hole number, nil if absent.
func (s *Scoreboard) HoleResultFor(n int) *HoleResult {
	if s == nil {
		return nil
	}
	return s.Holes[HoleKey(n)]
}
