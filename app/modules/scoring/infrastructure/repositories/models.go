package scoringdb

import (
	"time"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/uptrace/bun"
)

// GameModel is the games table row. Option lists and the game scope are
// stored as JSONB; holes and rounds live in their own tables so devices
// editing different holes do not contend on one row.
type GameModel struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID        string    `bun:"id,pk,type:uuid"`
	Name      string    `bun:"name,nullzero,type:varchar(120)"`
	SpecName  string    `bun:"spec_name,nullzero,type:varchar(60)"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	// Spec is the working copy a group may have edited; SpecRef is the
	// catalog original kept for reset and diffing.
	Spec    []scoringtypes.Option `bun:"spec,type:jsonb"`
	SpecRef []scoringtypes.Option `bun:"spec_ref,type:jsonb"`

	Players []scoringtypes.Player  `bun:"players,type:jsonb"`
	Scope   scoringtypes.GameScope `bun:"scope,type:jsonb"`
}

// GameHoleModel is one hole of a game: par and stroke index, the hole's
// teams with their recorded options (junk marks, multiplier activations,
// tee flips), and sparse per-hole option overrides.
type GameHoleModel struct {
	bun.BaseModel `bun:"table:game_holes,alias:h"`

	GameID    string    `bun:"game_id,pk,type:uuid"`
	Hole      int       `bun:"hole,pk"`
	Par       int       `bun:"par,nullzero"`
	Hdcp      int       `bun:"hdcp,nullzero"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	Teams   []*scoringtypes.Team           `bun:"teams,type:jsonb"`
	Options map[string]scoringtypes.Option `bun:"options,type:jsonb"`
}

// RoundModel is one player's round within a game. Scores is sparse JSONB
// keyed by hole number.
type RoundModel struct {
	bun.BaseModel `bun:"table:game_rounds,alias:r"`

	ID             string    `bun:"id,pk,type:uuid"`
	GameID         string    `bun:"game_id,notnull,type:uuid"`
	PlayerID       string    `bun:"player_id,notnull,type:uuid"`
	CourseHandicap int       `bun:"course_handicap"`
	GameHandicap   *int      `bun:"game_handicap,nullzero"`
	Tee            string    `bun:"tee,nullzero,type:varchar(40)"`
	Course         string    `bun:"course,nullzero,type:varchar(80)"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	Scores map[string]*scoringtypes.Score `bun:"scores,type:jsonb"`
}

func toGameModel(g *scoringtypes.Game) *GameModel {
	return &GameModel{
		ID:       g.ID,
		Name:     g.Name,
		SpecName: g.SpecName,
		Spec:     g.Spec,
		SpecRef:  g.SpecRef,
		Players:  g.Players,
		Scope:    g.Scope,
	}
}

func toHoleModel(gameID string, gh *scoringtypes.GameHole) *GameHoleModel {
	return &GameHoleModel{
		GameID:  gameID,
		Hole:    gh.Number(),
		Par:     gh.Par,
		Hdcp:    gh.Hdcp,
		Teams:   gh.Teams,
		Options: gh.Options,
	}
}

func toRoundModel(gameID string, r *scoringtypes.Round) *RoundModel {
	return &RoundModel{
		ID:             r.ID,
		GameID:         gameID,
		PlayerID:       r.PlayerID,
		CourseHandicap: r.CourseHandicap,
		GameHandicap:   r.GameHandicap,
		Tee:            r.Tee,
		Course:         r.Course,
		Scores:         r.Scores,
	}
}

// assembleGame builds the in-memory snapshot the engine consumes.
func assembleGame(gm *GameModel, holes []*GameHoleModel, rounds []*RoundModel) *scoringtypes.Game {
	g := &scoringtypes.Game{
		ID:       gm.ID,
		Name:     gm.Name,
		SpecName: gm.SpecName,
		Spec:     gm.Spec,
		SpecRef:  gm.SpecRef,
		Players:  gm.Players,
		Scope:    gm.Scope,
	}
	for _, h := range holes {
		g.Holes = append(g.Holes, &scoringtypes.GameHole{
			Hole:    scoringtypes.HoleKey(h.Hole),
			Par:     h.Par,
			Hdcp:    h.Hdcp,
			Teams:   h.Teams,
			Options: h.Options,
		})
	}
	for _, r := range rounds {
		g.Rounds = append(g.Rounds, &scoringtypes.Round{
			ID:             r.ID,
			PlayerID:       r.PlayerID,
			CourseHandicap: r.CourseHandicap,
			GameHandicap:   r.GameHandicap,
			Tee:            r.Tee,
			Course:         r.Course,
			Scores:         r.Scores,
		})
	}
	return g
}
