package scoringdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/uptrace/bun"
)

// GameDBImpl implements Repository on bun.
type GameDBImpl struct {
	DB *bun.DB
}

func (db *GameDBImpl) GetGame(ctx context.Context, gameID string) (*scoringtypes.Game, error) {
	var gm GameModel
	err := db.DB.NewSelect().Model(&gm).Where("id = ?", gameID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("select game: %w", err)
	}

	var holes []*GameHoleModel
	if err := db.DB.NewSelect().Model(&holes).
		Where("game_id = ?", gameID).
		Order("hole ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("select holes: %w", err)
	}

	var rounds []*RoundModel
	if err := db.DB.NewSelect().Model(&rounds).
		Where("game_id = ?", gameID).
		Order("id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("select rounds: %w", err)
	}

	return assembleGame(&gm, holes, rounds), nil
}

// CreateGame inserts the game and its holes and rounds in one transaction.
func (db *GameDBImpl) CreateGame(ctx context.Context, g *scoringtypes.Game) error {
	return db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(toGameModel(g)).Exec(ctx); err != nil {
			return fmt.Errorf("insert game: %w", err)
		}
		for _, gh := range g.Holes {
			if _, err := tx.NewInsert().Model(toHoleModel(g.ID, gh)).Exec(ctx); err != nil {
				return fmt.Errorf("insert hole %s: %w", gh.Hole, err)
			}
		}
		for _, r := range g.Rounds {
			if _, err := tx.NewInsert().Model(toRoundModel(g.ID, r)).Exec(ctx); err != nil {
				return fmt.Errorf("insert round %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

func (db *GameDBImpl) SaveSpec(ctx context.Context, gameID string, spec []scoringtypes.Option) error {
	res, err := db.DB.NewUpdate().Model((*GameModel)(nil)).
		Set("spec = ?", spec).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", gameID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update spec: %w", err)
	}
	return checkAffected(res)
}

func (db *GameDBImpl) SaveHole(ctx context.Context, gameID string, hole *scoringtypes.GameHole) error {
	m := toHoleModel(gameID, hole)
	m.UpdatedAt = time.Now().UTC()
	_, err := db.DB.NewInsert().Model(m).
		On("CONFLICT (game_id, hole) DO UPDATE").
		Set("par = EXCLUDED.par").
		Set("hdcp = EXCLUDED.hdcp").
		Set("teams = EXCLUDED.teams").
		Set("options = EXCLUDED.options").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert hole %s: %w", hole.Hole, err)
	}
	return nil
}

func (db *GameDBImpl) SaveRound(ctx context.Context, gameID string, round *scoringtypes.Round) error {
	m := toRoundModel(gameID, round)
	m.UpdatedAt = time.Now().UTC()
	_, err := db.DB.NewInsert().Model(m).
		On("CONFLICT (id) DO UPDATE").
		Set("course_handicap = EXCLUDED.course_handicap").
		Set("game_handicap = EXCLUDED.game_handicap").
		Set("tee = EXCLUDED.tee").
		Set("course = EXCLUDED.course").
		Set("scores = EXCLUDED.scores").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert round %s: %w", round.ID, err)
	}
	return nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return nil
	}
	if n == 0 {
		return ErrGameNotFound
	}
	return nil
}
