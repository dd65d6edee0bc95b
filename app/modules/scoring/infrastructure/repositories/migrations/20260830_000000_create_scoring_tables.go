package migrations

import (
	"context"
	"fmt"

	scoringdb "github.com/spicy-golf/scorekeeper/app/modules/scoring/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating scoring tables...")
			if _, err := db.NewCreateTable().Model((*scoringdb.GameModel)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create games table: %w", err)
			}
			if _, err := db.NewCreateTable().Model((*scoringdb.GameHoleModel)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create game_holes table: %w", err)
			}
			if _, err := db.NewCreateTable().Model((*scoringdb.RoundModel)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create game_rounds table: %w", err)
			}
			if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS game_rounds_game_id_idx ON game_rounds (game_id);`); err != nil {
				return fmt.Errorf("failed to index game_rounds: %w", err)
			}
			fmt.Println("scoring tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping scoring tables...")
			for _, model := range []any{(*scoringdb.RoundModel)(nil), (*scoringdb.GameHoleModel)(nil), (*scoringdb.GameModel)(nil)} {
				if _, err := db.NewDropTable().Model(model).IfExists().Cascade().Exec(ctx); err != nil {
					return err
				}
			}
			fmt.Println("scoring tables dropped successfully!")
			return nil
		},
	)
}
