package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/demonax/demonax/internal/model"
)

// UpsertSkinningRecipes persists harvesting rules keyed by (tool, corpse).
// A duplicate pair in the source resolves last-wins.
func (s *Store) UpsertSkinningRecipes(ctx context.Context, recipes []model.SkinningRecipe) (int, error) {
	written := 0
	for _, batch := range chunks(recipes, batchSize) {
		err := s.withTx(ctx, "skinning recipes", func(tx *sql.Tx) error {
			for _, r := range batch {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO skinning_recipes
						(tool_id, corpse_id, next_corpse_id, percent_chance, reward_id, race_id)
					VALUES (?, ?, ?, ?, ?, ?)
					ON CONFLICT(tool_id, corpse_id) DO UPDATE SET
						next_corpse_id = excluded.next_corpse_id,
						percent_chance = excluded.percent_chance,
						reward_id      = excluded.reward_id,
						race_id        = excluded.race_id`,
					r.ToolID, r.CorpseID, r.NextCorpseID, r.PercentChance, r.RewardID, r.RaceID,
				); err != nil {
					return fmt.Errorf("recipe %d/%d: %w", r.ToolID, r.CorpseID, err)
				}
			}
			return nil
		})
		if err != nil {
			return written, err
		}
		written += len(batch)
	}
	return written, nil
}
