package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/demonax/demonax/internal/model"
)

// UpsertQuests persists quest chests keyed by quest number. Two chests
// sharing a number (the map repeats some quests across floors) collapse to
// one row, last-processed wins.
func (s *Store) UpsertQuests(ctx context.Context, quests []model.Quest) (int, error) {
	written := 0
	for _, batch := range chunks(quests, batchSize) {
		err := s.withTx(ctx, "quests", func(tx *sql.Tx) error {
			for _, q := range batch {
				rewards, err := marshalJSON(q.Rewards, "[]")
				if err != nil {
					return err
				}
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO quests (id, name, description, x, y, z, rewards)
					VALUES (?, ?, ?, ?, ?, ?, ?)
					ON CONFLICT(id) DO UPDATE SET
						name        = excluded.name,
						description = excluded.description,
						x           = excluded.x,
						y           = excluded.y,
						z           = excluded.z,
						rewards     = excluded.rewards`,
					q.Number, q.Name, q.Description, q.X, q.Y, q.Z, rewards,
				); err != nil {
					return fmt.Errorf("quest %d: %w", q.Number, err)
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
