package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/demonax/demonax/internal/model"
)

const creatureChunk = 100

// UpsertCreatures persists creatures keyed by race id. The loot table is
// replaced wholesale per creature on re-ingest - loot rows carry no natural
// key, so delete-and-reinsert is the only idempotent shape.
func (s *Store) UpsertCreatures(ctx context.Context, creatures []*model.Creature) (int, error) {
	written := 0
	for _, batch := range chunks(creatures, creatureChunk) {
		err := s.withTx(ctx, "creatures", func(tx *sql.Tx) error {
			for _, cr := range batch {
				if err := upsertCreature(ctx, tx, cr); err != nil {
					return fmt.Errorf("race %d: %w", cr.RaceID, err)
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

func upsertCreature(ctx context.Context, tx *sql.Tx, cr *model.Creature) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO creatures (race_id, name, experience, hit_points, attack, armor)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(race_id) DO UPDATE SET
			name       = excluded.name,
			experience = excluded.experience,
			hit_points = excluded.hit_points,
			attack     = excluded.attack,
			armor      = excluded.armor`,
		cr.RaceID, cr.Name, cr.Experience, cr.HitPoints, cr.Attack, cr.Armor,
	); err != nil {
		return fmt.Errorf("upsert creature: %w", err)
	}

	var creatureID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM creatures WHERE race_id = ?`, cr.RaceID,
	).Scan(&creatureID); err != nil {
		return fmt.Errorf("resolve creature id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM creature_loot WHERE creature_id = ?`, creatureID,
	); err != nil {
		return fmt.Errorf("clear loot: %w", err)
	}
	for _, loot := range cr.Loot {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO creature_loot
				(creature_id, item_type_id, count, chance_raw, chance_percent, average_value)
			VALUES (?, ?, ?, ?, ?, ?)`,
			creatureID, loot.ItemTypeID, loot.Count, loot.ChanceRaw,
			loot.Percent, loot.AverageValue,
		); err != nil {
			return fmt.Errorf("insert loot item %d: %w", loot.ItemTypeID, err)
		}
	}
	return nil
}
