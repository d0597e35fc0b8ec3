package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/demonax/demonax/internal/model"
)

// UpsertRaids persists raids keyed by name. The spawn composition is stored
// as an ordered JSON array; the creature list as its display rendering.
func (s *Store) UpsertRaids(ctx context.Context, raids []*model.Raid) (int, error) {
	written := 0
	for _, batch := range chunks(raids, batchSize) {
		err := s.withTx(ctx, "raids", func(tx *sql.Tx) error {
			for _, raid := range batch {
				spawns, err := marshalJSON(raid.Spawns, "[]")
				if err != nil {
					return err
				}
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO raids
						(name, kind, wave_description, interval_seconds, interval_days,
						 message, creatures, spawn_composition)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?)
					ON CONFLICT(name) DO UPDATE SET
						kind              = excluded.kind,
						wave_description  = excluded.wave_description,
						interval_seconds  = excluded.interval_seconds,
						interval_days     = excluded.interval_days,
						message           = excluded.message,
						creatures         = excluded.creatures,
						spawn_composition = excluded.spawn_composition`,
					raid.Name, raid.Kind, raid.WaveDescription,
					raid.IntervalSeconds, raid.IntervalDays,
					raid.Message, strings.Join(raid.Creatures(), ", "), spawns,
				); err != nil {
					return fmt.Errorf("raid %s: %w", raid.Name, err)
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
