package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/demonax/demonax/internal/model"
)

// snapshotChunk bounds snapshots per transaction. Each snapshot carries
// child rows, so the chunk is smaller than the flat-row batch size.
const snapshotChunk = 100

// UpsertSnapshots persists player snapshots with their quest, bestiary and
// skinning children. A snapshot that already exists for (player, date) is
// replaced wholesale, children included, so the later-processed file wins.
// Returns the number of snapshots written.
func (s *Store) UpsertSnapshots(ctx context.Context, snaps []*model.Snapshot) (int, error) {
	written := 0
	for _, batch := range chunks(snaps, snapshotChunk) {
		err := s.withTx(ctx, "snapshots", func(tx *sql.Tx) error {
			for _, snap := range batch {
				if err := upsertSnapshot(ctx, tx, snap); err != nil {
					return fmt.Errorf("player %s date %s: %w", snap.PlayerName, snap.Date, err)
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

func upsertSnapshot(ctx context.Context, tx *sql.Tx, snap *model.Snapshot) error {
	// Players are created on the first snapshot encountered.
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO players (name) VALUES (?) ON CONFLICT(name) DO NOTHING`,
		snap.PlayerName,
	); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}

	var playerID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM players WHERE name = ?`, snap.PlayerName,
	).Scan(&playerID); err != nil {
		return fmt.Errorf("resolve player id: %w", err)
	}

	// Replace any existing snapshot for this day; children cascade.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM daily_snapshots WHERE player_id = ? AND snapshot_date = ?`,
		playerID, snap.Date,
	); err != nil {
		return fmt.Errorf("drop stale snapshot: %w", err)
	}

	skills, err := marshalJSON(snap.Skills, "{}")
	if err != nil {
		return err
	}
	equipment, err := marshalJSON(snap.Equipment, "{}")
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO daily_snapshots
			(player_id, snapshot_date, level, experience, magic_level, skills, equipment)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		playerID, snap.Date, snap.Level, int64(snap.Experience), snap.MagicLevel,
		skills, equipment,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	snapshotID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	for _, q := range snap.Quests {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO daily_quests (snapshot_id, quest_id, completed)
			VALUES (?, ?, ?)
			ON CONFLICT(snapshot_id, quest_id) DO UPDATE SET completed = excluded.completed`,
			snapshotID, q.QuestID, boolInt(q.Completed),
		); err != nil {
			return fmt.Errorf("insert quest flag %d: %w", q.QuestID, err)
		}
	}
	for _, b := range snap.Bestiary {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bestiary (snapshot_id, race_id, kill_count)
			VALUES (?, ?, ?)
			ON CONFLICT(snapshot_id, race_id) DO UPDATE SET kill_count = excluded.kill_count`,
			snapshotID, b.RaceID, b.Count,
		); err != nil {
			return fmt.Errorf("insert bestiary %d: %w", b.RaceID, err)
		}
	}
	for _, sk := range snap.Skinning {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO skinning (snapshot_id, race_id, count)
			VALUES (?, ?, ?)
			ON CONFLICT(snapshot_id, race_id) DO UPDATE SET count = excluded.count`,
			snapshotID, sk.RaceID, sk.Count,
		); err != nil {
			return fmt.Errorf("insert skinning %d: %w", sk.RaceID, err)
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
