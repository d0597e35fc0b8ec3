package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/demonax/demonax/internal/model"
)

// UpsertItems persists catalog items keyed by type id. The cross-link
// column rewarded_from is owned by LinkQuestRewards and survives catalog
// re-ingestion untouched.
func (s *Store) UpsertItems(ctx context.Context, items []model.Item) (int, error) {
	written := 0
	for _, batch := range chunks(items, batchSize) {
		err := s.withTx(ctx, "items", func(tx *sql.Tx) error {
			for _, item := range batch {
				attrs, err := marshalJSON(item.Attributes, "{}")
				if err != nil {
					return err
				}
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO items (type_id, name, flags, attributes)
					VALUES (?, ?, ?, ?)
					ON CONFLICT(type_id) DO UPDATE SET
						name       = excluded.name,
						flags      = excluded.flags,
						attributes = excluded.attributes`,
					item.TypeID, item.Name, item.Flags, attrs,
				); err != nil {
					return fmt.Errorf("item %d: %w", item.TypeID, err)
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

// UpsertItemPrices persists NPC trade offers. The same NPC/item/mode triple
// appearing twice resolves last-wins.
func (s *Store) UpsertItemPrices(ctx context.Context, prices []model.ItemPrice) (int, error) {
	written := 0
	for _, batch := range chunks(prices, batchSize) {
		err := s.withTx(ctx, "item prices", func(tx *sql.Tx) error {
			for _, p := range batch {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO item_prices (item_type_id, npc_name, price, mode)
					VALUES (?, ?, ?, ?)
					ON CONFLICT(item_type_id, npc_name, mode) DO UPDATE SET
						price = excluded.price`,
					p.ItemTypeID, p.NPCName, p.Price, p.Mode,
				); err != nil {
					return fmt.Errorf("price %s/%d/%s: %w", p.NPCName, p.ItemTypeID, p.Mode, err)
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

// LinkQuestRewards recomputes items.rewarded_from from the persisted quest
// reward lists, in one transaction: every item's link is cleared, then set
// for exactly the items at least one quest rewards. Re-running with
// unchanged quests reproduces identical column values; items the catalog
// does not know yet are skipped (dangling references are resolved lazily).
// Returns the number of items linked.
func (s *Store) LinkQuestRewards(ctx context.Context) (int, error) {
	linked := 0
	err := s.withTx(ctx, "quest cross-link", func(tx *sql.Tx) error {
		linked = 0
		if _, err := tx.ExecContext(ctx, `UPDATE items SET rewarded_from = NULL`); err != nil {
			return fmt.Errorf("clear links: %w", err)
		}

		rows, err := tx.QueryContext(ctx, `SELECT id, name, rewards FROM quests ORDER BY id`)
		if err != nil {
			return fmt.Errorf("read quests: %w", err)
		}
		defer rows.Close()

		itemQuests := make(map[int64][]string)
		for rows.Next() {
			var (
				id      int64
				name    string
				rewards string
			)
			if err := rows.Scan(&id, &name, &rewards); err != nil {
				return fmt.Errorf("scan quest: %w", err)
			}
			var itemIDs []int64
			if err := json.Unmarshal([]byte(rewards), &itemIDs); err != nil {
				return fmt.Errorf("quest %d rewards: %w", id, err)
			}
			seen := make(map[int64]bool)
			for _, itemID := range itemIDs {
				if seen[itemID] {
					continue
				}
				seen[itemID] = true
				itemQuests[itemID] = append(itemQuests[itemID], name)
			}
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate quests: %w", err)
		}

		itemIDs := make([]int64, 0, len(itemQuests))
		for id := range itemQuests {
			itemIDs = append(itemIDs, id)
		}
		sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })

		for _, itemID := range itemIDs {
			res, err := tx.ExecContext(ctx,
				`UPDATE items SET rewarded_from = ? WHERE type_id = ?`,
				strings.Join(itemQuests[itemID], ", "), itemID,
			)
			if err != nil {
				return fmt.Errorf("link item %d: %w", itemID, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("link item %d: %w", itemID, err)
			}
			linked += int(n)
		}
		return nil
	})
	return linked, err
}
