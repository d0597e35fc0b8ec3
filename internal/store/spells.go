package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/demonax/demonax/internal/model"
)

// UpsertSpells persists mined spell definitions keyed by spell id.
func (s *Store) UpsertSpells(ctx context.Context, spells []model.Spell) (int, error) {
	written := 0
	for _, batch := range chunks(spells, batchSize) {
		err := s.withTx(ctx, "spells", func(tx *sql.Tx) error {
			for _, sp := range batch {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO spells
						(id, name, words, level, magic_level, mana, soul_points,
						 flags, is_rune, rune_type_id, charges, category, premium)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
					ON CONFLICT(id) DO UPDATE SET
						name         = excluded.name,
						words        = excluded.words,
						level        = excluded.level,
						magic_level  = excluded.magic_level,
						mana         = excluded.mana,
						soul_points  = excluded.soul_points,
						flags        = excluded.flags,
						is_rune      = excluded.is_rune,
						rune_type_id = excluded.rune_type_id,
						charges      = excluded.charges,
						category     = excluded.category,
						premium      = excluded.premium`,
					sp.ID, sp.Name, sp.Words, sp.Level, sp.MagicLevel, sp.Mana,
					sp.SoulPoints, sp.Flags, boolInt(sp.IsRune), sp.RuneTypeID,
					sp.Charges, sp.Category, boolInt(sp.Premium),
				); err != nil {
					return fmt.Errorf("spell %d: %w", sp.ID, err)
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

// UpsertSpellTeachers persists teaching offers keyed by
// (npc, spell, vocation). Spell ids the spell table never defined are
// stored anyway and joined lazily at query time.
func (s *Store) UpsertSpellTeachers(ctx context.Context, teachers []model.SpellTeacher) (int, error) {
	written := 0
	for _, batch := range chunks(teachers, batchSize) {
		err := s.withTx(ctx, "spell teachers", func(tx *sql.Tx) error {
			for _, tch := range batch {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO spell_teachers
						(npc_name, spell_id, vocation, price, level_required)
					VALUES (?, ?, ?, ?, ?)
					ON CONFLICT(npc_name, spell_id, vocation) DO UPDATE SET
						price          = excluded.price,
						level_required = excluded.level_required`,
					tch.NPCName, tch.SpellID, tch.Vocation, tch.Price, tch.LevelRequired,
				); err != nil {
					return fmt.Errorf("teacher %s/%d: %w", tch.NPCName, tch.SpellID, err)
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

// UpsertRuneSellers persists rune/wand/rod shop offers keyed by
// (npc, item, vocation).
func (s *Store) UpsertRuneSellers(ctx context.Context, sellers []model.RuneSeller) (int, error) {
	written := 0
	for _, batch := range chunks(sellers, batchSize) {
		err := s.withTx(ctx, "rune sellers", func(tx *sql.Tx) error {
			for _, rs := range batch {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO rune_sellers
						(npc_name, item_type_id, price, charges, vocation, category, account_type)
					VALUES (?, ?, ?, ?, ?, ?, ?)
					ON CONFLICT(npc_name, item_type_id, vocation) DO UPDATE SET
						price        = excluded.price,
						charges      = excluded.charges,
						category     = excluded.category,
						account_type = excluded.account_type`,
					rs.NPCName, rs.ItemTypeID, rs.Price, rs.Charges,
					rs.Vocation, rs.Category, rs.AccountType,
				); err != nil {
					return fmt.Errorf("rune seller %s/%d: %w", rs.NPCName, rs.ItemTypeID, err)
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
