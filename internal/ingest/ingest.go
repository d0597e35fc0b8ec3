// Package ingest drives the per-stage decode fan-out and hands the
// decoded rows to the store. Each stage discovers its input files,
// decodes them through a bounded worker pool and persists the survivors
// in one pass; files that fail to decode are reported, not fatal.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/demonax/demonax/internal/decode"
	"github.com/demonax/demonax/internal/gamefile"
	"github.com/demonax/demonax/internal/model"
	"github.com/demonax/demonax/internal/moveuse"
	"github.com/demonax/demonax/internal/store"
)

// Runner binds the ingestion stages to a store. Workers caps the decode
// pool; zero means one worker per CPU.
type Runner struct {
	Store   *store.Store
	Log     *slog.Logger
	Workers int
}

func (r *Runner) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// Creatures ingests every .mon file under <gamePath>/mon.
func (r *Runner) Creatures(ctx context.Context, gamePath string) (*Summary, error) {
	paths, err := gamefile.FindWithExtension(filepath.Join(gamePath, "mon"), "mon")
	if err != nil {
		return nil, err
	}

	type decoded struct {
		creature   *model.Creature
		violations int
	}
	results, skipped := decodeAll(paths, r.Workers, func(path string) (decoded, error) {
		c, violations, err := decode.Creature(path)
		if err != nil {
			return decoded{}, err
		}
		for _, v := range violations {
			r.log().Warn("dropped loot row", "path", path, "reason", v.Error())
		}
		return decoded{c, len(violations)}, nil
	})

	creatures := make([]*model.Creature, len(results))
	violations := 0
	for i, d := range results {
		creatures[i] = d.creature
		violations += d.violations
	}

	written, err := r.Store.UpsertCreatures(ctx, creatures)
	if err != nil {
		return nil, err
	}
	return &Summary{Written: written, Violations: violations, Skipped: skipped}, nil
}

// ItemsCore ingests the item catalog at <gamePath>/dat/objects.dat, then
// NPC trade prices from <gamePath>/npc. A missing catalog is fatal; a
// missing npc directory only skips the price pass.
func (r *Runner) ItemsCore(ctx context.Context, gamePath string) (*Summary, error) {
	catalogPath := filepath.Join(gamePath, "dat", "objects.dat")
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("read item catalog: %w", err)
	}
	items, err := decode.Catalog(data, catalogPath)
	if err != nil {
		return nil, err
	}

	written, err := r.Store.UpsertItems(ctx, items)
	if err != nil {
		return nil, err
	}
	summary := &Summary{Written: written}

	npcDir := filepath.Join(gamePath, "npc")
	if _, err := os.Stat(npcDir); err != nil {
		r.log().Warn("npc directory not found, skipping prices", "dir", npcDir)
		return summary, nil
	}
	paths, err := gamefile.FindWithExtension(npcDir, "npc")
	if err != nil {
		return nil, err
	}

	priceLists, skipped := decodeAll(paths, r.Workers, func(path string) ([]model.ItemPrice, error) {
		doc, err := decode.NPC(path)
		if err != nil {
			return nil, err
		}
		return doc.Prices(), nil
	})
	summary.Skipped = append(summary.Skipped, skipped...)

	var prices []model.ItemPrice
	for _, list := range priceLists {
		prices = append(prices, list...)
	}
	priceCount, err := r.Store.UpsertItemPrices(ctx, prices)
	if err != nil {
		return nil, err
	}
	summary.Written += priceCount
	return summary, nil
}

// QuestOverview ingests quest chests from every .sec file under
// <gamePath>/map.
func (r *Runner) QuestOverview(ctx context.Context, gamePath string) (*Summary, error) {
	paths, err := gamefile.FindWithExtension(filepath.Join(gamePath, "map"), "sec")
	if err != nil {
		return nil, err
	}

	questLists, skipped := decodeAll(paths, r.Workers, func(path string) ([]model.Quest, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return decode.Sector(data, path)
	})

	var quests []model.Quest
	for _, list := range questLists {
		quests = append(quests, list...)
	}
	written, err := r.Store.UpsertQuests(ctx, quests)
	if err != nil {
		return nil, err
	}
	return &Summary{Written: written, Skipped: skipped}, nil
}

// ItemsQuests recomputes the rewarded_from column on items from the
// quests already in the store.
func (r *Runner) ItemsQuests(ctx context.Context) (*Summary, error) {
	linked, err := r.Store.LinkQuestRewards(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{Written: linked}, nil
}

// Raids ingests every .evt file under <gamePath>/mon.
func (r *Runner) Raids(ctx context.Context, gamePath string) (*Summary, error) {
	paths, err := gamefile.FindWithExtension(filepath.Join(gamePath, "mon"), "evt")
	if err != nil {
		return nil, err
	}
	// halloweenhare.evt is a hand-written one-off that does not follow
	// the raid layout.
	kept := paths[:0]
	for _, p := range paths {
		if filepath.Base(p) == "halloweenhare.evt" {
			continue
		}
		kept = append(kept, p)
	}

	raids, skipped := decodeAll(kept, r.Workers, decode.Raid)
	written, err := r.Store.UpsertRaids(ctx, raids)
	if err != nil {
		return nil, err
	}
	return &Summary{Written: written, Skipped: skipped}, nil
}

// Skinning ingests skinning recipes from csvPath, or from the first of
// <gamePath>/skinning.csv and <gamePath>/dat/skinning.csv that exists.
// When moveusePath is set the recipes are also rendered as MultiUse
// rules and spliced into that file.
func (r *Runner) Skinning(ctx context.Context, gamePath, csvPath, moveusePath string) (*Summary, error) {
	if csvPath == "" {
		candidates := []string{
			filepath.Join(gamePath, "skinning.csv"),
			filepath.Join(gamePath, "dat", "skinning.csv"),
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				csvPath = c
				break
			}
		}
		if csvPath == "" {
			return nil, fmt.Errorf("skinning.csv not found under %s", gamePath)
		}
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open skinning csv: %w", err)
	}
	defer f.Close()
	recipes, err := decode.Recipes(f, csvPath)
	if err != nil {
		return nil, err
	}

	written, err := r.Store.UpsertSkinningRecipes(ctx, recipes)
	if err != nil {
		return nil, err
	}

	if moveusePath != "" {
		if err := moveuse.SpliceFile(moveusePath, recipes); err != nil {
			return nil, err
		}
		r.log().Info("updated moveuse rules", "path", moveusePath, "recipes", len(recipes))
	}
	return &Summary{Written: written}, nil
}

// Spells ingests the spell table from magicPath (or the first of
// <gamePath>/src/magic.cc, <gamePath>/magic.cc and <parent>/src/magic.cc
// that exists), then spell teachers and rune sellers from <gamePath>/npc.
// A missing spell table skips that pass; the NPC passes still run.
func (r *Runner) Spells(ctx context.Context, gamePath, magicPath string) (*Summary, error) {
	if magicPath == "" {
		candidates := []string{
			filepath.Join(gamePath, "src", "magic.cc"),
			filepath.Join(gamePath, "magic.cc"),
			filepath.Join(filepath.Dir(gamePath), "src", "magic.cc"),
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				magicPath = c
				break
			}
		}
	}

	summary := &Summary{}
	if magicPath == "" {
		r.log().Warn("spell table not found, skipping spell definitions", "game", gamePath)
	} else {
		text, err := gamefile.ReadLatin1(magicPath)
		if err != nil {
			return nil, fmt.Errorf("read spell table: %w", err)
		}
		spells, malformed, err := decode.SpellTable(text, magicPath)
		if err != nil {
			return nil, err
		}
		for _, m := range malformed {
			r.log().Warn("dropped spell entry", "path", magicPath, "entry", m)
		}
		summary.Violations += len(malformed)

		written, err := r.Store.UpsertSpells(ctx, spells)
		if err != nil {
			return nil, err
		}
		summary.Written += written
	}

	npcDir := filepath.Join(gamePath, "npc")
	if _, err := os.Stat(npcDir); err != nil {
		r.log().Warn("npc directory not found, skipping teachers and sellers", "dir", npcDir)
		return summary, nil
	}
	paths, err := gamefile.FindWithExtension(npcDir, "npc")
	if err != nil {
		return nil, err
	}

	type npcRows struct {
		teachers []model.SpellTeacher
		sellers  []model.RuneSeller
	}
	results, skipped := decodeAll(paths, r.Workers, func(path string) (npcRows, error) {
		doc, err := decode.NPC(path)
		if err != nil {
			return npcRows{}, err
		}
		return npcRows{teachers: doc.SpellTeachers(), sellers: doc.RuneSellers()}, nil
	})
	summary.Skipped = append(summary.Skipped, skipped...)

	var teachers []model.SpellTeacher
	var sellers []model.RuneSeller
	for _, rows := range results {
		teachers = append(teachers, rows.teachers...)
		sellers = append(sellers, rows.sellers...)
	}

	teacherCount, err := r.Store.UpsertSpellTeachers(ctx, teachers)
	if err != nil {
		return nil, err
	}
	sellerCount, err := r.Store.UpsertRuneSellers(ctx, sellers)
	if err != nil {
		return nil, err
	}
	summary.Written += teacherCount + sellerCount
	return summary, nil
}

// ProcessUsr ingests every .usr snapshot under inputDir.
func (r *Runner) ProcessUsr(ctx context.Context, inputDir string) (*Summary, error) {
	paths, err := gamefile.FindWithExtension(inputDir, "usr")
	if err != nil {
		return nil, err
	}

	snapshots, skipped := decodeAll(paths, r.Workers, func(path string) (*model.Snapshot, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return decode.Snapshot(data, path)
	})

	written, err := r.Store.UpsertSnapshots(ctx, snapshots)
	if err != nil {
		return nil, err
	}
	return &Summary{Written: written, Skipped: skipped}, nil
}
