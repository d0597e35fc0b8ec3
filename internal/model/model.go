// Package model defines the canonical entity set produced by the format
// decoders and consumed by the store. Decoders emit these records; the
// normalization rules (derived loot columns, range checks) live here so
// every decoder shares one definition.
package model

import "fmt"

// Snapshot is one player's daily state, decoded from a .usr file.
// Skills and equipment are persisted as JSON blobs.
type Snapshot struct {
	PlayerName string
	Date       string // YYYY-MM-DD
	Level      int
	Experience uint64
	MagicLevel int
	Skills     map[string]int // skill name -> value
	Equipment  map[string]int // slot number -> item type id
	Quests     []QuestFlag
	Bestiary   []RaceCount
	Skinning   []RaceCount
}

// QuestFlag records quest completion state within a snapshot.
type QuestFlag struct {
	QuestID   int
	Completed bool
}

// RaceCount is a per-race counter (bestiary kills, skinning progress).
type RaceCount struct {
	RaceID int
	Count  int64
}

// Creature is one monster definition with its loot table.
type Creature struct {
	RaceID     int64
	Name       string
	Experience int64
	HitPoints  int64
	Attack     int64
	Armor      int64
	Loot       []LootEntry
}

// LootEntry is one drop roll. The same item id may repeat on a creature
// with different count/chance rows; each row is a distinct roll.
type LootEntry struct {
	ItemTypeID   int64
	Count        int64
	ChanceRaw    int64
	Percent      float64
	AverageValue float64
}

// Item is a catalog entry. Only portable items are materialized.
// RewardedFrom is set by the quest cross-link pass, never by the decoder.
type Item struct {
	TypeID     int64
	Name       string
	Flags      uint32
	Attributes map[string]int32
}

// Price modes for ItemPrice rows.
const (
	ModeBuy  = "buy"
	ModeSell = "sell"
)

// ItemPrice is one NPC trade offer. The item reference is by type id;
// the item row may not exist yet (stages are decoupled).
type ItemPrice struct {
	ItemTypeID int64
	NPCName    string
	Price      int64
	Mode       string
}

// Quest is a quest chest extracted from map sector data.
type Quest struct {
	Number      int64
	Name        string
	Description string
	X, Y, Z     int
	Rewards     []int64 // item type ids, chest order
}

// Raid kinds.
const (
	RaidCyclic  = "cyclic"
	RaidOneTime = "one-time"
)

// Raid is one event definition. Exactly one of IntervalSeconds and
// IntervalDays is set, determined by Kind: one-time raids keep seconds,
// cyclic raids keep days.
type Raid struct {
	Name            string
	Kind            string
	WaveDescription string
	IntervalSeconds *int64
	IntervalDays    *float64
	Message         string
	Spawns          []Spawn
}

// Spawn is one (race, min, max) wave member, in file order. Wave ordering
// is preserved; repeated races are not collapsed.
type Spawn struct {
	RaceID int64 `json:"race"`
	Min    int64 `json:"min"`
	Max    int64 `json:"max"`
}

// Creatures renders the spawn list for display, one entry per wave member
// in file order ("2 Race 39", "2 to 5 Race 39").
func (r *Raid) Creatures() []string {
	out := make([]string, 0, len(r.Spawns))
	for _, s := range r.Spawns {
		if s.Min == s.Max {
			out = append(out, fmt.Sprintf("%d Race %d", s.Min, s.RaceID))
		} else {
			out = append(out, fmt.Sprintf("%d to %d Race %d", s.Min, s.Max, s.RaceID))
		}
	}
	return out
}

// SkinningRecipe is one harvesting rule from skinning.csv.
type SkinningRecipe struct {
	ToolID        int64
	CorpseID      int64
	NextCorpseID  int64
	PercentChance float64
	RewardID      int64
	RaceID        int64
}

// Spell is one entry mined from the spell table source.
type Spell struct {
	ID         int64
	Name       string
	Words      string
	Level      int64
	MagicLevel *int64
	Mana       int64
	SoulPoints int64
	Flags      int64
	IsRune     bool
	RuneTypeID *int64
	Charges    *int64
	Category   string
	Premium    bool
}

// SpellTeacher is one NPC teaching offer, unique per (NPC, spell, vocation).
type SpellTeacher struct {
	NPCName       string
	SpellID       int64
	Vocation      string
	Price         int64
	LevelRequired *int64
}

// RuneSeller is one NPC rune/wand/rod sale offer.
type RuneSeller struct {
	NPCName     string
	ItemTypeID  int64
	Price       int64
	Charges     *int64
	Vocation    string
	Category    string
	AccountType string
}
