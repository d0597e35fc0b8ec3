package decode

import (
	"github.com/demonax/demonax/internal/gamefile"
	"github.com/demonax/demonax/internal/model"
	"github.com/demonax/demonax/internal/structtext"
)

// Creature decodes one .mon definition: the stat block plus the full loot
// table. Every loot row is kept, including repeated item ids (each row is a
// distinct drop roll). Rows whose chance falls outside the legal range are
// dropped and returned in violations; the creature itself still decodes.
func Creature(path string) (*model.Creature, []error, error) {
	text, err := gamefile.ReadLatin1(path)
	if err != nil {
		return nil, nil, err
	}
	return CreatureText(text, path)
}

// CreatureText is Creature over already-read file text.
func CreatureText(text, path string) (*model.Creature, []error, error) {
	doc, err := structtext.Parse(text)
	if err != nil {
		return nil, nil, fileErr(path, "parse", err)
	}

	name, ok := doc.Str("Name")
	if !ok || name == "" {
		return nil, nil, fileErr(path, "missing Name", nil)
	}
	raceID, ok := doc.Int("RaceNumber")
	if !ok {
		return nil, nil, fileErr(path, "missing RaceNumber", nil)
	}

	cr := &model.Creature{
		RaceID: raceID,
		Name:   name,
	}
	cr.Experience, _ = doc.Int("Experience")

	// Stat values ride in the Skills tuple list, keyed by the first member.
	if skills, ok := doc.Get("Skills"); ok {
		for _, el := range skills.Group {
			tup := el.Value
			if tup.Kind != structtext.KindTuple || len(tup.Tuple) < 2 {
				continue
			}
			if tup.Tuple[0].Kind != structtext.KindWord || tup.Tuple[1].Kind != structtext.KindInt {
				continue
			}
			value := tup.Tuple[1].Int
			switch tup.Tuple[0].Str {
			case "HitPoints":
				cr.HitPoints = value
			case "Attack":
				cr.Attack = value
			case "Armor":
				cr.Armor = value
			}
		}
	}

	var violations []error
	if inv, ok := doc.Get("Inventory"); ok {
		for _, el := range inv.Group {
			ids := el.Value.Ints()
			if len(ids) < 3 {
				continue
			}
			entry, err := model.DeriveLoot(ids[0], ids[1], ids[2])
			if err != nil {
				violations = append(violations, err)
				continue
			}
			cr.Loot = append(cr.Loot, entry)
		}
	}

	return cr, violations, nil
}
