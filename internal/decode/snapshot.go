package decode

import (
	"fmt"
	"strconv"

	"github.com/demonax/demonax/internal/gamefile"
	"github.com/demonax/demonax/internal/model"
)

// snapshotVersion is the only .usr record version this decoder accepts.
const snapshotVersion = 1

// Snapshot decodes one binary .usr player snapshot. Truncated input at any
// point is a decode failure; trailing bytes after the last section are
// ignored.
func Snapshot(data []byte, path string) (*model.Snapshot, error) {
	c := gamefile.NewCursor(data)

	version, err := c.ReadUint16()
	if err != nil {
		return nil, fileErr(path, "version", err)
	}
	if version != snapshotVersion {
		return nil, fileErr(path, fmt.Sprintf("unsupported version %d", version), nil)
	}

	year, err := c.ReadUint16()
	if err != nil {
		return nil, fileErr(path, "date", err)
	}
	month, err := c.ReadUint8()
	if err != nil {
		return nil, fileErr(path, "date", err)
	}
	day, err := c.ReadUint8()
	if err != nil {
		return nil, fileErr(path, "date", err)
	}

	name, err := c.ReadString16()
	if err != nil {
		return nil, fileErr(path, "player name", err)
	}
	if name == "" {
		return nil, fileErr(path, "empty player name", nil)
	}

	level, err := c.ReadUint16()
	if err != nil {
		return nil, fileErr(path, "level", err)
	}
	experience, err := c.ReadUint64()
	if err != nil {
		return nil, fileErr(path, "experience", err)
	}
	magicLevel, err := c.ReadUint8()
	if err != nil {
		return nil, fileErr(path, "magic level", err)
	}

	snap := &model.Snapshot{
		PlayerName: name,
		Date:       fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		Level:      int(level),
		Experience: experience,
		MagicLevel: int(magicLevel),
		Skills:     map[string]int{},
		Equipment:  map[string]int{},
	}

	skillCount, err := c.ReadUint8()
	if err != nil {
		return nil, fileErr(path, "skill count", err)
	}
	for i := 0; i < int(skillCount); i++ {
		skillName, err := c.ReadString8()
		if err != nil {
			return nil, fileErr(path, "skill name", err)
		}
		value, err := c.ReadUint16()
		if err != nil {
			return nil, fileErr(path, "skill value", err)
		}
		snap.Skills[skillName] = int(value)
	}

	equipCount, err := c.ReadUint8()
	if err != nil {
		return nil, fileErr(path, "equipment count", err)
	}
	for i := 0; i < int(equipCount); i++ {
		slot, err := c.ReadUint8()
		if err != nil {
			return nil, fileErr(path, "equipment slot", err)
		}
		typeID, err := c.ReadUint16()
		if err != nil {
			return nil, fileErr(path, "equipment item", err)
		}
		snap.Equipment[strconv.Itoa(int(slot))] = int(typeID)
	}

	questCount, err := c.ReadUint16()
	if err != nil {
		return nil, fileErr(path, "quest count", err)
	}
	for i := 0; i < int(questCount); i++ {
		questID, err := c.ReadUint16()
		if err != nil {
			return nil, fileErr(path, "quest id", err)
		}
		completed, err := c.ReadUint8()
		if err != nil {
			return nil, fileErr(path, "quest flag", err)
		}
		snap.Quests = append(snap.Quests, model.QuestFlag{
			QuestID:   int(questID),
			Completed: completed != 0,
		})
	}

	bestiary, err := readRaceCounts(c)
	if err != nil {
		return nil, fileErr(path, "bestiary", err)
	}
	snap.Bestiary = bestiary

	skinning, err := readRaceCounts(c)
	if err != nil {
		return nil, fileErr(path, "skinning", err)
	}
	snap.Skinning = skinning

	return snap, nil
}

// readRaceCounts decodes a u16-counted list of (race id u16, count u32)
// entries, shared by the bestiary and skinning sections.
func readRaceCounts(c *gamefile.Cursor) ([]model.RaceCount, error) {
	n, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	var out []model.RaceCount
	for i := 0; i < int(n); i++ {
		raceID, err := c.ReadUint16()
		if err != nil {
			return nil, err
		}
		count, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		out = append(out, model.RaceCount{RaceID: int(raceID), Count: int64(count)})
	}
	return out, nil
}
