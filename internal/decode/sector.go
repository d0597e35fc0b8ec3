package decode

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/demonax/demonax/internal/gamefile"
	"github.com/demonax/demonax/internal/model"
)

// Map sectors are 32x32 tiles; the file name carries the sector grid
// position (<sx>-<sy>-<z>.sec).
const sectorSize = 32

// Container object flag in a sector object record.
const sectorFlagContainer = 1 << 0

// Sector decodes one binary map sector file and extracts its quest chests:
// containers with a quest number, reported with in-game coordinates and the
// chest contents in order. A sector without chests yields no rows. Chests
// belonging to the tutorial island quest range are dropped here.
func Sector(data []byte, path string) ([]model.Quest, error) {
	sx, sy, z, err := sectorCoords(path)
	if err != nil {
		return nil, fileErr(path, "sector name", err)
	}
	originX, originY := sx*sectorSize, sy*sectorSize

	c := gamefile.NewCursor(data)
	tileCount, err := c.ReadUint16()
	if err != nil {
		return nil, fileErr(path, "tile count", err)
	}

	var quests []model.Quest
	for t := 0; t < int(tileCount); t++ {
		offX, err := c.ReadUint8()
		if err != nil {
			return nil, fileErr(path, fmt.Sprintf("tile %d", t), err)
		}
		offY, err := c.ReadUint8()
		if err != nil {
			return nil, fileErr(path, fmt.Sprintf("tile %d", t), err)
		}
		objCount, err := c.ReadUint8()
		if err != nil {
			return nil, fileErr(path, fmt.Sprintf("tile %d", t), err)
		}

		for o := 0; o < int(objCount); o++ {
			if _, err := c.ReadUint16(); err != nil { // object type id
				return nil, fileErr(path, fmt.Sprintf("tile %d object %d", t, o), err)
			}
			objFlags, err := c.ReadUint8()
			if err != nil {
				return nil, fileErr(path, fmt.Sprintf("tile %d object %d", t, o), err)
			}
			if objFlags&sectorFlagContainer == 0 {
				continue
			}

			questNumber, err := c.ReadUint16()
			if err != nil {
				return nil, fileErr(path, "container quest number", err)
			}
			if _, err := c.ReadUint16(); err != nil { // key number, unused here
				return nil, fileErr(path, "container key number", err)
			}
			contentCount, err := c.ReadUint8()
			if err != nil {
				return nil, fileErr(path, "container content count", err)
			}
			rewards := make([]int64, 0, contentCount)
			for k := 0; k < int(contentCount); k++ {
				itemID, err := c.ReadUint16()
				if err != nil {
					return nil, fileErr(path, "container content", err)
				}
				rewards = append(rewards, int64(itemID))
			}

			if questNumber == 0 || isTutorialQuest(int64(questNumber)) {
				continue
			}
			quests = append(quests, model.Quest{
				Number:  int64(questNumber),
				Name:    fmt.Sprintf("Quest %d", questNumber),
				X:       originX + int(offX),
				Y:       originY + int(offY),
				Z:       z,
				Rewards: rewards,
			})
		}
	}
	return quests, nil
}

// sectorCoords extracts the sector grid position from a <sx>-<sy>-<z>.sec
// file name.
func sectorCoords(path string) (sx, sy, z int, err error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(stem, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("want <sx>-<sy>-<z>, got %q", stem)
	}
	coords := make([]int, 3)
	for i, p := range parts {
		coords[i], err = strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("coordinate %q: %w", p, err)
		}
	}
	return coords[0], coords[1], coords[2], nil
}

// isTutorialQuest reports whether a quest number belongs to the tutorial
// island chest range, which never reaches the store.
func isTutorialQuest(n int64) bool {
	switch {
	case n >= 17 && n <= 35:
		return true
	case n == 58 || n == 59 || n == 223 || n == 224 || n == 255:
		return true
	}
	return false
}
