package decode

import (
	"fmt"

	"github.com/demonax/demonax/internal/gamefile"
	"github.com/demonax/demonax/internal/model"
)

// catalogMagic is "OBJ1" little-endian at the head of objects.dat.
const catalogMagic = 0x314a424f

// Item flag bits in the catalog flags word.
const (
	FlagPortable  = 1 << 0
	FlagStackable = 1 << 1
	FlagContainer = 1 << 2
	FlagUsable    = 1 << 3
	FlagWeapon    = 1 << 4
	FlagArmor     = 1 << 5
	FlagRune      = 1 << 6
	FlagKey       = 1 << 7
	FlagFood      = 1 << 8
	FlagLiquid    = 1 << 9
	FlagExpiring  = 1 << 10
	FlagQuestItem = 1 << 11
)

// Type ids 1-10 are reserved engine objects and never become items.
const reservedTypeIDMax = 10

// Catalog decodes the objects.dat item table. Only entries carrying the
// portable flag (and a non-reserved type id) are materialized; everything
// else is scenery the store has no use for.
func Catalog(data []byte, path string) ([]model.Item, error) {
	c := gamefile.NewCursor(data)

	magic, err := c.ReadUint32()
	if err != nil {
		return nil, fileErr(path, "header", err)
	}
	if magic != catalogMagic {
		return nil, fileErr(path, fmt.Sprintf("bad magic 0x%08x", magic), nil)
	}
	count, err := c.ReadUint32()
	if err != nil {
		return nil, fileErr(path, "entry count", err)
	}

	var items []model.Item
	for i := uint32(0); i < count; i++ {
		typeID, err := c.ReadUint16()
		if err != nil {
			return nil, fileErr(path, fmt.Sprintf("entry %d type id", i), err)
		}
		flags, err := c.ReadUint32()
		if err != nil {
			return nil, fileErr(path, fmt.Sprintf("entry %d flags", i), err)
		}
		name, err := c.ReadString16()
		if err != nil {
			return nil, fileErr(path, fmt.Sprintf("entry %d name", i), err)
		}
		attrCount, err := c.ReadUint8()
		if err != nil {
			return nil, fileErr(path, fmt.Sprintf("entry %d attribute count", i), err)
		}
		attrs := make(map[string]int32, attrCount)
		for j := 0; j < int(attrCount); j++ {
			key, err := c.ReadString8()
			if err != nil {
				return nil, fileErr(path, fmt.Sprintf("entry %d attribute key", i), err)
			}
			value, err := c.ReadInt32()
			if err != nil {
				return nil, fileErr(path, fmt.Sprintf("entry %d attribute value", i), err)
			}
			attrs[key] = value
		}

		if !gamefile.HasFlag(flags, FlagPortable) || typeID <= reservedTypeIDMax {
			continue
		}
		items = append(items, model.Item{
			TypeID:     int64(typeID),
			Name:       name,
			Flags:      flags,
			Attributes: attrs,
		})
	}
	return items, nil
}
