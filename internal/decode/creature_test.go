package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demonax/demonax/internal/model"
)

const dragonMon = `# Dragon
RaceNumber = 34
Name       = "dragon"
Article    = "A"
Experience = 700

Skills = {(HitPoints, 1000, 1000, 1000, 0, 0, 0, 0),
          (Attack, 45, 45, 45, 0, 0, 0, 0),
          (Armor, 25, 25, 25, 0, 0, 0, 0),
          (GoStrength, 86, 86, 86, 0, 0, 0, 0)}

Flags = {SeeInvisible, Unpushable, DistanceFighting}

Inventory = {(3031, 80, 999),
             (3577, 3, 499),
             (3031, 1, 4)}
`

func TestCreature(t *testing.T) {
	cr, violations, err := CreatureText(dragonMon, "dragon.mon")
	require.NoError(t, err)
	assert.Empty(t, violations)

	assert.Equal(t, int64(34), cr.RaceID)
	assert.Equal(t, "dragon", cr.Name)
	assert.Equal(t, int64(700), cr.Experience)
	assert.Equal(t, int64(1000), cr.HitPoints)
	assert.Equal(t, int64(45), cr.Attack)
	assert.Equal(t, int64(25), cr.Armor)

	// All three loot rows survive, including the repeated gold coin id.
	require.Len(t, cr.Loot, 3)
	assert.Equal(t, int64(3031), cr.Loot[0].ItemTypeID)
	assert.Equal(t, int64(80), cr.Loot[0].Count)
	assert.Equal(t, int64(999), cr.Loot[0].ChanceRaw)
	assert.Equal(t, 100.0, cr.Loot[0].Percent)
	assert.Equal(t, 40.5, cr.Loot[0].AverageValue)
	assert.Equal(t, int64(3031), cr.Loot[2].ItemTypeID)
	assert.Equal(t, 0.5, cr.Loot[2].Percent)

	assertGolden(t, "creature", cr)
}

func TestCreatureNoLoot(t *testing.T) {
	cr, violations, err := CreatureText("RaceNumber = 9\nName = \"sheep\"\n", "sheep.mon")
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Empty(t, cr.Loot)
}

func TestCreatureLootChanceViolation(t *testing.T) {
	text := `RaceNumber = 51
Name = "hyaena"
Inventory = {(3031, 20, 1000), (3582, 2, 250)}
`
	cr, violations, err := CreatureText(text, "hyaena.mon")
	require.NoError(t, err)

	// The out-of-range row is dropped and reported; the sibling survives.
	require.Len(t, violations, 1)
	assert.True(t, model.IsSchemaViolation(violations[0]))
	require.Len(t, cr.Loot, 1)
	assert.Equal(t, int64(3582), cr.Loot[0].ItemTypeID)
}

func TestCreatureMissingFields(t *testing.T) {
	_, _, err := CreatureText("Experience = 5\n", "broken.mon")
	require.Error(t, err)
	assert.True(t, IsFileError(err))

	_, _, err = CreatureText("Name = \"thing\"\n", "broken.mon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RaceNumber")
}

func TestCreatureMalformedFile(t *testing.T) {
	_, _, err := CreatureText("Name = \"x\"\nInventory = {(1, 2, 3)\n", "broken.mon")
	require.Error(t, err)
	assert.True(t, IsFileError(err))
}
