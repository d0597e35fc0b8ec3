package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLootPercent(t *testing.T) {
	tests := []struct {
		name      string
		chanceRaw int64
		want      float64
	}{
		{"always drops", 999, 100},
		{"common", 499, 50},
		{"uncommon", 99, 10},
		{"rare keeps one decimal", 4, 0.5},
		{"rarest", 1, 0.2},
		{"rounds to whole above one percent", 700, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LootPercent(tt.chanceRaw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLootPercentMonotonic(t *testing.T) {
	prev := 0.0
	for raw := int64(1); raw <= 999; raw++ {
		p, err := LootPercent(raw)
		require.NoError(t, err)
		if p < prev {
			t.Fatalf("percent decreased at chance %d: %v < %v", raw, p, prev)
		}
		prev = p
	}
}

func TestLootPercentOutOfRange(t *testing.T) {
	for _, raw := range []int64{0, -1, 1000, 99999} {
		_, err := LootPercent(raw)
		require.Error(t, err, "chance %d", raw)
		assert.True(t, IsSchemaViolation(err))
	}
}

func TestDeriveLoot(t *testing.T) {
	// 999 raw = 100%, count 3 -> expect (1+3)/2 = 2 items per kill.
	entry, err := DeriveLoot(3031, 3, 999)
	require.NoError(t, err)
	assert.Equal(t, int64(3031), entry.ItemTypeID)
	assert.Equal(t, 100.0, entry.Percent)
	assert.Equal(t, 2.0, entry.AverageValue)

	_, err = DeriveLoot(3031, 3, 0)
	assert.True(t, IsSchemaViolation(err))
}

func TestRaidCreatures(t *testing.T) {
	r := &Raid{Spawns: []Spawn{
		{RaceID: 39, Min: 2, Max: 5},
		{RaceID: 52, Min: 3, Max: 3},
		{RaceID: 39, Min: 4, Max: 8},
	}}
	assert.Equal(t, []string{"2 to 5 Race 39", "3 Race 52", "4 to 8 Race 39"}, r.Creatures())
}
