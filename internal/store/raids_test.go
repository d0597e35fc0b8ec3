package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demonax/demonax/internal/model"
)

func TestUpsertRaids(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	days := 7.0
	seconds := int64(3600)
	raids := []*model.Raid{
		{
			Name:            "orcraid",
			Kind:            model.RaidCyclic,
			WaveDescription: "three",
			IntervalDays:    &days,
			Message:         "Orcs are marching!",
			Spawns: []model.Spawn{
				{RaceID: 39, Min: 4, Max: 8},
				{RaceID: 52, Min: 2, Max: 2},
			},
		},
		{
			Name:            "rats",
			Kind:            model.RaidOneTime,
			IntervalSeconds: &seconds,
		},
	}

	written, err := s.UpsertRaids(ctx, raids)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	var (
		intervalSeconds sql.NullInt64
		intervalDays    sql.NullFloat64
		creatures       string
		spawns          string
	)
	require.NoError(t, s.ReadDB().QueryRow(`
		SELECT interval_seconds, interval_days, creatures, spawn_composition
		FROM raids WHERE name = 'orcraid'`,
	).Scan(&intervalSeconds, &intervalDays, &creatures, &spawns))

	assert.False(t, intervalSeconds.Valid)
	require.True(t, intervalDays.Valid)
	assert.Equal(t, 7.0, intervalDays.Float64)
	assert.Equal(t, "4 to 8 Race 39, 2 Race 52", creatures)
	assert.JSONEq(t, `[{"race":39,"min":4,"max":8},{"race":52,"min":2,"max":2}]`, spawns)

	require.NoError(t, s.ReadDB().QueryRow(`
		SELECT interval_seconds, interval_days, creatures, spawn_composition
		FROM raids WHERE name = 'rats'`,
	).Scan(&intervalSeconds, &intervalDays, &creatures, &spawns))
	require.True(t, intervalSeconds.Valid)
	assert.Equal(t, int64(3600), intervalSeconds.Int64)
	assert.False(t, intervalDays.Valid)
	assert.Equal(t, "[]", spawns)
}

func TestUpsertRaidsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	raid := &model.Raid{Name: "orcraid", Kind: model.RaidCyclic}
	for i := 0; i < 2; i++ {
		_, err := s.UpsertRaids(ctx, []*model.Raid{raid})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, countRows(t, s, "raids"))
}

func TestUpsertRaidsRejectsBothIntervals(t *testing.T) {
	s := openTestStore(t)

	days := 1.0
	seconds := int64(86400)
	_, err := s.UpsertRaids(context.Background(), []*model.Raid{{
		Name:            "broken",
		Kind:            model.RaidCyclic,
		IntervalDays:    &days,
		IntervalSeconds: &seconds,
	}})
	require.Error(t, err)
	assert.True(t, IsPersistenceError(err))
}

func TestUpsertSkinningRecipes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	recipes := []model.SkinningRecipe{
		{ToolID: 5908, CorpseID: 4011, NextCorpseID: 4012, PercentChance: 45.5, RewardID: 5878, RaceID: 34},
		{ToolID: 5908, CorpseID: 4259, NextCorpseID: 4260, PercentChance: 30, RewardID: 5876, RaceID: 51},
		// Duplicate pair: last wins.
		{ToolID: 5908, CorpseID: 4011, NextCorpseID: 4012, PercentChance: 50, RewardID: 5878, RaceID: 34},
	}
	written, err := s.UpsertSkinningRecipes(ctx, recipes)
	require.NoError(t, err)
	assert.Equal(t, 3, written)
	assert.Equal(t, 2, countRows(t, s, "skinning_recipes"))

	var chance float64
	require.NoError(t, s.ReadDB().QueryRow(`
		SELECT percent_chance FROM skinning_recipes
		WHERE tool_id = 5908 AND corpse_id = 4011`).Scan(&chance))
	assert.Equal(t, 50.0, chance)
}
