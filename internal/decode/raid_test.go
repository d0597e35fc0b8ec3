package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demonax/demonax/internal/model"
)

const orcRaidEvt = `# Orcs attack the town
# Process: three waves
Type     = cyclic
Interval = 604800
Message  = "Orcs are marching towards the city!"
Message  = "The orc raid has begun."

Race  = 39
Count = (4, 8)
Race  = 52
Count = (2, 2)
Race  = 39
Count = (1, 1)
`

func TestRaidCyclic(t *testing.T) {
	raid, err := RaidText(orcRaidEvt, "/data/mon/orcraid.evt")
	require.NoError(t, err)

	assert.Equal(t, "orcraid", raid.Name)
	assert.Equal(t, model.RaidCyclic, raid.Kind)
	assert.Equal(t, "three", raid.WaveDescription)
	assert.Equal(t, "Orcs are marching towards the city!; The orc raid has begun.", raid.Message)

	require.NotNil(t, raid.IntervalDays)
	assert.Equal(t, 7.0, *raid.IntervalDays)
	assert.Nil(t, raid.IntervalSeconds)

	// Wave order preserved, repeated race not collapsed.
	require.Len(t, raid.Spawns, 3)
	assert.Equal(t, model.Spawn{RaceID: 39, Min: 4, Max: 8}, raid.Spawns[0])
	assert.Equal(t, model.Spawn{RaceID: 52, Min: 2, Max: 2}, raid.Spawns[1])
	assert.Equal(t, model.Spawn{RaceID: 39, Min: 1, Max: 1}, raid.Spawns[2])

	assertGolden(t, "raid", raid)
}

func TestRaidOneTime(t *testing.T) {
	text := `Type = onetime
Interval = 3600
Race = 19
Count = (10, 20)
`
	raid, err := RaidText(text, "rats.evt")
	require.NoError(t, err)

	assert.Equal(t, model.RaidOneTime, raid.Kind)
	require.NotNil(t, raid.IntervalSeconds)
	assert.Equal(t, int64(3600), *raid.IntervalSeconds)
	assert.Nil(t, raid.IntervalDays)
	assert.Equal(t, "unknown", raid.WaveDescription)
}

func TestRaidIntervalExclusivity(t *testing.T) {
	for _, text := range []string{
		"Type = cyclic\nInterval = 86400\n",
		"Type = onetime\nInterval = 86400\n",
		"Type = cyclic\n",
	} {
		raid, err := RaidText(text, "r.evt")
		require.NoError(t, err)
		both := raid.IntervalSeconds != nil && raid.IntervalDays != nil
		assert.False(t, both, "kind %s", raid.Kind)
	}
}
