package decode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demonax/demonax/internal/model"
)

const skinningCSV = `tool_id,corpse_id,next_corpse_id,percent_chance,reward_id,race_id
5908,4011,4012,45.5,5878,34
5908,4259,4260,30,5876,51
5908,4011,4012,50,5878,34
`

func TestRecipes(t *testing.T) {
	recipes, err := Recipes(strings.NewReader(skinningCSV), "skinning.csv")
	require.NoError(t, err)
	require.Len(t, recipes, 3)

	assert.Equal(t, model.SkinningRecipe{
		ToolID:        5908,
		CorpseID:      4011,
		NextCorpseID:  4012,
		PercentChance: 45.5,
		RewardID:      5878,
		RaceID:        34,
	}, recipes[0])

	// The duplicate (tool, corpse) pair decodes fine; the store upserts it.
	assert.Equal(t, recipes[0].ToolID, recipes[2].ToolID)
	assert.Equal(t, recipes[0].CorpseID, recipes[2].CorpseID)
	assert.Equal(t, 50.0, recipes[2].PercentChance)
}

func TestRecipesBadHeader(t *testing.T) {
	_, err := Recipes(strings.NewReader("a,b,c\n1,2,3\n"), "skinning.csv")
	require.Error(t, err)
	assert.True(t, IsFileError(err))
}

func TestRecipesBadField(t *testing.T) {
	csv := "tool_id,corpse_id,next_corpse_id,percent_chance,reward_id,race_id\n5908,x,4012,45.5,5878,34\n"
	_, err := Recipes(strings.NewReader(csv), "skinning.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corpse_id")
}

func TestRecipesEmptyFile(t *testing.T) {
	_, err := Recipes(strings.NewReader(""), "skinning.csv")
	require.Error(t, err)
}
