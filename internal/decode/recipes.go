package decode

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/demonax/demonax/internal/model"
)

var recipeHeader = []string{
	"tool_id", "corpse_id", "next_corpse_id", "percent_chance", "reward_id", "race_id",
}

// Recipes decodes the skinning recipe CSV. Duplicate (tool, corpse) pairs
// are legal here; the store resolves them by upsert.
func Recipes(r io.Reader, path string) ([]model.SkinningRecipe, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fileErr(path, "header", err)
	}
	if !headerMatches(header) {
		return nil, fileErr(path, fmt.Sprintf("unexpected header %v", header), nil)
	}

	var recipes []model.SkinningRecipe
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			return recipes, nil
		}
		if err != nil {
			return nil, fileErr(path, fmt.Sprintf("line %d", line), err)
		}

		ints := make([]int64, len(recipeHeader))
		var chance float64
		for i, field := range record {
			field = strings.TrimSpace(field)
			if i == 3 {
				chance, err = strconv.ParseFloat(field, 64)
			} else {
				ints[i], err = strconv.ParseInt(field, 10, 64)
			}
			if err != nil {
				return nil, fileErr(path, fmt.Sprintf("line %d field %s", line, recipeHeader[i]), err)
			}
		}

		recipes = append(recipes, model.SkinningRecipe{
			ToolID:        ints[0],
			CorpseID:      ints[1],
			NextCorpseID:  ints[2],
			PercentChance: chance,
			RewardID:      ints[4],
			RaceID:        ints[5],
		})
	}
}

func headerMatches(header []string) bool {
	if len(header) != len(recipeHeader) {
		return false
	}
	for i, h := range header {
		if strings.TrimSpace(strings.ToLower(h)) != recipeHeader[i] {
			return false
		}
	}
	return true
}
