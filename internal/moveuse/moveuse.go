// Package moveuse renders skinning recipes as MultiUse rule pairs and
// splices them into a moveuse.dat rule file.
package moveuse

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/demonax/demonax/internal/model"
)

const (
	multiUseMarker   = `BEGIN "MultiUse"`
	bakingMarker     = `BEGIN "Baking"`
	harvestingMarker = `BEGIN "Harvesting"`
)

// Rules renders one success/failure rule pair per recipe. The success
// rule creates the reward, swaps the corpse and credits the player's
// skinning tally; the failure rule only swaps the corpse.
func Rules(recipes []model.SkinningRecipe) string {
	var sb strings.Builder
	for i, rec := range recipes {
		if i > 0 {
			sb.WriteByte('\n')
		}
		chance := strconv.FormatFloat(rec.PercentChance, 'f', -1, 64)
		fmt.Fprintf(&sb,
			"MultiUse, IsType(Obj1, %d), IsType(Obj2, %d), Random(%s) -> Create(Obj2, %d, 0), Change(Obj2, %d, 0), Effect(User, 13), IncrementSkinningValue(User, %d, 1)\n",
			rec.ToolID, rec.CorpseID, chance, rec.RewardID, rec.NextCorpseID, rec.RaceID)
		fmt.Fprintf(&sb,
			"MultiUse, IsType(Obj1, %d), IsType(Obj2, %d) -> Change(Obj2, %d, 0)",
			rec.ToolID, rec.CorpseID, rec.NextCorpseID)
	}
	return sb.String()
}

// Splice replaces everything between the MultiUse and Baking section
// markers of content with a Harvesting block holding the given rules.
func Splice(content, rules string) (string, error) {
	lines := strings.Split(content, "\n")

	multiUseIdx := -1
	bakingIdx := -1
	for i, line := range lines {
		switch {
		case multiUseIdx < 0 && strings.Contains(line, multiUseMarker):
			multiUseIdx = i
		case bakingIdx < 0 && strings.Contains(line, bakingMarker):
			bakingIdx = i
		}
	}
	if multiUseIdx < 0 {
		return "", fmt.Errorf("moveuse: %s marker not found", multiUseMarker)
	}
	if bakingIdx < 0 {
		return "", fmt.Errorf("moveuse: %s marker not found", bakingMarker)
	}
	if bakingIdx <= multiUseIdx {
		return "", fmt.Errorf("moveuse: %s appears before %s", bakingMarker, multiUseMarker)
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[:multiUseIdx+1]...)
	out = append(out, harvestingMarker)
	if rules != "" {
		out = append(out, strings.Split(rules, "\n")...)
	}
	out = append(out, "END")
	out = append(out, lines[bakingIdx:]...)
	return strings.Join(out, "\n"), nil
}

// SpliceFile rewrites path in place with the recipes' rules spliced in.
func SpliceFile(path string, recipes []model.SkinningRecipe) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read moveuse file: %w", err)
	}
	updated, err := Splice(string(content), Rules(recipes))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write moveuse file: %w", err)
	}
	return nil
}
