package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const magicCC = `// magic subsystem
#include "magic.hh"

static void InitSpellList(void){
	// unrelated
}

static void InitSpells(void){
	TSpell *Spell;

	Spell = CreateSpell(1, "exura");
	Spell->Mana = 25;
	Spell->Level = 9;
	Spell->Flags = 8;
	Spell->Comment = "Light Healing";

	Spell = CreateSpell(2, "adori", "vita", "vis");
	Spell->Mana = 880;
	Spell->Level = 27;
	Spell->RuneGr = 2;
	Spell->RuneNr = 13;
	Spell->Amount = 1;
	Spell->RuneLevel = 4;
	Spell->SoulPoints = 5;
	Spell->Flags = 3;
	Spell->Comment = "Sudden Death Rune";

	Spell = CreateSpell(bad id here);

	Spell = CreateSpell(3, "utani", "hur");
	Spell->Mana = 60;
	Spell->Level = 14;
	Spell->Flags = 0;
	Spell->Comment = "Haste";


	UnrelatedCall();
}
`

func TestSpellTable(t *testing.T) {
	spells, skipped, err := SpellTable(magicCC, "magic.cc")
	require.NoError(t, err)
	require.Len(t, spells, 3)
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0], "malformed CreateSpell")

	heal := spells[0]
	assert.Equal(t, int64(1), heal.ID)
	assert.Equal(t, "Light Healing", heal.Name)
	assert.Equal(t, "exura", heal.Words)
	assert.Equal(t, int64(25), heal.Mana)
	assert.Equal(t, int64(9), heal.Level)
	assert.False(t, heal.IsRune)
	assert.Nil(t, heal.RuneTypeID)
	assert.False(t, heal.Premium)
	assert.Equal(t, "healing", heal.Category)

	sd := spells[1]
	assert.Equal(t, int64(2), sd.ID)
	assert.Equal(t, "adori vita vis", sd.Words)
	assert.True(t, sd.IsRune)
	require.NotNil(t, sd.RuneTypeID)
	assert.Equal(t, int64(3147+13), *sd.RuneTypeID)
	require.NotNil(t, sd.Charges)
	assert.Equal(t, int64(1), *sd.Charges)
	require.NotNil(t, sd.MagicLevel)
	assert.Equal(t, int64(4), *sd.MagicLevel)
	assert.Equal(t, int64(5), sd.SoulPoints)
	assert.True(t, sd.Premium) // flags 0x02
	assert.Equal(t, "attack", sd.Category)

	haste := spells[2]
	assert.Equal(t, "Haste", haste.Name)
	assert.Equal(t, "utani hur", haste.Words)
	assert.Equal(t, "support", haste.Category)

	assertGolden(t, "spells", spells)
}

func TestSpellTableMissingAnchor(t *testing.T) {
	_, _, err := SpellTable("int main(void){return 0;}", "magic.cc")
	require.Error(t, err)
	assert.True(t, IsFileError(err))
}

func TestClassifySpell(t *testing.T) {
	tests := []struct {
		name  string
		flags int64
		words string
		want  string
	}{
		{"aggressive single target", 0x01, "exori", "attack"},
		{"aggressive mass", 0x01, "exevo mas hur", "area"},
		{"aggressive field", 0x01, "adevo grav flam", "area"},
		{"healing flag", 0x08, "exana pox", "healing"},
		{"healing words", 0, "exura gran", "healing"},
		{"summon", 0, "utevo res", "summon"},
		{"haste", 0, "utani hur", "support"},
		{"death words are not support", 0, "adori mort hur", "other"},
		{"light", 0, "utevo lux", "utility"},
		{"conjure", 0, "exevo pan", "utility"},
		{"unclassified", 0, "omina", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifySpell(tt.flags, tt.words))
		})
	}
}
