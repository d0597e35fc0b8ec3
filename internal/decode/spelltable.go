package decode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/demonax/demonax/internal/model"
)

const initSpellsAnchor = "static void InitSpells"

var (
	createSpellRe = regexp.MustCompile(`Spell\s*=\s*CreateSpell\((\d+),\s*(.+?)\);`)
	spellPropRe   = regexp.MustCompile(`^\s*Spell->(\w+)\s*=\s*(.+?);`)
	quotedRe      = regexp.MustCompile(`"([^"]+)"`)
)

// runeTypeBase maps a RuneNr onto the rune's item type id.
const runeTypeBase = 3147

// premiumFlag marks spells restricted to premium accounts.
const premiumFlag = 0x02

// SpellTable mines spell definitions out of the magic subsystem's C++
// source. This is a pattern scan over syntactic anchors, not a parser: it
// finds CreateSpell table openers after InitSpells and collects the
// Spell-><Field> assignments that follow each one, until the next opener or
// a blank-line pair. A malformed table is skipped with a reason and the
// scan continues.
func SpellTable(text, path string) ([]model.Spell, []string, error) {
	start := strings.Index(text, initSpellsAnchor)
	if start < 0 {
		return nil, nil, fileErr(path, "InitSpells function not found", nil)
	}
	lines := strings.Split(text[start:], "\n")

	var (
		spells  []model.Spell
		skipped []string
	)

	for i := 0; i < len(lines); i++ {
		m := createSpellRe.FindStringSubmatch(lines[i])
		if m == nil {
			if strings.Contains(lines[i], "CreateSpell(") {
				skipped = append(skipped, fmt.Sprintf("line %d: malformed CreateSpell", i+1))
			}
			continue
		}

		id, _ := strconv.ParseInt(m[1], 10, 64)
		spell := model.Spell{
			ID:    id,
			Name:  fmt.Sprintf("Spell %d", id),
			Words: spellWords(m[2]),
		}

		var runeGr, runeNr int64
		next := i + 1
		for ; next < len(lines); next++ {
			line := strings.TrimSpace(lines[next])
			if strings.Contains(line, "CreateSpell") {
				break
			}
			if line == "" && next+1 < len(lines) && strings.TrimSpace(lines[next+1]) == "" {
				break
			}
			pm := spellPropRe.FindStringSubmatch(lines[next])
			if pm == nil {
				continue
			}
			value := strings.TrimSpace(pm[2])
			switch pm[1] {
			case "Mana":
				spell.Mana = parseIntDefault(value, 0)
			case "Level":
				spell.Level = parseIntDefault(value, 0)
			case "RuneGr":
				runeGr = parseIntDefault(value, 0)
			case "RuneNr":
				runeNr = parseIntDefault(value, 0)
			case "Flags":
				spell.Flags = parseIntDefault(value, 0)
			case "Amount":
				if n, err := strconv.ParseInt(value, 10, 64); err == nil {
					spell.Charges = &n
				}
			case "RuneLevel":
				if n, err := strconv.ParseInt(value, 10, 64); err == nil {
					spell.MagicLevel = &n
				}
			case "SoulPoints":
				spell.SoulPoints = parseIntDefault(value, 0)
			case "Comment":
				if cm := quotedRe.FindStringSubmatch(value); cm != nil {
					spell.Name = cm[1]
				}
			}
		}
		i = next - 1

		if runeGr != 0 {
			spell.IsRune = true
			runeType := runeTypeBase + runeNr
			spell.RuneTypeID = &runeType
		}
		spell.Premium = spell.Flags&premiumFlag != 0
		spell.Category = classifySpell(spell.Flags, spell.Words)

		spells = append(spells, spell)
	}

	return spells, skipped, nil
}

// spellWords joins the quoted fragments of a CreateSpell parameter list
// into the incantation ("exura", "adori vita vis").
func spellWords(params string) string {
	var words []string
	for _, m := range quotedRe.FindAllStringSubmatch(params, -1) {
		if m[1] != "" {
			words = append(words, m[1])
		}
	}
	return strings.Join(words, " ")
}

// classifySpell buckets a spell by its flags word and incantation.
// Aggressive (0x01) wins over everything; mass/field words mark it an area
// spell. 0x08 or an "ura" word is healing, "evo res" summons, "hur" (but
// not the death variant) is support, light/conjure words are utility.
func classifySpell(flags int64, words string) string {
	if flags&0x01 != 0 {
		if strings.Contains(words, "mas") || strings.Contains(words, "grav") {
			return "area"
		}
		return "attack"
	}
	if flags&0x08 != 0 || strings.Contains(words, "ura") {
		return "healing"
	}
	if strings.Contains(words, "evo res") {
		return "summon"
	}
	if strings.Contains(words, "hur") && !strings.Contains(words, "mort") {
		return "support"
	}
	if strings.Contains(words, "lux") || strings.Contains(words, "evo") {
		return "utility"
	}
	return "other"
}

func parseIntDefault(s string, def int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return n
}
