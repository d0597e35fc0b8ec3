package decode

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/demonax/demonax/internal/gamefile"
	"github.com/demonax/demonax/internal/model"
)

var (
	npcNameRe   = regexp.MustCompile(`Name\s*=\s*"([^"]+)"`)
	typeRe      = regexp.MustCompile(`Type\s*=\s*(\d+)`)
	priceRe     = regexp.MustCompile(`Price\s*=\s*(\d+)`)
	dataRe      = regexp.MustCompile(`Data\s*=\s*(\d+)`)
	typePriceRe = regexp.MustCompile(`Type\s*=\s*(\d+).*?Price\s*=\s*(\d+)`)
)

// allVocations is the default when a teaching line names no vocation.
var allVocations = []string{"Knight", "Paladin", "Druid", "Sorcerer"}

// NPCDoc is one parsed .npc script. The file is read and split once; the
// independent extraction passes (prices, spell teaching, rune selling) walk
// the same document rather than re-reading the file.
type NPCDoc struct {
	Name        string
	AccountType string // from a -free-/-prem-/-max- file name marker
	lines       []string
}

// NPC reads and parses one .npc script.
func NPC(path string) (*NPCDoc, error) {
	text, err := gamefile.ReadLatin1(path)
	if err != nil {
		return nil, err
	}
	return NPCText(text, path), nil
}

// NPCText builds an NPCDoc from already-read script text. The NPC name
// falls back to the file stem when the script names none.
func NPCText(text, path string) *NPCDoc {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if m := npcNameRe.FindStringSubmatch(text); m != nil {
		name = m[1]
	}

	accountType := ""
	switch {
	case strings.Contains(base, "-free-"):
		accountType = "Free"
	case strings.Contains(base, "-prem-"), strings.Contains(base, "-max-"):
		accountType = "Premium"
	}

	return &NPCDoc{
		Name:        name,
		AccountType: accountType,
		lines:       strings.Split(text, "\n"),
	}
}

// Prices extracts the NPC's trade offers: every behaviour line carrying a
// Type= and Price= pair. A line mentioning "sell" is the NPC selling to the
// player; anything else is the NPC buying.
func (d *NPCDoc) Prices() []model.ItemPrice {
	var prices []model.ItemPrice
	for _, line := range d.lines {
		m := typePriceRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		mode := model.ModeBuy
		if strings.Contains(strings.ToLower(line), "sell") {
			mode = model.ModeSell
		}
		prices = append(prices, model.ItemPrice{
			ItemTypeID: mustInt(m[1]),
			NPCName:    d.Name,
			Price:      mustInt(m[2]),
			Mode:       mode,
		})
	}
	return prices
}

// SpellTeachers extracts spell teaching offers: lines mentioning buying or
// learning a spell with a Type= (spell id) and Price=. One row per taught
// vocation; an unmarked line teaches all four.
func (d *NPCDoc) SpellTeachers() []model.SpellTeacher {
	var teachers []model.SpellTeacher
	for _, line := range d.lines {
		if !strings.Contains(line, "buy the spell") && !strings.Contains(line, "learn the spell") {
			continue
		}
		spellID, ok := firstInt(typeRe, line)
		if !ok {
			continue
		}
		price, ok := firstInt(priceRe, line)
		if !ok {
			continue
		}
		for _, vocation := range teachingVocations(line) {
			teachers = append(teachers, model.SpellTeacher{
				NPCName:  d.Name,
				SpellID:  spellID,
				Vocation: vocation,
				Price:    price,
			})
		}
	}
	return teachers
}

// RuneSellers extracts rune/wand/rod sale offers. Bulk-purchase lines
// (containing the %1 placeholder) are skipped; Data= carries the charge
// count when present. An empty vocation means no restriction.
func (d *NPCDoc) RuneSellers() []model.RuneSeller {
	var sellers []model.RuneSeller
	for _, line := range d.lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "rune") && !strings.Contains(lower, "wand") && !strings.Contains(lower, "rod") {
			continue
		}
		if strings.Contains(line, "%1") {
			continue
		}
		itemID, ok := firstInt(typeRe, line)
		if !ok {
			continue
		}
		price, ok := firstInt(priceRe, line)
		if !ok {
			continue
		}
		seller := model.RuneSeller{
			NPCName:     d.Name,
			ItemTypeID:  itemID,
			Price:       price,
			Vocation:    runeVocation(lower),
			Category:    runeCategory(lower),
			AccountType: d.AccountType,
		}
		if charges, ok := firstInt(dataRe, line); ok {
			seller.Charges = &charges
		}
		sellers = append(sellers, seller)
	}
	return sellers
}

func teachingVocations(line string) []string {
	var vocations []string
	for _, v := range allVocations {
		if strings.Contains(line, v+",") || strings.Contains(strings.ToLower(line), strings.ToLower(v)+",") {
			vocations = append(vocations, v)
		}
	}
	if len(vocations) == 0 {
		return allVocations
	}
	return vocations
}

// runeVocation reads a restriction from a line prefix ('sorcerer,"wand"...')
// or an "only for <vocation>" phrase; empty means open to all.
func runeVocation(lower string) string {
	for _, v := range allVocations {
		lv := strings.ToLower(v)
		if strings.HasPrefix(lower, lv+",") || strings.Contains(lower, "only for "+lv) {
			return v
		}
	}
	return ""
}

func runeCategory(lower string) string {
	switch {
	case strings.Contains(lower, "wand"):
		return "wand"
	case strings.Contains(lower, "rod"):
		return "rod"
	default:
		return "rune"
	}
}

func firstInt(re *regexp.Regexp, line string) (int64, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return mustInt(m[1]), true
}

// mustInt parses digits already matched by a \d+ group.
func mustInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
