package decode

import (
	"path/filepath"
	"strings"

	"github.com/demonax/demonax/internal/gamefile"
	"github.com/demonax/demonax/internal/model"
	"github.com/demonax/demonax/internal/structtext"
)

const secondsPerDay = 86400

// waveWords are the spelled-out wave counts a "# Process:" comment may name.
var waveWords = []string{
	"one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "ten",
}

// Raid decodes one .evt event definition. The raid name is the file stem.
// A cyclic raid keeps only its day interval, a one-time raid only its second
// interval; spawn composition is the ordered (race, min, max) sequence as
// written, never collapsed.
func Raid(path string) (*model.Raid, error) {
	text, err := gamefile.ReadLatin1(path)
	if err != nil {
		return nil, err
	}
	return RaidText(text, path)
}

// RaidText is Raid over already-read file text.
func RaidText(text, path string) (*model.Raid, error) {
	doc, err := structtext.Parse(text)
	if err != nil {
		return nil, fileErr(path, "parse", err)
	}

	raid := &model.Raid{
		Name:            strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		WaveDescription: waveDescription(text),
	}

	kind, _ := doc.Str("Type")
	interval, hasInterval := doc.Int("Interval")
	if kind == model.RaidCyclic {
		raid.Kind = model.RaidCyclic
		if hasInterval {
			days := float64(interval) / secondsPerDay
			raid.IntervalDays = &days
		}
	} else {
		raid.Kind = model.RaidOneTime
		if hasInterval {
			seconds := interval
			raid.IntervalSeconds = &seconds
		}
	}

	var messages []string
	for _, v := range doc.All("Message") {
		if v.Kind == structtext.KindString || v.Kind == structtext.KindWord {
			messages = append(messages, v.Str)
		}
	}
	raid.Message = strings.Join(messages, "; ")

	// Race/Count pairs arrive as alternating repeated keys, in wave order.
	races := doc.All("Race")
	counts := doc.All("Count")
	for i := 0; i < len(races) && i < len(counts); i++ {
		if races[i].Kind != structtext.KindInt {
			continue
		}
		minMax := counts[i].Ints()
		if len(minMax) < 2 {
			continue
		}
		raid.Spawns = append(raid.Spawns, model.Spawn{
			RaceID: races[i].Int,
			Min:    minMax[0],
			Max:    minMax[1],
		})
	}

	return raid, nil
}

// waveDescription pulls the spelled-out wave count from a "# Process:"
// comment line, "unknown" when absent.
func waveDescription(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			continue
		}
		lower := strings.ToLower(trimmed)
		if !strings.Contains(lower, "process:") {
			continue
		}
		for _, w := range waveWords {
			if strings.Contains(lower, w) {
				return w
			}
		}
		return "unknown"
	}
	return "unknown"
}
