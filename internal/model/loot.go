package model

import (
	"errors"
	"fmt"
	"math"
)

// SchemaViolation reports a value that would break a declared range or
// uniqueness invariant. The offending row is dropped and counted; sibling
// rows proceed.
type SchemaViolation struct {
	Entity string
	Field  string
	Value  int64
	Reason string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("%s.%s = %d: %s", e.Entity, e.Field, e.Value, e.Reason)
}

// IsSchemaViolation reports whether err is (or wraps) a SchemaViolation.
func IsSchemaViolation(err error) bool {
	var sv *SchemaViolation
	return errors.As(err, &sv)
}

// LootPercent converts a raw loot chance (1-999, higher is more common)
// into a drop percentage: (raw + 1) / 999 * 100. Rare drops below 1% keep
// one decimal place; everything else rounds to a whole percent. Values
// outside [1, 999] are a schema violation.
func LootPercent(chanceRaw int64) (float64, error) {
	if chanceRaw < 1 || chanceRaw > 999 {
		return 0, &SchemaViolation{
			Entity: "creature_loot",
			Field:  "chance_raw",
			Value:  chanceRaw,
			Reason: "outside [1, 999]",
		}
	}
	p := float64(chanceRaw+1) / 999 * 100
	if p < 1 {
		return math.Round(p*10) / 10, nil
	}
	return math.Round(p), nil
}

// DeriveLoot builds a loot row with its derived columns. Average value is
// the expected items per kill: percent/100 times the mean of a uniform
// 1..count roll.
func DeriveLoot(itemTypeID, count, chanceRaw int64) (LootEntry, error) {
	percent, err := LootPercent(chanceRaw)
	if err != nil {
		return LootEntry{}, err
	}
	avg := percent / 100 * float64(1+count) / 2
	return LootEntry{
		ItemTypeID:   itemTypeID,
		Count:        count,
		ChanceRaw:    chanceRaw,
		Percent:      percent,
		AverageValue: avg,
	}, nil
}
