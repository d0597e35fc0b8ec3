package store

import (
	"encoding/json"
	"fmt"
)

// marshalJSON encodes a blob column value. Map keys serialize sorted, so
// re-ingesting unchanged input produces byte-identical columns. A nil
// collection encodes as the given empty literal, never SQL NULL.
func marshalJSON(v any, empty string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal blob: %w", err)
	}
	s := string(b)
	if s == "null" {
		return empty, nil
	}
	return s, nil
}
