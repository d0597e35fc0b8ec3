package ingest

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAllPreservesOrder(t *testing.T) {
	paths := make([]string, 100)
	for i := range paths {
		paths[i] = fmt.Sprintf("file-%03d", i)
	}

	out, skipped := decodeAll(paths, 8, func(path string) (string, error) {
		return strings.ToUpper(path), nil
	})

	assert.Empty(t, skipped)
	require.Len(t, out, len(paths))
	for i, v := range out {
		assert.Equal(t, strings.ToUpper(paths[i]), v)
	}
}

func TestDecodeAllCollectsSkipped(t *testing.T) {
	paths := []string{"a", "bad-b", "c", "bad-d"}
	out, skipped := decodeAll(paths, 2, func(path string) (string, error) {
		if strings.HasPrefix(path, "bad-") {
			return "", errors.New("no good")
		}
		return path, nil
	})

	assert.Equal(t, []string{"a", "c"}, out)
	require.Len(t, skipped, 2)
	assert.Equal(t, "bad-b", skipped[0].Path)
	assert.Equal(t, "no good", skipped[0].Reason)
	assert.Equal(t, "bad-d", skipped[1].Path)
}

func TestDecodeAllBoundsConcurrency(t *testing.T) {
	paths := make([]string, 64)
	for i := range paths {
		paths[i] = fmt.Sprintf("f%d", i)
	}

	var inFlight, peak atomic.Int32
	_, skipped := decodeAll(paths, 3, func(path string) (struct{}, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		inFlight.Add(-1)
		return struct{}{}, nil
	})

	assert.Empty(t, skipped)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestDecodeAllEmptyInput(t *testing.T) {
	out, skipped := decodeAll(nil, 4, func(path string) (int, error) { return 0, nil })
	assert.Nil(t, out)
	assert.Nil(t, skipped)
}
