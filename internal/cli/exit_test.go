package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitErrorMessage(t *testing.T) {
	e := NewExitError(ExitCommandError, "bad path")
	assert.Equal(t, "bad path", e.Error())

	wrapped := WrapExitError(ExitFailure, "stage failed", errors.New("disk full"))
	assert.Equal(t, "stage failed: disk full", wrapped.Error())
	assert.Equal(t, "disk full", errors.Unwrap(wrapped).Error())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "x")))

	// Wrapped deeper in a chain, still found.
	deep := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "inner", nil))
	assert.Equal(t, ExitCommandError, GetExitCode(deep))

	// Plain errors default to the generic failure code.
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}
