package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_Message(t *testing.T) {
	err := WrapExitError(ExitCommandError, "failed to load circuit", errors.New("no such file"))
	assert.Equal(t, "failed to load circuit: no such file", err.Error())

	bare := &ExitError{Code: ExitFailure, Message: "invalid circuit"}
	assert.Equal(t, "invalid circuit", bare.Error())
}

func TestExitError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := WrapExitError(ExitCommandError, "context", inner)
	assert.ErrorIs(t, err, inner)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "x", nil)))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "x", nil))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}
