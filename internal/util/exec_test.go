package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteArgs(t *testing.T) {
	// GIVEN
	args := []string{"--speed", "%value%", "--label=%value%rpm"}

	// WHEN
	result := SubstituteArgs(args, ValuePlaceholder, "128")

	// THEN
	assert.Equal(t, []string{"--speed", "128", "--label=128rpm"}, result)
	assert.Equal(t, "%value%", args[1])
}

func TestSafeCmdExecution_UnknownExecutable(t *testing.T) {
	// WHEN
	_, err := SafeCmdExecution("/does/not/exist", nil, 0)

	// THEN
	assert.ErrorContains(t, err, "cannot execute /does/not/exist")
}
