package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllStyles(t *testing.T) {
	t.Parallel()

	styles := AllStyles()
	require.Len(t, styles, 5)
	assert.Equal(t, StyleMainWhiteBackground, styles[0])

	seen := make(map[string]bool)
	for _, s := range styles {
		assert.True(t, s.Valid())
		assert.NotEqual(t, string(s), s.Label(), "style %s should have a label", s)
		assert.False(t, seen[s.TaskID()], "duplicate task id %s", s.TaskID())
		assert.NotEqual(t, CopyTaskID, s.TaskID())
		seen[s.TaskID()] = true
	}

	// Mutating the returned slice must not leak into later calls.
	styles[0] = "bogus"
	assert.Equal(t, StyleMainWhiteBackground, AllStyles()[0])
}

func TestParseStyleKind(t *testing.T) {
	t.Parallel()

	style, err := ParseStyleKind("lifestyle")
	require.NoError(t, err)
	assert.Equal(t, StyleLifestyle, style)

	_, err = ParseStyleKind("copy")
	assert.True(t, errors.Is(err, ErrInvalidStyle))
}

func TestTaskStatus(t *testing.T) {
	t.Parallel()

	assert.False(t, TaskStatusIdle.Settled())
	assert.False(t, TaskStatusPending.Settled())
	assert.True(t, TaskStatusSucceeded.Settled())
	assert.True(t, TaskStatusFailed.Retryable())
	assert.False(t, TaskStatusPending.Retryable())
	assert.False(t, TaskStatus("loading").Valid())
}
