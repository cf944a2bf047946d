package compare

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_CapIsNeverExceeded(t *testing.T) {
	var s Selection
	for i := range 10 {
		_ = s.Select(fmt.Sprintf("study-%d", i))
		assert.LessOrEqual(t, s.Len(), MaxSelection)
	}
	assert.Equal(t, MaxSelection, s.Len())
}

func TestSelection_FourthSelectRejected(t *testing.T) {
	var s Selection
	require.NoError(t, s.Select("a"))
	require.NoError(t, s.Select("b"))
	require.NoError(t, s.Select("c"))

	err := s.Select("d")
	assert.ErrorIs(t, err, ErrSelectionFull)
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
}

func TestSelection_DuplicateSelectIsNoOp(t *testing.T) {
	var s Selection
	require.NoError(t, s.Select("a"))
	require.NoError(t, s.Select("a"))

	assert.Equal(t, 1, s.Len())
}

func TestSelection_DeselectAlwaysSucceeds(t *testing.T) {
	var s Selection
	require.NoError(t, s.Select("a"))
	require.NoError(t, s.Select("b"))

	s.Deselect("a")
	assert.Equal(t, []string{"b"}, s.IDs())

	s.Deselect("not-there")
	assert.Equal(t, []string{"b"}, s.IDs())
}

func TestSelection_CanCompareNeedsTwo(t *testing.T) {
	var s Selection
	assert.False(t, s.CanCompare())

	require.NoError(t, s.Select("a"))
	assert.False(t, s.CanCompare())

	require.NoError(t, s.Select("b"))
	assert.True(t, s.CanCompare())

	require.NoError(t, s.Select("c"))
	assert.True(t, s.CanCompare())
}

func TestSelection_ClearResets(t *testing.T) {
	var s Selection
	require.NoError(t, s.Select("a"))
	s.Clear()

	assert.Zero(t, s.Len())
	assert.NoError(t, s.Select("a"))
}

func TestSelection_RejectedSelectLeavesRoomAfterDeselect(t *testing.T) {
	var s Selection
	require.NoError(t, s.Select("a"))
	require.NoError(t, s.Select("b"))
	require.NoError(t, s.Select("c"))
	require.Error(t, s.Select("d"))

	s.Deselect("b")
	assert.NoError(t, s.Select("d"))
	assert.Equal(t, []string{"a", "c", "d"}, s.IDs())
}
