package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/parrot/internal/core/snapshot"
)

func testSnaps() []*snapshot.Snapshot {
	return []*snapshot.Snapshot{
		{Name: "alpha", Cmd: "echo a", Tags: []string{"smoke"}},
		{Name: "beta", Cmd: "echo b", Tags: []string{"smoke", "slow"}},
		{Name: "gamma", Cmd: "ls /tmp"},
	}
}

func TestNewView(t *testing.T) {
	t.Run("cursor starts on first entry", func(t *testing.T) {
		v := NewView(testSnaps())
		assert.Equal(t, 3, v.Len())
		assert.Equal(t, 0, v.SelectedIndex())
		assert.Equal(t, "alpha", v.Selected().Name)
	})

	t.Run("empty collection has no selection", func(t *testing.T) {
		v := NewView(nil)
		assert.Equal(t, 0, v.Len())
		assert.Equal(t, -1, v.SelectedIndex())
		assert.Nil(t, v.Selected())
	})
}

func TestView_CursorMovement(t *testing.T) {
	v := NewView(testSnaps())

	v.Down()
	assert.Equal(t, "beta", v.Selected().Name)
	v.Down()
	assert.Equal(t, "gamma", v.Selected().Name)

	// Saturates at the bottom, no wraparound.
	v.Down()
	assert.Equal(t, "gamma", v.Selected().Name)

	v.Up()
	v.Up()
	assert.Equal(t, "alpha", v.Selected().Name)

	// Saturates at the top.
	v.Up()
	assert.Equal(t, "alpha", v.Selected().Name)
}

func TestView_CursorMovementOnEmptyView(t *testing.T) {
	v := NewView(nil)
	v.Up()
	v.Down()
	assert.Nil(t, v.Selected())
}

func TestView_ApplyFilter(t *testing.T) {
	t.Run("narrows visible sequence", func(t *testing.T) {
		v := NewView(testSnaps())
		v.ApplyFilter(Predicate{Kind: ByTag, Value: "smoke"})

		require.Equal(t, 2, v.Len())
		names := []string{v.Visible()[0].Name, v.Visible()[1].Name}
		assert.Equal(t, []string{"alpha", "beta"}, names)
	})

	t.Run("filters stack with AND semantics", func(t *testing.T) {
		v := NewView(testSnaps())
		v.ApplyFilter(Predicate{Kind: ByTag, Value: "smoke"})
		v.ApplyFilter(Predicate{Kind: ByTag, Value: "slow"})

		require.Equal(t, 1, v.Len())
		assert.Equal(t, "beta", v.Selected().Name)
	})

	t.Run("selection kept by identity when still visible", func(t *testing.T) {
		v := NewView(testSnaps())
		v.Down() // select beta
		v.ApplyFilter(Predicate{Kind: ByTag, Value: "smoke"})

		assert.Equal(t, "beta", v.Selected().Name)
		assert.Equal(t, 1, v.SelectedIndex())
	})

	t.Run("selection falls back to first visible", func(t *testing.T) {
		v := NewView(testSnaps())
		v.Down()
		v.Down() // select gamma
		v.ApplyFilter(Predicate{Kind: ByTag, Value: "smoke"})

		assert.Equal(t, "alpha", v.Selected().Name)
		assert.Equal(t, 0, v.SelectedIndex())
	})

	t.Run("zero matches leaves no selection", func(t *testing.T) {
		v := NewView(testSnaps())
		v.ApplyFilter(Predicate{Kind: ByTag, Value: "nope"})

		assert.Equal(t, 0, v.Len())
		assert.Nil(t, v.Selected())
		assert.Equal(t, -1, v.SelectedIndex())
	})
}

func TestView_ClearFilters(t *testing.T) {
	snaps := testSnaps()
	v := NewView(snaps)
	v.ApplyFilter(Predicate{Kind: ByTag, Value: "nope"})
	require.Equal(t, 0, v.Len())

	v.ClearFilters()

	assert.Equal(t, len(snaps), v.Len())
	assert.False(t, v.Filtered())
	assert.Equal(t, 0, v.SelectedIndex())
	assert.Equal(t, "alpha", v.Selected().Name)
}

func TestView_FilteringNeverMutatesSnapshots(t *testing.T) {
	snaps := testSnaps()
	v := NewView(snaps)
	v.ApplyFilter(Predicate{Kind: BySubstring, Value: "echo"})
	v.Down()
	v.ClearFilters()

	assert.Equal(t, "alpha", snaps[0].Name)
	assert.Equal(t, snapshot.StatusUnknown, snaps[0].Status)
	assert.Equal(t, []string{"smoke", "slow"}, snaps[1].Tags)
}

func TestView_SharedHandles(t *testing.T) {
	// Mutating through the selected handle is visible through the
	// backing collection: the view holds references, not copies.
	snaps := testSnaps()
	v := NewView(snaps)

	v.Selected().Status = snapshot.StatusFailed
	assert.Equal(t, snapshot.StatusFailed, snaps[0].Status)

	// Status filters observe the mutation.
	v.ApplyFilter(Predicate{Kind: ByStatus, Status: snapshot.StatusFailed})
	require.Equal(t, 1, v.Len())
	assert.Equal(t, "alpha", v.Selected().Name)
}
