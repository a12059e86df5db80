package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemsNotifications(t *testing.T) {
	t.Parallel()
	items := NewItems(func(s string) string { return s })
	var got []Change
	cancel := items.Subscribe(func(c Change) { got = append(got, c) })

	items.SetAll([]string{"a", "b", "c"})
	items.Append("d", "e")
	items.InsertAt(1, "x")
	items.RemoveRange(0, 2)
	items.ReplaceAt(0, "y")
	items.Move(0, 3)

	require.Len(t, got, 6)
	assert.Equal(t, Change{Kind: ChangeReset}, got[0])
	assert.Equal(t, Change{Kind: ChangeAdd, Index: 3, Count: 2}, got[1])
	assert.Equal(t, Change{Kind: ChangeAdd, Index: 1, Count: 1}, got[2])
	assert.Equal(t, Change{Kind: ChangeRemove, Index: 0, Count: 2}, got[3])
	assert.Equal(t, Change{Kind: ChangeReplace, Index: 0, Count: 1}, got[4])
	assert.Equal(t, Change{Kind: ChangeMove, Index: 3, Count: 1, OldIndex: 0}, got[5])

	cancel()
	items.Append("z")
	assert.Len(t, got, 6, "cancelled listener hears nothing")
}

func TestItemsOutOfRangeEditsAreNoOps(t *testing.T) {
	t.Parallel()
	items := NewItems(func(s string) string { return s })
	items.SetAll([]string{"a", "b", "c"})
	fired := 0
	items.Subscribe(func(Change) { fired++ })

	items.RemoveRange(5, 2)
	items.RemoveRange(0, 0)
	items.ReplaceAt(9, "x")
	items.Move(0, 0)
	items.Move(-1, 2)
	items.Append()

	assert.Zero(t, fired)
	assert.Equal(t, 3, items.Count())
}

func TestItemsClamping(t *testing.T) {
	t.Parallel()
	items := NewItems(func(s string) string { return s })
	items.SetAll([]string{"a", "b", "c", "d"})

	items.RemoveRange(-2, 4) // clamps to [0, 2)
	assert.Equal(t, []string{"c", "d"}, items.All())

	items.InsertAt(99, "e") // clamps to the end
	assert.Equal(t, "e", items.At(2))

	items.ReplaceAt(1, "X", "Y", "Z") // tail truncated to the range
	assert.Equal(t, []string{"c", "X", "Y"}, items.All())
}

func TestItemsAccessors(t *testing.T) {
	t.Parallel()
	items := NewItems(func(s string) string { return "text:" + s })
	items.SetAll([]string{"a", "b"})

	assert.Equal(t, "text:b", items.Text(1))
	assert.Equal(t, "", items.Text(5))
	assert.Nil(t, items.Item(5))
	assert.Equal(t, "a", items.Item(0))
	assert.Equal(t, "", items.At(-1))
}

func TestItemsMove(t *testing.T) {
	t.Parallel()
	items := NewItems(func(s string) string { return s })
	items.SetAll([]string{"a", "b", "c", "d"})

	items.Move(0, 2)
	assert.Equal(t, []string{"b", "c", "a", "d"}, items.All())

	items.Move(3, 0)
	assert.Equal(t, []string{"d", "b", "c", "a"}, items.All())
}

func TestItemsMoveRange(t *testing.T) {
	t.Parallel()
	items := NewItems(func(s string) string { return s })
	items.SetAll([]string{"a", "b", "c", "d", "e"})

	var got Change
	items.Subscribe(func(c Change) { got = c })

	items.MoveRange(0, 2, 2)
	assert.Equal(t, []string{"c", "d", "a", "b", "e"}, items.All())
	assert.Equal(t, Change{Kind: ChangeMove, Index: 2, Count: 2, OldIndex: 0}, got)

	items.MoveRange(3, 5, 0) // range runs past the end, no-op
	assert.Equal(t, []string{"c", "d", "a", "b", "e"}, items.All())
}
