package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applyCorrections registers the standard scroll-owner handler, the same
// wiring ItemsHost does: apply immediately, acknowledge immediately.
func applyCorrections(p ItemsPresenter) {
	p.OnOffsetCorrection(func(off float64) {
		p.SetOffset(off)
		p.CorrectionApplied()
	})
}

func fixedFixture(t *testing.T, rows int, viewH float64) (*Items[string], *FixedPresenter) {
	t.Helper()
	src := stringItems(rows)
	p := NewFixedPresenter(src, TextTemplate(src, false), 1)
	applyCorrections(p)
	p.SetViewport(40, viewH)
	return src, p
}

func TestProjectorAddShiftsRealizedRows(t *testing.T) {
	t.Parallel()
	src, p := fixedFixture(t, 20, 5)
	require.NotEmpty(t, p.Arrange())

	c, ok := p.virt.ContainerAt(2)
	require.True(t, ok)
	require.Equal(t, "row 2", c.Widget().(*Text).GetText())

	src.InsertAt(0, "new a", "new b")

	// the container followed its item down without rebuilding
	moved, ok := p.virt.ContainerAt(4)
	require.True(t, ok)
	assert.Same(t, c, moved)
	assert.Equal(t, 22, p.Count())
	assert.Equal(t, 22.0, p.heights.Extent())

	// the anchor row (old row 0) stays visually still, so the offset
	// followed it down past the inserted rows
	assert.Equal(t, 2.0, p.Offset())
	p.Arrange()
	c2, ok := p.virt.ContainerAt(2)
	require.True(t, ok)
	assert.Equal(t, "row 0", c2.Widget().(*Text).GetText())
}

func TestProjectorRemoveKeepsAnchorRowStill(t *testing.T) {
	t.Parallel()
	src, p := fixedFixture(t, 50, 5)
	p.SetOffset(10)
	p.Arrange()

	// rows above the viewport disappear; the viewport must keep showing
	// row 10, now at index 7
	src.RemoveRange(0, 3)

	assert.Equal(t, 7.0, p.Offset())
	p.Arrange()
	c, ok := p.virt.ContainerAt(7)
	require.True(t, ok)
	assert.Equal(t, "row 10", c.Widget().(*Text).GetText())
}

func TestProjectorRemoveOfAnchorSettlesAtEdit(t *testing.T) {
	t.Parallel()
	src, p := fixedFixture(t, 50, 5)
	p.SetOffset(10)
	p.Arrange()

	// the anchor row itself is removed; the first survivor takes its place
	src.RemoveRange(8, 5)

	assert.Equal(t, 8.0, p.Offset())
	p.Arrange()
	c, ok := p.virt.ContainerAt(8)
	require.True(t, ok)
	assert.Equal(t, "row 13", c.Widget().(*Text).GetText())
}

func TestProjectorReplaceRebindsInPlace(t *testing.T) {
	t.Parallel()
	src, p := fixedFixture(t, 20, 5)
	p.Arrange()

	before, ok := p.virt.ContainerAt(2)
	require.True(t, ok)

	src.ReplaceAt(2, "replaced")

	after, ok := p.virt.ContainerAt(2)
	require.True(t, ok)
	assert.Same(t, before, after, "replace never recycles")
	assert.Equal(t, "replaced", after.Widget().(*Text).GetText())
}

func TestProjectorMoveDegradesToReset(t *testing.T) {
	t.Parallel()
	src, p := fixedFixture(t, 20, 5)
	p.Arrange()
	require.NotZero(t, p.virt.RealizedCount())

	src.Move(2, 10)

	assert.Zero(t, p.virt.RealizedCount(), "move resets realized state")
	p.Arrange()
	c, ok := p.virt.ContainerAt(0)
	require.True(t, ok)
	assert.Equal(t, "row 0", c.Widget().(*Text).GetText())
	c10, _ := p.virt.ContainerAt(2)
	assert.Equal(t, "row 3", c10.Widget().(*Text).GetText())
}

func TestProjectorDesyncFallsBackToReset(t *testing.T) {
	t.Parallel()
	_, p := fixedFixture(t, 20, 5)
	p.Arrange()
	require.NotZero(t, p.virt.RealizedCount())

	// a notification that disagrees with the source count must not be
	// trusted for incremental remapping
	p.proj.Apply(Change{Kind: ChangeAdd, Index: 0, Count: 5})

	assert.Zero(t, p.virt.RealizedCount())
	assert.Equal(t, 20, p.heights.Len(), "cache re-normalized to the source")
}

func TestProjectorStickToBottomFollowsAppends(t *testing.T) {
	t.Parallel()
	src := stringItems(50)
	p := NewFixedPresenter(src, TextTemplate(src, false), 1).StickToBottom(true)
	applyCorrections(p)
	p.SetViewport(40, 10)
	p.SetOffset(40) // the live edge
	p.Arrange()

	src.Append("tail a", "tail b", "tail c")
	assert.Equal(t, 43.0, p.Offset(), "pinned viewport follows the new end")

	// scrolled away, appends stop moving the viewport
	p.SetOffset(20)
	p.Arrange()
	src.Append("tail d")
	assert.Equal(t, 20.0, p.Offset())
}

func TestProjectorInsertAboveKeepsReaderPosition(t *testing.T) {
	t.Parallel()
	src, p := fixedFixture(t, 50, 5)
	p.SetOffset(30)
	p.Arrange()

	src.InsertAt(0, "a", "b", "c", "d", "e")

	assert.Equal(t, 35.0, p.Offset(), "inserting above pushes the offset down with the content")
	p.Arrange()
	c, ok := p.virt.ContainerAt(35)
	require.True(t, ok)
	assert.Equal(t, "row 30", c.Widget().(*Text).GetText())
}
