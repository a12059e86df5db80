package loom

import "math"

// Placement is one realized row positioned in content coordinates. Top and
// Height come from the height table as of this arrange pass.
type Placement struct {
	Index     int
	Top       float64
	Height    float64
	Container *Container
}

// ItemsPresenter is the capability contract shared by the fixed- and
// variable-height presentation strategies. The owning control picks a
// strategy at construction; callers never branch on the concrete type.
//
// The scroll owner feeds viewport size and offset in, reads the logical
// content extent back out for its scrollbar, and runs Arrange once per
// render pass. When a pass refines cached heights, the presenter raises an
// offset-correction request through the registered callback; the owner
// applies it with SetOffset and acknowledges with CorrectionApplied before
// the next frame.
type ItemsPresenter interface {
	SetViewport(width, height float64)
	SetOffset(y float64)
	Offset() float64
	Extent() (width, height float64)
	Count() int

	VisibleRange() (first, lastExclusive int)
	Arrange() []Placement

	ScrollIntoView(index int) bool
	OnOffsetCorrection(fn func(offset float64))
	CorrectionApplied()

	Refresh()
	Dispose()
}

// presenterBase carries everything the two strategies share: the
// virtualizer, the projector, the corrector, the sequencer and the arrange
// pass itself. Strategies differ only in the height index they plug in and
// whether rows get measured.
type presenterBase struct {
	source  ItemSource
	heights heightIndex
	virt    *Virtualizer
	anchor  *AnchorCorrector
	proj    *changeProjector
	seq     scrollSeq

	offset       float64
	viewW, viewH float64
	overscan     float64

	measureRows bool
	measure     MeasureFunc

	onCorrection func(float64)
	unsubscribe  func()
	disposed     bool
}

func (b *presenterBase) init(source ItemSource, template ItemTemplate, heights heightIndex, measureRows bool) {
	b.source = source
	b.heights = heights
	b.virt = NewVirtualizer(source, template, nil)
	b.measureRows = measureRows
	b.measure = MeasureView
	b.anchor = newAnchorCorrector(b, func(off float64) {
		if b.onCorrection != nil {
			b.onCorrection(off)
		}
	})
	b.proj = &changeProjector{
		source:  source,
		heights: heights,
		virt:    b.virt,
		anchor:  b.anchor,
		scroll:  b,
	}
	b.heights.EnsureCapacity(source.Count())
	b.unsubscribe = source.Subscribe(b.proj.Apply)
}

// scrollState implementation consumed by the corrector and sequencer.

func (b *presenterBase) Offset() float64         { return b.offset }
func (b *presenterBase) ViewportHeight() float64 { return b.viewH }
func (b *presenterBase) contentExtent() float64  { return b.heights.Extent() }

// Count returns the item count of the underlying source.
func (b *presenterBase) Count() int { return b.source.Count() }

// Extent returns the logical content size the scroll owner sizes its
// scrollbar from.
func (b *presenterBase) Extent() (width, height float64) {
	return b.viewW, b.heights.Extent()
}

// SetViewport updates the viewport size. A width change invalidates every
// cached height for measuring strategies, since wrapped rows resize with
// their width.
func (b *presenterBase) SetViewport(width, height float64) {
	width = sanitizeOffset(width)
	height = sanitizeOffset(height)
	if b.measureRows && width != b.viewW {
		b.heights.InvalidateAll()
		b.proj.dataChanged = true
	}
	b.viewW = width
	b.viewH = height
}

// SetOffset moves the viewport, clamped to the valid content range.
func (b *presenterBase) SetOffset(y float64) {
	b.offset = b.clampOffset(sanitizeOffset(y))
}

func (b *presenterBase) clampOffset(y float64) float64 {
	return math.Min(math.Max(0, y), math.Max(0, b.heights.Extent()-b.viewH))
}

// OnOffsetCorrection registers the scroll owner's correction handler.
func (b *presenterBase) OnOffsetCorrection(fn func(offset float64)) { b.onCorrection = fn }

// CorrectionApplied acknowledges a correction, re-arming the corrector.
func (b *presenterBase) CorrectionApplied() { b.anchor.Applied() }

// VisibleRange resolves the half-open row range the current offset and
// viewport cover, including overscan.
func (b *presenterBase) VisibleRange() (first, lastExclusive int) {
	first, lastExclusive, _ = b.heights.VisibleRange(b.offset, b.viewH, b.overscan)
	return first, lastExclusive
}

// ScrollIntoView requests that a row be brought fully inside the viewport.
// The request survives until the row's measured bounds actually are inside;
// with estimated heights this takes more than one pass. Returns false for
// out-of-range indices.
func (b *presenterBase) ScrollIntoView(index int) bool {
	if index < 0 || index >= b.source.Count() {
		return false
	}
	b.seq.request(index)
	if b.viewH > 0 {
		b.seq.step(b.heights, b, b.anchor)
	}
	return true
}

// Refresh drops cached heights and forces a rebind of realized rows on the
// next arrange pass. Hosts call it after template or style changes.
func (b *presenterBase) Refresh() {
	b.heights.InvalidateAll()
	b.proj.dataChanged = true
}

// Dispose unsubscribes from the source and recycles every container. The
// presenter must not be used afterwards.
func (b *presenterBase) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	if b.unsubscribe != nil {
		b.unsubscribe()
	}
	b.virt.RecycleAll()
}

// Arrange runs one render pass: resolve the visible range, realize and
// recycle containers, measure what needs measuring, and issue an offset
// correction if refinement moved the anchor. The returned placements are in
// content coordinates against the refined height table.
func (b *presenterBase) Arrange() []Placement {
	if b.disposed || b.viewH <= 0 {
		return nil
	}
	count := b.source.Count()
	b.heights.EnsureCapacity(count)
	b.offset = b.clampOffset(b.offset)
	if count == 0 {
		b.virt.RecycleAll()
		return nil
	}

	rebind := b.proj.consumeDataChanged()
	first, lastEx, _ := b.heights.VisibleRange(b.offset, b.viewH, b.overscan)

	// capture the anchor before measurement can move anything under it
	var m anchorMark
	if b.measureRows {
		idx := b.heights.IndexAt(b.offset)
		m = b.anchor.mark(idx, b.heights.OffsetOf(idx))
	}

	pass := b.virt.BeginPass(rebind)
	pass.RecycleOutside(first, lastEx)

	changed := false
	store, _ := b.heights.(*HeightStore)
	for i := first; i < lastEx; i++ {
		c := pass.Realize(i)
		if c == nil {
			continue
		}
		if r, ok := c.widget.(Resizable); ok {
			r.SetWidth(int(b.viewW))
		}
		if b.measureRows && store != nil && (c.needsMeasure || !store.Known(i)) {
			if store.Set(i, b.measure(c.widget)) {
				changed = true
			}
			c.needsMeasure = false
		}
	}
	pass.End()

	if changed && m.valid {
		b.anchor.Restore(m, b.heights.OffsetOf(m.index))
	}

	// pending scroll-into-view re-evaluates against the refined table
	b.seq.step(b.heights, b, b.anchor)

	placements := make([]Placement, 0, lastEx-first)
	for i := first; i < lastEx; i++ {
		c, ok := b.virt.ContainerAt(i)
		if !ok {
			continue
		}
		placements = append(placements, Placement{
			Index:     i,
			Top:       b.heights.OffsetOf(i),
			Height:    b.heights.Get(i),
			Container: c,
		})
	}
	return placements
}
