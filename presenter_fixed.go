package loom

import "math"

// uniformHeights is the fixed-height strategy's height index: every row
// shares one height, so index<->offset conversion is O(1) arithmetic. It
// sits behind the same contract as HeightStore and must produce identical
// results whenever the store's heights are all equal.
type uniformHeights struct {
	count     int
	rowHeight float64
}

func (u *uniformHeights) Len() int { return u.count }

func (u *uniformHeights) Get(int) float64 { return u.rowHeight }

// Known implements knownHeights; fixed rows never need measurement.
func (u *uniformHeights) Known(int) bool { return true }

func (u *uniformHeights) Extent() float64 { return float64(u.count) * u.rowHeight }

func (u *uniformHeights) OffsetOf(index int) float64 {
	if index < 0 {
		index = 0
	}
	if index > u.count {
		index = u.count
	}
	return float64(index) * u.rowHeight
}

func (u *uniformHeights) IndexAt(offset float64) int {
	if u.count == 0 {
		return 0
	}
	offset = sanitizeOffset(offset)
	if offset <= 0 {
		return 0
	}
	if offset >= u.Extent() {
		return u.count - 1
	}
	return int(math.Floor(offset / u.rowHeight))
}

func (u *uniformHeights) VisibleRange(offset, viewport, overscan float64) (first, lastExclusive int, top float64) {
	if u.count == 0 {
		return 0, 0, 0
	}
	offset = sanitizeOffset(offset)
	if viewport < 0 || math.IsNaN(viewport) || math.IsInf(viewport, 0) {
		viewport = 0
	}
	first = u.IndexAt(math.Max(0, offset-overscan))
	lastExclusive = u.IndexAt(offset+viewport+overscan) + 1
	if lastExclusive > u.count {
		lastExclusive = u.count
	}
	return first, lastExclusive, u.OffsetOf(first)
}

func (u *uniformHeights) EnsureCapacity(count int) {
	if count < 0 {
		count = 0
	}
	u.count = count
}

func (u *uniformHeights) InsertAt(_, count int) {
	if count > 0 {
		u.count += count
	}
}

func (u *uniformHeights) RemoveAt(index, count int) {
	if index < 0 {
		count += index
		index = 0
	}
	if index >= u.count || count <= 0 {
		return
	}
	if index+count > u.count {
		count = u.count - index
	}
	u.count -= count
}

// heights are intrinsic, nothing to invalidate
func (u *uniformHeights) InvalidateRange(int, int) {}
func (u *uniformHeights) InvalidateAll()           {}

// FixedPresenter virtualizes a collection whose rows all share one height.
// Range resolution is pure arithmetic with no per-row bookkeeping; recycling,
// change projection, anchor correction and scroll-into-view behave exactly
// like the variable strategy.
type FixedPresenter struct {
	presenterBase
	uniform *uniformHeights
}

// NewFixedPresenter creates a fixed-height presenter. rowHeight is in engine
// units (terminal hosts: rows); non-positive or non-finite values fall back
// to 1.
func NewFixedPresenter(source ItemSource, template ItemTemplate, rowHeight float64) *FixedPresenter {
	if !isFiniteHeight(rowHeight) || rowHeight <= 0 {
		rowHeight = 1
	}
	p := &FixedPresenter{uniform: &uniformHeights{rowHeight: rowHeight}}
	p.init(source, template, p.uniform, false)
	return p
}

// RowHeight returns the shared row height.
func (p *FixedPresenter) RowHeight() float64 { return p.uniform.rowHeight }

// Overscan sets how many extra units beyond the viewport get realized.
func (p *FixedPresenter) Overscan(units float64) *FixedPresenter {
	p.overscan = math.Max(0, sanitizeOffset(units))
	return p
}

// Focus attaches the owning control's focus scope to the virtualizer.
func (p *FixedPresenter) Focus(scope *FocusScope) *FixedPresenter {
	p.virt.focus = scope
	return p
}

// StickToBottom enables the pinned-to-end correction policy.
func (p *FixedPresenter) StickToBottom(on bool) *FixedPresenter {
	p.anchor.SetStickToBottom(on)
	return p
}
