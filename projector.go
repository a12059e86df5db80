package loom

// changeProjector translates collection change notifications into height
// edits and realized-index remaps, without discarding containers the change
// did not touch. Both presentation strategies share it; they differ only in
// the height index behind it.
type changeProjector struct {
	source  ItemSource
	heights heightIndex
	virt    *Virtualizer
	anchor  *AnchorCorrector
	scroll  scrollState

	// dataChanged is consumed by the next render pass to force rebinding of
	// already-realized containers.
	dataChanged bool
}

// consumeDataChanged returns and clears the per-pass rebind flag.
func (cp *changeProjector) consumeDataChanged() bool {
	d := cp.dataChanged
	cp.dataChanged = false
	return d
}

// Apply projects one change notification. Changes arrive synchronously and
// in order; the engine never mutates the collection itself.
func (cp *changeProjector) Apply(c Change) {
	newCount := cp.source.Count()
	debugf("change %s index=%d count=%d (source count %d)", c.Kind, c.Index, c.Count, newCount)
	switch c.Kind {
	case ChangeAdd:
		cp.applyAdd(c.Index, c.Count, newCount)
	case ChangeRemove:
		cp.applyRemove(c.Index, c.Count, newCount)
	case ChangeReplace:
		cp.applyReplace(c.Index, c.Count, newCount)
	case ChangeMove:
		// conservative fallback: remapping a moved range is possible in
		// principle, but the cache cost of a reset is bounded and the
		// remap is not, so Move degrades to Reset for now
		cp.reset(newCount)
	default:
		cp.reset(newCount)
	}
	// normalize defensively; a misbehaving source must not leave the cache
	// and the collection disagreeing about the count
	cp.heights.EnsureCapacity(newCount)
	cp.dataChanged = true
}

// captureAnchor resolves the row at the viewport top against the pre-change
// height table. Callers must not have mutated the heights yet: the old count
// is what keeps the binary search inside the old prefix table.
func (cp *changeProjector) captureAnchor() anchorMark {
	if cp.heights.Len() == 0 {
		return anchorMark{}
	}
	idx := cp.heights.IndexAt(cp.scroll.Offset())
	return cp.anchor.mark(idx, cp.heights.OffsetOf(idx))
}

func (cp *changeProjector) applyAdd(index, count, newCount int) {
	oldCount := newCount - count
	if count <= 0 || index < 0 || index > oldCount || cp.heights.Len() != oldCount {
		cp.reset(newCount)
		return
	}
	m := cp.captureAnchor()

	cp.heights.InsertAt(index, count)
	p := cp.virt.BeginPass(false)
	p.shiftFrom(index, count)
	p.End()

	if m.valid {
		// inserting at or before the anchor pushes it down by the estimated
		// height of the new rows; the new table says exactly how far
		ai := m.index
		if index <= ai {
			ai += count
		}
		cp.anchor.Restore(m, cp.heights.OffsetOf(ai))
	}
}

func (cp *changeProjector) applyRemove(index, count, newCount int) {
	oldCount := newCount + count
	if count <= 0 || index < 0 || index+count > oldCount || cp.heights.Len() != oldCount {
		// the notification disagrees with what the cache held before it
		cp.reset(newCount)
		return
	}
	m := cp.captureAnchor()

	p := cp.virt.BeginPass(false)
	for i := index; i < index+count; i++ {
		p.Recycle(i)
	}
	p.dropHeld(index, index+count)
	p.shiftFrom(index+count, -count)
	p.End()
	cp.heights.RemoveAt(index, count)

	if !m.valid {
		return
	}
	switch {
	case m.index >= index+count:
		// anchor survived; its index slid down
		cp.anchor.Restore(m, cp.heights.OffsetOf(m.index-count))
	case m.index >= index:
		// anchor row was removed; settle on the first surviving row at the
		// edit point
		m.within = 0
		cp.anchor.Restore(m, cp.heights.OffsetOf(index))
	default:
		// anchor sits before the edit so its top is untouched, but a
		// pinned viewport still follows the shrinking end
		if m.pinned {
			cp.anchor.RequestBottom()
		}
	}
}

func (cp *changeProjector) applyReplace(index, count, newCount int) {
	if count <= 0 || index < 0 || cp.heights.Len() != newCount {
		cp.reset(newCount)
		return
	}
	m := cp.captureAnchor()

	// force remeasurement, rebind in place; nothing is recycled
	cp.heights.InvalidateRange(index, count)
	for i := index; i < index+count && i < newCount; i++ {
		cp.virt.rebind(i)
	}

	if m.valid && m.index >= index {
		cp.anchor.Restore(m, cp.heights.OffsetOf(m.index))
	}
}

// reset is the degraded-but-safe path: drop every cached height and realized
// container, rebuild lazily on the next render pass.
func (cp *changeProjector) reset(newCount int) {
	pinned := cp.anchor.pinnedNow()
	cp.heights.InvalidateAll()
	cp.heights.EnsureCapacity(newCount)
	cp.virt.RecycleAll()
	if pinned {
		cp.anchor.RequestBottom()
	}
}
