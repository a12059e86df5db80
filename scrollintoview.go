package loom

import "math"

// knownHeights is implemented by height indexes that can tell a measured row
// from an estimated one. The fixed strategy's rows are always "measured".
type knownHeights interface {
	Known(index int) bool
}

// scrollSeq runs the multi-pass scroll-into-view protocol: a request is
// answered immediately from cached/estimated heights, then re-run after the
// target row is actually measured, and cleared only once the row's real
// bounds sit inside the viewport.
//
// States: none -> pending -> none (cleared when satisfied or stale).
type scrollSeq struct {
	pending bool
	target  int
}

// request records a deferred scroll target. Geometry is resolved on the next
// step; if the control has not been laid out yet the request simply waits
// for the first arrange pass with a real viewport.
func (s *scrollSeq) request(index int) {
	s.pending = true
	s.target = index
}

func (s *scrollSeq) clear() {
	s.pending = false
	s.target = 0
}

// step evaluates the pending request against the current height table and
// issues an offset correction when the target is outside the viewport:
// top-aligned when scrolling up to it, bottom-aligned when scrolling down.
func (s *scrollSeq) step(h heightIndex, scroll scrollState, corrector *AnchorCorrector) {
	if !s.pending {
		return
	}
	vh := scroll.ViewportHeight()
	if vh <= 0 {
		// not laid out yet; keep the request for the next arrange pass
		return
	}
	if s.target < 0 || s.target >= h.Len() {
		// index went stale across collection edits
		s.clear()
		return
	}

	top := h.OffsetOf(s.target)
	bottom := top + h.Get(s.target)
	off := scroll.Offset()

	if bottom-top >= vh {
		// row taller than the viewport; settle for its top, otherwise
		// top- and bottom-alignment would fight forever
		if math.Abs(top-off) <= correctionThreshold {
			if k, ok := h.(knownHeights); !ok || k.Known(s.target) {
				s.clear()
			}
		} else {
			corrector.Request(top)
		}
		return
	}

	inside := top >= off-correctionThreshold && bottom <= off+vh+correctionThreshold
	if inside {
		// only a real measurement satisfies the request; an estimated row
		// may still resize and push itself back out of the viewport
		if k, ok := h.(knownHeights); !ok || k.Known(s.target) {
			s.clear()
		}
		return
	}

	if top < off {
		corrector.Request(top)
	} else {
		corrector.Request(bottom - vh)
	}
}
