package loom

import "math"

const (
	// correctionThreshold is the smallest offset delta worth correcting.
	// Anything below one device unit is float noise, and correcting it
	// would churn the scroll owner every frame.
	correctionThreshold = 1.0

	// bottomSlack is how close to the maximum offset the viewport must sit,
	// before a height-affecting event, to count as pinned to the end.
	bottomSlack = 1.5
)

// scrollState is the slice of the scroll owner the corrector needs to see.
type scrollState interface {
	Offset() float64
	ViewportHeight() float64
	contentExtent() float64
}

// anchorMark captures the row at the top of the viewport and the in-row
// offset before a height-affecting event, so the same visual position can
// be re-requested afterwards.
type anchorMark struct {
	index  int
	within float64
	pinned bool
	valid  bool
}

// AnchorCorrector computes and issues scroll-offset corrections that keep an
// anchor row visually stationary across height refinement and collection
// edits. With stick-to-bottom enabled it instead keeps the viewport pinned
// to the end of growing content.
//
// State machine: Idle -> RequestingCorrection -> Idle. While a correction is
// in flight no further requests are issued; the scroll owner applies the
// offset and calls Applied to close the loop, which rules out correction
// feedback loops structurally rather than by detection.
type AnchorCorrector struct {
	scroll  scrollState
	request func(offset float64)

	stickToBottom bool
	inFlight      bool
}

// newAnchorCorrector wires a corrector to its scroll owner. request receives
// absolute, clamped offsets.
func newAnchorCorrector(scroll scrollState, request func(float64)) *AnchorCorrector {
	return &AnchorCorrector{scroll: scroll, request: request}
}

// SetStickToBottom enables the pinned-to-end policy, used for log/chat-style
// content growing at the tail.
func (a *AnchorCorrector) SetStickToBottom(on bool) { a.stickToBottom = on }

// StickToBottom reports whether the pinned-to-end policy is enabled.
func (a *AnchorCorrector) StickToBottom() bool { return a.stickToBottom }

// InFlight reports whether a correction has been requested but not applied.
func (a *AnchorCorrector) InFlight() bool { return a.inFlight }

// Applied must be called by the scroll owner once a requested correction has
// been applied (or deliberately dropped). It re-arms the corrector.
func (a *AnchorCorrector) Applied() { a.inFlight = false }

// maxOffset returns the largest valid scroll offset right now.
func (a *AnchorCorrector) maxOffset() float64 {
	return math.Max(0, a.scroll.contentExtent()-a.scroll.ViewportHeight())
}

// pinnedNow reports whether the viewport currently sits at (or within
// bottomSlack of) the end of content. Callers evaluate this before the
// height-affecting event.
func (a *AnchorCorrector) pinnedNow() bool {
	if !a.stickToBottom {
		return false
	}
	return a.scroll.Offset() >= a.maxOffset()-bottomSlack
}

// mark captures the anchor for an upcoming height-affecting event. index and
// top describe the row currently at the viewport top, resolved by the caller
// against the pre-change height table.
func (a *AnchorCorrector) mark(index int, top float64) anchorMark {
	return anchorMark{
		index:  index,
		within: a.scroll.Offset() - top,
		pinned: a.pinnedNow(),
		valid:  true,
	}
}

// Restore requests whatever correction the captured anchor calls for, given
// the anchor row's new top offset. Pinned viewports go back to the end; all
// others get newTop + the original in-row offset. Returns true when a
// request was issued.
func (a *AnchorCorrector) Restore(m anchorMark, newTop float64) bool {
	if !m.valid {
		return false
	}
	if m.pinned {
		return a.RequestBottom()
	}
	return a.Request(newTop + m.within)
}

// Request asks the scroll owner for an absolute offset, clamped to the valid
// range. Requests are suppressed while a correction is in flight and when
// the delta is within one device unit of the current offset. Returns true
// when the request was issued.
func (a *AnchorCorrector) Request(offset float64) bool {
	if a.inFlight {
		return false
	}
	offset = math.Min(math.Max(0, sanitizeOffset(offset)), a.maxOffset())
	if math.Abs(offset-a.scroll.Offset()) <= correctionThreshold {
		return false
	}
	a.inFlight = true
	debugf("correction: %.2f -> %.2f", a.scroll.Offset(), offset)
	a.request(offset)
	return true
}

// RequestBottom pins the viewport to the end of content. Unlike Request it
// does not tolerate sub-threshold deltas: the pin is exact, and on cell
// hosts a one-unit lag would leave the newest row hidden.
func (a *AnchorCorrector) RequestBottom() bool {
	if a.inFlight {
		return false
	}
	target := a.maxOffset()
	if math.Abs(target-a.scroll.Offset()) < heightEpsilon {
		return false
	}
	a.inFlight = true
	debugf("correction: pin to bottom at %.2f", target)
	a.request(target)
	return true
}
