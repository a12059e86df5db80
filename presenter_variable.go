package loom

import "math"

// VariablePresenter virtualizes a collection whose rows vary in height.
// Heights start as estimates and are refined by measuring realized widgets
// during arrange passes; refinement that would visually shift the anchor row
// is compensated through the corrector, so the view never "jumps" when an
// estimate turns out wrong.
type VariablePresenter struct {
	presenterBase
	store *HeightStore
}

// NewVariablePresenter creates a variable-height presenter with the default
// estimate height.
func NewVariablePresenter(source ItemSource, template ItemTemplate) *VariablePresenter {
	p := &VariablePresenter{store: NewHeightStore(DefaultEstimateHeight)}
	p.init(source, template, p.store, true)
	return p
}

// Heights exposes the underlying store, mainly so hosts can pre-seed known
// heights instead of paying a measurement pass for them.
func (p *VariablePresenter) Heights() *HeightStore { return p.store }

// Estimate sets the fallback height for unmeasured rows.
func (p *VariablePresenter) Estimate(h float64) *VariablePresenter {
	if isFiniteHeight(h) && h > 0 {
		p.store.estimate = h
		p.store.dirty = true
	}
	return p
}

// Measure replaces the measurement func. The default counts rendered lines.
func (p *VariablePresenter) Measure(fn MeasureFunc) *VariablePresenter {
	if fn != nil {
		p.measure = fn
	}
	return p
}

// Overscan sets how many extra units beyond the viewport get realized.
func (p *VariablePresenter) Overscan(units float64) *VariablePresenter {
	p.overscan = math.Max(0, sanitizeOffset(units))
	return p
}

// Focus attaches the owning control's focus scope to the virtualizer.
func (p *VariablePresenter) Focus(scope *FocusScope) *VariablePresenter {
	p.virt.focus = scope
	return p
}

// StickToBottom enables the pinned-to-end correction policy.
func (p *VariablePresenter) StickToBottom(on bool) *VariablePresenter {
	p.anchor.SetStickToBottom(on)
	return p
}
