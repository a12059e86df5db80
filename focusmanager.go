package loom

// FocusScope tracks which widget holds keyboard focus within one owning
// control. It is an explicit handle passed into the virtualizer, not an
// ambient process-wide lookup, so recycling behavior stays testable without
// a live terminal.
//
// The owner widget (the control itself) is the fallback: when a focused row
// is recycled out from under the user, focus transfers to the owner rather
// than silently dying with a detached widget.
type FocusScope struct {
	owner    Widget
	current  Widget
	onChange func(Widget)
}

// NewFocusScope creates a scope owned by the given control widget. owner may
// be nil, in which case recycling a focused row clears focus instead of
// transferring it.
func NewFocusScope(owner Widget) *FocusScope {
	return &FocusScope{owner: owner}
}

// OnChange sets a callback that fires after focus moves.
func (s *FocusScope) OnChange(fn func(Widget)) *FocusScope {
	s.onChange = fn
	return s
}

// Focused returns the widget currently holding focus, or nil.
func (s *FocusScope) Focused() Widget { return s.current }

// Owner returns the owning control widget.
func (s *FocusScope) Owner() Widget { return s.owner }

// SetFocus moves focus to w. A nil w clears focus. Returns false if focus
// was already on w.
func (s *FocusScope) SetFocus(w Widget) bool {
	if s == nil || s.current == w {
		return false
	}
	if f, ok := s.current.(Focusable); ok {
		f.Blur()
	}
	s.current = w
	if f, ok := w.(Focusable); ok {
		f.Focus()
	}
	if s.onChange != nil {
		s.onChange(w)
	}
	return true
}

// Clear drops focus entirely.
func (s *FocusScope) Clear() {
	if s != nil {
		s.SetFocus(nil)
	}
}

// ToOwner transfers focus to the owning control, or clears it when the
// scope has no owner that can accept focus.
func (s *FocusScope) ToOwner() {
	if s == nil {
		return
	}
	if s.owner != nil {
		s.SetFocus(s.owner)
		return
	}
	s.Clear()
}

// Holds reports whether w (non-nil) currently has focus in this scope.
func (s *FocusScope) Holds(w Widget) bool {
	return s != nil && w != nil && s.current == w
}
