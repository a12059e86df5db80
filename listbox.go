package loom

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ListBox is a selectable virtualized list. Single-line rows use the fixed
// strategy; wrapping rows use the variable strategy with measured heights.
// Selection tracks source changes: inserts and removals shift or clamp the
// selected index instead of letting it dangle.
type ListBox struct {
	host      *ItemsHost
	presenter ItemsPresenter
	source    ItemSource
	keys      ListKeyMap
	styles    Styles
	focus     *FocusScope

	selected int
	onSelect func(index int)
	onChoose func(index int)

	unsubscribe func()
}

// NewListBox creates a single-line-row list over source. Rows render through
// the default text template.
func NewListBox(source ItemSource) *ListBox {
	return newListBox(source, NewFixedPresenter(source, TextTemplate(source, false), 1))
}

// NewWrappingListBox creates a list whose rows wrap to the viewport width,
// so row heights vary and are measured.
func NewWrappingListBox(source ItemSource) *ListBox {
	return newListBox(source, NewVariablePresenter(source, TextTemplate(source, true)).Estimate(1))
}

// NewListBoxWith creates a list over a caller-supplied presenter, for custom
// templates or pre-tuned strategies.
func NewListBoxWith(source ItemSource, presenter ItemsPresenter) *ListBox {
	return newListBox(source, presenter)
}

func newListBox(source ItemSource, presenter ItemsPresenter) *ListBox {
	l := &ListBox{
		presenter: presenter,
		source:    source,
		keys:      DefaultListKeyMap(),
		styles:    DefaultStyles(),
		selected:  -1,
	}
	l.focus = NewFocusScope(l)
	switch p := presenter.(type) {
	case *FixedPresenter:
		p.Focus(l.focus)
	case *VariablePresenter:
		p.Focus(l.focus)
	}
	l.host = NewItemsHost(presenter)
	l.host.DecorateRow(l.decorateRow)
	if source.Count() > 0 {
		l.selected = 0
	}
	l.unsubscribe = source.Subscribe(l.projectSelection)
	return l
}

// Keys replaces the key map.
func (l *ListBox) Keys(k ListKeyMap) *ListBox {
	l.keys = k
	return l
}

// Styles replaces the style set for the list and its host.
func (l *ListBox) Styles(s Styles) *ListBox {
	l.styles = s
	l.host.Styles(s)
	return l
}

// OnSelect registers a callback fired whenever the cursor moves.
func (l *ListBox) OnSelect(fn func(index int)) *ListBox {
	l.onSelect = fn
	return l
}

// OnChoose registers a callback fired when the user confirms the cursor row.
func (l *ListBox) OnChoose(fn func(index int)) *ListBox {
	l.onChoose = fn
	return l
}

// Host exposes the underlying scroll host.
func (l *ListBox) Host() *ItemsHost { return l.host }

// Selected returns the cursor index, or -1 when the list is empty.
func (l *ListBox) Selected() int { return l.selected }

// Select moves the cursor and scrolls it into view. Out-of-range indices are
// clamped; selecting in an empty list is a no-op.
func (l *ListBox) Select(index int) {
	count := l.source.Count()
	if count == 0 {
		l.selected = -1
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= count {
		index = count - 1
	}
	if index == l.selected {
		return
	}
	l.selected = index
	l.presenter.ScrollIntoView(index)
	if l.onSelect != nil {
		l.onSelect(index)
	}
}

// SetSize sets the list's outer size in cells.
func (l *ListBox) SetSize(width, height int) {
	l.host.SetSize(width, height)
}

// Dispose releases the list's source subscription and its presenter.
func (l *ListBox) Dispose() {
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
	l.presenter.Dispose()
}

// projectSelection keeps the cursor pointing at the same item across source
// edits, mirroring how realized indices are remapped.
func (l *ListBox) projectSelection(c Change) {
	count := l.source.Count()
	if count == 0 {
		l.selected = -1
		return
	}
	switch c.Kind {
	case ChangeAdd:
		if l.selected >= c.Index {
			l.selected += c.Count
		}
	case ChangeRemove:
		switch {
		case l.selected >= c.Index+c.Count:
			l.selected -= c.Count
		case l.selected >= c.Index:
			l.selected = c.Index
		}
	case ChangeReset, ChangeMove:
		// item identity is unknown after a reset, keep the position
	}
	if l.selected >= count {
		l.selected = count - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Update handles navigation keys. It returns itself for tea-style chaining.
func (l *ListBox) Update(msg tea.Msg) (*ListBox, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}
	_, viewH := l.host.Size()
	switch {
	case key.Matches(keyMsg, l.keys.Up):
		l.Select(l.selected - 1)
	case key.Matches(keyMsg, l.keys.Down):
		l.Select(l.selected + 1)
	case key.Matches(keyMsg, l.keys.PageUp):
		l.Select(l.selected - viewH)
	case key.Matches(keyMsg, l.keys.PageDown):
		l.Select(l.selected + viewH)
	case key.Matches(keyMsg, l.keys.HalfPageUp):
		l.Select(l.selected - viewH/2)
	case key.Matches(keyMsg, l.keys.HalfPageDown):
		l.Select(l.selected + viewH/2)
	case key.Matches(keyMsg, l.keys.Home):
		l.Select(0)
	case key.Matches(keyMsg, l.keys.End):
		l.Select(l.source.Count() - 1)
	case key.Matches(keyMsg, l.keys.Copy):
		l.copySelected()
	case key.Matches(keyMsg, l.keys.Toggle):
		if l.onChoose != nil && l.selected >= 0 {
			l.onChoose(l.selected)
		}
	}
	return l, nil
}

func (l *ListBox) copySelected() {
	if l.selected < 0 || l.selected >= l.source.Count() {
		return
	}
	if err := clipboard.WriteAll(l.source.Text(l.selected)); err != nil {
		debugf("clipboard write failed: %v", err)
	}
}

func (l *ListBox) decorateRow(index int, line string) string {
	if index == l.selected {
		return l.styles.SelectedRow.Render(line)
	}
	return line
}

// View renders the list.
func (l *ListBox) View() string { return l.host.View() }
