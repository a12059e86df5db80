package loom

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Text is the stock single-item widget: one piece of (optionally wrapped)
// styled text. It is what the default list template binds row text into.
type Text struct {
	text    string
	width   int
	wrap    bool
	style   lipgloss.Style
	focused bool
}

// NewText creates a text widget.
func NewText(s string) *Text {
	return &Text{text: s}
}

// Textf creates a text widget with printf-style formatting.
func Textf(format string, args ...any) *Text {
	return NewText(fmt.Sprintf(format, args...))
}

// SetText updates the content.
func (t *Text) SetText(s string) *Text {
	t.text = s
	return t
}

// GetText returns the raw content.
func (t *Text) GetText() string { return t.text }

// Style sets the render style.
func (t *Text) Style(s lipgloss.Style) *Text {
	t.style = s
	return t
}

// Wrap enables soft wrapping to the widget width. Without it long lines are
// truncated with an ellipsis.
func (t *Text) Wrap(on bool) *Text {
	t.wrap = on
	return t
}

// SetWidth implements Resizable.
func (t *Text) SetWidth(cells int) { t.width = cells }

// Focus implements Focusable.
func (t *Text) Focus() { t.focused = true }

// Blur implements Focusable.
func (t *Text) Blur() { t.focused = false }

// IsFocused implements Focusable.
func (t *Text) IsFocused() bool { return t.focused }

// Reset implements Poolable. Wrap, width and style survive pooling; the
// pool never crosses templates, so the configuration stays valid.
func (t *Text) Reset() {
	t.text = ""
	t.focused = false
}

// View implements Widget.
func (t *Text) View() string {
	s := t.style
	if t.width > 0 {
		if t.wrap {
			s = s.Width(t.width)
		} else {
			return s.Render(TruncateLine(t.text, t.width))
		}
	}
	return s.Render(t.text)
}

// textTemplate is the default template: one Text row per item, bound from
// ItemSource.Text.
type textTemplate struct {
	source ItemSource
	wrap   bool
}

// TextTemplate creates a template that renders each item's text into a Text
// widget. wrap controls soft wrapping, which is what makes rows
// variable-height under a narrow viewport.
func TextTemplate(source ItemSource, wrap bool) ItemTemplate {
	return textTemplate{source: source, wrap: wrap}
}

func (t textTemplate) Build() Widget { return NewText("").Wrap(t.wrap) }

func (t textTemplate) Bind(w Widget, _ any, index int) {
	if txt, ok := w.(*Text); ok {
		txt.SetText(t.source.Text(index))
	}
}
