package loom

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// MeasureFunc converts a realized widget into a height in engine units. The
// default counts rendered lines; pixel hosts substitute their own.
type MeasureFunc func(Widget) float64

// MeasureView is the default MeasureFunc: the line count of the rendered
// view, one engine unit per terminal row.
func MeasureView(w Widget) float64 {
	if w == nil {
		return 0
	}
	return float64(lipgloss.Height(w.View()))
}

// ViewWidth returns the display width of the widest line, ignoring ANSI
// escape sequences.
func ViewWidth(view string) int {
	widest := 0
	for _, line := range strings.Split(view, "\n") {
		if w := runewidth.StringWidth(ansi.Strip(line)); w > widest {
			widest = w
		}
	}
	return widest
}

// TruncateLine cuts a line to width cells, appending an ellipsis when
// anything was removed.
func TruncateLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width, "…")
}

// PadLine pads or truncates a rendered line to exactly width cells. The
// width check is ANSI-aware so styled lines keep their escapes.
func PadLine(line string, width int) string {
	w := runewidth.StringWidth(ansi.Strip(line))
	if w < width {
		return line + strings.Repeat(" ", width-w)
	}
	if w > width {
		return ansi.Truncate(line, width, "")
	}
	return line
}
