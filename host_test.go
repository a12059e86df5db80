package loom

import (
	"strings"
	"testing"
)

func plainHost(rows int, w, h int) (*Items[string], *ItemsHost) {
	src := stringItems(rows)
	p := NewFixedPresenter(src, TextTemplate(src, false), 1)
	host := NewItemsHost(p).Styles(Styles{})
	host.SetSize(w, h)
	return src, host
}

func TestHostRendersVisibleRows(t *testing.T) {
	_, host := plainHost(50, 12, 4)

	lines := strings.Split(host.View(), "\n")
	if len(lines) != 4 {
		t.Fatalf("rendered %d lines, want 4", len(lines))
	}
	for i, want := range []string{"row 0", "row 1", "row 2", "row 3"} {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], want)
		}
	}

	host.ScrollTo(10)
	lines = strings.Split(host.View(), "\n")
	if !strings.HasPrefix(lines[0], "row 10") {
		t.Errorf("after scroll, first line = %q", lines[0])
	}
}

func TestHostLinesAreExactWidth(t *testing.T) {
	_, host := plainHost(50, 12, 4)
	for _, line := range strings.Split(host.View(), "\n") {
		if w := ViewWidth(line); w != 12 {
			t.Errorf("line %q is %d cells, want 12", line, w)
		}
	}
}

func TestHostScrollbarThumb(t *testing.T) {
	_, host := plainHost(100, 12, 4)

	lines := strings.Split(host.View(), "\n")
	if !strings.HasSuffix(lines[0], "┃") {
		t.Errorf("thumb not at the top at offset 0: %q", lines[0])
	}
	if !strings.HasSuffix(lines[3], "│") {
		t.Errorf("track missing at the bottom: %q", lines[3])
	}

	host.ScrollToBottom()
	lines = strings.Split(host.View(), "\n")
	if !strings.HasSuffix(lines[3], "┃") {
		t.Errorf("thumb not at the bottom after scrolling there: %q", lines[3])
	}
}

func TestHostScrollbarHiddenWhenContentFits(t *testing.T) {
	_, host := plainHost(3, 12, 5)
	for _, line := range strings.Split(host.View(), "\n") {
		if strings.ContainsAny(line, "│┃") {
			t.Errorf("scrollbar drawn for non-scrolling content: %q", line)
		}
	}
}

func TestHostWithoutScrollbarUsesFullWidth(t *testing.T) {
	src := stringItems(50)
	p := NewFixedPresenter(src, TextTemplate(src, false), 1)
	host := NewItemsHost(p).Styles(Styles{})
	host.Scrollbar(false)
	host.SetSize(12, 4)

	for _, line := range strings.Split(host.View(), "\n") {
		if w := ViewWidth(line); w != 12 {
			t.Errorf("line %q is %d cells, want 12", line, w)
		}
	}
}

func TestHostAppliesCorrectionsMidFrame(t *testing.T) {
	src := stringItems(50)
	p := NewFixedPresenter(src, TextTemplate(src, false), 1)
	host := NewItemsHost(p).Styles(Styles{})
	host.SetSize(12, 4)
	host.ScrollTo(20)
	host.View()

	// removing rows above the viewport issues a correction; the next frame
	// must already render from the corrected offset
	src.RemoveRange(0, 5)
	lines := strings.Split(host.View(), "\n")
	if !strings.HasPrefix(lines[0], "row 20") {
		t.Errorf("first line after removal = %q, want the same row 20", lines[0])
	}
	if off := p.Offset(); off != 15 {
		t.Errorf("offset %v, want 15", off)
	}
}

func TestHostDecorateRow(t *testing.T) {
	_, host := plainHost(10, 12, 4)
	host.DecorateRow(func(index int, line string) string {
		if index == 1 {
			return strings.ToUpper(line)
		}
		return line
	})

	lines := strings.Split(host.View(), "\n")
	if !strings.HasPrefix(lines[1], "ROW 1") {
		t.Errorf("decoration not applied: %q", lines[1])
	}
}

func TestHostZeroSize(t *testing.T) {
	_, host := plainHost(10, 0, 0)
	if v := host.View(); v != "" {
		t.Errorf("zero-size host rendered %q", v)
	}
}
