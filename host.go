package loom

import (
	"math"
	"strings"
)

// ItemsHost is the generic scroll owner for cell-based hosts. It owns the
// offset/viewport state, applies the presenter's offset-correction requests,
// and renders placements into a block of terminal lines with an optional
// scrollbar gutter. The item controls (ListBox, Grid, TreeView, LogView)
// all sit on top of one of these.
type ItemsHost struct {
	presenter ItemsPresenter
	styles    Styles

	width, height int
	scrollbar     bool

	// decorate is the before-item decoration hook: selection and hover
	// backgrounds get painted here, per visible line of a row.
	decorate func(index int, line string) string
}

// NewItemsHost wires a host to its presenter. The host immediately registers
// itself as the correction consumer: requests are applied synchronously and
// acknowledged so the corrector re-arms before the next frame.
func NewItemsHost(p ItemsPresenter) *ItemsHost {
	h := &ItemsHost{presenter: p, styles: DefaultStyles(), scrollbar: true}
	p.OnOffsetCorrection(func(off float64) {
		p.SetOffset(off)
		p.CorrectionApplied()
	})
	return h
}

// Presenter returns the presenter behind this host.
func (h *ItemsHost) Presenter() ItemsPresenter { return h.presenter }

// Styles replaces the host's style set.
func (h *ItemsHost) Styles(s Styles) *ItemsHost {
	h.styles = s
	return h
}

// Scrollbar toggles the right-hand scrollbar gutter.
func (h *ItemsHost) Scrollbar(on bool) *ItemsHost {
	if h.scrollbar != on {
		h.scrollbar = on
		h.pushViewport()
	}
	return h
}

// DecorateRow installs the before-item decoration hook.
func (h *ItemsHost) DecorateRow(fn func(index int, line string) string) *ItemsHost {
	h.decorate = fn
	return h
}

// SetSize sets the host's outer size in cells and pushes the resulting
// content viewport into the presenter.
func (h *ItemsHost) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.pushViewport()
}

// Size returns the host's outer size.
func (h *ItemsHost) Size() (int, int) { return h.width, h.height }

func (h *ItemsHost) contentWidth() int {
	w := h.width
	if h.scrollbar {
		w--
	}
	if w < 0 {
		w = 0
	}
	return w
}

func (h *ItemsHost) pushViewport() {
	h.presenter.SetViewport(float64(h.contentWidth()), float64(h.height))
}

// ScrollBy moves the viewport by delta units (positive scrolls down).
func (h *ItemsHost) ScrollBy(delta float64) {
	h.presenter.SetOffset(h.presenter.Offset() + delta)
}

// ScrollTo moves the viewport to an absolute offset.
func (h *ItemsHost) ScrollTo(offset float64) {
	h.presenter.SetOffset(offset)
}

// ScrollToTop moves to the start of content.
func (h *ItemsHost) ScrollToTop() { h.presenter.SetOffset(0) }

// ScrollToBottom moves to the end of content.
func (h *ItemsHost) ScrollToBottom() {
	_, extent := h.presenter.Extent()
	h.presenter.SetOffset(extent)
}

// AtBottom reports whether the viewport sits at the end of content.
func (h *ItemsHost) AtBottom() bool {
	_, extent := h.presenter.Extent()
	return h.presenter.Offset() >= extent-float64(h.height)-bottomSlack
}

// View runs an arrange pass and renders the visible rows. If the pass
// corrected the offset, it settles with one more pass so the frame already
// reflects the correction.
func (h *ItemsHost) View() string {
	if h.width <= 0 || h.height <= 0 {
		return ""
	}
	before := h.presenter.Offset()
	placements := h.presenter.Arrange()
	if h.presenter.Offset() != before {
		placements = h.presenter.Arrange()
	}

	offset := h.presenter.Offset()
	rows := make([]string, h.height)

	for _, pl := range placements {
		view := pl.Container.View()
		lines := strings.Split(view, "\n")
		rowTop := int(math.Round(pl.Top - offset))
		for li, line := range lines {
			y := rowTop + li
			if y < 0 || y >= h.height {
				continue
			}
			line = PadLine(line, h.contentWidth())
			if h.decorate != nil {
				line = h.decorate(pl.Index, line)
			}
			rows[y] = line
		}
	}

	for y, row := range rows {
		if row == "" {
			rows[y] = strings.Repeat(" ", h.contentWidth())
		}
	}
	if h.scrollbar {
		h.renderScrollbar(rows)
	}
	return strings.Join(rows, "\n")
}

// renderScrollbar appends the gutter column: a track with a proportional
// thumb, sized and placed from the extent/offset ratio.
func (h *ItemsHost) renderScrollbar(rows []string) {
	_, extent := h.presenter.Extent()
	vh := float64(h.height)
	if extent <= vh || extent <= 0 {
		for y := range rows {
			rows[y] += " "
		}
		return
	}

	thumbSize := int(math.Max(1, math.Floor(vh*vh/extent)))
	maxScroll := extent - vh
	thumbPos := 0
	if maxScroll > 0 {
		thumbPos = int(math.Round(float64(h.height-thumbSize) * h.presenter.Offset() / maxScroll))
	}

	track := h.styles.ScrollbarTrack.Render("│")
	thumb := h.styles.ScrollbarThumb.Render("┃")
	for y := range rows {
		if y >= thumbPos && y < thumbPos+thumbSize {
			rows[y] += thumb
		} else {
			rows[y] += track
		}
	}
}
