package loom

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Column describes one grid column. Width is in cells; a zero width marks
// the column flexible, sharing whatever space the fixed columns leave.
type Column struct {
	Title string
	Width int
}

// Grid is a virtualized table: a header line over fixed-height rows whose
// cells are cut from the columns. Cell text comes from the cell func, so the
// row items themselves can be any type.
type Grid struct {
	columns []Column
	cell    func(item any, col int) string
	source  ItemSource
	list    *ListBox
	styles  Styles
	width   int
}

// NewGrid creates a grid over source. cell extracts the text for one column
// of one item.
func NewGrid(source ItemSource, columns []Column, cell func(item any, col int) string) *Grid {
	g := &Grid{
		columns: columns,
		cell:    cell,
		source:  source,
		styles:  DefaultStyles(),
	}
	template := Template(
		func() Widget { return NewText("") },
		func(w Widget, item any, _ int) {
			w.(*Text).SetText(g.renderRow(item))
		},
	)
	g.list = NewListBoxWith(source, NewFixedPresenter(source, template, 1))
	return g
}

// Styles replaces the style set.
func (g *Grid) Styles(s Styles) *Grid {
	g.styles = s
	g.list.Styles(s)
	return g
}

// OnChoose registers the row confirm callback.
func (g *Grid) OnChoose(fn func(index int)) *Grid {
	g.list.OnChoose(fn)
	return g
}

// Host exposes the underlying scroll host.
func (g *Grid) Host() *ItemsHost { return g.list.Host() }

// Selected returns the cursor row index.
func (g *Grid) Selected() int { return g.list.Selected() }

// Select moves the cursor.
func (g *Grid) Select(index int) { g.list.Select(index) }

// SetSize sets the grid's outer size; one row is reserved for the header.
func (g *Grid) SetSize(width, height int) {
	g.width = width
	listH := height - 1
	if listH < 0 {
		listH = 0
	}
	g.list.SetSize(width, listH)
}

// Update handles navigation.
func (g *Grid) Update(msg tea.Msg) (*Grid, tea.Cmd) {
	g.list, _ = g.list.Update(msg)
	return g, nil
}

// View renders the header and rows.
func (g *Grid) View() string {
	header := g.styles.Title.Render(g.renderCells(func(col int) string {
		return g.columns[col].Title
	}))
	return header + "\n" + g.list.View()
}

// colWidths resolves per-column widths for the current grid width: fixed
// columns take their declared width, flexible ones split the remainder.
func (g *Grid) colWidths() []int {
	widths := make([]int, len(g.columns))
	flexible := 0
	remaining := g.width - len(g.columns) + 1 // one separator cell between columns
	for i, c := range g.columns {
		if c.Width > 0 {
			widths[i] = c.Width
			remaining -= c.Width
		} else {
			flexible++
		}
	}
	for i, c := range g.columns {
		if c.Width == 0 && flexible > 0 {
			w := remaining / flexible
			if w < 1 {
				w = 1
			}
			widths[i] = w
		}
	}
	return widths
}

func (g *Grid) renderCells(text func(col int) string) string {
	widths := g.colWidths()
	parts := make([]string, len(g.columns))
	for i := range g.columns {
		parts[i] = PadLine(text(i), widths[i])
	}
	return strings.Join(parts, " ")
}

func (g *Grid) renderRow(item any) string {
	return g.renderCells(func(col int) string {
		return g.cell(item, col)
	})
}
