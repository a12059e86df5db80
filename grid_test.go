package loom

import (
	"fmt"
	"strings"
	"testing"
)

type proc struct {
	pid  int
	name string
	cpu  float64
}

func procGrid(n int) (*Items[proc], *Grid) {
	rows := NewItems(func(p proc) string { return p.name })
	batch := make([]proc, n)
	for i := range batch {
		batch[i] = proc{pid: 100 + i, name: fmt.Sprintf("proc-%d", i), cpu: float64(i) / 10}
	}
	rows.SetAll(batch)

	g := NewGrid(rows,
		[]Column{{Title: "PID", Width: 6}, {Title: "NAME"}, {Title: "CPU", Width: 5}},
		func(item any, col int) string {
			p := item.(proc)
			switch col {
			case 0:
				return fmt.Sprintf("%d", p.pid)
			case 1:
				return p.name
			default:
				return fmt.Sprintf("%.1f", p.cpu)
			}
		})
	g.Styles(Styles{})
	return rows, g
}

func TestGridHeaderAndRows(t *testing.T) {
	_, g := procGrid(50)
	g.SetSize(30, 5)

	lines := strings.Split(g.View(), "\n")
	if len(lines) != 5 {
		t.Fatalf("rendered %d lines, want 5 (header + 4 rows)", len(lines))
	}
	if !strings.HasPrefix(lines[0], "PID") || !strings.Contains(lines[0], "NAME") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "100") || !strings.Contains(lines[1], "proc-0") {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestGridFlexibleColumnFillsWidth(t *testing.T) {
	_, g := procGrid(10)
	g.SetSize(40, 5)

	lines := strings.Split(g.View(), "\n")
	// fixed 6 + 5, two separators, flexible NAME takes the rest of the
	// content width (39 with the scrollbar gutter)
	if w := ViewWidth(lines[1]); w != 40 {
		t.Errorf("row width %d, want 40", w)
	}
}

func TestGridSelectionFollowsSource(t *testing.T) {
	rows, g := procGrid(30)
	g.SetSize(40, 6)
	g.Select(20)

	rows.RemoveRange(0, 5)
	if g.Selected() != 15 {
		t.Errorf("selection %d after removal above, want 15", g.Selected())
	}
}
