package loom

import (
	"strings"
	"testing"
)

func sampleTree() []*TreeNode {
	return []*TreeNode{
		{Label: "etc", Children: []*TreeNode{
			{Label: "nginx", Children: []*TreeNode{
				{Label: "nginx.conf"},
				{Label: "mime.types"},
			}},
			{Label: "hosts"},
		}},
		{Label: "var", Children: []*TreeNode{
			{Label: "log"},
		}},
		{Label: "README"},
	}
}

func TestTreeViewExpandCollapse(t *testing.T) {
	tv := NewTreeView(sampleTree())
	tv.SetSize(30, 10)

	if tv.VisibleCount() != 3 {
		t.Fatalf("collapsed tree shows %d rows, want 3", tv.VisibleCount())
	}

	tv.Toggle() // expand "etc"
	if tv.VisibleCount() != 5 {
		t.Fatalf("after expanding etc, %d rows, want 5", tv.VisibleCount())
	}

	// expand the nested "nginx" under it
	tv.list.Select(1)
	tv.Toggle()
	if tv.VisibleCount() != 7 {
		t.Fatalf("after expanding nginx, %d rows, want 7", tv.VisibleCount())
	}

	// collapsing the root removes the whole visible subtree in one range
	tv.list.Select(0)
	tv.Toggle()
	if tv.VisibleCount() != 3 {
		t.Fatalf("after collapsing etc, %d rows, want 3", tv.VisibleCount())
	}

	// nested expansion state survives the collapse
	tv.Toggle()
	if tv.VisibleCount() != 7 {
		t.Errorf("re-expanding etc shows %d rows, want 7 (nginx stayed expanded)", tv.VisibleCount())
	}
}

func TestTreeViewLeafChoose(t *testing.T) {
	tv := NewTreeView(sampleTree())
	tv.SetSize(30, 10)

	var chosen *TreeNode
	tv.OnChoose(func(n *TreeNode) { chosen = n })

	tv.list.Select(2) // "README", a leaf
	tv.Toggle()
	if chosen == nil || chosen.Label != "README" {
		t.Fatalf("chose %v, want README", chosen)
	}
	if tv.VisibleCount() != 3 {
		t.Errorf("choosing a leaf changed the row count to %d", tv.VisibleCount())
	}
}

func TestTreeViewRenderedGlyphs(t *testing.T) {
	tv := NewTreeView(sampleTree())
	tv.SetSize(30, 10)
	tv.Toggle()

	view := stripAnsi(tv.View())
	if !strings.Contains(view, "▾ etc") {
		t.Errorf("expanded branch glyph missing:\n%s", view)
	}
	if !strings.Contains(view, "▸ nginx") {
		t.Errorf("collapsed branch glyph missing:\n%s", view)
	}
	if !strings.Contains(view, "README") {
		t.Errorf("leaf missing:\n%s", view)
	}
}

func TestTreeViewSelectedNode(t *testing.T) {
	tv := NewTreeView(sampleTree())
	tv.SetSize(30, 10)

	if n := tv.Selected(); n == nil || n.Label != "etc" {
		t.Fatalf("initial selection %v, want etc", n)
	}
	tv.Expand()
	tv.list.Select(1)
	if n := tv.Selected(); n == nil || n.Label != "nginx" {
		t.Fatalf("selection %v, want nginx", n)
	}
	tv.Collapse() // nginx is collapsed already, no-op
	if tv.VisibleCount() != 5 {
		t.Errorf("collapse of collapsed node changed rows to %d", tv.VisibleCount())
	}
}
