package loom

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// TreeNode is one node of a TreeView. Children are owned by the caller;
// expansion state is owned by the tree.
type TreeNode struct {
	Label    string
	Children []*TreeNode

	expanded bool
}

// Expanded reports whether the node is currently expanded.
func (n *TreeNode) Expanded() bool { return n.expanded }

// treeRow is one visible node in the flattened projection.
type treeRow struct {
	node  *TreeNode
	depth int
}

// TreeView renders a node hierarchy as a virtualized flat list. Only visible
// rows exist in the row source: expanding a node inserts its visible subtree
// right below it, collapsing removes it. The presenter sees plain range
// inserts and removals, so containers outside the edited range survive.
type TreeView struct {
	roots []*TreeNode
	rows  *Items[treeRow]
	list  *ListBox

	onChoose func(node *TreeNode)
}

// NewTreeView creates a tree over the given roots, initially collapsed.
func NewTreeView(roots []*TreeNode) *TreeView {
	t := &TreeView{
		roots: roots,
		rows:  NewItems(func(r treeRow) string { return r.node.Label }),
	}
	template := Template(
		func() Widget { return NewText("") },
		func(w Widget, item any, _ int) {
			row := item.(treeRow)
			w.(*Text).SetText(t.renderRow(row))
		},
	)
	t.list = NewListBoxWith(t.rows, NewFixedPresenter(t.rows, template, 1))
	t.rows.SetAll(flatten(roots, 0, nil))
	return t
}

// OnChoose registers the confirm callback for leaf nodes. Branch nodes
// toggle instead.
func (t *TreeView) OnChoose(fn func(node *TreeNode)) *TreeView {
	t.onChoose = fn
	return t
}

// Styles replaces the style set.
func (t *TreeView) Styles(s Styles) *TreeView {
	t.list.Styles(s)
	return t
}

// SetSize sets the tree's outer size in cells.
func (t *TreeView) SetSize(width, height int) { t.list.SetSize(width, height) }

// Selected returns the node under the cursor, or nil when the tree is empty.
func (t *TreeView) Selected() *TreeNode {
	idx := t.list.Selected()
	if idx < 0 || idx >= t.rows.Count() {
		return nil
	}
	return t.rows.At(idx).node
}

// VisibleCount returns the number of currently visible rows.
func (t *TreeView) VisibleCount() int { return t.rows.Count() }

// Toggle expands or collapses the node under the cursor.
func (t *TreeView) Toggle() {
	idx := t.list.Selected()
	if idx < 0 || idx >= t.rows.Count() {
		return
	}
	row := t.rows.At(idx)
	if len(row.node.Children) == 0 {
		if t.onChoose != nil {
			t.onChoose(row.node)
		}
		return
	}
	if row.node.expanded {
		n := visibleDescendants(row.node)
		row.node.expanded = false
		t.rows.RemoveRange(idx+1, n)
	} else {
		row.node.expanded = true
		t.rows.InsertAt(idx+1, flatten(row.node.Children, row.depth+1, nil)...)
	}
}

// Expand expands the node under the cursor; collapse state of its
// descendants is preserved.
func (t *TreeView) Expand() {
	if n := t.Selected(); n != nil && !n.expanded {
		t.Toggle()
	}
}

// Collapse collapses the node under the cursor.
func (t *TreeView) Collapse() {
	if n := t.Selected(); n != nil && n.expanded {
		t.Toggle()
	}
}

// Update handles navigation and toggling.
func (t *TreeView) Update(msg tea.Msg) (*TreeView, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, t.list.keys.Toggle) {
			t.Toggle()
			return t, nil
		}
	}
	t.list, _ = t.list.Update(msg)
	return t, nil
}

// View renders the tree.
func (t *TreeView) View() string { return t.list.View() }

func (t *TreeView) renderRow(row treeRow) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", row.depth))
	switch {
	case len(row.node.Children) == 0:
		b.WriteString("  ")
	case row.node.expanded:
		b.WriteString("▾ ")
	default:
		b.WriteString("▸ ")
	}
	b.WriteString(row.node.Label)
	return b.String()
}

// flatten appends the visible projection of nodes at depth to out.
func flatten(nodes []*TreeNode, depth int, out []treeRow) []treeRow {
	for _, n := range nodes {
		out = append(out, treeRow{node: n, depth: depth})
		if n.expanded {
			out = flatten(n.Children, depth+1, out)
		}
	}
	return out
}

// visibleDescendants counts the rows an expanded node contributes below
// itself.
func visibleDescendants(n *TreeNode) int {
	if !n.expanded {
		return 0
	}
	total := 0
	for _, c := range n.Children {
		total += 1 + visibleDescendants(c)
	}
	return total
}
