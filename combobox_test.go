package loom

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeString(c *ComboBox, s string) *ComboBox {
	for _, r := range s {
		c, _ = c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return c
}

func TestComboBoxFiltering(t *testing.T) {
	c := NewComboBox([]string{"main.go", "main_test.go", "README.md", "Makefile"})
	c.SetSize(40, 10)

	if c.MatchCount() != 4 {
		t.Fatalf("empty query matches %d, want all 4", c.MatchCount())
	}

	c = typeString(c, "main")
	if c.MatchCount() != 2 {
		t.Fatalf("query 'main' matches %d, want 2", c.MatchCount())
	}
	if v := c.Value(); v != "main.go" && v != "main_test.go" {
		t.Errorf("selected %q after filtering", v)
	}

	c = typeString(c, "zzz")
	if c.MatchCount() != 0 {
		t.Errorf("impossible query matches %d", c.MatchCount())
	}
	if v := c.Value(); v != "" {
		t.Errorf("value %q with no matches", v)
	}
}

func TestComboBoxChoose(t *testing.T) {
	c := NewComboBox([]string{"alpha", "beta", "gamma"})
	c.SetSize(40, 10)

	var picked string
	c.OnChoose(func(v string) { picked = v })

	c = typeString(c, "be")
	c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if picked != "beta" {
		t.Errorf("picked %q, want beta", picked)
	}
}

func TestComboBoxHighlightsMatches(t *testing.T) {
	c := NewComboBox([]string{"alpha", "beta"})
	c.SetSize(40, 10)
	c = typeString(c, "al")

	view := c.View()
	if !strings.Contains(view, "\x1b[") {
		t.Error("matched characters are not styled")
	}
	if !strings.Contains(stripAnsi(view), "1/2") {
		t.Errorf("match counter missing:\n%s", stripAnsi(view))
	}
}

func TestComboBoxNavigationStaysInList(t *testing.T) {
	c := NewComboBox([]string{"a1", "a2", "a3"})
	c.SetSize(40, 10)

	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	if c.Value() != "a2" {
		t.Errorf("down selected %q, want a2", c.Value())
	}
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	if c.Value() != "a1" {
		t.Errorf("up selected %q, want a1", c.Value())
	}
}

func TestComboBoxSetCandidates(t *testing.T) {
	c := NewComboBox([]string{"old"})
	c.SetSize(40, 10)
	c.SetCandidates([]string{"new a", "new b"})
	if c.MatchCount() != 2 {
		t.Errorf("match count %d after replacing candidates", c.MatchCount())
	}
}
