package loom

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// comboRow is one filtered candidate plus the rune positions its query
// matched, kept so the row template can highlight them.
type comboRow struct {
	text    string
	matches []int
}

// ComboBox is a filter input over a virtualized candidate list. Typing
// re-filters with fuzzy matching; the list below is a fixed-height presenter
// over the filtered rows, so even very large candidate sets stay cheap.
type ComboBox struct {
	input    textinput.Model
	rows     *Items[comboRow]
	list     *ListBox
	all      []string
	styles   Styles
	onChoose func(value string)
}

// NewComboBox creates a combo box over the candidate values.
func NewComboBox(candidates []string) *ComboBox {
	c := &ComboBox{
		all:    append([]string(nil), candidates...),
		rows:   NewItems(func(r comboRow) string { return r.text }),
		styles: DefaultStyles(),
	}
	c.input = textinput.New()
	c.input.Prompt = "> "
	c.input.Placeholder = "type to filter"
	c.input.Focus()

	template := Template(
		func() Widget { return NewText("") },
		func(w Widget, item any, _ int) {
			row := item.(comboRow)
			w.(*Text).SetText(c.highlight(row))
		},
	)
	c.list = NewListBoxWith(c.rows, NewFixedPresenter(c.rows, template, 1))
	c.list.OnChoose(func(index int) {
		if c.onChoose != nil {
			c.onChoose(c.rows.At(index).text)
		}
	})
	c.refilter()
	return c
}

// OnChoose registers the confirm callback; it receives the chosen value.
func (c *ComboBox) OnChoose(fn func(value string)) *ComboBox {
	c.onChoose = fn
	return c
}

// Styles replaces the style set.
func (c *ComboBox) Styles(s Styles) *ComboBox {
	c.styles = s
	c.list.Styles(s)
	c.input.PlaceholderStyle = s.Placeholder
	return c
}

// SetCandidates replaces the candidate set and re-filters.
func (c *ComboBox) SetCandidates(values []string) {
	c.all = append(c.all[:0], values...)
	c.refilter()
}

// Value returns the currently selected candidate, or "" when none match.
func (c *ComboBox) Value() string {
	idx := c.list.Selected()
	if idx < 0 || idx >= c.rows.Count() {
		return ""
	}
	return c.rows.At(idx).text
}

// MatchCount returns how many candidates pass the current filter.
func (c *ComboBox) MatchCount() int { return c.rows.Count() }

// SetSize sets the combo box's outer size; one row is reserved for the input.
func (c *ComboBox) SetSize(width, height int) {
	c.input.Width = width - len(c.input.Prompt) - 1
	listH := height - 1
	if listH < 0 {
		listH = 0
	}
	c.list.SetSize(width, listH)
}

// Update routes keys: navigation and confirm go to the list, everything else
// edits the filter input.
func (c *ComboBox) Update(msg tea.Msg) (*ComboBox, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// letter aliases like j/k belong to the input here, so only the
		// dedicated navigation keys reach the list
		switch keyMsg.Type {
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			c.list, _ = c.list.Update(msg)
			return c, nil
		case tea.KeyEnter:
			if c.onChoose != nil && c.list.Selected() >= 0 {
				c.onChoose(c.rows.At(c.list.Selected()).text)
			}
			return c, nil
		}
	}
	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	if c.input.Value() != before {
		c.refilter()
	}
	return c, cmd
}

// refilter rebuilds the filtered rows for the current query. An empty query
// passes everything through unranked.
func (c *ComboBox) refilter() {
	query := c.input.Value()
	rows := make([]comboRow, 0, len(c.all))
	if query == "" {
		for _, v := range c.all {
			rows = append(rows, comboRow{text: v})
		}
	} else {
		for _, m := range fuzzy.Find(query, c.all) {
			rows = append(rows, comboRow{text: m.Str, matches: m.MatchedIndexes})
		}
	}
	c.rows.SetAll(rows)
	if len(rows) > 0 {
		c.list.Select(0)
	}
}

// highlight renders a row with its matched runes in the match style.
func (c *ComboBox) highlight(row comboRow) string {
	if len(row.matches) == 0 {
		return row.text
	}
	matched := make(map[int]bool, len(row.matches))
	for _, i := range row.matches {
		matched[i] = true
	}
	var b strings.Builder
	for i, r := range []rune(row.text) {
		if matched[i] {
			b.WriteString(c.styles.Match.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// View renders the input line above the filtered list.
func (c *ComboBox) View() string {
	count := c.styles.Muted.Render(
		strconv.Itoa(c.rows.Count()) + "/" + strconv.Itoa(len(c.all)))
	return c.input.View() + " " + count + "\n" + c.list.View()
}
