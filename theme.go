package loom

import "github.com/charmbracelet/lipgloss"

// Styles is the style set shared by the stock controls. Replace individual
// entries or the whole set; controls read it at render time.
type Styles struct {
	Row         lipgloss.Style // default row text
	SelectedRow lipgloss.Style // row under the cursor
	Muted       lipgloss.Style // counters, indicators, de-emphasized text
	Match       lipgloss.Style // fuzzy-matched characters
	Title       lipgloss.Style // headers, column titles
	Placeholder lipgloss.Style // empty-input hint text

	ScrollbarTrack lipgloss.Style
	ScrollbarThumb lipgloss.Style
}

// DefaultStyles returns the stock dark-terminal style set.
func DefaultStyles() Styles {
	return Styles{
		Row:            lipgloss.NewStyle(),
		SelectedRow:    lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")),
		Muted:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Match:          lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
		Title:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Placeholder:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		ScrollbarTrack: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		ScrollbarThumb: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
}
