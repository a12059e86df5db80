// loom-browse is a demo browser over a large generated dataset: a Grid with
// a hundred thousand rows, virtualized down to whatever fits on screen.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"loom"
)

type config struct {
	Rows      int  `toml:"rows"`
	Scrollbar bool `toml:"scrollbar"`
}

func loadConfig() config {
	cfg := config{Rows: 100_000, Scrollbar: true}
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(filepath.Join(home, ".config", "loom", "browse.toml"))
	if err != nil {
		return cfg
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		logrus.WithError(err).Warn("bad config, using defaults")
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 100_000
	}
	return cfg
}

type record struct {
	ID   string
	Name string
	Size int
}

type model struct {
	grid   *loom.Grid
	status string
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.grid.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC || msg.String() == "q":
			return m, tea.Quit
		case msg.String() == "r":
			// jump to a random row to exercise long-distance scrolling
			m.grid.Select(rand.IntN(m.grid.Host().Presenter().Count()))
			return m, nil
		}
	}
	m.grid, _ = m.grid.Update(msg)
	return m, nil
}

func (m model) View() string {
	return m.grid.View() + "\n" + m.status
}

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "loom-browse needs a terminal")
		os.Exit(1)
	}
	if f, err := os.OpenFile("loom-browse.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		logrus.SetOutput(f)
		loom.SetLogger(logrus.NewEntry(logrus.StandardLogger()))
		defer f.Close()
	}

	cfg := loadConfig()
	rows := loom.NewItems(func(r record) string { return r.Name })
	batch := make([]record, cfg.Rows)
	for i := range batch {
		batch[i] = record{
			ID:   uuid.NewString()[:8],
			Name: fmt.Sprintf("object-%06d", i),
			Size: (i * 7919) % 1_000_000,
		}
	}
	rows.SetAll(batch)

	grid := loom.NewGrid(rows,
		[]loom.Column{
			{Title: "ID", Width: 10},
			{Title: "NAME"},
			{Title: "SIZE", Width: 10},
		},
		func(item any, col int) string {
			r := item.(record)
			switch col {
			case 0:
				return r.ID
			case 1:
				return r.Name
			default:
				return fmt.Sprintf("%d", r.Size)
			}
		})
	grid.Host().Scrollbar(cfg.Scrollbar)

	m := model{grid: grid, status: fmt.Sprintf("%d rows · j/k scroll · q quits", cfg.Rows)}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logrus.WithError(err).Fatal("program failed")
	}
}
