// loom-picker is a fuzzy picker over lines on stdin, fzf-style: type to
// filter, enter prints the pick to stdout and copies it to the clipboard.
//
//	ls | loom-picker
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"loom"
)

type model struct {
	combo  *loom.ComboBox
	picked string
}

func (m model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.combo.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.combo, cmd = m.combo.Update(msg)
	if m.picked != "" {
		return m, tea.Quit
	}
	return m, cmd
}

func (m *model) View() string {
	if m.picked != "" {
		return ""
	}
	return m.combo.View()
}

func main() {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "usage: some-command | loom-picker")
		os.Exit(1)
	}
	var lines []string
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}

	m := &model{combo: loom.NewComboBox(lines)}
	m.combo.OnChoose(func(value string) {
		m.picked = value
		if err := clipboard.WriteAll(value); err != nil {
			logrus.WithError(err).Debug("clipboard unavailable")
		}
	})

	// stdin is the data stream, so keys come from the tty directly
	tty, err := os.Open("/dev/tty")
	if err != nil {
		logrus.WithError(err).Fatal("no tty")
	}
	defer tty.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(tty)).Run(); err != nil {
		logrus.WithError(err).Fatal("program failed")
	}
	if m.picked != "" {
		fmt.Println(m.picked)
	}
}
