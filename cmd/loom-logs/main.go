// loom-logs tails a stream on stdin: pipe anything line-oriented into it and
// scroll while it keeps flowing. The view stays pinned to the live edge
// until you scroll up; new arrivals count into a badge until you return.
//
//	journalctl -f | loom-logs
package main

import (
	"bufio"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"loom"
)

type model struct {
	view    *loom.LogView
	scanner *bufio.Scanner
	done    bool
}

func (m model) Init() tea.Cmd {
	return loom.FollowReader(m.scanner)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loom.LogLineMsg:
		m.view, _ = m.view.Update(msg)
		if msg.EOF {
			m.done = true
			return m, nil
		}
		return m, loom.FollowReader(m.scanner)
	case tea.WindowSizeMsg:
		m.view.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	m.view, _ = m.view.Update(msg)
	return m, nil
}

func (m model) View() string {
	status := "following"
	if !m.view.Following() {
		status = fmt.Sprintf("paused · %d unseen · G to follow", m.view.Unseen())
	}
	if m.done {
		status += " · stream closed"
	}
	return m.view.View() + "\n" + status
}

func main() {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "usage: some-command | loom-logs")
		os.Exit(1)
	}
	m := model{
		view:    loom.NewLogView(50_000),
		scanner: loom.NewFollowScanner(os.Stdin),
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logrus.WithError(err).Fatal("program failed")
	}
}
