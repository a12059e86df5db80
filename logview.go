package loom

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// LogLineMsg carries one batch of lines read from a followed stream.
type LogLineMsg struct {
	Lines []string
	EOF   bool
}

// FollowReader returns a command that reads the next batch of lines from r.
// Re-issue it from Update on every LogLineMsg until EOF. Reads block, so the
// command runs on bubbletea's goroutine, not the model's.
func FollowReader(r *bufio.Scanner) tea.Cmd {
	return func() tea.Msg {
		lines := make([]string, 0, 64)
		for len(lines) < cap(lines) && r.Scan() {
			lines = append(lines, r.Text())
		}
		return LogLineMsg{Lines: lines, EOF: len(lines) == 0}
	}
}

// NewFollowScanner wraps r for FollowReader.
func NewFollowScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return sc
}

// LogView is a streaming log tail: wrapped variable-height lines, a bounded
// ring of retained lines, and a stick-to-bottom viewport. While the user has
// scrolled away from the live edge, appends accumulate into a badge instead
// of yanking the view down.
type LogView struct {
	host      *ItemsHost
	presenter *VariablePresenter
	lines     *Items[string]
	keys      ListKeyMap
	styles    Styles

	limit     int
	following bool
	unseen    int
}

// NewLogView creates a log view retaining at most limit lines; limit <= 0
// means unbounded.
func NewLogView(limit int) *LogView {
	v := &LogView{
		lines:     NewItems(func(s string) string { return s }),
		keys:      DefaultListKeyMap(),
		styles:    DefaultStyles(),
		limit:     limit,
		following: true,
	}
	v.presenter = NewVariablePresenter(v.lines, TextTemplate(v.lines, true)).
		Estimate(1).
		StickToBottom(true)
	v.host = NewItemsHost(v.presenter)
	return v
}

// Styles replaces the style set.
func (v *LogView) Styles(s Styles) *LogView {
	v.styles = s
	v.host.Styles(s)
	return v
}

// Lines exposes the backing collection.
func (v *LogView) Lines() *Items[string] { return v.lines }

// Following reports whether the view is pinned to the live edge.
func (v *LogView) Following() bool { return v.following }

// Unseen returns how many lines arrived while scrolled away from the edge.
func (v *LogView) Unseen() int { return v.unseen }

// SetSize sets the view's outer size in cells.
func (v *LogView) SetSize(width, height int) { v.host.SetSize(width, height) }

// Append adds lines at the live edge and trims the ring.
func (v *LogView) Append(lines ...string) {
	if len(lines) == 0 {
		return
	}
	v.lines.Append(lines...)
	if !v.following {
		v.unseen += len(lines)
	}
	if v.limit > 0 && v.lines.Count() > v.limit {
		v.lines.RemoveRange(0, v.lines.Count()-v.limit)
	}
}

// Follow re-pins the view to the live edge and clears the badge.
func (v *LogView) Follow() {
	v.following = true
	v.unseen = 0
	v.presenter.StickToBottom(true)
	v.host.ScrollToBottom()
}

// unfollow releases the pin; appends stop moving the viewport.
func (v *LogView) unfollow() {
	if v.following {
		v.following = false
		v.presenter.StickToBottom(false)
	}
}

// Update handles scrolling and follow toggling. Log lines arriving as
// LogLineMsg are appended; the caller re-issues its FollowReader command.
func (v *LogView) Update(msg tea.Msg) (*LogView, tea.Cmd) {
	switch msg := msg.(type) {
	case LogLineMsg:
		v.Append(msg.Lines...)
		return v, nil
	case tea.KeyMsg:
		_, viewH := v.host.Size()
		switch {
		case key.Matches(msg, v.keys.Up):
			v.unfollow()
			v.host.ScrollBy(-1)
		case key.Matches(msg, v.keys.Down):
			v.host.ScrollBy(1)
			v.refollowIfAtBottom()
		case key.Matches(msg, v.keys.PageUp):
			v.unfollow()
			v.host.ScrollBy(float64(-viewH))
		case key.Matches(msg, v.keys.PageDown):
			v.host.ScrollBy(float64(viewH))
			v.refollowIfAtBottom()
		case key.Matches(msg, v.keys.Home):
			v.unfollow()
			v.host.ScrollToTop()
		case key.Matches(msg, v.keys.End):
			v.Follow()
		}
	}
	return v, nil
}

func (v *LogView) refollowIfAtBottom() {
	if v.host.AtBottom() {
		v.Follow()
	}
}

// View renders the log. When lines arrived off-screen, the last row carries
// a "new lines" badge pointing back to the live edge.
func (v *LogView) View() string {
	out := v.host.View()
	if v.unseen == 0 || out == "" {
		return out
	}
	badge := v.styles.Muted.Render(" ▼ " + strconv.Itoa(v.unseen) + " new lines ")
	rows := strings.Split(out, "\n")
	last := len(rows) - 1
	w, _ := v.host.Size()
	bw := ViewWidth(badge)
	if bw < w {
		rows[last] = PadLine(rows[last], w-bw) + badge
	}
	return strings.Join(rows, "\n")
}
