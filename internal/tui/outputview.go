package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/danielnaab/graft/internal/runner"
)

// outputHeaderLines + outputFooterLines is the vertical overhead around the
// scrollback viewport (banner, state line, hint bar).
const (
	outputHeaderLines = 5
	outputFooterLines = 3
)

// outputModel shows the live scrollback of one command execution. Its zero
// value is inert; a fresh model is built by startCommand each run, so old
// scrollback never bleeds into a new execution.
type outputModel struct {
	repoName string
	cmdName  string

	handle *runner.Handle
	state  runner.State
	buf    runner.Buffer

	vp      viewport.Model
	ready   bool
	follow  bool
	width   int
	height  int
	confirm *confirmModel

	theme *Theme
}

func newOutput(repoName, cmdName string, h *runner.Handle, theme *Theme) outputModel {
	return outputModel{
		repoName: repoName,
		cmdName:  cmdName,
		handle:   h,
		follow:   true,
		theme:    theme,
	}
}

func (o *outputModel) setSize(width, height int) {
	o.width = width
	o.height = height
	if o.handle == nil {
		return
	}
	vpWidth := max(1, width-2)
	vpHeight := max(1, height-outputHeaderLines-outputFooterLines)
	if !o.ready {
		o.vp = viewport.New(viewport.WithWidth(vpWidth), viewport.WithHeight(vpHeight))
		o.vp.SoftWrap = true
		o.ready = true
		o.refresh()
	} else {
		o.vp.SetWidth(vpWidth)
		o.vp.SetHeight(vpHeight)
	}
}

// apply folds a batch of engine events into the execution state and the
// scrollback buffer, then re-renders the viewport once for the whole batch.
func (o *outputModel) apply(events []runner.Event) {
	changed := false
	for _, ev := range events {
		o.state = o.state.Apply(ev)
		if line, ok := ev.(runner.LineEvent); ok {
			o.buf.Append(line.Text)
			changed = true
		}
	}
	if o.state.Terminal() {
		// A finished run no longer needs the stop confirmation.
		o.confirm = nil
		changed = true
	}
	if changed && o.ready {
		o.refresh()
	}
}

func (o *outputModel) refresh() {
	o.vp.SetContent(strings.Join(o.buf.Lines(), "\n"))
	if o.follow {
		o.vp.GotoBottom()
	}
}

func (m *appModel) updateOutput(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	o := &m.output

	if o.confirm != nil {
		answered, confirmed := o.confirm.handleKey(msg)
		if answered {
			o.confirm = nil
			if confirmed {
				// Pop even if the kill fails; the process is treated as
				// detached rather than holding the user here.
				if err := o.handle.Stop(); err != nil {
					m.setError("stopping command: " + err.Error())
				}
				m.pop()
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", keyCtrlC:
		if m.running() {
			o.confirm = newConfirm("Stop command?", o.cmdName+" is still running.", &m.theme)
			return m, nil
		}
		m.pop()
		return m, nil
	case keyEsc:
		// Detach: the engine keeps running and events keep draining.
		m.resetHome()
		return m, nil
	case "up", "k":
		o.follow = false
		o.vp.ScrollUp(1)
	case "down", "j":
		o.vp.ScrollDown(1)
	case "ctrl+u":
		o.follow = false
		o.vp.HalfPageUp()
	case "ctrl+d":
		o.vp.HalfPageDown()
	case "g":
		o.follow = false
		o.vp.GotoTop()
	case "G":
		o.follow = true
		o.vp.GotoBottom()
	}
	return m, nil
}

func (m *appModel) viewOutput() string {
	o := &m.output
	var b strings.Builder

	b.WriteString(m.theme.SectionBanner(o.repoName + " · " + o.cmdName))

	b.WriteString("  " + m.renderRunState() + "\n")
	if o.buf.Truncated() {
		b.WriteString("  " + m.theme.Subtitle.Render("(older output dropped)") + "\n")
	} else {
		b.WriteString("\n")
	}

	if o.ready {
		b.WriteString(o.vp.View())
	}

	switch {
	case o.confirm != nil:
		b.WriteString("\n\n" + o.confirm.View())
	case o.ready:
		pct := int(o.vp.ScrollPercent() * 100)
		b.WriteString("\n" + m.theme.Subtitle.Render(fmt.Sprintf("  %d lines · %d%%", o.buf.Len(), pct)))
	}

	return b.String()
}

// renderRunState renders the execution phase with outcome styling.
func (m *appModel) renderRunState() string {
	o := &m.output
	desc := o.state.Describe()
	switch o.state.Phase {
	case runner.Running:
		return lipgloss.NewStyle().Foreground(m.theme.Accent).Render(desc)
	case runner.Completed:
		if o.state.ExitCode == 0 {
			return lipgloss.NewStyle().Foreground(m.theme.Success).Render(desc)
		}
		return lipgloss.NewStyle().Foreground(m.theme.Error).Render(desc)
	case runner.Failed:
		return m.theme.ErrLine.Render(desc)
	}
	return m.theme.Subtitle.Render(desc)
}
