package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/danielnaab/graft/internal/cmdline"
)

// cmdLineModel is the ':' command-line overlay with its action palette.
// The palette filters on the first token while it is being typed and
// disappears once the verb is committed with a space.
type cmdLineModel struct {
	buf     editBuffer
	palette *cmdline.Palette
}

func newCmdOverlay() *cmdLineModel {
	return &cmdLineModel{palette: cmdline.NewPalette()}
}

// paletteActive reports whether the palette applies: only while the buffer
// holds at most a partial first token.
func (c *cmdLineModel) paletteActive() bool {
	return !strings.ContainsAny(c.buf.String(), " \t")
}

func (c *cmdLineModel) refilter() {
	if c.paletteActive() {
		c.palette.Filter(c.buf.String())
	}
}

func (m *appModel) updateCmdOverlay(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	c := m.cmdLine

	switch msg.String() {
	case keyEsc, keyCtrlC:
		m.cmdLine = nil
		return m, nil
	case "up":
		if c.paletteActive() {
			c.palette.MoveUp()
		}
		return m, nil
	case "down":
		if c.paletteActive() {
			c.palette.MoveDown()
		}
		return m, nil
	case "tab":
		if !c.paletteActive() {
			return m, nil
		}
		if a, ok := c.palette.Selected(); ok {
			text := a.Name
			if a.NeedsArg {
				text += " "
			}
			c.buf = editBuffer{}
			c.buf.insertString(text)
			c.refilter()
		}
		return m, nil
	case keyEnter:
		// On an empty buffer Enter acts on the palette selection: actions
		// that need an argument fill the buffer and stay open, the rest
		// execute immediately.
		if c.buf.Empty() {
			a, ok := c.palette.Selected()
			if !ok {
				m.cmdLine = nil
				return m, nil
			}
			if a.NeedsArg {
				c.buf.insertString(a.Name + " ")
				return m, nil
			}
			return m.executeCmdLine(a.Name)
		}
		return m.executeCmdLine(c.buf.String())
	}

	if c.buf.handleKey(msg.String()) {
		c.refilter()
		return m, nil
	}
	if msg.Text != "" {
		c.buf.insertString(msg.Text)
		c.refilter()
	}
	return m, nil
}

// executeCmdLine parses and dispatches one command line. The overlay closes
// on anything that dispatches; errors close it too and land in the status
// line, so the views underneath stay visible.
func (m *appModel) executeCmdLine(raw string) (tea.Model, tea.Cmd) {
	m.cmdLine = nil

	cmd, err := cmdline.Parse(raw)
	if err != nil {
		m.setError(err.Error())
		return m, nil
	}

	switch cmd.Kind {
	case cmdline.KindHelp:
		m.push(view{kind: viewHelp})
		return m, nil

	case cmdline.KindQuit:
		return m, tea.Quit

	case cmdline.KindRefresh:
		return m, m.refreshAll()

	case cmdline.KindJump:
		idx, err := cmdline.ResolveRepo(cmd.Target, m.ws.RepoNames())
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		return m, m.openDetail(idx, true)

	case cmdline.KindRun:
		idx, ok := m.contextRepo()
		if !ok {
			m.setError("no repository selected")
			return m, nil
		}
		return m, m.startCommand(idx, cmd.Name, cmd.Args)

	case cmdline.KindState:
		idx, ok := m.contextRepo()
		if !ok {
			m.setError("no repository selected")
			return m, nil
		}
		return m, m.startStateRefresh(idx)
	}
	return m, nil
}

func (m *appModel) viewCmdOverlay() string {
	c := m.cmdLine
	var b strings.Builder

	if c.paletteActive() {
		visible := c.palette.Visible()
		sel := c.palette.SelectedIndex()
		for i, a := range visible {
			name := fmt.Sprintf("%-8s", a.Name)
			if i == sel {
				b.WriteString("  " + m.theme.Title.Render("> "+name) + m.theme.HelpDesc.Render(a.Description) + "\n")
			} else {
				b.WriteString("    " + m.theme.HelpKey.Render(name) + m.theme.HelpDesc.Render(a.Description) + "\n")
			}
		}
		if len(visible) == 0 {
			b.WriteString("  " + m.theme.Subtitle.Render("no matching command") + "\n")
		}
	}

	b.WriteString(":" + renderEditBuffer(&c.buf))
	return b.String()
}
