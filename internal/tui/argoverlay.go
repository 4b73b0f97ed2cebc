package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/danielnaab/graft/internal/shellwords"
)

// argInputModel is the argument-input overlay: a one-line editor for the
// arguments of a command that declared it takes them. The input is tokenized
// live; confirm is gated on the tokens being well formed.
type argInputModel struct {
	repo    int
	cmdName string
	buf     editBuffer
}

func newArgOverlay(repoIdx int, cmdName string) *argInputModel {
	return &argInputModel{repo: repoIdx, cmdName: cmdName}
}

func (m *appModel) updateArgOverlay(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	a := m.argInput

	switch msg.String() {
	case keyEsc, keyCtrlC:
		m.argInput = nil
		return m, nil
	case keyEnter:
		toks, err := shellwords.Split(a.buf.String())
		if err != nil {
			// Malformed input stays open; the preview line carries the
			// parse error.
			return m, nil
		}
		return m, m.startCommand(a.repo, a.cmdName, toks)
	}

	if a.buf.handleKey(msg.String()) {
		return m, nil
	}
	if msg.Text != "" {
		a.buf.insertString(msg.Text)
	}
	return m, nil
}

func (m *appModel) viewArgOverlay() string {
	a := m.argInput
	repo := m.ws.Repos[a.repo]

	prompt := m.theme.Title.Render(fmt.Sprintf("args for %s · %s", repo.Name, a.cmdName))
	line := "> " + renderEditBuffer(&a.buf)

	// Live preview of the exact invocation, re-quoted from the parsed
	// tokens. Styled as an error while the buffer does not parse.
	var preview string
	if toks, err := shellwords.Split(a.buf.String()); err != nil {
		preview = m.theme.ErrLine.Render(err.Error())
	} else {
		full := append([]string{m.ws.Tool, "run", a.cmdName}, toks...)
		preview = m.theme.Subtitle.Render("$ " + shellwords.Join(full))
	}

	hints := m.theme.Subtitle.Render(fmt.Sprintf("%s run  %s cancel",
		m.theme.HelpKey.Render(keyEnter), m.theme.HelpKey.Render(keyEsc)))

	return prompt + "\n" + line + "\n" + preview + "\n" + hints
}
