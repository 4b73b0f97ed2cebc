package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// confirmModel is the yes/no gate shown before stopping a running command.
// y confirms; n and esc dismiss without effect.
type confirmModel struct {
	Title  string
	Body   string
	Cursor bool // true = yes
	theme  *Theme
}

func newConfirm(title, body string, theme *Theme) *confirmModel {
	return &confirmModel{Title: title, Body: body, theme: theme}
}

// handleKey returns (answered, confirmed).
func (m *confirmModel) handleKey(msg tea.KeyPressMsg) (bool, bool) {
	switch msg.String() {
	case "y", "Y":
		return true, true
	case "n", "N", keyEsc:
		return true, false
	case "left", "right", "h", "l", "tab":
		m.Cursor = !m.Cursor
	case keyEnter:
		return true, m.Cursor
	}
	return false, false
}

func (m *confirmModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render(m.Title))
	b.WriteString("\n\n")

	if m.Body != "" {
		b.WriteString(m.Body)
		b.WriteString("\n\n")
	}

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(0, 1)

	unselectedStyle := lipgloss.NewStyle().
		Foreground(m.theme.Muted).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Muted).
		Padding(0, 1)

	var yes, no string
	if m.Cursor {
		yes = selectedStyle.Render("Yes")
		no = unselectedStyle.Render("No")
	} else {
		yes = unselectedStyle.Render("Yes")
		no = selectedStyle.Render("No")
	}

	b.WriteString(yes + "  " + no)
	b.WriteString("\n\n")

	help := m.theme.HelpKey.Render("y") + " " + m.theme.HelpDesc.Render("stop") + "  " +
		m.theme.HelpKey.Render("n/esc") + " " + m.theme.HelpDesc.Render("keep running")
	b.WriteString(help)

	return b.String()
}
