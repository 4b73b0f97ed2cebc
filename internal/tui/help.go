package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
)

func (m *appModel) updateHelp(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "?", keyCtrlC:
		m.pop()
	case keyEsc:
		m.resetHome()
	}
	return m, nil
}

type helpEntry struct {
	key  string
	desc string
}

func (m *appModel) viewHelp() string {
	sections := []struct {
		title   string
		entries []helpEntry
	}{
		{"dashboard", []helpEntry{
			{"j/k", "move selection"},
			{"g/G", "first / last repository"},
			{"enter", "open repository"},
			{"/", "filter repositories"},
			{"r", "refresh all statuses"},
		}},
		{"repository", []helpEntry{
			{"j/k", "select command"},
			{"enter", "run selected command"},
			{"r", "reload repository data"},
			{"s", "refresh state queries"},
			{"q", "back"},
		}},
		{"output", []helpEntry{
			{"j/k", "scroll"},
			{"ctrl+u/d", "half page"},
			{"g/G", "top / bottom (G follows)"},
			{"q", "stop or close"},
		}},
		{"command line", []helpEntry{
			{":", "open command line"},
			{"tab", "accept palette selection"},
			{"up/down", "move palette selection"},
			{":run <name> [args]", "run a command here"},
			{":repo <name|number>", "jump to a repository"},
			{":state", "refresh state queries"},
			{":refresh", "refresh all statuses"},
			{":quit", "exit"},
		}},
		{"everywhere", []helpEntry{
			{"esc", "back to dashboard"},
			{"?", "this help"},
		}},
	}

	var b strings.Builder
	b.WriteString(m.theme.SectionBanner("help"))
	for _, s := range sections {
		b.WriteString(m.theme.SubBanner(s.title))
		for _, e := range s.entries {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				m.theme.HelpKey.Render(fmt.Sprintf("%-20s", e.key)),
				m.theme.HelpDesc.Render(e.desc)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
