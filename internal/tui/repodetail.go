package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/danielnaab/graft/internal/commands"
	"github.com/danielnaab/graft/internal/statequery"
	"github.com/danielnaab/graft/internal/workspace"
)

// maxFileRows caps the changed-file listing in the detail view.
const maxFileRows = 8

// detailModel is the per-repository drill-down state. It is rebuilt on
// every navigation, so stale loads are discarded by repo index.
type detailModel struct {
	repo int

	data    *workspace.Detail
	dataErr string

	reg    *commands.Registry
	regErr string

	state    *statequery.Cache
	stateErr string

	loadingDetail bool
	loadingReg    bool
	loadingState  bool

	cursor int // over the command list
}

func newDetail(repoIdx int) detailModel {
	return detailModel{
		repo:          repoIdx,
		loadingDetail: true,
		loadingReg:    true,
		loadingState:  true,
	}
}

func (d *detailModel) clampCursor() {
	if d.reg == nil || d.cursor >= d.reg.Len() {
		d.cursor = 0
	}
}

func (m *appModel) updateDetail(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	d := &m.detail

	switch msg.String() {
	case keyEsc:
		m.resetHome()
		return m, nil
	case "q", keyCtrlC:
		m.pop()
		return m, nil
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.reg != nil && d.cursor < d.reg.Len()-1 {
			d.cursor++
		}
	case "r":
		m.detail = newDetail(d.repo)
		return m, m.loadDetailCmds(d.repo)
	case "s":
		return m, m.startStateRefresh(d.repo)
	case "?":
		m.push(view{kind: viewHelp})
	case keyEnter:
		if d.reg == nil || d.reg.Len() == 0 {
			return m, nil
		}
		cmd := d.reg.List()[d.cursor]
		if cmd.Args {
			m.argInput = newArgOverlay(d.repo, cmd.Name)
			return m, nil
		}
		return m, m.startCommand(d.repo, cmd.Name, nil)
	}
	return m, nil
}

func (m *appModel) viewDetail() string {
	d := &m.detail
	repo := m.ws.Repos[d.repo]
	var b strings.Builder

	b.WriteString(m.theme.SectionBanner(repo.Name))

	// Status header
	switch {
	case d.loadingDetail:
		b.WriteString("\n  Loading...\n")
	case d.dataErr != "":
		b.WriteString("\n  " + m.theme.ErrLine.Render(d.dataErr) + "\n")
	default:
		b.WriteString("  " + m.renderStatus(d.data.Status) + "\n")
	}

	if d.data != nil {
		b.WriteString("\n")
		b.WriteString(m.theme.SubBanner("changed files"))
		if len(d.data.Files) == 0 {
			b.WriteString(m.theme.Subtitle.Render("  clean") + "\n")
		} else {
			for i, f := range d.data.Files {
				if i == maxFileRows {
					b.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("  +%d more", len(d.data.Files)-maxFileRows)) + "\n")
					break
				}
				code := lipgloss.NewStyle().Foreground(m.theme.Warning).Render(f.Code)
				b.WriteString(fmt.Sprintf("  %s %s\n", code, f.Path))
			}
		}

		b.WriteString("\n")
		b.WriteString(m.theme.SubBanner("recent commits"))
		if len(d.data.Commits) == 0 {
			b.WriteString(m.theme.Subtitle.Render("  no commits") + "\n")
		} else {
			for _, c := range d.data.Commits {
				hash := lipgloss.NewStyle().Foreground(m.theme.Secondary).Render(c.Hash)
				subject := runewidth.Truncate(c.Subject, 60, "…")
				age := m.theme.Subtitle.Render(c.Age)
				b.WriteString(fmt.Sprintf("  %s %s  %s\n", hash, subject, age))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.SubBanner("state"))
	b.WriteString(m.renderState())

	b.WriteString("\n")
	b.WriteString(m.theme.SubBanner("commands"))
	b.WriteString(m.renderCommands())

	return b.String()
}

func (m *appModel) renderState() string {
	d := &m.detail
	switch {
	case d.loadingState:
		return "  Loading...\n"
	case d.stateErr != "":
		return "  " + m.theme.ErrLine.Render(d.stateErr) + "\n"
	case d.state == nil || d.state.Empty():
		return m.theme.Subtitle.Render("  no state recorded — press s to refresh") + "\n"
	}

	var b strings.Builder
	for _, q := range d.state.Queries {
		name := lipgloss.NewStyle().Bold(true).Render(q.Name)
		if q.Error != "" {
			b.WriteString(fmt.Sprintf("  %s: %s\n", name, m.theme.ErrLine.Render(q.Error)))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %s\n", name, q.Summary))
	}
	if age := d.state.Age(time.Now()); age > 0 {
		b.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("  as of %s ago", age.Round(time.Minute))) + "\n")
	}
	return b.String()
}

func (m *appModel) renderCommands() string {
	d := &m.detail
	switch {
	case d.loadingReg:
		return "  Loading...\n"
	case d.regErr != "":
		return "  " + m.theme.ErrLine.Render(d.regErr) + "\n"
	case d.reg == nil || d.reg.Len() == 0:
		return m.theme.Subtitle.Render("  no commands declared (.graft/commands.yaml)") + "\n"
	}

	list := d.reg.List()
	maxName := 0
	for _, c := range list {
		if len(c.Name) > maxName {
			maxName = len(c.Name)
		}
	}

	var b strings.Builder
	for i, c := range list {
		name := fmt.Sprintf("%-*s", maxName, c.Name)
		desc := m.theme.Subtitle.Render(c.Description)
		if c.Args {
			desc += "  " + m.theme.Subtitle.Render("(takes arguments)")
		}

		if i == d.cursor {
			cursor := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).Render("> ")
			name = lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).Render(name)
			b.WriteString("  " + cursor + name + "  " + desc + "\n")
		} else {
			b.WriteString("    " + name + "  " + desc + "\n")
		}
	}
	return b.String()
}
