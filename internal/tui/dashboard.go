package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/danielnaab/graft/internal/workspace"
)

// dashModel is the repository-list state. The repository order itself lives
// on the workspace; this only tracks display state.
type dashModel struct {
	statuses []workspace.Status
	loading  bool
	spin     spinner.Model
	cursor   int // index into the visible (possibly filtered) list
	scroll   int

	filter    textinput.Model
	filtering bool // filter input focused
}

func newDash(theme *Theme) dashModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	ti := textinput.New()
	ti.Placeholder = "filter repositories"

	return dashModel{
		loading: true,
		spin:    sp,
		filter:  ti,
	}
}

func (d *dashModel) clearFilter() {
	d.filter.SetValue("")
	d.filter.Blur()
	d.filtering = false
	d.cursor = 0
	d.scroll = 0
}

func (d *dashModel) clampCursor(visible int) {
	if visible == 0 {
		d.cursor = 0
		return
	}
	if d.cursor >= visible {
		d.cursor = visible - 1
	}
}

// visibleRepos returns the repository indices shown on the dashboard, in
// display order. With an active filter this is the fuzzy match ranking over
// repository names; canonical indices are preserved so jumps and detail
// navigation are unaffected by filtering.
func (m *appModel) visibleRepos() []int {
	query := strings.TrimSpace(m.dash.filter.Value())
	if query == "" {
		idx := make([]int, len(m.ws.Repos))
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	matches := fuzzy.Find(query, m.ws.RepoNames())
	idx := make([]int, len(matches))
	for i, match := range matches {
		idx[i] = match.Index
	}
	return idx
}

func (m *appModel) updateDashboard(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	d := &m.dash

	if d.filtering {
		switch msg.String() {
		case keyEsc:
			d.clearFilter()
			return m, nil
		case keyEnter:
			d.filtering = false
			d.filter.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			d.filter, cmd = d.filter.Update(msg)
			d.cursor, d.scroll = 0, 0
			return m, cmd
		}
	}

	if IsQuit(msg) {
		return m, tea.Quit
	}

	visible := m.visibleRepos()
	switch msg.String() {
	case keyEsc:
		m.resetHome()
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
		d.clampScroll(len(visible), m.dashRows())
	case "down", "j":
		if d.cursor < len(visible)-1 {
			d.cursor++
		}
		d.clampScroll(len(visible), m.dashRows())
	case "g":
		d.cursor = 0
		d.clampScroll(len(visible), m.dashRows())
	case "G":
		if len(visible) > 0 {
			d.cursor = len(visible) - 1
		}
		d.clampScroll(len(visible), m.dashRows())
	case "/":
		d.filtering = true
		return m, d.filter.Focus()
	case "r":
		return m, m.refreshAll()
	case "?":
		m.push(view{kind: viewHelp})
	case keyEnter:
		if len(visible) > 0 {
			return m, m.openDetail(visible[d.cursor], false)
		}
	}
	return m, nil
}

// dashRows is how many repository rows fit under the banner and table
// header; the bottom bar is rendered separately by the app.
func (m *appModel) dashRows() int {
	const overhead = 8
	rows := m.height - overhead
	if rows < 1 {
		return 1
	}
	return rows
}

// clampScroll keeps the cursor visible within the scrolled window.
func (d *dashModel) clampScroll(total, visible int) {
	if d.cursor < d.scroll {
		d.scroll = d.cursor
	}
	if d.cursor >= d.scroll+visible {
		d.scroll = d.cursor - visible + 1
	}
	maxScroll := total - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if d.scroll > maxScroll {
		d.scroll = maxScroll
	}
}

func (m *appModel) viewDashboard() string {
	d := &m.dash
	var b strings.Builder

	title := m.theme.Title.Render(fmt.Sprintf("graft  %s", m.version))
	subtitle := m.theme.Subtitle.Render(m.ws.Name)
	b.WriteString(m.theme.Banner.Render(title + "\n" + subtitle))
	b.WriteString("\n")

	if m.toolMissing {
		b.WriteString("  " + m.theme.ErrLine.
			Render(fmt.Sprintf("%s not found in PATH — commands will fail to start", m.ws.Tool)))
		b.WriteString("\n")
	}
	if m.running() {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(m.theme.Accent).
			Render(fmt.Sprintf("● %s still running in %s", m.output.cmdName, m.output.repoName)))
		b.WriteString("\n")
	}

	if d.filtering || d.filter.Value() != "" {
		b.WriteString("  / " + d.filter.View())
		b.WriteString("\n")
	}

	if d.loading {
		b.WriteString(fmt.Sprintf("\n  %s scanning repositories...\n", d.spin.View()))
		return b.String()
	}

	visible := m.visibleRepos()
	if len(visible) == 0 {
		if len(m.ws.Repos) == 0 {
			b.WriteString("\n  No repositories declared in graft.yaml.\n")
		} else {
			b.WriteString("\n  No repositories match the filter.\n")
		}
		return b.String()
	}

	nameWidth := 0
	for _, i := range visible {
		if w := runewidth.StringWidth(m.ws.Repos[i].Name); w > nameWidth {
			nameWidth = w
		}
	}
	if nameWidth > 40 {
		nameWidth = 40
	}

	b.WriteString(fmt.Sprintf("\n  %-*s  %s\n", nameWidth+2, "REPOSITORY", "STATUS"))
	b.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("  %s  %s",
		strings.Repeat("─", nameWidth+2), strings.Repeat("─", 20))))
	b.WriteString("\n")

	rows := m.dashRows()
	end := d.scroll + rows
	if end > len(visible) {
		end = len(visible)
	}

	for pos := d.scroll; pos < end; pos++ {
		i := visible[pos]
		name := runewidth.Truncate(m.ws.Repos[i].Name, nameWidth, "…")
		name = fmt.Sprintf("%-*s", nameWidth+2, name)

		var status string
		if i < len(d.statuses) {
			status = m.renderStatus(d.statuses[i])
		}

		if pos == d.cursor {
			cursor := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).Render("> ")
			name = lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).Render(name)
			b.WriteString("  " + cursor + name + status + "\n")
		} else {
			b.WriteString("    " + name + status + "\n")
		}
	}

	if len(visible) > rows {
		b.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("  %d/%d", d.cursor+1, len(visible))))
		b.WriteString("\n")
	}

	return b.String()
}

// renderStatus styles one repository's status cell.
func (m *appModel) renderStatus(st workspace.Status) string {
	if st.Err != "" {
		return m.theme.ErrLine.Render(st.Err)
	}

	parts := []string{lipgloss.NewStyle().Foreground(m.theme.Secondary).Render(st.Branch)}
	if st.Dirty > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.Warning).Render(fmt.Sprintf("~%d", st.Dirty)))
	}
	if st.Ahead > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.Success).Render(fmt.Sprintf("↑%d", st.Ahead)))
	}
	if st.Behind > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.Accent).Render(fmt.Sprintf("↓%d", st.Behind)))
	}
	return strings.Join(parts, " ")
}
