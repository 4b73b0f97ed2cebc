package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/danielnaab/graft/internal/commands"
	"github.com/danielnaab/graft/internal/platform"
	"github.com/danielnaab/graft/internal/runner"
	"github.com/danielnaab/graft/internal/statequery"
	"github.com/danielnaab/graft/internal/workspace"
)

// viewKind discriminates the fixed set of full-screen views. The dispatcher
// and renderer switch over it exhaustively; there is no open view interface.
type viewKind int

const (
	viewDashboard viewKind = iota
	viewRepoDetail
	viewOutput
	viewHelp
)

// view is one entry of the navigation stack. Views carry no mutable state of
// their own beyond the repository index; per-view state lives on appModel
// and is reset on navigation.
type view struct {
	kind viewKind
	repo int // viewRepoDetail only
}

// appModel is the root model: it owns the navigation stack, the overlay
// slots, and all per-view state. Overlays are not views; at most one is
// non-nil at a time and it sees every keystroke before the current view.
type appModel struct {
	ws          *workspace.Workspace
	theme       Theme
	version     string
	width       int
	height      int
	toolMissing bool // ws.Tool not found in PATH at startup

	stack []view

	dash   dashModel
	detail detailModel
	output outputModel

	argInput *argInputModel
	cmdLine  *cmdLineModel

	status    string // inline status line in the bottom bar
	statusErr bool
}

// Run starts the interactive TUI over a loaded workspace.
func Run(ws *workspace.Workspace, version string) error {
	theme := DefaultTheme()

	m := &appModel{
		ws:          ws,
		theme:       theme,
		version:     version,
		stack:       []view{{kind: viewDashboard}},
		toolMissing: !platform.Exists(ws.Tool),
	}
	m.dash = newDash(&m.theme)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func (m *appModel) Init() tea.Cmd {
	return tea.Batch(m.dash.spin.Tick, loadStatusesCmd(m.ws))
}

// --- navigation stack ---

// current returns the top view. The stack is never empty.
func (m *appModel) current() view {
	return m.stack[len(m.stack)-1]
}

func (m *appModel) push(v view) {
	m.stack = append(m.stack, v)
}

// pop removes the top view. At a single-element stack it is a no-op and
// returns false; the caller decides whether that means quit.
func (m *appModel) pop() bool {
	if len(m.stack) <= 1 {
		return false
	}
	m.stack = m.stack[:len(m.stack)-1]
	return true
}

// resetTo replaces the whole stack with [v], so going back afterward does
// not retrace the jump's origin.
func (m *appModel) resetTo(v view) {
	m.stack = []view{v}
}

func (m *appModel) resetHome() {
	m.resetTo(view{kind: viewDashboard})
	m.dash.clearFilter()
}

// --- status line ---

func (m *appModel) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *appModel) setError(s string) {
	m.status, m.statusErr = s, true
}

func (m *appModel) clearStatus() {
	m.status, m.statusErr = "", false
}

// --- update ---

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.output.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		return m.dispatchKey(msg)

	case reposStatusMsg:
		m.dash.loading = false
		m.dash.statuses = msg.statuses
		m.dash.clampCursor(len(m.visibleRepos()))
		return m, nil

	case detailLoadedMsg:
		if msg.repo == m.detail.repo {
			m.detail.loadingDetail = false
			m.detail.data = msg.detail
			m.detail.dataErr = msg.err
		}
		return m, nil

	case registryLoadedMsg:
		if msg.repo == m.detail.repo {
			m.detail.loadingReg = false
			m.detail.reg = msg.reg
			m.detail.regErr = msg.err
			m.detail.clampCursor()
		}
		return m, nil

	case stateLoadedMsg:
		if msg.repo == m.detail.repo {
			m.detail.loadingState = false
			m.detail.state = msg.cache
			m.detail.stateErr = msg.err
		}
		return m, nil

	case runnerEventsMsg:
		m.output.apply(msg.events)
		if msg.closed {
			return m, nil
		}
		return m, listenRunnerCmd(m.output.handle)
	}

	// Spinner ticks and other widget messages while the dashboard loads.
	if m.dash.loading {
		var cmd tea.Cmd
		m.dash.spin, cmd = m.dash.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// dispatchKey is the single keystroke entry point. Priority: argument-input
// overlay, command-line overlay, command-line activation, then the current
// view. While the argument-input overlay is open ':' is ordinary text, so
// the overlays can never stack.
func (m *appModel) dispatchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.clearStatus()

	if m.argInput != nil {
		return m.updateArgOverlay(msg)
	}
	if m.cmdLine != nil {
		return m.updateCmdOverlay(msg)
	}
	if msg.String() == ":" && !m.dash.filtering {
		m.cmdLine = newCmdOverlay()
		return m, nil
	}

	switch m.current().kind {
	case viewDashboard:
		return m.updateDashboard(msg)
	case viewRepoDetail:
		return m.updateDetail(msg)
	case viewOutput:
		return m.updateOutput(msg)
	case viewHelp:
		return m.updateHelp(msg)
	}
	return m, nil
}

// --- navigation actions ---

// openDetail navigates to a repository's detail view. reset collapses the
// stack (direct jumps); otherwise the view is pushed.
func (m *appModel) openDetail(repoIdx int, reset bool) tea.Cmd {
	m.detail = newDetail(repoIdx)
	target := view{kind: viewRepoDetail, repo: repoIdx}
	if reset {
		m.resetTo(target)
	} else {
		m.push(target)
	}
	return m.loadDetailCmds(repoIdx)
}

// loadDetailCmds kicks off the three collaborator loads for a repository.
// Each failure surfaces inline in its own section; none is fatal.
func (m *appModel) loadDetailCmds(repoIdx int) tea.Cmd {
	repo := m.ws.Repos[repoIdx]
	return tea.Batch(
		func() tea.Msg {
			d, err := workspace.LoadDetail(repo)
			if err != nil {
				return detailLoadedMsg{repo: repoIdx, err: err.Error()}
			}
			return detailLoadedMsg{repo: repoIdx, detail: d}
		},
		func() tea.Msg {
			reg, err := commands.Load(repo.Path)
			if err != nil {
				return registryLoadedMsg{repo: repoIdx, err: err.Error()}
			}
			return registryLoadedMsg{repo: repoIdx, reg: reg}
		},
		func() tea.Msg {
			cache, err := statequery.Load(repo.Path)
			if err != nil {
				return stateLoadedMsg{repo: repoIdx, err: err.Error()}
			}
			return stateLoadedMsg{repo: repoIdx, cache: cache}
		},
	)
}

// startCommand dispatches one repository command through the execution
// engine and navigates to the output view. Overlays are cleared first: the
// overlay slot is orthogonal to the stack and would otherwise persist over
// the new view. Only one execution may be in flight.
func (m *appModel) startCommand(repoIdx int, name string, args []string) tea.Cmd {
	if m.running() {
		m.reopenOutput()
		return nil
	}
	m.argInput = nil
	m.cmdLine = nil

	repo := m.ws.Repos[repoIdx]
	toolArgs := append([]string{"run", name}, args...)
	h := runner.Start(repo.Path, m.ws.Tool, toolArgs...)

	m.output = newOutput(repo.Name, name, h, &m.theme)
	m.output.setSize(m.width, m.height)
	m.push(view{kind: viewOutput})
	return listenRunnerCmd(h)
}

// startStateRefresh runs the external tool's state-refresh for a repository
// through the engine, streaming into the output view like any command.
func (m *appModel) startStateRefresh(repoIdx int) tea.Cmd {
	if m.running() {
		m.reopenOutput()
		return nil
	}
	m.argInput = nil
	m.cmdLine = nil

	repo := m.ws.Repos[repoIdx]
	h := runner.Start(repo.Path, m.ws.Tool, statequery.RefreshArgs...)

	m.output = newOutput(repo.Name, "state refresh", h, &m.theme)
	m.output.setSize(m.width, m.height)
	m.push(view{kind: viewOutput})
	return listenRunnerCmd(h)
}

// running reports whether an execution is still in flight.
func (m *appModel) running() bool {
	return m.output.handle != nil && !m.output.state.Terminal()
}

// reopenOutput returns to the in-flight run when a new execution is
// refused. Esc on a running output view detaches from it, so the refusal
// is the way back — otherwise the run (and its stop confirmation) would be
// unreachable until the child exits on its own.
func (m *appModel) reopenOutput() {
	m.argInput = nil
	m.cmdLine = nil
	m.setError(m.output.cmdName + " is still running")
	if m.current().kind != viewOutput {
		m.push(view{kind: viewOutput})
	}
}

// contextRepo is the repository a context-free command (:run, :state)
// applies to: the detail view's repository when one is open, otherwise the
// dashboard selection.
func (m *appModel) contextRepo() (int, bool) {
	for i := len(m.stack) - 1; i >= 0; i-- {
		if m.stack[i].kind == viewRepoDetail {
			return m.stack[i].repo, true
		}
	}
	if len(m.ws.Repos) == 0 {
		return 0, false
	}
	visible := m.visibleRepos()
	if len(visible) == 0 {
		return 0, false
	}
	if m.dash.cursor >= len(visible) {
		return visible[0], true
	}
	return visible[m.dash.cursor], true
}

// refreshAll re-scans every repository's status.
func (m *appModel) refreshAll() tea.Cmd {
	m.dash.loading = true
	return tea.Batch(m.dash.spin.Tick, loadStatusesCmd(m.ws))
}

// --- async commands ---

func loadStatusesCmd(ws *workspace.Workspace) tea.Cmd {
	return func() tea.Msg {
		return reposStatusMsg{statuses: ws.LoadStatuses(context.Background())}
	}
}

// listenRunnerCmd blocks on the engine's event channel, then drains
// whatever else is already pending so one message delivers the batch.
func listenRunnerCmd(h *runner.Handle) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-h.Events()
		if !ok {
			return runnerEventsMsg{closed: true}
		}
		batch := runnerEventsMsg{events: []runner.Event{ev}}
		for {
			select {
			case ev, ok := <-h.Events():
				if !ok {
					batch.closed = true
					return batch
				}
				batch.events = append(batch.events, ev)
			default:
				return batch
			}
		}
	}
}

// --- render ---

func (m *appModel) View() tea.View {
	var v tea.View
	v.AltScreen = true

	var content string
	switch m.current().kind {
	case viewDashboard:
		content = m.viewDashboard()
	case viewRepoDetail:
		content = m.viewDetail()
	case viewOutput:
		content = m.viewOutput()
	case viewHelp:
		content = m.viewHelp()
	}

	v.Content = content + "\n" + m.renderBottom()
	return v
}

// renderBottom draws the reserved bottom area: the active overlay when one
// is open, otherwise the passive hint bar with the inline status.
func (m *appModel) renderBottom() string {
	if m.argInput != nil {
		return m.viewArgOverlay()
	}
	if m.cmdLine != nil {
		return m.viewCmdOverlay()
	}
	return m.hintBar()
}

func (m *appModel) hintBar() string {
	if m.status != "" {
		if m.statusErr {
			return m.theme.ErrLine.Render(m.status)
		}
		return m.theme.Subtitle.Render(m.status)
	}

	var hints string
	switch m.current().kind {
	case viewDashboard:
		hints = fmt.Sprintf("%s navigate  %s open  %s filter  %s command  %s refresh  %s help  %s quit",
			m.theme.HelpKey.Render("j/k"),
			m.theme.HelpKey.Render(keyEnter),
			m.theme.HelpKey.Render("/"),
			m.theme.HelpKey.Render(":"),
			m.theme.HelpKey.Render("r"),
			m.theme.HelpKey.Render("?"),
			m.theme.HelpKey.Render("q"))
	case viewRepoDetail:
		hints = fmt.Sprintf("%s select  %s run  %s reload  %s state  %s command  %s back",
			m.theme.HelpKey.Render("j/k"),
			m.theme.HelpKey.Render(keyEnter),
			m.theme.HelpKey.Render("r"),
			m.theme.HelpKey.Render("s"),
			m.theme.HelpKey.Render(":"),
			m.theme.HelpKey.Render("q"))
	case viewOutput:
		if m.running() {
			hints = fmt.Sprintf("%s scroll  %s follow  %s stop",
				m.theme.HelpKey.Render("j/k"),
				m.theme.HelpKey.Render("G"),
				m.theme.HelpKey.Render("q"))
		} else {
			hints = fmt.Sprintf("%s scroll  %s/%s top/bottom  %s close",
				m.theme.HelpKey.Render("j/k"),
				m.theme.HelpKey.Render("g"),
				m.theme.HelpKey.Render("G"),
				m.theme.HelpKey.Render("q"))
		}
	case viewHelp:
		hints = m.theme.HelpKey.Render("esc / q / ?") + " " + m.theme.HelpDesc.Render("close")
	}
	return hints
}
