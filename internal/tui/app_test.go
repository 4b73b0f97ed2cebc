package tui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/danielnaab/graft/internal/runner"
	"github.com/danielnaab/graft/internal/workspace"
)

func testApp() *appModel {
	ws := &workspace.Workspace{
		Root: "/tmp/ws",
		Name: "test",
		Tool: "graft-exec",
		Repos: []workspace.Repo{
			{Path: "/tmp/ws/alpha", Name: "alpha"},
			{Path: "/tmp/ws/beta", Name: "beta"},
			{Path: "/tmp/ws/gamma", Name: "gamma"},
		},
	}
	m := &appModel{
		ws:      ws,
		theme:   DefaultTheme(),
		version: "test",
		stack:   []view{{kind: viewDashboard}},
		width:   80,
		height:  24,
	}
	m.dash = newDash(&m.theme)
	m.dash.loading = false
	return m
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func typeString(m *appModel, s string) {
	for _, r := range s {
		m.dispatchKey(keyRune(r))
	}
}

// --- navigation stack ---

func TestStackPopAtRootIsNoop(t *testing.T) {
	m := testApp()
	if m.pop() {
		t.Error("pop at single-element stack = true, want false")
	}
	if len(m.stack) != 1 {
		t.Errorf("stack length = %d, want 1", len(m.stack))
	}
	if m.current().kind != viewDashboard {
		t.Errorf("current = %v, want dashboard", m.current().kind)
	}
}

func TestStackPushPop(t *testing.T) {
	m := testApp()
	m.push(view{kind: viewRepoDetail, repo: 1})
	m.push(view{kind: viewHelp})
	if m.current().kind != viewHelp {
		t.Errorf("current = %v, want help", m.current().kind)
	}
	if !m.pop() {
		t.Error("pop = false, want true")
	}
	if m.current().kind != viewRepoDetail {
		t.Errorf("current after pop = %v, want detail", m.current().kind)
	}
}

func TestResetHidesPriorHistory(t *testing.T) {
	m := testApp()
	m.push(view{kind: viewRepoDetail, repo: 0})
	m.push(view{kind: viewHelp})

	m.resetTo(view{kind: viewRepoDetail, repo: 2})
	if m.pop() {
		t.Error("pop after reset = true, want false (history discarded)")
	}
	cur := m.current()
	if cur.kind != viewRepoDetail || cur.repo != 2 {
		t.Errorf("current = %+v, want detail repo 2", cur)
	}
}

// --- dispatcher & overlays ---

func TestColonOpensCommandLine(t *testing.T) {
	m := testApp()
	m.dispatchKey(keyRune(':'))
	if m.cmdLine == nil {
		t.Fatal("command-line overlay not open after ':'")
	}
	if m.cmdLine.buf.Len() != 0 {
		t.Errorf("overlay buffer length = %d, want 0", m.cmdLine.buf.Len())
	}
}

func TestColonIsTextWhileArgOverlayOpen(t *testing.T) {
	m := testApp()
	m.argInput = newArgOverlay(0, "build")
	m.dispatchKey(keyRune(':'))
	if m.cmdLine != nil {
		t.Fatal("command-line overlay opened while argument input active")
	}
	if m.argInput.buf.String() != ":" {
		t.Errorf("argument buffer = %q, want %q", m.argInput.buf.String(), ":")
	}
}

func TestEscapeClosesCommandLine(t *testing.T) {
	m := testApp()
	m.dispatchKey(keyRune(':'))
	typeString(m, "ref")
	m.dispatchKey(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.cmdLine != nil {
		t.Error("command-line overlay still open after esc")
	}
	if m.current().kind != viewDashboard {
		t.Errorf("current = %v, want dashboard", m.current().kind)
	}
}

func TestPaletteFiltersWhileTyping(t *testing.T) {
	m := testApp()
	m.dispatchKey(keyRune(':'))
	typeString(m, "ru")

	visible := m.cmdLine.palette.Visible()
	if len(visible) != 1 || visible[0].Name != "run" {
		t.Fatalf("palette visible = %+v, want exactly [run]", visible)
	}
}

func TestPaletteDisabledAfterVerb(t *testing.T) {
	m := testApp()
	m.dispatchKey(keyRune(':'))
	typeString(m, "run build")
	if m.cmdLine.paletteActive() {
		t.Error("palette still active after verb committed")
	}
}

func TestEnterOnEmptyBufferFillsArgAction(t *testing.T) {
	m := testApp()
	m.dispatchKey(keyRune(':'))
	// Default selection is the first action, which takes an argument.
	m.dispatchKey(tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.cmdLine == nil {
		t.Fatal("overlay closed, want it open with the filled verb")
	}
	if got := m.cmdLine.buf.String(); got != "run " {
		t.Errorf("buffer = %q, want %q", got, "run ")
	}
}

func TestCommandLineJumpResetsStack(t *testing.T) {
	m := testApp()
	m.push(view{kind: viewHelp})

	m.dispatchKey(keyRune(':'))
	typeString(m, "repo 2")
	m.dispatchKey(tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.cmdLine != nil {
		t.Fatal("overlay still open after jump")
	}
	if len(m.stack) != 1 {
		t.Fatalf("stack length = %d, want 1", len(m.stack))
	}
	cur := m.current()
	if cur.kind != viewRepoDetail || cur.repo != 1 {
		t.Errorf("current = %+v, want detail repo 1 (1-based target 2)", cur)
	}
}

func TestCommandLineJumpBySubstring(t *testing.T) {
	m := testApp()
	m.dispatchKey(keyRune(':'))
	typeString(m, "repo gam")
	m.dispatchKey(tea.KeyPressMsg{Code: tea.KeyEnter})

	cur := m.current()
	if cur.kind != viewRepoDetail || cur.repo != 2 {
		t.Errorf("current = %+v, want detail repo 2", cur)
	}
}

func TestCommandLineUnknownVerbSurfacesError(t *testing.T) {
	m := testApp()
	m.dispatchKey(keyRune(':'))
	typeString(m, "bogus")
	m.dispatchKey(tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.cmdLine != nil {
		t.Error("overlay still open after failed submit")
	}
	if !m.statusErr || m.status == "" {
		t.Errorf("status = (%q, err=%v), want visible error", m.status, m.statusErr)
	}
	if m.current().kind != viewDashboard {
		t.Errorf("current = %v, want dashboard unchanged", m.current().kind)
	}
}

// --- argument input overlay ---

func TestArgOverlayRejectsUnterminatedQuote(t *testing.T) {
	m := testApp()
	m.resetTo(view{kind: viewRepoDetail, repo: 0})
	m.argInput = newArgOverlay(0, "build")

	typeString(m, `--target "unclosed`)
	m.dispatchKey(tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.argInput == nil {
		t.Fatal("overlay closed on malformed input, want it kept open")
	}
	if m.running() {
		t.Error("command started despite parse failure")
	}
	if !strings.Contains(m.viewArgOverlay(), "unterminated") {
		t.Error("overlay does not surface the parse error")
	}
}

func TestArgOverlayEscapeDiscards(t *testing.T) {
	m := testApp()
	m.argInput = newArgOverlay(0, "build")
	typeString(m, "abc")
	m.dispatchKey(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.argInput != nil {
		t.Error("overlay still open after esc")
	}
	if m.running() {
		t.Error("esc must not execute")
	}
}

func TestArgOverlayPreviewShowsRequotedCommand(t *testing.T) {
	m := testApp()
	m.argInput = newArgOverlay(0, "build")
	typeString(m, `--msg "two words"`)

	preview := m.viewArgOverlay()
	if !strings.Contains(preview, `"two words"`) {
		t.Errorf("preview missing re-quoted argument: %q", preview)
	}
	if !strings.Contains(preview, "graft-exec run build") {
		t.Errorf("preview missing invocation prefix: %q", preview)
	}
}

// --- output view ---

func TestOutputOverflowKeepsMostRecent(t *testing.T) {
	m := testApp()
	m.output = newOutput("alpha", "build", nil, &m.theme)

	const total = 15000
	batch := make([]runner.Event, 0, total)
	for i := 0; i < total; i++ {
		batch = append(batch, runner.LineEvent{Text: "line " + string(rune('0'+i%10))})
	}
	m.output.apply(batch)

	if got := m.output.buf.Len(); got != runner.MaxLines {
		t.Errorf("buffer length = %d, want %d", got, runner.MaxLines)
	}
	if !m.output.buf.Truncated() {
		t.Error("buffer not marked truncated")
	}
}

func TestOutputStateTerminalAfterExit(t *testing.T) {
	m := testApp()
	m.output = newOutput("alpha", "build", nil, &m.theme)
	m.output.apply([]runner.Event{
		runner.StartedEvent{},
		runner.LineEvent{Text: "ok"},
		runner.ExitEvent{Code: 0},
	})
	if !m.output.state.Terminal() {
		t.Error("state not terminal after exit event")
	}
	if m.output.state.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", m.output.state.ExitCode)
	}
}

func TestOutputStopConfirmCancelKeepsRunning(t *testing.T) {
	m := testApp()
	h := runner.Start("/tmp", "sleep", "60")
	defer h.Stop()
	m.output = newOutput("alpha", "build", h, &m.theme)
	m.output.apply([]runner.Event{runner.StartedEvent{}})
	m.push(view{kind: viewOutput})

	m.dispatchKey(keyRune('q'))
	if m.output.confirm == nil {
		t.Fatal("no stop confirmation after q while running")
	}
	m.dispatchKey(keyRune('n'))
	if m.output.confirm != nil {
		t.Error("confirmation still open after n")
	}
	if m.current().kind != viewOutput {
		t.Error("view popped on dismissed confirmation")
	}
}

func TestOutputStopConfirmYesPops(t *testing.T) {
	m := testApp()
	h := runner.Start("/tmp", "sleep", "60")
	m.output = newOutput("alpha", "build", h, &m.theme)
	m.output.apply([]runner.Event{runner.StartedEvent{}})
	m.push(view{kind: viewOutput})

	m.dispatchKey(keyRune('q'))
	m.dispatchKey(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if m.current().kind != viewDashboard {
		t.Errorf("current = %v, want dashboard after confirmed stop", m.current().kind)
	}

	// The kill surfaces as a terminal event on the channel.
	for ev := range h.Events() {
		m.output.state = m.output.state.Apply(ev)
	}
	if !m.output.state.Terminal() {
		t.Error("state never reached terminal after stop")
	}
}

// --- dashboard ---

func TestDashboardFilterNarrowsRepos(t *testing.T) {
	m := testApp()
	m.dispatchKey(keyRune('/'))
	if !m.dash.filtering {
		t.Fatal("filter input not focused after /")
	}
	m.dispatchKey(tea.KeyPressMsg{Code: 'b', Text: "b"})

	visible := m.visibleRepos()
	for _, idx := range visible {
		if !strings.Contains(m.ws.Repos[idx].Name, "b") {
			t.Errorf("repo %q visible under filter %q", m.ws.Repos[idx].Name, "b")
		}
	}
}

func TestDashboardColonSuppressedWhileFiltering(t *testing.T) {
	m := testApp()
	m.dispatchKey(keyRune('/'))
	m.dispatchKey(keyRune(':'))
	if m.cmdLine != nil {
		t.Error("command line opened while filter input focused")
	}
}

func TestEscapeFromDetailResetsHome(t *testing.T) {
	m := testApp()
	m.resetTo(view{kind: viewRepoDetail, repo: 1})
	m.detail = newDetail(1)
	m.dispatchKey(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.current().kind != viewDashboard {
		t.Errorf("current = %v, want dashboard", m.current().kind)
	}
	if len(m.stack) != 1 {
		t.Errorf("stack length = %d, want 1", len(m.stack))
	}
}

func TestDetachedRunStaysReachable(t *testing.T) {
	m := testApp()
	h := runner.Start("/tmp", "sleep", "60")
	defer h.Stop()
	m.output = newOutput("alpha", "build", h, &m.theme)
	m.output.apply([]runner.Event{runner.StartedEvent{}})
	m.push(view{kind: viewOutput})

	// Esc detaches: back to the dashboard with the run still in flight.
	m.dispatchKey(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.current().kind != viewDashboard {
		t.Fatalf("current = %v, want dashboard after esc", m.current().kind)
	}
	if !m.running() {
		t.Fatal("run not in flight after detach")
	}
	if !strings.Contains(m.viewDashboard(), "still running") {
		t.Error("dashboard does not show the in-flight run")
	}

	// A refused execution leads back to the running output view, where the
	// stop confirmation is reachable again.
	m.dispatchKey(keyRune(':'))
	typeString(m, "state")
	m.dispatchKey(tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.current().kind != viewOutput {
		t.Fatalf("current = %v, want output view reopened", m.current().kind)
	}
	if got := m.output.cmdName; got != "build" {
		t.Errorf("output command = %q, want the original run %q", got, "build")
	}
	m.dispatchKey(keyRune('q'))
	if m.output.confirm == nil {
		t.Error("stop confirmation unreachable after reopening")
	}
}

func TestRefusedCommandDoesNotReplaceRun(t *testing.T) {
	m := testApp()
	h := runner.Start("/tmp", "sleep", "60")
	defer h.Stop()
	m.output = newOutput("alpha", "build", h, &m.theme)
	m.output.apply([]runner.Event{runner.StartedEvent{}})
	m.push(view{kind: viewOutput})

	if cmd := m.startCommand(1, "test", nil); cmd != nil {
		t.Error("second execution started while one is running")
	}
	if m.output.handle != h {
		t.Error("in-flight handle replaced by refused execution")
	}
	if !m.statusErr || m.status == "" {
		t.Errorf("status = (%q, err=%v), want visible refusal", m.status, m.statusErr)
	}
}

func TestDashboardWarnsWhenToolMissing(t *testing.T) {
	m := testApp()
	m.toolMissing = true
	if !strings.Contains(m.viewDashboard(), "not found in PATH") {
		t.Error("dashboard does not warn about a missing tool")
	}
}
