package tui

import (
	"github.com/danielnaab/graft/internal/commands"
	"github.com/danielnaab/graft/internal/runner"
	"github.com/danielnaab/graft/internal/statequery"
	"github.com/danielnaab/graft/internal/workspace"
)

// reposStatusMsg carries the result of a full workspace status scan.
type reposStatusMsg struct {
	statuses []workspace.Status
}

// detailLoadedMsg carries one repository's drill-down data. The repo index
// guards against stale deliveries after navigation.
type detailLoadedMsg struct {
	repo   int
	detail *workspace.Detail
	err    string
}

// registryLoadedMsg carries one repository's declared commands.
type registryLoadedMsg struct {
	repo int
	reg  *commands.Registry
	err  string
}

// stateLoadedMsg carries one repository's cached state-query summaries.
type stateLoadedMsg struct {
	repo  int
	cache *statequery.Cache
	err   string
}

// runnerEventsMsg carries a drained batch of execution-engine events.
// closed marks the end of the stream; no re-arm happens after it.
type runnerEventsMsg struct {
	events []runner.Event
	closed bool
}
