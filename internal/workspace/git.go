package workspace

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/danielnaab/graft/internal/platform"
)

// statusScanLimit bounds how many repositories are inspected concurrently.
const statusScanLimit = 8

// Status is the dashboard display state of one repository.
type Status struct {
	Branch string
	Dirty  int // changed file count from git status --porcelain
	Ahead  int
	Behind int
	Err    string // per-repo failure, never fatal to the scan
}

// LoadStatus inspects a single repository with git.
func LoadStatus(repo Repo) Status {
	if !platform.FileExists(repo.Path) {
		return Status{Err: "path does not exist"}
	}

	branch, err := platform.OutputDir(repo.Path, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return Status{Err: "not a git repository"}
	}

	st := Status{Branch: branch}

	if out, err := platform.OutputDir(repo.Path, "git", "status", "--porcelain"); err == nil {
		st.Dirty = countPorcelainEntries(out)
	}

	// No upstream configured is common and not an error worth surfacing.
	if out, err := platform.OutputDir(repo.Path, "git", "rev-list", "--left-right", "--count", "@{upstream}...HEAD"); err == nil {
		st.Behind, st.Ahead = parseAheadBehind(out)
	}

	return st
}

// LoadStatuses inspects every repository concurrently. The result slice is
// index-aligned with ws.Repos; a repository that cannot be inspected gets a
// Status with Err set rather than failing the scan.
func (ws *Workspace) LoadStatuses(ctx context.Context) []Status {
	statuses := make([]Status, len(ws.Repos))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(statusScanLimit)
	for i, repo := range ws.Repos {
		g.Go(func() error {
			statuses[i] = LoadStatus(repo)
			return nil
		})
	}
	g.Wait()

	return statuses
}

// countPorcelainEntries counts non-empty lines of git status --porcelain.
func countPorcelainEntries(out string) int {
	if out == "" {
		return 0
	}
	n := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// parseAheadBehind parses "behind<TAB>ahead" from
// git rev-list --left-right --count @{upstream}...HEAD.
func parseAheadBehind(out string) (behind, ahead int) {
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0
	}
	behind, _ = strconv.Atoi(fields[0])
	ahead, _ = strconv.Atoi(fields[1])
	return behind, ahead
}

// Summary renders the status as a short one-liner, e.g. "main ~2 ↑1 ↓3".
func (s Status) Summary() string {
	if s.Err != "" {
		return s.Err
	}
	parts := []string{s.Branch}
	if s.Dirty > 0 {
		parts = append(parts, fmt.Sprintf("~%d", s.Dirty))
	}
	if s.Ahead > 0 {
		parts = append(parts, fmt.Sprintf("↑%d", s.Ahead))
	}
	if s.Behind > 0 {
		parts = append(parts, fmt.Sprintf("↓%d", s.Behind))
	}
	return strings.Join(parts, " ")
}
