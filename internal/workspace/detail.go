package workspace

import (
	"fmt"
	"strings"

	"github.com/danielnaab/graft/internal/platform"
)

// recentCommitCount is how many commits the detail view shows.
const recentCommitCount = 10

// FileChange is one entry from git status --porcelain.
type FileChange struct {
	Code string // two-character porcelain status, e.g. " M", "??"
	Path string
}

// Commit is one entry of the recent-commit list.
type Commit struct {
	Hash    string
	Subject string
	Age     string // human-readable relative date from git
}

// Detail is the drill-down data for one repository.
type Detail struct {
	Status  Status
	Files   []FileChange
	Commits []Commit
}

// LoadDetail gathers changed files and recent commits for a repository.
func LoadDetail(repo Repo) (*Detail, error) {
	st := LoadStatus(repo)
	if st.Err != "" {
		return nil, fmt.Errorf("%s: %s", repo.Name, st.Err)
	}

	d := &Detail{Status: st}

	out, err := platform.OutputDir(repo.Path, "git", "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git status in %s: %w", repo.Name, err)
	}
	d.Files = parsePorcelain(out)

	out, err = platform.OutputDir(repo.Path, "git", "log",
		fmt.Sprintf("-n%d", recentCommitCount), "--pretty=format:%h%x09%s%x09%ar")
	if err == nil {
		d.Commits = parseLog(out)
	}

	return d, nil
}

// parsePorcelain splits git status --porcelain output into file changes.
func parsePorcelain(out string) []FileChange {
	var files []FileChange
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		files = append(files, FileChange{
			Code: line[:2],
			Path: strings.TrimSpace(line[3:]),
		})
	}
	return files
}

// parseLog splits tab-separated "hash<TAB>subject<TAB>age" lines.
func parseLog(out string) []Commit {
	var commits []Commit
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		commits = append(commits, Commit{Hash: parts[0], Subject: parts[1], Age: parts[2]})
	}
	return commits
}
