// Package statequery reads the structured state cache the external graft
// tool writes per repository. The TUI only renders these summaries; it never
// computes them. Refreshing goes through the execution engine by invoking
// the tool's state subcommand.
package statequery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// cacheFile is the state cache location, relative to the repository root.
const cacheFile = ".graft/state.json"

// Query is one cached query result.
type Query struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Error   string `json:"error,omitempty"`
}

// Cache is the per-repository state cache.
type Cache struct {
	GeneratedAt time.Time `json:"generated_at"`
	Queries     []Query   `json:"queries"`
}

// RefreshArgs is the external tool invocation that regenerates the cache,
// run in the repository's working directory.
var RefreshArgs = []string{"state", "refresh"}

// Load reads the repository's state cache. A missing cache yields an empty
// Cache and nil error; a corrupt cache is an error for the caller to render
// inline.
func Load(repoPath string) (*Cache, error) {
	data, err := os.ReadFile(filepath.Join(repoPath, cacheFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Cache{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", cacheFile, err)
	}

	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", cacheFile, err)
	}
	return &c, nil
}

// Empty reports whether the cache holds no query results.
func (c *Cache) Empty() bool {
	return len(c.Queries) == 0
}

// Age returns how long ago the cache was generated, or zero when unknown.
func (c *Cache) Age(now time.Time) time.Duration {
	if c.GeneratedAt.IsZero() {
		return 0
	}
	return now.Sub(c.GeneratedAt)
}
