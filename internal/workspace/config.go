// Package workspace loads the graft workspace configuration and answers
// questions about the repositories it declares: display status for the
// dashboard, changed files and recent commits for the detail view.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/danielnaab/graft/internal/platform"
)

// ConfigFile is the workspace configuration file name, looked up from the
// current directory upward.
const ConfigFile = "graft.yaml"

// DefaultTool is the external command-line tool invoked to run repository
// commands when the config does not name one.
const DefaultTool = "graft-exec"

// Config mirrors the graft.yaml layout.
type Config struct {
	Name         string       `yaml:"name"`
	Tool         string       `yaml:"tool"`
	Repositories []RepoConfig `yaml:"repositories"`
}

// RepoConfig is a single repository entry in graft.yaml.
type RepoConfig struct {
	Path string `yaml:"path"`
}

// Repo is a resolved repository: the absolute working directory plus the
// name shown in the UI (the configured relative path).
type Repo struct {
	Path string
	Name string
}

// Workspace is the loaded configuration with repository paths resolved
// against the workspace root. Repository order follows graft.yaml.
type Workspace struct {
	Root  string
	Name  string
	Tool  string
	Repos []Repo
}

// Find locates the workspace root by walking up from dir until a graft.yaml
// is found. Returns "" when dir is not inside a workspace.
func Find(dir string) string {
	return platform.FindUp(dir, ConfigFile)
}

// Load reads graft.yaml from root and resolves repository paths.
func Load(root string) (*Workspace, error) {
	data, err := os.ReadFile(filepath.Join(root, ConfigFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFile, err)
	}

	ws := &Workspace{
		Root: root,
		Name: cfg.Name,
		Tool: cfg.Tool,
	}
	if ws.Name == "" {
		ws.Name = filepath.Base(root)
	}
	if ws.Tool == "" {
		ws.Tool = DefaultTool
	}

	for _, rc := range cfg.Repositories {
		if rc.Path == "" {
			continue
		}
		path := rc.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		ws.Repos = append(ws.Repos, Repo{Path: path, Name: rc.Path})
	}

	return ws, nil
}

// RepoNames returns the display names of all repositories in order.
func (ws *Workspace) RepoNames() []string {
	names := make([]string, len(ws.Repos))
	for i, r := range ws.Repos {
		names[i] = r.Name
	}
	return names
}
