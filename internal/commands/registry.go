// Package commands loads the named commands a repository declares for graft
// in .graft/commands.yaml. These are the only commands the runtime will
// execute; there is no free-form shell.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// registryFile is the per-repository command declaration, relative to the
// repository root.
const registryFile = ".graft/commands.yaml"

// Command is one declared repository command.
type Command struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Args reports whether the command accepts free-form arguments; when
	// true the UI prompts for them before dispatching.
	Args bool `yaml:"args"`
}

// Registry is the ordered set of commands a repository declares.
type Registry struct {
	cmds []Command
}

type registryDoc struct {
	Commands []Command `yaml:"commands"`
}

// Load reads a repository's command registry. A missing registry file yields
// an empty registry, not an error. Entries without a name and duplicates of
// an earlier name are ignored.
func Load(repoPath string) (*Registry, error) {
	data, err := os.ReadFile(filepath.Join(repoPath, registryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Registry{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", registryFile, err)
	}

	var doc registryDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", registryFile, err)
	}

	r := &Registry{}
	seen := make(map[string]bool)
	for _, c := range doc.Commands {
		if c.Name == "" || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		r.cmds = append(r.cmds, c)
	}
	return r, nil
}

// List returns all commands in declaration order.
func (r *Registry) List() []Command {
	return r.cmds
}

// Get returns the command with the given name.
func (r *Registry) Get(name string) (Command, bool) {
	for _, c := range r.cmds {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// Len returns the number of declared commands.
func (r *Registry) Len() int {
	return len(r.cmds)
}
