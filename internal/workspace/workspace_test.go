package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
name: demo
tool: graft-exec
repositories:
  - path: services/api
  - path: services/web
  - path: /abs/elsewhere
`)

	ws, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ws.Name != "demo" {
		t.Errorf("Name = %q, want %q", ws.Name, "demo")
	}
	if len(ws.Repos) != 3 {
		t.Fatalf("Repos = %d, want 3", len(ws.Repos))
	}
	if got := ws.Repos[0].Path; got != filepath.Join(dir, "services/api") {
		t.Errorf("Repos[0].Path = %q", got)
	}
	if got := ws.Repos[0].Name; got != "services/api" {
		t.Errorf("Repos[0].Name = %q", got)
	}
	if got := ws.Repos[2].Path; got != "/abs/elsewhere" {
		t.Errorf("absolute path not preserved: %q", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "repositories:\n  - path: one\n")

	ws, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ws.Tool != DefaultTool {
		t.Errorf("Tool = %q, want default %q", ws.Tool, DefaultTool)
	}
	if ws.Name != filepath.Base(dir) {
		t.Errorf("Name = %q, want directory basename", ws.Name)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load() on empty dir expected error")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "repositories: [unclosed\n")
	if _, err := Load(dir); err == nil {
		t.Error("Load() with bad yaml expected error")
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "repositories: []\n")
	nested := filepath.Join(root, "services", "api")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if got := Find(nested); got != root {
		t.Errorf("Find() = %q, want %q", got, root)
	}
	if got := Find(t.TempDir()); got != "" {
		t.Errorf("Find() outside workspace = %q, want empty", got)
	}
}

func TestCountPorcelainEntries(t *testing.T) {
	tests := []struct {
		out  string
		want int
	}{
		{"", 0},
		{" M main.go", 1},
		{" M main.go\n?? new.go\nA  added.go", 3},
		{" M main.go\n\n", 1},
	}
	for _, tt := range tests {
		if got := countPorcelainEntries(tt.out); got != tt.want {
			t.Errorf("countPorcelainEntries(%q) = %d, want %d", tt.out, got, tt.want)
		}
	}
}

func TestParseAheadBehind(t *testing.T) {
	behind, ahead := parseAheadBehind("3\t1")
	if behind != 3 || ahead != 1 {
		t.Errorf("parseAheadBehind = (%d, %d), want (3, 1)", behind, ahead)
	}

	behind, ahead = parseAheadBehind("garbage")
	if behind != 0 || ahead != 0 {
		t.Errorf("parseAheadBehind(garbage) = (%d, %d), want (0, 0)", behind, ahead)
	}
}

func TestParsePorcelain(t *testing.T) {
	files := parsePorcelain(" M cmd/main.go\n?? notes.txt")
	if len(files) != 2 {
		t.Fatalf("parsePorcelain len = %d, want 2", len(files))
	}
	if files[0].Code != " M" || files[0].Path != "cmd/main.go" {
		t.Errorf("files[0] = %+v", files[0])
	}
	if files[1].Code != "??" || files[1].Path != "notes.txt" {
		t.Errorf("files[1] = %+v", files[1])
	}
}

func TestParseLog(t *testing.T) {
	out := "abc1234\tFix the thing\t2 days ago\ndef5678\tAdd feature\t3 weeks ago"
	commits := parseLog(out)
	if len(commits) != 2 {
		t.Fatalf("parseLog len = %d, want 2", len(commits))
	}
	if commits[0].Hash != "abc1234" || commits[0].Subject != "Fix the thing" || commits[0].Age != "2 days ago" {
		t.Errorf("commits[0] = %+v", commits[0])
	}
}

func TestStatusSummary(t *testing.T) {
	tests := []struct {
		st   Status
		want string
	}{
		{Status{Branch: "main"}, "main"},
		{Status{Branch: "main", Dirty: 2}, "main ~2"},
		{Status{Branch: "dev", Ahead: 1, Behind: 3}, "dev ↑1 ↓3"},
		{Status{Err: "not a git repository"}, "not a git repository"},
	}
	for _, tt := range tests {
		if got := tt.st.Summary(); got != tt.want {
			t.Errorf("Summary() = %q, want %q", got, tt.want)
		}
	}
}
