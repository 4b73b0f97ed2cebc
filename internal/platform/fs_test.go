package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")

	if FileExists(path) {
		t.Error("FileExists() = true for missing file")
	}

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("FileExists() = false for existing file")
	}
	if !FileExists(dir) {
		t.Error("FileExists() = false for existing directory")
	}
}

func TestFindUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	marker := filepath.Join(root, "graft.yaml")
	if err := os.WriteFile(marker, []byte("repositories: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got := FindUp(nested, "graft.yaml")
	if got != root {
		t.Errorf("FindUp() = %q, want %q", got, root)
	}
}

func TestFindUp_NotFound(t *testing.T) {
	dir := t.TempDir()
	if got := FindUp(dir, "no-such-marker-file.xyz"); got != "" {
		t.Errorf("FindUp() = %q, want empty", got)
	}
}
