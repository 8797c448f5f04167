package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
root: src
watch: false
default_expanded: true
theme: plain
ignore:
  - "*.log"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(dir, "src"); cfg.Root != want {
		t.Errorf("Root = %s, want %s", cfg.Root, want)
	}
	if cfg.Watch {
		t.Error("Watch should be false")
	}
	if !cfg.DefaultExpanded {
		t.Error("DefaultExpanded should be true")
	}
	if cfg.Theme != "plain" {
		t.Errorf("Theme = %s, want plain", cfg.Theme)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "*.log" {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "# empty\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Theme != def.Theme {
		t.Errorf("Theme = %s, want default", cfg.Theme)
	}
	if len(cfg.Ignore) != len(def.Ignore) {
		t.Errorf("Ignore = %v, want defaults", cfg.Ignore)
	}
	if cfg.Root != dir {
		t.Errorf("Root = %s, want %s", cfg.Root, dir)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(writeConfig(t, dir, "root: [broken")); err == nil {
		t.Error("malformed YAML should error")
	}
	if _, err := Load(writeConfig(t, dir, "theme: neon\n")); err == nil {
		t.Error("unknown theme should error")
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	want := writeConfig(t, root, "watch: true\n")

	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Errorf("Find = %s, want %s", got, want)
	}
}

func TestFindMissing(t *testing.T) {
	if _, err := Find(t.TempDir()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Find = %v, want os.ErrNotExist", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("ExpandHome(~/x) = %s", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("ExpandHome(/abs) = %s", got)
	}
	if got := ExpandHome("~other/x"); got != "~other/x" {
		t.Errorf("ExpandHome(~other/x) = %s", got)
	}
}
