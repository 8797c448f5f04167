// Package config loads the tree viewer's YAML configuration file
// (.treeview.yaml) and discovers it by walking up from the working
// directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by Find.
const FileName = ".treeview.yaml"

// Config is the viewer configuration.
type Config struct {
	// Root is the directory displayed on startup (default: the directory
	// holding the config file, or the working directory).
	Root string `yaml:"root,omitempty"`

	// Watch enables live reloading when files under Root change.
	Watch bool `yaml:"watch,omitempty"`

	// DefaultExpanded starts every directory expanded.
	DefaultExpanded bool `yaml:"default_expanded,omitempty"`

	// Ignore lists gitignore-style patterns excluded from the tree.
	Ignore []string `yaml:"ignore,omitempty"`

	// Theme selects the rendering theme: "default" or "plain".
	Theme string `yaml:"theme,omitempty"`

	// StateFile persists expand/collapse state between runs. Empty
	// disables persistence.
	StateFile string `yaml:"state_file,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Root:  ".",
		Watch: true,
		Theme: "default",
		Ignore: []string{
			".git/",
			"node_modules/",
			"vendor/",
		},
	}
}

// Load reads and validates the configuration at path. Unset fields fall
// back to the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Root = ExpandHome(cfg.Root)
	cfg.StateFile = ExpandHome(cfg.StateFile)
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values that Load cannot default away.
func (c Config) Validate() error {
	switch c.Theme {
	case "", "default", "plain":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	return nil
}

// Find searches for the config file starting at dir and walking up the
// directory tree. It returns os.ErrNotExist when no file is found.
func Find(dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
