package filetree

import (
	"path/filepath"
	"strings"
)

// IgnoreMatcher filters paths with a small gitignore-style pattern set.
//
// Supported forms, one per pattern:
//   - "name" or "*.ext": matched against the base name of any entry
//   - "name/": matched against the base name of directories only
//   - "a/b" (contains a slash): matched against the path relative to the
//     load root
//
// Negation, anchoring and "**" are not supported; the patterns here come
// from a config file rather than real .gitignore files.
type IgnoreMatcher struct {
	root     string
	names    []string // base-name patterns
	dirNames []string // directory-only base-name patterns
	rels     []string // root-relative patterns
}

// NewIgnoreMatcher compiles patterns relative to root. Empty patterns and
// "#" comments are skipped.
func NewIgnoreMatcher(root string, patterns []string) *IgnoreMatcher {
	m := &IgnoreMatcher{root: root}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		if dir, ok := strings.CutSuffix(p, "/"); ok && !strings.Contains(dir, "/") {
			m.dirNames = append(m.dirNames, dir)
			continue
		}
		if strings.Contains(p, "/") {
			m.rels = append(m.rels, strings.Trim(p, "/"))
			continue
		}
		m.names = append(m.names, p)
	}
	return m
}

// Matches reports whether path should be excluded. A nil matcher matches
// nothing.
func (m *IgnoreMatcher) Matches(path string, isDir bool) bool {
	if m == nil {
		return false
	}

	base := filepath.Base(path)
	for _, p := range m.names {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	if isDir {
		for _, p := range m.dirNames {
			if ok, _ := filepath.Match(p, base); ok {
				return true
			}
		}
	}

	if len(m.rels) > 0 {
		rel, err := filepath.Rel(m.root, path)
		if err == nil {
			rel = filepath.ToSlash(rel)
			for _, p := range m.rels {
				if ok, _ := filepath.Match(p, rel); ok {
					return true
				}
			}
		}
	}
	return false
}
