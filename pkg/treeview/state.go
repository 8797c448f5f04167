package treeview

import (
	"log"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/baumths/treeview/pkg/tree"
)

// State is the persisted expand/collapse state of a tree view.
//
// Only explicit deviations from the controller's default are stored, so
// the file stays small and default behavior can evolve without stale
// files pinning every node. The version field enables future schema
// migrations. Identities must be JSON-encodable map keys (strings or
// integers).
type State[I comparable] struct {
	Version  int        `json:"version"`
	Expanded map[I]bool `json:"expanded"`
}

// StateVersion is the current schema version.
const StateVersion = 1

// SaveState walks every node reachable from the controller's roots and
// writes the non-default expansion states to path, creating parent
// directories as needed.
func SaveState[T any, I comparable](path string, c *tree.Controller[T, I]) error {
	state := State[I]{
		Version:  StateVersion,
		Expanded: make(map[I]bool),
	}

	def := c.DefaultExpansionState()
	identity := c.Accessor().Identity
	c.BreadthFirstSearch(tree.BreadthFirstOptions[T]{
		OnVisit: func(node T) {
			if got := c.GetExpansionState(node); got != def {
				state.Expanded[identity(node)] = got
			}
		},
	})

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadState applies persisted expansion state from path to the
// controller, then notifies once so the view re-flattens.
//
// Missing or corrupted files degrade silently to defaults (a corrupted
// file logs a warning), and identities that no longer occur in the tree
// are ignored; both are normal between sessions.
func LoadState[T any, I comparable](path string, c *tree.Controller[T, I]) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var state State[I]
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("warning: invalid tree state file %s, using defaults: %v", path, err)
		return nil
	}

	identity := c.Accessor().Identity
	c.BreadthFirstSearch(tree.BreadthFirstOptions[T]{
		OnVisit: func(node T) {
			if expanded, ok := state.Expanded[identity(node)]; ok {
				c.SetExpansionState(node, expanded)
			}
		},
	})

	// One notification for the whole batch.
	c.Notify()
	return nil
}
