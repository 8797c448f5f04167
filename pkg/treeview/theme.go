package treeview

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the styles and timing the tree view renders with.
type Theme struct {
	Selected  lipgloss.Style // cursor row
	Guide     lipgloss.Style // connector lines and branch characters
	Indicator lipgloss.Style // expand/collapse indicator
	Label     lipgloss.Style // node labels
	Animating lipgloss.Style // rows mid expand/collapse transition

	// Indicator glyphs. Leaf marks nodes without children.
	Expanded  string
	Collapsed string
	Leaf      string

	// TransitionDuration is how long a flipped row stays in its
	// transitioning state before its subtree reconciles into the list.
	TransitionDuration time.Duration
}

// DefaultTheme returns the standard look: adaptive colors, unicode
// indicators and a 180ms transition.
func DefaultTheme() Theme {
	return Theme{
		Selected:  lipgloss.NewStyle().Reverse(true),
		Guide:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "244", Dark: "240"}),
		Indicator: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "117"}),
		Label:     lipgloss.NewStyle(),
		Animating: lipgloss.NewStyle().Faint(true),

		Expanded:  "▾",
		Collapsed: "▸",
		Leaf:      "•",

		TransitionDuration: 180 * time.Millisecond,
	}
}

// PlainTheme returns an unstyled ASCII theme for dumb terminals and tests.
func PlainTheme() Theme {
	t := DefaultTheme()
	t.Selected = lipgloss.NewStyle()
	t.Guide = lipgloss.NewStyle()
	t.Indicator = lipgloss.NewStyle()
	t.Animating = lipgloss.NewStyle()
	t.Expanded = "-"
	t.Collapsed = "+"
	t.Leaf = "."
	return t
}
