// Package treeview renders a tree.Controller inside a scrollable bubbletea
// component.
//
// The component is the "rendering collaborator" of the flattening engine:
// it subscribes to the controller's change notifications, re-flattens
// through a tree.Transitions tracker when they fire, and feeds transition
// completions back so freshly expanded subtrees reveal after their row
// finished animating. Removed rows simply disappear; a terminal list has
// no useful exit transition for them.
package treeview

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/baumths/treeview/pkg/tree"
)

// TransitionMsg is delivered when a row's expand/collapse transition timer
// fires. It is the widget-side half of the animation-completion seam.
type TransitionMsg[T any] struct {
	Node T
}

// Model is a bubbletea sub-component displaying one controller's tree.
// Use it the way bubbles components are used: embed it in a parent model,
// forward messages to Update and render View.
type Model[T any, I comparable] struct {
	controller  *tree.Controller[T, I]
	transitions *tree.Transitions[T, I]
	label       func(T) string
	theme       Theme

	viewport viewport.Model
	width    int
	height   int

	entries []*tree.Entry[T]
	cursor  int

	// stale is flipped by the controller listener; shared through a
	// pointer because bubbletea models are passed by value.
	stale    *bool
	listener int

	// scheduled guards against duplicate transition timers per node.
	scheduled map[I]struct{}
}

// New creates a tree view over controller. label renders a node into a
// single line; the view truncates it to the available width.
func New[T any, I comparable](controller *tree.Controller[T, I], label func(T) string, theme Theme) Model[T, I] {
	m := Model[T, I]{
		controller:  controller,
		transitions: tree.NewTransitions(controller),
		label:       label,
		theme:       theme,
		stale:       new(bool),
		scheduled:   make(map[I]struct{}),
	}
	stale := m.stale
	m.listener = controller.AddListener(func() { *stale = true })
	m, _ = m.refreshed()
	return m
}

// Close unregisters the controller listener. Call it when the view is
// discarded but the controller lives on.
func (m Model[T, I]) Close() {
	m.controller.RemoveListener(m.listener)
}

// Controller returns the underlying controller, e.g. for mutations issued
// outside the key handling below.
func (m Model[T, I]) Controller() *tree.Controller[T, I] { return m.controller }

// Init implements tea.Model. There is no startup work.
func (m Model[T, I]) Init() tea.Cmd { return nil }

// SetSize updates the available dimensions.
func (m Model[T, I]) SetSize(width, height int) Model[T, I] {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.renderAll())
	m = m.scrollToCursor()
	return m
}

// Update handles navigation keys, transition timers and pending
// controller notifications.
func (m Model[T, I]) Update(msg tea.Msg) (Model[T, I], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case TransitionMsg[T]:
		delete(m.scheduled, m.controller.Accessor().Identity(msg.Node))
		if m.transitions.Complete(msg.Node) {
			return m.refreshed()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m = m.MoveUp()
		case "down", "j":
			m = m.MoveDown()
		case "pgup":
			m = m.PageUp()
		case "pgdown":
			m = m.PageDown()
		case "home", "g":
			m = m.JumpToTop()
		case "end", "G":
			m = m.JumpToBottom()
		case "enter", " ":
			return m.ToggleExpand()
		case "right", "l":
			return m.ExpandOrMoveToChild()
		case "left", "h":
			return m.CollapseOrJumpToParent()
		case "p":
			m = m.JumpToParent()
		case "E":
			m.controller.ExpandAll()
		case "C":
			m.controller.CollapseAll()
		}
	}

	if *m.stale {
		return m.refreshed()
	}
	return m, nil
}

// refreshed re-flattens through the transitions tracker, schedules timers
// for newly animating rows and repaints the viewport.
func (m Model[T, I]) refreshed() (Model[T, I], tea.Cmd) {
	*m.stale = false
	m.entries, _ = m.transitions.Flatten()

	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	var cmds []tea.Cmd
	identity := m.controller.Accessor().Identity
	for _, e := range m.entries {
		if !m.transitions.IsAnimating(e.Node()) {
			continue
		}
		id := identity(e.Node())
		if _, ok := m.scheduled[id]; ok {
			continue
		}
		m.scheduled[id] = struct{}{}
		cmds = append(cmds, m.transitionCmd(e.Node()))
	}

	m.viewport.SetContent(m.renderAll())
	m = m.scrollToCursor()
	return m, tea.Batch(cmds...)
}

func (m Model[T, I]) transitionCmd(node T) tea.Cmd {
	return tea.Tick(m.theme.TransitionDuration, func(time.Time) tea.Msg {
		return TransitionMsg[T]{Node: node}
	})
}

// View implements tea.Model.
func (m Model[T, I]) View() string {
	return m.viewport.View()
}

// Count returns the number of visible rows.
func (m Model[T, I]) Count() int { return len(m.entries) }

// Entries returns the current flattening snapshot.
func (m Model[T, I]) Entries() []*tree.Entry[T] { return m.entries }

// SelectedEntry returns the entry under the cursor, or nil when the tree
// is empty.
func (m Model[T, I]) SelectedEntry() *tree.Entry[T] {
	if m.cursor >= 0 && m.cursor < len(m.entries) {
		return m.entries[m.cursor]
	}
	return nil
}

// SelectedNode returns the node under the cursor.
func (m Model[T, I]) SelectedNode() (T, bool) {
	if e := m.SelectedEntry(); e != nil {
		return e.Node(), true
	}
	var zero T
	return zero, false
}

// SelectByID moves the cursor to the row with the given identity,
// reporting whether it is currently visible. Useful for preserving the
// cursor across rebuilds.
func (m Model[T, I]) SelectByID(id I) (Model[T, I], bool) {
	identity := m.controller.Accessor().Identity
	for i, e := range m.entries {
		if identity(e.Node()) == id {
			m.cursor = i
			return m.repainted(), true
		}
	}
	return m, false
}

// MoveUp moves the cursor one row up.
func (m Model[T, I]) MoveUp() Model[T, I] {
	if m.cursor > 0 {
		m.cursor--
	}
	return m.repainted()
}

// MoveDown moves the cursor one row down.
func (m Model[T, I]) MoveDown() Model[T, I] {
	if m.cursor < len(m.entries)-1 {
		m.cursor++
	}
	return m.repainted()
}

// PageUp moves the cursor up by half a viewport.
func (m Model[T, I]) PageUp() Model[T, I] {
	m.cursor -= m.pageSize()
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m.repainted()
}

// PageDown moves the cursor down by half a viewport.
func (m Model[T, I]) PageDown() Model[T, I] {
	m.cursor += m.pageSize()
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m.repainted()
}

func (m Model[T, I]) pageSize() int {
	if m.height/2 < 1 {
		return 5
	}
	return m.height / 2
}

// JumpToTop moves the cursor to the first row.
func (m Model[T, I]) JumpToTop() Model[T, I] {
	m.cursor = 0
	return m.repainted()
}

// JumpToBottom moves the cursor to the last row.
func (m Model[T, I]) JumpToBottom() Model[T, I] {
	if len(m.entries) > 0 {
		m.cursor = len(m.entries) - 1
	}
	return m.repainted()
}

// JumpToParent moves the cursor to the selected row's parent, if any.
func (m Model[T, I]) JumpToParent() Model[T, I] {
	entry := m.SelectedEntry()
	if entry == nil || entry.Parent() == nil {
		return m
	}
	m.cursor = entry.Parent().Index()
	return m.repainted()
}

// ToggleExpand toggles the selected row. Leaf rows are left alone so the
// expansion map does not accumulate state for nodes that cannot show it.
func (m Model[T, I]) ToggleExpand() (Model[T, I], tea.Cmd) {
	entry := m.SelectedEntry()
	if entry == nil || !entry.HasChildren() {
		return m, nil
	}
	m.controller.Toggle(entry.Node())
	return m.refreshed()
}

// ExpandOrMoveToChild expands a collapsed selected row, or moves the
// cursor to its first visible child when it is already expanded.
func (m Model[T, I]) ExpandOrMoveToChild() (Model[T, I], tea.Cmd) {
	entry := m.SelectedEntry()
	if entry == nil || !entry.HasChildren() {
		return m, nil
	}
	if !entry.IsExpanded() {
		m.controller.Expand(entry.Node())
		return m.refreshed()
	}
	// The first child, when visible, sits directly after its parent.
	if next := m.cursor + 1; next < len(m.entries) && m.entries[next].Parent() == entry {
		m.cursor = next
	}
	return m.repainted(), nil
}

// CollapseOrJumpToParent collapses an expanded selected row, or jumps to
// the parent of a collapsed or leaf row.
func (m Model[T, I]) CollapseOrJumpToParent() (Model[T, I], tea.Cmd) {
	entry := m.SelectedEntry()
	if entry == nil {
		return m, nil
	}
	if entry.HasChildren() && entry.IsExpanded() {
		m.controller.Collapse(entry.Node())
		return m.refreshed()
	}
	return m.JumpToParent(), nil
}

// repainted re-renders without re-flattening, for cursor-only changes.
func (m Model[T, I]) repainted() Model[T, I] {
	m.viewport.SetContent(m.renderAll())
	return m.scrollToCursor()
}

func (m Model[T, I]) scrollToCursor() Model[T, I] {
	if m.viewport.Height <= 0 {
		return m
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
	return m
}

func (m Model[T, I]) renderAll() string {
	var sb strings.Builder
	for i, e := range m.entries {
		sb.WriteString(m.renderEntry(e, i == m.cursor))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderEntry paints one row: connector prefix, indicator, label.
func (m Model[T, I]) renderEntry(entry *tree.Entry[T], selected bool) string {
	prefix := m.prefix(entry)

	indicator := m.theme.Leaf
	if entry.HasChildren() {
		if entry.IsExpanded() {
			indicator = m.theme.Expanded
		} else {
			indicator = m.theme.Collapsed
		}
	}

	label := m.label(entry.Node())
	if m.width > 0 {
		avail := m.width - runewidth.StringWidth(prefix) - runewidth.StringWidth(indicator) - 1
		if avail < 1 {
			avail = 1
		}
		label = runewidth.Truncate(label, avail, "…")
	}

	labelStyle := m.theme.Label
	if m.transitions.IsAnimating(entry.Node()) {
		labelStyle = m.theme.Animating
	}

	line := m.theme.Guide.Render(prefix) +
		m.theme.Indicator.Render(indicator) + " " +
		labelStyle.Render(label)
	if selected {
		line = m.theme.Selected.Render(line)
	}
	return line
}

// prefix builds the indentation and branch characters for a row. Root
// rows have none; deeper rows get a vertical guide per ancestor that has
// a later sibling and a branch character chosen by their own sibling
// flag.
func (m Model[T, I]) prefix(entry *tree.Entry[T]) string {
	if entry.Parent() == nil {
		return ""
	}

	var ancestors []*tree.Entry[T]
	for p := entry.Parent(); p != nil; p = p.Parent() {
		ancestors = append(ancestors, p)
	}

	var sb strings.Builder
	for i := len(ancestors) - 1; i > 0; i-- {
		if ancestors[i-1].HasNextSibling() {
			sb.WriteString("│   ")
		} else {
			sb.WriteString("    ")
		}
	}
	if entry.HasNextSibling() {
		sb.WriteString("├── ")
	} else {
		sb.WriteString("└── ")
	}
	return sb.String()
}
