// Command treeview-demo browses a directory hierarchy with the tree view
// widget. It demonstrates the full wiring: filesystem accessor, YAML
// config, persisted expansion state and live reload on file changes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/baumths/treeview/pkg/config"
	"github.com/baumths/treeview/pkg/filetree"
	"github.com/baumths/treeview/pkg/tree"
	"github.com/baumths/treeview/pkg/treeview"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file (default: discover .treeview.yaml upward)")
	root := flag.String("root", "", "Directory to browse (overrides config)")
	plain := flag.Bool("plain", false, "Force the plain ASCII theme")
	noWatch := flag.Bool("no-watch", false, "Disable live reload")
	expanded := flag.Bool("expanded", false, "Start with every directory expanded")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("treeview-demo %s\n", version)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *root != "" {
		cfg.Root = *root
	}
	if flag.Arg(0) != "" {
		cfg.Root = flag.Arg(0)
	}
	if *noWatch {
		cfg.Watch = false
	}
	if *expanded {
		cfg.DefaultExpanded = true
	}
	if *plain {
		cfg.Theme = "plain"
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "treeview-demo requires a terminal")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	found, err := config.Find("")
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(found)
}

func run(cfg config.Config) error {
	ignore := filetree.NewIgnoreMatcher(cfg.Root, cfg.Ignore)
	app, err := newApp(cfg, ignore)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	var g errgroup.Group
	if cfg.Watch {
		watcher, err := filetree.NewWatcher(cfg.Root, ignore, func() {
			p.Send(reloadMsg{})
		})
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	g.Go(func() error {
		_, err := p.Run()
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}

	app.saveState()
	return nil
}

// reloadMsg is sent by the file watcher when the hierarchy changed.
type reloadMsg struct{}

type app struct {
	cfg    config.Config
	ignore *filetree.IgnoreMatcher
	view   treeview.Model[*filetree.Node, string]
	status string
	width  int
	height int
}

var statusStyle = lipgloss.NewStyle().Faint(true)

func newApp(cfg config.Config, ignore *filetree.IgnoreMatcher) (*app, error) {
	root, err := filetree.Load(cfg.Root, ignore)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.Root, err)
	}

	theme := treeview.DefaultTheme()
	if cfg.Theme == "plain" {
		theme = treeview.PlainTheme()
	}

	controller := tree.NewController([]*filetree.Node{root}, filetree.Accessor(),
		tree.WithDefaultExpansionState(cfg.DefaultExpanded))
	if cfg.StateFile != "" {
		if err := treeview.LoadState(cfg.StateFile, controller); err != nil {
			log.Printf("warning: loading tree state: %v", err)
		}
	}

	view := treeview.New(controller, func(n *filetree.Node) string { return n.Name }, theme)
	return &app{
		cfg:    cfg,
		ignore: ignore,
		view:   view,
		status: cfg.Root,
	}, nil
}

func (a *app) saveState() {
	if a.cfg.StateFile == "" {
		return
	}
	if err := treeview.SaveState(a.cfg.StateFile, a.view.Controller()); err != nil {
		log.Printf("warning: saving tree state: %v", err)
	}
}

func (a *app) Init() tea.Cmd { return a.view.Init() }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Reserve one line for the status bar.
		a.view = a.view.SetSize(msg.Width, msg.Height-1)
		return a, nil

	case reloadMsg:
		a.reload()
	}

	var cmd tea.Cmd
	a.view, cmd = a.view.Update(msg)
	return a, cmd
}

// reload rebuilds the node tree and swaps it into the controller. Node
// identities are paths, so expansion state carries over to the surviving
// entries.
func (a *app) reload() {
	root, err := filetree.Load(a.cfg.Root, a.ignore)
	if err != nil {
		a.status = fmt.Sprintf("reload failed: %v", err)
		return
	}
	a.view.Controller().SetRoots([]*filetree.Node{root})
	a.status = a.cfg.Root + " (reloaded)"
}

func (a *app) View() string {
	return a.view.View() + statusStyle.Render(a.status)
}
