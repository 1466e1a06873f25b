package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/loom/internal/config"
	"github.com/zhubert/loom/internal/executor"
	"github.com/zhubert/loom/internal/logger"
	"github.com/zhubert/loom/internal/ui"
	"github.com/zhubert/loom/internal/ui/autocomplete"
	"github.com/zhubert/loom/internal/ui/console"
	"github.com/zhubert/loom/internal/ui/graph"
	"github.com/zhubert/loom/internal/ui/miller"
	"github.com/zhubert/loom/internal/ui/screen"
	"github.com/zhubert/loom/internal/ui/widgets"
	"github.com/zhubert/loom/internal/workflow"
	"github.com/zhubert/loom/internal/workitem"
)

// Screen identifies one of the top-level views.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenItems
	ScreenGraph
	ScreenConsole
	ScreenWorkflow
	ScreenSearch
	numScreens
)

var screenNames = [numScreens]string{"Dashboard", "Items", "Graph", "Console", "Workflow", "Search"}

// String returns the tab name of the screen
func (s Screen) String() string {
	if s < 0 || s >= numScreens {
		return "Unknown"
	}
	return screenNames[s]
}

// Screens returns every screen in tab order.
func Screens() []Screen {
	out := make([]Screen, numScreens)
	for i := range out {
		out[i] = Screen(i)
	}
	return out
}

// ParseScreen looks a screen up by name, ignoring case.
func ParseScreen(name string) (Screen, error) {
	for _, s := range Screens() {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown screen %q (want one of %s)", name, strings.Join(screenNames[:], ", "))
}

// frameTickMsg drives animation and background result delivery.
type frameTickMsg time.Time

// ItemsReloadedMsg is sent when the watched work item file was re-read.
type ItemsReloadedMsg struct {
	Err error
}

// Option configures a Model.
type Option func(*Model)

// WithItems sets the work items shown by every screen.
func WithItems(src *workitem.MemorySource) Option {
	return func(m *Model) { m.items = src }
}

// WithDataFile watches path and reloads the work items when it changes.
func WithDataFile(path string) Option {
	return func(m *Model) { m.dataPath = path }
}

// WithWorkflow sets the workflow table shown by the Workflow screen.
func WithWorkflow(t *workflow.Table) Option {
	return func(m *Model) { m.table = t }
}

// WithExecutor replaces the console's command executor.
func WithExecutor(exec console.Executor) Option {
	return func(m *Model) { m.exec = exec }
}

// WithPaster replaces the clipboard used for console paste.
func WithPaster(p console.Paster) Option {
	return func(m *Model) { m.paster = p }
}

// WithScreen selects the screen shown first.
func WithScreen(s Screen) Option {
	return func(m *Model) { m.screen = s }
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	ctx     *ui.Context
	grid    *screen.Grid
	header  *ui.Header
	footer  *ui.Footer
	keys    keyMap
	log     *slog.Logger

	width  int
	height int

	screen  Screen
	roots   [numScreens]*ui.Container
	focusOf [numScreens]ui.Component

	items    *workitem.MemorySource
	dataPath string
	table    *workflow.Table
	current  *workitem.Item

	exec   console.Executor
	paster console.Paster
	shell  *executor.Shell

	// Dashboard
	summary  *widgets.Label
	progress *widgets.ProgressMeter
	history  *widgets.CommandHistory

	miller   *miller.Columns[workitem.Item]
	graph    *graph.DependencyGraphView
	console  *console.Console
	workflow *widgets.WorkflowStateView
	search   *autocomplete.TextBox
	results  *widgets.List[workitem.Item]

	lastTick  time.Time
	reloads   chan error
	stopWatch context.CancelFunc
	quitting  bool
}

// New creates the application model. Without WithItems the built-in sample
// items are shown.
func New(cfg *config.Config, version string, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.Default()
	}
	m := &Model{
		config:  cfg,
		version: version,
		header:  ui.NewHeader("loom"),
		footer:  ui.NewFooter(),
		keys:    defaultKeyMap(),
		log:     logger.WithComponent("app"),
		reloads: make(chan error, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.items == nil {
		m.items = workitem.Sample()
	}
	if m.table == nil {
		m.table = workflow.DefaultTable()
	}

	reg := ui.NewRegistry()
	widgets.RegisterRenderers(reg)
	graph.RegisterRenderers(reg)
	miller.RegisterRenderers(reg)
	autocomplete.RegisterRenderers(reg)
	console.RegisterRenderers(reg)
	m.ctx = ui.NewContext(
		ui.WithTheme(ui.BuiltinTheme(cfg.GetTheme())),
		ui.WithRegistry(reg),
		ui.WithLogger(logger.WithComponent("ui")),
	)

	m.buildScreens()
	m.header.SetTabs(screenNames[:])
	m.refreshItems()

	size := m.ctx.ContentSize()
	m.grid = screen.NewGrid(size.Width, size.Height)
	m.header.SetWidth(size.Width)
	m.footer.SetWidth(size.Width)
	m.resizeRoots(size)
	m.setScreen(m.screen)

	m.log.Info("app initialized", "version", version, "screen", m.screen, "items", len(m.items.Items()))
	return m
}

// Init starts the frame ticker and, when a data file is set, the watcher.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.dataPath != "" {
		m.startWatching()
		cmds = append(cmds, m.waitForReload())
	}
	return tea.Batch(cmds...)
}

// Close stops the file watcher.
func (m *Model) Close() {
	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
}

// Screen returns the visible screen
func (m *Model) Screen() Screen { return m.screen }

// Context returns the UI context the screens are drawn with.
func (m *Model) Context() *ui.Context { return m.ctx }

// Console returns the shell console of the Console screen.
func (m *Model) Console() *console.Console { return m.console }

// Items returns the work item source
func (m *Model) Items() *workitem.MemorySource { return m.items }

// Current returns the selected work item.
func (m *Model) Current() (workitem.Item, bool) {
	if m.current == nil {
		return workitem.Item{}, false
	}
	return *m.current, true
}

// Quitting reports whether the user asked to quit.
func (m *Model) Quitting() bool { return m.quitting }

func (m *Model) root() *ui.Container {
	return m.roots[m.screen]
}

// setScreen switches the visible screen, remembering focus on the one left
// behind.
func (m *Model) setScreen(s Screen) {
	if s < 0 || s >= numScreens {
		return
	}
	if f := m.ctx.Focus().Focused(); f != nil {
		m.focusOf[m.screen] = f
	}
	prev := m.screen
	m.screen = s
	m.header.SetActive(int(s))
	log := logger.WithScreen(s.String())

	switch s {
	case ScreenGraph:
		if m.current != nil {
			m.graph.SetFocus(*m.current)
		}
	case ScreenWorkflow:
		m.syncWorkflow()
	case ScreenDashboard:
		m.refreshDashboard()
	}

	target := m.focusOf[s]
	if target == nil || !ui.CanFocus(target) {
		if leaves := ui.FocusableLeaves(m.roots[s]); len(leaves) > 0 {
			target = leaves[0]
		}
	}
	if target != nil {
		if err := m.ctx.Focus().Focus(target); err != nil {
			log.Warn("focus failed", "error", err)
		}
	} else {
		m.ctx.Focus().Blur()
	}
	if prev != s {
		log.Debug("screen changed", "from", prev)
	}
}

// setCurrent makes item the selection shared by the screens.
func (m *Model) setCurrent(item workitem.Item) {
	if m.current != nil && m.current.ID == item.ID && m.current.State == item.State {
		return
	}
	m.current = &item
	m.header.SetStatus(item.ID + " " + item.Title)
}

// tick schedules the next frame.
func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.config.FrameInterval(), func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}
