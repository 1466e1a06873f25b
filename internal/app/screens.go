package app

import (
	"fmt"
	"strings"

	"github.com/zhubert/loom/internal/clipboard"
	"github.com/zhubert/loom/internal/executor"
	"github.com/zhubert/loom/internal/notification"
	"github.com/zhubert/loom/internal/ui"
	"github.com/zhubert/loom/internal/ui/autocomplete"
	"github.com/zhubert/loom/internal/ui/console"
	"github.com/zhubert/loom/internal/ui/graph"
	"github.com/zhubert/loom/internal/ui/miller"
	"github.com/zhubert/loom/internal/ui/widgets"
	"github.com/zhubert/loom/internal/workflow"
	"github.com/zhubert/loom/internal/workitem"
)

const searchHint = "Type to search work items. Up/Down pick a suggestion, Enter opens it."

func itemLabel(item workitem.Item) string {
	return item.ID + " " + item.Title
}

// buildScreens creates the component tree of every screen.
func (m *Model) buildScreens() {
	m.roots[ScreenDashboard] = m.buildDashboard()
	m.roots[ScreenItems] = m.buildItems()
	m.roots[ScreenGraph] = m.buildGraph()
	m.roots[ScreenConsole] = m.buildConsole()
	m.roots[ScreenWorkflow] = m.buildWorkflow()
	m.roots[ScreenSearch] = m.buildSearch()
}

func mustConstrain(c ui.Component, bc ui.BoxConstraints) ui.Component {
	if err := c.SetConstraints(bc); err != nil {
		panic(err)
	}
	return c
}

func (m *Model) buildDashboard() *ui.Container {
	title := widgets.NewTitle("dashboard-title", "Work items")
	m.summary = widgets.NewLabel("dashboard-summary", "")
	m.progress = widgets.NewProgressMeter("dashboard-progress", "Done", 1)
	m.progress.SetUnit("items")
	m.history = widgets.NewCommandHistory("dashboard-history", 8, m.config.HistoryLimit)
	m.history.AddCommandSelectedListener(widgets.CommandSelectedFunc(func(cmd string) {
		m.console.SetInput(cmd)
		m.setScreen(ScreenConsole)
	}))

	root := ui.NewContainer("dashboard", ui.NewBoxLayout(ui.Vertical, 1))
	root.MustAdd(
		mustConstrain(title, ui.BoxConstraints{FillOpposite: true}),
		mustConstrain(m.summary, ui.BoxConstraints{FillOpposite: true}),
		mustConstrain(m.progress, ui.BoxConstraints{FillOpposite: true}),
		mustConstrain(m.history, ui.Flex(1)),
	)
	return root
}

func (m *Model) buildItems() *ui.Container {
	m.miller = miller.New[workitem.Item]("items", m.config.MaxColumns)
	m.miller.SetFormatter(itemLabel)
	m.miller.SetChildrenFunc(func(item workitem.Item) []workitem.Item {
		children, err := m.items.ChildrenOf(item)
		if err != nil {
			m.log.Warn("children lookup failed", "item", item.ID, "error", err)
		}
		return children
	})
	m.miller.SetDetailFunc(workitem.Item.Details)

	root := ui.NewContainer("items-screen", ui.NewBoxLayout(ui.Vertical, 0))
	root.MustAdd(mustConstrain(m.miller, ui.Flex(1)))
	return root
}

func (m *Model) buildGraph() *ui.Container {
	m.graph = graph.NewDependencyGraphView("graph", m.items)
	m.graph.SetNavigationDepth(m.config.NavigationDepth)
	m.graph.AddNodeSelectionHandler(graph.NodeSelectionFunc(func(item workitem.Item) {
		m.setCurrent(item)
		m.footer.SetFlash("Selected "+itemLabel(item), ui.FlashInfo)
	}))

	root := ui.NewContainer("graph-screen", ui.NewBoxLayout(ui.Vertical, 0))
	root.MustAdd(mustConstrain(m.graph, ui.Flex(1)))
	return root
}

func (m *Model) buildConsole() *ui.Container {
	exec := m.exec
	if sh, ok := exec.(*executor.Shell); ok {
		m.shell = sh
	} else {
		m.shell = executor.New(executor.WithItems(m.items))
	}
	if exec == nil {
		exec = m.shell
	}
	paster := m.paster
	if paster == nil {
		paster = clipboard.System{}
	}

	m.console = console.New("console", exec)
	m.console.SetPrompt(m.config.Prompt)
	m.console.SetCompleter(m.shell)
	m.console.SetPaster(paster)
	m.console.SetTimeout(m.config.CommandTimeout())
	m.console.SetNotifier(console.NotifierFunc(func(r console.Result) {
		go func() {
			if err := notification.CommandFinished(r.Command, r.Elapsed, r.Err); err != nil {
				m.log.Warn("notification failed", "error", err)
			}
		}()
	}), m.config.NotifyAfter())
	m.console.AddCommandListener(console.CommandFunc(func(r console.Result) {
		m.history.AddCommand(r.Command)
		if r.Err != nil {
			m.footer.SetFlash(r.Command+" failed", ui.FlashError)
		}
	}))

	root := ui.NewContainer("console-screen", ui.NewBoxLayout(ui.Vertical, 0))
	root.MustAdd(mustConstrain(m.console, ui.Flex(1)))
	return root
}

func (m *Model) buildWorkflow() *ui.Container {
	m.workflow = widgets.NewWorkflowStateView("workflow", m.table)
	m.workflow.AddTransitionHandler(widgets.TransitionFunc(m.transition))

	root := ui.NewContainer("workflow-screen", ui.NewBoxLayout(ui.Vertical, 0))
	root.MustAdd(mustConstrain(m.workflow, ui.Fixed(ui.AlignCenter)))
	return root
}

func (m *Model) buildSearch() *ui.Container {
	hint := widgets.NewLabel("search-hint", searchHint)
	m.search = autocomplete.New("search", 60)
	m.search.SetPlaceholder("WI-100, layout, graph...")
	m.search.SetMaxSuggestions(m.config.MaxSuggestions)
	m.search.SetMinCharacters(m.config.MinCharacters)
	m.search.SetComparator(nil)
	m.search.AddSelectionListener(autocomplete.SelectionFunc(func(_ *autocomplete.TextBox, s string) {
		m.searchSelected(s)
	}))

	m.results = widgets.NewList[workitem.Item]("search-results", 10)
	m.results.SetHeader("Results")
	m.results.SetFormatter(func(item workitem.Item) string {
		return fmt.Sprintf("%-8s %-12s %s", item.ID, item.State.Label(), item.Title)
	})
	m.results.AddItemActivatedListener(widgets.ActivateFunc[workitem.Item](func(_ *widgets.List[workitem.Item], _ int, item workitem.Item) {
		m.setCurrent(item)
		m.setScreen(ScreenGraph)
	}))

	root := ui.NewContainer("search-screen", ui.NewBoxLayout(ui.Vertical, 1))
	root.MustAdd(
		mustConstrain(hint, ui.BoxConstraints{FillOpposite: true}),
		mustConstrain(m.search, ui.Fixed(ui.AlignStart)),
		mustConstrain(m.results, ui.Flex(1)),
	)
	return root
}

// resizeRoots lays every screen out in the content area.
func (m *Model) resizeRoots(size ui.Dimension) {
	for _, root := range m.roots {
		root.SetPosition(ui.Pt(0, 0))
		root.SetSize(size)
	}
}

// refreshItems pushes the current work items into every screen.
func (m *Model) refreshItems() {
	roots, err := m.items.ListRootItems()
	if err != nil {
		m.log.Error("listing root items failed", "error", err)
		return
	}
	m.miller.SetRootItems(roots)
	m.graph.Refresh()

	all := m.items.Items()
	labels := make([]string, len(all))
	for i, item := range all {
		labels[i] = itemLabel(item)
	}
	m.search.SetProvider(autocomplete.FuzzyProvider(labels))

	if m.current != nil {
		if item, err := m.items.Get(m.current.ID); err == nil {
			m.current = &item
		} else {
			m.current = nil
			m.header.SetStatus("")
		}
	}
	if m.current == nil && len(roots) > 0 {
		m.setCurrent(roots[0])
	}
	if _, ok := m.graph.Focus(); !ok && m.current != nil {
		m.graph.SetFocus(*m.current)
	}
	m.refreshDashboard()
	m.syncWorkflow()
}

// refreshDashboard recomputes the item counts.
func (m *Model) refreshDashboard() {
	all := m.items.Items()
	counts := make(map[workflow.State]int)
	done := 0
	for _, item := range all {
		counts[item.State]++
		if item.State == workflow.Done {
			done++
		}
	}

	var parts []string
	for _, s := range m.table.States {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", s.Label(), n))
			delete(counts, s)
		}
	}
	for s, n := range counts {
		parts = append(parts, fmt.Sprintf("%s %d", s.Label(), n))
	}
	m.summary.SetText(fmt.Sprintf("%d work items\n%s", len(all), strings.Join(parts, "  ")))
	m.summary.SetSize(ui.Dim(m.summary.Size().Width, 2))

	m.progress.SetMax(float64(max(1, len(all))))
	m.progress.SetValue(float64(done))
	if p := m.summary.Parent(); p != nil {
		p.Relayout()
	}
}

// syncWorkflow shows the current item's state on the Workflow screen.
func (m *Model) syncWorkflow() {
	if m.current == nil {
		m.workflow.SetStatus("Select a work item on the Items, Graph or Search screen")
		return
	}
	m.workflow.SetCurrentState(m.current.State)
	m.workflow.SetStatus(itemLabel(*m.current) + ": press a number to move it")
}

// transition moves the current item to target.
func (m *Model) transition(target workflow.State) {
	if m.current == nil {
		m.workflow.SetStatus("No work item selected")
		return
	}
	id := m.current.ID
	items := m.items.Items()
	for i := range items {
		if items[i].ID == id {
			items[i].State = target
		}
	}
	if err := m.items.Replace(items); err != nil {
		m.footer.SetFlash(err.Error(), ui.FlashError)
		return
	}
	m.current.State = target
	m.refreshItems()
	m.workflow.SetStatus(fmt.Sprintf("%s moved to %s", id, target.Label()))
	m.footer.SetFlash(fmt.Sprintf("%s is now %s", id, target.Label()), ui.FlashSuccess)
}

// searchSelected opens the item named by a committed suggestion.
func (m *Model) searchSelected(suggestion string) {
	id, _, _ := strings.Cut(suggestion, " ")
	item, err := m.items.Get(id)
	if err != nil {
		m.footer.SetFlash(err.Error(), ui.FlashError)
		return
	}
	m.setCurrent(item)
	results := []workitem.Item{item}
	if children, err := m.items.ChildrenOf(item); err == nil {
		results = append(results, children...)
	}
	m.results.SetItems(results)
}
