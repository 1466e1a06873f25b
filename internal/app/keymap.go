package app

import (
	"charm.land/bubbles/v2/key"

	"github.com/zhubert/loom/internal/keys"
)

// keyMap holds the bindings handled before keys reach the focused
// component.
type keyMap struct {
	Quit       key.Binding
	NextScreen key.Binding
	PrevScreen key.Binding
	Dashboard  key.Binding
	Items      key.Binding
	Graph      key.Binding
	Console    key.Binding
	Workflow   key.Binding
	Search     key.Binding
	NextFocus  key.Binding
	PrevFocus  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys(keys.CtrlC), key.WithHelp("ctrl+c", "quit")),
		NextScreen: key.NewBinding(key.WithKeys(keys.CtrlN), key.WithHelp("ctrl+n", "next screen")),
		PrevScreen: key.NewBinding(key.WithKeys(keys.CtrlP), key.WithHelp("ctrl+p", "prev screen")),
		Dashboard:  key.NewBinding(key.WithKeys(keys.F1), key.WithHelp("f1", "dashboard")),
		Items:      key.NewBinding(key.WithKeys(keys.F2), key.WithHelp("f2", "items")),
		Graph:      key.NewBinding(key.WithKeys(keys.F3), key.WithHelp("f3", "graph")),
		Console:    key.NewBinding(key.WithKeys(keys.F4), key.WithHelp("f4", "console")),
		Workflow:   key.NewBinding(key.WithKeys(keys.F5), key.WithHelp("f5", "workflow")),
		Search:     key.NewBinding(key.WithKeys(keys.F6), key.WithHelp("f6", "search")),
		NextFocus:  key.NewBinding(key.WithKeys(keys.Tab), key.WithHelp("tab", "focus")),
		PrevFocus:  key.NewBinding(key.WithKeys(keys.ShiftTab), key.WithHelp("shift+tab", "focus back")),
	}
}

// jumps maps the direct screen bindings to their screens.
func (k keyMap) jumps() []struct {
	binding key.Binding
	screen  Screen
} {
	return []struct {
		binding key.Binding
		screen  Screen
	}{
		{k.Dashboard, ScreenDashboard},
		{k.Items, ScreenItems},
		{k.Graph, ScreenGraph},
		{k.Console, ScreenConsole},
		{k.Workflow, ScreenWorkflow},
		{k.Search, ScreenSearch},
	}
}

var screenHints = [numScreens][]key.Binding{
	ScreenDashboard: {
		key.NewBinding(key.WithKeys(keys.Enter), key.WithHelp("enter", "rerun")),
	},
	ScreenItems: {
		key.NewBinding(key.WithKeys(keys.Left, keys.Right), key.WithHelp("←/→", "column")),
		key.NewBinding(key.WithKeys(keys.Up, keys.Down), key.WithHelp("↑/↓", "select")),
	},
	ScreenGraph: {
		key.NewBinding(key.WithKeys(keys.Enter), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys(keys.Space), key.WithHelp("space", "expand")),
		key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "depth")),
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1-9", "edge types")),
	},
	ScreenConsole: {
		key.NewBinding(key.WithKeys(keys.Tab), key.WithHelp("tab", "complete")),
		key.NewBinding(key.WithKeys(keys.CtrlV), key.WithHelp("ctrl+v", "paste")),
	},
	ScreenWorkflow: {
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1-9", "transition")),
	},
	ScreenSearch: {
		key.NewBinding(key.WithKeys(keys.Enter), key.WithHelp("enter", "open")),
	},
}

// ShortHelp implements help.KeyMap.
func (m *Model) ShortHelp() []key.Binding {
	out := append([]key.Binding{}, screenHints[m.screen]...)
	return append(out, m.keys.NextScreen, m.keys.Quit)
}

// FullHelp implements help.KeyMap.
func (m *Model) FullHelp() [][]key.Binding {
	var jumps []key.Binding
	for _, j := range m.keys.jumps() {
		jumps = append(jumps, j.binding)
	}
	return [][]key.Binding{
		screenHints[m.screen],
		jumps,
		{m.keys.NextScreen, m.keys.PrevScreen, m.keys.NextFocus, m.keys.PrevFocus, m.keys.Quit},
	}
}
