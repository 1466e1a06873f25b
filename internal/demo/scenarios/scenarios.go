// Package scenarios contains built-in demo scenarios for loom.
package scenarios

import (
	"time"

	"github.com/zhubert/loom/internal/app"
	"github.com/zhubert/loom/internal/demo"
	"github.com/zhubert/loom/internal/keys"
)

// Layout tours every screen, showing how the same box layout reflows each
// component tree into the content area.
var Layout = &demo.Scenario{
	Name:        "layout",
	Description: "Tour the screens and their box layouts",
	Width:       120,
	Height:      40,
	Screen:      app.ScreenDashboard,
	Steps: []demo.Step{
		demo.Annotate("Dashboard: a vertical box of label, progress meter and history"),
		demo.Wait(1500 * time.Millisecond),
		demo.KeyWithDesc(keys.CtrlN, "next screen"),
		demo.Annotate("Items: Miller columns filling the whole screen"),
		demo.Wait(1200 * time.Millisecond),
		demo.KeyWithDesc(keys.CtrlN, "next screen"),
		demo.Annotate("Graph: radial dependency view"),
		demo.Wait(1200 * time.Millisecond),
		demo.KeyWithDesc(keys.CtrlN, "next screen"),
		demo.Wait(800 * time.Millisecond),
		demo.KeyWithDesc(keys.CtrlN, "next screen"),
		demo.Wait(800 * time.Millisecond),
		demo.KeyWithDesc(keys.CtrlN, "next screen"),
		demo.Wait(800 * time.Millisecond),
		demo.KeyWithDesc(keys.F1, "back to the dashboard"),
		demo.Wait(1 * time.Second),
	},
}

// List searches work items and browses the result list.
var List = &demo.Scenario{
	Name:        "list",
	Description: "Autocomplete search feeding a selectable list",
	Width:       120,
	Height:      40,
	Screen:      app.ScreenSearch,
	Steps: []demo.Step{
		demo.Wait(800 * time.Millisecond),
		demo.TypeWithDesc("WI-103", "fuzzy search"),
		demo.Annotate("Suggestions come from a fuzzy matcher"),
		demo.Wait(1 * time.Second),
		demo.Key(keys.Down),
		demo.Wait(500 * time.Millisecond),
		demo.KeyWithDesc(keys.Enter, "open the item"),
		demo.Annotate("The item and its children fill the result list"),
		demo.Wait(1 * time.Second),
		demo.KeyWithDesc(keys.Tab, "focus the list"),
		demo.Key(keys.Down),
		demo.Wait(500 * time.Millisecond),
		demo.Key(keys.Down),
		demo.Wait(800 * time.Millisecond),
		demo.KeyWithDesc(keys.Enter, "show it in the graph"),
		demo.Wait(1500 * time.Millisecond),
	},
}

// Graph navigates the dependency graph around the epic.
var Graph = &demo.Scenario{
	Name:        "graph",
	Description: "Navigate, expand and filter the dependency graph",
	Width:       120,
	Height:      40,
	Screen:      app.ScreenGraph,
	Steps: []demo.Step{
		demo.Annotate("The focused item sits in the centre, neighbours on rings"),
		demo.Wait(1500 * time.Millisecond),
		demo.Key(keys.Right),
		demo.Wait(600 * time.Millisecond),
		demo.Key(keys.Down),
		demo.Wait(600 * time.Millisecond),
		demo.KeyWithDesc(keys.Space, "expand the selected node"),
		demo.Annotate("Expanded nodes pull in their own neighbours"),
		demo.Wait(1200 * time.Millisecond),
		demo.KeyWithDesc("+", "deeper"),
		demo.Wait(1200 * time.Millisecond),
		demo.KeyWithDesc("1", "toggle the first relationship type"),
		demo.Wait(1 * time.Second),
		demo.KeyWithDesc("1", "and back"),
		demo.Wait(600 * time.Millisecond),
		demo.KeyWithDesc(keys.Enter, "select the node"),
		demo.Wait(1500 * time.Millisecond),
	},
}

// Miller drills through the work item hierarchy.
var Miller = &demo.Scenario{
	Name:        "miller",
	Description: "Drill through work items in Miller columns",
	Width:       120,
	Height:      40,
	Screen:      app.ScreenItems,
	Steps: []demo.Step{
		demo.Wait(1 * time.Second),
		demo.KeyWithDesc(keys.Right, "into the epic"),
		demo.Wait(700 * time.Millisecond),
		demo.Key(keys.Down),
		demo.Wait(500 * time.Millisecond),
		demo.Key(keys.Down),
		demo.Wait(700 * time.Millisecond),
		demo.KeyWithDesc(keys.Right, "into the feature"),
		demo.Annotate("Leaves show their details in the last column"),
		demo.Wait(1200 * time.Millisecond),
		demo.KeyWithDesc(keys.Left, "back out"),
		demo.Wait(600 * time.Millisecond),
		demo.Key(keys.Left),
		demo.Key(keys.Down),
		demo.Wait(1500 * time.Millisecond),
	},
}

// Console runs built-in commands in the shell console.
var Console = &demo.Scenario{
	Name:        "console",
	Description: "Shell console with completion, history and paste",
	Width:       120,
	Height:      40,
	Screen:      app.ScreenConsole,
	Steps: []demo.Step{
		demo.Wait(800 * time.Millisecond),
		demo.TypeWithDesc("ls", "list work items"),
		demo.Key(keys.Enter),
		demo.Wait(1200 * time.Millisecond),
		demo.TypeWithDesc("view wi-103", "show one item"),
		demo.Key(keys.Enter),
		demo.Wait(1200 * time.Millisecond),
		demo.Type("da"),
		demo.KeyWithDesc(keys.Tab, "show completions"),
		demo.Annotate("Tab completes built-ins and history"),
		demo.Wait(800 * time.Millisecond),
		demo.KeyWithDesc(keys.Tab, "accept"),
		demo.Key(keys.Enter),
		demo.Wait(800 * time.Millisecond),
		demo.TypeWithDesc("lss", "typo"),
		demo.Key(keys.Enter),
		demo.Annotate("Unknown commands get a suggestion"),
		demo.Wait(1200 * time.Millisecond),
		demo.KeyWithDesc(keys.CtrlV, "paste from the clipboard"),
		demo.Wait(500 * time.Millisecond),
		demo.Key(keys.Enter),
		demo.Wait(1200 * time.Millisecond),
		demo.KeyWithDesc(keys.Up, "recall history"),
		demo.Wait(1 * time.Second),
	},
}

// Workflow moves the epic through its workflow.
var Workflow = &demo.Scenario{
	Name:        "workflow",
	Description: "Move a work item through the workflow states",
	Width:       120,
	Height:      40,
	Screen:      app.ScreenWorkflow,
	Steps: []demo.Step{
		demo.Annotate("Numbered keys follow the transitions out of the current state"),
		demo.Wait(1500 * time.Millisecond),
		demo.KeyWithDesc("1", "to review"),
		demo.Wait(1 * time.Second),
		demo.KeyWithDesc("1", "to testing"),
		demo.Wait(1 * time.Second),
		demo.KeyWithDesc("1", "to done"),
		demo.Wait(1200 * time.Millisecond),
		demo.KeyWithDesc(keys.F1, "dashboard progress"),
		demo.Wait(1500 * time.Millisecond),
	},
}

// All returns all built-in scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Layout,
		List,
		Graph,
		Miller,
		Console,
		Workflow,
	}
}

// Get returns a scenario by name, or nil if not found.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}
