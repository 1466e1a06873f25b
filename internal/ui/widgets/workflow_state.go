package widgets

import (
	"slices"

	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/ui"
	"github.com/zhubert/loom/internal/workflow"
)

// State grid geometry, relative to the view origin.
const (
	stateStartX     = 2
	stateStartY     = 2
	StateBoxWidth   = 16
	StateBoxHeight  = 3
	stateGapX       = 2
	stateGapY       = 2
	statesPerRow    = 4
	defaultStatus   = "Select a transition using the highlighted key"
	cancelledStatus = "Transition cancelled"
)

// TransitionHandler is asked to move the work item to target.
type TransitionHandler interface {
	Transition(target workflow.State)
}

// TransitionFunc adapts a function to TransitionHandler.
type TransitionFunc func(target workflow.State)

func (f TransitionFunc) Transition(target workflow.State) { f(target) }

// WorkflowStateView draws every state of a workflow table on a grid,
// highlighting the current state and numbering the available transitions.
// Pressing a digit requests the matching transition.
type WorkflowStateView struct {
	ui.Base
	table     *workflow.Table
	current   workflow.State
	available []workflow.State
	status    string
	handlers  []TransitionHandler
}

// NewWorkflowStateView creates a view over table. A nil table uses the
// built-in workflow.
func NewWorkflowStateView(id string, table *workflow.Table) *WorkflowStateView {
	if table == nil {
		table = workflow.DefaultTable()
	}
	v := &WorkflowStateView{
		Base:   ui.NewBase(ui.KindWorkflow, id),
		table:  table,
		status: defaultStatus,
	}
	rows := (len(table.States) + statesPerRow - 1) / statesPerRow
	v.SetSize(ui.Dim(
		stateStartX*2+statesPerRow*StateBoxWidth+(statesPerRow-1)*stateGapX,
		stateStartY+rows*(StateBoxHeight+stateGapY)+1,
	))
	return v
}

// Table returns the workflow being shown
func (v *WorkflowStateView) Table() *workflow.Table {
	return v.table
}

// CurrentState returns the highlighted state
func (v *WorkflowStateView) CurrentState() workflow.State {
	return v.current
}

// SetCurrentState highlights s and offers the table's transitions out of it.
func (v *WorkflowStateView) SetCurrentState(s workflow.State) {
	v.current = s
	v.available = v.table.Available(s)
}

// AvailableTransitions returns the numbered targets, in key order.
func (v *WorkflowStateView) AvailableTransitions() []workflow.State {
	return slices.Clone(v.available)
}

// SetAvailableTransitions overrides the numbered targets.
func (v *WorkflowStateView) SetAvailableTransitions(states []workflow.State) {
	v.available = slices.Clone(states)
}

// Status returns the message line
func (v *WorkflowStateView) Status() string {
	return v.status
}

// SetStatus sets the message line
func (v *WorkflowStateView) SetStatus(msg string) {
	v.status = msg
}

// AddTransitionHandler registers h. Handlers are called in registration order.
func (v *WorkflowStateView) AddTransitionHandler(h TransitionHandler) {
	v.handlers = append(v.handlers, h)
}

// KeyFor returns the digit that selects s, or 0 when s is not available.
func (v *WorkflowStateView) KeyFor(s workflow.State) rune {
	i := slices.Index(v.available, s)
	if i < 0 || i > 8 {
		return 0
	}
	return rune('1' + i)
}

// StateOf reports how s is drawn: current, available or normal.
func (v *WorkflowStateView) StateOf(s workflow.State) ui.State {
	switch {
	case s == v.current:
		return ui.StateCurrent
	case slices.Contains(v.available, s):
		return ui.StateAvailable
	}
	return ui.StateNormal
}

// StatePosition returns the top-left corner of the box for s relative to
// the view, and false for states not in the table.
func (v *WorkflowStateView) StatePosition(s workflow.State) (ui.Point, bool) {
	i := v.table.Index(s)
	if i < 0 {
		return ui.Point{}, false
	}
	row, col := i/statesPerRow, i%statesPerRow
	return ui.Pt(
		stateStartX+col*(StateBoxWidth+stateGapX),
		stateStartY+row*(StateBoxHeight+stateGapY),
	), true
}

// StateLabel is the text inside the box for s.
func (v *WorkflowStateView) StateLabel(s workflow.State) string {
	if k := v.KeyFor(s); k != 0 {
		return string(k) + ": " + s.Label()
	}
	return s.Label()
}

func (v *WorkflowStateView) Focusable() bool { return true }

// HandleKey follows the transition numbered by a digit key. Escape cancels.
func (v *WorkflowStateView) HandleKey(ev keys.Event) bool {
	if !v.Receiving() {
		return false
	}
	if ev.Is(keys.CodeEscape) {
		v.status = cancelledStatus
		return true
	}

	r, ok := ev.Printable()
	if !ok || r < '1' || r > '9' {
		return false
	}
	i := int(r - '1')
	if i >= len(v.available) {
		return false
	}
	target := v.available[i]
	for _, h := range v.handlers {
		h.Transition(target)
	}
	return true
}
