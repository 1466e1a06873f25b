// Package workflow provides the work item state machine shown by loom's
// workflow view. Tables are defined in .loom/workflow.yaml per project and
// fall back to the built-in states and transitions.
package workflow

import (
	"slices"
	"strings"
)

// State is a workflow state name such as IN_PROGRESS.
type State string

// Built-in states
const (
	Created    State = "CREATED"
	Ready      State = "READY"
	InProgress State = "IN_PROGRESS"
	Review     State = "REVIEW"
	Testing    State = "TESTING"
	Done       State = "DONE"
	Blocked    State = "BLOCKED"
	Found      State = "FOUND"
	Triaged    State = "TRIAGED"
	ToDo       State = "TO_DO"
	InTest     State = "IN_TEST"
)

// ParseState normalizes a state name: case is ignored and spaces or dashes
// become underscores.
func ParseState(s string) State {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return State(strings.ToUpper(s))
}

// Label is the display form of the state.
func (s State) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// Table is the top-level workflow configuration: the states in display
// order and the transitions allowed out of each.
type Table struct {
	Initial     State             `yaml:"initial"`
	States      []State           `yaml:"states"`
	Transitions map[State][]State `yaml:"transitions"`
}

// Has reports whether s is one of the table's states.
func (t *Table) Has(s State) bool {
	return slices.Contains(t.States, s)
}

// Available returns the states reachable from from in one transition, in
// the order they are configured.
func (t *Table) Available(from State) []State {
	return slices.Clone(t.Transitions[from])
}

// CanTransition reports whether from -> to is allowed.
func (t *Table) CanTransition(from, to State) bool {
	return slices.Contains(t.Transitions[from], to)
}

// Index returns the display position of s, or -1.
func (t *Table) Index(s State) int {
	return slices.Index(t.States, s)
}
