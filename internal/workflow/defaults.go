package workflow

import (
	"maps"
	"slices"
)

// DefaultTable returns the built-in work item workflow: the feature
// pipeline, the blocked detour and the bug triage path.
func DefaultTable() *Table {
	return &Table{
		Initial: Created,
		States: []State{
			Created, Ready, InProgress, Review,
			Testing, Done, Blocked,
			Found, Triaged, ToDo, InTest,
		},
		Transitions: map[State][]State{
			Created:    {Ready},
			Ready:      {InProgress, Blocked},
			InProgress: {Review, InTest, Blocked},
			Review:     {Testing, InProgress},
			Testing:    {Done, InProgress},
			InTest:     {Done, InProgress},
			Blocked:    {Ready, InProgress},
			Done:       {Ready},
			Found:      {Triaged},
			Triaged:    {ToDo},
			ToDo:       {InProgress},
		},
	}
}

// Merge fills in missing values in partial from defaults.
// partial takes precedence; defaults fill gaps. A partial table that keeps
// the default states may override the targets of individual states; one
// that lists its own states must list its own transitions too.
func Merge(partial, defaults *Table) *Table {
	result := *partial

	if result.Initial == "" {
		result.Initial = defaults.Initial
	}
	if len(result.States) > 0 {
		return &result
	}

	result.States = slices.Clone(defaults.States)
	transitions := maps.Clone(defaults.Transitions)
	if transitions == nil {
		transitions = make(map[State][]State)
	}
	maps.Copy(transitions, partial.Transitions)
	result.Transitions = transitions

	return &result
}
