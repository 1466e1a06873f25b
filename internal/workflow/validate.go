package workflow

import (
	"fmt"
	"slices"
)

// ValidationError describes a single validation problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a Table for errors and returns all problems found.
func Validate(t *Table) []ValidationError {
	var errs []ValidationError

	if len(t.States) == 0 {
		errs = append(errs, ValidationError{
			Field:   "states",
			Message: "at least one state is required",
		})
	}

	seen := make(map[State]bool, len(t.States))
	for i, s := range t.States {
		field := fmt.Sprintf("states[%d]", i)
		switch {
		case s == "":
			errs = append(errs, ValidationError{Field: field, Message: "state name is required"})
		case seen[s]:
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("duplicate state %q", s)})
		}
		seen[s] = true
	}

	if t.Initial == "" {
		errs = append(errs, ValidationError{
			Field:   "initial",
			Message: "initial state is required",
		})
	} else if !seen[t.Initial] {
		errs = append(errs, ValidationError{
			Field:   "initial",
			Message: fmt.Sprintf("unknown initial state %q", t.Initial),
		})
	}

	// Sorted so problems are reported in a stable order
	froms := make([]State, 0, len(t.Transitions))
	for from := range t.Transitions {
		froms = append(froms, from)
	}
	slices.Sort(froms)

	for _, from := range froms {
		field := fmt.Sprintf("transitions.%s", from)
		if !seen[from] {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("unknown source state %q", from)})
			continue
		}
		targets := t.Transitions[from]
		if len(targets) > 9 {
			errs = append(errs, ValidationError{Field: field, Message: "at most 9 transitions per state (one per digit key)"})
		}
		for _, to := range targets {
			switch {
			case to == from:
				errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("state %q transitions to itself", from)})
			case !seen[to]:
				errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("unknown target state %q", to)})
			}
		}
	}

	return errs
}
