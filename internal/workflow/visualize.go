package workflow

import (
	"fmt"
	"strings"
)

// GenerateMermaid produces a mermaid stateDiagram-v2 string from a workflow table.
func GenerateMermaid(t *Table) string {
	var sb strings.Builder

	sb.WriteString("stateDiagram-v2\n")
	if t.Initial != "" {
		sb.WriteString(fmt.Sprintf("    [*] --> %s\n", t.Initial))
	}

	for _, from := range t.States {
		targets := t.Transitions[from]
		for i, to := range targets {
			sb.WriteString(fmt.Sprintf("    %s --> %s : %d\n", from, to, i+1))
		}
	}

	// Terminal states have no way out
	for _, s := range t.States {
		if len(t.Transitions[s]) == 0 {
			sb.WriteString(fmt.Sprintf("    %s --> [*]\n", s))
		}
	}

	return sb.String()
}
