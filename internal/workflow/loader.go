package workflow

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const workflowFileName = "workflow.yaml"
const workflowDir = ".loom"

// Path returns the workflow file location for a project directory.
func Path(dir string) string {
	return filepath.Join(dir, workflowDir, workflowFileName)
}

// Load reads and parses .loom/workflow.yaml from the given directory.
// Returns nil, nil if the file does not exist.
func Load(dir string) (*Table, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read workflow config: %w", err)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse workflow config: %w", err)
	}
	t.normalize()

	return &t, nil
}

// LoadAndMerge loads the workflow table and merges with defaults.
// If no workflow file exists, returns the default table.
func LoadAndMerge(dir string) (*Table, error) {
	t, err := Load(dir)
	if err != nil {
		return nil, err
	}

	defaults := DefaultTable()
	if t == nil {
		return defaults, nil
	}

	return Merge(t, defaults), nil
}

// normalize rewrites hand-written state names into canonical form.
func (t *Table) normalize() {
	if t.Initial != "" {
		t.Initial = ParseState(string(t.Initial))
	}
	for i, s := range t.States {
		t.States[i] = ParseState(string(s))
	}
	if t.Transitions == nil {
		return
	}
	normalized := make(map[State][]State, len(t.Transitions))
	for from, targets := range t.Transitions {
		out := make([]State, len(targets))
		for i, to := range targets {
			out[i] = ParseState(string(to))
		}
		normalized[ParseState(string(from))] = out
	}
	t.Transitions = normalized
}
