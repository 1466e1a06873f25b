package executor

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/agnivade/levenshtein"

	"github.com/zhubert/loom/internal/errors"
)

// Command is a built-in console command.
type Command struct {
	Name  string
	Usage string
	Help  string
	Run   func(ctx context.Context, sh *Shell, args []string) (string, error)
}

// Registry holds the built-in commands by name.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds or replaces c.
func (r *Registry) Register(c Command) {
	r.commands[c.Name] = c
}

// Lookup returns the command called name.
func (r *Registry) Lookup(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.commands))
}

// Suggest returns the registered name closest to name, if any is within a
// third of its length (at least two edits).
func (r *Registry) Suggest(name string) (string, bool) {
	best, bestDist := "", -1
	for _, candidate := range r.Names() {
		d := levenshtein.ComputeDistance(name, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(name)/3) {
		return "", false
	}
	return best, true
}

func (r *Registry) unknown(name string) error {
	if s, ok := r.Suggest(name); ok {
		return errors.E(errors.Op("executor.Execute"), errors.KindCommand, fmt.Sprintf("unknown command: %s (did you mean %s?)", name, s))
	}
	return errors.UnknownCommand(name)
}
