// Package executor runs console command lines: built-in commands from a
// Registry, and '!' escapes through an embedded POSIX shell interpreter.
package executor

import (
	"bytes"
	"context"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/kballard/go-shellquote"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/logger"
	"github.com/zhubert/loom/internal/workitem"
)

// Shell executes commands with a persistent working directory, environment
// and history. It is safe for concurrent use; state is snapshotted for the
// duration of a command so completion never waits on a running command.
type Shell struct {
	mu       sync.Mutex
	registry *Registry
	dir      string
	env      map[string]string
	history  []string
	items    workitem.Source
	now      func() time.Time
	log      *slog.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithDir sets the starting directory.
func WithDir(dir string) Option {
	return func(s *Shell) { s.dir = dir }
}

// WithEnv replaces the inherited environment.
func WithEnv(env map[string]string) Option {
	return func(s *Shell) { s.env = maps.Clone(env) }
}

// WithItems sets the work items listed by ls and view.
func WithItems(src workitem.Source) Option {
	return func(s *Shell) { s.items = src }
}

// WithClock replaces time.Now for the date command.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

// WithRegistry replaces the built-in commands.
func WithRegistry(r *Registry) Option {
	return func(s *Shell) { s.registry = r }
}

// New creates a shell in the process working directory with a copy of the
// process environment and the default built-ins.
func New(opts ...Option) *Shell {
	s := &Shell{
		registry: DefaultRegistry(),
		now:      time.Now,
		log:      logger.WithComponent("executor"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.env == nil {
		s.env = make(map[string]string)
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				s.env[k] = v
			}
		}
	}
	if s.dir == "" {
		if wd, err := os.Getwd(); err == nil {
			s.dir = wd
		}
	}
	s.env["PWD"] = s.dir
	return s
}

// Registry returns the built-in commands.
func (s *Shell) Registry() *Registry { return s.registry }

// Dir returns the working directory.
func (s *Shell) Dir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir
}

// Getenv returns the value of an environment variable.
func (s *Shell) Getenv(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env[name]
}

// Setenv sets an environment variable.
func (s *Shell) Setenv(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env[name] = value
}

// Environ returns the environment as sorted NAME=value pairs.
func (s *Shell) Environ() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.env))
	for _, k := range slices.Sorted(maps.Keys(s.env)) {
		out = append(out, k+"="+s.env[k])
	}
	return out
}

// History returns the executed command lines, oldest first.
func (s *Shell) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

func (s *Shell) setDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dir = dir
	s.env["PWD"] = dir
}

// Execute runs one command line. A leading '!' runs the rest through the
// shell interpreter; anything else is a built-in. The returned output is
// meaningful even when err is set.
func (s *Shell) Execute(ctx context.Context, line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	s.mu.Lock()
	s.history = append(s.history, line)
	s.mu.Unlock()

	if body, ok := strings.CutPrefix(line, "!"); ok {
		return s.runShell(ctx, body)
	}

	args, err := shellquote.Split(s.expand(line))
	if err != nil {
		return "", errors.E(errors.Op("executor.Execute"), errors.KindInvalid, err)
	}
	if len(args) == 0 {
		return "", nil
	}
	cmd, ok := s.registry.Lookup(args[0])
	if !ok {
		return "", s.registry.unknown(args[0])
	}
	s.log.Debug("built-in", "command", cmd.Name, "args", args[1:])
	return cmd.Run(ctx, s, args[1:])
}

// expand substitutes $NAME and ${NAME} from the shell environment.
func (s *Shell) expand(line string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.Expand(line, func(name string) string { return s.env[name] })
}

// runShell interprets body as a POSIX shell program. Directory and exported
// variable changes persist into later commands.
func (s *Shell) runShell(ctx context.Context, body string) (string, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(body), "")
	if err != nil {
		return "", errors.E(errors.Op("executor.Shell"), errors.KindInvalid, err)
	}

	s.mu.Lock()
	dir := s.dir
	env := make([]string, 0, len(s.env))
	for k, v := range s.env {
		env = append(env, k+"="+v)
	}
	s.mu.Unlock()

	var out bytes.Buffer
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, &out, &out),
	)
	if err != nil {
		return "", errors.E(errors.Op("executor.Shell"), errors.KindCommand, err)
	}

	runErr := runner.Run(ctx, prog)

	s.mu.Lock()
	if runner.Dir != "" {
		s.dir = runner.Dir
	}
	for name, vr := range runner.Vars {
		if vr.Exported && vr.IsSet() {
			s.env[name] = vr.String()
		}
	}
	s.env["PWD"] = s.dir
	s.mu.Unlock()

	if runErr != nil {
		name := body
		if f := strings.Fields(body); len(f) > 0 {
			name = f[0]
		}
		return out.String(), errors.CommandFailed(name, runErr)
	}
	return out.String(), nil
}

// Complete returns built-in names, then previous command lines, that start
// with input. Duplicates are dropped and recent history comes first.
func (s *Shell) Complete(input string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(c string) {
		if strings.HasPrefix(c, input) && c != input && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	if !strings.Contains(input, " ") && !strings.HasPrefix(input, "!") {
		for _, name := range s.registry.Names() {
			add(name)
		}
	}
	history := s.History()
	for i := len(history) - 1; i >= 0; i-- {
		add(history[i])
	}
	return out
}
