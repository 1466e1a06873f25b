package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/workitem"
)

// DefaultRegistry returns a registry with the standard built-ins.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, c := range []Command{
		{Name: "echo", Usage: "echo [text...]", Help: "Print the arguments", Run: runEcho},
		{Name: "pwd", Usage: "pwd", Help: "Print the working directory", Run: runPwd},
		{Name: "cd", Usage: "cd [dir]", Help: "Change the working directory", Run: runCd},
		{Name: "env", Usage: "env", Help: "List environment variables", Run: runEnv},
		{Name: "export", Usage: "export NAME=value...", Help: "Set environment variables", Run: runExport},
		{Name: "history", Usage: "history", Help: "List previous commands", Run: runHistory},
		{Name: "date", Usage: "date", Help: "Print the current date and time", Run: runDate},
		{Name: "ls", Usage: "ls [state]", Help: "List work items, optionally in one state", Run: runLs},
		{Name: "view", Usage: "view <id>", Help: "Show one work item", Run: runView},
		{Name: "commands", Usage: "commands", Help: "List built-in commands", Run: runCommands},
	} {
		r.Register(c)
	}
	return r
}

func usage(sh *Shell, name string) error {
	c, _ := sh.registry.Lookup(name)
	return errors.E(errors.Op("executor."+name), errors.KindInvalid, "usage: "+c.Usage)
}

func runEcho(_ context.Context, _ *Shell, args []string) (string, error) {
	return strings.Join(args, " "), nil
}

func runPwd(_ context.Context, sh *Shell, _ []string) (string, error) {
	return sh.Dir(), nil
}

func runCd(_ context.Context, sh *Shell, args []string) (string, error) {
	if len(args) > 1 {
		return "", usage(sh, "cd")
	}
	target := sh.Getenv("HOME")
	if len(args) == 1 {
		target = args[0]
	}
	if target == "" {
		return "", errors.E(errors.Op("executor.cd"), errors.KindInvalid, "HOME not set")
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(sh.Dir(), target)
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", errors.E(errors.Op("executor.cd"), errors.KindNotFound, fmt.Sprintf("no such directory: %s", target))
	}
	if !info.IsDir() {
		return "", errors.E(errors.Op("executor.cd"), errors.KindInvalid, fmt.Sprintf("not a directory: %s", target))
	}
	sh.setDir(filepath.Clean(target))
	return "", nil
}

func runEnv(_ context.Context, sh *Shell, _ []string) (string, error) {
	return strings.Join(sh.Environ(), "\n"), nil
}

func runExport(_ context.Context, sh *Shell, args []string) (string, error) {
	if len(args) == 0 {
		return "", usage(sh, "export")
	}
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			return "", usage(sh, "export")
		}
		sh.Setenv(name, value)
	}
	return "", nil
}

func runHistory(_ context.Context, sh *Shell, _ []string) (string, error) {
	var b strings.Builder
	for i, line := range sh.History() {
		fmt.Fprintf(&b, "%5d  %s\n", i+1, line)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func runDate(_ context.Context, sh *Shell, _ []string) (string, error) {
	return sh.now().Format("Mon Jan _2 15:04:05 MST 2006"), nil
}

func runCommands(_ context.Context, sh *Shell, _ []string) (string, error) {
	var b strings.Builder
	for _, name := range sh.registry.Names() {
		c, _ := sh.registry.Lookup(name)
		fmt.Fprintf(&b, "  %-22s %s\n", c.Usage, c.Help)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func noItems() error {
	return errors.E(errors.Op("executor.ls"), errors.KindNotFound, "no work items loaded")
}

// walkItems visits every item depth-first from the roots, with its depth.
func walkItems(src workitem.Source, fn func(item workitem.Item, depth int) bool) error {
	roots, err := src.ListRootItems()
	if err != nil {
		return err
	}
	var visit func(items []workitem.Item, depth int) (bool, error)
	visit = func(items []workitem.Item, depth int) (bool, error) {
		for _, item := range items {
			if !fn(item, depth) {
				return false, nil
			}
			children, err := src.ChildrenOf(item)
			if err != nil {
				return false, err
			}
			if cont, err := visit(children, depth+1); !cont || err != nil {
				return cont, err
			}
		}
		return true, nil
	}
	_, err = visit(roots, 0)
	return err
}

func runLs(_ context.Context, sh *Shell, args []string) (string, error) {
	if sh.items == nil {
		return "", noItems()
	}
	if len(args) > 1 {
		return "", usage(sh, "ls")
	}
	var filter string
	if len(args) == 1 {
		filter = strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(args[0]))
	}

	var b strings.Builder
	err := walkItems(sh.items, func(item workitem.Item, depth int) bool {
		if filter != "" && string(item.State) != filter {
			return true
		}
		indent := strings.Repeat("  ", depth)
		if filter != "" {
			indent = ""
		}
		fmt.Fprintf(&b, "%s%-8s %-12s %s\n", indent, item.ID, item.State.Label(), item.Title)
		return true
	})
	if err != nil {
		return "", err
	}
	if b.Len() == 0 {
		return "no matching work items", nil
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func runView(_ context.Context, sh *Shell, args []string) (string, error) {
	if sh.items == nil {
		return "", noItems()
	}
	if len(args) != 1 {
		return "", usage(sh, "view")
	}
	id := strings.ToUpper(args[0])
	var found *workitem.Item
	err := walkItems(sh.items, func(item workitem.Item, _ int) bool {
		if strings.ToUpper(item.ID) == id {
			found = &item
			return false
		}
		return true
	})
	if err != nil {
		return "", err
	}
	if found == nil {
		return "", errors.ItemNotFound(args[0])
	}
	return found.Details(), nil
}
