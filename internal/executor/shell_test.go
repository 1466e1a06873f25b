package executor

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/workflow"
	"github.com/zhubert/loom/internal/workitem"
)

func testItems(t *testing.T) *workitem.MemorySource {
	t.Helper()
	src, err := workitem.NewMemorySource([]workitem.Item{
		{ID: "WI-1", Title: "Layout engine", State: workflow.InProgress},
		{ID: "WI-2", Title: "Box layout", State: workflow.Done, Parent: "WI-1"},
		{ID: "WI-3", Title: "Grid layout", State: workflow.ToDo, Parent: "WI-1"},
		{ID: "WI-4", Title: "Theme loader", State: workflow.Done},
	})
	if err != nil {
		t.Fatalf("NewMemorySource() error = %v", err)
	}
	return src
}

func newShell(t *testing.T, opts ...Option) *Shell {
	t.Helper()
	base := []Option{
		WithDir(t.TempDir()),
		WithEnv(map[string]string{"HOME": "/nonexistent-home", "USER": "dana"}),
		WithClock(func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) }),
	}
	return New(append(base, opts...)...)
}

func exec(t *testing.T, sh *Shell, line string) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return sh.Execute(ctx, line)
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		name  string
		setup []string
		line  string
		want  string
	}{
		{name: "echo joins arguments", line: `echo hello   "big  world"`, want: "hello big  world"},
		{name: "echo expands variables", line: "echo hi $USER ${USER}!", want: "hi dana dana!"},
		{name: "export then echo", setup: []string{"export GREETING=hey NAME=loom"}, line: "echo $GREETING $NAME", want: "hey loom"},
		{name: "date", line: "date", want: "Tue Mar  5 14:07:09 UTC 2024"},
		{name: "history numbers lines", setup: []string{"echo a", "pwd"}, line: "history", want: "    1  echo a\n    2  pwd\n    3  history"},
		{name: "blank line", line: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := newShell(t)
			for _, s := range tt.setup {
				if _, err := exec(t, sh, s); err != nil {
					t.Fatalf("setup %q: %v", s, err)
				}
			}
			got, err := exec(t, sh, tt.line)
			if err != nil {
				t.Fatalf("Execute(%q) error = %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("Execute(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestEnv(t *testing.T) {
	sh := newShell(t)
	out, err := exec(t, sh, "env")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	if !slices.IsSorted(lines) {
		t.Errorf("env output not sorted: %q", lines)
	}
	if !slices.Contains(lines, "USER=dana") || !slices.Contains(lines, "PWD="+sh.Dir()) {
		t.Errorf("env output = %q", lines)
	}
}

func TestCd(t *testing.T) {
	sh := newShell(t)
	root := sh.Dir()
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "file.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := exec(t, sh, "cd sub"); err != nil {
		t.Fatalf("cd sub: %v", err)
	}
	if got, _ := exec(t, sh, "pwd"); got != filepath.Join(root, "sub") {
		t.Errorf("pwd = %q", got)
	}
	if sh.Getenv("PWD") != filepath.Join(root, "sub") {
		t.Errorf("PWD = %q", sh.Getenv("PWD"))
	}
	if _, err := exec(t, sh, "cd .."); err != nil || sh.Dir() != root {
		t.Errorf("cd .. gave %q, %v", sh.Dir(), err)
	}

	tests := []struct {
		line string
		kind errors.Kind
	}{
		{"cd missing", errors.KindNotFound},
		{"cd file.txt", errors.KindInvalid},
		{"cd a b", errors.KindInvalid},
		{"cd", errors.KindNotFound},
	}
	for _, tt := range tests {
		_, err := exec(t, sh, tt.line)
		if !errors.Is(err, tt.kind) {
			t.Errorf("%q error = %v, want kind %v", tt.line, err, tt.kind)
		}
	}
	if sh.Dir() != root {
		t.Errorf("failed cd moved the shell to %q", sh.Dir())
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		kind    errors.Kind
		message string
	}{
		{"unknown with suggestion", "lss", errors.KindCommand, "unknown command: lss (did you mean ls?)"},
		{"unknown with suggestion for longer name", "histroy", errors.KindCommand, "unknown command: histroy (did you mean history?)"},
		{"unknown without suggestion", "kubernetes", errors.KindCommand, "unknown command: kubernetes"},
		{"unterminated quote", `echo "oops`, errors.KindInvalid, ""},
		{"bad export", "export =x", errors.KindInvalid, "usage: export NAME=value..."},
		{"ls without items", "ls", errors.KindNotFound, "no work items loaded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := newShell(t)
			_, err := exec(t, sh, tt.line)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("error = %v, want kind %v", err, tt.kind)
			}
			if tt.message != "" && errors.Message(err) != tt.message {
				t.Errorf("Message() = %q, want %q", errors.Message(err), tt.message)
			}
		})
	}
}

func TestItems(t *testing.T) {
	sh := newShell(t, WithItems(testItems(t)))

	out, err := exec(t, sh, "ls")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("ls printed %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "WI-1 ") || !strings.HasPrefix(lines[1], "  WI-2 ") || !strings.HasPrefix(lines[3], "WI-4 ") {
		t.Errorf("ls tree order wrong:\n%s", out)
	}
	if !strings.Contains(lines[0], "IN PROGRESS") || !strings.HasSuffix(lines[0], "Layout engine") {
		t.Errorf("ls line = %q", lines[0])
	}

	out, err = exec(t, sh, "ls done")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Split(out, "\n"); len(got) != 2 || !strings.HasPrefix(got[0], "WI-2") || !strings.HasPrefix(got[1], "WI-4") {
		t.Errorf("ls done =\n%s", out)
	}
	if out, _ := exec(t, sh, "ls blocked"); out != "no matching work items" {
		t.Errorf("ls blocked = %q", out)
	}

	out, err = exec(t, sh, "view wi-3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Title:    Grid layout") {
		t.Errorf("view output:\n%s", out)
	}
	if _, err := exec(t, sh, "view WI-9"); !errors.Is(err, errors.KindNotFound) {
		t.Errorf("view missing error = %v", err)
	}
	if _, err := exec(t, sh, "view"); !errors.Is(err, errors.KindInvalid) {
		t.Errorf("view without id error = %v", err)
	}
}

func TestShellEscape(t *testing.T) {
	sh := newShell(t)
	root := sh.Dir()
	if err := os.Mkdir(filepath.Join(root, "work"), 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := exec(t, sh, "!echo hi from sh")
	if err != nil || out != "hi from sh\n" {
		t.Fatalf("!echo = %q, %v", out, err)
	}

	if _, err := exec(t, sh, "!cd work && export STAGE=test"); err != nil {
		t.Fatalf("!cd: %v", err)
	}
	if sh.Dir() != filepath.Join(root, "work") {
		t.Errorf("Dir() = %q after !cd", sh.Dir())
	}
	if got, _ := exec(t, sh, "echo $STAGE"); got != "test" {
		t.Errorf("exported variable not kept: %q", got)
	}
	if got, _ := exec(t, sh, "!echo $USER"); got != "dana\n" {
		t.Errorf("environment not passed to sh: %q", got)
	}

	out, err = exec(t, sh, "!echo partial; exit 3")
	if !errors.Is(err, errors.KindCommand) {
		t.Fatalf("exit 3 error = %v", err)
	}
	if out != "partial\n" || !strings.Contains(errors.Message(err), "exit status 3") {
		t.Errorf("out %q, message %q", out, errors.Message(err))
	}

	if _, err := exec(t, sh, "!echo 'unterminated"); !errors.Is(err, errors.KindInvalid) {
		t.Errorf("parse error = %v", err)
	}
}

func TestShellEscapeHonorsContext(t *testing.T) {
	sh := newShell(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := sh.Execute(ctx, "!while true; do :; done")
	if err == nil {
		t.Fatal("expected an error from a cancelled loop")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("loop ran past its deadline")
	}
}

func TestComplete(t *testing.T) {
	sh := newShell(t)
	for _, line := range []string{"echo one", "export A=1", "echo two"} {
		if _, err := exec(t, sh, line); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		input string
		want  []string
	}{
		{"e", []string{"echo", "env", "export", "echo two", "export A=1", "echo one"}},
		{"ec", []string{"echo", "echo two", "echo one"}},
		{"echo ", []string{"echo two", "echo one"}},
		{"his", []string{"history"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := sh.Complete(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("Complete(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	want := []string{"cd", "commands", "date", "echo", "env", "export", "history", "ls", "pwd", "view"}
	if got := r.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %q", got)
	}

	r.Register(Command{Name: "greet", Usage: "greet", Run: func(_ context.Context, _ *Shell, args []string) (string, error) {
		return "hello " + strings.Join(args, ","), nil
	}})
	sh := newShell(t, WithRegistry(r))
	if got, err := exec(t, sh, "greet a b"); err != nil || got != "hello a,b" {
		t.Errorf("greet = %q, %v", got, err)
	}
	out, err := exec(t, sh, "commands")
	if err != nil || !strings.Contains(out, "greet") || !strings.Contains(out, "view <id>") {
		t.Errorf("commands output:\n%s", out)
	}
}
