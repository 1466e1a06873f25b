package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zhubert/loom/internal/demo/scenarios"
)

func TestListScenarios(t *testing.T) {
	var buf bytes.Buffer
	listScenarios(&buf)

	out := buf.String()
	for _, s := range scenarios.All() {
		if !strings.Contains(out, s.Name) {
			t.Errorf("listing should contain scenario %q, got: %s", s.Name, out)
		}
		if !strings.Contains(out, s.Description) {
			t.Errorf("listing should contain description %q", s.Description)
		}
	}
}

func TestGetScenario(t *testing.T) {
	origWidth, origHeight := demoWidth, demoHeight
	defer func() { demoWidth, demoHeight = origWidth, origHeight }()

	t.Run("unknown", func(t *testing.T) {
		_, err := getScenario("nope")
		if err == nil {
			t.Fatal("expected an error for an unknown scenario")
		}
		if !strings.Contains(err.Error(), "loom demo list") {
			t.Errorf("error should point at 'loom demo list': %v", err)
		}
	})

	t.Run("overrides apply to a copy", func(t *testing.T) {
		demoWidth, demoHeight = 100, 30
		s, err := getScenario("workflow")
		if err != nil {
			t.Fatalf("getScenario() error = %v", err)
		}
		if s.Width != 100 || s.Height != 30 {
			t.Errorf("size = %dx%d, want 100x30", s.Width, s.Height)
		}
		if builtin := scenarios.Get("workflow"); builtin.Width != 120 || builtin.Height != 40 {
			t.Errorf("built-in scenario changed to %dx%d", builtin.Width, builtin.Height)
		}
	})
}

func TestDemoSubcommands(t *testing.T) {
	want := map[string]bool{"list": false, "run": false, "cast": false, "pick": false}
	for _, c := range demoCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("demo subcommand %q not registered", name)
		}
	}
}
