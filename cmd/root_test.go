package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/loom/internal/config"
	"github.com/zhubert/loom/internal/ui"
)

func TestDebugFlagDefaultTrue(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "true" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "true")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--quiet default = %q, want %q", flag.DefValue, "false")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestRootFlags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"screen", "s", "dashboard"},
		{"theme", "t", ""},
		{"data", "d", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("--%s flag not found", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("--%s shorthand = %q, want %q", tt.name, flag.Shorthand, tt.shorthand)
			}
			if flag.DefValue != tt.def {
				t.Errorf("--%s default = %q, want %q", tt.name, flag.DefValue, tt.def)
			}
		})
	}
}

func TestInitConfig_DefaultDebugEnabled(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = false

	// Should not panic
	initConfig()
}

func TestInitConfig_QuietOverridesDebug(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = true

	// Should not panic - quiet should take precedence
	initConfig()
}

func TestVersionTemplate(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer func() { version, commit, date = origVersion, origCommit, origDate }()

	SetVersionInfo("1.2.3", "none", "unknown")
	if got := versionTemplate(); got != "loom 1.2.3\n" {
		t.Errorf("versionTemplate() = %q", got)
	}

	SetVersionInfo("1.2.3", "abc123", "2025-03-14")
	got := versionTemplate()
	if !strings.Contains(got, "commit: abc123") || !strings.Contains(got, "built:  2025-03-14") {
		t.Errorf("versionTemplate() = %q, want commit and build date", got)
	}
}

// withFlags sets the root flags for one test.
func withFlags(t *testing.T, screen, theme, data string) {
	t.Helper()
	origScreen, origTheme, origData := screenName, themeName, dataFile
	t.Cleanup(func() { screenName, themeName, dataFile = origScreen, origTheme, origData })
	screenName, themeName, dataFile = screen, theme, data
}

func TestBuildOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		withFlags(t, "dashboard", "", "")
		opts, err := buildOptions(config.Default())
		if err != nil {
			t.Fatalf("buildOptions() error = %v", err)
		}
		if len(opts) != 1 {
			t.Errorf("got %d options, want only the screen", len(opts))
		}
	})

	t.Run("theme override", func(t *testing.T) {
		withFlags(t, "graph", "nord", "")
		cfg := config.Default()
		if _, err := buildOptions(cfg); err != nil {
			t.Fatalf("buildOptions() error = %v", err)
		}
		if cfg.GetTheme() != ui.ThemeNord {
			t.Errorf("theme = %q, want %q", cfg.GetTheme(), ui.ThemeNord)
		}
	})

	t.Run("data file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "items.yaml")
		data := "items:\n  - id: WI-1\n    title: Only item\n    type: TASK\n    state: READY\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		withFlags(t, "items", "", path)
		opts, err := buildOptions(config.Default())
		if err != nil {
			t.Fatalf("buildOptions() error = %v", err)
		}
		if len(opts) != 3 {
			t.Errorf("got %d options, want screen, items and data file", len(opts))
		}
	})

	errTests := []struct {
		name    string
		screen  string
		theme   string
		data    string
		wantErr string
	}{
		{"unknown screen", "nowhere", "", "", "unknown screen"},
		{"unknown theme", "dashboard", "neon", "", "unknown theme"},
		{"missing data file", "dashboard", "", "/nonexistent/items.yaml", "error loading work items"},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			withFlags(t, tt.screen, tt.theme, tt.data)
			_, err := buildOptions(config.Default())
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuildOptions_Workflow(t *testing.T) {
	withFlags(t, "workflow", "", "")

	t.Run("default table", func(t *testing.T) {
		cfg := config.Default()
		cfg.WorkflowDir = t.TempDir()
		opts, err := buildOptions(cfg)
		if err != nil {
			t.Fatalf("buildOptions() error = %v", err)
		}
		if len(opts) != 2 {
			t.Errorf("got %d options, want screen and workflow", len(opts))
		}
	})

	t.Run("invalid table", func(t *testing.T) {
		dir := t.TempDir()
		writeWorkflow(t, dir, "initial: NOWHERE\nstates: [READY]\n")
		cfg := config.Default()
		cfg.WorkflowDir = dir
		if _, err := buildOptions(cfg); err == nil {
			t.Fatal("expected an error for an invalid workflow")
		}
	})
}
