package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/loom/internal/app"
	"github.com/zhubert/loom/internal/config"
	"github.com/zhubert/loom/internal/logger"
	"github.com/zhubert/loom/internal/ui"
	"github.com/zhubert/loom/internal/workflow"
	"github.com/zhubert/loom/internal/workitem"
)

var (
	debugMode             bool
	quietMode             bool
	screenName            string
	themeName             string
	dataFile              string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "Terminal workbench for browsing and moving work items",
	Long: `Loom is a terminal UI built from composable components: Miller columns,
a radial dependency graph, a shell console, a workflow state view and an
autocomplete search, laid out with weighted box layouts.

Work items come from a YAML fixture (--data or data_file in ~/.loom/config.yaml)
and fall back to a built-in sample set.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().StringVarP(&screenName, "screen", "s", "dashboard", "Screen shown first")
	rootCmd.Flags().StringVarP(&themeName, "theme", "t", "", "Theme override (see 'loom themes')")
	rootCmd.Flags().StringVarP(&dataFile, "data", "d", "", "Work item YAML file, reloaded when it changes")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("loom %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("loom %s\n", version)
}

// buildOptions turns flags and config into app options.
func buildOptions(cfg *config.Config) ([]app.Option, error) {
	s, err := app.ParseScreen(screenName)
	if err != nil {
		return nil, err
	}
	opts := []app.Option{app.WithScreen(s)}

	if themeName != "" {
		theme := ui.ThemeName(themeName)
		if _, ok := ui.BuiltinPalettes[theme]; !ok {
			return nil, fmt.Errorf("unknown theme %q\nRun 'loom themes' to see available themes", themeName)
		}
		cfg.SetTheme(theme)
	}

	path := dataFile
	if path == "" {
		path = cfg.DataFile
	}
	if path != "" {
		items, err := workitem.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error loading work items: %w", err)
		}
		opts = append(opts, app.WithItems(items), app.WithDataFile(path))
	}

	if cfg.WorkflowDir != "" {
		table, err := workflow.LoadAndMerge(cfg.WorkflowDir)
		if err != nil {
			return nil, fmt.Errorf("error loading workflow: %w", err)
		}
		if errs := workflow.Validate(table); len(errs) > 0 {
			return nil, fmt.Errorf("invalid workflow %s: %v", workflow.Path(cfg.WorkflowDir), errs[0])
		}
		opts = append(opts, app.WithWorkflow(table))
	}
	return opts, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if cfg.IsDebug() && !quietMode {
		logger.SetDebug(true)
	}

	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	// Create and run the app
	m := app.New(cfg, version, opts...)
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
