package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/zhubert/loom/internal/config"
	"github.com/zhubert/loom/internal/ui"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List built-in themes",
	Long: `Lists the built-in themes with a swatch of their accent colors. The active
theme is marked; change it with loom --theme or theme in ~/.loom/config.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		printThemes(cmd.OutOrStdout(), cfg.GetTheme())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func printThemes(w io.Writer, active ui.ThemeName) {
	for _, name := range ui.ThemeNames() {
		p := ui.BuiltinPalettes[name]
		marker := "  "
		if name == active {
			marker = color.GreenString("* ")
		}
		fmt.Fprintf(w, "%s%-16s %-16s %s\n", marker, name, p.Name, swatch(p))
	}
}

// swatch renders a block per accent color. Colors that fail to parse are
// skipped.
func swatch(p ui.Palette) string {
	var out string
	for _, c := range []ui.Color{p.Primary, p.Secondary, p.Success, p.Warning, p.Error, p.Info} {
		rgb, err := colorful.Hex(string(c))
		if err != nil {
			continue
		}
		r, g, b := rgb.RGB255()
		out += color.RGB(int(r), int(g), int(b)).Sprint("██")
	}
	return out
}
