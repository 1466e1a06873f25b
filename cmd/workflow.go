package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/loom/internal/workflow"
)

var workflowDir string

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Manage workflow tables",
	Long:  `Commands for creating, validating and visualizing .loom/workflow.yaml state tables.`,
}

var workflowValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate .loom/workflow.yaml",
	Long:  `Loads and validates the workflow table in the specified directory.`,
	RunE:  runWorkflowValidate,
}

var workflowInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a .loom/workflow.yaml template",
	Long: `Creates a .loom/workflow.yaml file holding the built-in states and
transitions, ready to edit. Point workflow_dir in ~/.loom/config.yaml at the
directory to use it.

Examples:
  loom workflow init                  # Initialize in current directory
  loom workflow init --dir /path/to/project`,
	RunE: runWorkflowInit,
}

var workflowVisualizeCmd = &cobra.Command{
	Use:     "visualize",
	Aliases: []string{"graph"},
	Short:   "Generate mermaid diagram of workflow",
	Long:    `Generates a mermaid stateDiagram-v2 from the workflow table and prints it to stdout.`,
	RunE:    runWorkflowVisualize,
}

func init() {
	workflowCmd.PersistentFlags().StringVar(&workflowDir, "dir", ".", "Directory holding .loom/workflow.yaml")
	workflowCmd.AddCommand(workflowInitCmd)
	workflowCmd.AddCommand(workflowValidateCmd)
	workflowCmd.AddCommand(workflowVisualizeCmd)
	rootCmd.AddCommand(workflowCmd)
}

func runWorkflowInit(cmd *cobra.Command, _ []string) error {
	fp, err := workflow.WriteTemplate(workflowDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", fp)
	return nil
}

func runWorkflowValidate(cmd *cobra.Command, args []string) error {
	table, err := workflow.Load(workflowDir)
	if err != nil {
		return fmt.Errorf("failed to load workflow table: %w", err)
	}

	if table == nil {
		fmt.Fprintln(os.Stderr, "No .loom/workflow.yaml found, using defaults.")
		table = workflow.DefaultTable()
	}

	errs := workflow.Validate(table)
	if len(errs) == 0 {
		printTableSummary(cmd.OutOrStdout(), table)
		return nil
	}

	var sb strings.Builder
	sb.WriteString("Workflow table has errors:\n")
	for _, e := range errs {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", e.Field, e.Message))
	}
	return fmt.Errorf("%s", sb.String())
}

func printTableSummary(w io.Writer, t *workflow.Table) {
	transitions := 0
	for _, targets := range t.Transitions {
		transitions += len(targets)
	}
	fmt.Fprintln(w, "Workflow table is valid.")
	fmt.Fprintf(w, "  Initial: %s\n", t.Initial.Label())
	fmt.Fprintf(w, "  States: %d\n", len(t.States))
	fmt.Fprintf(w, "  Transitions: %d\n", transitions)
	for _, s := range t.States {
		targets := t.Available(s)
		if len(targets) == 0 {
			continue
		}
		labels := make([]string, len(targets))
		for i, to := range targets {
			labels[i] = to.Label()
		}
		fmt.Fprintf(w, "    %-12s -> %s\n", s.Label(), strings.Join(labels, ", "))
	}
}

func runWorkflowVisualize(cmd *cobra.Command, args []string) error {
	table, err := workflow.LoadAndMerge(workflowDir)
	if err != nil {
		return fmt.Errorf("failed to load workflow table: %w", err)
	}

	mermaid := workflow.GenerateMermaid(table)
	fmt.Fprintln(cmd.OutOrStdout(), mermaid)
	return nil
}
