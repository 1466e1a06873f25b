package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/loom/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove loom log files",
	Long: `Removes the debug log and any demo logs written to /tmp.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	logs := existingLogs()
	if len(logs) == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}

	fmt.Println("This will remove:")
	for _, path := range logs {
		fmt.Printf("  - %s\n", path)
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	// Release the open log file before removing it
	logger.Close()
	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Println()
	fmt.Printf("Removed %d log file(s).\n", logsCleared)
	return nil
}

// existingLogs lists the log files ClearLogs would remove.
func existingLogs() []string {
	var logs []string
	if _, err := os.Stat(logger.DefaultLogPath); err == nil {
		logs = append(logs, logger.DefaultLogPath)
	}
	demoLogs, _ := filepath.Glob(logger.DemoLogPath("*"))
	return append(logs, demoLogs...)
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
