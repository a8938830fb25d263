package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "taskdeck - local-first todo manager",
	Long: `taskdeck is a local-first todo manager. Tasks live in a single YAML file
under your taskdeck home directory; every change is validated, persisted
best-effort, and reflected immediately in the filtered and sorted view.

Use the subcommands to add, list, edit, complete, and delete tasks, open an
interactive dashboard, or expose the task store to AI assistants over MCP.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskdeck %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
