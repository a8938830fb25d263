package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/taskdeck/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long: `Run a Model Context Protocol server that exposes the task store as
tools (add_task, list_tasks, get_task, update_task, toggle_task,
delete_task, clear_completed, get_statistics, get_activity), so AI
assistants can manage tasks through the same validated operations the CLI
uses.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}
		server := mcp.NewServer(Store, ActivityCalc, appVersion)
		return server.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
