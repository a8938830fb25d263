package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all completed tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		removed := Store.ClearCompleted()
		if removed == 0 {
			fmt.Println("No completed tasks to clear.")
			return nil
		}
		fmt.Printf("Cleared %d completed task(s).\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
