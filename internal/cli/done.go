package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Toggle a task's completion state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		id, err := resolveTaskID(args[0])
		if err != nil {
			return err
		}

		task := Store.ToggleTask(id)
		if task == nil {
			return fmt.Errorf("task %s not found", args[0])
		}

		state := "reopened"
		if task.Completed {
			state = "completed"
		}
		fmt.Printf("Task %s %s: %s\n", shortID(task.ID), state, task.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
