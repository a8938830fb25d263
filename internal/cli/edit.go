package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/taskdeck/pkg/models"
)

var (
	editTitle       string
	editDescription string
	editPriority    string
	editDue         string
	editTags        []string
	editDone        bool
)

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit fields of an existing task",
	Long: `Edit a task. Only the flags you pass are changed; everything else is
left as is. An invalid value rejects the whole edit - no field is applied.

Pass --due "" to clear the due date.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		id, err := resolveTaskID(args[0])
		if err != nil {
			return err
		}

		req := &models.UpdateTaskRequest{}
		if cmd.Flags().Changed("title") {
			req.Title = &editTitle
		}
		if cmd.Flags().Changed("description") {
			req.Description = &editDescription
		}
		if cmd.Flags().Changed("priority") {
			p := models.Priority(editPriority)
			req.Priority = &p
		}
		if cmd.Flags().Changed("due") {
			req.DueDate = &editDue
		}
		if cmd.Flags().Changed("tags") {
			req.Tags = editTags
		}
		if cmd.Flags().Changed("done") {
			req.Completed = &editDone
		}

		task, result := Store.UpdateTask(id, req)
		if task == nil {
			if result == nil {
				return fmt.Errorf("task %s not found", args[0])
			}
			return printValidationFailure(result)
		}
		printWarnings(result)

		fmt.Printf("Updated task %s: %s\n", shortID(task.ID), task.Title)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority (low, medium, high)")
	editCmd.Flags().StringVar(&editDue, "due", "", "New due date (YYYY-MM-DD); empty clears it")
	editCmd.Flags().StringSliceVarP(&editTags, "tags", "t", nil, "Replacement tag list")
	editCmd.Flags().BoolVar(&editDone, "done", false, "Completion state")
	rootCmd.AddCommand(editCmd)
}
