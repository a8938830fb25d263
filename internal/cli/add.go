package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/taskdeck/pkg/models"
)

var (
	addDescription string
	addPriority    string
	addDue         string
	addTags        []string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task with the given title.

The request is validated before anything is stored: the title is required
and length-limited, the priority must be low, medium, or high, the due date
must not be in the past, and tags must be unique (case-insensitively).
On validation failure nothing is created and every problem is reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		req := &models.CreateTaskRequest{
			Title:       strings.Join(args, " "),
			Description: addDescription,
			Priority:    models.Priority(addPriority),
			DueDate:     addDue,
			Tags:        addTags,
		}

		task, result := Store.AddTask(req)
		if task == nil {
			return printValidationFailure(result)
		}
		printWarnings(result)

		fmt.Printf("Added task %s\n", shortID(task.ID))
		fmt.Printf("  Title:    %s\n", task.Title)
		fmt.Printf("  Priority: %s\n", task.Priority)
		if task.DueDate != nil {
			fmt.Printf("  Due:      %s\n", task.DueDate.Format("2006-01-02"))
		}
		if len(task.Tags) > 0 {
			fmt.Printf("  Tags:     %s\n", strings.Join(task.Tags, ", "))
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority (low, medium, high; default medium)")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringSliceVarP(&addTags, "tags", "t", nil, "Tags (comma-separated)")
	rootCmd.AddCommand(addCmd)
}
