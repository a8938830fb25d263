package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rmForce bool

var rmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task",
	Long: `Delete a task permanently.

Deletion is confirmed interactively unless --force is given. The store
itself never asks; confirmation happens here, before the store is called.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		id, err := resolveTaskID(args[0])
		if err != nil {
			return err
		}
		task := Store.GetTask(id)
		if task == nil {
			return fmt.Errorf("task %s not found", args[0])
		}

		if !rmForce {
			fmt.Printf("Delete task %s %q? [y/N] ", shortID(task.ID), task.Title)
			reader := bufio.NewReader(cmd.InOrStdin())
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if !Store.DeleteTask(id) {
			return fmt.Errorf("task %s not found", args[0])
		}
		fmt.Printf("Deleted task %s\n", shortID(id))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Delete without confirmation")
	rootCmd.AddCommand(rmCmd)
}
