package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsSince string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	Long: `Show aggregate statistics for the full task collection: totals,
completed and pending counts, overdue tasks, and a priority breakdown.

With --activity, also show mutation counts derived from the event log over
the given window (e.g. --since 7d).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		st := Store.Statistics()
		fmt.Println(listHeaderStyle.Render("Statistics"))
		fmt.Printf("  Total:     %d\n", st.Total)
		fmt.Printf("  Pending:   %d\n", st.Pending)
		fmt.Printf("  Completed: %d\n", st.Completed)
		fmt.Printf("  Overdue:   %d\n", st.Overdue)
		fmt.Printf("  Priority:  %s %d  %s %d  %s %d\n",
			priorityHighStyle.Render("high"), st.ByPriority.High,
			priorityMediumStyle.Render("medium"), st.ByPriority.Medium,
			priorityLowStyle.Render("low"), st.ByPriority.Low)

		showActivity, _ := cmd.Flags().GetBool("activity")
		if !showActivity {
			return nil
		}
		if ActivityCalc == nil {
			return fmt.Errorf("activity metrics not available (event log may be disabled)")
		}

		since, err := parseSince(statsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}
		activity, err := ActivityCalc.Calculate(since)
		if err != nil {
			return fmt.Errorf("calculating activity: %w", err)
		}

		fmt.Println()
		fmt.Println(listHeaderStyle.Render(fmt.Sprintf("Activity (last %s)", statsSince)))
		fmt.Printf("  Created:  %d\n", activity.TasksCreated)
		fmt.Printf("  Updated:  %d\n", activity.TasksUpdated)
		fmt.Printf("  Done:     %d\n", activity.TasksDone)
		fmt.Printf("  Reopened: %d\n", activity.TasksReopened)
		fmt.Printf("  Deleted:  %d\n", activity.TasksDeleted)
		fmt.Printf("  Cleared:  %d\n", activity.TasksCleared)
		fmt.Printf("  Events:   %d\n", activity.EventCount)
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("activity", false, "Include event log activity")
	statsCmd.Flags().StringVar(&statsSince, "since", "7d", "Activity window (e.g. 7d, 24h)")
	rootCmd.AddCommand(statsCmd)
}
