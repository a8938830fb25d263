package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/valter-silva-au/taskdeck/internal/core"
	"github.com/valter-silva-au/taskdeck/pkg/models"
)

var (
	listFilter string
	listSort   string
	listOrder  string
)

// Style definitions for list output.
var (
	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	priorityHighStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	priorityMediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	priorityLowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks (filtered and sorted)",
	Long: `List the visible task view.

--filter selects all, active, or completed tasks; --sort orders by date,
priority, or title; --order sets ascending or descending. Flags change the
store's current view settings, so the dashboard and subsequent lists see
the same view.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		if cmd.Flags().Changed("filter") {
			Store.SetFilter(core.Filter(listFilter))
		}
		if cmd.Flags().Changed("sort") {
			Store.SetSortKey(core.SortKey(listSort))
		}
		if cmd.Flags().Changed("order") {
			Store.SetSortOrder(core.SortOrder(listOrder))
		}

		tasks := Store.VisibleTasks()
		if len(tasks) == 0 {
			fmt.Println("No tasks to show.")
			return nil
		}

		fmt.Println(listHeaderStyle.Render(fmt.Sprintf(
			"Tasks (%s, by %s %s)", Store.Filter(), Store.SortKey(), Store.SortOrder())))
		for _, t := range tasks {
			fmt.Println(renderTaskLine(t, time.Now()))
		}

		st := Store.Statistics()
		fmt.Printf("\n%d total, %d pending, %d completed, %d overdue\n",
			st.Total, st.Pending, st.Completed, st.Overdue)

		if health := Store.PersistenceHealth(); !health.Available || health.HasError {
			fmt.Println(tagStyle.Render("note: persistence is degraded; changes are kept in memory only"))
		}
		return nil
	},
}

// renderTaskLine formats one task for the list view.
func renderTaskLine(t *models.Task, now time.Time) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}

	title := t.Title
	if t.Completed {
		title = doneStyle.Render(title)
	}

	line := fmt.Sprintf("  %s %s  %s  %s", box, shortID(t.ID), renderPriority(t.Priority), title)

	if t.DueDate != nil {
		due := t.DueDate.Format("2006-01-02")
		if !t.Completed && dayBefore(*t.DueDate, now) {
			due = overdueStyle.Render(due + " (overdue)")
		}
		line += "  due " + due
	}
	if len(t.Tags) > 0 {
		line += "  " + tagStyle.Render("#"+strings.Join(t.Tags, " #"))
	}
	return line
}

// dayBefore reports whether d's calendar day is strictly before now's.
func dayBefore(d, now time.Time) bool {
	dy, dm, dd := d.Date()
	ny, nm, nd := now.Date()
	return time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC).
		Before(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC))
}

// renderPriority formats a priority with its color.
func renderPriority(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return priorityHighStyle.Render("high")
	case models.PriorityLow:
		return priorityLowStyle.Render("low ")
	default:
		return priorityMediumStyle.Render("med ")
	}
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Filter (all, active, completed)")
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "", "Sort key (date, priority, title)")
	listCmd.Flags().StringVarP(&listOrder, "order", "o", "", "Sort order (ascending, descending)")
	rootCmd.AddCommand(listCmd)
}
