package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/valter-silva-au/taskdeck/internal/core"
	"github.com/valter-silva-au/taskdeck/pkg/models"
)

// Dashboard styles.
var (
	dashTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	savingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
)

// filterCycle and sortCycle define the f/s key rotation order.
var filterCycle = []core.Filter{core.FilterAll, core.FilterActive, core.FilterCompleted}
var sortCycle = []core.SortKey{core.SortByDate, core.SortByPriority, core.SortByTitle}

type dashboardModel struct {
	store *core.Store

	tasks []*models.Task
	stats models.Statistics

	cursor        int
	width         int
	height        int
	confirmDelete bool
	flash         string
}

func newDashboardModel(store *core.Store) dashboardModel {
	m := dashboardModel{store: store}
	m.refresh()
	return m
}

// refresh pulls the current view from the store. Store mutations are
// synchronous, so the snapshot is always consistent.
func (m *dashboardModel) refresh() {
	m.tasks = m.store.VisibleTasks()
	m.stats = m.store.Statistics()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.confirmDelete {
			switch msg.String() {
			case "y":
				if m.cursor < len(m.tasks) {
					m.store.DeleteTask(m.tasks[m.cursor].ID)
					m.flash = "deleted"
				}
			}
			m.confirmDelete = false
			m.refresh()
			return m, nil
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case " ":
			if m.cursor < len(m.tasks) {
				m.store.ToggleTask(m.tasks[m.cursor].ID)
				m.refresh()
			}
		case "d":
			if m.cursor < len(m.tasks) {
				m.confirmDelete = true
			}
		case "f":
			m.store.SetFilter(cycleNext(filterCycle, m.store.Filter()))
			m.refresh()
		case "s":
			m.store.SetSortKey(cycleNext(sortCycle, m.store.SortKey()))
			m.refresh()
		case "o":
			m.store.ToggleSortOrder()
			m.refresh()
		case "c":
			removed := m.store.ClearCompleted()
			m.flash = fmt.Sprintf("cleared %d", removed)
			m.refresh()
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	title := dashTitleStyle.Render(" taskdeck ")
	header := fmt.Sprintf("%s  %s, by %s %s", title, m.store.Filter(), m.store.SortKey(), m.store.SortOrder())
	if m.store.Submitting() {
		header += "  " + savingStyle.Render("saving...")
	}

	body := ""
	if len(m.tasks) == 0 {
		body = "\n  No tasks to show.\n"
	}
	now := time.Now()
	for i, t := range m.tasks {
		prefix := "  "
		line := renderTaskLine(t, now)
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
			line = line[2:]
		}
		body += "\n" + prefix + line
	}

	footer := fmt.Sprintf("\n\n%d total, %d pending, %d completed, %d overdue",
		m.stats.Total, m.stats.Pending, m.stats.Completed, m.stats.Overdue)
	if m.flash != "" {
		footer += "  (" + m.flash + ")"
	}

	help := helpStyle.Render("space: toggle | d: delete | f: filter | s: sort | o: order | c: clear done | q: quit")
	if m.confirmDelete && m.cursor < len(m.tasks) {
		help = confirmStyle.Render(fmt.Sprintf("delete %q? press y to confirm, any other key to cancel", m.tasks[m.cursor].Title))
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s\n", header, body, footer, help)
}

// cycleNext returns the element after current in the cycle, wrapping around.
func cycleNext[T comparable](cycle []T, current T) T {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive task dashboard",
	Long: `Open an interactive terminal dashboard over the task store.

Navigate with arrow keys or j/k, toggle completion with space, delete with
d (confirmed with y), cycle filter and sort with f/s/o, and clear completed
tasks with c.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}
		p := tea.NewProgram(newDashboardModel(Store), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
