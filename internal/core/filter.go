package core

import "github.com/valter-silva-au/taskdeck/pkg/models"

// Filter selects which tasks are visible based on completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ApplyFilter returns the subsequence of tasks matching the filter, in the
// input order. FilterActive keeps incomplete tasks, FilterCompleted keeps
// completed ones; FilterAll and any unrecognized value keep everything.
func ApplyFilter(f Filter, tasks []*models.Task) []*models.Task {
	out := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		switch f {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
