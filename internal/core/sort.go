package core

import (
	"sort"
	"strings"

	"github.com/valter-silva-au/taskdeck/pkg/models"
)

// SortKey selects the comparator used to order the visible task list.
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByPriority SortKey = "priority"
	SortByTitle    SortKey = "title"
)

// SortOrder is the direction of the sort.
type SortOrder string

const (
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// ApplySort returns a new slice ordered by the given key and direction.
// The input is never mutated. The sort is stable, so tasks with equal keys
// keep their relative input order. An unrecognized key falls back to the
// date comparator.
func ApplySort(key SortKey, order SortOrder, tasks []*models.Task) []*models.Task {
	out := append([]*models.Task(nil), tasks...)
	cmp := comparatorFor(key)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if order == SortDescending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// comparatorFor returns a three-way comparator for the sort key.
func comparatorFor(key SortKey) func(a, b *models.Task) int {
	switch key {
	case SortByPriority:
		return func(a, b *models.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		}
	case SortByTitle:
		return func(a, b *models.Task) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	default:
		return func(a, b *models.Task) int {
			switch {
			case a.Created.Before(b.Created):
				return -1
			case a.Created.After(b.Created):
				return 1
			default:
				return 0
			}
		}
	}
}
