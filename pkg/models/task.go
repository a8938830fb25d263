package models

import "time"

// Priority represents the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns the ordering weight of a priority: low < medium < high.
// Unknown values rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	default:
		return -1
	}
}

// Task represents a single todo item. The ID is assigned at creation and
// never reused or mutated; Updated is refreshed on every mutation and is
// always >= Created.
type Task struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Completed   bool       `yaml:"completed" json:"completed"`
	Priority    Priority   `yaml:"priority" json:"priority"`
	DueDate     *time.Time `yaml:"due_date,omitempty" json:"due_date,omitempty"`
	Tags        []string   `yaml:"tags" json:"tags"`
	Created     time.Time  `yaml:"created" json:"created"`
	Updated     time.Time  `yaml:"updated" json:"updated"`
}

// Clone returns a deep copy of the task. The store hands out clones so no
// caller ever holds a mutable reference to its internal state.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	return &c
}

// CreateTaskRequest is the payload for creating a task. Title is required;
// all other fields are optional. An empty Priority means "use the default";
// DueDate is a date string ("2006-01-02" or RFC 3339) so that malformed
// input can be rejected by validation rather than being unrepresentable.
type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateTaskRequest carries only the fields to change. Nil pointers (and a
// nil Tags slice) mean "leave unchanged". An empty DueDate string clears
// the due date.
type UpdateTaskRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// PriorityCounts breaks a task count down by priority.
type PriorityCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Statistics are aggregate counts derived from the full task collection.
// They are recomputed on every mutation and never stored. A task is overdue
// when it is not completed and its due date's end of day has passed.
type Statistics struct {
	Total      int            `json:"total"`
	Completed  int            `json:"completed"`
	Pending    int            `json:"pending"`
	Overdue    int            `json:"overdue"`
	ByPriority PriorityCounts `json:"by_priority"`
}
