package observability

import (
	"fmt"
	"time"
)

// Activity holds counts derived from the event log over a time window.
type Activity struct {
	TasksCreated  int            `json:"tasks_created"`
	TasksUpdated  int            `json:"tasks_updated"`
	TasksDone     int            `json:"tasks_done"`
	TasksReopened int            `json:"tasks_reopened"`
	TasksDeleted  int            `json:"tasks_deleted"`
	TasksCleared  int            `json:"tasks_cleared"`
	ByPriority    map[string]int `json:"by_priority"`
	EventCount    int            `json:"event_count"`
	OldestEvent   *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent   *time.Time     `json:"newest_event,omitempty"`
}

// ActivityCalculator derives activity metrics from the event log.
type ActivityCalculator interface {
	Calculate(since time.Time) (*Activity, error)
}

// activityCalculator implements ActivityCalculator by reading an EventLog.
type activityCalculator struct {
	eventLog EventLog
}

// NewActivityCalculator creates an ActivityCalculator reading from the given EventLog.
func NewActivityCalculator(eventLog EventLog) ActivityCalculator {
	return &activityCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
func (ac *activityCalculator) Calculate(since time.Time) (*Activity, error) {
	events, err := ac.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for activity: %w", err)
	}

	a := &Activity{ByPriority: make(map[string]int)}
	a.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			a.OldestEvent = &t
		}
		t := event.Time
		a.NewestEvent = &t

		switch event.Type {
		case "task.created":
			a.TasksCreated++
			if priority, ok := event.Data["priority"].(string); ok {
				a.ByPriority[priority]++
			}
		case "task.updated":
			a.TasksUpdated++
		case "task.toggled":
			if completed, ok := event.Data["completed"].(bool); ok && completed {
				a.TasksDone++
			} else {
				a.TasksReopened++
			}
		case "task.deleted":
			a.TasksDeleted++
		case "tasks.cleared":
			// JSON numbers decode as float64.
			if removed, ok := event.Data["removed"].(float64); ok {
				a.TasksCleared += int(removed)
			}
		}
	}

	return a, nil
}
