package observability

import (
	"path/filepath"
	"testing"
	"time"
)

func TestActivityCalculatorAggregates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("NewJSONLEventLog: %v", err)
	}
	defer func() { _ = log.Close() }()

	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	writes := []Event{
		{Time: base, Type: "task.created", Data: map[string]any{"id": "a", "priority": "high"}},
		{Time: base.Add(1 * time.Minute), Type: "task.created", Data: map[string]any{"id": "b", "priority": "medium"}},
		{Time: base.Add(2 * time.Minute), Type: "task.updated", Data: map[string]any{"id": "a"}},
		{Time: base.Add(3 * time.Minute), Type: "task.toggled", Data: map[string]any{"id": "a", "completed": true}},
		{Time: base.Add(4 * time.Minute), Type: "task.toggled", Data: map[string]any{"id": "a", "completed": false}},
		{Time: base.Add(5 * time.Minute), Type: "task.deleted", Data: map[string]any{"id": "b"}},
		{Time: base.Add(6 * time.Minute), Type: "tasks.cleared", Data: map[string]any{"removed": 3}},
	}
	for _, e := range writes {
		if err := log.Write(e); err != nil {
			t.Fatalf("Write(%s): %v", e.Type, err)
		}
	}

	activity, err := NewActivityCalculator(log).Calculate(base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if activity.EventCount != 7 {
		t.Errorf("EventCount = %d, want 7", activity.EventCount)
	}
	if activity.TasksCreated != 2 {
		t.Errorf("TasksCreated = %d, want 2", activity.TasksCreated)
	}
	if activity.TasksUpdated != 1 {
		t.Errorf("TasksUpdated = %d, want 1", activity.TasksUpdated)
	}
	if activity.TasksDone != 1 || activity.TasksReopened != 1 {
		t.Errorf("toggles = done %d / reopened %d, want 1 / 1", activity.TasksDone, activity.TasksReopened)
	}
	if activity.TasksDeleted != 1 {
		t.Errorf("TasksDeleted = %d, want 1", activity.TasksDeleted)
	}
	if activity.TasksCleared != 3 {
		t.Errorf("TasksCleared = %d, want 3", activity.TasksCleared)
	}
	if activity.ByPriority["high"] != 1 || activity.ByPriority["medium"] != 1 {
		t.Errorf("ByPriority = %v", activity.ByPriority)
	}
	if activity.OldestEvent == nil || !activity.OldestEvent.Equal(base) {
		t.Errorf("OldestEvent = %v, want %v", activity.OldestEvent, base)
	}
	if activity.NewestEvent == nil || !activity.NewestEvent.Equal(base.Add(6*time.Minute)) {
		t.Errorf("NewestEvent = %v, want %v", activity.NewestEvent, base.Add(6*time.Minute))
	}
}

func TestActivityCalculatorWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("NewJSONLEventLog: %v", err)
	}
	defer func() { _ = log.Close() }()

	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		e := Event{Time: base.Add(time.Duration(i) * time.Hour), Type: "task.created"}
		if err := log.Write(e); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	activity, err := NewActivityCalculator(log).Calculate(base.Add(90 * time.Minute))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if activity.TasksCreated != 2 {
		t.Errorf("TasksCreated within window = %d, want 2", activity.TasksCreated)
	}
	if activity.EventCount != 2 {
		t.Errorf("EventCount within window = %d, want 2", activity.EventCount)
	}
}

func TestActivityCalculatorEmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("NewJSONLEventLog: %v", err)
	}
	defer func() { _ = log.Close() }()

	activity, err := NewActivityCalculator(log).Calculate(time.Time{})
	if err != nil {
		t.Fatalf("Calculate on empty log: %v", err)
	}
	if activity.EventCount != 0 {
		t.Errorf("EventCount = %d, want 0", activity.EventCount)
	}
	if activity.OldestEvent != nil || activity.NewestEvent != nil {
		t.Errorf("empty log should have no oldest/newest: %v / %v", activity.OldestEvent, activity.NewestEvent)
	}
}
