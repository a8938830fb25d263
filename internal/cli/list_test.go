package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/valter-silva-au/taskdeck/internal/core"
	"github.com/valter-silva-au/taskdeck/pkg/models"
)

func TestListCommand_AppliesViewFlags(t *testing.T) {
	store := withTestStore(t)
	seedTask(t, store, "one")
	setFlag(t, listCmd.Flags(), "filter", "completed")
	setFlag(t, listCmd.Flags(), "sort", "title")
	setFlag(t, listCmd.Flags(), "order", "ascending")

	if err := listCmd.RunE(listCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.Filter() != core.FilterCompleted {
		t.Errorf("filter = %q, want completed", store.Filter())
	}
	if store.SortKey() != core.SortByTitle {
		t.Errorf("sort = %q, want title", store.SortKey())
	}
	if store.SortOrder() != core.SortAscending {
		t.Errorf("order = %q, want ascending", store.SortOrder())
	}
}

func TestListCommand_KeepsViewWithoutFlags(t *testing.T) {
	store := withTestStore(t)
	store.SetFilter(core.FilterActive)

	if err := listCmd.RunE(listCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Filter() != core.FilterActive {
		t.Errorf("filter = %q, flags not passed must not reset the view", store.Filter())
	}
}

func TestRenderTaskLine(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	task := &models.Task{
		ID:       "abcd1234-0000-4000-8000-000000000000",
		Title:    "Overdue thing",
		Priority: models.PriorityHigh,
		DueDate:  &due,
		Tags:     []string{"work", "urgent"},
	}

	line := renderTaskLine(task, now)
	for _, want := range []string{"[ ]", "abcd1234", "Overdue thing", "2026-03-10", "overdue", "#work #urgent"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}

	task.Completed = true
	line = renderTaskLine(task, now)
	if !strings.Contains(line, "[x]") {
		t.Errorf("completed line %q should show [x]", line)
	}
	if strings.Contains(line, "overdue") {
		t.Errorf("completed line %q must not be marked overdue", line)
	}
}

func TestDayBefore(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 30, 0, 0, time.UTC)
	sameDayLater := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)
	if dayBefore(sameDayLater, now) {
		t.Error("same calendar day is not before")
	}
	yesterday := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	if !dayBefore(yesterday, now) {
		t.Error("previous calendar day is before")
	}
}
