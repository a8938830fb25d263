package cli

import (
	"strings"
	"testing"

	"github.com/valter-silva-au/taskdeck/pkg/models"
)

func TestAddCommand_Registration(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "add" {
			return
		}
	}
	t.Error("expected 'add' command to be registered")
}

func TestAddCommand_NilStore(t *testing.T) {
	orig := Store
	defer func() { Store = orig }()
	Store = nil

	if err := addCmd.RunE(addCmd, []string{"anything"}); err == nil {
		t.Fatal("expected error when Store is nil")
	}
}

func TestAddCommand_CreatesTask(t *testing.T) {
	store := withTestStore(t)
	origPriority := addPriority
	origTags := addTags
	defer func() {
		addPriority = origPriority
		addTags = origTags
	}()
	addPriority = "high"
	addTags = []string{"work"}

	if err := addCmd.RunE(addCmd, []string{"Ship", "the", "release"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tasks := store.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("store has %d tasks, want 1", len(tasks))
	}
	if tasks[0].Title != "Ship the release" {
		t.Errorf("title = %q, want words joined", tasks[0].Title)
	}
	if tasks[0].Priority != models.PriorityHigh {
		t.Errorf("priority = %q, want high", tasks[0].Priority)
	}
	if len(tasks[0].Tags) != 1 || tasks[0].Tags[0] != "work" {
		t.Errorf("tags = %v, want [work]", tasks[0].Tags)
	}
}

func TestAddCommand_ValidationFailure(t *testing.T) {
	store := withTestStore(t)
	origPriority := addPriority
	defer func() { addPriority = origPriority }()
	addPriority = "urgent"

	err := addCmd.RunE(addCmd, []string{"Title"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("unexpected error: %v", err)
	}
	if len(store.Tasks()) != 0 {
		t.Error("invalid request must not create a task")
	}
}
