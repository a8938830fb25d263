package core

import (
	"strings"
	"testing"
	"time"

	"github.com/valter-silva-au/taskdeck/pkg/models"
)

// fixedValidator returns a Validator whose clock is pinned to the given time.
func fixedValidator(now time.Time) *Validator {
	v := NewValidator()
	v.now = func() time.Time { return now }
	return v
}

func TestValidateTitle(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		title    string
		wantCode string
	}{
		{"valid", "Buy milk", ""},
		{"empty", "", models.CodeTitleRequired},
		{"whitespace only", "   \t ", models.CodeTitleRequired},
		{"at limit", strings.Repeat("a", 200), ""},
		{"over limit", strings.Repeat("a", 201), models.CodeTitleMaxLength},
		{"over limit after trim ok", "  " + strings.Repeat("a", 200) + "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateTitle(tt.title)
			if tt.wantCode == "" {
				if !result.Valid {
					t.Fatalf("expected valid, got errors: %v", result.Errors)
				}
				return
			}
			if result.Valid {
				t.Fatalf("expected invalid")
			}
			if !result.HasCode(tt.wantCode) {
				t.Errorf("expected code %s, got %v", tt.wantCode, result.Errors)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	v := NewValidator()

	if result := v.ValidateDescription(""); !result.Valid {
		t.Errorf("empty description should be valid")
	}
	if result := v.ValidateDescription(strings.Repeat("x", 1000)); !result.Valid {
		t.Errorf("description at limit should be valid")
	}
	result := v.ValidateDescription(strings.Repeat("x", 1001))
	if result.Valid || !result.HasCode(models.CodeDescriptionMaxLength) {
		t.Errorf("expected DESCRIPTION_MAX_LENGTH, got %v", result.Errors)
	}
}

func TestValidatePriority(t *testing.T) {
	v := NewValidator()

	for _, p := range []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh} {
		if result := v.ValidatePriority(p); !result.Valid {
			t.Errorf("priority %s should be valid", p)
		}
	}
	result := v.ValidatePriority("urgent")
	if result.Valid || !result.HasCode(models.CodePriorityInvalid) {
		t.Errorf("expected PRIORITY_INVALID, got %v", result.Errors)
	}
	if result.FieldErrors["priority"] == "" {
		t.Errorf("expected a priority field error message")
	}
}

func TestValidateDueDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	v := fixedValidator(now)

	if result := v.ValidateDueDate(""); !result.Valid {
		t.Errorf("absent due date should be valid")
	}
	if result := v.ValidateDueDate("2026-03-15"); !result.Valid {
		t.Errorf("same-day due date should be valid, got %v", result.Errors)
	}
	if result := v.ValidateDueDate("2026-03-16"); !result.Valid {
		t.Errorf("future due date should be valid")
	}

	result := v.ValidateDueDate("2026-03-14")
	if result.Valid || !result.HasCode(models.CodeDueDatePast) {
		t.Errorf("expected DUE_DATE_PAST, got %v", result.Errors)
	}

	result = v.ValidateDueDate("not-a-date")
	if result.Valid || !result.HasCode(models.CodeDueDateInvalid) {
		t.Errorf("expected DUE_DATE_INVALID, got %v", result.Errors)
	}

	// RFC 3339 input is accepted and compared at day granularity, so a
	// late-evening timestamp on today's date is not "past".
	if result := v.ValidateDueDate("2026-03-15T23:59:00Z"); !result.Valid {
		t.Errorf("same-day RFC3339 due date should be valid, got %v", result.Errors)
	}
}

func TestValidateTags(t *testing.T) {
	v := NewValidator()

	if result := v.ValidateTags(nil); !result.Valid {
		t.Errorf("absent tags should be valid")
	}
	if result := v.ValidateTags([]string{"work", "home"}); !result.Valid {
		t.Errorf("distinct tags should be valid")
	}

	result := v.ValidateTags([]string{"Work", "work"})
	if result.Valid || !result.HasCode(models.CodeTagDuplicate) {
		t.Errorf("expected case-insensitive TAG_DUPLICATE, got %v", result.Errors)
	}

	result = v.ValidateTags([]string{"", strings.Repeat("x", 51), "ok"})
	if result.Valid {
		t.Fatalf("expected invalid")
	}
	if !result.HasCode(models.CodeTagEmpty) || !result.HasCode(models.CodeTagMaxLength) {
		t.Errorf("expected all per-tag violations reported, got %v", result.Errors)
	}

	many := make([]string, 11)
	for i := range many {
		many[i] = strings.Repeat("t", i+1)
	}
	result = v.ValidateTags(many)
	if result.Valid || !result.HasCode(models.CodeTagsMaxCount) {
		t.Errorf("expected TAGS_MAX_COUNT, got %v", result.Errors)
	}
}

func TestValidateNewTag(t *testing.T) {
	v := NewValidator()

	if result := v.ValidateNewTag("work", nil); !result.Valid {
		t.Errorf("fresh tag should be valid")
	}

	result := v.ValidateNewTag("work", []string{"Work"})
	if result.Valid || !result.HasCode(models.CodeTagDuplicate) {
		t.Errorf("expected TAG_DUPLICATE against existing list, got %v", result.Errors)
	}

	result = v.ValidateNewTag("", []string{"a"})
	if result.Valid || !result.HasCode(models.CodeTagEmpty) {
		t.Errorf("expected TAG_EMPTY, got %v", result.Errors)
	}

	full := make([]string, 10)
	for i := range full {
		full[i] = strings.Repeat("t", i+1)
	}
	result = v.ValidateNewTag("new", full)
	if result.Valid || !result.HasCode(models.CodeTagsMaxCount) {
		t.Errorf("expected TAGS_MAX_COUNT at capacity, got %v", result.Errors)
	}
}

func TestValidateCreateCollectsAllErrors(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	v := fixedValidator(now)

	req := &models.CreateTaskRequest{
		Title:    "",
		Priority: "urgent",
		DueDate:  "2020-01-01",
		Tags:     []string{"a", "A"},
	}
	result := v.ValidateCreate(req)
	if result.Valid {
		t.Fatalf("expected invalid")
	}
	for _, code := range []string{
		models.CodeTitleRequired,
		models.CodePriorityInvalid,
		models.CodeDueDatePast,
		models.CodeTagDuplicate,
	} {
		if !result.HasCode(code) {
			t.Errorf("expected code %s in %v", code, result.Errors)
		}
	}
	// Primary error follows the title-first field order.
	if result.Error != "Title is required" {
		t.Errorf("expected title error first, got %q", result.Error)
	}
}

func TestValidateCreateStopOnFirstError(t *testing.T) {
	v := NewValidator()

	req := &models.CreateTaskRequest{
		Title:    "",
		Priority: "urgent",
	}
	result := v.ValidateCreate(req, ValidateOptions{StopOnFirstError: true})
	if result.Valid {
		t.Fatalf("expected invalid")
	}
	if len(result.Errors) != 1 || result.Errors[0].Code != models.CodeTitleRequired {
		t.Errorf("expected only the title error, got %v", result.Errors)
	}
}

func TestValidateCreateNilRequest(t *testing.T) {
	v := NewValidator()

	result := v.ValidateCreate(nil)
	if result.Valid || !result.HasCode(models.CodeRequestRequired) {
		t.Errorf("expected REQUEST_REQUIRED, got %v", result.Errors)
	}
}

func TestValidateCreateWarnsHighPriorityNoDueDate(t *testing.T) {
	v := NewValidator()

	result := v.ValidateCreate(&models.CreateTaskRequest{
		Title:    "Ship release",
		Priority: models.PriorityHigh,
	})
	if !result.Valid {
		t.Fatalf("warnings must not make the result invalid: %v", result.Errors)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != models.CodeHighPriorityNoDueDate {
		t.Errorf("expected HIGH_PRIORITY_NO_DUE_DATE warning, got %v", result.Warnings)
	}
}

func TestValidateUpdateChecksOnlySuppliedFields(t *testing.T) {
	v := NewValidator()

	// Nothing supplied: everything is valid.
	if result := v.ValidateUpdate(&models.UpdateTaskRequest{}); !result.Valid {
		t.Errorf("empty update should be valid, got %v", result.Errors)
	}

	empty := ""
	result := v.ValidateUpdate(&models.UpdateTaskRequest{Title: &empty})
	if result.Valid || !result.HasCode(models.CodeTitleRequired) {
		t.Errorf("supplied empty title should fail, got %v", result.Errors)
	}

	// Clearing the due date is always valid.
	if result := v.ValidateUpdate(&models.UpdateTaskRequest{DueDate: &empty}); !result.Valid {
		t.Errorf("clearing due date should be valid, got %v", result.Errors)
	}

	result = v.ValidateUpdate(nil)
	if result.Valid || !result.HasCode(models.CodeRequestRequired) {
		t.Errorf("expected REQUEST_REQUIRED, got %v", result.Errors)
	}
}

func TestUpdateLimits(t *testing.T) {
	v := NewValidator()

	shortTitle := 10
	limits := v.UpdateLimits(LimitOverrides{TitleMaxLength: &shortTitle})
	if limits.TitleMaxLength != 10 {
		t.Fatalf("expected title limit 10, got %d", limits.TitleMaxLength)
	}
	if limits.DescriptionMaxLength != 1000 {
		t.Errorf("unrelated limits must be preserved, got %d", limits.DescriptionMaxLength)
	}

	result := v.ValidateTitle("this title is longer than ten characters")
	if result.Valid || !result.HasCode(models.CodeTitleMaxLength) {
		t.Errorf("expected TITLE_MAX_LENGTH under tightened limit, got %v", result.Errors)
	}
}
