// Package core contains the business logic for taskdeck, including the
// task store, validation engine, view policies, and configuration.
package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/valter-silva-au/taskdeck/pkg/models"
)

// Limits holds the numeric validation constraints. Callers can customize
// strictness through UpdateLimits without forking the validation logic.
type Limits struct {
	TitleMaxLength       int
	DescriptionMaxLength int
	TagMaxLength         int
	TagsMaxCount         int
}

// DefaultLimits returns the standard constraints.
func DefaultLimits() Limits {
	return Limits{
		TitleMaxLength:       200,
		DescriptionMaxLength: 1000,
		TagMaxLength:         50,
		TagsMaxCount:         10,
	}
}

// LimitOverrides is a partial Limits; nil fields keep the current value.
type LimitOverrides struct {
	TitleMaxLength       *int
	DescriptionMaxLength *int
	TagMaxLength         *int
	TagsMaxCount         *int
}

// ValidateOptions tunes request-level validation. With StopOnFirstError set,
// validation short-circuits at the first invalid field in the order:
// title, description, priority, dueDate, tags. By default all fields are
// checked and every error is collected.
type ValidateOptions struct {
	StopOnFirstError bool
}

// validPriorities is the set of allowed Priority values.
var validPriorities = map[models.Priority]bool{
	models.PriorityLow:    true,
	models.PriorityMedium: true,
	models.PriorityHigh:   true,
}

// dueDateFormats are the accepted due date input formats, tried in order.
var dueDateFormats = []string{"2006-01-02", time.RFC3339}

// ParseDueDate parses a due date string in "2006-01-02" or RFC 3339 form.
func ParseDueDate(s string) (time.Time, error) {
	for _, layout := range dueDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing due date %q: not a recognized date", s)
}

// beforeToday reports whether d falls on a day strictly before now's day.
// Both are reduced to their year/month/day components so the comparison is
// stable across time-of-day and DST transitions.
func beforeToday(d, now time.Time) bool {
	dy, dm, dd := d.Date()
	ny, nm, nd := now.Date()
	day := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return day.Before(today)
}

// Validator checks task payloads against the business rules. All methods
// are pure apart from the configurable limits; field-level validators are
// independently callable so a UI layer can reuse them for live feedback.
type Validator struct {
	limits Limits
	now    func() time.Time
}

// NewValidator creates a Validator with the default limits.
func NewValidator() *Validator {
	return &Validator{
		limits: DefaultLimits(),
		now:    time.Now,
	}
}

// Limits returns the current validation constraints.
func (v *Validator) Limits() Limits {
	return v.limits
}

// UpdateLimits applies the non-nil overrides and returns the resulting limits.
func (v *Validator) UpdateLimits(o LimitOverrides) Limits {
	if o.TitleMaxLength != nil {
		v.limits.TitleMaxLength = *o.TitleMaxLength
	}
	if o.DescriptionMaxLength != nil {
		v.limits.DescriptionMaxLength = *o.DescriptionMaxLength
	}
	if o.TagMaxLength != nil {
		v.limits.TagMaxLength = *o.TagMaxLength
	}
	if o.TagsMaxCount != nil {
		v.limits.TagsMaxCount = *o.TagsMaxCount
	}
	return v.limits
}

// ValidateTitle checks that a title is non-empty after trimming and within
// the configured length limit.
func (v *Validator) ValidateTitle(title string) *models.ValidationResult {
	result := models.NewValidationResult()
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		result.AddError("title", "Title is required", models.CodeTitleRequired)
		return result
	}
	if len([]rune(trimmed)) > v.limits.TitleMaxLength {
		result.AddError("title",
			fmt.Sprintf("Title must be at most %d characters", v.limits.TitleMaxLength),
			models.CodeTitleMaxLength)
	}
	return result
}

// ValidateDescription checks an optional description against its length
// limit. An empty description is valid.
func (v *Validator) ValidateDescription(description string) *models.ValidationResult {
	result := models.NewValidationResult()
	if len([]rune(description)) > v.limits.DescriptionMaxLength {
		result.AddError("description",
			fmt.Sprintf("Description must be at most %d characters", v.limits.DescriptionMaxLength),
			models.CodeDescriptionMaxLength)
	}
	return result
}

// ValidatePriority checks that a priority is one of low, medium, high.
// Invalid input is rejected here, never silently coerced.
func (v *Validator) ValidatePriority(priority models.Priority) *models.ValidationResult {
	result := models.NewValidationResult()
	if !validPriorities[priority] {
		result.AddError("priority",
			fmt.Sprintf("Priority %q is invalid, must be one of: low, medium, high", priority),
			models.CodePriorityInvalid)
	}
	return result
}

// ValidateDueDate checks an optional due date string. Empty is valid; a
// value that fails to parse is invalid; a parseable date on a day strictly
// before today is invalid. Today and future dates are valid.
func (v *Validator) ValidateDueDate(dueDate string) *models.ValidationResult {
	result := models.NewValidationResult()
	if dueDate == "" {
		return result
	}
	parsed, err := ParseDueDate(dueDate)
	if err != nil {
		result.AddError("dueDate",
			fmt.Sprintf("Due date %q is not a valid date", dueDate),
			models.CodeDueDateInvalid)
		return result
	}
	if beforeToday(parsed, v.now()) {
		result.AddError("dueDate", "Due date must not be in the past", models.CodeDueDatePast)
	}
	return result
}

// ValidateTags checks an optional tag list: total count, per-tag emptiness
// and length, and case-insensitive duplicates. Every violation is reported,
// not just the first.
func (v *Validator) ValidateTags(tags []string) *models.ValidationResult {
	result := models.NewValidationResult()
	if len(tags) == 0 {
		return result
	}
	if len(tags) > v.limits.TagsMaxCount {
		result.AddError("tags",
			fmt.Sprintf("At most %d tags are allowed", v.limits.TagsMaxCount),
			models.CodeTagsMaxCount)
	}
	seen := make(map[string]bool, len(tags))
	for i, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			result.AddError("tags",
				fmt.Sprintf("Tag %d must not be empty", i+1),
				models.CodeTagEmpty)
			continue
		}
		if len([]rune(trimmed)) > v.limits.TagMaxLength {
			result.AddError("tags",
				fmt.Sprintf("Tag %q must be at most %d characters", trimmed, v.limits.TagMaxLength),
				models.CodeTagMaxLength)
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			result.AddError("tags",
				fmt.Sprintf("Tag %q is a duplicate", trimmed),
				models.CodeTagDuplicate)
			continue
		}
		seen[key] = true
	}
	return result
}

// ValidateNewTag checks a single candidate tag against an existing list,
// for callers that append tags one at a time: emptiness, length, capacity
// of the existing list, and case-insensitive duplication.
func (v *Validator) ValidateNewTag(candidate string, existing []string) *models.ValidationResult {
	result := models.NewValidationResult()
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		result.AddError("tags", "Tag must not be empty", models.CodeTagEmpty)
		return result
	}
	if len([]rune(trimmed)) > v.limits.TagMaxLength {
		result.AddError("tags",
			fmt.Sprintf("Tag %q must be at most %d characters", trimmed, v.limits.TagMaxLength),
			models.CodeTagMaxLength)
	}
	if len(existing) >= v.limits.TagsMaxCount {
		result.AddError("tags",
			fmt.Sprintf("At most %d tags are allowed", v.limits.TagsMaxCount),
			models.CodeTagsMaxCount)
	}
	key := strings.ToLower(trimmed)
	for _, tag := range existing {
		if strings.ToLower(strings.TrimSpace(tag)) == key {
			result.AddError("tags",
				fmt.Sprintf("Tag %q is a duplicate", trimmed),
				models.CodeTagDuplicate)
			break
		}
	}
	return result
}

// ValidateCreate validates a task creation payload. Title is required;
// other fields are validated only when present. Warnings never make the
// result invalid.
func (v *Validator) ValidateCreate(req *models.CreateTaskRequest, opts ...ValidateOptions) *models.ValidationResult {
	result := models.NewValidationResult()
	if req == nil {
		result.AddError("request", "Request is required", models.CodeRequestRequired)
		return result
	}
	stopEarly := len(opts) > 0 && opts[0].StopOnFirstError

	checks := []func() *models.ValidationResult{
		func() *models.ValidationResult { return v.ValidateTitle(req.Title) },
		func() *models.ValidationResult { return v.ValidateDescription(req.Description) },
		func() *models.ValidationResult {
			if req.Priority == "" {
				return models.NewValidationResult()
			}
			return v.ValidatePriority(req.Priority)
		},
		func() *models.ValidationResult { return v.ValidateDueDate(req.DueDate) },
		func() *models.ValidationResult { return v.ValidateTags(req.Tags) },
	}
	for _, check := range checks {
		result.Merge(check())
		if stopEarly && !result.Valid {
			return result
		}
	}

	if req.Priority == models.PriorityHigh && req.DueDate == "" {
		result.AddWarning("dueDate",
			"High priority task has no due date",
			models.CodeHighPriorityNoDueDate)
	}
	return result
}

// ValidateUpdate validates an update payload. Only supplied fields are
// checked; absent fields are treated as valid.
func (v *Validator) ValidateUpdate(req *models.UpdateTaskRequest, opts ...ValidateOptions) *models.ValidationResult {
	result := models.NewValidationResult()
	if req == nil {
		result.AddError("request", "Request is required", models.CodeRequestRequired)
		return result
	}
	stopEarly := len(opts) > 0 && opts[0].StopOnFirstError

	checks := []func() *models.ValidationResult{
		func() *models.ValidationResult {
			if req.Title == nil {
				return models.NewValidationResult()
			}
			return v.ValidateTitle(*req.Title)
		},
		func() *models.ValidationResult {
			if req.Description == nil {
				return models.NewValidationResult()
			}
			return v.ValidateDescription(*req.Description)
		},
		func() *models.ValidationResult {
			if req.Priority == nil {
				return models.NewValidationResult()
			}
			return v.ValidatePriority(*req.Priority)
		},
		func() *models.ValidationResult {
			if req.DueDate == nil {
				return models.NewValidationResult()
			}
			return v.ValidateDueDate(*req.DueDate)
		},
		func() *models.ValidationResult {
			if req.Tags == nil {
				return models.NewValidationResult()
			}
			return v.ValidateTags(req.Tags)
		},
	}
	for _, check := range checks {
		result.Merge(check())
		if stopEarly && !result.Valid {
			return result
		}
	}
	return result
}
