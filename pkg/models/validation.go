package models

// Severity classifies a validation finding. Errors block the operation;
// warnings are advisory and never make a result invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Validation codes are stable strings so callers can branch on the kind of
// failure without matching human-readable messages.
const (
	CodeRequestRequired      = "REQUEST_REQUIRED"
	CodeTitleRequired        = "TITLE_REQUIRED"
	CodeTitleMaxLength       = "TITLE_MAX_LENGTH"
	CodeDescriptionMaxLength = "DESCRIPTION_MAX_LENGTH"
	CodePriorityInvalid      = "PRIORITY_INVALID"
	CodeDueDateInvalid       = "DUE_DATE_INVALID"
	CodeDueDatePast          = "DUE_DATE_PAST"
	CodeTagsMaxCount         = "TAGS_MAX_COUNT"
	CodeTagEmpty             = "TAG_EMPTY"
	CodeTagMaxLength         = "TAG_MAX_LENGTH"
	CodeTagDuplicate         = "TAG_DUPLICATE"

	CodeHighPriorityNoDueDate = "HIGH_PRIORITY_NO_DUE_DATE"
)

// FieldError is a single blocking validation failure on one field.
type FieldError struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
}

// FieldWarning is a non-blocking validation finding.
type FieldWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationResult is the structured outcome of validating a payload.
// Error holds the first error message for single-line display; FieldErrors
// maps each failing field to its first message for per-field UI rendering;
// Errors carries every finding with its code for programmatic handling.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	Error       string            `json:"error,omitempty"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Errors      []FieldError      `json:"errors,omitempty"`
	Warnings    []FieldWarning    `json:"warnings,omitempty"`
}

// NewValidationResult returns a result that is valid until an error is added.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{Valid: true}
}

// AddError records a blocking failure and marks the result invalid.
// The first error per field wins the FieldErrors slot; the first error
// overall becomes the primary Error message.
func (r *ValidationResult) AddError(field, message, code string) {
	r.Valid = false
	if r.Error == "" {
		r.Error = message
	}
	if r.FieldErrors == nil {
		r.FieldErrors = make(map[string]string)
	}
	if _, seen := r.FieldErrors[field]; !seen {
		r.FieldErrors[field] = message
	}
	r.Errors = append(r.Errors, FieldError{
		Field:    field,
		Message:  message,
		Code:     code,
		Severity: SeverityError,
	})
}

// AddWarning records an advisory finding without affecting validity.
func (r *ValidationResult) AddWarning(field, message, code string) {
	r.Warnings = append(r.Warnings, FieldWarning{Field: field, Message: message, Code: code})
}

// Merge folds all errors and warnings from other into r.
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	for _, e := range other.Errors {
		r.AddError(e.Field, e.Message, e.Code)
	}
	for _, w := range other.Warnings {
		r.AddWarning(w.Field, w.Message, w.Code)
	}
}

// HasCode reports whether any error in the result carries the given code.
func (r *ValidationResult) HasCode(code string) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}
