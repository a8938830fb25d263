package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/valter-silva-au/taskdeck/pkg/models"
)

// shortID returns the leading segment of a task ID for compact display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveTaskID finds the single task whose ID starts with the given prefix.
// Full IDs always match themselves.
func resolveTaskID(prefix string) (string, error) {
	if Store == nil {
		return "", fmt.Errorf("task store not initialized")
	}
	if t := Store.GetTask(prefix); t != nil {
		return t.ID, nil
	}

	var matches []string
	for _, t := range Store.Tasks() {
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous: matches %d tasks", prefix, len(matches))
	}
}

// printValidationFailure prints per-field errors and returns a summary error.
func printValidationFailure(result *models.ValidationResult) error {
	for _, e := range result.Errors {
		fmt.Printf("  %s: %s (%s)\n", e.Field, e.Message, e.Code)
	}
	return fmt.Errorf("validation failed: %s", result.Error)
}

// printWarnings prints validation warnings, if any.
func printWarnings(result *models.ValidationResult) {
	if result == nil {
		return
	}
	for _, w := range result.Warnings {
		fmt.Printf("  warning: %s\n", w.Message)
	}
}

// parseSince parses a duration shorthand such as "7d", "24h", or "90m" into
// the corresponding start time.
func parseSince(s string) (time.Time, error) {
	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}
	unit := s[len(s)-1]
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}
	var d time.Duration
	switch unit {
	case 'd':
		d = time.Duration(n) * 24 * time.Hour
	case 'h':
		d = time.Duration(n) * time.Hour
	case 'm':
		d = time.Duration(n) * time.Minute
	default:
		return time.Time{}, fmt.Errorf("invalid duration unit in %q (use d, h, or m)", s)
	}
	return time.Now().Add(-d), nil
}
