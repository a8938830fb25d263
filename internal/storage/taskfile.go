// Package storage persists the task collection to local files. All failures
// stay inside this package: loading degrades to an empty collection and
// saving reports success as a boolean, so callers never handle storage
// errors directly and can branch on Health instead.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/valter-silva-au/taskdeck/pkg/models"
)

// taskRecord is the on-disk form of a task. Timestamps are serialized as
// RFC 3339 strings with nanosecond precision so dates round-trip exactly.
type taskRecord struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Completed   bool     `yaml:"completed"`
	Priority    string   `yaml:"priority"`
	DueDate     string   `yaml:"due_date,omitempty"`
	Tags        []string `yaml:"tags"`
	Created     string   `yaml:"created"`
	Updated     string   `yaml:"updated"`
}

// taskFile is the top-level structure of the tasks file.
type taskFile struct {
	Version string       `yaml:"version"`
	Tasks   []taskRecord `yaml:"tasks"`
}

// Health reports whether the backing file is usable and whether the most
// recent load or save failed.
type Health struct {
	Available bool
	HasError  bool
}

// FileStore persists tasks as a single YAML file.
type FileStore struct {
	path     string
	hasError bool
}

// NewFileStore creates a FileStore backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the previously saved collection. A missing file yields an
// empty collection; unreadable or corrupt data also yields an empty
// collection and flips the error flag. Load never fails.
func (f *FileStore) Load() []*models.Task {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.hasError = true
		}
		return []*models.Task{}
	}

	var tf taskFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		f.hasError = true
		return []*models.Task{}
	}

	tasks := make([]*models.Task, 0, len(tf.Tasks))
	for _, rec := range tf.Tasks {
		task, err := rec.toTask()
		if err != nil {
			// Drop records that no longer parse rather than failing the load.
			f.hasError = true
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// Save writes the collection, best effort. It reports whether the write
// succeeded; failures are remembered in Health but never returned.
func (f *FileStore) Save(tasks []*models.Task) bool {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o750); err != nil {
		f.hasError = true
		return false
	}

	tf := taskFile{Version: "1.0", Tasks: make([]taskRecord, 0, len(tasks))}
	for _, t := range tasks {
		tf.Tasks = append(tf.Tasks, toRecord(t))
	}

	data, err := yaml.Marshal(&tf)
	if err != nil {
		f.hasError = true
		return false
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		f.hasError = true
		return false
	}
	f.hasError = false
	return true
}

// IsAvailable probes whether the backing directory is writable.
func (f *FileStore) IsAvailable() bool {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false
	}
	probe := filepath.Join(dir, ".taskdeck_probe")
	if err := os.WriteFile(probe, nil, 0o600); err != nil {
		return false
	}
	_ = os.Remove(probe)
	return true
}

// Health reports availability and whether the last operation failed.
func (f *FileStore) Health() Health {
	return Health{Available: f.IsAvailable(), HasError: f.hasError}
}

// validPriorities is the set of priority values accepted on load.
var validPriorities = map[models.Priority]bool{
	models.PriorityLow:    true,
	models.PriorityMedium: true,
	models.PriorityHigh:   true,
}

// toRecord converts a task to its serialized form.
func toRecord(t *models.Task) taskRecord {
	rec := taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		Tags:        t.Tags,
		Created:     t.Created.Format(time.RFC3339Nano),
		Updated:     t.Updated.Format(time.RFC3339Nano),
	}
	if t.DueDate != nil {
		rec.DueDate = t.DueDate.Format(time.RFC3339Nano)
	}
	return rec
}

// toTask reconstructs a task, with date fields parsed back into true time
// values. Records that fail any of these checks are treated as corrupt.
func (rec taskRecord) toTask() (*models.Task, error) {
	if rec.ID == "" {
		return nil, fmt.Errorf("task record has no id")
	}
	if rec.Title == "" {
		return nil, fmt.Errorf("task record %s has no title", rec.ID)
	}
	if !validPriorities[models.Priority(rec.Priority)] {
		return nil, fmt.Errorf("task record %s has invalid priority %q", rec.ID, rec.Priority)
	}

	created, err := time.Parse(time.RFC3339Nano, rec.Created)
	if err != nil {
		return nil, fmt.Errorf("task record %s: parsing created: %w", rec.ID, err)
	}
	updated, err := time.Parse(time.RFC3339Nano, rec.Updated)
	if err != nil {
		return nil, fmt.Errorf("task record %s: parsing updated: %w", rec.ID, err)
	}

	task := &models.Task{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Completed:   rec.Completed,
		Priority:    models.Priority(rec.Priority),
		Tags:        rec.Tags,
		Created:     created,
		Updated:     updated,
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if rec.DueDate != "" {
		due, err := time.Parse(time.RFC3339Nano, rec.DueDate)
		if err != nil {
			return nil, fmt.Errorf("task record %s: parsing due date: %w", rec.ID, err)
		}
		task.DueDate = &due
	}
	return task, nil
}
