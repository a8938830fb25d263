package core

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/valter-silva-au/taskdeck/pkg/models"
)

// PersistenceHealth reports whether the backing store is usable and whether
// its most recent operation failed.
type PersistenceHealth struct {
	Available bool
	HasError  bool
}

// TaskPersister is the subset of the storage layer the store needs.
// Defining it here keeps core independent of the storage package. Load
// degrades to an empty collection and Save reports success as a boolean;
// neither may fail in a way the store has to handle.
type TaskPersister interface {
	Load() []*models.Task
	Save(tasks []*models.Task) bool
	Health() PersistenceHealth
}

// EventLogger is the subset of the observability event log that the store
// needs. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// Store owns the authoritative in-memory task collection. Every mutation
// validates first, commits atomically, persists best-effort, and recomputes
// the cached visible list and statistics before returning, so observers
// never see a staleness window. The store remains fully functional even if
// persistence is permanently unavailable.
type Store struct {
	validator *Validator
	persister TaskPersister
	events    EventLogger

	now   func() time.Time
	newID func() string

	tasks     []*models.Task
	filter    Filter
	sortKey   SortKey
	sortOrder SortOrder

	visible []*models.Task
	stats   models.Statistics

	submitting  bool
	subscribers map[int]func()
	nextSubID   int
}

// NewStore creates a store with all dependencies injected. persister and
// events may be nil; a nil validator gets the default limits. The initial
// collection is whatever the persister can load.
func NewStore(validator *Validator, persister TaskPersister, events EventLogger) *Store {
	if validator == nil {
		validator = NewValidator()
	}
	s := &Store{
		validator:   validator,
		persister:   persister,
		events:      events,
		now:         time.Now,
		newID:       uuid.NewString,
		filter:      FilterAll,
		sortKey:     SortByDate,
		sortOrder:   SortDescending,
		subscribers: make(map[int]func()),
	}
	if persister != nil {
		s.tasks = persister.Load()
	}
	s.recompute()
	return s
}

// Validator returns the validation engine, so UI layers can run the same
// field-level checks for live feedback.
func (s *Store) Validator() *Validator {
	return s.validator
}

// AddTask validates the request and, on success, appends a new task with a
// fresh ID, Created == Updated == now, and defaults applied (priority
// medium, empty tag list). On failure the collection is unchanged and the
// invalid result is returned with a nil task.
func (s *Store) AddTask(req *models.CreateTaskRequest) (*models.Task, *models.ValidationResult) {
	s.submitting = true
	defer func() { s.submitting = false }()

	result := s.validator.ValidateCreate(req)
	if !result.Valid {
		return nil, result
	}

	now := s.now().UTC()
	task := &models.Task{
		ID:          s.newID(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Priority:    req.Priority,
		Tags:        trimTags(req.Tags),
		Created:     now,
		Updated:     now,
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if req.DueDate != "" {
		due, err := ParseDueDate(req.DueDate)
		if err != nil {
			// Validation already accepted the value; treat a parse failure
			// here as invalid input rather than committing a half-built task.
			result.AddError("dueDate", "Due date is not a valid date", models.CodeDueDateInvalid)
			return nil, result
		}
		task.DueDate = &due
	}

	s.tasks = append(s.tasks, task)
	s.commit("task.created", map[string]any{
		"id":       task.ID,
		"priority": string(task.Priority),
	})
	return task.Clone(), result
}

// UpdateTask validates the supplied fields and merges them into the task.
// An invalid request is rejected atomically: no field is applied. Returns
// (nil, nil) if no task with the ID exists, and (nil, result) when
// validation fails.
func (s *Store) UpdateTask(id string, req *models.UpdateTaskRequest) (*models.Task, *models.ValidationResult) {
	s.submitting = true
	defer func() { s.submitting = false }()

	task := s.find(id)
	if task == nil {
		return nil, nil
	}

	result := s.validator.ValidateUpdate(req)
	if !result.Valid {
		return nil, result
	}

	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			due, err := ParseDueDate(*req.DueDate)
			if err != nil {
				result.AddError("dueDate", "Due date is not a valid date", models.CodeDueDateInvalid)
				return nil, result
			}
			task.DueDate = &due
		}
	}
	if req.Tags != nil {
		task.Tags = trimTags(req.Tags)
	}
	s.touch(task)
	s.commit("task.updated", map[string]any{"id": task.ID})
	return task.Clone(), result
}

// ToggleTask flips the completed flag. Returns nil if the task is not found.
func (s *Store) ToggleTask(id string) *models.Task {
	task := s.find(id)
	if task == nil {
		return nil
	}
	task.Completed = !task.Completed
	s.touch(task)
	s.commit("task.toggled", map[string]any{
		"id":        task.ID,
		"completed": task.Completed,
	})
	return task.Clone()
}

// DeleteTask removes the task and reports whether one was actually removed.
// The store performs no confirmation; gating destructive operations is the
// caller's concern.
func (s *Store) DeleteTask(id string) bool {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.commit("task.deleted", map[string]any{"id": id})
			return true
		}
	}
	return false
}

// GetTask returns a copy of the task, or nil if not found.
func (s *Store) GetTask(id string) *models.Task {
	return s.find(id).Clone()
}

// ClearCompleted removes all completed tasks and returns how many were removed.
func (s *Store) ClearCompleted() int {
	kept := s.tasks[:0:0]
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0
	}
	s.tasks = kept
	s.commit("tasks.cleared", map[string]any{"removed": removed})
	return removed
}

// Tasks returns copies of the full collection in insertion order.
func (s *Store) Tasks() []*models.Task {
	return cloneAll(s.tasks)
}

// VisibleTasks returns copies of the filtered-then-sorted view.
func (s *Store) VisibleTasks() []*models.Task {
	return cloneAll(s.visible)
}

// Statistics returns the aggregate counts for the full collection, not the
// filtered view.
func (s *Store) Statistics() models.Statistics {
	return s.stats
}

// Filter returns the current display filter.
func (s *Store) Filter() Filter {
	return s.filter
}

// SetFilter changes the display filter and rederives the visible list.
func (s *Store) SetFilter(f Filter) {
	s.filter = f
	s.recompute()
	s.notify()
}

// SortKey returns the current sort key.
func (s *Store) SortKey() SortKey {
	return s.sortKey
}

// SetSortKey changes the sort key and rederives the visible list.
func (s *Store) SetSortKey(key SortKey) {
	s.sortKey = key
	s.recompute()
	s.notify()
}

// SortOrder returns the current sort direction.
func (s *Store) SortOrder() SortOrder {
	return s.sortOrder
}

// SetSortOrder changes the sort direction and rederives the visible list.
func (s *Store) SetSortOrder(order SortOrder) {
	s.sortOrder = order
	s.recompute()
	s.notify()
}

// ToggleSortOrder flips between ascending and descending.
func (s *Store) ToggleSortOrder() {
	if s.sortOrder == SortAscending {
		s.SetSortOrder(SortDescending)
	} else {
		s.SetSortOrder(SortAscending)
	}
}

// Submitting reports whether a mutation is currently in flight. It exists
// purely for UI feedback.
func (s *Store) Submitting() bool {
	return s.submitting
}

// PersistenceHealth reports the health of the backing store. Without a
// persister the store is memory-only and reports unavailable.
func (s *Store) PersistenceHealth() PersistenceHealth {
	if s.persister == nil {
		return PersistenceHealth{}
	}
	return s.persister.Health()
}

// Subscribe registers a callback invoked synchronously whenever the
// collection or a view setting changes. The returned function unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		delete(s.subscribers, id)
	}
}

// find returns the stored task with the given ID, or nil.
func (s *Store) find(id string) *models.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// touch refreshes Updated, guaranteeing it strictly increases even when the
// clock has coarse resolution.
func (s *Store) touch(t *models.Task) {
	u := s.now().UTC()
	if !u.After(t.Updated) {
		u = t.Updated.Add(time.Nanosecond)
	}
	t.Updated = u
}

// commit persists the collection, records the mutation event, and updates
// all derived state within the same synchronous call.
func (s *Store) commit(eventType string, data map[string]any) {
	if s.persister != nil {
		s.persister.Save(s.tasks)
	}
	if s.events != nil {
		_ = s.events.LogEvent(eventType, data)
	}
	s.recompute()
	s.notify()
}

// recompute rederives the cached visible list and statistics.
func (s *Store) recompute() {
	s.visible = ApplySort(s.sortKey, s.sortOrder, ApplyFilter(s.filter, s.tasks))
	s.stats = computeStatistics(s.tasks, s.now())
}

// notify invokes all subscribers synchronously.
func (s *Store) notify() {
	for _, fn := range s.subscribers {
		fn()
	}
}

// computeStatistics aggregates counts over the full collection.
func computeStatistics(tasks []*models.Task, now time.Time) models.Statistics {
	var st models.Statistics
	for _, t := range tasks {
		st.Total++
		if t.Completed {
			st.Completed++
		} else {
			st.Pending++
			if t.DueDate != nil && beforeToday(*t.DueDate, now) {
				st.Overdue++
			}
		}
		switch t.Priority {
		case models.PriorityLow:
			st.ByPriority.Low++
		case models.PriorityMedium:
			st.ByPriority.Medium++
		case models.PriorityHigh:
			st.ByPriority.High++
		}
	}
	return st
}

// trimTags returns a trimmed copy of tags; a nil input becomes an empty list.
func trimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, strings.TrimSpace(tag))
	}
	return out
}

// cloneAll deep-copies a slice of tasks.
func cloneAll(tasks []*models.Task) []*models.Task {
	out := make([]*models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
