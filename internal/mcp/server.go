// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the taskdeck store as MCP tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/valter-silva-au/taskdeck/internal/core"
	"github.com/valter-silva-au/taskdeck/internal/observability"
	"github.com/valter-silva-au/taskdeck/pkg/models"
)

// Server wraps the task store and exposes it as MCP tools.
type Server struct {
	server       *gomcp.Server
	store        *core.Store
	activityCalc observability.ActivityCalculator
}

// NewServer creates a new MCP server over the given store. activityCalc may
// be nil if the event log is disabled.
func NewServer(store *core.Store, activityCalc observability.ActivityCalculator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		store:        store,
		activityCalc: activityCalc,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "taskdeck", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type addTaskInput struct {
	Title       string   `json:"title" jsonschema:"required,the task title"`
	Description string   `json:"description,omitempty" jsonschema:"optional longer description"`
	Priority    string   `json:"priority,omitempty" jsonschema:"low, medium, or high (default medium)"`
	DueDate     string   `json:"due_date,omitempty" jsonschema:"due date as YYYY-MM-DD; must not be in the past"`
	Tags        []string `json:"tags,omitempty" jsonschema:"tags, unique case-insensitively, at most 10"`
}

type taskOutput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Completed   bool     `json:"completed"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"due_date,omitempty"`
	Tags        []string `json:"tags"`
	Created     string   `json:"created"`
	Updated     string   `json:"updated"`
}

type getTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the unique task identifier"`
}

type listTasksInput struct {
	Filter string `json:"filter,omitempty" jsonschema:"filter tasks (all, active, completed)"`
	Sort   string `json:"sort,omitempty" jsonschema:"sort key (date, priority, title)"`
	Order  string `json:"order,omitempty" jsonschema:"sort order (ascending, descending)"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type updateTaskInput struct {
	TaskID      string    `json:"task_id" jsonschema:"required,the unique task identifier"`
	Title       *string   `json:"title,omitempty" jsonschema:"new title"`
	Description *string   `json:"description,omitempty" jsonschema:"new description"`
	Completed   *bool     `json:"completed,omitempty" jsonschema:"new completion state"`
	Priority    *string   `json:"priority,omitempty" jsonschema:"new priority (low, medium, high)"`
	DueDate     *string   `json:"due_date,omitempty" jsonschema:"new due date as YYYY-MM-DD; empty string clears it"`
	Tags        []string  `json:"tags,omitempty" jsonschema:"replacement tag list"`
}

type toggleTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the unique task identifier"`
}

type deleteTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the unique task identifier"`
}

type messageOutput struct {
	Message string `json:"message"`
}

type clearCompletedInput struct{}

type clearCompletedOutput struct {
	Removed int `json:"removed"`
}

type getStatisticsInput struct{}

type statisticsOutput struct {
	Total      int            `json:"total"`
	Completed  int            `json:"completed"`
	Pending    int            `json:"pending"`
	Overdue    int            `json:"overdue"`
	ByPriority map[string]int `json:"by_priority"`
}

type getActivityInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for activity (e.g. 7d, 24h). Defaults to 7d."`
}

type activityOutput struct {
	TasksCreated  int            `json:"tasks_created"`
	TasksUpdated  int            `json:"tasks_updated"`
	TasksDone     int            `json:"tasks_done"`
	TasksReopened int            `json:"tasks_reopened"`
	TasksDeleted  int            `json:"tasks_deleted"`
	TasksCleared  int            `json:"tasks_cleared"`
	ByPriority    map[string]int `json:"by_priority"`
	EventCount    int            `json:"event_count"`
	OldestEvent   string         `json:"oldest_event,omitempty"`
	NewestEvent   string         `json:"newest_event,omitempty"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Create a new task. The request is validated (title required, due date not in the past, tags unique); on failure the errors are returned and nothing is created.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_task",
		Description: "Get task details by ID.",
	}, s.handleGetTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks with optional filter (all, active, completed), sort key (date, priority, title), and order.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "update_task",
		Description: "Update fields of a task. Only supplied fields are changed; an invalid value rejects the whole update.",
	}, s.handleUpdateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "toggle_task",
		Description: "Flip a task's completion state.",
	}, s.handleToggleTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task permanently.",
	}, s.handleDeleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "clear_completed",
		Description: "Remove all completed tasks and report how many were removed.",
	}, s.handleClearCompleted)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_statistics",
		Description: "Get aggregate statistics for the full task collection: totals, pending, completed, overdue, and a priority breakdown.",
	}, s.handleGetStatistics)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_activity",
		Description: "Get mutation activity derived from the event log over a time window.",
	}, s.handleGetActivity)
}

// --- Tool handlers ---

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input addTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	req := &models.CreateTaskRequest{
		Title:       input.Title,
		Description: input.Description,
		Priority:    models.Priority(input.Priority),
		DueDate:     input.DueDate,
		Tags:        input.Tags,
	}

	task, result := s.store.AddTask(req)
	if task == nil {
		return errorResult(validationMessage(result)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleGetTask(_ context.Context, _ *gomcp.CallToolRequest, input getTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), taskOutput{}, nil
	}
	task := s.store.GetTask(input.TaskID)
	if task == nil {
		return errorResult(fmt.Sprintf("task %s not found", input.TaskID)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	if input.Filter != "" {
		s.store.SetFilter(core.Filter(input.Filter))
	}
	if input.Sort != "" {
		s.store.SetSortKey(core.SortKey(input.Sort))
	}
	if input.Order != "" {
		s.store.SetSortOrder(core.SortOrder(input.Order))
	}

	tasks := s.store.VisibleTasks()
	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		out.Tasks[i] = taskToOutput(t)
	}
	return nil, out, nil
}

func (s *Server) handleUpdateTask(_ context.Context, _ *gomcp.CallToolRequest, input updateTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), taskOutput{}, nil
	}

	req := &models.UpdateTaskRequest{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		DueDate:     input.DueDate,
		Tags:        input.Tags,
	}
	if input.Priority != nil {
		p := models.Priority(*input.Priority)
		req.Priority = &p
	}

	task, result := s.store.UpdateTask(input.TaskID, req)
	if task == nil {
		if result == nil {
			return errorResult(fmt.Sprintf("task %s not found", input.TaskID)), taskOutput{}, nil
		}
		return errorResult(validationMessage(result)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleToggleTask(_ context.Context, _ *gomcp.CallToolRequest, input toggleTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), taskOutput{}, nil
	}
	task := s.store.ToggleTask(input.TaskID)
	if task == nil {
		return errorResult(fmt.Sprintf("task %s not found", input.TaskID)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleDeleteTask(_ context.Context, _ *gomcp.CallToolRequest, input deleteTaskInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), messageOutput{}, nil
	}
	if !s.store.DeleteTask(input.TaskID) {
		return errorResult(fmt.Sprintf("task %s not found", input.TaskID)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("task %s deleted", input.TaskID)}, nil
}

func (s *Server) handleClearCompleted(_ context.Context, _ *gomcp.CallToolRequest, _ clearCompletedInput) (*gomcp.CallToolResult, clearCompletedOutput, error) {
	removed := s.store.ClearCompleted()
	return nil, clearCompletedOutput{Removed: removed}, nil
}

func (s *Server) handleGetStatistics(_ context.Context, _ *gomcp.CallToolRequest, _ getStatisticsInput) (*gomcp.CallToolResult, statisticsOutput, error) {
	st := s.store.Statistics()
	out := statisticsOutput{
		Total:     st.Total,
		Completed: st.Completed,
		Pending:   st.Pending,
		Overdue:   st.Overdue,
		ByPriority: map[string]int{
			"low":    st.ByPriority.Low,
			"medium": st.ByPriority.Medium,
			"high":   st.ByPriority.High,
		},
	}
	return nil, out, nil
}

func (s *Server) handleGetActivity(_ context.Context, _ *gomcp.CallToolRequest, input getActivityInput) (*gomcp.CallToolResult, activityOutput, error) {
	if s.activityCalc == nil {
		return errorResult("activity not available (event log may be disabled)"), emptyActivityOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}
	sinceTime, err := parseSince(sinceStr)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyActivityOutput(), nil
	}

	activity, err := s.activityCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating activity: %s", err)), emptyActivityOutput(), nil
	}

	out := activityOutput{
		TasksCreated:  activity.TasksCreated,
		TasksUpdated:  activity.TasksUpdated,
		TasksDone:     activity.TasksDone,
		TasksReopened: activity.TasksReopened,
		TasksDeleted:  activity.TasksDeleted,
		TasksCleared:  activity.TasksCleared,
		ByPriority:    activity.ByPriority,
		EventCount:    activity.EventCount,
	}
	if activity.OldestEvent != nil {
		out.OldestEvent = activity.OldestEvent.Format(time.RFC3339)
	}
	if activity.NewestEvent != nil {
		out.NewestEvent = activity.NewestEvent.Format(time.RFC3339)
	}
	return nil, out, nil
}

// --- Helpers ---

func taskToOutput(t *models.Task) taskOutput {
	out := taskOutput{
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
		out.DueDate = t.DueDate.Format("2006-01-02")
	}
	return out
}

// validationMessage flattens a validation result into one line per error.
func validationMessage(result *models.ValidationResult) string {
	lines := make([]string, 0, len(result.Errors)+1)
	lines = append(lines, "validation failed:")
	for _, e := range result.Errors {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code))
	}
	return strings.Join(lines, "\n")
}

func emptyActivityOutput() activityOutput {
	return activityOutput{ByPriority: make(map[string]int)}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// parseSince parses a human-friendly duration string like "7d" or "24h"
// into the corresponding time in the past.
func parseSince(s string) (time.Time, error) {
	now := time.Now().UTC()

	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]
	var num int
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}
