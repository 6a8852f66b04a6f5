package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty or whitespace.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrInvalidTaskPriority is returned when a task priority is not one of
	// low, medium, or high.
	ErrInvalidTaskPriority = errors.New("invalid task priority")

	// ErrInvalidTaskStatus is returned when a task status is not one of
	// todo, in-progress, review, or completed.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrInvalidTaskProgress is returned when a task's progress is outside 0-100.
	ErrInvalidTaskProgress = errors.New("task progress must be between 0 and 100")
)

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Valid task priorities.
const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// IsValid reports whether the priority is one of the known values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskStatus represents where a task sits in its workflow.
// Any transition between statuses is permitted; the status→progress
// convention below is a default, not a restriction.
type TaskStatus string

// Valid task statuses.
const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// ProgressForStatus returns the conventional progress percentage for a status.
// It is applied when a status change arrives without an explicit progress value.
func ProgressForStatus(s TaskStatus) int {
	switch s {
	case StatusInProgress:
		return 50
	case StatusReview:
		return 75
	case StatusCompleted:
		return 100
	default:
		return 0
	}
}

// Task is the central entity: a unit of work owned by exactly one user and
// weakly referencing at most one category.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	CategoryID  *uuid.UUID   `json:"category_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Progress    int          `json:"progress"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user with defaults applied:
// priority medium, status todo, progress 0.
// It generates a new UUID for the task ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Priority:  PriorityMedium,
		Status:    StatusTodo,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrTaskTitleEmpty
	}

	if !t.Priority.IsValid() {
		return ErrInvalidTaskPriority
	}

	if !t.Status.IsValid() {
		return ErrInvalidTaskStatus
	}

	if t.Progress < 0 || t.Progress > 100 {
		return ErrInvalidTaskProgress
	}

	return nil
}
