package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	userID := uuid.New()

	task, err := NewTask(userID, "Write report")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, task.UserID)
	}

	if task.Title != "Write report" {
		t.Errorf("Expected title %q, got %q", "Write report", task.Title)
	}

	if task.Priority != PriorityMedium {
		t.Errorf("Expected default priority %q, got %q", PriorityMedium, task.Priority)
	}

	if task.Status != StatusTodo {
		t.Errorf("Expected default status %q, got %q", StatusTodo, task.Status)
	}

	if task.Progress != 0 {
		t.Errorf("Expected default progress 0, got %d", task.Progress)
	}

	if task.CategoryID != nil {
		t.Error("Expected nil category ID on a new task")
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Test missing title
	_, err = NewTask(userID, "")
	if err != ErrTaskTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}

	// Test missing owner
	_, err = NewTask(uuid.Nil, "Write report")
	if err != ErrTaskUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskUserIDEmpty, err)
	}
}

func TestTaskValidate(t *testing.T) {
	validTask := Task{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Title:    "Write report",
		Priority: PriorityHigh,
		Status:   StatusInProgress,
		Progress: 50,
	}

	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidTask := validTask
	invalidTask.ID = uuid.Nil
	if err := invalidTask.Validate(); err != ErrTaskIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskIDEmpty, err)
	}

	invalidTask = validTask
	invalidTask.UserID = uuid.Nil
	if err := invalidTask.Validate(); err != ErrTaskUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskUserIDEmpty, err)
	}

	invalidTask = validTask
	invalidTask.Title = "   "
	if err := invalidTask.Validate(); err != ErrTaskTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}

	invalidTask = validTask
	invalidTask.Priority = "urgent"
	if err := invalidTask.Validate(); err != ErrInvalidTaskPriority {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskPriority, err)
	}

	invalidTask = validTask
	invalidTask.Status = "done"
	if err := invalidTask.Validate(); err != ErrInvalidTaskStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}

	invalidTask = validTask
	invalidTask.Progress = 101
	if err := invalidTask.Validate(); err != ErrInvalidTaskProgress {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskProgress, err)
	}

	invalidTask = validTask
	invalidTask.Progress = -1
	if err := invalidTask.Validate(); err != ErrInvalidTaskProgress {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskProgress, err)
	}
}

func TestProgressForStatus(t *testing.T) {
	cases := []struct {
		status   TaskStatus
		expected int
	}{
		{StatusTodo, 0},
		{StatusInProgress, 50},
		{StatusReview, 75},
		{StatusCompleted, 100},
	}

	for _, tc := range cases {
		if got := ProgressForStatus(tc.status); got != tc.expected {
			t.Errorf("ProgressForStatus(%q) = %d, expected %d", tc.status, got, tc.expected)
		}
	}
}

func TestTaskPriorityIsValid(t *testing.T) {
	for _, p := range []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.IsValid() {
			t.Errorf("Expected priority %q to be valid", p)
		}
	}
	if TaskPriority("urgent").IsValid() {
		t.Error("Expected priority \"urgent\" to be invalid")
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	for _, s := range []TaskStatus{StatusTodo, StatusInProgress, StatusReview, StatusCompleted} {
		if !s.IsValid() {
			t.Errorf("Expected status %q to be valid", s)
		}
	}
	if TaskStatus("done").IsValid() {
		t.Error("Expected status \"done\" to be invalid")
	}
}
