package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orbit-app/orbit-api/internal/domain"
	"github.com/orbit-app/orbit-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTaskServiceForTest wires a TaskService with mock stores and a fixed clock.
func newTaskServiceForTest(
	tasks *MockTaskStore,
	categories *MockCategoryStore,
	now time.Time,
) *TaskService {
	svc := NewTaskService(tasks, NewCategoryResolver(categories, nil), nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestTaskServiceCreate_SetsOwnerAndDefaults(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	userID := uuid.New()
	tasks.On("Create", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
		return task.UserID == userID &&
			task.Priority == domain.PriorityMedium &&
			task.Status == domain.StatusTodo &&
			task.Progress == 0
	})).Return(nil)

	task, err := svc.Create(context.Background(), userID, CreateTaskParams{Title: "Write report"})

	require.NoError(t, err)
	assert.Equal(t, userID, task.UserID)
	assert.Nil(t, task.CategoryID)
	tasks.AssertExpectations(t)
}

func TestTaskServiceCreate_EmptyTitle(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	_, err := svc.Create(context.Background(), uuid.New(), CreateTaskParams{Title: "   "})

	assert.ErrorIs(t, err, domain.ErrTaskTitleEmpty)
	tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaskServiceCreate_ResolvesCategoryByName(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	category := &domain.Category{ID: uuid.New(), Name: "Work"}
	categories.On("GetByName", mock.Anything, "Work").Return(category, nil)
	tasks.On("Create", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
		return task.CategoryID != nil && *task.CategoryID == category.ID
	})).Return(nil)

	task, err := svc.Create(context.Background(), uuid.New(), CreateTaskParams{
		Title:    "Write report",
		Category: "Work",
	})

	require.NoError(t, err)
	require.NotNil(t, task.CategoryID)
	assert.Equal(t, category.ID, *task.CategoryID)
}

func TestTaskServiceCreate_InvalidPriority(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	_, err := svc.Create(context.Background(), uuid.New(), CreateTaskParams{
		Title:    "Write report",
		Priority: "urgent",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTaskPriority)
}

func TestTaskServiceUpdate_StatusDrivesProgress(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	userID := uuid.New()
	taskID := uuid.New()
	status := domain.StatusCompleted

	tasks.On("Update", mock.Anything, taskID, userID,
		mock.MatchedBy(func(params store.UpdateTaskParams) bool {
			return params.Status != nil && *params.Status == domain.StatusCompleted &&
				params.Progress != nil && *params.Progress == 100
		})).Return(nil)
	tasks.On("GetForUser", mock.Anything, taskID, userID).
		Return(&store.TaskWithCategory{}, nil)

	_, err := svc.Update(context.Background(), userID, taskID, UpdateTaskParams{Status: &status})

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestTaskServiceUpdate_ExplicitProgressWins(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	userID := uuid.New()
	taskID := uuid.New()
	status := domain.StatusCompleted
	progress := 90

	tasks.On("Update", mock.Anything, taskID, userID,
		mock.MatchedBy(func(params store.UpdateTaskParams) bool {
			return params.Progress != nil && *params.Progress == 90
		})).Return(nil)
	tasks.On("GetForUser", mock.Anything, taskID, userID).
		Return(&store.TaskWithCategory{}, nil)

	_, err := svc.Update(context.Background(), userID, taskID, UpdateTaskParams{
		Status:   &status,
		Progress: &progress,
	})

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestTaskServiceUpdate_ClearsCategory(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	userID := uuid.New()
	taskID := uuid.New()
	emptyCategory := ""

	tasks.On("Update", mock.Anything, taskID, userID,
		mock.MatchedBy(func(params store.UpdateTaskParams) bool {
			return params.CategoryID != nil && !params.CategoryID.Valid
		})).Return(nil)
	tasks.On("GetForUser", mock.Anything, taskID, userID).
		Return(&store.TaskWithCategory{}, nil)

	_, err := svc.Update(context.Background(), userID, taskID, UpdateTaskParams{
		Category: &emptyCategory,
	})

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestTaskServiceUpdate_OmittedCategoryUntouched(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	userID := uuid.New()
	taskID := uuid.New()
	title := "New title"

	tasks.On("Update", mock.Anything, taskID, userID,
		mock.MatchedBy(func(params store.UpdateTaskParams) bool {
			return params.CategoryID == nil
		})).Return(nil)
	tasks.On("GetForUser", mock.Anything, taskID, userID).
		Return(&store.TaskWithCategory{}, nil)

	_, err := svc.Update(context.Background(), userID, taskID, UpdateTaskParams{Title: &title})

	require.NoError(t, err)
	categories.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
}

func TestTaskServiceUpdate_NotFoundPassesThrough(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	userID := uuid.New()
	taskID := uuid.New()
	title := "New title"

	tasks.On("Update", mock.Anything, taskID, userID, mock.Anything).
		Return(store.ErrTaskNotFound)

	_, err := svc.Update(context.Background(), userID, taskID, UpdateTaskParams{Title: &title})

	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskServiceList_UnresolvableCategoryFails(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	categories.On("GetByName", mock.Anything, "Nowhere").Return(nil, store.ErrCategoryNotFound)

	_, err := svc.List(context.Background(), uuid.New(), ListTasksParams{Category: "Nowhere"})

	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
	// A list filter must never create a category as a side effect
	categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	tasks.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskServiceMarkCompleted(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	userID := uuid.New()
	taskID := uuid.New()

	tasks.On("Update", mock.Anything, taskID, userID,
		mock.MatchedBy(func(params store.UpdateTaskParams) bool {
			return params.Status != nil && *params.Status == domain.StatusCompleted &&
				params.Progress != nil && *params.Progress == 100
		})).Return(nil)
	tasks.On("GetForUser", mock.Anything, taskID, userID).
		Return(&store.TaskWithCategory{}, nil)

	_, err := svc.MarkCompleted(context.Background(), userID, taskID)

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestTaskServiceMarkIncomplete(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	userID := uuid.New()
	taskID := uuid.New()

	tasks.On("Update", mock.Anything, taskID, userID,
		mock.MatchedBy(func(params store.UpdateTaskParams) bool {
			return params.Status != nil && *params.Status == domain.StatusInProgress &&
				params.Progress != nil && *params.Progress == 50
		})).Return(nil)
	tasks.On("GetForUser", mock.Anything, taskID, userID).
		Return(&store.TaskWithCategory{}, nil)

	_, err := svc.MarkIncomplete(context.Background(), userID, taskID)

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestTaskServiceForToday_Window(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)

	// Mid-afternoon on an arbitrary day
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	svc := newTaskServiceForTest(tasks, categories, now)

	userID := uuid.New()
	dayStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	dayEnd := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	tasks.On("List", mock.Anything, userID,
		mock.MatchedBy(func(query store.TaskQuery) bool {
			return query.DueOnOrAfter != nil && query.DueOnOrAfter.Equal(dayStart) &&
				query.DueBefore != nil && query.DueBefore.Equal(dayEnd) &&
				query.SortBy == "priority" && query.SortOrder == store.SortDesc
		})).Return([]*store.TaskWithCategory{}, nil)

	_, err := svc.ForToday(context.Background(), userID)

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestTaskServiceForWeek_Window(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)

	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	svc := newTaskServiceForTest(tasks, categories, now)

	userID := uuid.New()
	weekStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)

	tasks.On("List", mock.Anything, userID,
		mock.MatchedBy(func(query store.TaskQuery) bool {
			return query.DueOnOrAfter != nil && query.DueOnOrAfter.Equal(weekStart) &&
				query.DueBefore != nil && query.DueBefore.Equal(weekEnd) &&
				query.SortBy == "dueDate" && query.SortOrder == store.SortAsc
		})).Return([]*store.TaskWithCategory{}, nil)

	_, err := svc.ForWeek(context.Background(), userID)

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestTaskServiceForMonth_Window(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)

	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	svc := newTaskServiceForTest(tasks, categories, now)

	userID := uuid.New()
	monthStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	tasks.On("List", mock.Anything, userID,
		mock.MatchedBy(func(query store.TaskQuery) bool {
			return query.DueOnOrAfter != nil && query.DueOnOrAfter.Equal(monthStart) &&
				query.DueBefore != nil && query.DueBefore.Equal(monthEnd)
		})).Return([]*store.TaskWithCategory{}, nil)

	_, err := svc.ForMonth(context.Background(), userID)

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestTaskServiceCompleted(t *testing.T) {
	tasks := new(MockTaskStore)
	categories := new(MockCategoryStore)
	svc := newTaskServiceForTest(tasks, categories, time.Now())

	userID := uuid.New()

	tasks.On("List", mock.Anything, userID,
		mock.MatchedBy(func(query store.TaskQuery) bool {
			return query.Completed != nil && *query.Completed &&
				query.SortBy == "updatedAt" && query.SortOrder == store.SortDesc
		})).Return([]*store.TaskWithCategory{}, nil)

	_, err := svc.Completed(context.Background(), userID)

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}
