package api

import (
	"testing"

	"github.com/google/uuid"
	"github.com/orbit-app/orbit-api/internal/domain"
	"github.com/orbit-app/orbit-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskRequestCategoryRef(t *testing.T) {
	req := CreateTaskRequest{Category: "Work", CategoryID: "abc"}
	assert.Equal(t, "Work", req.CategoryRef(), "category field wins over its alias")

	req = CreateTaskRequest{CategoryID: "abc"}
	assert.Equal(t, "abc", req.CategoryRef())

	req = CreateTaskRequest{}
	assert.Empty(t, req.CategoryRef())
}

func TestUpdateTaskRequestCategoryRef(t *testing.T) {
	name := "Work"
	alias := "abc"

	req := UpdateTaskRequest{Category: &name, CategoryID: &alias}
	require.NotNil(t, req.CategoryRef())
	assert.Equal(t, "Work", *req.CategoryRef())

	req = UpdateTaskRequest{CategoryID: &alias}
	require.NotNil(t, req.CategoryRef())
	assert.Equal(t, "abc", *req.CategoryRef())

	req = UpdateTaskRequest{}
	assert.Nil(t, req.CategoryRef(), "omitting both leaves the category untouched")
}

func TestTaskToResponse_PopulatesCategory(t *testing.T) {
	categoryID := uuid.New()
	categoryName := "Work"

	task := &store.TaskWithCategory{
		Task: domain.Task{
			ID:         uuid.New(),
			UserID:     uuid.New(),
			Title:      "Write report",
			Priority:   domain.PriorityHigh,
			Status:     domain.StatusTodo,
			CategoryID: &categoryID,
		},
		CategoryName: &categoryName,
	}

	resp := taskToResponse(task)

	require.NotNil(t, resp.Category)
	assert.Equal(t, categoryID, resp.Category.ID)
	assert.Equal(t, "Work", resp.Category.Name)
	assert.Equal(t, &categoryID, resp.CategoryID)
}

func TestTaskToResponse_Uncategorized(t *testing.T) {
	task := &store.TaskWithCategory{
		Task: domain.Task{
			ID:       uuid.New(),
			UserID:   uuid.New(),
			Title:    "Write report",
			Priority: domain.PriorityMedium,
			Status:   domain.StatusTodo,
		},
	}

	resp := taskToResponse(task)

	assert.Nil(t, resp.Category)
	assert.Nil(t, resp.CategoryID)
}

func TestTasksToResponse_EmptyIsNotNil(t *testing.T) {
	resp := tasksToResponse(nil)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}
