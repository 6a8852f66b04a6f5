package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/orbit-app/orbit-api/internal/domain"
	"github.com/orbit-app/orbit-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCategoryStore is a testify mock for store.CategoryStore.
type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	var category *domain.Category
	if arg := args.Get(0); arg != nil {
		category = arg.(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	var category *domain.Category
	if arg := args.Get(0); arg != nil {
		category = arg.(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	var categories []*domain.Category
	if arg := args.Get(0); arg != nil {
		categories = arg.([]*domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryStore) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	args := m.Called(tx)
	return args.Get(0).(store.CategoryStore)
}

// MockTaskStore is a testify mock for store.TaskStore.
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) GetForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*store.TaskWithCategory, error) {
	args := m.Called(ctx, id, userID)
	var task *store.TaskWithCategory
	if arg := args.Get(0); arg != nil {
		task = arg.(*store.TaskWithCategory)
	}
	return task, args.Error(1)
}

func (m *MockTaskStore) List(
	ctx context.Context,
	userID uuid.UUID,
	query store.TaskQuery,
) ([]*store.TaskWithCategory, error) {
	args := m.Called(ctx, userID, query)
	var tasks []*store.TaskWithCategory
	if arg := args.Get(0); arg != nil {
		tasks = arg.([]*store.TaskWithCategory)
	}
	return tasks, args.Error(1)
}

func (m *MockTaskStore) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	params store.UpdateTaskParams,
) error {
	args := m.Called(ctx, id, userID, params)
	return args.Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockTaskStore) CountByCategory(
	ctx context.Context,
	categoryID uuid.UUID,
) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	args := m.Called(tx)
	return args.Get(0).(store.TaskStore)
}
