package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/orbit-app/orbit-api/internal/domain"
	"github.com/orbit-app/orbit-api/internal/platform/logger"
	"github.com/orbit-app/orbit-api/internal/store"
)

// CategoryService owns explicit category management: the CRUD surface behind
// the category endpoints. Implicit creation during task operations lives in
// the CategoryResolver instead.
type CategoryService struct {
	categories store.CategoryStore
	tasks      store.TaskStore
	db         *sql.DB
	logger     *slog.Logger
}

// NewCategoryService creates a CategoryService.
// The task store is needed for the referential-integrity check on delete.
// The database handle may be nil; when present, deletes run the in-use check
// and the delete in one transaction.
func NewCategoryService(
	categories store.CategoryStore,
	tasks store.TaskStore,
	db *sql.DB,
	logger *slog.Logger,
) *CategoryService {
	if categories == nil {
		panic("categories cannot be nil")
	}
	if tasks == nil {
		panic("tasks cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CategoryService{
		categories: categories,
		tasks:      tasks,
		db:         db,
		logger:     logger.With(slog.String("component", "category_service")),
	}
}

// Create makes a new category from an explicit request. Unlike
// resolver-created categories these are global (no owner). Returns
// store.ErrCategoryExists when a category with the same name (compared
// case-insensitively) already exists.
func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrCategoryNameEmpty
	}

	_, err := s.categories.GetByName(ctx, name)
	if err == nil {
		return nil, fmt.Errorf("%w: %q", store.ErrCategoryExists, name)
	}
	if !errors.Is(err, store.ErrCategoryNotFound) {
		return nil, err
	}

	category, err := domain.NewCategory(name, nil)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	log.Info("category created",
		slog.String("category_id", category.ID.String()),
		slog.String("name", category.Name))
	return category, nil
}

// List returns all categories sorted alphabetically.
func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// GetByID returns a single category.
// Returns store.ErrCategoryNotFound if it does not exist.
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// Rename changes a category's name and returns the updated record.
// Returns store.ErrCategoryNotFound if it does not exist.
func (s *CategoryService) Rename(
	ctx context.Context,
	id uuid.UUID,
	name string,
) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrCategoryNameEmpty
	}

	if err := s.categories.UpdateName(ctx, id, name); err != nil {
		return nil, err
	}

	return s.categories.GetByID(ctx, id)
}

// Delete removes a category, but only when no task references it. When tasks
// still reference the category the deletion is rejected with a
// CategoryInUseError reporting the count; the caller must reassign those
// tasks first. This check lives here, not in the store: the schema has no
// cascade from categories to tasks.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.db != nil {
		// Run the check and the delete in one transaction so a task created
		// between them cannot be orphaned.
		err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.deleteIfUnreferenced(ctx, s.categories.WithTx(tx), s.tasks.WithTx(tx), id, log)
		})
		if err != nil {
			return err
		}
	} else {
		if err := s.deleteIfUnreferenced(ctx, s.categories, s.tasks, id, log); err != nil {
			return err
		}
	}

	log.Info("category deleted", slog.String("category_id", id.String()))
	return nil
}

func (s *CategoryService) deleteIfUnreferenced(
	ctx context.Context,
	categories store.CategoryStore,
	tasks store.TaskStore,
	id uuid.UUID,
	log *slog.Logger,
) error {
	count, err := tasks.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug("category deletion blocked",
			slog.String("category_id", id.String()),
			slog.Int64("task_count", count))
		return &CategoryInUseError{Count: count}
	}

	return categories.Delete(ctx, id)
}
