package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orbit-app/orbit-api/internal/domain"
	"github.com/orbit-app/orbit-api/internal/platform/logger"
	"github.com/orbit-app/orbit-api/internal/store"
)

// CreateTaskParams carries the caller-supplied fields for a new task.
// The owner is supplied separately by the handler from the authenticated
// user and is never part of the payload.
type CreateTaskParams struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    domain.TaskPriority // empty applies the medium default
	Status      domain.TaskStatus   // empty applies the todo default
	Progress    *int                // nil applies the 0 default
	Category    string              // loosely-typed reference, may create a category
}

// UpdateTaskParams carries a partial task update. Nil fields are left
// untouched. Category distinguishes three cases: nil leaves the assignment
// alone, an empty string clears it, anything else is resolved (creating a
// category if needed).
type UpdateTaskParams struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *domain.TaskPriority
	Status      *domain.TaskStatus
	Progress    *int
	Category    *string
}

// ListTasksParams carries the filters for a task listing.
type ListTasksParams struct {
	Priority      string
	DueOnOrBefore *time.Time
	Completed     *bool
	Category      string // loosely-typed reference, resolved read-only
	Search        string
	SortBy        string
	SortOrder     string
}

// TaskService is the task query and mutation engine. Every operation is
// scoped to the requesting user's ID; tasks owned by other users are
// indistinguishable from tasks that do not exist. Category-bearing
// operations delegate reference resolution to the CategoryResolver.
type TaskService struct {
	tasks    store.TaskStore
	resolver *CategoryResolver
	logger   *slog.Logger
	now      func() time.Time // injectable for the date-bucket queries
}

// NewTaskService creates a TaskService.
func NewTaskService(
	tasks store.TaskStore,
	resolver *CategoryResolver,
	logger *slog.Logger,
) *TaskService {
	if tasks == nil {
		panic("tasks cannot be nil")
	}
	if resolver == nil {
		panic("resolver cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskService{
		tasks:    tasks,
		resolver: resolver,
		logger:   logger.With(slog.String("component", "task_service")),
		now:      time.Now,
	}
}

// Create persists a new task owned by userID. The category reference, if
// present, is resolved first and may create a category. The returned task
// carries the raw category ID; name population happens on reads.
func (s *TaskService) Create(
	ctx context.Context,
	userID uuid.UUID,
	params CreateTaskParams,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(params.Title) == "" {
		return nil, domain.ErrTaskTitleEmpty
	}

	categoryID, err := s.resolver.ResolveOrCreate(
		ctx,
		userID,
		ParseCategoryRef(params.Category),
	)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(userID, params.Title)
	if err != nil {
		return nil, err
	}
	task.Description = params.Description
	task.DueDate = params.DueDate
	task.CategoryID = categoryID
	if params.Priority != "" {
		task.Priority = params.Priority
	}
	if params.Status != "" {
		task.Status = params.Status
	}
	if params.Progress != nil {
		task.Progress = *params.Progress
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))
	return task, nil
}

// List returns all tasks owned by userID matching the filters, each with its
// category name populated. The category filter is resolved read-only: an
// unresolvable reference fails with store.ErrCategoryNotFound and never
// creates a category.
func (s *TaskService) List(
	ctx context.Context,
	userID uuid.UUID,
	params ListTasksParams,
) ([]*store.TaskWithCategory, error) {
	query := store.TaskQuery{
		DueOnOrBefore: params.DueOnOrBefore,
		Completed:     params.Completed,
		Search:        params.Search,
		SortBy:        params.SortBy,
		SortOrder:     params.SortOrder,
	}

	if params.Priority != "" {
		priority := domain.TaskPriority(params.Priority)
		query.Priority = &priority
	}

	if params.Category != "" {
		categoryID, err := s.resolver.Resolve(ctx, ParseCategoryRef(params.Category))
		if err != nil {
			return nil, err
		}
		query.CategoryID = &categoryID
	}

	return s.tasks.List(ctx, userID, query)
}

// GetByID returns the task with the given ID if it is owned by userID,
// category name populated. Returns store.ErrTaskNotFound otherwise.
func (s *TaskService) GetByID(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*store.TaskWithCategory, error) {
	return s.tasks.GetForUser(ctx, taskID, userID)
}

// Update applies a partial update to a task owned by userID and returns the
// updated, category-populated task. The owner is never updatable. When the
// status changes without an explicit progress value, progress is recomputed
// from the status convention (todo=0, in-progress=50, review=75,
// completed=100).
func (s *TaskService) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	params UpdateTaskParams,
) (*store.TaskWithCategory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		return nil, domain.ErrTaskTitleEmpty
	}
	if params.Priority != nil && !params.Priority.IsValid() {
		return nil, domain.ErrInvalidTaskPriority
	}
	if params.Status != nil && !params.Status.IsValid() {
		return nil, domain.ErrInvalidTaskStatus
	}
	if params.Progress != nil && (*params.Progress < 0 || *params.Progress > 100) {
		return nil, domain.ErrInvalidTaskProgress
	}

	update := store.UpdateTaskParams{
		Title:       params.Title,
		Description: params.Description,
		DueDate:     params.DueDate,
		Priority:    params.Priority,
		Status:      params.Status,
		Progress:    params.Progress,
	}

	if params.Category != nil {
		if *params.Category == "" {
			// Explicit empty string clears the category.
			update.CategoryID = &uuid.NullUUID{}
		} else {
			categoryID, err := s.resolver.ResolveOrCreate(
				ctx,
				userID,
				ParseCategoryRef(*params.Category),
			)
			if err != nil {
				return nil, err
			}
			update.CategoryID = &uuid.NullUUID{UUID: *categoryID, Valid: true}
		}
	}

	if params.Status != nil && params.Progress == nil {
		progress := domain.ProgressForStatus(*params.Status)
		update.Progress = &progress
	}

	if err := s.tasks.Update(ctx, taskID, userID, update); err != nil {
		return nil, err
	}

	log.Debug("task updated",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	return s.tasks.GetForUser(ctx, taskID, userID)
}

// Delete removes a task owned by userID. Returns store.ErrTaskNotFound
// otherwise. The referenced category, if any, is unaffected.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	return s.tasks.Delete(ctx, taskID, userID)
}

// MarkCompleted is the shortcut transition to status=completed, progress=100.
// Same ownership and not-found semantics as Update.
func (s *TaskService) MarkCompleted(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*store.TaskWithCategory, error) {
	return s.applyStatus(ctx, userID, taskID, domain.StatusCompleted)
}

// MarkIncomplete is the shortcut transition to status=in-progress,
// progress=50. Same ownership and not-found semantics as Update.
func (s *TaskService) MarkIncomplete(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*store.TaskWithCategory, error) {
	return s.applyStatus(ctx, userID, taskID, domain.StatusInProgress)
}

func (s *TaskService) applyStatus(
	ctx context.Context,
	userID, taskID uuid.UUID,
	status domain.TaskStatus,
) (*store.TaskWithCategory, error) {
	progress := domain.ProgressForStatus(status)
	update := store.UpdateTaskParams{
		Status:   &status,
		Progress: &progress,
	}

	if err := s.tasks.Update(ctx, taskID, userID, update); err != nil {
		return nil, err
	}
	return s.tasks.GetForUser(ctx, taskID, userID)
}

// ForToday returns the tasks due within [today's midnight, tomorrow's
// midnight), highest priority first.
func (s *TaskService) ForToday(
	ctx context.Context,
	userID uuid.UUID,
) ([]*store.TaskWithCategory, error) {
	start := midnight(s.now())
	end := start.AddDate(0, 0, 1)

	return s.tasks.List(ctx, userID, store.TaskQuery{
		DueOnOrAfter: &start,
		DueBefore:    &end,
		SortBy:       "priority",
		SortOrder:    store.SortDesc,
	})
}

// ForWeek returns the tasks due within [today's midnight, midnight+7d),
// earliest due date first.
func (s *TaskService) ForWeek(
	ctx context.Context,
	userID uuid.UUID,
) ([]*store.TaskWithCategory, error) {
	start := midnight(s.now())
	end := start.AddDate(0, 0, 7)

	return s.tasks.List(ctx, userID, store.TaskQuery{
		DueOnOrAfter: &start,
		DueBefore:    &end,
		SortBy:       "dueDate",
		SortOrder:    store.SortAsc,
	})
}

// ForMonth returns the tasks due within [first of this month, first of next
// month), earliest due date first.
func (s *TaskService) ForMonth(
	ctx context.Context,
	userID uuid.UUID,
) ([]*store.TaskWithCategory, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)

	return s.tasks.List(ctx, userID, store.TaskQuery{
		DueOnOrAfter: &start,
		DueBefore:    &end,
		SortBy:       "dueDate",
		SortOrder:    store.SortAsc,
	})
}

// Completed returns all of the user's completed tasks, most recently updated
// first.
func (s *TaskService) Completed(
	ctx context.Context,
	userID uuid.UUID,
) ([]*store.TaskWithCategory, error) {
	completed := true

	return s.tasks.List(ctx, userID, store.TaskQuery{
		Completed: &completed,
		SortBy:    "updatedAt",
		SortOrder: store.SortDesc,
	})
}

// midnight truncates t to the start of its day in t's location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
