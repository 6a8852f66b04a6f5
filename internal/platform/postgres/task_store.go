package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/orbit-app/orbit-api/internal/domain"
	"github.com/orbit-app/orbit-api/internal/platform/logger"
	"github.com/orbit-app/orbit-api/internal/store"
)

// priorityRank orders priorities high-first; the raw strings would sort
// medium > low > high.
const priorityRank = "CASE t.priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END"

// sortColumns whitelists the fields a caller may sort by. Both the JSON-ish
// camelCase names the frontend sends and the column names are accepted.
var sortColumns = map[string]string{
	"title":      "t.title",
	"dueDate":    "t.due_date",
	"due_date":   "t.due_date",
	"priority":   priorityRank,
	"status":     "t.status",
	"progress":   "t.progress",
	"createdAt":  "t.created_at",
	"created_at": "t.created_at",
	"updatedAt":  "t.updated_at",
	"updated_at": "t.updated_at",
}

// taskColumns is the projection used by every task read: the task row joined
// with its category's name.
var taskColumns = []string{
	"t.id",
	"t.user_id",
	"t.category_id",
	"t.title",
	"t.description",
	"t.due_date",
	"t.priority",
	"t.status",
	"t.progress",
	"t.created_at",
	"t.updated_at",
	"c.name AS category_name",
}

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the user or category reference is dangling.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, user_id, category_id, title, description, due_date,
			priority, status, progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		nullableUUID(task.CategoryID),
		task.Title,
		task.Description,
		nullableTime(task.DueDate),
		task.Priority,
		task.Status,
		task.Progress,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetForUser implements store.TaskStore.GetForUser
// Returns store.ErrTaskNotFound when the task does not exist or is owned by
// another user; the two cases are indistinguishable to the caller.
func (s *PostgresTaskStore) GetForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*store.TaskWithCategory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	queryStr, args, err := sq.Select(taskColumns...).
		From("tasks t").
		LeftJoin("categories c ON c.id = t.category_id").
		Where(sq.Eq{"t.id": id, "t.user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	task, err := scanTask(s.db.QueryRowContext(ctx, queryStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.String("task_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// List implements store.TaskStore.List
// It composes the filter conditions and ordering from the query and returns
// all matching tasks owned by userID, category names populated.
func (s *PostgresTaskStore) List(
	ctx context.Context,
	userID uuid.UUID,
	query store.TaskQuery,
) ([]*store.TaskWithCategory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	builder := sq.Select(taskColumns...).
		From("tasks t").
		LeftJoin("categories c ON c.id = t.category_id").
		Where(sq.Eq{"t.user_id": userID}).
		PlaceholderFormat(sq.Dollar)

	if query.Priority != nil {
		builder = builder.Where(sq.Eq{"t.priority": *query.Priority})
	}
	if query.DueOnOrBefore != nil {
		builder = builder.Where(sq.LtOrEq{"t.due_date": *query.DueOnOrBefore})
	}
	if query.DueOnOrAfter != nil {
		builder = builder.Where(sq.GtOrEq{"t.due_date": *query.DueOnOrAfter})
	}
	if query.DueBefore != nil {
		builder = builder.Where(sq.Lt{"t.due_date": *query.DueBefore})
	}
	if query.Completed != nil {
		if *query.Completed {
			builder = builder.Where(sq.Eq{"t.status": domain.StatusCompleted})
		} else {
			builder = builder.Where(sq.NotEq{"t.status": domain.StatusCompleted})
		}
	}
	if query.CategoryID != nil {
		builder = builder.Where(sq.Eq{"t.category_id": *query.CategoryID})
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"t.title": pattern},
			sq.ILike{"t.description": pattern},
		})
	}

	builder = builder.OrderBy(orderClauses(query.SortBy, query.SortOrder)...)

	queryStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, queryStr, args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var tasks []*store.TaskWithCategory
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("tasks listed",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update
// It applies only the provided fields; updated_at is always refreshed.
// Returns store.ErrTaskNotFound if no task with that ID is owned by userID.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	params store.UpdateTaskParams,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	builder := sq.Update("tasks").
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(sq.Dollar)

	if params.Title != nil {
		builder = builder.Set("title", *params.Title)
	}
	if params.Description != nil {
		builder = builder.Set("description", *params.Description)
	}
	if params.DueDate != nil {
		builder = builder.Set("due_date", *params.DueDate)
	}
	if params.Priority != nil {
		builder = builder.Set("priority", *params.Priority)
	}
	if params.Status != nil {
		builder = builder.Set("status", *params.Status)
	}
	if params.Progress != nil {
		builder = builder.Set("progress", *params.Progress)
	}
	if params.CategoryID != nil {
		if params.CategoryID.Valid {
			builder = builder.Set("category_id", params.CategoryID.UUID)
		} else {
			builder = builder.Set("category_id", nil)
		}
	}

	queryStr, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, queryStr, args...)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		log.Debug("task not found for update",
			slog.String("task_id", id.String()),
			slog.String("user_id", userID.String()))
		return store.ErrTaskNotFound
	}

	log.Debug("task updated", slog.String("task_id", id.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if no task with that ID is owned by userID.
func (s *PostgresTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		log.Debug("task not found for delete",
			slog.String("task_id", id.String()),
			slog.String("user_id", userID.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted",
		slog.String("task_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// CountByCategory implements store.TaskStore.CountByCategory
func (s *PostgresTaskStore) CountByCategory(
	ctx context.Context,
	categoryID uuid.UUID,
) (int64, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE category_id = $1`

	var count int64
	if err := s.db.QueryRowContext(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, MapError(err)
	}

	return count, nil
}

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans a joined task row into the read-side projection.
func scanTask(row rowScanner) (*store.TaskWithCategory, error) {
	var (
		task         store.TaskWithCategory
		categoryID   uuid.NullUUID
		dueDate      sql.NullTime
		priority     string
		status       string
		categoryName sql.NullString
	)

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&categoryID,
		&task.Title,
		&task.Description,
		&dueDate,
		&priority,
		&status,
		&task.Progress,
		&task.CreatedAt,
		&task.UpdatedAt,
		&categoryName,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		id := categoryID.UUID
		task.CategoryID = &id
	}
	if dueDate.Valid {
		due := dueDate.Time
		task.DueDate = &due
	}
	if categoryName.Valid {
		name := categoryName.String
		task.CategoryName = &name
	}
	task.Priority = domain.TaskPriority(priority)
	task.Status = domain.TaskStatus(status)

	return &task, nil
}

// orderClauses builds the ORDER BY list for a listing. Unknown sort fields
// fall back to creation time. A trailing created_at/id pair keeps ordering
// deterministic when the primary key ties.
func orderClauses(sortBy, sortOrder string) []string {
	dir := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		dir = "DESC"
	}

	column, ok := sortColumns[sortBy]
	if sortBy == "" || !ok {
		return []string{"t.created_at DESC", "t.id ASC"}
	}

	clauses := []string{column + " " + dir}
	if column != "t.created_at" {
		clauses = append(clauses, "t.created_at DESC")
	}
	return append(clauses, "t.id ASC")
}

// nullableUUID converts an optional UUID to its driver representation.
func nullableUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}

// nullableTime converts an optional time to its driver representation.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
