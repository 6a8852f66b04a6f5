package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/orbit-app/orbit-api/internal/domain"
)

// Sort directions accepted by TaskQuery.SortOrder.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// TaskWithCategory is the read-side projection of a task: the task row joined
// with its category's display name, when a category is assigned. Every store
// read that returns tasks applies this projection uniformly.
type TaskWithCategory struct {
	domain.Task

	// CategoryName is the display name of the referenced category,
	// nil when the task is uncategorized.
	CategoryName *string
}

// TaskQuery describes the filters and ordering for a task listing.
// All fields are optional; the owner scope is supplied separately and is
// always applied.
type TaskQuery struct {
	// Priority filters to tasks with exactly this priority.
	Priority *domain.TaskPriority

	// DueOnOrBefore filters to tasks due on or before this instant (inclusive).
	DueOnOrBefore *time.Time

	// DueOnOrAfter filters to tasks due on or after this instant (inclusive).
	DueOnOrAfter *time.Time

	// DueBefore filters to tasks due strictly before this instant (exclusive).
	// Combined with DueOnOrAfter it expresses a half-open date window.
	DueBefore *time.Time

	// Completed filters on the completion flag derived from status:
	// true selects status=completed, false selects everything else.
	Completed *bool

	// CategoryID filters to tasks assigned to this category.
	CategoryID *uuid.UUID

	// Search is a case-insensitive substring match against title or description.
	Search string

	// SortBy names the field to order by. Unknown fields fall back to
	// creation time. SortOrder is "asc" or "desc"; when SortBy is empty the
	// listing defaults to newest-first.
	SortBy    string
	SortOrder string
}

// UpdateTaskParams carries a partial update of a task. Nil fields are left
// untouched. There is intentionally no owner field: a task's owner is never
// updatable.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *domain.TaskPriority
	Status      *domain.TaskStatus
	Progress    *int

	// CategoryID distinguishes three cases: nil leaves the category untouched,
	// a NullUUID with Valid=false clears it, and a NullUUID with Valid=true
	// assigns the given category.
	CategoryID *uuid.NullUUID
}

// TaskStore defines the interface for task persistence. Every read and write
// is scoped to the owning user; a task that exists but belongs to someone
// else behaves exactly like a task that does not exist.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the category or user reference is dangling.
	Create(ctx context.Context, task *domain.Task) error

	// GetForUser retrieves a task by ID, scoped to the owning user, with its
	// category name populated. Returns ErrTaskNotFound if no such task is
	// owned by userID.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*TaskWithCategory, error)

	// List returns all tasks owned by userID matching the query, each with
	// its category name populated. Ordering ties are broken by creation time
	// and then ID so results are deterministic.
	List(ctx context.Context, userID uuid.UUID, query TaskQuery) ([]*TaskWithCategory, error)

	// Update applies a partial update to the task with the given ID, scoped
	// to the owning user. Returns ErrTaskNotFound if no such task is owned by
	// userID. The task's updated_at timestamp is always refreshed.
	Update(ctx context.Context, id, userID uuid.UUID, params UpdateTaskParams) error

	// Delete removes the task with the given ID, scoped to the owning user.
	// Returns ErrTaskNotFound if no such task is owned by userID.
	// The referenced category, if any, is unaffected.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// CountByCategory returns the number of tasks, across all users,
	// that reference the given category.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
