package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/orbit-app/orbit-api/internal/domain"
)

// CategoryStore defines the interface for category persistence.
type CategoryStore interface {
	// Create saves a new category to the store.
	// Returns validation errors from the domain Category if data is invalid.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// GetByName retrieves a category by name using a case-insensitive exact
	// match. When several categories share a name the earliest-created one is
	// returned. Returns ErrCategoryNotFound if no category matches.
	GetByName(ctx context.Context, name string) (*domain.Category, error)

	// List returns all categories sorted alphabetically by name.
	List(ctx context.Context) ([]*domain.Category, error)

	// UpdateName renames an existing category.
	// Returns ErrCategoryNotFound if the category does not exist.
	UpdateName(ctx context.Context, id uuid.UUID, name string) error

	// Delete removes a category from the store by its ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	// Referential integrity against tasks is the service layer's concern;
	// the store performs no in-use check.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CategoryStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) CategoryStore
}
