package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category-specific validation errors
var (
	// ErrCategoryIDEmpty is returned when a category ID is empty or nil.
	ErrCategoryIDEmpty = errors.New("category ID cannot be empty")

	// ErrCategoryNameEmpty is returned when a category's name is empty or whitespace.
	ErrCategoryNameEmpty = errors.New("category name cannot be empty")
)

// Category is a named grouping for tasks. The owning user is optional:
// categories created through the category endpoint are global, while
// categories created implicitly during task creation record the user
// that caused them to exist.
//
// Name lookups are case-insensitive exact matches. Per-user name uniqueness
// is intentionally not enforced at the schema level.
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCategory creates a new Category with the given name and optional owner.
// It generates a new UUID for the category ID and sets the timestamps.
// Returns an error if validation fails.
func NewCategory(name string, userID *uuid.UUID) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		ID:        uuid.New(),
		Name:      name,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCategoryIDEmpty
	}

	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameEmpty
	}

	return nil
}
