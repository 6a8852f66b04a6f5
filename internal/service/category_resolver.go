package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/orbit-app/orbit-api/internal/domain"
	"github.com/orbit-app/orbit-api/internal/platform/logger"
	"github.com/orbit-app/orbit-api/internal/store"
)

// CategoryRefKind tags the syntactic form of a category reference.
type CategoryRefKind int

// The three forms a category reference can take.
const (
	// RefEmpty is an absent or empty reference. On create it means
	// "uncategorized"; on update it means "clear the category".
	RefEmpty CategoryRefKind = iota

	// RefID is a reference that parses as a category ID.
	RefID

	// RefName is any other non-empty string, treated as a category name.
	RefName
)

// CategoryRef is a loosely-typed category reference from the API boundary:
// a store-assigned ID, a free-text name, or empty. The tag is decided once,
// by a syntactic ID-format check, instead of repeated existence probes.
type CategoryRef struct {
	kind CategoryRefKind
	id   uuid.UUID
	raw  string
}

// ParseCategoryRef classifies a raw reference string.
func ParseCategoryRef(raw string) CategoryRef {
	if raw == "" {
		return CategoryRef{kind: RefEmpty}
	}
	if id, err := uuid.Parse(raw); err == nil {
		return CategoryRef{kind: RefID, id: id, raw: raw}
	}
	return CategoryRef{kind: RefName, raw: raw}
}

// Kind returns the reference's tag.
func (r CategoryRef) Kind() CategoryRefKind { return r.kind }

// Raw returns the original reference string.
func (r CategoryRef) Raw() string { return r.raw }

// CategoryResolver maps loosely-typed category references to concrete
// category IDs. The write path may create categories on demand; the read
// path never writes.
//
// Resolution precedence for a non-empty reference:
//  1. if it parses as an ID and that category exists, use it
//  2. else case-insensitive exact match on name
//  3. else create a new category named after the reference
//
// The create-on-miss step has a known race: two concurrent resolutions of the
// same not-yet-existing name can both create it, yielding duplicate names.
// That mirrors the established behavior of this API and is deliberately not
// papered over here; GetByName picks the earliest-created duplicate, so
// repeated sequential resolutions of a stable name stay idempotent in effect.
type CategoryResolver struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewCategoryResolver creates a CategoryResolver backed by the given store.
func NewCategoryResolver(categories store.CategoryStore, logger *slog.Logger) *CategoryResolver {
	if categories == nil {
		panic("categories cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CategoryResolver{
		categories: categories,
		logger:     logger.With(slog.String("component", "category_resolver")),
	}
}

// ResolveOrCreate resolves ref to a category ID, creating a category owned by
// ownerID when nothing matches. An empty reference resolves to nil
// (uncategorized). This is the write-path variant used by task create and
// update.
func (r *CategoryResolver) ResolveOrCreate(
	ctx context.Context,
	ownerID uuid.UUID,
	ref CategoryRef,
) (*uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	switch ref.kind {
	case RefEmpty:
		return nil, nil

	case RefID:
		category, err := r.categories.GetByID(ctx, ref.id)
		if err == nil {
			return &category.ID, nil
		}
		if !errors.Is(err, store.ErrCategoryNotFound) {
			return nil, err
		}
		// The ID does not exist; fall through and treat the reference as a
		// name, exactly like any other unmatched string.
	}

	category, err := r.categories.GetByName(ctx, ref.raw)
	if err == nil {
		return &category.ID, nil
	}
	if !errors.Is(err, store.ErrCategoryNotFound) {
		return nil, err
	}

	created, err := domain.NewCategory(ref.raw, &ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := r.categories.Create(ctx, created); err != nil {
		return nil, err
	}

	log.Info("created category on demand",
		slog.String("category_id", created.ID.String()),
		slog.String("name", created.Name),
		slog.String("user_id", ownerID.String()))
	return &created.ID, nil
}

// Resolve resolves ref to an existing category ID without ever writing.
// Returns store.ErrCategoryNotFound when nothing matches. This is the
// read-path variant used by the task list filter; listing must never create
// categories as a side effect.
func (r *CategoryResolver) Resolve(ctx context.Context, ref CategoryRef) (uuid.UUID, error) {
	if ref.kind == RefEmpty {
		return uuid.Nil, store.ErrCategoryNotFound
	}

	if ref.kind == RefID {
		category, err := r.categories.GetByID(ctx, ref.id)
		if err == nil {
			return category.ID, nil
		}
		if !errors.Is(err, store.ErrCategoryNotFound) {
			return uuid.Nil, err
		}
	}

	category, err := r.categories.GetByName(ctx, ref.raw)
	if err != nil {
		return uuid.Nil, err
	}
	return category.ID, nil
}
