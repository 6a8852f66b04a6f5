package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/orbit-app/orbit-api/internal/domain"
	"github.com/orbit-app/orbit-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryRef(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, RefEmpty, ParseCategoryRef("").Kind())
	assert.Equal(t, RefID, ParseCategoryRef(id.String()).Kind())
	assert.Equal(t, RefName, ParseCategoryRef("Work").Kind())
	// Strings that merely resemble IDs are still names
	assert.Equal(t, RefName, ParseCategoryRef("not-a-uuid").Kind())
}

func TestResolveOrCreate_EmptyRef(t *testing.T) {
	categories := new(MockCategoryStore)
	resolver := NewCategoryResolver(categories, nil)

	id, err := resolver.ResolveOrCreate(context.Background(), uuid.New(), ParseCategoryRef(""))

	require.NoError(t, err)
	assert.Nil(t, id)
	categories.AssertNotCalled(t, "GetByID")
	categories.AssertNotCalled(t, "GetByName")
	categories.AssertNotCalled(t, "Create")
}

func TestResolveOrCreate_ByID(t *testing.T) {
	categories := new(MockCategoryStore)
	resolver := NewCategoryResolver(categories, nil)

	category := &domain.Category{ID: uuid.New(), Name: "Work"}
	categories.On("GetByID", mock.Anything, category.ID).Return(category, nil)

	id, err := resolver.ResolveOrCreate(
		context.Background(),
		uuid.New(),
		ParseCategoryRef(category.ID.String()),
	)

	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, category.ID, *id)
	categories.AssertNotCalled(t, "Create")
}

func TestResolveOrCreate_UnknownIDFallsBackToName(t *testing.T) {
	categories := new(MockCategoryStore)
	resolver := NewCategoryResolver(categories, nil)

	unknownID := uuid.New()
	existing := &domain.Category{ID: uuid.New(), Name: unknownID.String()}
	categories.On("GetByID", mock.Anything, unknownID).Return(nil, store.ErrCategoryNotFound)
	categories.On("GetByName", mock.Anything, unknownID.String()).Return(existing, nil)

	id, err := resolver.ResolveOrCreate(
		context.Background(),
		uuid.New(),
		ParseCategoryRef(unknownID.String()),
	)

	require.NoError(t, err)
	assert.Equal(t, existing.ID, *id)
	categories.AssertNotCalled(t, "Create")
}

func TestResolveOrCreate_ByName(t *testing.T) {
	categories := new(MockCategoryStore)
	resolver := NewCategoryResolver(categories, nil)

	category := &domain.Category{ID: uuid.New(), Name: "Work"}
	categories.On("GetByName", mock.Anything, "work").Return(category, nil)

	id, err := resolver.ResolveOrCreate(context.Background(), uuid.New(), ParseCategoryRef("work"))

	require.NoError(t, err)
	assert.Equal(t, category.ID, *id)
	categories.AssertNotCalled(t, "GetByID")
	categories.AssertNotCalled(t, "Create")
}

func TestResolveOrCreate_CreatesOnMiss(t *testing.T) {
	categories := new(MockCategoryStore)
	resolver := NewCategoryResolver(categories, nil)

	ownerID := uuid.New()
	categories.On("GetByName", mock.Anything, "Errands").Return(nil, store.ErrCategoryNotFound)
	categories.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
		return c.Name == "Errands" && c.UserID != nil && *c.UserID == ownerID
	})).Return(nil)

	id, err := resolver.ResolveOrCreate(context.Background(), ownerID, ParseCategoryRef("Errands"))

	require.NoError(t, err)
	require.NotNil(t, id)
	categories.AssertExpectations(t)
}

func TestResolveOrCreate_PropagatesStoreErrors(t *testing.T) {
	categories := new(MockCategoryStore)
	resolver := NewCategoryResolver(categories, nil)

	storeErr := errors.New("connection reset")
	categories.On("GetByName", mock.Anything, "Work").Return(nil, storeErr)

	_, err := resolver.ResolveOrCreate(context.Background(), uuid.New(), ParseCategoryRef("Work"))

	assert.ErrorIs(t, err, storeErr)
	categories.AssertNotCalled(t, "Create")
}

func TestResolve_NeverCreates(t *testing.T) {
	categories := new(MockCategoryStore)
	resolver := NewCategoryResolver(categories, nil)

	categories.On("GetByName", mock.Anything, "Nowhere").Return(nil, store.ErrCategoryNotFound)

	_, err := resolver.Resolve(context.Background(), ParseCategoryRef("Nowhere"))

	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
	categories.AssertNotCalled(t, "Create")
}

func TestResolve_EmptyRefIsNotFound(t *testing.T) {
	categories := new(MockCategoryStore)
	resolver := NewCategoryResolver(categories, nil)

	_, err := resolver.Resolve(context.Background(), ParseCategoryRef(""))

	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestResolve_ByID(t *testing.T) {
	categories := new(MockCategoryStore)
	resolver := NewCategoryResolver(categories, nil)

	category := &domain.Category{ID: uuid.New(), Name: "Work"}
	categories.On("GetByID", mock.Anything, category.ID).Return(category, nil)

	id, err := resolver.Resolve(context.Background(), ParseCategoryRef(category.ID.String()))

	require.NoError(t, err)
	assert.Equal(t, category.ID, id)
}
