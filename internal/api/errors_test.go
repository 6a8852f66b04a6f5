package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/orbit-app/orbit-api/internal/domain"
	"github.com/orbit-app/orbit-api/internal/service"
	"github.com/orbit-app/orbit-api/internal/service/auth"
	"github.com/orbit-app/orbit-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"category not found", store.ErrCategoryNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"duplicate username", store.ErrUsernameExists, http.StatusConflict},
		{"duplicate category", store.ErrCategoryExists, http.StatusConflict},
		{"category in use", &service.CategoryInUseError{Count: 2}, http.StatusConflict},
		{"empty title", domain.ErrTaskTitleEmpty, http.StatusBadRequest},
		{"bad priority", domain.ErrInvalidTaskPriority, http.StatusBadRequest},
		{"bad progress", domain.ErrInvalidTaskProgress, http.StatusBadRequest},
		{"empty category name", domain.ErrCategoryNameEmpty, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", domain.ErrUnauthorized, http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	// Internal detail never reaches the client
	assert.Equal(t, "An internal error occurred",
		GetSafeErrorMessage(errors.New("pq: connection to 10.0.0.3 refused")))

	// Not-found errors name the entity without leaking the cause
	assert.Equal(t, "Task not found",
		GetSafeErrorMessage(fmt.Errorf("get task: %w", store.ErrTaskNotFound)))
	assert.Equal(t, "Category not found", GetSafeErrorMessage(store.ErrCategoryNotFound))

	// The in-use message carries the blocking task count
	msg := GetSafeErrorMessage(&service.CategoryInUseError{Count: 3})
	assert.Contains(t, msg, "3")

	// Validation errors are safe to forward verbatim
	assert.Equal(t, domain.ErrTaskTitleEmpty.Error(),
		GetSafeErrorMessage(domain.ErrTaskTitleEmpty))
}
