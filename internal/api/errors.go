package api

import (
	"errors"
	"net/http"

	"github.com/orbit-app/orbit-api/internal/api/shared"
	"github.com/orbit-app/orbit-api/internal/domain"
	"github.com/orbit-app/orbit-api/internal/service"
	"github.com/orbit-app/orbit-api/internal/service/auth"
	"github.com/orbit-app/orbit-api/internal/store"
)

// MapErrorToStatusCode translates the service and store error taxonomy into
// HTTP status codes. Handlers that need a different mapping (for instance
// hiding the existence of a resource) override it locally.
func MapErrorToStatusCode(err error) int {
	var inUse *service.CategoryInUseError

	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.As(err, &inUse),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		isDomainValidationError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for the given error.
// Internal errors are reduced to a generic message; the detailed error is
// only ever logged.
func GetSafeErrorMessage(err error) string {
	var inUse *service.CategoryInUseError

	switch {
	case err == nil:
		return ""

	case errors.As(err, &inUse):
		return inUse.Error()

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username is already taken"
	case errors.Is(err, store.ErrEmailExists):
		return "Email is already registered"
	case errors.Is(err, store.ErrCategoryExists):
		return "Category already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		isDomainValidationError(err):
		return err.Error()

	default:
		return "An internal error occurred"
	}
}

// HandleServiceError maps err to a status and safe message and writes the
// error response, logging the underlying error.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// isDomainValidationError reports whether err is one of the domain's field
// validation sentinels.
func isDomainValidationError(err error) bool {
	validationErrors := []error{
		domain.ErrTaskIDEmpty,
		domain.ErrTaskUserIDEmpty,
		domain.ErrTaskTitleEmpty,
		domain.ErrInvalidTaskPriority,
		domain.ErrInvalidTaskStatus,
		domain.ErrInvalidTaskProgress,
		domain.ErrCategoryIDEmpty,
		domain.ErrCategoryNameEmpty,
		domain.ErrEmptyUserID,
		domain.ErrEmptyUsername,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrInvalidRole,
		domain.ErrEmptyHashedPassword,
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
