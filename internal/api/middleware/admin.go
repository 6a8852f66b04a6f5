package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/orbit-app/orbit-api/internal/api/shared"
	"github.com/orbit-app/orbit-api/internal/store"
)

// AdminMiddleware gates routes that require the admin capability.
// It must run after AuthMiddleware.Authenticate; the role is looked up from
// the user store rather than carried in the token, so revoking admin takes
// effect immediately.
type AdminMiddleware struct {
	userStore store.UserStore
}

// NewAdminMiddleware creates a new AdminMiddleware with the given dependencies.
func NewAdminMiddleware(userStore store.UserStore) *AdminMiddleware {
	return &AdminMiddleware{
		userStore: userStore,
	}
}

// RequireAdmin rejects requests from users without the admin role.
func (m *AdminMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
			return
		}

		user, err := m.userStore.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "User not found")
				return
			}
			slog.Error("failed to load user for admin check", "error", err, "user_id", userID)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authorization error")
			return
		}

		if !user.IsAdmin() {
			shared.RespondWithError(w, r, http.StatusForbidden, "Require admin role")
			return
		}

		next.ServeHTTP(w, r)
	})
}
