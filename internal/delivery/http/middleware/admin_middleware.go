package middleware

import (
	"net/http"

	"shipzone-backend/internal/domain"
	"shipzone-backend/pkg/utils"
)

// AdminMiddleware lets through users allowed to manage shipping settings.
// MUST be used AFTER AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
		if !ok || user == nil {
			utils.WriteRESTError(w, http.StatusUnauthorized, "rest_not_logged_in", "You are not currently logged in.")
			return
		}

		if !user.CanManageShipping() {
			utils.WriteRESTError(w, http.StatusForbidden, "rest_forbidden", "Sorry, you are not allowed to manage shipping zones.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
