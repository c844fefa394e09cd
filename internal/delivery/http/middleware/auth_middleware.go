package middleware

import (
	"context"
	"net/http"

	"shipzone-backend/internal/domain"
	"shipzone-backend/pkg/logger"
	"shipzone-backend/pkg/utils"
)

// AuthMiddleware resolves the caller from a bearer token or the accessToken cookie.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := utils.ExtractClaims(r)
		if err != nil {
			utils.WriteRESTError(w, http.StatusUnauthorized, "rest_not_logged_in", "Unauthorized: "+err.Error())
			return
		}

		// Token claims are trusted; there is no user table behind this service.
		user := &domain.User{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, user)
		reqLogger := logger.WithUserID(*logger.WithContext(ctx), user.ID)
		ctx = logger.NewContext(ctx, &reqLogger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
