package middleware

import (
	"context"
	"net/http"

	"dsaprep/internal/models"
	"dsaprep/internal/utils"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	usernameKey contextKey = "username"
	adminKey    contextKey = "admin"
)

// RequireAuth validates the bearer token and stores the caller's identity
// on the request context.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, secret)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: "Missing or invalid token",
				})
				return
			}
			uid, err := utils.GetUserIDFromClaims(claims)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: "Missing or invalid token",
				})
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, uid)
			if username, ok := claims["username"].(string); ok {
				ctx = context.WithValue(ctx, usernameKey, username)
			}
			ctx = context.WithValue(ctx, adminKey, utils.IsAdminFromClaims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose token lacks the admin flag. Must run
// after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
				Code:    "forbidden",
				Message: "Admin access required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID returns the authenticated user id stored by RequireAuth.
func UserID(ctx context.Context) string {
	uid, _ := ctx.Value(userIDKey).(string)
	return uid
}

// Username returns the authenticated username, if present in the token.
func Username(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey).(string)
	return name
}

// IsAdmin reports whether the caller's token carries the admin flag.
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(adminKey).(bool)
	return admin
}
