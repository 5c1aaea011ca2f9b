package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"civictrack/models"
	"civictrack/service"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware validates bearer tokens and scopes requests by role
type AuthMiddleware struct {
	userService *service.UserService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(userService *service.UserService) *AuthMiddleware {
	return &AuthMiddleware{userService: userService}
}

// RequireAuth accepts any valid token and sets the user in context
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return m.require("", next)
}

// RequireRole returns middleware that only admits tokens of the given role.
// Citizen tokens are rejected on government endpoints and vice versa.
func (m *AuthMiddleware) RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.require(role, next)
	}
}

func (m *AuthMiddleware) require(role models.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Authorization header required. Please log in.")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid authorization format. Expected: Bearer <token>")
			return
		}

		user, err := m.userService.Authenticate(parts[1])
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token. Please log in again.")
			return
		}
		if role != "" && user.Role != role {
			respondWithError(w, http.StatusForbidden, "Forbidden", "This endpoint requires a "+string(role)+" account.")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser returns a copy of ctx carrying the authenticated user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user set by the auth middleware
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok && user != nil
}

func respondWithError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:   errorType,
		Message: message,
		Code:    statusCode,
	})
}
