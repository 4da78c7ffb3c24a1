package middleware

import (
	"context"
	"net/http"
	"strings"

	"paddy-backend/internal/auth"
	"paddy-backend/internal/models"
	"paddy-backend/internal/repositories"
)

type contextKey string

const tenantContextKey contextKey = "tenant_context"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	userRepo   *repositories.UserRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, userRepo: userRepo}
}

// Authenticate validates the bearer token and resolves the tenant context
// every downstream operation runs under. The user row is re-read so a
// deactivation takes effect immediately, not at token expiry.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		user, err := m.userRepo.Get(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "User not found", http.StatusUnauthorized)
			return
		}
		if !user.IsActive {
			http.Error(w, "Account suspended. Please contact administrator.", http.StatusForbidden)
			return
		}

		tc := models.TenantContext{
			TenantID: user.TenantID,
			UserID:   user.ID,
			Role:     user.Role,
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tenantContextKey, tc)))
	})
}

// TenantFromContext extracts the tenant context set by Authenticate.
func TenantFromContext(ctx context.Context) (models.TenantContext, bool) {
	tc, ok := ctx.Value(tenantContextKey).(models.TenantContext)
	return tc, ok
}

// RequireRole gates a route to the given roles. It runs after Authenticate.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc, ok := TenantFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			for _, role := range allowedRoles {
				if tc.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}
