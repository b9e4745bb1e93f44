package middleware

import (
	"context"
	"net/http"
	"strings"

	"event-booking-api/internal/models"
)

type contextKey string

const (
	// UserContextKey holds the authenticated *models.User
	UserContextKey contextKey = "user"
	// TokenContextKey holds the raw bearer token the user presented, so
	// logout can remove exactly that token from the active set.
	TokenContextKey contextKey = "token"
)

// Authenticator resolves a bearer token to a user
type Authenticator interface {
	Authenticate(rawToken string) (*models.User, error)
}

// AuthMiddleware guards protected routes with bearer-token authentication
type AuthMiddleware struct {
	auth Authenticator
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth rejects requests without a valid, non-revoked bearer token
// and attaches the resolved user and presented token to the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeUnauthorized(w)
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		user, err := m.auth.Authenticate(raw)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		ctx = context.WithValue(ctx, TokenContextKey, raw)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated user attached by RequireAuth
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}

// TokenFromContext returns the raw bearer token attached by RequireAuth
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenContextKey).(string)
	return token, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"type":"Error","message":"notAuthenticated","statusCode":401}`))
}
