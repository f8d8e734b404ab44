package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/user/blogger-go/apperror"
)

// ContextKey is a custom type for context keys, preventing collisions with
// keys defined in other packages.
type ContextKey string

const (
	// UserIDKey is the context key under which the authenticated user's ID is stored.
	UserIDKey ContextKey = "userID"
	// EmailKey is the context key under which the authenticated user's email is stored.
	EmailKey ContextKey = "email"
)

// JWTMiddleware creates the authentication gate applied to protected routes.
// It reads the Authorization header, expects a "Bearer <token>" value,
// verifies the token, and attaches the resolved identity to the request
// context. On any failure the request is rejected with 401 before the
// handler runs — expired and invalid tokens alike.
func JWTMiddleware(ts *TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteError(w, r, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil))
				return
			}

			claims, err := ts.Verify(parts[1])
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					WriteError(w, r, apperror.NewAuthError("token has expired", err))
					return
				}
				WriteError(w, r, apperror.NewAuthError("Not authenticated", err))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext retrieves the authenticated user's ID set by the
// middleware. Returns 0 and false if it is absent.
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetEmailFromContext retrieves the authenticated user's email set by the
// middleware.
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}
