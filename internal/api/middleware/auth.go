package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jkwan-hk/eatery/internal/api/apierr"
	"github.com/jkwan-hk/eatery/internal/session"
)

type contextKey string

const (
	identityContextKey contextKey = "identity"
)

// Auth creates authentication middleware
func Auth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			username, err := sessions.Verify(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetIdentity returns the authenticated username from the request context
func GetIdentity(ctx context.Context) string {
	username, _ := ctx.Value(identityContextKey).(string)
	return username
}

// MustGetIdentity returns the authenticated username or panics
func MustGetIdentity(ctx context.Context) string {
	username := GetIdentity(ctx)
	if username == "" {
		panic("no identity in context - auth middleware not applied?")
	}
	return username
}
