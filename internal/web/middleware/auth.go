package middleware

import (
	"context"
	"net/http"

	"github.com/jkwan-hk/eatery/internal/session"
)

type contextKey string

const (
	identityContextKey contextKey = "identity"
)

// GetIdentity retrieves the signed-in username from the request context
// Returns the empty string if no user is authenticated
func GetIdentity(ctx context.Context) string {
	username, _ := ctx.Value(identityContextKey).(string)
	return username
}

// Auth returns middleware that requires a valid session cookie
// Redirects to the sign-in page if not authenticated
func Auth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := identityFromSession(r, sessions)
			if username == "" {
				SetFlash(w, "info", "Please sign in to continue")
				http.Redirect(w, r, "/signin", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
// Sets the username in context if authenticated, empty otherwise
func OptionalAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := identityFromSession(r, sessions)
			ctx := context.WithValue(r.Context(), identityContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func identityFromSession(r *http.Request, sessions *session.Manager) string {
	cookie, err := r.Cookie("session")
	if err != nil {
		return ""
	}

	username, err := sessions.Verify(cookie.Value)
	if err != nil {
		return ""
	}

	return username
}
