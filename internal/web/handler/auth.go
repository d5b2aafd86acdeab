package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jkwan-hk/eatery/internal/model"
	"github.com/jkwan-hk/eatery/internal/services/auth"
	"github.com/jkwan-hk/eatery/internal/session"
	"github.com/jkwan-hk/eatery/internal/web/middleware"
	"github.com/jkwan-hk/eatery/internal/web/view"
)

// AuthHandler handles sign-up, sign-in and sign-out
type AuthHandler struct {
	authService *auth.Service
	sessions    *session.Manager
	renderer    *view.Renderer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, sessions *session.Manager, renderer *view.Renderer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		renderer:    renderer,
	}
}

// SignInPage renders the sign-in page
func (h *AuthHandler) SignInPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetIdentity(r.Context()) != "" {
		// Already signed in, go home
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := view.SignInData{
		PageData: view.PageData{
			Title: "Sign in",
			Flash: middleware.GetFlash(r.Context()),
		},
	}
	renderPage(w, h.renderer, "signin", data)
}

// SignIn handles the sign-in form submission
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderSignInError(w, "Invalid form data", "")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.renderSignInError(w, "Username and password are required", username)
		return
	}

	identity, err := h.authService.SignIn(r.Context(), username, password)
	if err != nil {
		h.renderSignInError(w, "Invalid username or password", username)
		return
	}

	token, err := h.sessions.Issue(identity)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)
	middleware.SetFlash(w, "success", "Welcome back, "+username+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignUpPage renders the registration page
func (h *AuthHandler) SignUpPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetIdentity(r.Context()) != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := view.SignUpData{
		PageData: view.PageData{
			Title: "Sign up",
			Flash: middleware.GetFlash(r.Context()),
		},
	}
	renderPage(w, h.renderer, "signup", data)
}

// SignUp handles the registration form submission
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderSignUpError(w, "Invalid form data", "")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	passwordConfirm := r.FormValue("password_confirm")

	if username == "" || password == "" {
		h.renderSignUpError(w, "Username and password are required", username)
		return
	}

	err := h.authService.Register(r.Context(), username, password, passwordConfirm)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordMismatch):
			h.renderSignUpError(w, "Passwords do not match", username)
		case errors.Is(err, model.ErrUsernameTaken):
			h.renderSignUpError(w, "Username already taken", username)
		default:
			h.renderSignUpError(w, "Registration failed", username)
		}
		return
	}

	middleware.SetFlash(w, "success", "Account created! Please sign in.")
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}

// SignOut clears the session cookie
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been signed out")
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		MaxAge:   int(session.DefaultTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderSignInError(w http.ResponseWriter, errorMsg, username string) {
	data := view.SignInData{
		PageData:     view.PageData{Title: "Sign in"},
		FormUsername: username,
		Error:        errorMsg,
	}
	renderPage(w, h.renderer, "signin", data)
}

func (h *AuthHandler) renderSignUpError(w http.ResponseWriter, errorMsg, username string) {
	data := view.SignUpData{
		PageData:     view.PageData{Title: "Sign up"},
		FormUsername: username,
		Error:        errorMsg,
	}
	renderPage(w, h.renderer, "signup", data)
}
