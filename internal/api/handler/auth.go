package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jkwan-hk/eatery/internal/api/request"
	"github.com/jkwan-hk/eatery/internal/api/response"
	"github.com/jkwan-hk/eatery/internal/services/auth"
	"github.com/jkwan-hk/eatery/internal/session"
)

// AuthHandler handles user-related endpoints
type AuthHandler struct {
	authService *auth.Service
	sessions    *session.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	confirm := req.PasswordConfirm
	if confirm == "" {
		confirm = req.Password
	}

	if err := h.authService.Register(r.Context(), req.Username, req.Password, confirm); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponse{Username: req.Username})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	identity, err := h.authService.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	token, err := h.sessions.Issue(identity)
	if err != nil {
		WriteError(w, NewInternalError())
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponse{
		Username:     req.Username,
		SessionToken: token,
	})
}
