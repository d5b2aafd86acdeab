package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jkwan-hk/eatery/internal/model"
	"github.com/jkwan-hk/eatery/internal/services/auth"
	"github.com/jkwan-hk/eatery/internal/session"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidCoordinate  = "INVALID_COORDINATE"
	CodeInvalidScore       = "INVALID_SCORE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotOwner           = "NOT_OWNER"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeRestaurantNotFound = "RESTAURANT_NOT_FOUND"
	CodeNoPhoto            = "NO_PHOTO"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeAlreadyRated       = "ALREADY_RATED"
	CodePasswordMismatch   = "PASSWORD_MISMATCH"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrRestaurantNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRestaurantNotFound, "Restaurant not found"}}
	case errors.Is(err, model.ErrNoPhoto):
		return &httpError{http.StatusNotFound, APIError{CodeNoPhoto, "Restaurant has no photo"}}
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusConflict, APIError{CodeUsernameTaken, "Username already taken"}}
	case errors.Is(err, model.ErrAlreadyRated):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyRated, "You have already rated this restaurant"}}
	case errors.Is(err, model.ErrNotOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotOwner, "Only the owner can perform this action"}}
	case errors.Is(err, model.ErrInvalidCoordinate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCoordinate, "Latitude and longitude must both be valid numbers"}}
	case errors.Is(err, model.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScore, "Score must be an integer from 1 to 5"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrPasswordMismatch):
		return &httpError{http.StatusBadRequest, APIError{CodePasswordMismatch, "Passwords do not match"}}
	case errors.Is(err, session.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
