package handler

import (
	"net/http"

	"github.com/jkwan-hk/eatery/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeInvalidCoordinate  = apierr.CodeInvalidCoordinate
	CodeInvalidScore       = apierr.CodeInvalidScore
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeNotOwner           = apierr.CodeNotOwner
	CodeUserNotFound       = apierr.CodeUserNotFound
	CodeRestaurantNotFound = apierr.CodeRestaurantNotFound
	CodeNoPhoto            = apierr.CodeNoPhoto
	CodeUsernameTaken      = apierr.CodeUsernameTaken
	CodeAlreadyRated       = apierr.CodeAlreadyRated
	CodePasswordMismatch   = apierr.CodePasswordMismatch
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
