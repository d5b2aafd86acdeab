package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")

	// Restaurant errors
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrNotOwner           = errors.New("not the owner of this restaurant")
	ErrNoPhoto            = errors.New("restaurant has no photo")
	ErrInvalidCoordinate  = errors.New("latitude and longitude must both be supplied and numeric")

	// Rating errors
	ErrAlreadyRated = errors.New("user has already rated this restaurant")
	ErrInvalidScore = errors.New("score must be an integer between 1 and 5")
)
