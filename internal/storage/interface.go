package storage

import (
	"context"

	"github.com/jkwan-hk/eatery/internal/model"
)

// Storage defines the interface for data persistence over the two record
// collections: users and restaurants. The backing store is treated as an
// opaque key/predicate store providing atomic single-record operations.
type Storage interface {
	// User operations
	//
	// CreateUser fails with model.ErrUsernameTaken if a user with the
	// same username already exists. The check-and-insert is atomic.
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, username string) (*model.User, error)

	// Restaurant operations
	//
	// CreateRestaurant assigns and returns an opaque id.
	// ListRestaurants applies the filter as a conjunction of exact-match
	// criteria and returns a listing projection: photo bytes and grades
	// are omitted. Order follows the store's natural order.
	// ReplaceRestaurant overwrites the stored record with the given one
	// in a single atomic write, preserving any grades already recorded;
	// it fails with model.ErrRestaurantNotFound if the id is absent.
	// DeleteRestaurant is idempotent.
	CreateRestaurant(ctx context.Context, r *model.Restaurant) (model.RestaurantID, error)
	GetRestaurant(ctx context.Context, id model.RestaurantID) (*model.Restaurant, error)
	ListRestaurants(ctx context.Context, filter model.RestaurantFilter) ([]*model.Restaurant, error)
	ReplaceRestaurant(ctx context.Context, r *model.Restaurant) error
	DeleteRestaurant(ctx context.Context, id model.RestaurantID) error

	// AddGrade appends a grade atomically with respect to concurrent
	// raters: two different users rating the same restaurant at once must
	// both end up recorded. Fails with model.ErrAlreadyRated if the user
	// already has a grade, model.ErrRestaurantNotFound if the id is absent.
	AddGrade(ctx context.Context, id model.RestaurantID, grade model.Grade) error
}
