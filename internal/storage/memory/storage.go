package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/jkwan-hk/eatery/internal/model"
	"github.com/jkwan-hk/eatery/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users       map[string]*model.User
	restaurants map[model.RestaurantID]*model.Restaurant
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:       make(map[string]*model.User),
		restaurants: make(map[model.RestaurantID]*model.Restaurant),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		return model.ErrUsernameTaken
	}
	s.users[user.Username] = user
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Restaurant operations

func (s *Storage) CreateRestaurant(ctx context.Context, r *model.Restaurant) (model.RestaurantID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := newRestaurantID()
	stored := *r
	stored.ID = id
	s.restaurants[id] = &stored
	return id, nil
}

func (s *Storage) GetRestaurant(ctx context.Context, id model.RestaurantID) (*model.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.restaurants[id]
	if !ok {
		return nil, model.ErrRestaurantNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *Storage) ListRestaurants(ctx context.Context, filter model.RestaurantFilter) ([]*model.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Restaurant
	for _, r := range s.restaurants {
		if filter.Matches(r) {
			copied := *r
			// Listing projection: no photo bytes, no grades
			copied.Photo = nil
			copied.Grades = nil
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *Storage) ReplaceRestaurant(ctx context.Context, r *model.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.restaurants[r.ID]
	if !ok {
		return model.ErrRestaurantNotFound
	}
	stored := *r
	// Grades are owned by AddGrade; a document replace never touches them
	stored.Grades = existing.Grades
	s.restaurants[r.ID] = &stored
	return nil
}

func (s *Storage) DeleteRestaurant(ctx context.Context, id model.RestaurantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.restaurants, id)
	return nil
}

func (s *Storage) AddGrade(ctx context.Context, id model.RestaurantID, grade model.Grade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[id]
	if !ok {
		return model.ErrRestaurantNotFound
	}
	if r.HasRated(grade.User) {
		return model.ErrAlreadyRated
	}
	r.Grades = append(r.Grades, grade)
	return nil
}

// newRestaurantID generates a random opaque record id
func newRestaurantID() model.RestaurantID {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return model.RestaurantID("r_" + hex.EncodeToString(b))
}
