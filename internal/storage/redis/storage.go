package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jkwan-hk/eatery/internal/model"
	"github.com/jkwan-hk/eatery/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
//
// Restaurant documents are stored as JSON blobs with grades kept out of the
// blob: the ordered grade list lives in a Redis list and the set of raters in
// a Redis set. SAdd on the rater set is the atomic one-grade-per-user claim,
// so concurrent raters never overwrite each other's entries and a document
// replace never loses grades recorded in between.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// SetNX is the atomic uniqueness check: the first writer wins
	ok, err := s.client.SetNX(ctx, userKey(user.Username), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrUsernameTaken
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Restaurant operations

func (s *Storage) CreateRestaurant(ctx context.Context, r *model.Restaurant) (model.RestaurantID, error) {
	id := newRestaurantID()

	doc := *r
	doc.ID = id
	doc.Grades = nil // grades live in their own list
	data, err := json.Marshal(&doc)
	if err != nil {
		return "", err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, restaurantKey(id), data, 0)
	pipe.SAdd(ctx, restaurantIndexKey(), string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Storage) GetRestaurant(ctx context.Context, id model.RestaurantID) (*model.Restaurant, error) {
	data, err := s.client.Get(ctx, restaurantKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRestaurantNotFound
		}
		return nil, err
	}

	var r model.Restaurant
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	grades, err := s.getGrades(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Grades = grades

	return &r, nil
}

func (s *Storage) ListRestaurants(ctx context.Context, filter model.RestaurantFilter) ([]*model.Restaurant, error) {
	ids, err := s.client.SMembers(ctx, restaurantIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.Restaurant{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = restaurantKey(model.RestaurantID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make([]*model.Restaurant, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // deleted between SMembers and MGet
		}
		var r model.Restaurant
		if err := json.Unmarshal([]byte(val.(string)), &r); err != nil {
			continue // skip invalid data
		}
		if !filter.Matches(&r) {
			continue
		}
		// Listing projection: no photo bytes, no grades
		r.Photo = nil
		result = append(result, &r)
	}

	return result, nil
}

func (s *Storage) ReplaceRestaurant(ctx context.Context, r *model.Restaurant) error {
	exists, err := s.client.Exists(ctx, restaurantKey(r.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrRestaurantNotFound
	}

	doc := *r
	doc.Grades = nil
	data, err := json.Marshal(&doc)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, restaurantKey(r.ID), data, 0).Err()
}

func (s *Storage) DeleteRestaurant(ctx context.Context, id model.RestaurantID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, restaurantKey(id))
	pipe.Del(ctx, gradesKey(id))
	pipe.Del(ctx, ratersKey(id))
	pipe.SRem(ctx, restaurantIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) AddGrade(ctx context.Context, id model.RestaurantID, grade model.Grade) error {
	exists, err := s.client.Exists(ctx, restaurantKey(id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrRestaurantNotFound
	}

	// SAdd is the atomic claim on the (restaurant, user) pair
	added, err := s.client.SAdd(ctx, ratersKey(id), grade.User).Result()
	if err != nil {
		return err
	}
	if added == 0 {
		return model.ErrAlreadyRated
	}

	data, err := json.Marshal(grade)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, gradesKey(id), data).Err()
}

// getGrades loads a restaurant's grade list in insertion order
func (s *Storage) getGrades(ctx context.Context, id model.RestaurantID) ([]model.Grade, error) {
	entries, err := s.client.LRange(ctx, gradesKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, nil
	}

	grades := make([]model.Grade, 0, len(entries))
	for _, entry := range entries {
		var g model.Grade
		if err := json.Unmarshal([]byte(entry), &g); err != nil {
			continue // skip invalid data
		}
		grades = append(grades, g)
	}
	return grades, nil
}

// newRestaurantID generates a random opaque record id
func newRestaurantID() model.RestaurantID {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return model.RestaurantID("r_" + hex.EncodeToString(b))
}
