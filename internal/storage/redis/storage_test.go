package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/jkwan-hk/eatery/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user := &model.User{Username: "alice", PasswordHash: "$2a$10$hash"}

	err := s.storage.CreateUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)
	s.Equal("$2a$10$hash", retrieved.PasswordHash)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestCreateUserDuplicate() {
	s.Require().NoError(s.storage.CreateUser(s.ctx, &model.User{Username: "alice", PasswordHash: "h1"}))

	err := s.storage.CreateUser(s.ctx, &model.User{Username: "alice", PasswordHash: "h2"})
	s.ErrorIs(err, model.ErrUsernameTaken)

	retrieved, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("h1", retrieved.PasswordHash)
}

// Restaurant tests

func (s *StorageSuite) TestCreateAndGetRestaurant() {
	id, err := s.storage.CreateRestaurant(s.ctx, &model.Restaurant{
		Name:    "Katz's",
		Borough: "Manhattan",
		Owner:   "alice",
	})
	s.Require().NoError(err)
	s.NotEmpty(id)

	retrieved, err := s.storage.GetRestaurant(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(id, retrieved.ID)
	s.Equal("Katz's", retrieved.Name)
	s.Equal("alice", retrieved.Owner)
}

func (s *StorageSuite) TestGetRestaurantNotFound() {
	_, err := s.storage.GetRestaurant(s.ctx, "r_nonexistent")
	s.ErrorIs(err, model.ErrRestaurantNotFound)
}

func (s *StorageSuite) TestGetRestaurantWithAddressAndCoord() {
	id, err := s.storage.CreateRestaurant(s.ctx, &model.Restaurant{
		Name:  "Located",
		Owner: "alice",
		Address: &model.Address{
			Street:   "Broadway",
			Building: "123",
			Zipcode:  "10001",
			Coord:    &model.Coord{Lat: 40.75, Lng: -73.99},
		},
	})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRestaurant(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(retrieved.Address)
	s.Equal("Broadway", retrieved.Address.Street)
	s.Require().NotNil(retrieved.Address.Coord)
	s.InDelta(40.75, retrieved.Address.Coord.Lat, 1e-9)
	s.InDelta(-73.99, retrieved.Address.Coord.Lng, 1e-9)
}

func (s *StorageSuite) TestListRestaurants() {
	_, err := s.storage.CreateRestaurant(s.ctx, &model.Restaurant{Name: "A", Borough: "Queens", Owner: "alice"})
	s.Require().NoError(err)
	_, err = s.storage.CreateRestaurant(s.ctx, &model.Restaurant{Name: "B", Borough: "Brooklyn", Owner: "alice"})
	s.Require().NoError(err)

	all, err := s.storage.ListRestaurants(s.ctx, model.RestaurantFilter{})
	s.Require().NoError(err)
	s.Len(all, 2)

	filtered, err := s.storage.ListRestaurants(s.ctx, model.RestaurantFilter{Borough: "Queens"})
	s.Require().NoError(err)
	s.Require().Len(filtered, 1)
	s.Equal("A", filtered[0].Name)
}

func (s *StorageSuite) TestListProjectionOmitsPhotoAndGrades() {
	id, err := s.storage.CreateRestaurant(s.ctx, &model.Restaurant{
		Name:  "Photogenic",
		Owner: "alice",
		Photo: []byte{1, 2, 3},
	})
	s.Require().NoError(err)
	s.Require().NoError(s.storage.AddGrade(s.ctx, id, model.Grade{User: "bob", Score: 4}))

	list, err := s.storage.ListRestaurants(s.ctx, model.RestaurantFilter{})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Nil(list[0].Photo)
	s.Nil(list[0].Grades)

	full, err := s.storage.GetRestaurant(s.ctx, id)
	s.Require().NoError(err)
	s.NotEmpty(full.Photo)
	s.Len(full.Grades, 1)
}

func (s *StorageSuite) TestReplaceRestaurant() {
	id, err := s.storage.CreateRestaurant(s.ctx, &model.Restaurant{Name: "Old", Borough: "Bronx", Owner: "alice"})
	s.Require().NoError(err)

	err = s.storage.ReplaceRestaurant(s.ctx, &model.Restaurant{ID: id, Name: "New", Owner: "alice"})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRestaurant(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("New", retrieved.Name)
	s.Empty(retrieved.Borough)
}

func (s *StorageSuite) TestReplaceRestaurantNotFound() {
	err := s.storage.ReplaceRestaurant(s.ctx, &model.Restaurant{ID: "r_nonexistent", Owner: "alice"})
	s.ErrorIs(err, model.ErrRestaurantNotFound)
}

func (s *StorageSuite) TestReplaceRestaurantPreservesGrades() {
	id, err := s.storage.CreateRestaurant(s.ctx, &model.Restaurant{Name: "Rated", Owner: "alice"})
	s.Require().NoError(err)
	s.Require().NoError(s.storage.AddGrade(s.ctx, id, model.Grade{User: "bob", Score: 5}))

	// Grades live outside the document blob, so a replace can't drop them
	err = s.storage.ReplaceRestaurant(s.ctx, &model.Restaurant{ID: id, Name: "Renamed", Owner: "alice"})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRestaurant(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(retrieved.Grades, 1)
	s.Equal("bob", retrieved.Grades[0].User)
	s.Equal(5, retrieved.Grades[0].Score)
}

func (s *StorageSuite) TestDeleteRestaurant() {
	id, err := s.storage.CreateRestaurant(s.ctx, &model.Restaurant{Name: "Gone", Owner: "alice"})
	s.Require().NoError(err)
	s.Require().NoError(s.storage.AddGrade(s.ctx, id, model.Grade{User: "bob", Score: 3}))

	s.Require().NoError(s.storage.DeleteRestaurant(s.ctx, id))

	_, err = s.storage.GetRestaurant(s.ctx, id)
	s.ErrorIs(err, model.ErrRestaurantNotFound)

	list, err := s.storage.ListRestaurants(s.ctx, model.RestaurantFilter{})
	s.Require().NoError(err)
	s.Empty(list)

	// Idempotent
	s.NoError(s.storage.DeleteRestaurant(s.ctx, id))
}

func (s *StorageSuite) TestDeleteClearsRaterSet() {
	id, err := s.storage.CreateRestaurant(s.ctx, &model.Restaurant{Name: "Recycled", Owner: "alice"})
	s.Require().NoError(err)
	s.Require().NoError(s.storage.AddGrade(s.ctx, id, model.Grade{User: "bob", Score: 3}))
	s.Require().NoError(s.storage.DeleteRestaurant(s.ctx, id))

	// Nothing from the deleted record lingers in Redis
	s.Empty(s.mini.Keys())
}

// Grade tests

func (s *StorageSuite) TestAddGrade() {
	id, err := s.storage.CreateRestaurant(s.ctx, &model.Restaurant{Name: "Rated", Owner: "alice"})
	s.Require().NoError(err)

	s.Require().NoError(s.storage.AddGrade(s.ctx, id, model.Grade{User: "bob", Score: 4}))
	s.Require().NoError(s.storage.AddGrade(s.ctx, id, model.Grade{User: "carol", Score: 2}))

	retrieved, err := s.storage.GetRestaurant(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(retrieved.Grades, 2)
	s.Equal("bob", retrieved.Grades[0].User)
	s.Equal(4, retrieved.Grades[0].Score)
	s.Equal("carol", retrieved.Grades[1].User)
}

func (s *StorageSuite) TestAddGradeSameUserTwice() {
	id, err := s.storage.CreateRestaurant(s.ctx, &model.Restaurant{Name: "Rated", Owner: "alice"})
	s.Require().NoError(err)

	s.Require().NoError(s.storage.AddGrade(s.ctx, id, model.Grade{User: "bob", Score: 4}))
	err = s.storage.AddGrade(s.ctx, id, model.Grade{User: "bob", Score: 1})
	s.ErrorIs(err, model.ErrAlreadyRated)

	retrieved, err := s.storage.GetRestaurant(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(retrieved.Grades, 1)
	s.Equal(4, retrieved.Grades[0].Score)
}

func (s *StorageSuite) TestAddGradeRestaurantNotFound() {
	err := s.storage.AddGrade(s.ctx, "r_nonexistent", model.Grade{User: "bob", Score: 4})
	s.ErrorIs(err, model.ErrRestaurantNotFound)
}

func (s *StorageSuite) TestAddGradeConcurrentDistinctUsers() {
	id, err := s.storage.CreateRestaurant(s.ctx, &model.Restaurant{Name: "Rated", Owner: "alice"})
	s.Require().NoError(err)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", i)
			s.NoError(s.storage.AddGrade(s.ctx, id, model.Grade{User: user, Score: 1 + i%5}))
		}(i)
	}
	wg.Wait()

	retrieved, err := s.storage.GetRestaurant(s.ctx, id)
	s.Require().NoError(err)
	s.Len(retrieved.Grades, workers)
}
