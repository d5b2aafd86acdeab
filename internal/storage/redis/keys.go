package redis

import (
	"fmt"

	"github.com/jkwan-hk/eatery/internal/model"
)

// Key prefix for all directory data
const keyPrefix = "eatery"

// Key generation functions for each entity type

// userKey returns the Redis key for a User record
func userKey(username string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, username)
}

// restaurantKey returns the Redis key for a Restaurant record
func restaurantKey(id model.RestaurantID) string {
	return fmt.Sprintf("%s:restaurant:%s", keyPrefix, id)
}

// gradesKey returns the Redis key for a restaurant's ordered grade list
func gradesKey(id model.RestaurantID) string {
	return fmt.Sprintf("%s:grades:%s", keyPrefix, id)
}

// ratersKey returns the Redis key for the SET of usernames that have
// already graded a restaurant
func ratersKey(id model.RestaurantID) string {
	return fmt.Sprintf("%s:raters:%s", keyPrefix, id)
}

// restaurantIndexKey returns the Redis key for the SET of all restaurant ids
func restaurantIndexKey() string {
	return fmt.Sprintf("%s:idx:restaurants", keyPrefix)
}
