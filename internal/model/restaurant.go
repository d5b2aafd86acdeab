package model

import "time"

// RestaurantID uniquely identifies a restaurant record
type RestaurantID string

// Coord is a latitude/longitude pair
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is the optional location sub-record of a restaurant.
// It is only present when at least one of its fields was supplied.
type Address struct {
	Street   string `json:"street,omitempty"`
	Building string `json:"building,omitempty"`
	Zipcode  string `json:"zipcode,omitempty"`
	Coord    *Coord `json:"coord,omitempty"`
}

// Grade is a single user's rating of a restaurant.
// At most one grade exists per (restaurant, user) pair.
type Grade struct {
	User  string `json:"user"`
	Score int    `json:"score"`
}

// Restaurant is a directory listing. Optional fields that were not supplied
// are absent from the record entirely, not stored as zero values.
// PhotoMimetype is present iff Photo is present.
type Restaurant struct {
	ID            RestaurantID `json:"id"`
	Name          string       `json:"name,omitempty"`
	Borough       string       `json:"borough,omitempty"`
	Cuisine       string       `json:"cuisine,omitempty"`
	Address       *Address     `json:"address,omitempty"`
	Photo         []byte       `json:"photo,omitempty"`
	PhotoMimetype string       `json:"photo_mimetype,omitempty"`
	Owner         string       `json:"owner"`
	Grades        []Grade      `json:"grades,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// HasRated reports whether the given user already graded this restaurant
func (r *Restaurant) HasRated(user string) bool {
	for _, g := range r.Grades {
		if g.User == user {
			return true
		}
	}
	return false
}

// AverageScore returns the mean of all grade scores.
// The boolean is false when no grades exist.
func (r *Restaurant) AverageScore() (float64, bool) {
	if len(r.Grades) == 0 {
		return 0, false
	}
	sum := 0
	for _, g := range r.Grades {
		sum += g.Score
	}
	return float64(sum) / float64(len(r.Grades)), true
}

// RestaurantFilter is the whitelisted set of exact-match criteria for
// listing and searching. Empty fields are ignored; present fields are
// combined as a conjunction. Client-supplied field names are never
// forwarded into a query predicate.
type RestaurantFilter struct {
	Name    string
	Borough string
	Cuisine string
	Zipcode string
}

// IsEmpty reports whether no criteria are set
func (f RestaurantFilter) IsEmpty() bool {
	return f == RestaurantFilter{}
}

// Matches reports whether the restaurant satisfies every set criterion
func (f RestaurantFilter) Matches(r *Restaurant) bool {
	if f.Name != "" && r.Name != f.Name {
		return false
	}
	if f.Borough != "" && r.Borough != f.Borough {
		return false
	}
	if f.Cuisine != "" && r.Cuisine != f.Cuisine {
		return false
	}
	if f.Zipcode != "" && (r.Address == nil || r.Address.Zipcode != f.Zipcode) {
		return false
	}
	return true
}
