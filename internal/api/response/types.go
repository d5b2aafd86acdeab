package response

import (
	"time"

	"github.com/jkwan-hk/eatery/internal/model"
)

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Username     string `json:"username"`
	SessionToken string `json:"session_token,omitempty"`
}

// Coord represents a geographic coordinate pair
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address represents a postal address
type Address struct {
	Street   string `json:"street,omitempty"`
	Building string `json:"building,omitempty"`
	Zipcode  string `json:"zipcode,omitempty"`
	Coord    *Coord `json:"coord,omitempty"`
}

// Grade represents a single user rating
type Grade struct {
	User  string `json:"user"`
	Score int    `json:"score"`
}

// Restaurant represents a full restaurant record in API responses.
// Photo bytes are never inlined; HasPhoto signals that the photo
// endpoint will serve them.
type Restaurant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Borough      string    `json:"borough,omitempty"`
	Cuisine      string    `json:"cuisine,omitempty"`
	Address      *Address  `json:"address,omitempty"`
	HasPhoto     bool      `json:"has_photo"`
	Owner        string    `json:"owner"`
	Grades       []Grade   `json:"grades"`
	AverageScore *float64  `json:"average_score,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RestaurantFromModel converts a model.Restaurant to a response Restaurant
func RestaurantFromModel(r *model.Restaurant) Restaurant {
	resp := Restaurant{
		ID:        string(r.ID),
		Name:      r.Name,
		Borough:   r.Borough,
		Cuisine:   r.Cuisine,
		HasPhoto:  len(r.Photo) > 0,
		Owner:     r.Owner,
		Grades:    make([]Grade, 0, len(r.Grades)),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if r.Address != nil {
		addr := &Address{
			Street:   r.Address.Street,
			Building: r.Address.Building,
			Zipcode:  r.Address.Zipcode,
		}
		if r.Address.Coord != nil {
			addr.Coord = &Coord{Lat: r.Address.Coord.Lat, Lng: r.Address.Coord.Lng}
		}
		resp.Address = addr
	}

	for _, g := range r.Grades {
		resp.Grades = append(resp.Grades, Grade{User: g.User, Score: g.Score})
	}
	if avg, ok := r.AverageScore(); ok {
		resp.AverageScore = &avg
	}

	return resp
}

// RestaurantSummary is the listing projection: no grades, no photo
type RestaurantSummary struct {
	ID      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	Borough string   `json:"borough,omitempty"`
	Cuisine string   `json:"cuisine,omitempty"`
	Address *Address `json:"address,omitempty"`
	Owner   string   `json:"owner"`
}

// RestaurantSummaryFromModel converts a model.Restaurant to a summary
func RestaurantSummaryFromModel(r *model.Restaurant) RestaurantSummary {
	summary := RestaurantSummary{
		ID:      string(r.ID),
		Name:    r.Name,
		Borough: r.Borough,
		Cuisine: r.Cuisine,
		Owner:   r.Owner,
	}
	if r.Address != nil {
		addr := &Address{
			Street:   r.Address.Street,
			Building: r.Address.Building,
			Zipcode:  r.Address.Zipcode,
		}
		if r.Address.Coord != nil {
			addr.Coord = &Coord{Lat: r.Address.Coord.Lat, Lng: r.Address.Coord.Lng}
		}
		summary.Address = addr
	}
	return summary
}

// RestaurantList is the response for listing and search endpoints
type RestaurantList struct {
	Restaurants []RestaurantSummary `json:"restaurants"`
}

// RestaurantListFromModels converts a slice of restaurants to a list response
func RestaurantListFromModels(restaurants []*model.Restaurant) RestaurantList {
	list := RestaurantList{Restaurants: make([]RestaurantSummary, 0, len(restaurants))}
	for _, r := range restaurants {
		list.Restaurants = append(list.Restaurants, RestaurantSummaryFromModel(r))
	}
	return list
}

// CreatedResponse is the response for creation endpoints
type CreatedResponse struct {
	ID string `json:"id"`
}
