package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// LoginRequest is the request body for signing in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RestaurantRequest is the request body for creating or replacing a
// restaurant. All fields are optional; empty fields are omitted from the
// stored record. Photo bytes travel base64-encoded.
type RestaurantRequest struct {
	Name          string   `json:"name,omitempty"`
	Borough       string   `json:"borough,omitempty"`
	Cuisine       string   `json:"cuisine,omitempty"`
	Street        string   `json:"street,omitempty"`
	Building      string   `json:"building,omitempty"`
	Zipcode       string   `json:"zipcode,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
	Photo         []byte   `json:"photo,omitempty"`
	PhotoMimetype string   `json:"photo_mimetype,omitempty"`
	DeletePhoto   bool     `json:"delete_photo,omitempty"`
}

// RateRequest is the request body for rating a restaurant
type RateRequest struct {
	Score int `json:"score"`
}
