package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jkwan-hk/eatery/internal/api/middleware"
	"github.com/jkwan-hk/eatery/internal/api/request"
	"github.com/jkwan-hk/eatery/internal/api/response"
	"github.com/jkwan-hk/eatery/internal/model"
	"github.com/jkwan-hk/eatery/internal/services/directory"
)

// RestaurantHandler handles restaurant directory endpoints
type RestaurantHandler struct {
	directory *directory.Service
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(directoryService *directory.Service) *RestaurantHandler {
	return &RestaurantHandler{
		directory: directoryService,
	}
}

// List handles GET /api/v1/restaurants
// Query parameters name, borough, cuisine and zipcode filter the listing;
// all given criteria must match.
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.RestaurantFilter{
		Name:    q.Get("name"),
		Borough: q.Get("borough"),
		Cuisine: q.Get("cuisine"),
		Zipcode: q.Get("zipcode"),
	}

	restaurants, err := h.directory.List(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RestaurantListFromModels(restaurants))
}

// Create handles POST /api/v1/restaurants
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetIdentity(r.Context())

	var req request.RestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	id, err := h.directory.Create(r.Context(), fieldsFromRequest(req), username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreatedResponse{ID: string(id)})
}

// Get handles GET /api/v1/restaurants/{id}
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.RestaurantID(mux.Vars(r)["id"])

	restaurant, err := h.directory.Show(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RestaurantFromModel(restaurant))
}

// Update handles PUT /api/v1/restaurants/{id}
// The body fully replaces the optional fields; the stored photo is kept
// unless new bytes or delete_photo are sent.
func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetIdentity(r.Context())
	id := model.RestaurantID(mux.Vars(r)["id"])

	var req request.RestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.directory.Update(r.Context(), id, fieldsFromRequest(req), username); err != nil {
		WriteError(w, err)
		return
	}

	restaurant, err := h.directory.Show(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RestaurantFromModel(restaurant))
}

// Delete handles DELETE /api/v1/restaurants/{id}
func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetIdentity(r.Context())
	id := model.RestaurantID(mux.Vars(r)["id"])

	if err := h.directory.Delete(r.Context(), id, username); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Rate handles POST /api/v1/restaurants/{id}/grades
func (h *RestaurantHandler) Rate(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetIdentity(r.Context())
	id := model.RestaurantID(mux.Vars(r)["id"])

	var req request.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.directory.Rate(r.Context(), id, username, req.Score); err != nil {
		WriteError(w, err)
		return
	}

	restaurant, err := h.directory.Show(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RestaurantFromModel(restaurant))
}

// Photo handles GET /api/v1/restaurants/{id}/image
// Serves the raw photo bytes with the stored mimetype.
func (h *RestaurantHandler) Photo(w http.ResponseWriter, r *http.Request) {
	id := model.RestaurantID(mux.Vars(r)["id"])

	photo, mimetype, err := h.directory.GetImage(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	if mimetype == "" {
		mimetype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mimetype)
	_, _ = w.Write(photo)
}

// fieldsFromRequest converts an API request to service fields
func fieldsFromRequest(req request.RestaurantRequest) directory.Fields {
	fields := directory.Fields{
		Name:          req.Name,
		Borough:       req.Borough,
		Cuisine:       req.Cuisine,
		Street:        req.Street,
		Building:      req.Building,
		Zipcode:       req.Zipcode,
		Photo:         req.Photo,
		PhotoMimetype: req.PhotoMimetype,
		DeletePhoto:   req.DeletePhoto,
	}
	if req.Lat != nil {
		fields.Lat = strconv.FormatFloat(*req.Lat, 'f', -1, 64)
	}
	if req.Lng != nil {
		fields.Lng = strconv.FormatFloat(*req.Lng, 'f', -1, 64)
	}
	return fields
}
