package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jkwan-hk/eatery/internal/model"
	"github.com/jkwan-hk/eatery/internal/services/directory"
	"github.com/jkwan-hk/eatery/internal/web/middleware"
	"github.com/jkwan-hk/eatery/internal/web/view"
)

// Photo uploads above this size are rejected before they reach storage
const maxPhotoBytes = 8 << 20

// RestaurantHandler handles the restaurant directory pages
type RestaurantHandler struct {
	directory *directory.Service
	renderer  *view.Renderer
}

// NewRestaurantHandler creates a new RestaurantHandler
func NewRestaurantHandler(directoryService *directory.Service, renderer *view.Renderer) *RestaurantHandler {
	return &RestaurantHandler{
		directory: directoryService,
		renderer:  renderer,
	}
}

// ListPage renders every restaurant in the directory
func (h *RestaurantHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.directory.List(r.Context(), model.RestaurantFilter{})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := view.ListData{
		PageData: view.PageData{
			Title:    "Restaurants",
			Username: middleware.GetIdentity(r.Context()),
			Flash:    middleware.GetFlash(r.Context()),
		},
		Restaurants: restaurants,
	}
	renderPage(w, h.renderer, "list", data)
}

// SearchPage renders the search form, with results when any criteria
// were submitted
func (h *RestaurantHandler) SearchPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.RestaurantFilter{
		Name:    strings.TrimSpace(q.Get("name")),
		Borough: strings.TrimSpace(q.Get("borough")),
		Cuisine: strings.TrimSpace(q.Get("cuisine")),
		Zipcode: strings.TrimSpace(q.Get("zipcode")),
	}

	data := view.SearchData{
		PageData: view.PageData{
			Title:    "Search",
			Username: middleware.GetIdentity(r.Context()),
			Flash:    middleware.GetFlash(r.Context()),
		},
		Name:    filter.Name,
		Borough: filter.Borough,
		Cuisine: filter.Cuisine,
		Zipcode: filter.Zipcode,
	}

	if !filter.IsEmpty() {
		results, err := h.directory.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		data.Searched = true
		data.Results = results
	}

	renderPage(w, h.renderer, "search", data)
}

// ShowPage renders a single restaurant with its ratings
func (h *RestaurantHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetIdentity(r.Context())

	restaurant, ok := h.lookup(w, r)
	if !ok {
		return
	}

	average, hasAverage := restaurant.AverageScore()
	data := view.ShowData{
		PageData: view.PageData{
			Title:    pageTitle(restaurant),
			Username: username,
			Flash:    middleware.GetFlash(r.Context()),
		},
		Restaurant:   restaurant,
		HasPhoto:     len(restaurant.Photo) > 0,
		Average:      average,
		HasAverage:   hasAverage,
		AlreadyRated: restaurant.HasRated(username),
	}
	renderPage(w, h.renderer, "show", data)
}

// NewPage renders the creation form
func (h *RestaurantHandler) NewPage(w http.ResponseWriter, r *http.Request) {
	data := view.NewData{
		PageData: view.PageData{
			Title:    "Add a restaurant",
			Username: middleware.GetIdentity(r.Context()),
			Flash:    middleware.GetFlash(r.Context()),
		},
	}
	renderPage(w, h.renderer, "new", data)
}

// Create handles the creation form submission
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetIdentity(r.Context())

	fields, err := parseRestaurantForm(r)
	if err != nil {
		h.renderNewError(w, r, "Invalid form data")
		return
	}

	id, err := h.directory.Create(r.Context(), fields, username)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCoordinate) {
			h.renderNewError(w, r, "Latitude and longitude must both be valid numbers")
			return
		}
		h.renderNewError(w, r, "Failed to create restaurant")
		return
	}

	middleware.SetFlash(w, "success", "Restaurant created")
	http.Redirect(w, r, "/restaurant/show?id="+string(id), http.StatusSeeOther)
}

// UpdatePage renders the edit form, owner only
func (h *RestaurantHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetIdentity(r.Context())

	restaurant, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if restaurant.Owner != username {
		middleware.SetFlash(w, "error", "Only the owner can edit a restaurant")
		http.Redirect(w, r, "/restaurant/show?id="+string(restaurant.ID), http.StatusSeeOther)
		return
	}

	data := view.UpdateData{
		PageData: view.PageData{
			Title:    "Edit " + pageTitle(restaurant),
			Username: username,
			Flash:    middleware.GetFlash(r.Context()),
		},
		Restaurant: restaurant,
		HasPhoto:   len(restaurant.Photo) > 0,
	}
	renderPage(w, h.renderer, "update", data)
}

// Update handles the edit form submission
func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetIdentity(r.Context())

	fields, err := parseRestaurantForm(r)
	if err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/restaurant/list", http.StatusSeeOther)
		return
	}
	id := model.RestaurantID(r.FormValue("id"))
	fields.DeletePhoto = r.FormValue("delete_photo") != ""

	err = h.directory.Update(r.Context(), id, fields, username)
	switch {
	case err == nil:
		middleware.SetFlash(w, "success", "Restaurant updated")
		http.Redirect(w, r, "/restaurant/show?id="+string(id), http.StatusSeeOther)
	case errors.Is(err, model.ErrRestaurantNotFound):
		h.renderNotFound(w, r)
	case errors.Is(err, model.ErrNotOwner):
		middleware.SetFlash(w, "error", "Only the owner can edit a restaurant")
		http.Redirect(w, r, "/restaurant/show?id="+string(id), http.StatusSeeOther)
	case errors.Is(err, model.ErrInvalidCoordinate):
		middleware.SetFlash(w, "error", "Latitude and longitude must both be valid numbers")
		http.Redirect(w, r, "/restaurant/update?id="+string(id), http.StatusSeeOther)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// DeletePage renders the delete confirmation, owner only
func (h *RestaurantHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetIdentity(r.Context())

	restaurant, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if restaurant.Owner != username {
		middleware.SetFlash(w, "error", "Only the owner can delete a restaurant")
		http.Redirect(w, r, "/restaurant/show?id="+string(restaurant.ID), http.StatusSeeOther)
		return
	}

	data := view.DeleteData{
		PageData: view.PageData{
			Title:    "Delete " + pageTitle(restaurant),
			Username: username,
			Flash:    middleware.GetFlash(r.Context()),
		},
		Restaurant: restaurant,
	}
	renderPage(w, h.renderer, "delete", data)
}

// Delete handles the delete confirmation submission
func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetIdentity(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id := model.RestaurantID(r.FormValue("id"))

	err := h.directory.Delete(r.Context(), id, username)
	switch {
	case err == nil:
		middleware.SetFlash(w, "success", "Restaurant deleted")
		http.Redirect(w, r, "/restaurant/list", http.StatusSeeOther)
	case errors.Is(err, model.ErrNotOwner):
		middleware.SetFlash(w, "error", "Only the owner can delete a restaurant")
		http.Redirect(w, r, "/restaurant/show?id="+string(id), http.StatusSeeOther)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// RatePage renders the rating form
func (h *RestaurantHandler) RatePage(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetIdentity(r.Context())

	restaurant, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if restaurant.HasRated(username) {
		middleware.SetFlash(w, "info", "You have already rated this restaurant")
		http.Redirect(w, r, "/restaurant/show?id="+string(restaurant.ID), http.StatusSeeOther)
		return
	}

	data := view.RateData{
		PageData: view.PageData{
			Title:    "Rate " + pageTitle(restaurant),
			Username: username,
			Flash:    middleware.GetFlash(r.Context()),
		},
		Restaurant: restaurant,
	}
	renderPage(w, h.renderer, "rate", data)
}

// Rate handles the rating form submission
func (h *RestaurantHandler) Rate(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetIdentity(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id := model.RestaurantID(r.FormValue("id"))
	score, convErr := strconv.Atoi(r.FormValue("score"))
	if convErr != nil {
		middleware.SetFlash(w, "error", "Score must be a whole number from 1 to 5")
		http.Redirect(w, r, "/restaurant/rate?id="+string(id), http.StatusSeeOther)
		return
	}

	err := h.directory.Rate(r.Context(), id, username, score)
	switch {
	case err == nil:
		middleware.SetFlash(w, "success", "Thanks for rating!")
		http.Redirect(w, r, "/restaurant/show?id="+string(id), http.StatusSeeOther)
	case errors.Is(err, model.ErrRestaurantNotFound):
		h.renderNotFound(w, r)
	case errors.Is(err, model.ErrAlreadyRated):
		middleware.SetFlash(w, "info", "You have already rated this restaurant")
		http.Redirect(w, r, "/restaurant/show?id="+string(id), http.StatusSeeOther)
	case errors.Is(err, model.ErrInvalidScore):
		middleware.SetFlash(w, "error", "Score must be a whole number from 1 to 5")
		http.Redirect(w, r, "/restaurant/rate?id="+string(id), http.StatusSeeOther)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// lookup fetches the restaurant named by the id query parameter,
// rendering the not-found page when it is missing
func (h *RestaurantHandler) lookup(w http.ResponseWriter, r *http.Request) (*model.Restaurant, bool) {
	id := model.RestaurantID(r.URL.Query().Get("id"))

	restaurant, err := h.directory.Show(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrRestaurantNotFound) {
			h.renderNotFound(w, r)
		} else {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return nil, false
	}
	return restaurant, true
}

func (h *RestaurantHandler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	data := view.NotFoundData{
		PageData: view.PageData{
			Title:    "Not found",
			Username: middleware.GetIdentity(r.Context()),
		},
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_ = h.renderer.Render(w, "notfound", data)
}

func (h *RestaurantHandler) renderNewError(w http.ResponseWriter, r *http.Request, errorMsg string) {
	data := view.NewData{
		PageData: view.PageData{
			Title:    "Add a restaurant",
			Username: middleware.GetIdentity(r.Context()),
		},
		Error: errorMsg,
	}
	renderPage(w, h.renderer, "new", data)
}

// parseRestaurantForm reads the shared create/update multipart form into
// service fields. The photo is optional; an absent file part is not an
// error.
func parseRestaurantForm(r *http.Request) (directory.Fields, error) {
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		return directory.Fields{}, err
	}

	fields := directory.Fields{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Borough:  strings.TrimSpace(r.FormValue("borough")),
		Cuisine:  strings.TrimSpace(r.FormValue("cuisine")),
		Street:   strings.TrimSpace(r.FormValue("street")),
		Building: strings.TrimSpace(r.FormValue("building")),
		Zipcode:  strings.TrimSpace(r.FormValue("zipcode")),
		Lat:      strings.TrimSpace(r.FormValue("lat")),
		Lng:      strings.TrimSpace(r.FormValue("lng")),
	}

	file, header, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		photo, readErr := io.ReadAll(file)
		if readErr != nil {
			return directory.Fields{}, readErr
		}
		if len(photo) > 0 {
			fields.Photo = photo
			fields.PhotoMimetype = header.Header.Get("Content-Type")
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		return directory.Fields{}, err
	}

	return fields, nil
}

func pageTitle(restaurant *model.Restaurant) string {
	if restaurant.Name != "" {
		return restaurant.Name
	}
	return "Restaurant"
}
