package handler

import (
	"errors"
	"net/http"

	"github.com/jkwan-hk/eatery/internal/model"
	"github.com/jkwan-hk/eatery/internal/services/directory"
)

// ImageHandler serves restaurant photos as raw bytes
type ImageHandler struct {
	directory *directory.Service
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(directoryService *directory.Service) *ImageHandler {
	return &ImageHandler{directory: directoryService}
}

// Image writes the stored photo with its stored mimetype
func (h *ImageHandler) Image(w http.ResponseWriter, r *http.Request) {
	id := model.RestaurantID(r.URL.Query().Get("id"))

	photo, mimetype, err := h.directory.GetImage(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrRestaurantNotFound) || errors.Is(err, model.ErrNoPhoto) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if mimetype == "" {
		mimetype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mimetype)
	_, _ = w.Write(photo)
}
