package handler

import (
	"net/http"

	"github.com/jkwan-hk/eatery/internal/web/middleware"
	"github.com/jkwan-hk/eatery/internal/web/view"
)

// HomeHandler renders the signed-in dashboard
type HomeHandler struct {
	renderer *view.Renderer
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(renderer *view.Renderer) *HomeHandler {
	return &HomeHandler{renderer: renderer}
}

// Home renders the dashboard
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetIdentity(r.Context())

	data := view.HomeData{
		PageData: view.PageData{
			Title:    "Home",
			Username: username,
			Flash:    middleware.GetFlash(r.Context()),
		},
	}
	renderPage(w, h.renderer, "home", data)
}
