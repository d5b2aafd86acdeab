package handler

import (
	"net/http"

	"github.com/jkwan-hk/eatery/internal/web/view"
)

func renderPage(w http.ResponseWriter, renderer *view.Renderer, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderer.Render(w, page, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
