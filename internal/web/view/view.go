package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/jkwan-hk/eatery/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames lists every renderable page; each has a matching
// templates/<name>.html defining the "content" block
var pageNames = []string{
	"signin", "signup", "home", "list", "search", "show",
	"new", "update", "delete", "rate", "notfound",
}

// FlashMessage is a one-shot user-facing message consumed on the next
// rendered page
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData is the common data every page template receives
type PageData struct {
	Title    string
	Username string // session identity, empty when anonymous
	Flash    *FlashMessage
}

// SignInData is the data for the sign-in page
type SignInData struct {
	PageData
	FormUsername string
	Error        string
}

// SignUpData is the data for the sign-up page
type SignUpData struct {
	PageData
	FormUsername string
	Error        string
}

// HomeData is the data for the dashboard
type HomeData struct {
	PageData
}

// ListData is the data for the restaurant listing page
type ListData struct {
	PageData
	Restaurants []*model.Restaurant
}

// SearchData is the data for the search page. Searched reports whether
// any criteria were submitted; Results is only meaningful when it is set.
type SearchData struct {
	PageData
	Name     string
	Borough  string
	Cuisine  string
	Zipcode  string
	Searched bool
	Results  []*model.Restaurant
}

// ShowData is the data for the restaurant detail page
type ShowData struct {
	PageData
	Restaurant   *model.Restaurant
	HasPhoto     bool
	Average      float64
	HasAverage   bool
	AlreadyRated bool
}

// NewData is the data for the new-restaurant form
type NewData struct {
	PageData
	Error string
}

// UpdateData is the data for the edit form
type UpdateData struct {
	PageData
	Restaurant *model.Restaurant
	HasPhoto   bool
	Error      string
}

// DeleteData is the data for the delete confirmation page
type DeleteData struct {
	PageData
	Restaurant *model.Restaurant
}

// RateData is the data for the rating form
type RateData struct {
	PageData
	Restaurant *model.Restaurant
}

// NotFoundData is the data for the 404 page
type NotFoundData struct {
	PageData
}

// Renderer renders pages from the embedded template set
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates. Broken templates are a programming
// error, so parsing failures panic at startup.
func New() *Renderer {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		pages[name] = template.Must(template.ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		))
	}
	return &Renderer{pages: pages}
}

// Render writes the named page wrapped in the layout
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template: %s", page)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
