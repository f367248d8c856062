package handlers

import (
	"embed"
	"html/template"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/models"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"testid": models.TestID,
	"price":  models.FormatCents,
}

// parsePage parses a page template together with the shared header
func parsePage(name string) (*template.Template, error) {
	return template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/header.html", "templates/"+name)
}

// pageData is passed to every page rendered under the shared header
type pageData struct {
	Title    string
	Count    int
	Sortable bool
	Products []models.Product
	Cart     *services.CartView
}
