package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"recipefinder"
	"recipefinder/detail"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageHome     = "home.html"
	pageRecipe   = "recipe.html"
	pageNotFound = "notfound.html"
)

type suggestionRow struct {
	Row     string
	Title   string
	Recipes []recipefinder.Recipe
}

var funcs = template.FuncMap{
	"row": func(row, title string, recipes []recipefinder.Recipe) suggestionRow {
		return suggestionRow{Row: row, Title: title, Recipes: recipes}
	},
}

// parseTemplates builds one template set per page, each sharing the layout.
func parseTemplates() (map[string]*template.Template, error) {
	pages := map[string]*template.Template{}
	for _, page := range []string{pageHome, pageRecipe, pageNotFound} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		pages[page] = t
	}
	return pages, nil
}

type searchForm struct {
	Q        string
	Others   string
	Category string
	Area     string
}

type homeView struct {
	Pantry     []string
	Categories []string
	Areas      []string
	Form       searchForm
	Title      string
	CountLabel string
	Recipes    []recipefinder.Recipe
	Error      string
}

type recipeView struct {
	Page  *detail.Page
	Error string
}

// render executes the page into a buffer first so a template failure never
// leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := s.templates[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("SERVER: render failed", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
