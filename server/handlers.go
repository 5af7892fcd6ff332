package server

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"recipefinder"
	"recipefinder/detail"
	"recipefinder/search"
)

func (s *Server) newHomeView() homeView {
	return homeView{
		Pantry:     s.deps.Pantry.Items(),
		Categories: s.deps.Categories,
		Areas:      s.deps.Areas,
	}
}

// handleHome renders the home page. ?pantry=1 runs the pantry search;
// ?type=&q=&others= or the form fields (q, others, category, area) run a
// filtered search.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := s.newHomeView()
	view.Form = searchForm{
		Q:        q.Get("q"),
		Others:   q.Get("others"),
		Category: q.Get("category"),
		Area:     q.Get("area"),
	}

	var (
		res  search.Results
		err  error
		flow string
	)
	switch {
	case q.Get("pantry") == "1":
		flow = "pantry"
		res, err = s.deps.Finder.SearchPantry(r.Context())
	case q.Get("type") != "" && view.Form.Q != "":
		flow = "search"
		res, err = s.deps.Finder.Search(r.Context(), recipefinder.ParseFilter(q.Get("type"), view.Form.Q, view.Form.Others))
	case view.Form.Q != "" || view.Form.Category != "" || view.Form.Area != "":
		flow = "search"
		filter := recipefinder.FormFilter(view.Form.Q, view.Form.Others, view.Form.Category, view.Form.Area)
		res, err = s.deps.Finder.Search(r.Context(), filter)
	default:
		s.render(w, http.StatusOK, pageHome, view)
		return
	}

	recordSearch(flow, err)
	if err != nil {
		view.Error = userMessage(err)
	} else {
		view.Title = res.Title
		view.CountLabel = res.CountLabel()
		view.Recipes = res.Recipes
	}
	s.render(w, http.StatusOK, pageHome, view)
}

func (s *Server) handlePantryAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	s.deps.Pantry.Add(r.Context(), r.PostForm.Get("item"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePantryRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	s.deps.Pantry.Remove(r.Context(), r.PostForm.Get("item"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePantryClear(w http.ResponseWriter, r *http.Request) {
	s.deps.Pantry.Clear(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleRandom redirects to a random recipe, or shows the home page with
// the error when none could be fetched.
func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	id, err := s.deps.Finder.Random(r.Context())
	recordSearch("random", err)
	if err != nil {
		view := s.newHomeView()
		view.Error = userMessage(err)
		s.render(w, http.StatusOK, pageHome, view)
		return
	}
	http.Redirect(w, r, "/recipe/"+url.PathEscape(id), http.StatusSeeOther)
}

func (s *Server) handleRecipe(w http.ResponseWriter, r *http.Request) {
	page, err := s.deps.Pages.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, detail.ErrRecipeNotFound) {
			status = http.StatusNotFound
		}
		s.render(w, status, pageRecipe, recipeView{Error: userMessage(err)})
		return
	}
	s.render(w, http.StatusOK, pageRecipe, recipeView{Page: page})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, pageNotFound, nil)
}

// userMessage returns text safe to show in the error banner.
func userMessage(err error) string {
	var uerr *search.Error
	switch {
	case errors.As(err, &uerr):
		return uerr.Message
	case errors.Is(err, detail.ErrRecipeNotFound):
		return err.Error()
	default:
		slog.Error("SERVER: unexpected error", "error", err)
		return "Something went wrong. Please try again."
	}
}
