// Package detail assembles the recipe detail page: the recipe itself plus
// suggestions from the same cuisine and category.
package detail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"recipefinder"
	"recipefinder/fetch"
)

// ErrRecipeNotFound is returned when the recipe cannot be loaded for any reason.
var ErrRecipeNotFound = errors.New("Could not find that recipe.")

// Page is everything the detail view renders.
type Page struct {
	Recipe          *recipefinder.Recipe `json:"recipe" yaml:"recipe"`
	Paragraphs      []string             `json:"paragraphs" yaml:"paragraphs"`
	IngredientLines []string             `json:"ingredient_lines" yaml:"ingredient_lines"`

	AreaTitle        string                `json:"area_title,omitempty" yaml:"area_title,omitempty"`
	MoreFromArea     []recipefinder.Recipe `json:"more_from_area,omitempty" yaml:"more_from_area,omitempty"`
	CategoryTitle    string                `json:"category_title,omitempty" yaml:"category_title,omitempty"`
	MoreFromCategory []recipefinder.Recipe `json:"more_from_category,omitempty" yaml:"more_from_category,omitempty"`
}

type Loader struct {
	source recipefinder.RecipeSource
}

func NewLoader(source recipefinder.RecipeSource) *Loader {
	return &Loader{source: source}
}

// Load fetches the recipe and then, concurrently, the suggestion lists for
// its area and category. Suggestion failures leave the list empty.
func (l *Loader) Load(ctx context.Context, id string) (*Page, error) {
	primary := fetch.New(l.source.ByID, fetch.Eager, id)
	st := primary.Mount(ctx)

	r, ok := st.Data()
	if !ok || !r.IsValid() {
		slog.Warn("DETAIL: Recipe unavailable", "id", id, "error", st.Err())
		return nil, ErrRecipeNotFound
	}

	page := &Page{
		Recipe:          r,
		Paragraphs:      Paragraphs(r.Instructions),
		IngredientLines: IngredientLines(r.Ingredients),
	}

	byArea := fetch.New(l.source.ByArea, fetch.Lazy, "")
	byCategory := fetch.New(l.source.ByCategory, fetch.Lazy, "")

	var areaCh, categoryCh <-chan fetch.State[[]recipefinder.Recipe]
	if r.Area != "" {
		page.AreaTitle = fmt.Sprintf("More %s Dishes", r.Area)
		areaCh = byArea.Go(ctx, r.Area)
	}
	if r.Category != "" {
		page.CategoryTitle = fmt.Sprintf("More from %s", r.Category)
		categoryCh = byCategory.Go(ctx, r.Category)
	}

	if areaCh != nil {
		page.MoreFromArea = suggestions(<-areaCh, r.ID)
	}
	if categoryCh != nil {
		page.MoreFromCategory = suggestions(<-categoryCh, r.ID)
	}

	slog.Info("DETAIL: Loaded recipe", "id", r.ID,
		"more_from_area", len(page.MoreFromArea), "more_from_category", len(page.MoreFromCategory))
	return page, nil
}

func suggestions(st fetch.State[[]recipefinder.Recipe], currentID string) []recipefinder.Recipe {
	list, ok := st.Data()
	if !ok {
		return nil
	}
	return Exclude(list, currentID)
}

// Exclude returns list without the recipe whose ID is id.
func Exclude(list []recipefinder.Recipe, id string) []recipefinder.Recipe {
	out := make([]recipefinder.Recipe, 0, len(list))
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// Paragraphs splits instructions on line breaks and drops blank segments.
func Paragraphs(instructions string) []string {
	var out []string
	for _, line := range strings.Split(instructions, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// IngredientLines renders each ingredient as "<measure> <name>".
func IngredientLines(ings []recipefinder.Ingredient) []string {
	out := make([]string, 0, len(ings))
	for _, ing := range ings {
		out = append(out, strings.TrimSpace(ing.Measure+" "+ing.Name))
	}
	return out
}
