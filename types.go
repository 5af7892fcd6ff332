package recipefinder

import (
	"context"
	"net/http"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type SlackClient interface {
	ShareRecipe(ctx context.Context, channel string, r Recipe, link string) error
}

// RecipeSource is the set of upstream queries the page orchestrators depend on.
type RecipeSource interface {
	ByIngredient(ctx context.Context, ingredient string) ([]Recipe, error)
	ByID(ctx context.Context, id string) (*Recipe, error)
	Random(ctx context.Context) (*Recipe, error)
	ByCategory(ctx context.Context, category string) ([]Recipe, error)
	ByArea(ctx context.Context, area string) ([]Recipe, error)
	ByName(ctx context.Context, name string) ([]Recipe, error)
	Categories(ctx context.Context) ([]string, error)
	Areas(ctx context.Context) ([]string, error)
}

// Recipe is a meal as returned by the upstream API. Filter endpoints only
// populate ID, Name and Thumbnail.
type Recipe struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Thumbnail    string       `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Instructions string       `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Area         string       `json:"area,omitempty" yaml:"area,omitempty"`
	Category     string       `json:"category,omitempty" yaml:"category,omitempty"`
	Tags         []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Source       string       `json:"source,omitempty" yaml:"source,omitempty"`
	YouTube      string       `json:"youtube,omitempty" yaml:"youtube,omitempty"`
	Ingredients  []Ingredient `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
}

// Ingredient is one filled ingredient slot of a recipe.
type Ingredient struct {
	Name    string `json:"name" yaml:"name"`
	Measure string `json:"measure,omitempty" yaml:"measure,omitempty"`
}

// IsValid reports whether the recipe carries enough to be linked to.
func (r *Recipe) IsValid() bool {
	return r != nil && r.ID != ""
}
