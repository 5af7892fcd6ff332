package tools

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"recipefinder"
	"recipefinder/search"
)

type RecipeSearch struct{ searcher Searcher }

func NewRecipeSearch(searcher Searcher) *RecipeSearch { return &RecipeSearch{searcher: searcher} }

func (t *RecipeSearch) Name() string  { return "recipe_search" }
func (t *RecipeSearch) Title() string { return "Search Recipes" }
func (t *RecipeSearch) Description() string {
	return "Searches recipes by ingredient, category, area or name. With pantry set, finds recipes using any pantry item. " +
		"others is a comma-separated list of extra ingredients every result must contain."
}

func (t *RecipeSearch) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"type": {
				Type:        "string",
				Description: "one of ingredient, category, area or name; anything else searches by name",
			},
			"query":  {Type: "string"},
			"others": {Type: "string"},
			"pantry": {Type: "boolean"},
		},
	}
}

func (t *RecipeSearch) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"title":   {Type: "string"},
			"message": {Type: "string"},
			"recipes": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"id":        {Type: "string"},
						"name":      {Type: "string"},
						"thumbnail": {Type: "string"},
					},
					Required: []string{"id", "name"},
				},
			},
		},
		Required: []string{"recipes"},
	}
}

type recipeSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

func (t *RecipeSearch) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	var (
		res search.Results
		err error
	)
	if usePantry, _ := input["pantry"].(bool); usePantry {
		res, err = t.searcher.SearchPantry(ctx)
	} else {
		query := stringInput(input, "query")
		if query == "" {
			return nil, errors.New("query is required unless pantry is set")
		}
		res, err = t.searcher.Search(ctx, recipefinder.ParseFilter(stringInput(input, "type"), query, stringInput(input, "others")))
	}

	out := struct {
		Title   string          `json:"title,omitempty"`
		Message string          `json:"message,omitempty"`
		Recipes []recipeSummary `json:"recipes"`
	}{Recipes: make([]recipeSummary, 0, len(res.Recipes))}

	// An empty search is an answer for the caller, not a tool failure.
	var uerr *search.Error
	if errors.As(err, &uerr) {
		out.Message = uerr.Message
		return toMap(out)
	}
	if err != nil {
		return nil, err
	}

	out.Title = res.Title
	for _, r := range res.Recipes {
		out.Recipes = append(out.Recipes, recipeSummary{ID: r.ID, Name: r.Name, Thumbnail: r.Thumbnail})
	}
	return toMap(out)
}
