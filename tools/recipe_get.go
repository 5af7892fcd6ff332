package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type RecipeGet struct{ pages PageLoader }

func NewRecipeGet(pages PageLoader) *RecipeGet { return &RecipeGet{pages: pages} }

func (t *RecipeGet) Name() string  { return "recipe_get" }
func (t *RecipeGet) Title() string { return "Get Recipe" }
func (t *RecipeGet) Description() string {
	return "Gets one recipe by id with its instructions, ingredient lines and suggestions from the same area and category."
}

func (t *RecipeGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id": {Type: "string"},
		},
		Required: []string{"id"},
	}
}

func (t *RecipeGet) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipe": {
				Type: "object",
				// keep schema open to accept the full recipe as-is
			},
			"paragraphs":         {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			"ingredient_lines":   {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			"more_from_area":     {Type: "array", Items: &jsonschema.Schema{Type: "object"}},
			"more_from_category": {Type: "array", Items: &jsonschema.Schema{Type: "object"}},
		},
		Required: []string{"recipe"},
	}
}

func (t *RecipeGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id := stringInput(input, "id")
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	page, err := t.pages.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMap(page)
}
