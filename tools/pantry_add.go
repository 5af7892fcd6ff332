package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

// PantryAdd adds or removes one pantry item.
type PantryAdd struct{ pantry Pantry }

func NewPantryAdd(pantry Pantry) *PantryAdd { return &PantryAdd{pantry: pantry} }

func (t *PantryAdd) Name() string  { return "pantry_add" }
func (t *PantryAdd) Title() string { return "Update Pantry" }
func (t *PantryAdd) Description() string {
	return "Adds an ingredient to the pantry, or removes it when remove is true. Names are lowercased and duplicates are ignored."
}

func (t *PantryAdd) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"item":   {Type: "string"},
			"remove": {Type: "boolean"},
		},
		Required: []string{"item"},
	}
}

func (t *PantryAdd) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"changed": {Type: "boolean"},
			"items": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
		},
		Required: []string{"changed", "items"},
	}
}

func (t *PantryAdd) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	item := stringInput(input, "item")
	if item == "" {
		return nil, fmt.Errorf("item is required")
	}

	var changed bool
	if remove, _ := input["remove"].(bool); remove {
		changed = t.pantry.Remove(ctx, item)
	} else {
		changed = t.pantry.Add(ctx, item)
	}

	return toMap(struct {
		Changed bool     `json:"changed"`
		Items   []string `json:"items"`
	}{Changed: changed, Items: t.pantry.Items()})
}
