package tools

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a new tool registry over the pantry, search and detail flows.
func NewRegistry(pantry Pantry, searcher Searcher, pages PageLoader) *Registry {
	tools := []Tool{
		NewPantryGet(pantry),
		NewPantryAdd(pantry),
		NewRecipeSearch(searcher),
		NewRecipeGet(pages),
	}

	registry := make(Registry, len(tools))
	for _, t := range tools {
		registry[t.Name()] = t
	}
	return &registry
}

// GetTools returns all tools in the registry sorted by name
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	slices.SortFunc(tools, func(a, b Tool) int { return strings.Compare(a.Name(), b.Name()) })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}

// Run looks up call.Name and runs it with call.Input. A nil input is treated
// as empty.
func (r *Registry) Run(ctx context.Context, call Call) (map[string]any, error) {
	tool, err := r.GetTool(call.Name)
	if err != nil {
		return nil, err
	}
	input := call.Input
	if input == nil {
		input = map[string]any{}
	}
	return tool.Run(ctx, input)
}
