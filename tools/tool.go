package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

// Call is one tool invocation. ID is an optional caller correlation ID
// echoed back with the result.
type Call struct {
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
	ID    string         `json:"id,omitempty"`
}

// toMap round-trips v through JSON to keep tool outputs uniform.
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func stringInput(input map[string]any, key string) string {
	s, _ := input[key].(string)
	return s
}
