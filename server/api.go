package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

type toolInfo struct {
	Name         string             `json:"name"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	InputSchema  *jsonschema.Schema `json:"input_schema"`
	OutputSchema *jsonschema.Schema `json:"output_schema"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Timestamp: time.Now()})
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	list := s.deps.Tools.GetTools()
	out := make([]toolInfo, 0, len(list))
	for _, t := range list {
		out = append(out, toolInfo{
			Name:         t.Name(),
			Title:        t.Title(),
			Description:  t.Description(),
			InputSchema:  t.InputSchema(),
			OutputSchema: t.OutputSchema(),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"tools": out})
}

func (s *Server) handleRunTool(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(contextKeyRequestID).(string)

	tool, err := s.deps.Tools.GetTool(r.PathValue("name"))
	if err != nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), RequestID: requestID})
		return
	}

	input := map[string]any{}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&input); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON input: " + err.Error(), RequestID: requestID})
			return
		}
	}

	out, err := tool.Run(r.Context(), input)
	if err != nil {
		slog.Warn("SERVER: tool failed", "tool", tool.Name(), "requestID", requestID, "error", err)
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), RequestID: requestID})
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("SERVER: encode response failed", "error", err)
	}
}
