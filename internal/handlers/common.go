package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// ErrorResponse is the JSON body returned for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// decodeJSON decodes a request body, rejecting unknown fields
func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

// auditValues flattens a model into the audit log's JSONB shape. Encrypted
// secrets are excluded by their json tags before this runs.
func auditValues(value interface{}) models.JSONMap {
	if value == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	var out models.JSONMap
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
