package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/auth-flow-api/internal/domain"
)

// errorBody mirrors the error envelope the handlers write, so a rejection
// from middleware and a rejection from a handler look the same on the wire.
type errorBody struct {
	Message      string               `json:"message"`
	ErrorSources []domain.ErrorSource `json:"error_sources"`
}

// writeJSONError writes a JSON-encoded error response with the correct Content-Type.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Message: msg, ErrorSources: []domain.ErrorSource{}})
}
