// Package utils collects small helpers shared across packages: JSON
// response writing, the preconfigured HTTP client, and identifier
// generation.
package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data and writes it with the given status code
// under a Content-Type of application/json. When marshaling fails the
// response degrades to a plain 500 and the error is returned to the
// caller for logging.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteJSONError writes the uniform error body {"error": code} with the
// given HTTP status code. Every non-2xx response of the sync API goes
// through here, so clients can rely on the shape.
func WriteJSONError(w http.ResponseWriter, code string, statusCode int) (int, error) {
	return WriteJSON(w, map[string]string{"error": code}, statusCode)
}
