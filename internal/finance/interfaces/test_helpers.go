package interfaces

import (
	"encoding/json"
	"net/http"
)

// respondJSON and respondError mirror the responders the binaries inject in
// production wiring, so handler tests exercise the same response contract.

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, details ...[]string) {
	body := map[string]interface{}{
		"status":  "error",
		"code":    status,
		"message": message,
	}
	if len(details) > 0 && len(details[0]) > 0 {
		body["errors"] = details[0]
	}
	respondJSON(w, status, body)
}
