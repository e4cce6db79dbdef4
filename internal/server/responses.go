package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse is the standard JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}
