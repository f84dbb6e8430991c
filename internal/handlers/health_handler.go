package handlers

import (
	"net/http"
	"time"
)

// HealthHandler reports service liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, "Server is running", map[string]string{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFoundHandler answers unknown routes with the standard envelope.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "Route not found")
}
