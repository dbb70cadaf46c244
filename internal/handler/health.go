// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"

	"github.com/snowcore/sourcing-assistant/internal/warehouse"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store warehouse.Store
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store warehouse.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || h.store.Ping(r.Context()) != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "warehouse not reachable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
