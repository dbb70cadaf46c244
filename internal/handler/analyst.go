package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/snowcore/sourcing-assistant/internal/queries"
	"github.com/snowcore/sourcing-assistant/internal/registry"
	"github.com/snowcore/sourcing-assistant/internal/warehouse"
	"github.com/snowcore/sourcing-assistant/pkg/logger"
)

// AnalystHandler serves the free-text analyst and document search
// endpoints.
type AnalystHandler struct {
	store    warehouse.Store
	registry *registry.Registry
	logger   *logger.Logger
}

// NewAnalystHandler creates a new analyst handler.
func NewAnalystHandler(store warehouse.Store, reg *registry.Registry, log *logger.Logger) *AnalystHandler {
	return &AnalystHandler{
		store:    store,
		registry: reg,
		logger:   log,
	}
}

// AnalystRequest is the body of an analyst prompt.
type AnalystRequest struct {
	Prompt string `json:"prompt"`
}

// AnalystResponse carries the result set resolved for a prompt.
type AnalystResponse struct {
	Prompt  string               `json:"prompt"`
	Results *warehouse.ResultSet `json:"results"`
}

// Ask handles POST /api/v1/analyst
func (h *AnalystHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AnalystRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt cannot be empty")
		return
	}

	sql := queries.Analyst(h.registry, req.Prompt)
	rs, err := h.store.Query(r.Context(), sql)
	if err != nil {
		h.logger.Error("analyst query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "analyst query failed")
		return
	}

	writeJSON(w, http.StatusOK, AnalystResponse{
		Prompt:  req.Prompt,
		Results: rs,
	})
}

// DocSearchResponse carries matching engineering documents.
type DocSearchResponse struct {
	Query   string               `json:"query"`
	Results *warehouse.ResultSet `json:"results"`
}

// SearchDocs handles GET /api/v1/docs/search
func (h *AnalystHandler) SearchDocs(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	topK := 3
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 20 {
			topK = n
		}
	}

	sql := queries.SearchDocs(h.registry, q, topK)
	rs, err := h.store.Query(r.Context(), sql)
	if err != nil {
		h.logger.Error("document search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "document search failed")
		return
	}

	writeJSON(w, http.StatusOK, DocSearchResponse{
		Query:   q,
		Results: rs,
	})
}
