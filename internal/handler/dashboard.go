package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snowcore/sourcing-assistant/internal/events"
	"github.com/snowcore/sourcing-assistant/internal/executor"
	"github.com/snowcore/sourcing-assistant/internal/model"
	"github.com/snowcore/sourcing-assistant/internal/queries"
	"github.com/snowcore/sourcing-assistant/internal/registry"
	"github.com/snowcore/sourcing-assistant/internal/warehouse"
	"github.com/snowcore/sourcing-assistant/pkg/logger"
)

// DashboardHandler serves page query batches.
type DashboardHandler struct {
	store     warehouse.Store
	registry  *registry.Registry
	publisher *events.Publisher
	logger    *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(store warehouse.Store, reg *registry.Registry, publisher *events.Publisher, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		store:     store,
		registry:  reg,
		publisher: publisher,
		logger:    log,
	}
}

// DashboardResponse carries every result set of one page batch.
type DashboardResponse struct {
	Page    string                          `json:"page"`
	Results map[string]*warehouse.ResultSet `json:"results"`
}

// Get handles GET /api/v1/dashboards/{page}
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")

	var batch map[string]string
	switch page {
	case "landing":
		batch = queries.Landing(h.registry)
	case "supply-chain":
		batch = queries.SupplyChain(h.registry, r.URL.Query().Get("business_unit"))
	case "procurement":
		batch = queries.Procurement(h.registry, r.URL.Query().Get("category"))
	default:
		writeError(w, http.StatusNotFound, "unknown dashboard page")
		return
	}

	start := time.Now()
	results, err := executor.RunBatch(r.Context(), h.store, batch)
	h.audit(r, page, len(batch), time.Since(start), err)

	if err != nil {
		var batchErr *executor.BatchError
		if errors.As(err, &batchErr) {
			h.logger.Error("dashboard batch failed",
				zap.String("page", page),
				zap.String("query", batchErr.Name),
				zap.Error(batchErr.Err),
			)
			writeError(w, http.StatusBadGateway, "query "+batchErr.Name+" failed")
			return
		}
		h.logger.Error("dashboard batch failed", zap.String("page", page), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	writeJSON(w, http.StatusOK, DashboardResponse{
		Page:    page,
		Results: results,
	})
}

// ListQueries handles GET /api/v1/queries
func (h *DashboardHandler) ListQueries(w http.ResponseWriter, r *http.Request) {
	entries := h.registry.List()

	out := make(map[string]model.RegisteredQuery, len(entries))
	for key, entry := range entries {
		out[key] = model.RegisteredQuery{
			Text:        entry.Text,
			Description: entry.Description,
		}
	}

	writeJSON(w, http.StatusOK, model.ListQueriesResponse{
		Queries: out,
		Total:   len(out),
	})
}

func (h *DashboardHandler) audit(r *http.Request, page string, queryCount int, duration time.Duration, err error) {
	if h.publisher == nil {
		return
	}
	h.publisher.PublishBatch(r.Context(), model.BatchAudit{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Page:       page,
		Queries:    queryCount,
		DurationMs: duration.Milliseconds(),
		Failed:     err != nil,
		CreatedAt:  time.Now(),
	})
}
