package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowcore/sourcing-assistant/internal/registry"
	"github.com/snowcore/sourcing-assistant/internal/warehouse"
	"github.com/snowcore/sourcing-assistant/pkg/logger"
)

func analystRouter(t *testing.T) *chi.Mux {
	t.Helper()

	store, err := warehouse.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Seed(60, 100))

	h := NewAnalystHandler(store, registry.New(), logger.Nop())

	r := chi.NewRouter()
	r.Post("/analyst", h.Ask)
	r.Get("/docs/search", h.SearchDocs)
	return r
}

func TestAnalystHandler_Ask(t *testing.T) {
	r := analystRouter(t)

	body := strings.NewReader(`{"prompt":"total inventory value of duplicate stainless parts"}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyst", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalystResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Results)
	assert.Contains(t, resp.Results.Columns, "business_unit")
}

func TestAnalystHandler_Ask_EmptyPrompt(t *testing.T) {
	r := analystRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyst", strings.NewReader(`{"prompt":""}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalystHandler_SearchDocs(t *testing.T) {
	r := analystRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/search?q=stainless&top_k=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DocSearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "stainless", resp.Query)
	require.NotNil(t, resp.Results)
	assert.LessOrEqual(t, len(resp.Results.Rows), 2)
}

func TestAnalystHandler_SearchDocs_MissingQuery(t *testing.T) {
	r := analystRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/search", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
