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

	"github.com/snowcore/sourcing-assistant/internal/agent"
	"github.com/snowcore/sourcing-assistant/internal/chat"
	"github.com/snowcore/sourcing-assistant/internal/model"
	"github.com/snowcore/sourcing-assistant/pkg/logger"
)

func chatRouter(t *testing.T) *chi.Mux {
	t.Helper()

	store := chat.NewThreadStore()
	orch := chat.NewOrchestrator(store, agent.NewSimulator(), nil, logger.Nop())
	h := NewChatHandler(orch, logger.Nop())

	r := chi.NewRouter()
	r.Route("/chat/{persona}", func(r chi.Router) {
		r.Get("/", h.GetThread)
		r.Post("/messages", h.SendMessage)
		r.Delete("/", h.ClearThread)
	})
	return r
}

func TestChatHandler_GetThread_EmptyWithExamples(t *testing.T) {
	r := chatRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat/vp", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ThreadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "vp", resp.Persona)
	assert.Empty(t, resp.Turns)
	assert.NotEmpty(t, resp.ExampleQuestions)
}

func TestChatHandler_SendMessage_AppendsTwoTurns(t *testing.T) {
	r := chatRouter(t)

	body := strings.NewReader(`{"question":"Which suppliers have the highest risk scores?"}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat/procurement/messages", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ThreadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Turns, 2)
	assert.Equal(t, model.RoleUser, resp.Turns[0].Role)
	assert.Equal(t, model.RoleAssistant, resp.Turns[1].Role)
	assert.NotEmpty(t, resp.Turns[1].Content)
}

func TestChatHandler_SendMessage_RejectsEmptyQuestion(t *testing.T) {
	r := chatRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat/vp/messages", strings.NewReader(`{"question":"  "}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandler_SendMessage_RejectsBadBody(t *testing.T) {
	r := chatRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat/vp/messages", strings.NewReader("not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.NotEmpty(t, errResp.Error)
}

func TestChatHandler_ClearThread(t *testing.T) {
	r := chatRouter(t)

	body := strings.NewReader(`{"question":"hello"}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat/engineer/messages", body))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/chat/engineer", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat/engineer", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ThreadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Turns)
}

func TestChatHandler_ThreadsIsolatedPerPersona(t *testing.T) {
	r := chatRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat/vp/messages", strings.NewReader(`{"question":"vp question"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat/procurement", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ThreadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Turns)
}
