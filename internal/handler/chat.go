package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snowcore/sourcing-assistant/internal/chat"
	"github.com/snowcore/sourcing-assistant/internal/middleware"
	"github.com/snowcore/sourcing-assistant/internal/model"
	"github.com/snowcore/sourcing-assistant/pkg/logger"
)

// ChatHandler handles the assistant conversation endpoints.
type ChatHandler struct {
	orchestrator *chat.Orchestrator
	logger       *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(orchestrator *chat.Orchestrator, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		logger:       log,
	}
}

// GetThread handles GET /api/v1/chat/{persona}
func (h *ChatHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	persona := chi.URLParam(r, "persona")
	if err := middleware.ValidatePersona(persona); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.ThreadResponse{
		Persona:          persona,
		Turns:            h.orchestrator.Store().Thread(persona),
		ExampleQuestions: chat.ExampleQuestions(persona),
	})
}

// SendMessage handles POST /api/v1/chat/{persona}/messages
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	persona := chi.URLParam(r, "persona")
	if err := middleware.ValidatePersona(persona); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateQuestion(req.Question); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The persona doubles as the agent context tag when it is one of
	// the known dashboard roles.
	contextTag := ""
	if chat.KnownPersona(persona) {
		contextTag = persona
	}

	turns := h.orchestrator.HandleUserMessage(r.Context(), req.Question, persona, contextTag)

	writeJSON(w, http.StatusOK, model.ThreadResponse{
		Persona: persona,
		Turns:   turns,
	})
}

// ClearThread handles DELETE /api/v1/chat/{persona}
func (h *ChatHandler) ClearThread(w http.ResponseWriter, r *http.Request) {
	persona := chi.URLParam(r, "persona")
	if err := middleware.ValidatePersona(persona); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.orchestrator.Store().Clear(persona)
	w.WriteHeader(http.StatusNoContent)
}
