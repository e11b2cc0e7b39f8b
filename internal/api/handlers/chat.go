package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/services"
	"github.com/Fraud-stop/shield-wise-guard/internal/infrastructure/cache"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

// ChatHandler serves the assistant. Session logs live in the store; the
// conversation only ever sees copies.
type ChatHandler struct {
	conversation *services.Conversation
	sessions     cache.SessionStore
	typingDelay  time.Duration
	now          func() time.Time
	logger       *logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(conv *services.Conversation, sessions cache.SessionStore, typingDelay time.Duration, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		conversation: conv,
		sessions:     sessions,
		typingDelay:  typingDelay,
		now:          time.Now,
		logger:       log.WithComponent("chat-handler"),
	}
}

// StartSession handles POST /api/v1/chat/sessions
func (h *ChatHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	session := &models.ChatSession{
		ID:        uuid.New(),
		Turns:     []models.ChatTurn{h.conversation.Greeting(now)},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.sessions.Create(r.Context(), session); err != nil {
		h.logger.Error().Err(err).Msg("failed to create chat session")
		respondError(w, http.StatusInternalServerError, "failed to create session", h.logger)
		return
	}

	h.logger.WithSessionID(session.ID.String()).Debug().Msg("chat session started")
	respondJSON(w, http.StatusCreated, session, h.logger)
}

// SendMessage handles POST /api/v1/chat/sessions/{id}/messages
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req models.ChatMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		respondError(w, http.StatusBadRequest, "text is required", h.logger)
		return
	}

	session, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, err)
		return
	}

	if err := pause(r.Context(), h.typingDelay); err != nil {
		h.logger.Debug().Err(err).Msg("chat message cancelled by client")
		return
	}

	history, reply := h.conversation.Converse(session.Turns, text, h.now())
	appended := history[len(session.Turns):]

	if err := h.sessions.Append(r.Context(), id, appended...); err != nil {
		h.storeError(w, err)
		return
	}

	h.logger.WithSessionID(id.String()).Debug().
		Str("topic", string(reply.Topic)).
		Msg("chat message answered")

	respondJSON(w, http.StatusOK, models.ChatMessageResponse{
		SessionID: id,
		Reply:     reply,
		Appended:  appended,
	}, h.logger)
}

// GetSession handles GET /api/v1/chat/sessions/{id}
func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session, h.logger)
}

// Respond handles POST /api/v1/chat/respond, a stateless single reply
func (h *ChatHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req models.ChatMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := pause(r.Context(), h.typingDelay); err != nil {
		return
	}

	respondJSON(w, http.StatusOK, h.conversation.Matcher().Respond(req.Text), h.logger)
}

func (h *ChatHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id", h.logger)
		return uuid.Nil, false
	}
	return id, true
}

func (h *ChatHandler) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, cache.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found", h.logger)
		return
	}
	h.logger.Error().Err(err).Msg("chat session store failed")
	respondError(w, http.StatusInternalServerError, "session store unavailable", h.logger)
}
