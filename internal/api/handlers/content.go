package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/services"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

// ContentHandler serves alerts, trends, tips and the quiz
type ContentHandler struct {
	catalog *services.ContentCatalog
	logger  *logger.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(catalog *services.ContentCatalog, log *logger.Logger) *ContentHandler {
	return &ContentHandler{
		catalog: catalog,
		logger:  log.WithComponent("content-handler"),
	}
}

// Alerts handles GET /api/v1/alerts?category=
func (h *ContentHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	alerts := h.catalog.Alerts(r.URL.Query().Get("category"))
	respondJSON(w, http.StatusOK, map[string]any{
		"alerts": alerts,
		"count":  len(alerts),
	}, h.logger)
}

// Trends handles GET /api/v1/trends?month=
func (h *ContentHandler) Trends(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"trends":          h.catalog.Trends(r.URL.Query().Get("month")),
		"province_totals": h.catalog.ProvinceTotals(),
	}, h.logger)
}

// Tips handles GET /api/v1/tips?category=
func (h *ContentHandler) Tips(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"tips": h.catalog.Tips(r.URL.Query().Get("category")),
	}, h.logger)
}

// Quiz handles GET /api/v1/quiz
func (h *ContentHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"questions": h.catalog.Quiz(),
	}, h.logger)
}

// Answer handles POST /api/v1/quiz/{id}/answer
func (h *ContentHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req models.QuizAnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	grade, err := h.catalog.Grade(chi.URLParam(r, "id"), req.Answer)
	switch {
	case errors.Is(err, services.ErrQuestionNotFound):
		respondError(w, http.StatusNotFound, err.Error(), h.logger)
		return
	case errors.Is(err, services.ErrInvalidOption):
		respondError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to grade answer", h.logger)
		return
	}

	respondJSON(w, http.StatusOK, grade, h.logger)
}
