package handlers

import (
	"errors"
	"net/http"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/services"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

// ReportHandler accepts community scam reports
type ReportHandler struct {
	reports *services.ReportService
	logger  *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *services.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  log.WithComponent("report-handler"),
	}
}

// Submit handles POST /api/v1/reports
func (h *ReportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub models.ReportSubmission
	if err := decodeJSON(w, r, &sub); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	ack, err := h.reports.Submit(r.Context(), sub)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReport) {
			respondError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		h.logger.Error().Err(err).Msg("failed to submit report")
		respondError(w, http.StatusInternalServerError, "failed to submit report", h.logger)
		return
	}

	respondJSON(w, http.StatusCreated, ack, h.logger)
}

// Categories handles GET /api/v1/reports/categories
func (h *ReportHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"categories": models.ReportCategoryLabels,
	}, h.logger)
}
