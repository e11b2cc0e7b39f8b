package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/services"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

// CheckHandler serves the link and number checker
type CheckHandler struct {
	checks  *services.CheckService
	matcher *services.IntentMatcher
	source  string
	latency time.Duration
	logger  *logger.Logger
}

// NewCheckHandler creates a new check handler. latency delays every verdict
// the way the web checker animates its analysis.
func NewCheckHandler(checks *services.CheckService, matcher *services.IntentMatcher, source string, latency time.Duration, log *logger.Logger) *CheckHandler {
	return &CheckHandler{
		checks:  checks,
		matcher: matcher,
		source:  source,
		latency: latency,
		logger:  log.WithComponent("check-handler"),
	}
}

// Check handles POST /api/v1/check
func (h *CheckHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req models.CheckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if strings.TrimSpace(req.Target) == "" {
		respondError(w, http.StatusBadRequest, "target is required", h.logger)
		return
	}

	if err := pause(r.Context(), h.latency); err != nil {
		h.logger.Debug().Err(err).Msg("check cancelled by client")
		return
	}

	result, err := h.checks.Check(r.Context(), req.Target)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, result, h.logger)
}

// CheckBatch handles POST /api/v1/check/batch
func (h *CheckHandler) CheckBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchCheckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if len(req.Targets) == 0 {
		respondError(w, http.StatusBadRequest, "targets array is required", h.logger)
		return
	}

	if err := pause(r.Context(), h.latency); err != nil {
		h.logger.Debug().Err(err).Msg("batch check cancelled by client")
		return
	}

	result, err := h.checks.CheckBatch(r.Context(), req.Targets)
	switch {
	case errors.Is(err, services.ErrBatchTooLarge), errors.Is(err, services.ErrEmptyTarget):
		respondError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	case err != nil:
		h.logger.Error().Err(err).Int("count", len(req.Targets)).Msg("failed to batch check targets")
		respondError(w, http.StatusInternalServerError, "failed to check targets", h.logger)
		return
	}

	respondJSON(w, http.StatusOK, result, h.logger)
}

// ReferenceResponse describes the loaded lists and rule chain
type ReferenceResponse struct {
	models.ReferenceSummary
	Rules      []string `json:"rules"`
	Categories any      `json:"report_categories"`
}

// Reference handles GET /api/v1/reference
func (h *CheckHandler) Reference(w http.ResponseWriter, r *http.Request) {
	classifier := h.checks.Classifier()
	refs := classifier.References()
	malicious, legitimate := refs.Counts()

	respondJSON(w, http.StatusOK, ReferenceResponse{
		ReferenceSummary: models.ReferenceSummary{
			Version:            refs.Version(),
			Source:             h.source,
			MaliciousCount:     malicious,
			LegitimateCount:    legitimate,
			IntentTableVersion: h.matcher.Version(),
		},
		Rules:      classifier.RuleNames(),
		Categories: models.ReportCategoryLabels,
	}, h.logger)
}
