package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

// ErrInvalidReport wraps every validation failure of a report submission
var ErrInvalidReport = errors.New("invalid report")

// ReportService accepts community scam reports. Reports are checked,
// acknowledged and announced; nothing is persisted.
type ReportService struct {
	classifier *LinkClassifier
	publisher  AlertPublisher
	now        func() time.Time
	logger     *logger.Logger
}

// NewReportService creates a new report service. publisher may be nil.
func NewReportService(classifier *LinkClassifier, publisher AlertPublisher, log *logger.Logger) *ReportService {
	return &ReportService{
		classifier: classifier,
		publisher:  publisher,
		now:        time.Now,
		logger:     log.WithComponent("report-service"),
	}
}

// Validate checks a submission the way the report form does
func (s *ReportService) Validate(sub models.ReportSubmission) error {
	if strings.TrimSpace(sub.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidReport)
	}
	if strings.TrimSpace(sub.URL) == "" && strings.TrimSpace(sub.PhoneNumber) == "" {
		return fmt.Errorf("%w: url or phone number is required", ErrInvalidReport)
	}
	if sub.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidReport)
	}
	if !sub.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidReport, sub.Category)
	}
	return nil
}

// Submit validates the report, classifies its target and acknowledges it
func (s *ReportService) Submit(ctx context.Context, sub models.ReportSubmission) (*models.ReportAcknowledgement, error) {
	if err := s.Validate(sub); err != nil {
		return nil, err
	}

	target := strings.TrimSpace(sub.URL)
	if target == "" {
		target = strings.TrimSpace(sub.PhoneNumber)
	}
	v := s.classifier.Evaluate(target)

	ack := &models.ReportAcknowledgement{
		ReferenceID: uuid.New(),
		Target:      v.Token,
		Category:    sub.Category,
		Verdict:     v.Result,
		Message:     "Thank you for helping protect the community!",
		ReceivedAt:  s.now(),
	}

	s.logger.Info().
		Str("reference_id", ack.ReferenceID.String()).
		Str("category", string(sub.Category)).
		Str("risk_level", string(v.Result.RiskLevel)).
		Msg("scam report received")

	if s.publisher != nil {
		alert := &models.Alert{
			ID:        uuid.New(),
			Kind:      models.AlertKindCommunityReport,
			Target:    v.Token,
			RiskLevel: v.Result.RiskLevel,
			Reason:    v.Result.Reason,
			Category:  string(sub.Category),
			Timestamp: ack.ReceivedAt,
		}
		if err := s.publisher.PublishAlert(ctx, alert); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish report alert")
		}
	}

	return ack, nil
}
