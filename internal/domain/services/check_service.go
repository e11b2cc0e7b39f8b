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

var (
	ErrEmptyTarget   = errors.New("target is required")
	ErrBatchTooLarge = errors.New("too many targets")
)

// AlertPublisher receives alerts raised by checks and reports
type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert *models.Alert) error
}

// CheckService is the entry point used by the API and CLI for link and
// number checks. It guards the classifier's preconditions and announces
// dangerous verdicts.
type CheckService struct {
	classifier   *LinkClassifier
	publisher    AlertPublisher
	maxBatchSize int
	now          func() time.Time
	logger       *logger.Logger
}

// NewCheckService creates a new check service. publisher may be nil.
func NewCheckService(classifier *LinkClassifier, publisher AlertPublisher, maxBatchSize int, log *logger.Logger) *CheckService {
	if maxBatchSize <= 0 {
		maxBatchSize = 100
	}
	return &CheckService{
		classifier:   classifier,
		publisher:    publisher,
		maxBatchSize: maxBatchSize,
		now:          time.Now,
		logger:       log.WithComponent("check-service"),
	}
}

// Classifier returns the underlying classifier
func (s *CheckService) Classifier() *LinkClassifier {
	return s.classifier
}

// Check classifies a single URL or phone number
func (s *CheckService) Check(ctx context.Context, target string) (*models.CheckResponse, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, ErrEmptyTarget
	}

	v := s.classifier.Evaluate(target)
	resp := &models.CheckResponse{
		Target:    target,
		Token:     v.Token,
		Rule:      v.Rule,
		Result:    v.Result,
		CheckedAt: s.now(),
	}

	s.logger.Info().
		Str("token", v.Token).
		Str("rule", v.Rule).
		Str("risk_level", string(v.Result.RiskLevel)).
		Msg("target checked")

	if v.Result.RiskLevel == models.RiskLevelDangerous {
		s.publish(ctx, &models.Alert{
			ID:        uuid.New(),
			Kind:      models.AlertKindDangerousCheck,
			Target:    v.Token,
			RiskLevel: v.Result.RiskLevel,
			Reason:    v.Result.Reason,
			Timestamp: resp.CheckedAt,
		})
	}

	return resp, nil
}

// CheckBatch classifies several targets. Blank entries are skipped.
func (s *CheckService) CheckBatch(ctx context.Context, targets []string) (*models.BatchCheckResponse, error) {
	if len(targets) == 0 {
		return nil, ErrEmptyTarget
	}
	if len(targets) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: maximum %d per batch", ErrBatchTooLarge, s.maxBatchSize)
	}

	resp := &models.BatchCheckResponse{
		Results: make([]models.CheckResponse, 0, len(targets)),
	}
	for _, t := range targets {
		r, err := s.Check(ctx, t)
		if err != nil {
			s.logger.Debug().Err(err).Msg("skipping batch entry")
			continue
		}
		resp.Results = append(resp.Results, *r)
		switch r.Result.RiskLevel {
		case models.RiskLevelSafe:
			resp.SafeCount++
		case models.RiskLevelSuspicious:
			resp.SuspiciousCount++
		case models.RiskLevelDangerous:
			resp.DangerousCount++
		}
	}
	resp.TotalCount = len(resp.Results)

	return resp, nil
}

func (s *CheckService) publish(ctx context.Context, alert *models.Alert) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAlert(ctx, alert); err != nil {
		s.logger.Warn().Err(err).Str("target", alert.Target).Msg("failed to publish alert")
	}
}
