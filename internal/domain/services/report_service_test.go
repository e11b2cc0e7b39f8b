package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

func TestReportService_Validate(t *testing.T) {
	svc := NewReportService(newDefaultClassifier(), nil, logger.NewNop())

	tests := []struct {
		name  string
		sub   models.ReportSubmission
		valid bool
	}{
		{"url report", models.ReportSubmission{URL: "bad.example", Category: models.ReportCategoryPhishing, Description: "asked for my PIN"}, true},
		{"phone report", models.ReportSubmission{PhoneNumber: "+27 11 234 5678", Category: models.ReportCategoryGovernment, Description: "fake SARS call"}, true},
		{"missing description", models.ReportSubmission{URL: "bad.example", Category: models.ReportCategoryOther}, false},
		{"missing target", models.ReportSubmission{Category: models.ReportCategoryOther, Description: "x"}, false},
		{"missing category", models.ReportSubmission{URL: "bad.example", Description: "x"}, false},
		{"unknown category", models.ReportSubmission{URL: "bad.example", Category: "lottery", Description: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.sub)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidReport)
			}
		})
	}
}

func TestReportService_Submit(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewReportService(newDefaultClassifier(), pub, logger.NewNop())

	ack, err := svc.Submit(context.Background(), models.ReportSubmission{
		URL:         "https://nedbank-secure-login.com/verify",
		Category:    models.ReportCategoryBanking,
		Description: "SMS asked me to verify my account",
	})
	require.NoError(t, err)
	assert.Equal(t, "nedbank-secure-login.com", ack.Target)
	assert.Equal(t, models.RiskLevelDangerous, ack.Verdict.RiskLevel)
	assert.NotEmpty(t, ack.ReferenceID.String())

	alerts := pub.published()
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertKindCommunityReport, alerts[0].Kind)
	assert.Equal(t, "banking", alerts[0].Category)
}

func TestReportService_SubmitPhoneNumber(t *testing.T) {
	svc := NewReportService(newDefaultClassifier(), nil, logger.NewNop())

	ack, err := svc.Submit(context.Background(), models.ReportSubmission{
		PhoneNumber: "+27 11 234 5678",
		Category:    models.ReportCategoryGovernment,
		Description: "Caller claiming to be from SARS",
	})
	require.NoError(t, err)
	assert.Equal(t, "+27 11 234 5678", ack.Target)
	assert.True(t, ack.Verdict.Safe)

	_, err = svc.Submit(context.Background(), models.ReportSubmission{})
	assert.ErrorIs(t, err, ErrInvalidReport)
}
