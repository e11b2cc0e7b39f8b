package streaming

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

func sampleEvent(kind models.AlertKind, level models.RiskLevel, category string) *AlertEvent {
	return NewAlertEvent(&models.Alert{
		ID:        uuid.New(),
		Kind:      kind,
		Target:    "nedbank-secure-login.com",
		RiskLevel: level,
		Reason:    "Known fraudulent website",
		Category:  category,
		Timestamp: time.Now(),
	})
}

func TestAlertEventSubject(t *testing.T) {
	e := sampleEvent(models.AlertKindDangerousCheck, models.RiskLevelDangerous, "")
	assert.Equal(t, "alerts.dangerous_check.dangerous", e.Subject())

	e.RiskLevel = ""
	assert.Equal(t, "alerts.dangerous_check.unknown", e.Subject())
}

func TestAlertFilterMatches(t *testing.T) {
	dangerous := sampleEvent(models.AlertKindDangerousCheck, models.RiskLevelDangerous, "")
	report := sampleEvent(models.AlertKindCommunityReport, models.RiskLevelSuspicious, "banking")

	var nilFilter *AlertFilter
	assert.True(t, nilFilter.Matches(dangerous))
	assert.True(t, (&AlertFilter{}).Matches(report))

	byKind := &AlertFilter{Kinds: []models.AlertKind{models.AlertKindCommunityReport}}
	assert.False(t, byKind.Matches(dangerous))
	assert.True(t, byKind.Matches(report))

	byLevel := &AlertFilter{MinRiskLevel: models.RiskLevelDangerous}
	assert.True(t, byLevel.Matches(dangerous))
	assert.False(t, byLevel.Matches(report))

	byCategory := &AlertFilter{Categories: []string{"BANKING"}}
	assert.True(t, byCategory.Matches(report))
	assert.False(t, byCategory.Matches(dangerous))
}
