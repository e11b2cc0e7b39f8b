package streaming

import (
	"fmt"
	"strings"
	"time"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

// subjectRoot is the NATS subject namespace for alert events
const subjectRoot = "alerts"

// AlertEvent is the wire form of an alert on the bus, NATS and WebSocket
type AlertEvent struct {
	ID        string           `json:"id"`
	Kind      models.AlertKind `json:"kind"`
	Timestamp time.Time        `json:"timestamp"`
	Target    string           `json:"target"`
	RiskLevel models.RiskLevel `json:"risk_level"`
	Reason    string           `json:"reason"`
	Category  string           `json:"category,omitempty"`

	// Origin identifies the publishing instance so it can skip its own
	// events when they come back from NATS.
	Origin string `json:"origin,omitempty"`
}

// NewAlertEvent converts a domain alert
func NewAlertEvent(alert *models.Alert) *AlertEvent {
	return &AlertEvent{
		ID:        alert.ID.String(),
		Kind:      alert.Kind,
		Timestamp: alert.Timestamp,
		Target:    alert.Target,
		RiskLevel: alert.RiskLevel,
		Reason:    alert.Reason,
		Category:  alert.Category,
	}
}

// Subject returns the NATS subject: alerts.<kind>.<risk_level>
func (e *AlertEvent) Subject() string {
	level := string(e.RiskLevel)
	if level == "" {
		level = "unknown"
	}
	return fmt.Sprintf("%s.%s.%s", subjectRoot, e.Kind, level)
}

// AlertFilter narrows what a subscriber receives. The zero value matches
// everything.
type AlertFilter struct {
	Kinds        []models.AlertKind `json:"kinds,omitempty"`
	MinRiskLevel models.RiskLevel   `json:"min_risk_level,omitempty"`
	Categories   []string           `json:"categories,omitempty"`
}

// Matches reports whether the event passes the filter
func (f *AlertFilter) Matches(e *AlertEvent) bool {
	if f == nil {
		return true
	}
	if len(f.Kinds) > 0 {
		found := false
		for _, k := range f.Kinds {
			if k == e.Kind {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinRiskLevel.IsValid() && e.RiskLevel.Rank() < f.MinRiskLevel.Rank() {
		return false
	}
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if strings.EqualFold(c, e.Category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
