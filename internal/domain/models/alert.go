package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertKind says what produced an alert
type AlertKind string

const (
	AlertKindDangerousCheck  AlertKind = "dangerous_check"
	AlertKindCommunityReport AlertKind = "community_report"
)

// Alert is broadcast to live alert feeds
type Alert struct {
	ID        uuid.UUID `json:"id"`
	Kind      AlertKind `json:"kind"`
	Target    string    `json:"target"`
	RiskLevel RiskLevel `json:"risk_level"`
	Reason    string    `json:"reason"`
	Category  string    `json:"category,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
