package models

import "time"

// RiskLevel is the ordinal verdict of the link/number classifier
type RiskLevel string

const (
	RiskLevelSafe       RiskLevel = "safe"
	RiskLevelSuspicious RiskLevel = "suspicious"
	RiskLevelDangerous  RiskLevel = "dangerous"
)

// Rank orders risk levels so callers can compare them
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLevelSafe:
		return 0
	case RiskLevelSuspicious:
		return 1
	case RiskLevelDangerous:
		return 2
	default:
		return -1
	}
}

// IsValid reports whether r is one of the known levels
func (r RiskLevel) IsValid() bool {
	return r.Rank() >= 0
}

// ClassificationResult is the verdict for a single URL or phone number.
// Safe is true iff RiskLevel is RiskLevelSafe.
type ClassificationResult struct {
	Safe      bool      `json:"safe"`
	RiskLevel RiskLevel `json:"riskLevel"`
	Reason    string    `json:"reason"`
	Details   string    `json:"details"`
}

// NewClassificationResult builds a result keeping Safe consistent with level
func NewClassificationResult(level RiskLevel, reason, details string) ClassificationResult {
	return ClassificationResult{
		Safe:      level == RiskLevelSafe,
		RiskLevel: level,
		Reason:    reason,
		Details:   details,
	}
}

// CheckRequest is the API payload for a single check
type CheckRequest struct {
	Target string `json:"target"`
}

// CheckResponse wraps a classification with the token it was computed on
type CheckResponse struct {
	Target    string               `json:"target"`
	Token     string               `json:"token"`
	Rule      string               `json:"rule"`
	Result    ClassificationResult `json:"result"`
	CheckedAt time.Time            `json:"checked_at"`
}

// BatchCheckRequest is the API payload for a batch check
type BatchCheckRequest struct {
	Targets []string `json:"targets"`
}

// BatchCheckResponse summarises a batch check
type BatchCheckResponse struct {
	Results         []CheckResponse `json:"results"`
	TotalCount      int             `json:"total_count"`
	SafeCount       int             `json:"safe_count"`
	SuspiciousCount int             `json:"suspicious_count"`
	DangerousCount  int             `json:"dangerous_count"`
}
