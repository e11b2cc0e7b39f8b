package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

// Verdict reasons
const (
	ReasonKnownFraudulent    = "Known fraudulent website"
	ReasonVerifiedLegitimate = "Verified legitimate website"
	ReasonSuspiciousKeywords = "Suspicious domain characteristics"
	ReasonSuspiciousShape    = "Suspicious domain structure"
	ReasonNoThreats          = "No immediate threats detected"
)

// Rule is one step of the classifier chain. Evaluate returns false when the
// rule does not apply so the next rule is tried.
type Rule interface {
	Name() string
	Evaluate(token string) (models.ClassificationResult, bool)
}

// DenyListRule flags tokens on the known-malicious list
type DenyListRule struct {
	Refs *ReferenceSet
}

func (r DenyListRule) Name() string { return "deny_list" }

func (r DenyListRule) Evaluate(token string) (models.ClassificationResult, bool) {
	entry, ok := r.Refs.Malicious(token)
	if !ok {
		return models.ClassificationResult{}, false
	}
	details := "This domain is listed as a known scam by our community."
	if entry.ReportCount > 0 {
		details = fmt.Sprintf("This domain has been reported %d times by our community as a scam.", entry.ReportCount)
	}
	return models.NewClassificationResult(models.RiskLevelDangerous, ReasonKnownFraudulent, details), true
}

// AllowListRule passes tokens on the known-legitimate list
type AllowListRule struct {
	Refs *ReferenceSet
}

func (r AllowListRule) Name() string { return "allow_list" }

func (r AllowListRule) Evaluate(token string) (models.ClassificationResult, bool) {
	if !r.Refs.Legitimate(token) {
		return models.ClassificationResult{}, false
	}
	return models.NewClassificationResult(models.RiskLevelSafe, ReasonVerifiedLegitimate,
		"This is a verified legitimate website that is safe to visit."), true
}

// KeywordRule flags tokens containing words common in phishing domains
type KeywordRule struct {
	Keywords []string
}

func (r KeywordRule) Name() string { return "keywords" }

func (r KeywordRule) Evaluate(token string) (models.ClassificationResult, bool) {
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(token, kw) {
			return models.NewClassificationResult(models.RiskLevelSuspicious, ReasonSuspiciousKeywords,
				"This domain uses suspicious keywords that are often used in phishing attempts."), true
		}
	}
	return models.ClassificationResult{}, false
}

// StructureRule flags overly long tokens and deeply nested hostnames
type StructureRule struct {
	MaxLength int
	MaxLabels int
}

func (r StructureRule) Name() string { return "structure" }

func (r StructureRule) Evaluate(token string) (models.ClassificationResult, bool) {
	if utf8.RuneCountInString(token) > r.MaxLength || len(strings.Split(token, ".")) > r.MaxLabels {
		return models.NewClassificationResult(models.RiskLevelSuspicious, ReasonSuspiciousShape,
			"This domain has an unusual structure that may indicate a scam."), true
	}
	return models.ClassificationResult{}, false
}

// DefaultRule always applies and closes the chain
type DefaultRule struct{}

func (DefaultRule) Name() string { return "default" }

func (DefaultRule) Evaluate(string) (models.ClassificationResult, bool) {
	return models.NewClassificationResult(models.RiskLevelSafe, ReasonNoThreats,
		"This website appears safe, but always exercise caution when entering personal information."), true
}
