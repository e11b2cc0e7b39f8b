package services

import (
	"strings"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

// Default heuristic settings
var DefaultSuspiciousKeywords = []string{"secure", "login", "bank"}

const (
	DefaultMaxTokenLength = 50
	DefaultMaxLabels      = 3
)

// ClassifierOptions tunes the heuristic rules
type ClassifierOptions struct {
	SuspiciousKeywords []string
	MaxTokenLength     int
	MaxLabels          int
}

// DefaultClassifierOptions returns the stock heuristic settings
func DefaultClassifierOptions() ClassifierOptions {
	return ClassifierOptions{
		SuspiciousKeywords: append([]string(nil), DefaultSuspiciousKeywords...),
		MaxTokenLength:     DefaultMaxTokenLength,
		MaxLabels:          DefaultMaxLabels,
	}
}

// Verdict is a classification together with the token and rule behind it
type Verdict struct {
	Token  string
	Rule   string
	Result models.ClassificationResult
}

// LinkClassifier applies an ordered rule chain to URLs and phone numbers.
// The first rule that applies decides; list lookups always come before
// heuristics. Classify has no side effects and never fails.
type LinkClassifier struct {
	refs  *ReferenceSet
	rules []Rule
}

// NewLinkClassifier builds the standard chain: deny-list, allow-list,
// keywords, structure, default.
func NewLinkClassifier(refs *ReferenceSet, opts ClassifierOptions) *LinkClassifier {
	if opts.MaxTokenLength <= 0 {
		opts.MaxTokenLength = DefaultMaxTokenLength
	}
	if opts.MaxLabels <= 0 {
		opts.MaxLabels = DefaultMaxLabels
	}
	if opts.SuspiciousKeywords == nil {
		opts.SuspiciousKeywords = DefaultSuspiciousKeywords
	}

	keywords := make([]string, 0, len(opts.SuspiciousKeywords))
	for _, kw := range opts.SuspiciousKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	return &LinkClassifier{
		refs: refs,
		rules: []Rule{
			DenyListRule{Refs: refs},
			AllowListRule{Refs: refs},
			KeywordRule{Keywords: keywords},
			StructureRule{MaxLength: opts.MaxTokenLength, MaxLabels: opts.MaxLabels},
			DefaultRule{},
		},
	}
}

// References returns the reference set the classifier consults
func (c *LinkClassifier) References() *ReferenceSet {
	return c.refs
}

// RuleNames lists the chain in evaluation order
func (c *LinkClassifier) RuleNames() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name()
	}
	return names
}

// Classify returns the verdict for one raw input. Callers reject blank input
// beforehand.
func (c *LinkClassifier) Classify(raw string) models.ClassificationResult {
	return c.Evaluate(raw).Result
}

// Evaluate is Classify plus the normalized token and the deciding rule
func (c *LinkClassifier) Evaluate(raw string) Verdict {
	token := Normalize(raw)
	for _, rule := range c.rules {
		if result, ok := rule.Evaluate(token); ok {
			return Verdict{Token: token, Rule: rule.Name(), Result: result}
		}
	}
	var fallback DefaultRule
	result, _ := fallback.Evaluate(token)
	return Verdict{Token: token, Rule: fallback.Name(), Result: result}
}
