package services

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

//go:embed data/content.yaml
var embeddedContent []byte

var (
	ErrQuestionNotFound = errors.New("quiz question not found")
	ErrInvalidOption    = errors.New("answer is not one of the options")
)

type contentDocument struct {
	ScamReports   []models.ScamReport   `yaml:"scam_reports"`
	FraudTrends   []models.FraudTrend   `yaml:"fraud_trends"`
	SafetyTips    []models.SafetyTip    `yaml:"safety_tips"`
	QuizQuestions []models.QuizQuestion `yaml:"quiz_questions"`
}

// ContentCatalog serves the static community content: alerts, trends, tips
// and the awareness quiz. Read-only after construction.
type ContentCatalog struct {
	doc contentDocument
}

// ParseContentCatalog decodes a YAML content document
func ParseContentCatalog(r io.Reader) (*ContentCatalog, error) {
	var doc contentDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}
	for _, q := range doc.QuizQuestions {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("quiz question %s: correct answer %d out of range", q.ID, q.CorrectAnswer)
		}
	}
	return &ContentCatalog{doc: doc}, nil
}

// DefaultContentCatalog returns the catalog compiled into the binary
func DefaultContentCatalog() *ContentCatalog {
	c, err := ParseContentCatalog(bytes.NewReader(embeddedContent))
	if err != nil {
		panic(fmt.Sprintf("embedded content is invalid: %v", err))
	}
	return c
}

// Alerts returns community scam reports, optionally filtered by category
// (case-insensitive), most reported first.
func (c *ContentCatalog) Alerts(category string) []models.ScamReport {
	out := make([]models.ScamReport, 0, len(c.doc.ScamReports))
	for _, r := range c.doc.ScamReports {
		if category != "" && !strings.EqualFold(r.Category, category) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReportCount > out[j].ReportCount
	})
	return out
}

// Trends returns fraud trend rows, optionally filtered by month
func (c *ContentCatalog) Trends(month string) []models.FraudTrend {
	out := make([]models.FraudTrend, 0, len(c.doc.FraudTrends))
	for _, t := range c.doc.FraudTrends {
		if month != "" && !strings.EqualFold(t.Month, month) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ProvinceTotals sums trend counts per province, highest first
func (c *ContentCatalog) ProvinceTotals() []models.ProvinceTotal {
	totals := make(map[string]int)
	for _, t := range c.doc.FraudTrends {
		totals[t.Province] += t.ScamCount
	}
	out := make([]models.ProvinceTotal, 0, len(totals))
	for p, n := range totals {
		out = append(out, models.ProvinceTotal{Province: p, ScamCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScamCount != out[j].ScamCount {
			return out[i].ScamCount > out[j].ScamCount
		}
		return out[i].Province < out[j].Province
	})
	return out
}

// Tips returns the safety tips, optionally filtered by category
func (c *ContentCatalog) Tips(category string) []models.SafetyTip {
	out := make([]models.SafetyTip, 0, len(c.doc.SafetyTips))
	for _, t := range c.doc.SafetyTips {
		if category != "" && !strings.EqualFold(t.Category, category) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Quiz returns the questions; answers are hidden by the JSON encoding
func (c *ContentCatalog) Quiz() []models.QuizQuestion {
	return append([]models.QuizQuestion(nil), c.doc.QuizQuestions...)
}

// Grade checks one answer
func (c *ContentCatalog) Grade(questionID string, answer int) (*models.QuizGrade, error) {
	for _, q := range c.doc.QuizQuestions {
		if q.ID != questionID {
			continue
		}
		if answer < 0 || answer >= len(q.Options) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidOption, answer)
		}
		return &models.QuizGrade{
			QuestionID:    q.ID,
			Correct:       answer == q.CorrectAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
}
