package models

import "time"

// ReportRiskLevel is the severity attached to a community scam report
type ReportRiskLevel string

const (
	ReportRiskLow      ReportRiskLevel = "low"
	ReportRiskMedium   ReportRiskLevel = "medium"
	ReportRiskHigh     ReportRiskLevel = "high"
	ReportRiskCritical ReportRiskLevel = "critical"
)

// ScamReport is a verified community report shown on the alerts page
type ScamReport struct {
	ID            string          `json:"id" yaml:"id"`
	URL           string          `json:"url,omitempty" yaml:"url,omitempty"`
	PhoneNumber   string          `json:"phoneNumber,omitempty" yaml:"phone_number,omitempty"`
	Description   string          `json:"description" yaml:"description"`
	Category      string          `json:"category" yaml:"category"`
	ReportCount   int             `json:"reportCount" yaml:"report_count"`
	FirstReported time.Time       `json:"firstReported" yaml:"first_reported"`
	LastReported  time.Time       `json:"lastReported" yaml:"last_reported"`
	RiskLevel     ReportRiskLevel `json:"riskLevel" yaml:"risk_level"`
	Verified      bool            `json:"verified" yaml:"verified"`
}

// Target returns the URL or phone number the report is about
func (r ScamReport) Target() string {
	if r.URL != "" {
		return r.URL
	}
	return r.PhoneNumber
}

// FraudTrend is a monthly scam count for one province
type FraudTrend struct {
	ID        string `json:"id" yaml:"id"`
	Province  string `json:"province" yaml:"province"`
	ScamCount int    `json:"scamCount" yaml:"scam_count"`
	Category  string `json:"category" yaml:"category"`
	Month     string `json:"month" yaml:"month"`
	Year      int    `json:"year" yaml:"year"`
}

// ProvinceTotal aggregates trend counts per province
type ProvinceTotal struct {
	Province  string `json:"province"`
	ScamCount int    `json:"scamCount"`
}

// SafetyTip is a short piece of advice
type SafetyTip struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Icon        string `json:"icon" yaml:"icon"`
}

// QuizQuestion is a multiple choice question. CorrectAnswer and Explanation
// are hidden from the public listing.
type QuizQuestion struct {
	ID            string   `json:"id" yaml:"id"`
	Question      string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer int      `json:"-" yaml:"correct_answer"`
	Explanation   string   `json:"-" yaml:"explanation"`
}

// QuizAnswerRequest is the payload for grading a quiz answer
type QuizAnswerRequest struct {
	Answer int `json:"answer"`
}

// QuizGrade is the result of grading one answer
type QuizGrade struct {
	QuestionID    string `json:"question_id"`
	Correct       bool   `json:"correct"`
	CorrectAnswer int    `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}
