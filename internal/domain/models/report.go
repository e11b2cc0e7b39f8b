package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportCategory is one of the categories offered on the report form
type ReportCategory string

const (
	ReportCategoryBanking        ReportCategory = "banking"
	ReportCategoryEcommerce      ReportCategory = "ecommerce"
	ReportCategoryPhishing       ReportCategory = "phishing"
	ReportCategoryCryptocurrency ReportCategory = "cryptocurrency"
	ReportCategoryGovernment     ReportCategory = "government"
	ReportCategorySocial         ReportCategory = "social"
	ReportCategoryRomance        ReportCategory = "romance"
	ReportCategoryOther          ReportCategory = "other"
)

// ReportCategoryLabels maps categories to their display labels, in form order
var ReportCategoryLabels = []struct {
	Value ReportCategory `json:"value"`
	Label string         `json:"label"`
}{
	{ReportCategoryBanking, "Banking Fraud"},
	{ReportCategoryEcommerce, "E-commerce Scam"},
	{ReportCategoryPhishing, "Phishing"},
	{ReportCategoryCryptocurrency, "Cryptocurrency Scam"},
	{ReportCategoryGovernment, "Government Impersonation"},
	{ReportCategorySocial, "Social Media Scam"},
	{ReportCategoryRomance, "Romance Scam"},
	{ReportCategoryOther, "Other"},
}

// IsValid reports whether c is an offered category
func (c ReportCategory) IsValid() bool {
	for _, l := range ReportCategoryLabels {
		if l.Value == c {
			return true
		}
	}
	return false
}

// ReportSubmission is a community scam report. It is validated and
// acknowledged but never stored.
type ReportSubmission struct {
	URL         string         `json:"url,omitempty"`
	PhoneNumber string         `json:"phoneNumber,omitempty"`
	Category    ReportCategory `json:"category"`
	Description string         `json:"description"`
}

// ReportAcknowledgement is returned after a report has been accepted
type ReportAcknowledgement struct {
	ReferenceID uuid.UUID            `json:"reference_id"`
	Target      string               `json:"target"`
	Category    ReportCategory       `json:"category"`
	Verdict     ClassificationResult `json:"verdict"`
	Message     string               `json:"message"`
	ReceivedAt  time.Time            `json:"received_at"`
}
