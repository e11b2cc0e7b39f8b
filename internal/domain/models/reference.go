package models

// ReferenceEntry is a deny-list entry. ReportCount is the number of community
// reports behind the listing.
type ReferenceEntry struct {
	Domain      string `json:"domain" yaml:"domain"`
	ReportCount int    `json:"report_count" yaml:"report_count"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ReferenceData is the on-disk (and embedded) shape of the reference lists
type ReferenceData struct {
	Version         string           `json:"version" yaml:"version"`
	KnownMalicious  []ReferenceEntry `json:"known_malicious" yaml:"known_malicious"`
	KnownLegitimate []string         `json:"known_legitimate" yaml:"known_legitimate"`
}

// ReferenceSummary is what the API exposes about the loaded lists
type ReferenceSummary struct {
	Version            string `json:"version"`
	Source             string `json:"source"`
	MaliciousCount     int    `json:"malicious_count"`
	LegitimateCount    int    `json:"legitimate_count"`
	IntentTableVersion string `json:"intent_table_version"`
}
