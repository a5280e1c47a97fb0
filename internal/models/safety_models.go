package models

const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// SafetyFinding is one detected adverse event. DetectedPhrase carries a
// bounded excerpt around the matched keyword, never the full text.
type SafetyFinding struct {
	Event          string  `json:"event"`
	Severity       string  `json:"severity"`
	Confidence     float64 `json:"confidence"`
	SafetyCategory string  `json:"safety_category"`
	DetectedPhrase string  `json:"detected_phrase"`
}
