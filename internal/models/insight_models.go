package models

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentMixed    = "mixed"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// InsightResult is the typed shape the hosted model must produce. The list
// fields are always non-nil on a successful parse so they serialize as
// arrays, never null.
type InsightResult struct {
	SentimentScore   float64  `json:"sentiment_score"`
	SentimentLabel   string   `json:"sentiment_label"`
	LanguageDetected string   `json:"language_detected"`
	UnmetNeeds       []string `json:"unmet_needs"`
	PainPoints       []string `json:"pain_points"`
	PositiveAspects  []string `json:"positive_aspects"`
	Recommendations  []string `json:"recommendations"`
	Confidence       float64  `json:"confidence"`
}

// InsightResponse is the success payload for POST /insights. AdverseEvents
// holds the deduplicated finding event names in first-occurrence order;
// every SafetyConcerns entry's event appears in AdverseEvents.
type InsightResponse struct {
	InsightResult
	AdverseEvents    []string        `json:"adverse_events"`
	SafetyConcerns   []SafetyFinding `json:"safety_concerns"`
	ProcessingTimeMS int64           `json:"processing_time_ms"`
	Model            string          `json:"model,omitempty"`
	Source           string          `json:"source,omitempty"`
	Category         string          `json:"category,omitempty"`
	Status           string          `json:"status"`
}
