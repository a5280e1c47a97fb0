package models

const (
	DefaultSource   = "unknown"
	DefaultCategory = "general"
)

// FeedbackRequest is the inbound payload for an insights run. Source and
// Category are free-text labels defaulted by the validator when blank.
type FeedbackRequest struct {
	Text     string `json:"text"`
	Source   string `json:"source,omitempty"`
	Category string `json:"category,omitempty"`
}
