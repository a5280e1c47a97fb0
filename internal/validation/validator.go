package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spacesedan/insightflow/config"
	"github.com/spacesedan/insightflow/internal/models"
)

// ValidationError covers missing, empty, or over-long feedback text.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ContentPolicyError marks text rejected by the deny-list.
type ContentPolicyError struct {
	Pattern string
}

func (e *ContentPolicyError) Error() string {
	return fmt.Sprintf("text matches disallowed content pattern %q", e.Pattern)
}

type Validator struct {
	maxTextLength int
	denyList      []string
}

func NewValidator(cfg *config.Config) (*Validator, error) {
	denyList, err := LoadDenyList(cfg.DenyListPath)
	if err != nil {
		return nil, err
	}
	return &Validator{
		maxTextLength: cfg.MaxTextLength,
		denyList:      denyList,
	}, nil
}

// Validate trims and bounds the feedback text and applies the deny-list.
// It runs before any external call and has no side effects; over-long text
// is rejected, never truncated.
func (v *Validator) Validate(req models.FeedbackRequest) (models.FeedbackRequest, error) {
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return models.FeedbackRequest{}, &ValidationError{Reason: "Text field is required"}
	}
	if utf8.RuneCountInString(req.Text) > v.maxTextLength {
		return models.FeedbackRequest{}, &ValidationError{
			Reason: fmt.Sprintf("Text exceeds maximum length of %d characters", v.maxTextLength),
		}
	}

	lower := strings.ToLower(req.Text)
	for _, pattern := range v.denyList {
		if strings.Contains(lower, pattern) {
			return models.FeedbackRequest{}, &ContentPolicyError{Pattern: pattern}
		}
	}

	if strings.TrimSpace(req.Source) == "" {
		req.Source = models.DefaultSource
	}
	if strings.TrimSpace(req.Category) == "" {
		req.Category = models.DefaultCategory
	}

	return req, nil
}
