package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/insightflow/internal/llm"
	"github.com/spacesedan/insightflow/internal/models"
)

type ErrKind string

const (
	// UpstreamUnavailable means the model call itself failed: transport
	// error, timeout, cancellation.
	UpstreamUnavailable ErrKind = "upstream_unavailable"
	// MalformedOutput means the model answered but the completion did not
	// survive schema validation.
	MalformedOutput ErrKind = "malformed_output"
)

// ExtractionError is the failure branch of Extract. Kind tells the caller
// which of the two failure modes it is looking at.
type ExtractionError struct {
	Kind ErrKind
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed (%s): %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor turns prepared feedback text into a structured InsightResult
// via a single model completion. It never retries and never substitutes a
// default result for a failed call.
type Extractor struct {
	completer llm.Completer
}

func NewExtractor(completer llm.Completer) *Extractor {
	return &Extractor{completer: completer}
}

func (e *Extractor) ModelID() string { return e.completer.ModelID() }

// Extract runs one completion attempt against the configured model and
// parses the answer strictly. On failure the returned error is always an
// *ExtractionError.
func (e *Extractor) Extract(ctx context.Context, text string, req models.FeedbackRequest) (models.InsightResult, error) {
	prompt := BuildAnalysisPrompt(text, req.Source, req.Category)

	start := time.Now()
	completion, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		return models.InsightResult{}, &ExtractionError{Kind: UpstreamUnavailable, Err: err}
	}

	result, err := parseInsightResult(completion)
	if err != nil {
		slog.Error("[Extractor] Completion failed schema validation",
			slog.String("error", err.Error()),
			slog.String("completion_preview", preview(completion)))
		return models.InsightResult{}, &ExtractionError{Kind: MalformedOutput, Err: err}
	}

	slog.Info("[Extractor] Insights extracted",
		slog.String("sentiment_label", result.SentimentLabel),
		slog.Float64("confidence", result.Confidence),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// rawInsightResult mirrors InsightResult with pointer fields so that missing
// keys and explicit nulls are distinguishable from zero values.
type rawInsightResult struct {
	SentimentScore   *float64  `json:"sentiment_score"`
	SentimentLabel   *string   `json:"sentiment_label"`
	LanguageDetected *string   `json:"language_detected"`
	UnmetNeeds       *[]string `json:"unmet_needs"`
	PainPoints       *[]string `json:"pain_points"`
	PositiveAspects  *[]string `json:"positive_aspects"`
	Recommendations  *[]string `json:"recommendations"`
	Confidence       *float64  `json:"confidence"`
}

var validSentimentLabels = map[string]bool{
	models.SentimentPositive: true,
	models.SentimentNegative: true,
	models.SentimentNeutral:  true,
	models.SentimentMixed:    true,
}

func parseInsightResult(completion string) (models.InsightResult, error) {
	cleaned := llm.CleanJSONResponse(completion)
	if cleaned == "" {
		return models.InsightResult{}, fmt.Errorf("empty completion")
	}

	var raw rawInsightResult
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return models.InsightResult{}, fmt.Errorf("completion is not valid JSON: %w", err)
	}

	if missing := missingFields(raw); len(missing) > 0 {
		return models.InsightResult{}, fmt.Errorf("completion missing required fields: %s", strings.Join(missing, ", "))
	}

	// sentiment_label reaches the caller unchanged, so it must be one of
	// the four known values. language_detected is only required to be
	// present; the pipeline replaces it with the local detection result.
	if !validSentimentLabels[*raw.SentimentLabel] {
		return models.InsightResult{}, fmt.Errorf("unknown sentiment_label %q", *raw.SentimentLabel)
	}

	return models.InsightResult{
		SentimentScore:   clamp(*raw.SentimentScore, -1, 1),
		SentimentLabel:   *raw.SentimentLabel,
		LanguageDetected: *raw.LanguageDetected,
		UnmetNeeds:       *raw.UnmetNeeds,
		PainPoints:       *raw.PainPoints,
		PositiveAspects:  *raw.PositiveAspects,
		Recommendations:  *raw.Recommendations,
		Confidence:       clamp(*raw.Confidence, 0, 1),
	}, nil
}

func missingFields(raw rawInsightResult) []string {
	var missing []string
	if raw.SentimentScore == nil {
		missing = append(missing, "sentiment_score")
	}
	if raw.SentimentLabel == nil {
		missing = append(missing, "sentiment_label")
	}
	if raw.LanguageDetected == nil {
		missing = append(missing, "language_detected")
	}
	if raw.UnmetNeeds == nil {
		missing = append(missing, "unmet_needs")
	}
	if raw.PainPoints == nil {
		missing = append(missing, "pain_points")
	}
	if raw.PositiveAspects == nil {
		missing = append(missing, "positive_aspects")
	}
	if raw.Recommendations == nil {
		missing = append(missing, "recommendations")
	}
	if raw.Confidence == nil {
		missing = append(missing, "confidence")
	}
	return missing
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func preview(completion string) string {
	if len(completion) > 120 {
		return completion[:120]
	}
	return completion
}
