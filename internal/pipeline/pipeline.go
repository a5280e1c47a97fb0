package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/insightflow/internal/insights"
	"github.com/spacesedan/insightflow/internal/language"
	"github.com/spacesedan/insightflow/internal/models"
	"github.com/spacesedan/insightflow/internal/monitoring"
	"github.com/spacesedan/insightflow/internal/safety"
	"github.com/spacesedan/insightflow/internal/sentiment"
	"github.com/spacesedan/insightflow/internal/validation"
)

// lowConfidenceCap bounds result confidence whenever analysis ran on text
// the model was not meant for: unsupported languages and failed translations.
const lowConfidenceCap = 0.7

// Pipeline runs a feedback request through validation, language handling,
// safety scanning, insight extraction and assembly. It holds no per-request
// state; every call is independent.
type Pipeline struct {
	validator  *validation.Validator
	translator *language.Translator
	scanner    *safety.Scanner
	extractor  *insights.Extractor
	metrics    monitoring.Publisher
	timeout    time.Duration
}

func NewPipeline(
	validator *validation.Validator,
	translator *language.Translator,
	scanner *safety.Scanner,
	extractor *insights.Extractor,
	metrics monitoring.Publisher,
	timeout time.Duration,
) *Pipeline {
	return &Pipeline{
		validator:  validator,
		translator: translator,
		scanner:    scanner,
		extractor:  extractor,
		metrics:    metrics,
		timeout:    timeout,
	}
}

// Process analyzes one feedback submission. Validation failures return
// before any external call is made; extraction failures surface as
// *insights.ExtractionError, never as a degraded success.
func (p *Pipeline) Process(ctx context.Context, req models.FeedbackRequest) (models.InsightResponse, error) {
	validated, err := p.validator.Validate(req)
	if err != nil {
		return models.InsightResponse{}, err
	}

	// Reported processing time covers the pipeline stages, not the
	// pre-pipeline rejection path.
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// PII is stripped once, up front, so no downstream stage or hosted
	// model ever sees the raw identifiers.
	working := language.RedactPII(language.Normalize(validated.Text))

	detected := language.Detect(working)
	analysisText := working
	lowConfidence := false
	translated := false

	switch detected {
	case language.LanguageSpanish, language.LanguageFrench:
		english, err := p.translator.Translate(ctx, working)
		if err != nil {
			slog.Warn("[Pipeline] Translation failed, analyzing original text",
				slog.String("language", detected),
				slog.String("error", err.Error()))
			lowConfidence = true
		} else {
			analysisText = english
			translated = true
		}
	case language.LanguageOther:
		lowConfidence = true
	}

	findings := p.scanner.Validate(p.scanner.Scan(analysisText))

	result, err := p.extractor.Extract(ctx, analysisText, validated)
	if err != nil {
		p.metrics.Count(ctx, monitoring.MetricExtractionFailures, 1)
		return models.InsightResponse{}, err
	}

	// VADER only understands English, so corroboration runs on original
	// English text or a successful translation.
	if detected == language.LanguageEnglish || translated {
		sentiment.Corroborate(analysisText, &result)
	}

	result.LanguageDetected = detected
	if lowConfidence && result.Confidence > lowConfidenceCap {
		result.Confidence = lowConfidenceCap
	}

	events := make([]string, 0, len(findings))
	for _, f := range findings {
		events = append(events, f.Event)
	}

	resp := models.InsightResponse{
		InsightResult:    result,
		AdverseEvents:    events,
		SafetyConcerns:   findings,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
		Model:            p.extractor.ModelID(),
		Source:           validated.Source,
		Category:         validated.Category,
		Status:           models.StatusSuccess,
	}

	p.metrics.Count(ctx, monitoring.MetricRequestCount, 1)
	p.metrics.Duration(ctx, monitoring.MetricProcessingLatency, time.Since(start))
	if len(events) > 0 {
		p.metrics.Count(ctx, monitoring.MetricAdverseEvents, float64(len(events)))
	}

	slog.Info("[Pipeline] Feedback processed",
		slog.String("language", detected),
		slog.String("sentiment", result.SentimentLabel),
		slog.Int("safety_findings", len(findings)),
		slog.Duration("elapsed", time.Since(start)))

	return resp, nil
}
