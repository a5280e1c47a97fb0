package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spacesedan/insightflow/config"
	"github.com/spacesedan/insightflow/internal/insights"
	"github.com/spacesedan/insightflow/internal/language"
	"github.com/spacesedan/insightflow/internal/models"
	"github.com/spacesedan/insightflow/internal/monitoring"
	"github.com/spacesedan/insightflow/internal/safety"
	"github.com/spacesedan/insightflow/internal/validation"
)

type fakeCompleter struct {
	completion string
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.completion, f.err
}

func (f *fakeCompleter) ModelID() string { return "fake-model" }

type fakePublisher struct {
	counts    map[string]float64
	durations []string
}

func (f *fakePublisher) Count(ctx context.Context, name string, value float64) {
	if f.counts == nil {
		f.counts = map[string]float64{}
	}
	f.counts[name] += value
}

func (f *fakePublisher) Duration(ctx context.Context, name string, d time.Duration) {
	f.durations = append(f.durations, name)
}

const negativeCompletion = `{
	"sentiment_score": -0.7,
	"sentiment_label": "negative",
	"language_detected": "english",
	"unmet_needs": ["safer heating element"],
	"pain_points": ["gets dangerously hot"],
	"positive_aspects": [],
	"recommendations": ["add an automatic cutoff"],
	"confidence": 0.85
}`

func newTestPipeline(t *testing.T, translation *fakeCompleter, extraction *fakeCompleter, pub monitoring.Publisher) *Pipeline {
	t.Helper()
	validator, err := validation.NewValidator(&config.Config{MaxTextLength: 5000})
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	scanner := safety.NewScanner(safety.BuiltinTable(), safety.ScannerConfig{})

	return NewPipeline(
		validator,
		language.NewTranslator(translation),
		scanner,
		insights.NewExtractor(extraction),
		pub,
		5*time.Second,
	)
}

func TestProcess_EnglishFeedbackWithAdverseEvent(t *testing.T) {
	translation := &fakeCompleter{}
	extraction := &fakeCompleter{completion: negativeCompletion}
	pub := &fakePublisher{}
	pipe := newTestPipeline(t, translation, extraction, pub)

	resp, err := pipe.Process(context.Background(), models.FeedbackRequest{
		Text: "The kettle got very hot and burned my hand. This is dangerous.",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if resp.Status != models.StatusSuccess {
		t.Errorf("got status %q, want success", resp.Status)
	}
	if resp.SentimentLabel != models.SentimentNegative {
		t.Errorf("got label %q, want negative", resp.SentimentLabel)
	}
	if resp.LanguageDetected != language.LanguageEnglish {
		t.Errorf("got language %q, want english", resp.LanguageDetected)
	}
	if len(resp.AdverseEvents) != 1 || resp.AdverseEvents[0] != "burn" {
		t.Errorf("got adverse events %v, want [burn]", resp.AdverseEvents)
	}
	if len(resp.SafetyConcerns) != 1 || resp.SafetyConcerns[0].Severity != models.SeveritySevere {
		t.Errorf("got safety concerns %+v, want one severe burn finding", resp.SafetyConcerns)
	}
	if resp.Confidence != 0.85 {
		t.Errorf("got confidence %v, want 0.85", resp.Confidence)
	}
	if resp.Model != "fake-model" {
		t.Errorf("got model %q, want fake-model", resp.Model)
	}
	if resp.Source != models.DefaultSource || resp.Category != models.DefaultCategory {
		t.Errorf("got source=%q category=%q, want defaults", resp.Source, resp.Category)
	}
	if resp.ProcessingTimeMS < 0 {
		t.Errorf("got processing time %d, want non-negative", resp.ProcessingTimeMS)
	}

	if translation.calls != 0 {
		t.Errorf("english text should not be translated, got %d calls", translation.calls)
	}
	if extraction.calls != 1 {
		t.Errorf("got %d extraction calls, want 1", extraction.calls)
	}
	if pub.counts[monitoring.MetricRequestCount] != 1 {
		t.Errorf("got request count %v, want 1", pub.counts[monitoring.MetricRequestCount])
	}
	if pub.counts[monitoring.MetricAdverseEvents] != 1 {
		t.Errorf("got adverse event count %v, want 1", pub.counts[monitoring.MetricAdverseEvents])
	}
}

func TestProcess_EmptyTextFailsBeforeAnyModelCall(t *testing.T) {
	translation := &fakeCompleter{}
	extraction := &fakeCompleter{completion: negativeCompletion}
	pipe := newTestPipeline(t, translation, extraction, monitoring.NopPublisher{})

	_, err := pipe.Process(context.Background(), models.FeedbackRequest{Text: "   "})

	var vErr *validation.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	if translation.calls != 0 || extraction.calls != 0 {
		t.Errorf("no model call should happen, got translation=%d extraction=%d",
			translation.calls, extraction.calls)
	}
}

func TestProcess_SpanishFeedbackIsTranslatedBeforeScanning(t *testing.T) {
	translation := &fakeCompleter{completion: "It burned my hand when it stopped working"}
	extraction := &fakeCompleter{completion: negativeCompletion}
	pipe := newTestPipeline(t, translation, extraction, monitoring.NopPublisher{})

	resp, err := pipe.Process(context.Background(), models.FeedbackRequest{
		Text: "El producto dejó de funcionar después de una semana y estoy muy decepcionado",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if resp.LanguageDetected != language.LanguageSpanish {
		t.Errorf("got language %q, want spanish", resp.LanguageDetected)
	}
	if translation.calls != 1 {
		t.Fatalf("got %d translation calls, want 1", translation.calls)
	}
	// The scan and the extraction both ran on the translated text.
	if len(resp.AdverseEvents) != 1 || resp.AdverseEvents[0] != "burn" {
		t.Errorf("got adverse events %v, want [burn] from the translation", resp.AdverseEvents)
	}
	if resp.Confidence != 0.85 {
		t.Errorf("got confidence %v, want 0.85 with no cap", resp.Confidence)
	}
}

func TestProcess_TranslationFailureCapsConfidence(t *testing.T) {
	translation := &fakeCompleter{err: errors.New("model unavailable")}
	extraction := &fakeCompleter{completion: negativeCompletion}
	pipe := newTestPipeline(t, translation, extraction, monitoring.NopPublisher{})

	resp, err := pipe.Process(context.Background(), models.FeedbackRequest{
		Text: "El producto dejó de funcionar después de una semana y estoy muy decepcionado",
	})
	if err != nil {
		t.Fatalf("translation failure must not fail the request: %v", err)
	}

	if resp.Status != models.StatusSuccess {
		t.Errorf("got status %q, want success", resp.Status)
	}
	if resp.LanguageDetected != language.LanguageSpanish {
		t.Errorf("got language %q, want spanish", resp.LanguageDetected)
	}
	if resp.Confidence != 0.7 {
		t.Errorf("got confidence %v, want capped at 0.7", resp.Confidence)
	}
	if extraction.calls != 1 {
		t.Errorf("got %d extraction calls, want 1 on the original text", extraction.calls)
	}
}

func TestProcess_ExtractionFailureReturnsTypedError(t *testing.T) {
	translation := &fakeCompleter{}
	extraction := &fakeCompleter{err: errors.New("connection reset")}
	pub := &fakePublisher{}
	pipe := newTestPipeline(t, translation, extraction, pub)

	_, err := pipe.Process(context.Background(), models.FeedbackRequest{
		Text: "The kettle got very hot and burned my hand.",
	})

	var xErr *insights.ExtractionError
	if !errors.As(err, &xErr) {
		t.Fatalf("want *ExtractionError, got %v", err)
	}
	if xErr.Kind != insights.UpstreamUnavailable {
		t.Errorf("got kind %q, want %q", xErr.Kind, insights.UpstreamUnavailable)
	}
	if pub.counts[monitoring.MetricExtractionFailures] != 1 {
		t.Errorf("got failure count %v, want 1", pub.counts[monitoring.MetricExtractionFailures])
	}
}

func TestProcess_MalformedCompletionReturnsTypedError(t *testing.T) {
	translation := &fakeCompleter{}
	extraction := &fakeCompleter{completion: "I would rather write prose than JSON."}
	pipe := newTestPipeline(t, translation, extraction, monitoring.NopPublisher{})

	_, err := pipe.Process(context.Background(), models.FeedbackRequest{
		Text: "The kettle is fine.",
	})

	var xErr *insights.ExtractionError
	if !errors.As(err, &xErr) {
		t.Fatalf("want *ExtractionError, got %v", err)
	}
	if xErr.Kind != insights.MalformedOutput {
		t.Errorf("got kind %q, want %q", xErr.Kind, insights.MalformedOutput)
	}
}

func TestProcess_PIIRedactedBeforeExtraction(t *testing.T) {
	translation := &fakeCompleter{}
	extraction := &fakeCompleter{completion: negativeCompletion}
	pipe := newTestPipeline(t, translation, extraction, monitoring.NopPublisher{})

	_, err := pipe.Process(context.Background(), models.FeedbackRequest{
		Text: "Call me back at 555-123-4567, the kettle burned my hand",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if !strings.Contains(extraction.lastPrompt, "[PHONE]") || strings.Contains(extraction.lastPrompt, "555-123-4567") {
		t.Errorf("prompt should carry redacted text only, got %q", extraction.lastPrompt)
	}
}

func TestProcess_NoFindingsYieldsEmptyNonNilLists(t *testing.T) {
	translation := &fakeCompleter{}
	extraction := &fakeCompleter{completion: negativeCompletion}
	pipe := newTestPipeline(t, translation, extraction, monitoring.NopPublisher{})

	resp, err := pipe.Process(context.Background(), models.FeedbackRequest{
		Text: "Shipping took longer than promised and nobody answered my emails.",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if resp.AdverseEvents == nil || len(resp.AdverseEvents) != 0 {
		t.Errorf("got adverse events %#v, want empty non-nil list", resp.AdverseEvents)
	}
	if resp.SafetyConcerns == nil || len(resp.SafetyConcerns) != 0 {
		t.Errorf("got safety concerns %#v, want empty non-nil list", resp.SafetyConcerns)
	}
}
