package insights

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spacesedan/insightflow/internal/models"
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

const validCompletion = `{
	"sentiment_score": -0.7,
	"sentiment_label": "negative",
	"language_detected": "english",
	"unmet_needs": ["durable materials"],
	"pain_points": ["handle snapped"],
	"positive_aspects": [],
	"recommendations": ["reinforce the handle"],
	"confidence": 0.85
}`

func extractionKind(t *testing.T, err error) ErrKind {
	t.Helper()
	var xErr *ExtractionError
	if !errors.As(err, &xErr) {
		t.Fatalf("want *ExtractionError, got %v", err)
	}
	return xErr.Kind
}

func TestExtract_ValidCompletion(t *testing.T) {
	fake := &fakeCompleter{completion: validCompletion}
	e := NewExtractor(fake)

	got, err := e.Extract(context.Background(), "the handle snapped", models.FeedbackRequest{
		Text:     "the handle snapped",
		Source:   "app_review",
		Category: "kitchen",
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got.SentimentScore != -0.7 || got.SentimentLabel != models.SentimentNegative {
		t.Errorf("got score=%v label=%q, want -0.7 negative", got.SentimentScore, got.SentimentLabel)
	}
	if got.Confidence != 0.85 {
		t.Errorf("got confidence %v, want 0.85", got.Confidence)
	}
	if len(got.PainPoints) != 1 || got.PainPoints[0] != "handle snapped" {
		t.Errorf("got pain points %v", got.PainPoints)
	}
	if got.PositiveAspects == nil || len(got.PositiveAspects) != 0 {
		t.Errorf("empty list should stay non-nil and empty, got %#v", got.PositiveAspects)
	}
	if fake.calls != 1 {
		t.Errorf("got %d completions, want exactly 1", fake.calls)
	}
}

func TestExtract_PromptCarriesRequestFields(t *testing.T) {
	fake := &fakeCompleter{completion: validCompletion}
	e := NewExtractor(fake)

	_, err := e.Extract(context.Background(), "the handle snapped", models.FeedbackRequest{
		Source:   "app_review",
		Category: "kitchen",
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for _, want := range []string{"the handle snapped", "app_review", "kitchen"} {
		if !strings.Contains(fake.lastPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestExtract_FencedCompletion(t *testing.T) {
	fake := &fakeCompleter{completion: "```json\n" + validCompletion + "\n```"}
	e := NewExtractor(fake)

	got, err := e.Extract(context.Background(), "text", models.FeedbackRequest{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.SentimentLabel != models.SentimentNegative {
		t.Errorf("got label %q, want negative", got.SentimentLabel)
	}
}

func TestExtract_CompleterErrorIsUpstreamUnavailable(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("connection reset")}
	e := NewExtractor(fake)

	_, err := e.Extract(context.Background(), "text", models.FeedbackRequest{})

	if kind := extractionKind(t, err); kind != UpstreamUnavailable {
		t.Errorf("got kind %q, want %q", kind, UpstreamUnavailable)
	}
}

func TestExtract_MalformedCompletions(t *testing.T) {
	tests := []struct {
		name       string
		completion string
	}{
		{
			name:       "not json",
			completion: "I am sorry, I cannot analyze this feedback.",
		},
		{
			name:       "empty completion",
			completion: "",
		},
		{
			name: "missing required field",
			completion: `{
				"sentiment_score": -0.7,
				"sentiment_label": "negative",
				"language_detected": "english",
				"unmet_needs": [],
				"pain_points": [],
				"positive_aspects": [],
				"recommendations": []
			}`,
		},
		{
			name: "explicit null field",
			completion: `{
				"sentiment_score": -0.7,
				"sentiment_label": "negative",
				"language_detected": "english",
				"unmet_needs": null,
				"pain_points": [],
				"positive_aspects": [],
				"recommendations": [],
				"confidence": 0.85
			}`,
		},
		{
			name: "unknown sentiment label",
			completion: `{
				"sentiment_score": -0.7,
				"sentiment_label": "angry",
				"language_detected": "english",
				"unmet_needs": [],
				"pain_points": [],
				"positive_aspects": [],
				"recommendations": [],
				"confidence": 0.85
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCompleter{completion: tt.completion}
			e := NewExtractor(fake)

			_, err := e.Extract(context.Background(), "text", models.FeedbackRequest{})

			if kind := extractionKind(t, err); kind != MalformedOutput {
				t.Errorf("got kind %q, want %q", kind, MalformedOutput)
			}
		})
	}
}

func TestExtract_ClampsOutOfRangeScores(t *testing.T) {
	fake := &fakeCompleter{completion: `{
		"sentiment_score": 1.8,
		"sentiment_label": "positive",
		"language_detected": "english",
		"unmet_needs": [],
		"pain_points": [],
		"positive_aspects": [],
		"recommendations": [],
		"confidence": 1.4
	}`}
	e := NewExtractor(fake)

	got, err := e.Extract(context.Background(), "text", models.FeedbackRequest{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got.SentimentScore != 1 {
		t.Errorf("got score %v, want clamped to 1", got.SentimentScore)
	}
	if got.Confidence != 1 {
		t.Errorf("got confidence %v, want clamped to 1", got.Confidence)
	}
}

func TestExtract_SingleAttemptOnFailure(t *testing.T) {
	fake := &fakeCompleter{completion: "not json"}
	e := NewExtractor(fake)

	_, _ = e.Extract(context.Background(), "text", models.FeedbackRequest{})

	if fake.calls != 1 {
		t.Errorf("got %d completions, want exactly 1 with no retry", fake.calls)
	}
}
