package sentiment

import (
	"log/slog"

	"github.com/jonreiter/govader"

	"github.com/spacesedan/insightflow/internal/models"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

// Label thresholds on the VADER compound score.
const (
	positiveThreshold = 0.20
	negativeThreshold = -0.20
)

// AnalyzeWithVADER scores already-normalized plain text with the local
// lexicon analyzer.
func AnalyzeWithVADER(text string) (float64, string) {
	score := analyzer.PolarityScores(text).Compound

	var label string
	if score >= positiveThreshold {
		label = models.SentimentPositive
	} else if score <= negativeThreshold {
		label = models.SentimentNegative
	} else {
		label = models.SentimentNeutral
	}

	return score, label
}

// Corroborate cross-checks the hosted model's sentiment against the local
// analyzer. On a sign disagreement the result confidence is capped and the
// disagreement logged; the model's score and label stand. Returns false
// when the scores disagreed.
func Corroborate(text string, result *models.InsightResult) bool {
	localScore, localLabel := AnalyzeWithVADER(text)

	disagree := (localScore >= positiveThreshold && result.SentimentScore <= negativeThreshold) ||
		(localScore <= negativeThreshold && result.SentimentScore >= positiveThreshold)
	if !disagree {
		return true
	}

	if result.Confidence > 0.5 {
		result.Confidence = 0.5
	}
	slog.Warn("[Sentiment] Local analyzer disagrees with model score",
		slog.Float64("vader_score", localScore),
		slog.String("vader_label", localLabel),
		slog.Float64("model_score", result.SentimentScore),
		slog.String("model_label", result.SentimentLabel))

	return false
}
