package insights

import "fmt"

// The analysis prompt is a fixed template parameterized only by the request
// fields. The completion must be the JSON object alone so the strict parser
// can reject anything else.
const analysisPromptTemplate = `You are a marketing AI assistant analyzing customer feedback to extract business insights.
Analyze the following customer text for marketing intelligence and unmet needs.

Customer Text: "%s"
Source: %s
Category: %s

Analyze for:
1. Sentiment analysis (-1 to 1 scale)
2. Language detection
3. Unmet customer needs
4. Pain points and frustrations
5. Positive aspects mentioned
6. Marketing recommendations

### STRICT OUTPUT FORMAT
Respond ONLY with valid JSON in this exact format:
{
    "sentiment_score": 0.0,
    "sentiment_label": "positive|negative|neutral|mixed",
    "language_detected": "english|spanish|french|other",
    "unmet_needs": ["need1", "need2"],
    "pain_points": ["pain1", "pain2"],
    "positive_aspects": ["positive1", "positive2"],
    "recommendations": ["rec1", "rec2"],
    "confidence": 0.85
}

### REQUIREMENTS
- No Markdown formatting (no triple backticks, no explanations).
- No extra text before or after the JSON output.
- Every key above must be present; use empty lists when nothing applies.`

func BuildAnalysisPrompt(text, source, category string) string {
	return fmt.Sprintf(analysisPromptTemplate, text, source, category)
}
