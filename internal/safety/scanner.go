package safety

import (
	"sort"
	"strings"

	"github.com/spacesedan/insightflow/internal/models"
)

// Characters of context kept on each side of a matched keyword.
const contextWindow = 30

// Scanner is a pure keyword detector over a fixed rule table. Scan performs
// no external calls, never fails, and yields an identical ordered finding
// list for identical input.
type Scanner struct {
	table             Table
	minConfidence     float64
	severeModifiers   []string
	moderateModifiers []string
}

// ScannerConfig carries the tunable parts of severity and confidence
// handling. Zero values fall back to the shipped defaults.
type ScannerConfig struct {
	MinConfidence     float64
	SevereModifiers   []string
	ModerateModifiers []string
}

func NewScanner(table Table, cfg ScannerConfig) *Scanner {
	s := &Scanner{
		table:             table,
		minConfidence:     cfg.MinConfidence,
		severeModifiers:   cfg.SevereModifiers,
		moderateModifiers: cfg.ModerateModifiers,
	}
	if s.minConfidence == 0 {
		s.minConfidence = 0.3
	}
	if s.severeModifiers == nil {
		s.severeModifiers = []string{"severe", "dangerous", "emergency"}
	}
	if s.moderateModifiers == nil {
		s.moderateModifiers = []string{"serious"}
	}
	return s
}

// Scan emits at most one finding per event, anchored at the earliest
// occurrence among the event's keywords. Findings are ordered by that
// position; ties keep table order.
func (s *Scanner) Scan(text string) []models.SafetyFinding {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	type match struct {
		finding  models.SafetyFinding
		position int
		order    int
	}
	var matches []match

	for i, rule := range s.table {
		pos, keyword := firstKeyword(lower, rule.Keywords)
		if pos < 0 {
			continue
		}
		matches = append(matches, match{
			finding: models.SafetyFinding{
				Event:          rule.Event,
				Severity:       s.assessSeverity(lower, rule),
				Confidence:     rule.Confidence,
				SafetyCategory: rule.Category,
				DetectedPhrase: excerpt(text, pos, len(keyword)),
			},
			position: pos,
			order:    i,
		})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].position != matches[b].position {
			return matches[a].position < matches[b].position
		}
		return matches[a].order < matches[b].order
	})

	findings := make([]models.SafetyFinding, len(matches))
	for i, m := range matches {
		findings[i] = m.finding
	}
	return findings
}

// Validate drops findings at or below the confidence floor and keeps only
// the first finding per event name.
func (s *Scanner) Validate(findings []models.SafetyFinding) []models.SafetyFinding {
	seen := make(map[string]struct{}, len(findings))
	validated := make([]models.SafetyFinding, 0, len(findings))
	for _, f := range findings {
		if f.Confidence <= s.minConfidence {
			continue
		}
		if _, ok := seen[f.Event]; ok {
			continue
		}
		seen[f.Event] = struct{}{}
		validated = append(validated, f)
	}
	return validated
}

func (s *Scanner) assessSeverity(lower string, rule EventRule) string {
	if containsAny(lower, rule.Severe) || containsAny(lower, s.severeModifiers) {
		return models.SeveritySevere
	}
	if containsAny(lower, rule.Moderate) || containsAny(lower, s.moderateModifiers) {
		return models.SeverityModerate
	}
	return models.SeverityMild
}

// firstKeyword returns the earliest occurrence among the keywords, or -1.
func firstKeyword(lower string, keywords []string) (int, string) {
	best := -1
	var bestKeyword string
	for _, kw := range keywords {
		if idx := strings.Index(lower, kw); idx >= 0 && (best < 0 || idx < best) {
			best = idx
			bestKeyword = kw
		}
	}
	return best, bestKeyword
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// excerpt returns the matched keyword with up to contextWindow characters on
// each side, elided when truncated.
func excerpt(text string, pos, keywordLen int) string {
	start := pos - contextWindow
	if start < 0 {
		start = 0
	}
	end := pos + keywordLen + contextWindow
	if end > len(text) {
		end = len(text)
	}

	out := strings.TrimSpace(text[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out = out + "..."
	}
	return out
}
