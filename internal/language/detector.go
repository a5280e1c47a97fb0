package language

import (
	lingua "github.com/pemistahl/lingua-go"
)

const (
	LanguageEnglish = "english"
	LanguageSpanish = "spanish"
	LanguageFrench  = "french"
	LanguageOther   = "other"
)

// The candidate set includes common confusable neighbors so that text in an
// unsupported language lands on "other" instead of the closest supported one.
var detector = lingua.NewLanguageDetectorBuilder().
	FromLanguages(
		lingua.English,
		lingua.Spanish,
		lingua.French,
		lingua.German,
		lingua.Italian,
		lingua.Portuguese,
	).
	Build()

// Detect maps text to one of the supported language labels. Detection is
// local and deterministic for a given input.
func Detect(text string) string {
	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return LanguageOther
	}
	switch lang {
	case lingua.English:
		return LanguageEnglish
	case lingua.Spanish:
		return LanguageSpanish
	case lingua.French:
		return LanguageFrench
	default:
		return LanguageOther
	}
}
