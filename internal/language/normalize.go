package language

import (
	"html"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern          = regexp.MustCompile(`<[^>]*>`)

	phonePattern = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	ssnPattern   = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
)

func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// Normalize renders any markdown to plain text, strips tags and links, and
// collapses whitespace. Feedback arrives from web forms and review scrapes,
// so markdown artifacts are common.
func Normalize(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := tagPattern.ReplaceAllString(string(output), " ")
	plain = html.UnescapeString(plain)
	// The renderer curls apostrophes; keyword matching needs them straight.
	plain = strings.ReplaceAll(plain, "’", "'")
	plain = RemoveLinks(plain)

	return strings.Join(strings.Fields(plain), " ")
}

// RedactPII masks phone numbers, email addresses, and SSN-shaped digit runs.
// Only the redacted form ever leaves the process; responses echo nothing
// that was masked.
func RedactPII(input string) string {
	input = phonePattern.ReplaceAllString(input, "[PHONE]")
	input = emailPattern.ReplaceAllString(input, "[EMAIL]")
	input = ssnPattern.ReplaceAllString(input, "[SSN]")
	return input
}
