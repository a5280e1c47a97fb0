package language

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spacesedan/insightflow/internal/llm"
)

const translationPrompt = `Translate this customer feedback to English.
Preserve the tone and any product or safety details exactly.

Feedback: "%s"

Respond ONLY with the English translation, no additional text.`

type Translator struct {
	completer llm.Completer
}

func NewTranslator(completer llm.Completer) *Translator {
	return &Translator{completer: completer}
}

// Translate produces an English rendering of text. Callers treat failure as
// non-fatal and continue with the original text.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	raw, err := t.completer.Complete(ctx, fmt.Sprintf(translationPrompt, text))
	if err != nil {
		return "", err
	}

	translated := strings.TrimSpace(raw)
	if translated == "" {
		return "", fmt.Errorf("translator returned an empty completion")
	}

	slog.Info("[Translator] Text translated for analysis",
		slog.Int("chars", len(translated)))

	return translated, nil
}
