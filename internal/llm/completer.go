package llm

import (
	"context"
	"fmt"

	"github.com/spacesedan/insightflow/config"
)

// Completer is the boundary to the hosted language model: one prompt in,
// one text completion out. Implementations must honor ctx cancellation.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	ModelID() string
}

func NewCompleter(cfg *config.Config) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderBedrock:
		return NewBedrockCompleter(cfg), nil
	case config.ProviderOpenAI:
		return NewOpenAICompleter(cfg), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
