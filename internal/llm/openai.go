package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"

	"github.com/spacesedan/insightflow/config"
	"github.com/spacesedan/insightflow/internal/clients"
)

type OpenAICompleter struct {
	client *clients.OpenAIClient
	model  string
}

func NewOpenAICompleter(cfg *config.Config) *OpenAICompleter {
	return &OpenAICompleter{
		client: clients.GetOpenAIClient(),
		model:  cfg.OpenAIModel,
	}
}

func (o *OpenAICompleter) ModelID() string { return o.model }

func (o *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	chatCompletion, err := o.client.Client.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			}),
			Model:       openai.F(openai.ChatModel(o.model)),
			Temperature: openai.Float(0.5),
		})
	if err != nil {
		slog.Error("[OpenAICompleter] Completion request failed",
			slog.String("model", o.model),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai completion failed: %w", err)
	}

	slog.Info("[OpenAICompleter] Completion received",
		slog.String("model", o.model),
		slog.Duration("elapsed", time.Since(start)))

	if len(chatCompletion.Choices) == 0 {
		return "", nil
	}
	return chatCompletion.Choices[0].Message.Content, nil
}
