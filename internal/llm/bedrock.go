package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/spacesedan/insightflow/config"
	"github.com/spacesedan/insightflow/internal/clients"
)

// anthropic messages payload, bedrock-2023-05-31 schema
type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContentBlock `json:"content"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type BedrockCompleter struct {
	client    *bedrockruntime.Client
	modelID   string
	maxTokens int
}

func NewBedrockCompleter(cfg *config.Config) *BedrockCompleter {
	return &BedrockCompleter{
		client:    clients.GetBedrockClient(cfg.BedrockRegion),
		modelID:   cfg.BedrockModelID,
		maxTokens: cfg.MaxTokens,
	}
}

func (b *BedrockCompleter) ModelID() string { return b.modelID }

func (b *BedrockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        b.maxTokens,
		Messages:         []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal model request: %w", err)
	}

	start := time.Now()
	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		slog.Error("[BedrockCompleter] InvokeModel failed",
			slog.String("model_id", b.modelID),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("bedrock invoke failed: %w", err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode bedrock response envelope: %w", err)
	}

	slog.Info("[BedrockCompleter] Completion received",
		slog.String("model_id", b.modelID),
		slog.Duration("elapsed", time.Since(start)))

	// An empty content list is left for the caller's parser to reject.
	var text string
	if len(resp.Content) > 0 {
		text = resp.Content[0].Text
	}
	return text, nil
}
