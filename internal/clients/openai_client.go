package clients

import (
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	openAIClientInstance *OpenAIClient
	openAIOnce           sync.Once
)

type OpenAIClient struct {
	Client *openai.Client
}

func GetOpenAIClient() *OpenAIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		slog.Error("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
		panic("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
	}
	openAIOnce.Do(func() {
		openAIClientInstance = &OpenAIClient{
			Client: openai.NewClient(
				option.WithAPIKey(apiKey),
				option.WithHTTPClient(&http.Client{Timeout: CLIENT_TIMEOUT}),
			),
		}
		slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
			slog.Duration("timeout", CLIENT_TIMEOUT))
	})
	return openAIClientInstance
}
