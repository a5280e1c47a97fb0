package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderBedrock = "bedrock"
	ProviderOpenAI  = "openai"
)

// Config holds every knob the pipeline and the proxy read. It is built once
// at startup and passed into constructors; nothing reads the environment
// after Load returns.
type Config struct {
	Port string

	// Hosted model selection
	Provider       string
	BedrockModelID string
	BedrockRegion  string
	OpenAIModel    string
	MaxTokens      int

	// Per-request budget for all outbound model calls combined
	RequestTimeout time.Duration

	// Input validation
	MaxTextLength int
	DenyListPath  string

	// Safety scanning
	SafetyTableName     string
	MinSafetyConfidence float64
	SevereModifiers     []string
	ModerateModifiers   []string

	// Clustering inference proxy
	EndpointKeyword string

	// CloudWatch metrics
	MetricsEnabled   bool
	MetricsNamespace string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Provider:          strings.ToLower(getEnv("MODEL_PROVIDER", ProviderBedrock)),
		BedrockModelID:    getEnv("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0"),
		BedrockRegion:     getEnv("BEDROCK_REGION", "us-east-1"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		DenyListPath:      getEnv("DENY_LIST_PATH", ""),
		SafetyTableName:   getEnv("SAFETY_TABLE_NAME", ""),
		SevereModifiers:   getEnvList("SEVERE_MODIFIERS", []string{"severe", "dangerous", "emergency"}),
		ModerateModifiers: getEnvList("MODERATE_MODIFIERS", []string{"serious"}),
		EndpointKeyword:   strings.ToLower(getEnv("ENDPOINT_KEYWORD", "kmeans")),
		MetricsNamespace:  getEnv("METRICS_NAMESPACE", "InsightFlow/GenAI"),
	}

	if cfg.Provider != ProviderBedrock && cfg.Provider != ProviderOpenAI {
		return nil, fmt.Errorf("unknown MODEL_PROVIDER %q, must be %q or %q",
			cfg.Provider, ProviderBedrock, ProviderOpenAI)
	}

	var err error
	if cfg.MaxTokens, err = getEnvInt("MODEL_MAX_TOKENS", 1000); err != nil {
		return nil, err
	}
	if cfg.MaxTextLength, err = getEnvInt("MAX_TEXT_LENGTH", 5000); err != nil {
		return nil, err
	}
	timeoutSeconds, err := getEnvInt("REQUEST_TIMEOUT_SECONDS", 25)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = time.Duration(timeoutSeconds) * time.Second
	if cfg.MinSafetyConfidence, err = getEnvFloat("MIN_SAFETY_CONFIDENCE", 0.3); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled, err = getEnvBool("METRICS_ENABLED", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, strings.ToLower(p))
		}
	}
	return values
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return value, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return value, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return value, nil
}
