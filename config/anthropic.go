package config

import (
	"fmt"
	"os"
	"strconv"
)

type AnthropicConfig struct {
	ApiUrl     string
	ApiKey     string
	Model      string
	ApiVersion string
	MaxTokens  int
}

func GetAnthropicConfig() (*AnthropicConfig, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY must be set")
	}

	maxTokens := envOr("ANTHROPIC_MAX_TOKENS", "1024")
	maxTokensVal, err := strconv.Atoi(maxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ANTHROPIC_MAX_TOKENS: %w", err)
	}

	return &AnthropicConfig{
		ApiUrl:     envOr("ANTHROPIC_API_URL", "https://api.anthropic.com/v1/messages"),
		ApiKey:     apiKey,
		Model:      envOr("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		ApiVersion: envOr("ANTHROPIC_API_VERSION", "2023-06-01"),
		MaxTokens:  maxTokensVal,
	}, nil
}
