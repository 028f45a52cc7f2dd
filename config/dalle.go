package config

import (
	"fmt"
	"os"
)

type DalleConfig struct {
	ApiUrl       string
	ApiKey       string
	DefaultModel string
	Size         string
}

func GetDalleConfig() (*DalleConfig, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set")
	}

	return &DalleConfig{
		ApiUrl:       envOr("DALLE_API_URL", "https://api.openai.com/v1/images/generations"),
		ApiKey:       apiKey,
		DefaultModel: envOr("DALLE_MODEL", "dall-e-2"),
		Size:         envOr("DALLE_SIZE", "1024x1024"),
	}, nil
}
