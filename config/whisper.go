package config

import (
	"fmt"
	"os"
)

type WhisperConfig struct {
	ApiUrl   string
	ApiKey   string
	Model    string
	Language string
}

func GetWhisperConfig() (*WhisperConfig, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set")
	}

	return &WhisperConfig{
		ApiUrl:   envOr("WHISPER_API_URL", "https://api.openai.com/v1/audio/transcriptions"),
		ApiKey:   apiKey,
		Model:    envOr("WHISPER_MODEL", "whisper-1"),
		Language: envOr("WHISPER_LANGUAGE", "en"),
	}, nil
}
