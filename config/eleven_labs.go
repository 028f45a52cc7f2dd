package config

import (
	"fmt"
	"os"
	"strconv"
)

type ElevenLabsConfig struct {
	ApiUrl          string
	ApiKey          string
	ModelId         string
	Stability       float64
	SimilarityBoost float64
	MaxChunkRunes   int
}

func GetElevenLabsConfig() (*ElevenLabsConfig, error) {
	apiKey := os.Getenv("ELEVENLABS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY must be set")
	}

	stability, err := strconv.ParseFloat(envOr("ELEVENLABS_STABILITY", "0.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ELEVENLABS_STABILITY: %w", err)
	}

	similarityBoost, err := strconv.ParseFloat(envOr("ELEVENLABS_SIMILARITY_BOOST", "0.75"), 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ELEVENLABS_SIMILARITY_BOOST: %w", err)
	}

	maxChunkRunes, err := strconv.Atoi(envOr("ELEVENLABS_MAX_CHUNK_RUNES", "2400"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ELEVENLABS_MAX_CHUNK_RUNES: %w", err)
	}

	return &ElevenLabsConfig{
		ApiUrl:          envOr("ELEVENLABS_API_URL", "https://api.elevenlabs.io/v1/text-to-speech"),
		ApiKey:          apiKey,
		ModelId:         envOr("ELEVENLABS_MODEL_ID", "eleven_monolingual_v1"),
		Stability:       stability,
		SimilarityBoost: similarityBoost,
		MaxChunkRunes:   maxChunkRunes,
	}, nil
}
