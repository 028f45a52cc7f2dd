package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Port          int
	JwksUrl       string
	StubProviders bool
	CallTimeout   time.Duration
	RatePerSecond float64
	RateBurst     int
	BundleTTL     time.Duration
}

func GetServerConfig() (*ServerConfig, error) {
	port, err := strconv.Atoi(envOr("PORT", "8501"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PORT: %w", err)
	}

	callTimeout, err := time.ParseDuration(envOr("UPSTREAM_CALL_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse UPSTREAM_CALL_TIMEOUT: %w", err)
	}

	ratePerSecond, err := strconv.ParseFloat(envOr("UPSTREAM_RATE_PER_SECOND", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse UPSTREAM_RATE_PER_SECOND: %w", err)
	}

	rateBurst, err := strconv.Atoi(envOr("UPSTREAM_RATE_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse UPSTREAM_RATE_BURST: %w", err)
	}

	bundleTTL, err := time.ParseDuration(envOr("BUNDLE_CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse BUNDLE_CACHE_TTL: %w", err)
	}

	return &ServerConfig{
		Port:          port,
		JwksUrl:       os.Getenv("JWKS_URL"),
		StubProviders: os.Getenv("STUB_PROVIDERS") == "true",
		CallTimeout:   callTimeout,
		RatePerSecond: ratePerSecond,
		RateBurst:     rateBurst,
		BundleTTL:     bundleTTL,
	}, nil
}
