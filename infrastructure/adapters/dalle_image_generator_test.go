package adapters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/config"
	"github.com/dan-shah/bedtime-stories/domain"
)

func TestDalleImageGenerator_Generate(t *testing.T) {
	imageBytes := []byte("png-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req dalleApiRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "dall-e-3", req.Model)
		assert.Equal(t, "a sleepy fox under the stars", req.Prompt)
		assert.Equal(t, "1024x1024", req.Size)
		assert.Equal(t, 1, req.Number)
		assert.Equal(t, "b64_json", req.ResponseFormat)

		fmt.Fprintf(w, `{"data":[{"b64_json":%q}]}`, base64.StdEncoding.EncodeToString(imageBytes))
	}))
	defer server.Close()

	logger := NewZerologWrapper("test")
	fetcher := NewContentFetcher(logger, time.Second, nil)
	generator := NewDalleImageGenerator(fetcher, &config.DalleConfig{
		ApiUrl: server.URL,
		ApiKey: "secret",
		Size:   "1024x1024",
	}, logger)

	image, err := generator.Generate(context.Background(), outbound.GenerateImageParams{
		Prompt: "a sleepy fox under the stars",
		Model:  domain.ImageModelDallE3,
	})

	require.NoError(t, err)
	assert.Equal(t, imageBytes, image)
}

func TestDalleImageGenerator_EmptyDataIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	logger := NewZerologWrapper("test")
	fetcher := NewContentFetcher(logger, time.Second, nil)
	generator := NewDalleImageGenerator(fetcher, &config.DalleConfig{
		ApiUrl: server.URL,
		ApiKey: "secret",
		Size:   "1024x1024",
	}, logger)

	_, err := generator.Generate(context.Background(), outbound.GenerateImageParams{
		Prompt: "a sleepy fox",
		Model:  domain.ImageModelDallE2,
	})

	assert.Error(t, err)
}
