package adapters

import (
	"context"
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
)

func TestWhisperTranscriber_Transcribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "recording.wav", header.Filename)
		audio, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("wav-bytes"), audio)

		fmt.Fprint(w, `{"text":"a story about a brave turtle"}`)
	}))
	defer server.Close()

	logger := NewZerologWrapper("test")
	fetcher := NewContentFetcher(logger, time.Second, nil)
	transcriber := NewWhisperTranscriber(fetcher, &config.WhisperConfig{
		ApiUrl:   server.URL,
		ApiKey:   "secret",
		Model:    "whisper-1",
		Language: "en",
	}, logger)

	text, err := transcriber.Transcribe(context.Background(), outbound.TranscribeParams{
		Audio:    []byte("wav-bytes"),
		Filename: "recording.wav",
	})

	require.NoError(t, err)
	assert.Equal(t, "a story about a brave turtle", text)
}

func TestWhisperTranscriber_UpstreamErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad audio", http.StatusBadRequest)
	}))
	defer server.Close()

	logger := NewZerologWrapper("test")
	fetcher := NewContentFetcher(logger, time.Second, nil)
	transcriber := NewWhisperTranscriber(fetcher, &config.WhisperConfig{
		ApiUrl: server.URL,
		ApiKey: "secret",
	}, logger)

	_, err := transcriber.Transcribe(context.Background(), outbound.TranscribeParams{
		Audio:    []byte("noise"),
		Filename: "recording.wav",
	})

	assert.Error(t, err)
}
