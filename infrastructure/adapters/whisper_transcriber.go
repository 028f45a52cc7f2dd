package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/config"
)

type whisperResponse struct {
	Text string `json:"text"`
}

type whisperTranscriber struct {
	ContentFetcher
	logger        outbound.LoggerPort
	whisperConfig *config.WhisperConfig
}

func NewWhisperTranscriber(contentFetcher ContentFetcher, whisperConfig *config.WhisperConfig,
	logger outbound.LoggerPort) outbound.TranscriberPort {
	return &whisperTranscriber{
		ContentFetcher: contentFetcher,
		logger:         logger,
		whisperConfig:  whisperConfig,
	}
}

func (w *whisperTranscriber) Transcribe(ctx context.Context, params outbound.TranscribeParams) (string, error) {
	req, err := w.getRequest(ctx, params)
	if err != nil {
		w.logger.Error(err, "failed to construct the transcription request")
		return "", err
	}

	rawRes, err := w.FetchContent(req)
	if err != nil {
		w.logger.Error(err, "failed to fetch the transcription")
		return "", err
	}

	var res whisperResponse
	if err := json.Unmarshal(rawRes, &res); err != nil {
		w.logger.Error(err, "failed to unmarshal the transcription response")
		return "", err
	}

	return res.Text, nil
}

func (w *whisperTranscriber) getRequest(ctx context.Context, params outbound.TranscribeParams) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", params.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(params.Audio); err != nil {
		return nil, err
	}
	if err := writer.WriteField("model", w.whisperConfig.Model); err != nil {
		return nil, err
	}
	if err := writer.WriteField("language", w.whisperConfig.Language); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.whisperConfig.ApiUrl, &body)
	if err != nil {
		w.logger.Error(err, "failed to create the transcription HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+w.whisperConfig.ApiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req, nil
}
