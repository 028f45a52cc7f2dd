package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/config"
)

type dalleApiRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size"`
	Number         int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type dalleApiResponse struct {
	Data []struct {
		B64Json string `json:"b64_json"`
	} `json:"data"`
}

type dalleImageGenerator struct {
	ContentFetcher
	logger      outbound.LoggerPort
	dalleConfig *config.DalleConfig
}

func NewDalleImageGenerator(contentFetcher ContentFetcher, dalleConfig *config.DalleConfig,
	logger outbound.LoggerPort) outbound.ImageGeneratorPort {
	return &dalleImageGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		dalleConfig:    dalleConfig,
	}
}

func (i *dalleImageGenerator) Generate(ctx context.Context, params outbound.GenerateImageParams) ([]byte, error) {
	req, err := i.getRequest(ctx, params)
	if err != nil {
		i.logger.Error(err, "failed to create the image generation request")
		return nil, err
	}

	rawRes, err := i.FetchContent(req)
	if err != nil {
		i.logger.Error(err, "failed to fetch the generated image")
		return nil, err
	}

	var dalleRes dalleApiResponse
	if err := json.Unmarshal(rawRes, &dalleRes); err != nil {
		i.logger.Error(err, "failed to unmarshal the image response")
		return nil, err
	}
	if len(dalleRes.Data) == 0 {
		return nil, errors.New("image response contained no data")
	}

	decodedImage, err := base64.StdEncoding.DecodeString(dalleRes.Data[0].B64Json)
	if err != nil {
		i.logger.Error(err, "failed to decode the image")
		return nil, err
	}

	return decodedImage, nil
}

func (i *dalleImageGenerator) getRequest(ctx context.Context, params outbound.GenerateImageParams) (*http.Request, error) {
	reqBody := dalleApiRequest{
		Model:          string(params.Model),
		Prompt:         params.Prompt,
		Size:           i.dalleConfig.Size,
		Number:         1,
		ResponseFormat: "b64_json",
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		i.logger.Error(err, "failed to marshal the image request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.dalleConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		i.logger.Error(err, "failed to create the image HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+i.dalleConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
