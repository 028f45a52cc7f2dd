package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/config"
	"github.com/dan-shah/bedtime-stories/domain"
	"github.com/donovanhide/eventsource"
)

const MaxStreamRetries = 3

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Stream      bool               `json:"stream"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicStreamEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type claudeStoryGenerator struct {
	logger          outbound.LoggerPort
	anthropicConfig *config.AnthropicConfig
	workerPool      outbound.TaskDispatcher
}

func NewClaudeStoryGenerator(anthropicConfig *config.AnthropicConfig, workerPool outbound.TaskDispatcher,
	logger outbound.LoggerPort) outbound.StoryGeneratorPort {
	return &claudeStoryGenerator{
		logger:          logger,
		anthropicConfig: anthropicConfig,
		workerPool:      workerPool,
	}
}

func (g *claudeStoryGenerator) Generate(ctx context.Context, req outbound.GenerateStoryRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)

	retryCount := 0

	newCtx, cancel := context.WithCancel(ctx)

	err := g.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		httpReq, err := g.createRequest(newCtx, req)
		if err != nil {
			g.logger.Error(err, "failed to create HTTP request for story stream")
			errCh <- err
			return
		}

		stream, err := eventsource.SubscribeWithRequest("", httpReq)
		if err != nil {
			g.logger.Error(err, "failed to subscribe to story stream")
			errCh <- err
			return
		}
		for {
			select {
			case <-newCtx.Done():
				return
			case ev := <-stream.Events:
				token, done, err := g.extractToken(ev)
				if err != nil {
					errCh <- err
					return
				}
				if done {
					return
				}
				if token != "" {
					select {
					case <-newCtx.Done():
						return
					case out <- token:
					}
				}
				retryCount = 0
			case err := <-stream.Errors:
				if err == io.EOF {
					g.logger.Debug("story stream closed")
					return
				}
				if retryCount < MaxStreamRetries {
					g.logger.ErrorWithFields(err, "error during story streaming, waiting for recovery", map[string]interface{}{
						"retry_count": retryCount,
					})
					retryCount++
					continue
				}
				g.logger.Error(err, "error during story streaming, max retries reached")
				errCh <- err
				return
			}
		}
	})
	if err != nil {
		g.logger.Error(err, "failed to submit story stream task to worker pool")
		errCh <- err
		close(out)
		close(errCh)
		cancel()
	}

	return out, errCh
}

func (g *claudeStoryGenerator) extractToken(event eventsource.Event) (token string, done bool, err error) {
	var streamEvent anthropicStreamEvent
	if err := json.Unmarshal([]byte(event.Data()), &streamEvent); err != nil {
		g.logger.Error(err, "failed to unmarshal stream event")
		return "", false, err
	}

	switch streamEvent.Type {
	case "content_block_delta":
		if streamEvent.Delta.Type == "text_delta" {
			return streamEvent.Delta.Text, false, nil
		}
		return "", false, nil
	case "message_stop":
		return "", true, nil
	case "error":
		return "", false, fmt.Errorf("upstream stream error: %s", streamEvent.Error.Message)
	default:
		return "", false, nil
	}
}

func (g *claudeStoryGenerator) createRequest(ctx context.Context, req outbound.GenerateStoryRequest) (*http.Request, error) {
	system := fmt.Sprintf("You write gentle, imaginative bedtime stories for young children. Every story should be:\n"+
		"- Approximately %d-%d words, 3-4 minutes when read aloud\n"+
		"- Age-appropriate with a comforting, peaceful ending\n"+
		"- Creative and engaging but not overstimulating before bedtime\n"+
		"- Built around a gentle moral or lesson\n"+
		"Write a complete story with a clear beginning, middle and end. Make it warm and soothing for bedtime.",
		req.MinWords, req.MaxWords)

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Story idea: %s", req.Prompt)
	if req.ChildName != "" {
		fmt.Fprintf(&prompt, "\nMain character name: %s", req.ChildName)
	}
	if req.Theme != domain.ThemeNone {
		fmt.Fprintf(&prompt, "\nTheme/Setting: %s", req.Theme)
	}

	promptReq := anthropicRequest{
		Model:       g.anthropicConfig.Model,
		MaxTokens:   g.anthropicConfig.MaxTokens,
		Stream:      true,
		Temperature: 0.7,
		System:      system,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt.String()},
		},
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		g.logger.Error(err, "failed to marshal the request body")
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.anthropicConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "failed to create the HTTP request")
		return nil, err
	}

	httpReq.Header.Set("x-api-key", g.anthropicConfig.ApiKey)
	httpReq.Header.Set("anthropic-version", g.anthropicConfig.ApiVersion)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	return httpReq, nil
}
