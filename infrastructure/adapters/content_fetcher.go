package adapters

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"golang.org/x/time/rate"
)

type ContentFetcher interface {
	FetchContent(req *http.Request) ([]byte, error)
}

type contentFetcher struct {
	logger  outbound.LoggerPort
	client  *http.Client
	limiter *rate.Limiter
}

// NewContentFetcher applies a bounded per-call timeout and a client-side rate
// limit to every upstream request. There are no retries: rate-limited calls
// wait, failed calls fail.
func NewContentFetcher(logger outbound.LoggerPort, timeout time.Duration, limiter *rate.Limiter) ContentFetcher {
	return &contentFetcher{
		logger:  logger,
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

func (c *contentFetcher) FetchContent(req *http.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	res, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorWithFields(err, "failed to send the HTTP request", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return nil, err
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.ErrorWithFields(err, "failed to close the response body", map[string]interface{}{
				"method": req.Method,
				"URL":    req.URL.String(),
			})
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		bodyPayload, _ := io.ReadAll(res.Body)
		c.logger.ErrorWithFields(nil, "HTTP request returned non-OK status code", map[string]interface{}{
			"method":  req.Method,
			"URL":     req.URL.String(),
			"status":  res.StatusCode,
			"message": string(bodyPayload),
		})
		return nil, fmt.Errorf("HTTP request returned non-OK status code: %d", res.StatusCode)
	}

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.ErrorWithFields(err, "failed to read the response body", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return nil, err
	}

	return payload, nil
}
