// Package request provides the HTTP client used for provider calls, with
// retry and exponential backoff behavior driven by configuration.
package request

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"flightbag/pkg/config"
)

const defaultUserAgent = "Flightbag Data Platform (flightbag)"

// Client handles HTTP GET requests with retries and backoff.
type Client struct {
	httpClient *http.Client
	retries    int
	baseDelay  time.Duration
	maxDelay   time.Duration
	logger     *slog.Logger
}

// New creates a new Client from request configuration.
func New(cfg config.RequestConfig) *Client {
	retries := cfg.Retries
	if retries < 1 {
		retries = 1
	}
	baseDelay := time.Duration(cfg.Backoff.BaseDelay)
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	maxDelay := time.Duration(cfg.Backoff.MaxDelay)
	if maxDelay <= 0 {
		maxDelay = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.Timeout)},
		retries:    retries,
		baseDelay:  baseDelay,
		maxDelay:   maxDelay,
		logger:     slog.With("component", "request"),
	}
}

// Get performs a GET request with retries and exponential backoff on
// retryable failures (network errors, 429, 5xx).
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	for attempt := 0; attempt < c.retries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", defaultUserAgent)
		req.Header.Set("Accept", "application/json")

		c.logger.Debug("Network Request", "host", req.URL.Host, "path", req.URL.Path, "attempt", attempt+1)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("Request failed, retrying", "url", url, "attempt", attempt+1, "error", err)
			if err := c.sleep(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			c.logger.Warn("API Backoff", "status", resp.StatusCode, "url", url, "attempt", attempt+1)
			if err := c.sleep(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("api error: status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read error: %w", err)
		}
		return body, nil
	}

	return nil, fmt.Errorf("max retries exceeded for %s", url)
}

func (c *Client) sleep(ctx context.Context, attempt int) error {
	delay := time.Duration(math.Pow(2, float64(attempt))) * c.baseDelay
	if delay > c.maxDelay {
		delay = c.maxDelay
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
