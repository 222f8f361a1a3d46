// Package dex talks to the cookie-authenticated review-generation backend
// and normalizes its response shapes into canonical feedback.
package dex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"dex-code-reviewer/config"
	"dex-code-reviewer/internal/models"
)

// Client submits diffs for review. The session cookie is attached to every
// call and never renewed here; an expired session surfaces as an
// unauthorized failure for the caller to handle.
type Client struct {
	httpClient *http.Client
	url        string
	cookie     string
	shape      string
	maxRetries int
	backoff    time.Duration
	logger     zerolog.Logger
}

// NewClient builds a backend client from validated configuration.
func NewClient(cfg config.BackendConfig, logger zerolog.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        cfg.URL,
		cookie:     cfg.SessionCookie,
		shape:      cfg.Shape,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Second,
		logger:     logger,
	}
}

// Request submits one diff with the review criteria and returns canonical
// feedback. Transient failures (network errors, timeouts, retryable HTTP
// statuses) are retried up to the configured attempt count; unauthorized and
// malformed-response failures are terminal immediately.
func (c *Client) Request(ctx context.Context, diff, rules string) (*models.Feedback, error) {
	if diff == "" {
		return nil, fmt.Errorf("empty diff: caller must skip files with nothing to review")
	}
	if rules == "" {
		return nil, fmt.Errorf("empty review rules")
	}

	body, err := buildPayload(c.shape, diff, rules)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		feedback, err := c.send(ctx, body)
		if err == nil {
			return feedback, nil
		}

		var failure *models.Failure
		if errors.As(err, &failure) {
			// Unauthorized and malformed responses cannot improve on retry.
			return nil, err
		}

		lastErr = err
		c.logger.Warn().Err(err).Int("attempt", attempt).Int("max", c.maxRetries).
			Msg("review backend attempt failed")

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return nil, models.NewFailure(models.FailureUnavailable, ctx.Err())
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}
	}
	return nil, models.NewFailure(models.FailureUnavailable, lastErr)
}

// send performs a single attempt. Plain errors are transient and retryable;
// *models.Failure errors are terminal.
func (c *Client) send(ctx context.Context, payload []byte) (*models.Feedback, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, models.NewFailure(models.FailureConfiguration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", c.cookie)

	c.logger.Debug().RawJSON("payload", payload).Msg("sending payload to review backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("review backend request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading review backend response: %w", err)
	}

	c.logger.Debug().Int("status", resp.StatusCode).Bytes("body", raw).
		Msg("review backend response")

	switch {
	case resp.StatusCode == http.StatusNoContent:
		// No content means the backend had nothing to flag.
		return models.CleanFeedback(), nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, models.Failuref(models.FailureUnauthorized,
			"review backend rejected session: status %d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("review backend returned status %d", resp.StatusCode)
	}

	return normalize(raw)
}
