// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jeranaias/uniassist-tui/internal/model"
	"github.com/jeranaias/uniassist-tui/internal/offline"
	"github.com/jeranaias/uniassist-tui/internal/util"
)

// Configuration constants.
const (
	// DefaultBaseURL is used when nothing else is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds one Chat call, retries included.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the largest accepted response body.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay caps the backoff.
	retryMaxDelay = 10 * time.Second

	chatPath  = "/chat"
	userAgent = "uniassist-tui/1.0"
)

// Error variables for backend failures.
var (
	// ErrInvalidBaseURL indicates the configured base URL cannot be used.
	ErrInvalidBaseURL = errors.New("invalid backend url")

	// ErrMalformedReply indicates a 2xx response that is not a reply object.
	ErrMalformedReply = errors.New("malformed reply")

	// ErrResponseTooLarge indicates the body exceeded MaxResponseSize.
	ErrResponseTooLarge = errors.New("response too large")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.Status)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.Status, e.Body)
}

// Request is the body of POST /chat.
type Request struct {
	Message string               `json:"message"`
	History []model.HistoryEntry `json:"history"`
}

// wireReply mirrors model.Reply but can tell a missing response field from
// an empty one.
type wireReply struct {
	Response  *string  `json:"response"`
	Agent     string   `json:"agent"`
	ToolCalls []string `json:"tool_calls"`
}

// Client talks to the assistant API. A Client is safe for concurrent use
// once configured.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a client for baseURL. Trailing slashes are ignored.
func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if err := offline.ValidateBaseURL(baseURL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}, nil
}

// WithTimeout sets the bound on one Chat call. Zero disables it and leaves
// the caller's context in charge.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// WithMaxRetries sets how many times a retryable failure is retried.
func (c *Client) WithMaxRetries(n int) *Client {
	if n < 0 {
		n = 0
	}
	c.maxRetries = n
	return c
}

// WithRateLimit limits outgoing requests to perSecond. Zero or negative
// removes the limit.
func (c *Client) WithRateLimit(perSecond float64) *Client {
	if perSecond <= 0 {
		c.limiter = nil
		return c
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	return c
}

// WithLogger sets the logger for request events.
func (c *Client) WithLogger(logger zerolog.Logger) *Client {
	c.logger = logger.With().Str("component", "backend").Logger()
	if !c.IsLocal() && strings.HasPrefix(c.baseURL, "http://") {
		c.logger.Warn().Str("base_url", c.baseURL).Msg("backend is remote and not using TLS")
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client. nil keeps the
// current one.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IsLocal reports whether the backend runs on this machine.
func (c *Client) IsLocal() bool {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return false
	}
	return offline.IsLocalhost(u.Host)
}

// Chat sends one message with its history and returns the reply. Non-2xx
// statuses, unreadable bodies and bodies that are not a reply object are
// all errors.
func (c *Client) Chat(ctx context.Context, req Request) (model.Reply, error) {
	if req.History == nil {
		req.History = []model.HistoryEntry{}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return model.Reply{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := calculateBackoff(attempt)
			c.logger.Debug().Int("attempt", attempt).Dur("delay", delay).Err(lastErr).Msg("retrying chat request")
			select {
			case <-ctx.Done():
				return model.Reply{}, fmt.Errorf("chat request: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		reply, err := c.doRequest(ctx, body)
		if err == nil {
			return reply, nil
		}
		if !isRetryable(err) {
			return model.Reply{}, err
		}
		lastErr = err
	}

	if c.maxRetries == 0 {
		return model.Reply{}, lastErr
	}
	return model.Reply{}, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs a single POST /chat.
func (c *Client) doRequest(ctx context.Context, body []byte) (model.Reply, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return model.Reply{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return model.Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("chat request failed")
		return model.Reply{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Bodies are never logged; they carry user text.
	c.logger.Info().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("chat response")

	data, err := readResponse(resp)
	if err != nil {
		return model.Reply{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Reply{}, &StatusError{
			Status: resp.StatusCode,
			Body:   truncateBody(data),
		}
	}

	return decodeReply(data)
}

// readResponse reads the body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(data)) > MaxResponseSize {
		return nil, fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, MaxResponseSize)
	}
	return data, nil
}

func decodeReply(data []byte) (model.Reply, error) {
	var w wireReply
	if err := json.Unmarshal(data, &w); err != nil {
		return model.Reply{}, fmt.Errorf("%w: %w", ErrMalformedReply, err)
	}
	if w.Response == nil {
		return model.Reply{}, fmt.Errorf("%w: missing response field", ErrMalformedReply)
	}
	return model.Reply{
		Response:  *w.Response,
		Agent:     w.Agent,
		ToolCalls: w.ToolCalls,
	}, nil
}

// truncateBody keeps error bodies short enough for a log line.
func truncateBody(data []byte) string {
	return util.TruncateRunes(strings.TrimSpace(string(data)), 256)
}

// isRetryable reports whether a failed attempt may be repeated. Context
// errors never are.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status == http.StatusTooManyRequests ||
			(statusErr.Status >= 500 && statusErr.Status < 600)
	}

	if errors.Is(err, ErrMalformedReply) || errors.Is(err, ErrResponseTooLarge) {
		return false
	}

	// Connection refused, reset, DNS failures.
	return true
}

// calculateBackoff returns the delay before retry number attempt (1-based).
func calculateBackoff(attempt int) time.Duration {
	delay := retryBaseDelay * time.Duration(1<<uint(attempt-1))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}
