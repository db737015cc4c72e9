// Package client implements the resilient HTTP client that the test suites
// use to talk to the mock banking server. Every request carries a correlation
// identifier for log tracing, and optionally a bearer token when the session
// is configured with one. Transient failures (connection errors, timeouts,
// HTTP 5xx) are retried with exponential backoff up to a configured attempt
// cap; client errors (4xx) are definitive and returned as normal outcomes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/mockbank/bank-contract-tests/config"
	"github.com/mockbank/bank-contract-tests/framework"
	"github.com/mockbank/bank-contract-tests/ids"
)

// CorrelationHeader is the request header used for trace correlation.
const CorrelationHeader = "X-Correlation-Id"

// Client issues requests against the mock server. It is safe to create one
// per test; it holds no mutable state between calls.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	logger     framework.Logger
}

// Exchange is a record of one logical request/response pair, created per call
// and never mutated after receipt. When retries occurred, it reflects the
// final attempt and Attempts reports how many were made in total.
type Exchange struct {
	Method        string
	Path          string
	CorrelationID string
	Status        int
	Header        http.Header
	Body          []byte
	Elapsed       time.Duration
	Attempts      int
}

// JSON parses the response body. A malformed body when JSON was expected is an
// error the caller must surface, not retry.
func (x *Exchange) JSON() (ldvalue.Value, error) {
	var v ldvalue.Value
	if err := json.Unmarshal(x.Body, &v); err != nil {
		return ldvalue.Null(), fmt.Errorf("response body is not valid JSON: %w (body: %q)", err, string(x.Body))
	}
	return v, nil
}

// RequestOpts carries the optional parts of a request.
type RequestOpts struct {
	Headers map[string]string
	// JSONBody is marshaled and sent with Content-Type: application/json
	// when non-nil.
	JSONBody interface{}
	// CorrelationID overrides the generated correlation identifier.
	CorrelationID string
}

// New creates a Client from the session configuration. The per-attempt
// timeout is enforced by the underlying http.Client, so each retry attempt
// gets the full window.
func New(cfg *config.Config, logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		authToken:  cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.RetryBaseDelay(),
		logger:     logger,
	}
}

func (c *Client) Get(ctx context.Context, path string) (*Exchange, error) {
	return c.Request(ctx, http.MethodGet, path, RequestOpts{})
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Exchange, error) {
	return c.Request(ctx, http.MethodPost, path, RequestOpts{JSONBody: body})
}

// Request performs one logical request, retrying transient failures. It
// returns a nil error for any well-formed HTTP response, including 4xx and
// 5xx: those are outcomes for the caller to assert on. A non-nil error means
// either the request could not be built, or retries were exhausted on a
// transport-level failure (in which case it is a *TransientError).
func (c *Client) Request(ctx context.Context, method, path string, opts RequestOpts) (*Exchange, error) {
	correlationID := opts.CorrelationID
	if correlationID == "" {
		correlationID = ids.NewCorrelationID()
	}

	var bodyBytes []byte
	if opts.JSONBody != nil {
		data, err := json.Marshal(opts.JSONBody)
		if err != nil {
			return nil, fmt.Errorf("cannot marshal request body: %w", err)
		}
		bodyBytes = data
	}

	tracker := newRetryTracker(c.maxRetries, c.baseDelay)
	for {
		exchange, err := c.attempt(ctx, method, path, bodyBytes, correlationID, opts.Headers)
		if err == nil && !isTransientStatus(exchange.Status) {
			tracker.succeed()
			exchange.Attempts = tracker.attempts()
			return exchange, nil
		}

		if err != nil {
			c.logger.Printf("Attempt %d: %s %s failed: %s", tracker.attempts()+1, method, path, err)
			tracker.fail(err)
		} else {
			c.logger.Printf("Attempt %d: %s %s returned status %d", tracker.attempts()+1, method, path, exchange.Status)
			tracker.fail(fmt.Errorf("server returned status %d", exchange.Status))
		}

		if tracker.exhausted() {
			if err != nil {
				return nil, &TransientError{Attempts: tracker.attempts(), Err: tracker.lastError()}
			}
			// a well-formed 5xx on the final attempt is still a valid outcome
			exchange.Attempts = tracker.attempts()
			return exchange, nil
		}

		delay := tracker.backoffDelay()
		c.logger.Printf("Backing off %s before retry", delay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
			tracker.resume()
		}
	}
}

func (c *Client) attempt(
	ctx context.Context,
	method, path string,
	body []byte,
	correlationID string,
	extraHeaders map[string]string,
) (*Exchange, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("cannot create request: %w", err)
	}

	req.Header.Set(CorrelationHeader, correlationID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	for k, v := range extraHeaders {
		if v == "" {
			// an empty value means "send this request without the header",
			// which auth tests use to exercise the missing-authorization path
			req.Header.Del(k)
		} else {
			req.Header.Set(k, v)
		}
	}

	c.logger.Printf("Request: %s %s (correlation %s)", method, c.baseURL+path, correlationID)
	if body != nil {
		c.logger.Printf("Request body: %s", string(body))
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(started)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read response body: %w", err)
	}

	c.logger.Printf("Response: status %d in %s", resp.StatusCode, elapsed)
	if len(respBody) > 0 {
		c.logger.Printf("Response body: %s", string(respBody))
	}

	return &Exchange{
		Method:        method,
		Path:          path,
		CorrelationID: correlationID,
		Status:        resp.StatusCode,
		Header:        resp.Header,
		Body:          respBody,
		Elapsed:       elapsed,
	}, nil
}

// isTransientStatus reports whether a response status is eligible for retry.
// 4xx responses are definitive and never retried.
func isTransientStatus(status int) bool {
	return status >= 500
}
