package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/labjournal/labctl/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// TokenFunc resolves the current credential. It is consulted on every
// request so the pipeline always observes the most recently written token.
// An empty string means the request goes out unauthenticated.
type TokenFunc func(ctx context.Context) string

// Client is the HTTP pipeline every gateway operation goes through.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	token          TokenFunc
	onAuthRejected func()
}

// Config holds client construction parameters.
type Config struct {
	// BaseURL is the root of the remote service, e.g. "http://localhost:8000".
	BaseURL string
	// Timeout is the fixed per-request timeout. Zero means 10s.
	Timeout time.Duration
	// Logger receives pipeline diagnostics. Required.
	Logger logging.Logger
	// HTTPClient overrides the underlying client; used by tests.
	HTTPClient *http.Client
}

// New creates a Client. Token resolution and rejection handling are attached
// later via Bind, once the session manager exists; until then requests go
// out unauthenticated and 401s are only classified, not acted upon.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    hc,
		log:     cfg.Logger,
	}, nil
}

// Bind attaches the credential source and the authentication-rejection hook.
// The hook is invoked synchronously before a 401 is propagated to the caller.
func (c *Client) Bind(token TokenFunc, onAuthRejected func()) {
	c.token = token
	c.onAuthRejected = onAuthRejected
}

// do executes a JSON request and decodes a 2xx response body into out
// (skipped when out is nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	resp, err := c.send(ctx, method, path, query, reader, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return decodeJSON(resp.Body, out)
}

func decodeJSON(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doRaw executes a request and returns the 2xx response body verbatim.
// Used for opaque payloads such as analytics exports.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	resp, err := c.send(ctx, method, path, query, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// send runs the two mandatory pipeline stages around the HTTP round trip:
// pre-send credential/request-id attachment and post-receive classification.
// On any non-2xx the response body is consumed and a classified error is
// returned; on 2xx the caller owns the body.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	if c.token != nil {
		if tok := c.token(ctx); tok != "" {
			req.Header.Set("Authorization", "Token "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := c.classify(ctx, resp, method, path, requestID); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// classify maps the response status onto the package's error taxonomy.
// The 401 branch tears the session down before returning, so the ordering
// guarantee "caller sees the error only after the session is anonymous"
// holds for every in-flight request.
func (c *Client) classify(ctx context.Context, resp *http.Response, method, path, requestID string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	msg := serverMessage(data)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.log.Warn(ctx, "authentication rejected", "method", method, "path", path, "request_id", requestID)
		if c.onAuthRejected != nil {
			c.onAuthRejected()
		}
		return &Error{Status: resp.StatusCode, Message: msg, kind: ErrSessionExpired}

	case resp.StatusCode >= 500:
		c.log.Error(ctx, "server fault", "method", method, "path", path,
			"status", resp.StatusCode, "request_id", requestID)
		return &Error{Status: resp.StatusCode, Message: msg, kind: ErrServerFault}

	default:
		return &Error{Status: resp.StatusCode, Message: msg, kind: ErrValidation}
	}
}
