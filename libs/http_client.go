package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"storefront/config"
	"storefront/utils"
)

const RequestIDHeader = "X-Request-ID"

// TokenSource yields the bearer token for authenticated calls.
type TokenSource interface {
	CurrentToken() (string, bool)
}

// Request describes one call to the gateway. Path is relative to the base URL
// and must already be escaped.
type Request struct {
	Method       string
	Path         string
	Query        url.Values
	Body         any
	RequiresAuth bool
}

// HTTPClient issues JSON requests against the storefront gateway. It reads the
// bearer token from its TokenSource but never changes the session, never
// retries and sets no timeout of its own.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default otelhttp-instrumented client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.http = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *HTTPClient) {
		if l != nil {
			h.logger = l
		}
	}
}

func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		tokens:  tokens,
		logger:  config.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Request sends req and returns the raw 2xx body. Every error is a *utils.APIError.
func (c *HTTPClient) Request(ctx context.Context, req Request) (json.RawMessage, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("request failed",
			"method", req.Method, "path", req.Path,
			"request_id", httpReq.Header.Get(RequestIDHeader), "error", err)
		return nil, utils.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, utils.NewTransportError(fmt.Errorf("read response body: %w", err))
	}

	c.logger.Debug("request completed",
		"method", req.Method, "path", req.Path, "status", resp.StatusCode,
		"request_id", httpReq.Header.Get(RequestIDHeader), "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, utils.NewHTTPError(resp.StatusCode, errorMessage(body))
	}

	if len(bytes.TrimSpace(body)) == 0 || !json.Valid(body) {
		return nil, utils.NewParseError(errors.New("response body is not valid JSON"))
	}
	return json.RawMessage(body), nil
}

func (c *HTTPClient) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, utils.NewValidationError(fmt.Sprintf("request body cannot be encoded: %v", err))
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, utils.NewValidationError(fmt.Sprintf("invalid request: %v", err))
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.RequiresAuth && c.tokens != nil {
		if token, ok := c.tokens.CurrentToken(); ok {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return httpReq, nil
}

type validator interface {
	Validate() error
}

// Do sends req and decodes the body into T. A body that does not decode, or a
// T whose Validate method fails, is a ParseFailure.
func Do[T any](ctx context.Context, c *HTTPClient, req Request) (T, error) {
	var out T

	raw, err := c.Request(ctx, req)
	if err != nil {
		return out, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&out); err != nil {
		var zero T
		return zero, utils.NewParseError(err)
	}

	if v, ok := any(out).(validator); ok {
		if err := v.Validate(); err != nil {
			var zero T
			return zero, utils.NewParseError(err)
		}
	}
	return out, nil
}

// errorMessage pulls a human-readable message out of an error body:
// {"detail": "..."} first, then {"message": "..."}.
func errorMessage(body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, field := range []json.RawMessage{payload.Detail, payload.Message, payload.Error} {
		var s string
		if len(field) > 0 && json.Unmarshal(field, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}
