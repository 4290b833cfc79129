package client

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

	"github.com/dmitrijs2005/traffichub/internal/client/models"
	"github.com/dmitrijs2005/traffichub/internal/common"
	"github.com/dmitrijs2005/traffichub/internal/logging"
	"github.com/google/uuid"
)

// maxBodySize caps how much of a JSON response is buffered.
const maxBodySize = 4 << 20

// HTTPClient implements Client over the backend's JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
	newID   func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. Its Timeout is kept as is.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient returns a client for baseURL. Every request is bounded by
// timeout; tokens may be nil for an anonymous client.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     logging.Discard(),
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) url(path string) string {
	return c.baseURL + path
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, &APIError{Op: op, Message: "failed to create request", Kind: ErrUnavailable, Err: err}
	}

	reqID := c.newID()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "op", op, "request_id", reqID, "error", err)
		return nil, &APIError{Op: op, Message: "network error", Kind: ErrUnavailable, Err: err}
	}

	c.log.Debug(ctx, "request completed",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"elapsed", time.Since(start),
	)
	return resp, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &APIError{Op: op, Message: "failed to encode request", Kind: ErrValidation, Err: err}
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, op, method, path, body, contentType)
	if err != nil {
		return err
	}
	return decodeJSON(op, resp, out)
}

// doMessage performs a JSON call whose success body is {"message": ...}.
func (c *HTTPClient) doMessage(ctx context.Context, op, method, path string, in any) (string, error) {
	var out models.MessageResponse
	if err := c.doJSON(ctx, op, method, path, in, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// decodeJSON reads resp once, turning non-2xx statuses into *APIError and
// decoding the body into target otherwise. A nil target discards the body.
func decodeJSON(op string, resp *http.Response, target any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: "failed to read response", Kind: ErrUnavailable, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(op, resp.StatusCode, body)
	}

	if target == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: "malformed response", Kind: ErrUnavailable, Err: err}
	}
	return nil
}

// parseErrorResponse prefers the body's error field, then message, then the
// status text.
func parseErrorResponse(op string, code int, body []byte) *APIError {
	var er models.ErrorResponse
	msg := ""
	if err := json.Unmarshal(body, &er); err == nil {
		msg = strings.TrimSpace(er.Text())
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", code)
	}
	return &APIError{Op: op, StatusCode: code, Message: msg, Kind: kindForStatus(code)}
}

func pathSegment(s string) string {
	return url.PathEscape(s)
}
