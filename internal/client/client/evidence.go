package client

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// EvidenceURL is the public address of an evidence image.
func (c *HTTPClient) EvidenceURL(name string) string {
	return c.url("/evidence/" + pathSegment(name))
}

// FetchEvidence opens the evidence image for reading. The caller closes it.
func (c *HTTPClient) FetchEvidence(ctx context.Context, name string) (io.ReadCloser, error) {
	const op = "fetch evidence"

	if strings.TrimSpace(name) == "" {
		return nil, validationError(op, "evidence name is required")
	}

	resp, err := c.do(ctx, op, http.MethodGet, "/evidence/"+pathSegment(name), nil, "")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeJSON(op, resp, nil)
	}
	return resp.Body, nil
}
