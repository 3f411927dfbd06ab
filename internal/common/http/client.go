// internal/common/http/client.go

// Package http wraps the outbound HTTP client used for external lookups,
// currently the geocoder. Every client carries a hard timeout so a slow
// upstream cannot stall a discovery request.
package http

import (
	"context"
	"net/http"
	"time"
)

// Client is a timeout-bounded HTTP client.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// DoWithContext issues req bound to ctx, so callers can cancel an in-flight
// lookup independently of the client timeout.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}
