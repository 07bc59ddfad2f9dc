package objcli

import (
	"context"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/aistools/ais-common/ratelimit"
)

// RateLimitedClient wraps a request client, limiting the rate at which request/response bodies flow through it.
//
// The limiter bounds bytes per second; both the upload and download direction draw from the same limiter.
type RateLimitedClient struct {
	client  RequestClient
	limiter *rate.Limiter
}

var _ RequestClient = (*RateLimitedClient)(nil)

// NewRateLimitedClient creates a new rate limited client wrapping the given client.
func NewRateLimitedClient(client RequestClient, limiter *rate.Limiter) *RateLimitedClient {
	return &RateLimitedClient{client: client, limiter: limiter}
}

// Do executes the given request, rate limiting the request body on the way out and the response body on the way in.
func (c *RateLimitedClient) Do(ctx context.Context, request *Request) (*Response, error) {
	if request.Body != nil {
		limited := *request
		limited.Body = ratelimit.NewRateLimitedReadSeeker(ctx, request.Body, c.limiter)
		request = &limited
	}

	resp, err := c.client.Do(ctx, request)
	if err != nil {
		return nil, err
	}

	resp.Body = ratelimit.NewRateLimitedReadCloser(ctx, resp.Body, c.limiter)

	return resp, nil
}

// FullURL returns the fully qualified URL for the given path/params.
func (c *RateLimitedClient) FullURL(path string, params url.Values) string {
	return c.client.FullURL(path, params)
}
