// Package objcli exposes the object I/O facade for an AIS-compatible storage cluster; it translates high level
// intent into precisely parameterized requests and reconstructs typed object metadata from responses.
package objcli

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// Request encapsulates the parameters of a single cluster API call.
type Request struct {
	// Method is the HTTP method of the request.
	Method string

	// Path is the request path relative to the versioned API root, e.g. "objects/bucket/object".
	Path string

	// Params are the query parameters attached to the request; may be <nil>.
	Params url.Values

	// Headers are additional request headers; may be <nil>.
	Headers http.Header

	// Body is the request body.
	//
	// NOTE: The body is required to be a 'ReadSeeker' to support transport level retries.
	Body io.ReadSeeker

	// Value, when non-nil, is marshaled to JSON and sent as the request body; mutually exclusive with 'Body'.
	Value any
}

// Response encapsulates a response received from the cluster.
type Response struct {
	// StatusCode is the status code of the response.
	StatusCode int

	// Headers are the response headers; lookups are case-insensitive.
	Headers http.Header

	// Body is the response body, it must be read once and closed to avoid resource leaks.
	Body io.ReadCloser
}

// Consume reads the remaining body to completion and closes it, returning the data read.
func (r *Response) Consume() ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

// Close discards the remaining body, releasing the underlying connection.
func (r *Response) Close() error {
	_, _ = io.Copy(io.Discard, r.Body)
	return r.Body.Close()
}

// RequestClient is the transport capability consumed by the object facade; implementations own connection
// management, authentication and retries.
type RequestClient interface {
	// Do executes the given request returning the response with an unread body; a non-2xx status is reported as an
	// error in the implementation's native error model.
	Do(ctx context.Context, request *Request) (*Response, error)

	// FullURL returns the fully qualified URL for the given path/params.
	FullURL(path string, params url.Values) string
}
