// Package aisrest exposes an HTTP request client for an AIS-compatible storage cluster; it owns connection
// management, authentication and transparent retries for idempotent requests.
package aisrest

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/aistools/ais-common/aprov"
	"github.com/aistools/ais-common/envvar"
	"github.com/aistools/ais-common/log"
	"github.com/aistools/ais-common/netutil"
	"github.com/aistools/ais-common/objstore/objcli"
	"github.com/aistools/ais-common/objstore/objerr"
	"github.com/aistools/ais-common/retry"
)

// ClientOptions encapsulates the options available when creating a new client.
type ClientOptions struct {
	// Endpoint is the base URL of the cluster gateway, e.g. "https://10.0.0.1:51080".
	Endpoint string

	// Provider supplies the authentication token and user agent attached to every request.
	Provider aprov.Provider

	// TLSConfig is the TLS configuration used by the underlying transport; may be <nil>.
	TLSConfig *tls.Config

	// ReqResLogLevel is the level at which request/response dispatch is logged, defaults to 'LevelTrace'.
	ReqResLogLevel log.Level
}

// Client is a request client dispatching against a single cluster gateway.
//
// The zero value is not usable, clients must be created via 'NewClient'. Clients are safe for concurrent use.
type Client struct {
	client         *http.Client
	endpoint       string
	provider       aprov.Provider
	numRetries     int
	reqResLogLevel log.Level
}

var _ objcli.RequestClient = (*Client)(nil)

// NewClient creates a new client against the given cluster gateway.
func NewClient(options ClientOptions) (*Client, error) {
	if _, err := url.Parse(options.Endpoint); err != nil {
		return nil, fmt.Errorf("failed to parse endpoint: %w", err)
	}

	timeout := DefaultClientTimeout
	if env, ok := envvar.GetDuration(EnvClientTimeout); ok {
		log.Infof("(aisrest) Using client timeout of %s from the environment", env)
		timeout = env
	}

	numRetries := DefaultNumRetries
	if env, ok := envvar.GetInt(EnvClientNumRetries); ok {
		log.Infof("(aisrest) Using %d retries from the environment", env)
		numRetries = env
	}

	client := &http.Client{
		Timeout:   timeout,
		Transport: &http.Transport{TLSClientConfig: options.TLSConfig},
	}

	return &Client{
		client:         client,
		endpoint:       strings.TrimSuffix(options.Endpoint, "/"),
		provider:       options.Provider,
		numRetries:     numRetries,
		reqResLogLevel: options.ReqResLogLevel,
	}, nil
}

// Do executes the given request against the cluster, transparently retrying idempotent requests which failed with a
// temporary error.
//
// A non-2xx status code is reported as an error from the taxonomy in 'objerr', the response is only returned for
// successful requests.
func (c *Client) Do(ctx context.Context, request *objcli.Request) (*objcli.Response, error) {
	body, err := requestBody(request)
	if err != nil {
		return nil, err
	}

	fullURL := c.FullURL(request.Path, request.Params)

	if !netutil.IsMethodIdempotent(request.Method) {
		return c.do(ctx, request, fullURL, body, 1)
	}

	var resp *objcli.Response

	err = retry.Run(ctx, c.retryOptions(request.Method, fullURL), func(attempt int) error {
		var dErr error
		resp, dErr = c.do(ctx, request, fullURL, body, attempt)

		return dErr
	})

	return resp, err
}

// FullURL returns the fully qualified URL for the given path/params.
func (c *Client) FullURL(path string, params url.Values) string {
	full := fmt.Sprintf("%s/%s/%s", c.endpoint, APIVersion, path)

	if len(params) != 0 {
		full += "?" + params.Encode()
	}

	return full
}

// do dispatches the request exactly once.
func (c *Client) do(
	ctx context.Context, request *objcli.Request, fullURL string, body io.ReadSeeker, attempt int,
) (*objcli.Response, error) {
	log.Logf(c.reqResLogLevel, "(aisrest) (Attempt %d) (%s) Dispatching request to '%s'", attempt, request.Method, fullURL)

	if body != nil {
		if _, err := body.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind request body: %w", err)
		}
	}

	req, err := c.newHTTPRequest(ctx, request, fullURL, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req) //nolint:bodyclose
	if err != nil {
		return nil, objerr.HandleError(err)
	}

	log.Logf(c.reqResLogLevel, "(aisrest) (%s) (%d) Received response from '%s'", request.Method, resp.StatusCode, fullURL)

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return &objcli.Response{StatusCode: resp.StatusCode, Headers: resp.Header, Body: resp.Body}, nil
	}

	defer resp.Body.Close()

	// Best effort read, the body only enriches the returned error
	data, _ := io.ReadAll(resp.Body)

	return nil, handleResponseError(request.Method, fullURL, resp.StatusCode, data)
}

// newHTTPRequest converts the given request into an 'http.Request' with authentication/agent headers attached.
func (c *Client) newHTTPRequest(ctx context.Context, request *objcli.Request, fullURL string, body io.ReadSeeker) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = body
	}

	req, err := http.NewRequestWithContext(ctx, request.Method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range request.Headers {
		req.Header[key] = values
	}

	if request.Value != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.provider != nil {
		if token := c.provider.GetToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		req.Header.Set("User-Agent", c.provider.GetUserAgent())
	}

	return req, nil
}

// retryOptions returns the retry behavior for the given idempotent request.
func (c *Client) retryOptions(method, fullURL string) retry.Options {
	return retry.Options{
		MaxAttempts: c.numRetries,
		ShouldRetry: func(_ int, err error) bool {
			return shouldRetry(err)
		},
		Log: func(attempt int, err error) {
			log.Warnf("(aisrest) (Attempt %d) (%s) Retrying request to '%s' which failed with error: %s",
				attempt+1, method, fullURL, err)
		},
	}
}

// shouldRetry returns a boolean indicating whether the given dispatch error is considered temporary.
func shouldRetry(err error) bool {
	var unexpected *UnexpectedStatusCodeError
	if errors.As(err, &unexpected) {
		return netutil.IsTemporaryFailure(unexpected.Status)
	}

	// Errors with a typed mapping reflect a persistent condition, retrying won't change the outcome
	if errors.Is(err, objerr.ErrEndpointResolutionFailed) || objerr.IsNotFound(err) {
		return false
	}

	var authentication *objerr.AuthenticationError
	if errors.As(err, &authentication) {
		return false
	}

	var authorization *objerr.AuthorizationError
	if errors.As(err, &authorization) {
		return false
	}

	return true
}

// requestBody materializes the request value/body into the seekable body dispatched to the cluster.
func requestBody(request *objcli.Request) (io.ReadSeeker, error) {
	if request.Value == nil {
		return request.Body, nil
	}

	data, err := jsoniter.Marshal(request.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request value: %w", err)
	}

	return bytes.NewReader(data), nil
}
