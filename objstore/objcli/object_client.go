package objcli

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aistools/ais-common/objstore/objval"
)

// ObjectClient is a fully resolved read descriptor; it pins down the path, query parameters, headers and byte range
// of a single logical read so the request may be (re)issued without revisiting the options.
type ObjectClient struct {
	client    RequestClient
	path      string
	params    url.Values
	headers   http.Header
	byteRange *objval.ByteRange
	uname     string

	// contentLength is the length reported by the first content response, recorded so a resumed suffix range may be
	// clamped to what the object actually holds.
	contentLength int64
	lengthKnown   bool
}

// recordContentLength records the content length of the initial response, later observations are ignored since a
// resumed response only covers the remainder.
func (c *ObjectClient) recordContentLength(length int64) {
	if c.lengthKnown {
		return
	}

	c.contentLength, c.lengthKnown = length, true
}

// Get fetches the object content, shifting the requested byte range forward by the given offset; an offset allows a
// partially consumed read to be resumed where it left off.
func (c *ObjectClient) Get(ctx context.Context, offset int64) (*Response, error) {
	headers := c.requestHeaders()

	if offset > 0 {
		shifted, err := c.shiftedRange(offset)
		if err != nil {
			return nil, err
		}

		headers.Set(HeaderRange, shifted)
	}

	return c.client.Do(ctx, &Request{
		Method:  http.MethodGet,
		Path:    c.path,
		Params:  c.requestParams(),
		Headers: headers,
	})
}

// Head fetches the object metadata without transferring any content.
func (c *ObjectClient) Head(ctx context.Context) (*objval.ObjectProps, error) {
	resp, err := c.client.Do(ctx, &Request{
		Method:  http.MethodHead,
		Path:    c.path,
		Params:  c.requestParams(),
		Headers: c.requestHeaders(),
	})
	if err != nil {
		return nil, err
	}

	defer resp.Close()

	return objval.NewObjectPropsFromHeaders(resp.Headers), nil
}

// requestParams returns the query parameters for the next request, overlaying the direct addressing key when the
// descriptor was created for a direct read.
func (c *ObjectClient) requestParams() url.Values {
	if c.uname == "" {
		return c.params
	}

	params := cloneParams(c.params)
	params.Set(QueryUname, c.uname)

	return params
}

// requestHeaders returns a copy of the descriptor headers, safe for per-request mutation.
func (c *ObjectClient) requestHeaders() http.Header {
	headers := make(http.Header, len(c.headers))
	for key, values := range c.headers {
		headers[key] = values
	}

	return headers
}

// shiftedRange returns the range header value for a read resumed 'offset' bytes in.
func (c *ObjectClient) shiftedRange(offset int64) (string, error) {
	if c.byteRange == nil {
		return fmt.Sprintf("bytes=%d-", offset), nil
	}

	// A suffix range covers the last 'End' bytes, resuming shrinks it from the front. The requested suffix may
	// exceed the object length in which case the delivered tail was shorter, clamp to what was actually reported.
	if c.byteRange.Start == nil {
		length := *c.byteRange.End
		if c.lengthKnown && c.contentLength < length {
			length = c.contentLength
		}

		length -= offset

		if length <= 0 {
			return "", fmt.Errorf("offset %d exhausts the requested byte range", offset)
		}

		return (&objval.ByteRange{End: &length}).ToRangeHeader(), nil
	}

	start := *c.byteRange.Start + offset

	if c.byteRange.End != nil && start > *c.byteRange.End {
		return "", fmt.Errorf("offset %d exhausts the requested byte range", offset)
	}

	return (&objval.ByteRange{Start: &start, End: c.byteRange.End}).ToRangeHeader(), nil
}
