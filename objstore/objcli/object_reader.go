package objcli

import (
	"context"
	"errors"
	"io"

	"github.com/aistools/ais-common/objstore/objval"
)

// ObjectReader lazily streams the content of a single object; no request is issued until content or metadata is
// first asked for.
//
// The reader tracks how many bytes it has delivered so a read interrupted mid-stream may be reissued from the same
// position via the descriptor's byte range shifting. Readers are not safe for concurrent use.
type ObjectReader struct {
	ctx       context.Context
	client    *ObjectClient
	chunkSize int

	// onProps is invoked whenever a metadata-bearing response is observed, letting the owning object refresh its
	// cache as a side effect of reads.
	onProps func(*objval.ObjectProps)

	resp     *Response
	props    *objval.ObjectProps
	consumed int64
}

var _ io.ReadCloser = (*ObjectReader)(nil)
var _ io.WriterTo = (*ObjectReader)(nil)

// newObjectReader creates a reader over the given descriptor, clamping the chunk size to the default when
// unspecified.
func newObjectReader(ctx context.Context, client *ObjectClient, chunkSize int, onProps func(*objval.ObjectProps)) *ObjectReader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &ObjectReader{ctx: ctx, client: client, chunkSize: chunkSize, onProps: onProps}
}

// open issues the underlying request if it hasn't been issued yet.
func (r *ObjectReader) open() error {
	if r.resp != nil {
		return nil
	}

	resp, err := r.client.Get(r.ctx, r.consumed)
	if err != nil {
		return err
	}

	r.resp = resp

	props := objval.NewObjectPropsFromHeaders(resp.Headers)
	r.client.recordContentLength(props.Size)
	r.observeProps(props)

	return nil
}

// Read implements the 'io.Reader' interface, streaming the object content.
func (r *ObjectReader) Read(p []byte) (int, error) {
	if err := r.open(); err != nil {
		return 0, err
	}

	n, err := r.resp.Body.Read(p)
	r.consumed += int64(n)

	return n, err
}

// NextChunk returns the next chunk of the object content, at most 'chunkSize' bytes; a <nil> chunk and 'io.EOF' are
// returned once the content is exhausted.
func (r *ObjectReader) NextChunk() ([]byte, error) {
	if err := r.open(); err != nil {
		return nil, err
	}

	chunk := make([]byte, r.chunkSize)

	n, err := io.ReadFull(r.resp.Body, chunk)
	r.consumed += int64(n)

	switch {
	case err == nil:
		return chunk, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return chunk[:n], nil
	case errors.Is(err, io.EOF) && n > 0:
		return chunk[:n], nil
	case errors.Is(err, io.EOF):
		return nil, io.EOF
	}

	return nil, err
}

// WriteTo implements the 'io.WriterTo' interface, draining the remaining object content into the given writer.
func (r *ObjectReader) WriteTo(w io.Writer) (int64, error) {
	if err := r.open(); err != nil {
		return 0, err
	}

	n, err := io.Copy(w, r.resp.Body)
	r.consumed += n

	if err != nil {
		return n, err
	}

	return n, r.Close()
}

// Props returns the object metadata, fetching it via a metadata-only request when no response has been observed yet.
func (r *ObjectReader) Props() (*objval.ObjectProps, error) {
	if r.props != nil {
		return r.props, nil
	}

	props, err := r.client.Head(r.ctx)
	if err != nil {
		return nil, err
	}

	r.observeProps(props)

	return props, nil
}

// Close releases the underlying response, a no-op when the request was never issued or already closed.
func (r *ObjectReader) Close() error {
	if r.resp == nil {
		return nil
	}

	resp := r.resp
	r.resp = nil

	return resp.Close()
}

func (r *ObjectReader) observeProps(props *objval.ObjectProps) {
	r.props = props

	if r.onProps != nil {
		r.onProps(props)
	}
}
