package objcli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
)

// ObjectWriter mutates the content/metadata of a single object; writers are cheap, stateless and may be reused for
// any number of calls.
type ObjectWriter struct {
	client RequestClient
	path   string
	params url.Values
}

// PutContent uploads the given bytes as the new object content, replacing whatever was there before.
func (w *ObjectWriter) PutContent(ctx context.Context, content []byte) error {
	resp, err := w.client.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   w.path,
		Params: cloneParams(w.params),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return err
	}

	return resp.Close()
}

// PutFile uploads the contents of the local file at the given path as the new object content.
//
// The file is validated before any request is issued; a missing path or a non-regular file (directory, socket,
// device) fails locally.
func (w *ObjectWriter) PutFile(ctx context.Context, path string) error {
	stats, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if !stats.Mode().IsRegular() {
		return fmt.Errorf("failed to validate file %q: %w", path, ErrNotARegularFile)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	resp, err := w.client.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   w.path,
		Params: cloneParams(w.params),
		Body:   file,
	})
	if err != nil {
		return err
	}

	return resp.Close()
}

// AppendContent appends the given bytes to the object, returning the handle which must be threaded into the next
// call of the chain.
//
// The first call of a chain passes an empty handle; passing 'flush' finalizes the object, after which the returned
// handle is empty and the chain is complete.
func (w *ObjectWriter) AppendContent(ctx context.Context, content []byte, handle string, flush bool) (string, error) {
	params := cloneParams(w.params)

	if flush {
		params.Set(QueryAppendType, AppendModeFlush)
	} else {
		params.Set(QueryAppendType, AppendModeAppend)
	}

	params.Set(QueryAppendHandle, handle)

	resp, err := w.client.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   w.path,
		Params: params,
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return "", err
	}

	return resp.Headers.Get(HeaderAppendHandle), resp.Close()
}

// SetCustomProps assigns custom user metadata to the object; existing custom metadata is merged with the given
// mapping unless 'replaceExisting' is set, in which case it's replaced wholesale.
func (w *ObjectWriter) SetCustomProps(ctx context.Context, custom map[string]string, replaceExisting bool) error {
	params := cloneParams(w.params)

	if replaceExisting {
		params.Set(QueryNewCustom, "true")
	}

	resp, err := w.client.Do(ctx, &Request{
		Method: http.MethodPatch,
		Path:   w.path,
		Params: params,
		Value:  &ActionMessage{Value: custom},
	})
	if err != nil {
		return err
	}

	return resp.Close()
}
