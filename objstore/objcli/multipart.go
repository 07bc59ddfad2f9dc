package objcli

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// MultipartUpload uploads a single object in independently sent parts; the upload must be created before parts are
// added, and the object only materializes once the upload is completed.
//
// Uploads are not safe for concurrent use.
type MultipartUpload struct {
	client RequestClient
	path   string
	params url.Values

	uploadID string
	parts    []CompletedPart
}

// UploadID returns the cluster assigned ID of the upload, empty until 'Create' has succeeded.
func (m *MultipartUpload) UploadID() string {
	return m.uploadID
}

// Create registers a new multipart upload with the cluster, recording the assigned upload ID.
func (m *MultipartUpload) Create(ctx context.Context) error {
	resp, err := m.client.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   m.path,
		Params: cloneParams(m.params),
		Value:  &ActionMessage{Action: ActionMptUpload},
	})
	if err != nil {
		return err
	}

	uploadID, err := resp.Consume()
	if err != nil {
		return err
	}

	m.uploadID = string(uploadID)
	m.parts = make([]CompletedPart, 0)

	return nil
}

// AddPart uploads the given bytes as the part with the given 1-based number.
//
// Parts may be sent in any order; completion assembles them by part number.
func (m *MultipartUpload) AddPart(ctx context.Context, partNumber int, content []byte) error {
	if m.uploadID == "" {
		return ErrMultipartUploadNotCreated
	}

	if partNumber <= 0 {
		return ErrInvalidPartNumber
	}

	params := cloneParams(m.params)
	params.Set(QueryMptUploadID, m.uploadID)
	params.Set(QueryMptPartNo, strconv.Itoa(partNumber))

	resp, err := m.client.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   m.path,
		Params: params,
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return err
	}

	m.parts = append(m.parts, CompletedPart{PartNumber: partNumber})

	return resp.Close()
}

// Complete finalizes the upload, assembling the uploaded parts into the object.
func (m *MultipartUpload) Complete(ctx context.Context) error {
	if m.uploadID == "" {
		return ErrMultipartUploadNotCreated
	}

	params := cloneParams(m.params)
	params.Set(QueryMptUploadID, m.uploadID)

	resp, err := m.client.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   m.path,
		Params: params,
		Value:  &ActionMessage{Action: ActionMptComplete, Value: m.parts},
	})
	if err != nil {
		return err
	}

	return resp.Close()
}

// Abort abandons the upload, discarding any parts uploaded so far.
func (m *MultipartUpload) Abort(ctx context.Context) error {
	if m.uploadID == "" {
		return ErrMultipartUploadNotCreated
	}

	params := cloneParams(m.params)
	params.Set(QueryMptUploadID, m.uploadID)

	resp, err := m.client.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   m.path,
		Params: params,
		Value:  &ActionMessage{Action: ActionMptAbort},
	})
	if err != nil {
		return err
	}

	return resp.Close()
}
