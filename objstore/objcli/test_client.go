package objcli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/aistools/ais-common/objstore/objval"
)

// TestObject is the in-memory representation of an object stored by the 'TestRequestClient'.
type TestObject struct {
	Body     []byte
	Version  string
	Location string
	Custom   map[string]string
}

// TestRequest is the recorded form of a dispatched request, with the body/value fully materialized so tests can
// assert against the exact wire contract.
type TestRequest struct {
	Method  string
	Path    string
	Params  url.Values
	Headers http.Header
	Body    []byte
}

// TestRequestClient implements the 'RequestClient' interface serving requests from an in-memory object store whilst
// recording every dispatched request; it's to be used for unit testing.
type TestRequestClient struct {
	t    *testing.T
	lock sync.Mutex

	// Objects is the in-memory object store, keyed by the request path.
	Objects map[string]*TestObject

	// Requests are the recorded requests in dispatch order.
	Requests []*TestRequest

	appends map[string]*bytes.Buffer
	uploads map[string]map[int][]byte
}

var _ RequestClient = (*TestRequestClient)(nil)

// NewTestRequestClient creates a new test client with an empty object store.
func NewTestRequestClient(t *testing.T) *TestRequestClient {
	return &TestRequestClient{
		t:       t,
		Objects: make(map[string]*TestObject),
		appends: make(map[string]*bytes.Buffer),
		uploads: make(map[string]map[int][]byte),
	}
}

// Do serves the given request from the in-memory store, recording it first.
func (t *TestRequestClient) Do(_ context.Context, request *Request) (*Response, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	body := t.requestBody(request)

	t.Requests = append(t.Requests, &TestRequest{
		Method:  request.Method,
		Path:    request.Path,
		Params:  cloneParams(request.Params),
		Headers: request.Headers.Clone(),
		Body:    body,
	})

	switch request.Method {
	case http.MethodHead:
		return t.head(request)
	case http.MethodGet:
		return t.get(request)
	case http.MethodPut:
		return t.put(request, body)
	case http.MethodPost:
		return t.post(request, body)
	case http.MethodDelete:
		return t.delete(request)
	case http.MethodPatch:
		return t.patch(request, body)
	}

	return nil, fmt.Errorf("unexpected method %q", request.Method)
}

// FullURL returns the fully qualified URL for the given path/params.
func (t *TestRequestClient) FullURL(path string, params url.Values) string {
	full := fmt.Sprintf("https://cluster.example.com/v1/%s", path)

	if len(params) != 0 {
		full += "?" + params.Encode()
	}

	return full
}

func (t *TestRequestClient) head(request *Request) (*Response, error) {
	object, ok := t.Objects[request.Path]
	if !ok {
		return nil, fmt.Errorf("object %q not found", request.Path)
	}

	return &Response{
		StatusCode: http.StatusOK,
		Headers:    t.propsHeaders(request.Path, object),
		Body:       io.NopCloser(bytes.NewReader(nil)),
	}, nil
}

func (t *TestRequestClient) get(request *Request) (*Response, error) {
	object, ok := t.Objects[request.Path]
	if !ok {
		return nil, fmt.Errorf("object %q not found", request.Path)
	}

	var (
		body    = object.Body
		headers = t.propsHeaders(request.Path, object)
	)

	if spec := request.Headers.Get(HeaderRange); spec != "" {
		byteRange, err := objval.ParseByteRange(spec)
		require.NoError(t.t, err)

		body = sliceByteRange(body, byteRange)

		// The content length reflects what's delivered, not the full object
		headers.Set(objval.HeaderContentLength, strconv.Itoa(len(body)))
	}

	return &Response{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       io.NopCloser(bytes.NewReader(body)),
	}, nil
}

func (t *TestRequestClient) put(request *Request, body []byte) (*Response, error) {
	switch {
	case request.Params.Has(QueryAppendType):
		return t.appendContent(request, body)
	case request.Params.Has(QueryMptUploadID):
		return t.addPart(request, body)
	case request.Params.Has(QueryObjTo):
		return t.copyObject(request)
	}

	t.Objects[request.Path] = &TestObject{Body: body}

	return emptyResponse(), nil
}

func (t *TestRequestClient) appendContent(request *Request, body []byte) (*Response, error) {
	handle := request.Params.Get(QueryAppendHandle)
	if handle == "" {
		handle = uuid.NewString()
		t.appends[handle] = &bytes.Buffer{}
	}

	buffer, ok := t.appends[handle]
	if !ok {
		return nil, fmt.Errorf("unknown append handle %q", handle)
	}

	buffer.Write(body)

	headers := make(http.Header)

	if request.Params.Get(QueryAppendType) == AppendModeFlush {
		t.Objects[request.Path] = &TestObject{Body: buffer.Bytes()}
		delete(t.appends, handle)
	} else {
		headers.Set(HeaderAppendHandle, handle)
	}

	return &Response{StatusCode: http.StatusOK, Headers: headers, Body: io.NopCloser(bytes.NewReader(nil))}, nil
}

func (t *TestRequestClient) addPart(request *Request, body []byte) (*Response, error) {
	uploadID := request.Params.Get(QueryMptUploadID)

	parts, ok := t.uploads[uploadID]
	if !ok {
		return nil, fmt.Errorf("unknown upload %q", uploadID)
	}

	partNumber, err := strconv.Atoi(request.Params.Get(QueryMptPartNo))
	require.NoError(t.t, err)

	parts[partNumber] = body

	return emptyResponse(), nil
}

func (t *TestRequestClient) copyObject(request *Request) (*Response, error) {
	object, ok := t.Objects[request.Path]
	if !ok {
		return nil, fmt.Errorf("object %q not found", request.Path)
	}

	// The destination is addressed by its fully qualified name, e.g. "ais/@#/bucket/object"
	dest := request.Params.Get(QueryObjTo)

	fields := strings.SplitN(dest, "/", 3)
	require.Len(t.t, fields, 3)

	t.Objects[fmt.Sprintf("%s/%s", URLPathObjects, fields[2])] = &TestObject{Body: object.Body}

	return emptyResponse(), nil
}

func (t *TestRequestClient) post(request *Request, body []byte) (*Response, error) {
	var msg ActionMessage
	require.NoError(t.t, jsoniter.Unmarshal(body, &msg))

	switch msg.Action {
	case ActionPromote:
		t.Objects[fmt.Sprintf("%s/%s", request.Path, pathBase(msg.Name))] = &TestObject{}
		return emptyResponse(), nil
	case ActionBlobDownload:
		return textResponse(uuid.NewString()), nil
	case ActionMptUpload:
		uploadID := uuid.NewString()
		t.uploads[uploadID] = make(map[int][]byte)

		return textResponse(uploadID), nil
	case ActionMptComplete:
		return t.completeUpload(request)
	}

	return nil, fmt.Errorf("unexpected action %q", msg.Action)
}

func (t *TestRequestClient) completeUpload(request *Request) (*Response, error) {
	uploadID := request.Params.Get(QueryMptUploadID)

	parts, ok := t.uploads[uploadID]
	if !ok {
		return nil, fmt.Errorf("unknown upload %q", uploadID)
	}

	var assembled []byte

	for i := 1; i <= len(parts); i++ {
		part, ok := parts[i]
		if !ok {
			return nil, fmt.Errorf("upload %q is missing part %d", uploadID, i)
		}

		assembled = append(assembled, part...)
	}

	t.Objects[request.Path] = &TestObject{Body: assembled}
	delete(t.uploads, uploadID)

	return emptyResponse(), nil
}

func (t *TestRequestClient) delete(request *Request) (*Response, error) {
	if uploadID := request.Params.Get(QueryMptUploadID); uploadID != "" {
		delete(t.uploads, uploadID)
		return emptyResponse(), nil
	}

	if _, ok := t.Objects[request.Path]; !ok {
		return nil, fmt.Errorf("object %q not found", request.Path)
	}

	delete(t.Objects, request.Path)

	return emptyResponse(), nil
}

func (t *TestRequestClient) patch(request *Request, body []byte) (*Response, error) {
	object, ok := t.Objects[request.Path]
	if !ok {
		return nil, fmt.Errorf("object %q not found", request.Path)
	}

	var msg ActionMessage
	require.NoError(t.t, jsoniter.Unmarshal(body, &msg))

	custom := make(map[string]string)
	require.NoError(t.t, mapstructureValue(msg.Value, &custom))

	if object.Custom == nil || request.Params.Get(QueryNewCustom) == "true" {
		object.Custom = custom
		return emptyResponse(), nil
	}

	for key, value := range custom {
		object.Custom[key] = value
	}

	return emptyResponse(), nil
}

// propsHeaders returns the metadata headers for the given object, the way the cluster reports them.
func (t *TestRequestClient) propsHeaders(path string, object *TestObject) http.Header {
	fields := strings.SplitN(path, "/", 3)
	require.Len(t.t, fields, 3)

	headers := make(http.Header)

	headers.Set(objval.HeaderBucketName, fields[1])
	headers.Set(objval.HeaderBucketProvider, string(objval.ProviderAIS))
	headers.Set(objval.HeaderObjectName, fields[2])
	headers.Set(objval.HeaderContentLength, strconv.Itoa(len(object.Body)))
	headers.Set(objval.HeaderAccessTime, strconv.FormatInt(time.Now().UnixNano(), 10))
	headers.Set(objval.HeaderPresent, "true")

	if object.Version != "" {
		headers.Set(objval.HeaderVersion, object.Version)
	}

	if object.Location != "" {
		headers.Set(objval.HeaderLocation, object.Location)
	}

	if len(object.Custom) != 0 {
		pairs := make([]string, 0, len(object.Custom))
		for key, value := range object.Custom {
			pairs = append(pairs, fmt.Sprintf("%s=%s", key, value))
		}

		headers.Set(objval.HeaderCustomMetadata, strings.Join(pairs, ", "))
	}

	return headers
}

// requestBody materializes the request body/value into bytes, rewinding the body so the request remains reusable.
func (t *TestRequestClient) requestBody(request *Request) []byte {
	if request.Value != nil {
		data, err := jsoniter.Marshal(request.Value)
		require.NoError(t.t, err)

		return data
	}

	if request.Body == nil {
		return nil
	}

	length, err := aws.SeekerLen(request.Body)
	require.NoError(t.t, err)

	body := make([]byte, length)

	_, err = io.ReadFull(request.Body, body)
	require.NoError(t.t, err)

	_, err = request.Body.Seek(0, io.SeekStart)
	require.NoError(t.t, err)

	return body
}

// mapstructureValue round-trips an already unmarshaled value into the given typed target.
func mapstructureValue(value, target any) error {
	data, err := jsoniter.Marshal(value)
	if err != nil {
		return err
	}

	return jsoniter.Unmarshal(data, target)
}

// sliceByteRange returns the slice of the given body covered by the given range, clamped to the body length.
func sliceByteRange(body []byte, byteRange *objval.ByteRange) []byte {
	size := int64(len(body))

	// Suffix shape, the last 'End' bytes
	if byteRange.Start == nil {
		return body[size-min(*byteRange.End, size):]
	}

	start := min(*byteRange.Start, size)

	// Range headers are inclusive on both ends
	end := size
	if byteRange.End != nil {
		end = min(*byteRange.End+1, size)
	}

	return body[start:end]
}

func emptyResponse() *Response {
	return &Response{StatusCode: http.StatusOK, Headers: make(http.Header), Body: io.NopCloser(bytes.NewReader(nil))}
}

func textResponse(text string) *Response {
	return &Response{
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
		Body:       io.NopCloser(strings.NewReader(text)),
	}
}

// pathBase returns the final element of a filesystem style path.
func pathBase(path string) string {
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		return path[idx+1:]
	}

	return path
}
