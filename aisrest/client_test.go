package aisrest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aistools/ais-common/aprov"
	"github.com/aistools/ais-common/log"
	"github.com/aistools/ais-common/objstore/objcli"
	"github.com/aistools/ais-common/objstore/objerr"
	"github.com/aistools/ais-common/testutil"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{
		Endpoint: server.URL,
		Provider: &aprov.Static{UserAgent: "ais-common-test", Token: "secret"},
	})
	require.NoError(t, err)

	return client, server
}

func TestClientFullURL(t *testing.T) {
	client, err := NewClient(ClientOptions{Endpoint: "https://cluster.example.com:51080/"})
	require.NoError(t, err)

	require.Equal(
		t,
		"https://cluster.example.com:51080/v1/objects/bucket/object.bin",
		client.FullURL("objects/bucket/object.bin", nil),
	)

	require.Equal(
		t,
		"https://cluster.example.com:51080/v1/objects/bucket/object.bin?provider=ais",
		client.FullURL("objects/bucket/object.bin", url.Values{"provider": []string{"ais"}}),
	)
}

func TestClientDo(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/objects/bucket/object.bin", r.URL.Path)
		require.Equal(t, "ais", r.URL.Query().Get("provider"))
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.Equal(t, "ais-common-test", r.Header.Get("User-Agent"))

		w.Header().Set("Ais-Version", "2")
		_, _ = w.Write([]byte("payload"))
	})

	client, _ := newTestClient(t, handler)

	resp, err := client.Do(context.Background(), &objcli.Request{
		Method: http.MethodGet,
		Path:   "objects/bucket/object.bin",
		Params: url.Values{"provider": []string{"ais"}},
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "2", resp.Headers.Get("Ais-Version"))

	body, err := resp.Consume()
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), body)
}

func TestClientDoMarshalsValue(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.JSONEq(t, `{"action":"promote","name":"/mnt/data"}`, string(testutil.ReadAll(t, r.Body)))
	})

	client, _ := newTestClient(t, handler)

	resp, err := client.Do(context.Background(), &objcli.Request{
		Method: http.MethodPut,
		Path:   "objects/bucket",
		Value:  map[string]string{"action": "promote", "name": "/mnt/data"},
	})
	require.NoError(t, err)
	require.NoError(t, resp.Close())
}

func TestClientDoErrorMapping(t *testing.T) {
	type test struct {
		name     string
		status   int
		expected any
	}

	tests := []*test{
		{
			name:     "Unauthorized",
			status:   http.StatusUnauthorized,
			expected: new(*objerr.AuthenticationError),
		},
		{
			name:     "Forbidden",
			status:   http.StatusForbidden,
			expected: new(*objerr.AuthorizationError),
		},
		{
			name:     "NotFound",
			status:   http.StatusNotFound,
			expected: new(*objerr.NotFoundError),
		},
		{
			name:     "BadRequest",
			status:   http.StatusBadRequest,
			expected: new(*UnexpectedStatusCodeError),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(test.status)
			})

			client, _ := newTestClient(t, handler)

			_, err := client.Do(context.Background(), &objcli.Request{
				Method: http.MethodPost,
				Path:   "objects/bucket/object.bin",
			})
			require.ErrorAs(t, err, test.expected)
		})
	}
}

func TestClientDoUnexpectedStatusCodeIncludesBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("malformed action"))
	})

	client, _ := newTestClient(t, handler)

	_, err := client.Do(context.Background(), &objcli.Request{
		Method: http.MethodPost,
		Path:   "objects/bucket/object.bin",
	})

	var unexpected *UnexpectedStatusCodeError
	require.ErrorAs(t, err, &unexpected)
	require.Equal(t, http.StatusBadRequest, unexpected.Status)
	require.Equal(t, []byte("malformed action"), unexpected.Body)
	require.Contains(t, unexpected.Error(), "malformed action")
}

func TestClientDoRetriesIdempotentRequests(t *testing.T) {
	var attempts atomic.Int64

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		// The body must be re-sent in full on each attempt
		require.Equal(t, []byte("payload"), testutil.ReadAll(t, r.Body))
	})

	client, _ := newTestClient(t, handler)

	resp, err := client.Do(context.Background(), &objcli.Request{
		Method: http.MethodPut,
		Path:   "objects/bucket/object.bin",
		Body:   bytes.NewReader([]byte("payload")),
	})
	require.NoError(t, err)
	require.NoError(t, resp.Close())

	require.EqualValues(t, 3, attempts.Load())
}

func TestClientDoDoesNotRetryNonIdempotentRequests(t *testing.T) {
	var attempts atomic.Int64

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client, _ := newTestClient(t, handler)

	_, err := client.Do(context.Background(), &objcli.Request{
		Method: http.MethodPost,
		Path:   "objects/bucket/object.bin",
	})
	require.Error(t, err)

	require.EqualValues(t, 1, attempts.Load())
}

func TestClientDoDoesNotRetryPersistentErrors(t *testing.T) {
	var attempts atomic.Int64

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	client, _ := newTestClient(t, handler)

	_, err := client.Do(context.Background(), &objcli.Request{
		Method: http.MethodGet,
		Path:   "objects/bucket/object.bin",
	})
	require.True(t, objerr.IsNotFound(err))

	require.EqualValues(t, 1, attempts.Load())
}

func TestClientNumRetriesFromEnvironment(t *testing.T) {
	t.Setenv(EnvClientNumRetries, "5")

	var attempts atomic.Int64

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client, _ := newTestClient(t, handler)

	_, err := client.Do(context.Background(), &objcli.Request{
		Method: http.MethodGet,
		Path:   "objects/bucket/object.bin",
	})
	require.Error(t, err)

	require.EqualValues(t, 5, attempts.Load())
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Log(_ log.Level, format string, args ...any) {
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

func TestClientDoLogsEachAttempt(t *testing.T) {
	logger := &recordingLogger{}

	log.SetLogger(logger)
	defer log.SetLogger(nil)

	var attempts atomic.Int64

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})

	client, _ := newTestClient(t, handler)

	resp, err := client.Do(context.Background(), &objcli.Request{
		Method: http.MethodGet,
		Path:   "objects/bucket/object.bin",
	})
	require.NoError(t, err)
	require.NoError(t, resp.Close())

	var dispatched []string

	for _, message := range logger.messages {
		if strings.Contains(message, "Dispatching") {
			dispatched = append(dispatched, message)
		}
	}

	// Every dispatch is logged with its real attempt number
	require.Len(t, dispatched, 3)
	require.Contains(t, dispatched[0], "(Attempt 1)")
	require.Contains(t, dispatched[1], "(Attempt 2)")
	require.Contains(t, dispatched[2], "(Attempt 3)")
}

func TestClientStreamsResponseBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.Copy(w, bytes.NewReader(bytes.Repeat([]byte{42}, 1024)))
	})

	client, _ := newTestClient(t, handler)

	resp, err := client.Do(context.Background(), &objcli.Request{
		Method: http.MethodGet,
		Path:   "objects/bucket/object.bin",
	})
	require.NoError(t, err)

	// The body is handed over unread, the caller owns draining/closing it
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Len(t, data, 1024)
	require.NoError(t, resp.Body.Close())
}
