package objcli

import (
	"bytes"
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimitedClientDo(t *testing.T) {
	client, _ := newTestObject(t)

	client.Objects["objects/bucket/object.bin"] = &TestObject{Body: []byte("payload")}

	limited := NewRateLimitedClient(client, rate.NewLimiter(rate.Inf, 1024))

	object := NewObject(limited, testBucket(), "object.bin")

	require.NoError(t, object.GetWriter().PutContent(context.Background(), []byte("rewritten")))

	reader, err := object.GetReader(context.Background(), GetReaderOptions{})
	require.NoError(t, err)
	defer reader.Close()

	var buffer bytes.Buffer

	_, err = reader.WriteTo(&buffer)
	require.NoError(t, err)
	require.Equal(t, []byte("rewritten"), buffer.Bytes())
}

func TestRateLimitedClientLimitsDownload(t *testing.T) {
	client, _ := newTestObject(t)

	client.Objects["objects/bucket/object.bin"] = &TestObject{Body: bytes.Repeat([]byte{42}, 64)}

	// 32 bytes up front then 32 bytes per second, reading 64 bytes must take roughly a second
	limited := NewRateLimitedClient(client, rate.NewLimiter(32, 32))

	object := NewObject(limited, testBucket(), "object.bin")

	reader, err := object.GetReader(context.Background(), GetReaderOptions{})
	require.NoError(t, err)
	defer reader.Close()

	var buffer bytes.Buffer

	start := time.Now()

	_, err = reader.WriteTo(&buffer)
	require.NoError(t, err)

	require.Len(t, buffer.Bytes(), 64)
	require.GreaterOrEqual(t, time.Since(start), 500*time.Millisecond)
}

func TestRateLimitedClientFullURL(t *testing.T) {
	client, _ := newTestObject(t)

	limited := NewRateLimitedClient(client, rate.NewLimiter(rate.Inf, 1024))

	params := url.Values{"provider": []string{"ais"}}
	require.Equal(t, client.FullURL("objects/bucket/object.bin", params), limited.FullURL("objects/bucket/object.bin", params))
}
