package ratelimit

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimitedReadCloser(t *testing.T) {
	reader := NewRateLimitedReadCloser(
		context.Background(),
		io.NopCloser(strings.NewReader("payload")),
		rate.NewLimiter(rate.Inf, 1024),
	)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)
	require.NoError(t, reader.Close())
}

func TestRateLimitedReadCloserLimitsRate(t *testing.T) {
	reader := NewRateLimitedReadCloser(
		context.Background(),
		io.NopCloser(bytes.NewReader(bytes.Repeat([]byte{42}, 64))),
		rate.NewLimiter(32, 32),
	)
	defer reader.Close()

	start := time.Now()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Len(t, data, 64)

	// 32 bytes from the initial burst, the remaining 32 drip in at 32 bytes per second
	require.GreaterOrEqual(t, time.Since(start), 500*time.Millisecond)
}

func TestRateLimitedReadCloserHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewRateLimitedReadCloser(
		ctx,
		io.NopCloser(strings.NewReader("payload")),
		rate.NewLimiter(1, 1),
	)
	defer reader.Close()

	_, err := io.ReadAll(reader)
	require.Error(t, err)
}

func TestRateLimitedReadSeeker(t *testing.T) {
	reader := NewRateLimitedReadSeeker(
		context.Background(),
		strings.NewReader("payload"),
		rate.NewLimiter(rate.Inf, 1024),
	)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)

	// Seeking back allows re-reading, for example when a request is retried
	offset, err := reader.Seek(0, io.SeekStart)
	require.NoError(t, err)
	require.Zero(t, offset)

	data, err = io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)
}
