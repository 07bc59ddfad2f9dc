package objerr

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Type: "object", Name: "objects/bucket/object.bin"}
	require.Equal(t, "object 'objects/bucket/object.bin' not found", err.Error())
}

func TestIsNotFound(t *testing.T) {
	require.True(t, IsNotFound(&NotFoundError{}))
	require.True(t, IsNotFound(fmt.Errorf("wrapped: %w", &NotFoundError{})))
	require.False(t, IsNotFound(errors.New("something else")))
	require.False(t, IsNotFound(nil))
}

func TestTryHandleError(t *testing.T) {
	type test struct {
		name     string
		err      error
		expected error
	}

	tests := []*test{
		{
			name:     "DNSNotFound",
			err:      &net.DNSError{IsNotFound: true},
			expected: ErrEndpointResolutionFailed,
		},
		{
			name:     "WrappedDNSNotFound",
			err:      fmt.Errorf("dispatch: %w", &net.DNSError{IsNotFound: true}),
			expected: ErrEndpointResolutionFailed,
		},
		{
			name: "DNSOtherFailure",
			err:  &net.DNSError{IsTimeout: true},
		},
		{
			name: "Unrelated",
			err:  errors.New("unrelated"),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, TryHandleError(test.err))
		})
	}
}

func TestHandleError(t *testing.T) {
	require.Equal(t, ErrEndpointResolutionFailed, HandleError(&net.DNSError{IsNotFound: true}))

	// Errors without a friendly mapping pass through unchanged
	unrelated := errors.New("unrelated")
	require.Equal(t, unrelated, HandleError(unrelated))
}
