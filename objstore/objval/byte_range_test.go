package objval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestParseByteRange(t *testing.T) {
	type test struct {
		name     string
		spec     string
		expected *ByteRange
	}

	tests := []*test{
		{
			name:     "Closed",
			spec:     "bytes=100-200",
			expected: &ByteRange{Start: int64Ptr(100), End: int64Ptr(200)},
		},
		{
			name:     "OpenEnded",
			spec:     "bytes=100-",
			expected: &ByteRange{Start: int64Ptr(100)},
		},
		{
			name:     "Suffix",
			spec:     "bytes=-100",
			expected: &ByteRange{End: int64Ptr(100)},
		},
		{
			name:     "SingleByte",
			spec:     "bytes=42-42",
			expected: &ByteRange{Start: int64Ptr(42), End: int64Ptr(42)},
		},
		{
			name:     "ZeroStart",
			spec:     "bytes=0-1023",
			expected: &ByteRange{Start: int64Ptr(0), End: int64Ptr(1023)},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := ParseByteRange(test.spec)
			require.NoError(t, err)
			require.Equal(t, test.expected, actual)
		})
	}
}

func TestParseByteRangeInvalid(t *testing.T) {
	type test struct {
		name string
		spec string
	}

	tests := []*test{
		{
			name: "MissingPrefix",
			spec: "100-200",
		},
		{
			name: "WrongUnits",
			spec: "bits=100-200",
		},
		{
			name: "BothBoundsOmitted",
			spec: "bytes=-",
		},
		{
			name: "NoSeparator",
			spec: "bytes=100",
		},
		{
			name: "EndBeforeStart",
			spec: "bytes=200-100",
		},
		{
			name: "NegativeStart",
			spec: "bytes=--5-100",
		},
		{
			name: "NonNumeric",
			spec: "bytes=abc-def",
		},
		{
			name: "Empty",
			spec: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseByteRange(test.spec)

			var invalid *InvalidByteRangeError
			require.ErrorAs(t, err, &invalid)
			require.Equal(t, test.spec, invalid.Spec)
		})
	}
}

func TestByteRangeToRangeHeader(t *testing.T) {
	type test struct {
		name      string
		byteRange *ByteRange
		expected  string
	}

	tests := []*test{
		{
			name:      "Closed",
			byteRange: &ByteRange{Start: int64Ptr(100), End: int64Ptr(200)},
			expected:  "bytes=100-200",
		},
		{
			name:      "OpenEnded",
			byteRange: &ByteRange{Start: int64Ptr(100)},
			expected:  "bytes=100-",
		},
		{
			name:      "Suffix",
			byteRange: &ByteRange{End: int64Ptr(100)},
			expected:  "bytes=-100",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, test.byteRange.ToRangeHeader())
		})
	}
}

func TestByteRangeRoundTrip(t *testing.T) {
	for _, spec := range []string{"bytes=100-200", "bytes=100-", "bytes=-100"} {
		parsed, err := ParseByteRange(spec)
		require.NoError(t, err)
		require.Equal(t, spec, parsed.ToRangeHeader())
	}
}
