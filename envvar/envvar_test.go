package envvar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetInt(t *testing.T) {
	type test struct {
		name     string
		value    string
		expected int
		ok       bool
	}

	tests := []*test{
		{
			name:     "Valid",
			value:    "42",
			expected: 42,
			ok:       true,
		},
		{
			name:     "Negative",
			value:    "-1",
			expected: -1,
			ok:       true,
		},
		{
			name:  "NotAnInt",
			value: "forty-two",
		},
		{
			name:  "Empty",
			value: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv("TEST_GET_INT", test.value)

			actual, ok := GetInt("TEST_GET_INT")
			require.Equal(t, test.ok, ok)
			require.Equal(t, test.expected, actual)
		})
	}
}

func TestGetIntUnset(t *testing.T) {
	_, ok := GetInt("TEST_GET_INT_UNSET")
	require.False(t, ok)
}

func TestGetDuration(t *testing.T) {
	type test struct {
		name     string
		value    string
		expected time.Duration
		ok       bool
	}

	tests := []*test{
		{
			name:     "Seconds",
			value:    "30s",
			expected: 30 * time.Second,
			ok:       true,
		},
		{
			name:     "Compound",
			value:    "1m30s",
			expected: 90 * time.Second,
			ok:       true,
		},
		{
			name:  "MissingUnits",
			value: "30",
		},
		{
			name:  "Garbage",
			value: "soon",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv("TEST_GET_DURATION", test.value)

			actual, ok := GetDuration("TEST_GET_DURATION")
			require.Equal(t, test.ok, ok)
			require.Equal(t, test.expected, actual)
		})
	}
}

func TestGetDurationUnset(t *testing.T) {
	_, ok := GetDuration("TEST_GET_DURATION_UNSET")
	require.False(t, ok)
}
