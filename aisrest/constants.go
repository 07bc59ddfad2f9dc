package aisrest

import "time"

// APIVersion is the version prefix of every request path.
const APIVersion = "v1"

// Environment variables which tune client behavior at runtime.
const (
	// EnvClientTimeout overrides the per-request timeout, expects a duration e.g. "30s".
	EnvClientTimeout = "AIS_CLIENT_TIMEOUT"

	// EnvClientNumRetries overrides the number of times idempotent requests are retried.
	EnvClientNumRetries = "AIS_CLIENT_NUM_RETRIES"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultClientTimeout = 2 * time.Minute
	DefaultNumRetries    = 3
)
