// Package netutil exposes small networking/HTTP utilities shared by the library's REST clients.
package netutil

import "net/http"

// TemporaryFailureStatusCodes are the status codes which represent a temporary failure and should be retried by
// default.
var TemporaryFailureStatusCodes = []int{
	http.StatusRequestTimeout,
	http.StatusTooManyRequests,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// IsTemporaryFailure returns a boolean indicating whether the provided status code represents a temporary failure
// which may succeed if retried.
func IsTemporaryFailure(status int) bool {
	for _, code := range TemporaryFailureStatusCodes {
		if status == code {
			return true
		}
	}

	return false
}

// IsMethodIdempotent returns a boolean indicating whether the given method is idempotent.
func IsMethodIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
