// Package objerr exposes the error taxonomy surfaced by the object storage REST layer.
package objerr

import (
	"errors"
	"fmt"
	"net"
)

// ErrEndpointResolutionFailed is returned when the cluster endpoint could not be resolved, likely due to an invalid
// hostname.
var ErrEndpointResolutionFailed = errors.New("failed to resolve the cluster endpoint")

// NotFoundError is returned when an object/bucket could not be found.
type NotFoundError struct {
	Type string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Type, e.Name)
}

// IsNotFound returns a boolean indicating whether the given error is a 'NotFoundError'.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// AuthenticationError is returned when the cluster rejected the provided credentials.
type AuthenticationError struct {
	Endpoint string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed against '%s', check the provided token", e.Endpoint)
}

// AuthorizationError is returned when the provided credentials lack the permissions required by the request.
type AuthorizationError struct {
	Endpoint string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization failed against '%s', check the permissions of the provided token", e.Endpoint)
}

// HandleError converts the given error into a user friendly error where possible, returning the given error when not.
func HandleError(err error) error {
	if handled := TryHandleError(err); handled != nil {
		return handled
	}

	return err
}

// TryHandleError converts the given error into a user friendly error where possible, returning <nil> where not.
func TryHandleError(err error) error {
	var dnsError *net.DNSError

	if errors.As(err, &dnsError) && dnsError.IsNotFound {
		return ErrEndpointResolutionFailed
	}

	return nil
}
