package aisrest

import (
	"fmt"
	"net/http"

	"github.com/aistools/ais-common/objstore/objerr"
)

// UnexpectedStatusCodeError is returned when a response status code was not what the dispatcher expected; the body is
// included since it generally carries the cluster's explanation.
type UnexpectedStatusCodeError struct {
	Status   int
	Method   string
	Endpoint string
	Body     []byte
}

func (e *UnexpectedStatusCodeError) Error() string {
	msg := fmt.Sprintf("unexpected status code %d for '%s %s'", e.Status, e.Method, e.Endpoint)

	if len(e.Body) != 0 {
		msg = fmt.Sprintf("%s, %s", msg, e.Body)
	}

	return msg
}

// handleResponseError maps a non-2xx response onto the error taxonomy, falling back to an
// 'UnexpectedStatusCodeError' for anything without a dedicated type.
func handleResponseError(method, endpoint string, status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return &objerr.AuthenticationError{Endpoint: endpoint}
	case http.StatusForbidden:
		return &objerr.AuthorizationError{Endpoint: endpoint}
	case http.StatusNotFound:
		return &objerr.NotFoundError{Type: "object", Name: endpoint}
	}

	return &UnexpectedStatusCodeError{Status: status, Method: method, Endpoint: endpoint, Body: body}
}
