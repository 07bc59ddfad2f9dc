// Package aprov exposes the interface through which REST clients acquire the credentials/information required to
// authenticate requests.
package aprov

// Provider is the interface which returns the credentials/information required to dispatch an authenticated request.
type Provider interface {
	// GetToken returns the bearer token attached to outgoing requests, an empty token disables authentication.
	GetToken() string

	// GetUserAgent returns the user agent attached to outgoing requests.
	GetUserAgent() string
}

// Static implements the 'Provider' interface and always returns static credentials/information.
type Static struct {
	UserAgent, Token string
}

var _ Provider = (*Static)(nil)

func (s *Static) GetToken() string {
	return s.Token
}

func (s *Static) GetUserAgent() string {
	return s.UserAgent
}
