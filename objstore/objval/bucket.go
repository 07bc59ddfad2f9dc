package objval

import "net/url"

// BucketDetails encapsulates the identity/addressing information of a single bucket; it's immutable after
// construction and shared by reference across every object created against the same bucket.
type BucketDetails struct {
	// Name is the name of the bucket.
	Name string

	// Provider is the provider backing the bucket.
	Provider Provider

	// QueryParams are the bucket scoped query parameters, they're copied - never mutated in place - into every
	// per-object request.
	QueryParams url.Values

	// Path is the canonical URL-safe prefix used for cross-bucket addressing, for example copy destinations.
	Path string
}
