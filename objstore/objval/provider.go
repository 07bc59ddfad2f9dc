// Package objval exposes the value types shared by the object storage packages.
package objval

// Provider represents the provider backing a bucket.
//
// NOTE: The underlying value is the wire value, it's used verbatim in query parameters, response headers and semantic
// URLs.
type Provider string

const (
	// ProviderAIS is a native bucket hosted by the cluster itself.
	ProviderAIS Provider = "ais"

	// ProviderAWS is a remote bucket backed by AWS S3.
	ProviderAWS Provider = "aws"

	// ProviderGCP is a remote bucket backed by Google Cloud Storage.
	ProviderGCP Provider = "gcp"

	// ProviderAzure is a remote bucket backed by Azure Blob Storage.
	ProviderAzure Provider = "azure"

	// ProviderHTTP is a remote bucket backed by a plain HTTP(S) endpoint.
	ProviderHTTP Provider = "ht"
)

// String returns the wire representation of the provider.
func (p Provider) String() string {
	return string(p)
}
