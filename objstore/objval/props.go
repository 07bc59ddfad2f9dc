package objval

import (
	"net/http"
	"strconv"
	"strings"
)

// Response header keys carrying object metadata, each maps 1:1 onto an 'ObjectProps' field.
const (
	HeaderBucketName     = "Ais-Bucket-Name"
	HeaderBucketProvider = "Ais-Bucket-Provider"
	HeaderObjectName     = "Ais-Name"
	HeaderLocation       = "Ais-Location"
	HeaderChecksumType   = "Ais-Checksum-Type"
	HeaderChecksumValue  = "Ais-Checksum-Value"
	HeaderAccessTime     = "Ais-Atime"
	HeaderVersion        = "Ais-Version"
	HeaderMirrorPaths    = "Ais-Mirror-Paths"
	HeaderMirrorCopies   = "Ais-Mirror-Copies"
	HeaderPresent        = "Ais-Present"
	HeaderCustomMetadata = "Ais-Custom-Md"
	HeaderContentLength  = "Content-Length"
)

// EntryFlagPresent is the bit set in a listing entry's flags when the object is present in the cluster.
const EntryFlagPresent uint16 = 1 << 6

// ObjectProps is a read-only snapshot of the metadata attached to a single object.
//
// Props may be constructed from the headers of a metadata-bearing response, or from a compact bucket-listing entry;
// both producers agree on field semantics.
type ObjectProps struct {
	BucketName     string
	BucketProvider Provider
	Name           string
	Location       string
	ChecksumType   string
	ChecksumValue  string
	Size           int64
	Version        string
	AccessTime     string
	MirrorPaths    []string
	MirrorCopies   int
	Present        bool
	CustomMetadata map[string]string
}

// NewObjectPropsFromHeaders constructs object props from the headers of a HEAD/GET response.
func NewObjectPropsFromHeaders(headers http.Header) *ObjectProps {
	props := &ObjectProps{
		BucketName:     headers.Get(HeaderBucketName),
		BucketProvider: Provider(headers.Get(HeaderBucketProvider)),
		Name:           headers.Get(HeaderObjectName),
		Location:       headers.Get(HeaderLocation),
		ChecksumType:   headers.Get(HeaderChecksumType),
		ChecksumValue:  headers.Get(HeaderChecksumValue),
		Version:        headers.Get(HeaderVersion),
		AccessTime:     headers.Get(HeaderAccessTime),
		Present:        headers.Get(HeaderPresent) == "true",
	}

	if size := headers.Get(HeaderContentLength); size != "" {
		props.Size, _ = strconv.ParseInt(size, 10, 64)
	}

	if copies := headers.Get(HeaderMirrorCopies); copies != "" {
		props.MirrorCopies, _ = strconv.Atoi(copies)
	}

	if paths := headers.Get(HeaderMirrorPaths); paths != "" {
		props.MirrorPaths = strings.Split(strings.Trim(paths, "[]"), ",")
	}

	if custom := headers.Get(HeaderCustomMetadata); custom != "" {
		props.CustomMetadata = parseCustomMetadata(custom)
	}

	return props
}

// parseCustomMetadata parses the comma separated 'key=value' pairs carried by the custom metadata header.
func parseCustomMetadata(header string) map[string]string {
	custom := make(map[string]string)

	for _, pair := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			continue
		}

		custom[key] = value
	}

	return custom
}

// ObjectEntry is the compact record returned for each object when listing a bucket.
type ObjectEntry struct {
	Name       string `json:"n"`
	Checksum   string `json:"cs,omitempty"`
	AccessTime string `json:"a,omitempty"`
	Version    string `json:"v,omitempty"`
	Location   string `json:"t,omitempty"`
	Size       int64  `json:"s,omitempty"`
	Copies     int    `json:"c,omitempty"`
	Flags      uint16 `json:"f,omitempty"`
}

// IsPresent returns a boolean indicating whether the object is present in the cluster.
func (e *ObjectEntry) IsPresent() bool {
	return e.Flags&EntryFlagPresent != 0
}

// ObjectProps constructs object props from the listing entry; the result is an independent snapshot, it's never
// attached to an 'Object'.
func (e *ObjectEntry) ObjectProps() *ObjectProps {
	return &ObjectProps{
		Name:          e.Name,
		ChecksumValue: e.Checksum,
		AccessTime:    e.AccessTime,
		Version:       e.Version,
		Location:      e.Location,
		Size:          e.Size,
		MirrorCopies:  e.Copies,
		Present:       e.IsPresent(),
	}
}
