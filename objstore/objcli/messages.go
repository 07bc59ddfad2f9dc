package objcli

import jsoniter "github.com/json-iterator/go"

// ActionMessage is the envelope used uniformly by control-style requests (promote, blob download, custom metadata,
// multipart lifecycle).
type ActionMessage struct {
	Action string `json:"action"`
	Name   string `json:"name,omitempty"`
	Value  any    `json:"value,omitempty"`
}

// PromoteArgs is the payload of a promote action; it names a file/directory resident on a cluster node which should
// be ingested into the bucket.
type PromoteArgs struct {
	TargetID        string `json:"tid,omitempty"`
	SourcePath      string `json:"src,omitempty"`
	ObjectName      string `json:"obj,omitempty"`
	Recursive       bool   `json:"rcr,omitempty"`
	OverwriteDest   bool   `json:"ovw,omitempty"`
	DeleteSource    bool   `json:"dls,omitempty"`
	SrcNotFileShare bool   `json:"notshr,omitempty"`
}

// BlobMessage is the payload of a blob download action.
//
// NOTE: The tuning fields are pointers on purpose, an omitted value is sent as JSON null letting the cluster apply
// its own defaults.
type BlobMessage struct {
	ChunkSize  *int64 `json:"chunk-size"`
	NumWorkers *int   `json:"num-workers"`
	Latest     bool   `json:"latest-ver"`
}

// CompletedPart identifies a single uploaded part when completing a multipart upload.
type CompletedPart struct {
	PartNumber int    `json:"part-number"`
	ETag       string `json:"etag"`
}

// marshalETLArgs returns the wire form of the given transform arguments; scalar string values pass through
// unchanged, anything structured is serialized as compact JSON.
func marshalETLArgs(args any) (string, error) {
	if s, ok := args.(string); ok {
		return s, nil
	}

	data, err := jsoniter.Marshal(args)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
