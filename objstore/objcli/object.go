package objcli

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/exp/maps"

	"github.com/aistools/ais-common/log"
	"github.com/aistools/ais-common/objstore/objval"
)

// Object represents a single named object in a bucket, bound to a request client.
//
// An object owns no connection state; it borrows the request client and bucket details for its whole lifetime.
// Objects are not safe for concurrent mutation of the cached props without external synchronization.
type Object struct {
	client RequestClient
	bucket *objval.BucketDetails
	name   string
	path   string

	// props is the lazily cached metadata snapshot, <nil> until a metadata-bearing response has been observed;
	// overwritten wholesale on each success, never merged.
	props *objval.ObjectProps
}

// NewObject creates a new object with the given name against the provided bucket.
func NewObject(client RequestClient, bucket *objval.BucketDetails, name string) *Object {
	return &Object{
		client: client,
		bucket: bucket,
		name:   name,
		path:   fmt.Sprintf("%s/%s/%s", URLPathObjects, bucket.Name, name),
	}
}

// Name returns the name of the object.
func (o *Object) Name() string {
	return o.name
}

// BucketName returns the name of the bucket containing the object.
func (o *Object) BucketName() string {
	return o.bucket.Name
}

// BucketProvider returns the provider backing the bucket containing the object.
func (o *Object) BucketProvider() objval.Provider {
	return o.bucket.Provider
}

// QueryParams returns the bucket scoped query parameters used as the base of every request.
func (o *Object) QueryParams() url.Values {
	return o.bucket.QueryParams
}

// Head requests the object metadata, overwriting the cached props on success.
func (o *Object) Head(ctx context.Context) (*objval.ObjectProps, error) {
	resp, err := o.client.Do(ctx, &Request{
		Method: http.MethodHead,
		Path:   o.path,
		Params: cloneParams(o.bucket.QueryParams),
	})
	if err != nil {
		return nil, err
	}

	defer resp.Close()

	o.props = objval.NewObjectPropsFromHeaders(resp.Headers)

	return o.props, nil
}

// Props returns the cached object metadata, issuing a 'Head' first if no metadata has been observed yet.
func (o *Object) Props(ctx context.Context) (*objval.ObjectProps, error) {
	if o.props != nil {
		return o.props, nil
	}

	return o.Head(ctx)
}

// PropsCached returns the cached object metadata, or <nil> without triggering any I/O.
func (o *Object) PropsCached() *objval.ObjectProps {
	return o.props
}

// GetReader creates a reader which lazily streams the object content.
//
// The underlying request is only issued once content/metadata is first requested, unless 'opts.Writer' is supplied
// in which case the content is synchronously drained into the writer before the reader is returned.
func (o *Object) GetReader(ctx context.Context, opts GetReaderOptions) (*ObjectReader, error) {
	if opts.ByteRange != "" && opts.BlobDownload != nil {
		return nil, ErrByteRangeAndBlobDownload
	}

	params := cloneParams(o.bucket.QueryParams)

	if opts.Archive != nil {
		params.Set(QueryArchpath, opts.Archive.ArchPath)
		params.Set(QueryArchregx, opts.Archive.Regex)
		params.Set(QueryArchmode, string(opts.Archive.Mode))
	}

	if err := applyETLParams(params, opts.ETL); err != nil {
		return nil, err
	}

	if opts.Latest {
		params.Set(QueryLatest, "true")
	}

	var (
		headers   = make(http.Header)
		byteRange *objval.ByteRange
	)

	if opts.BlobDownload != nil {
		headers.Set(HeaderBlobDownload, "true")

		if opts.BlobDownload.ChunkSize != "" {
			headers.Set(HeaderBlobChunkSize, opts.BlobDownload.ChunkSize)
		}

		if opts.BlobDownload.NumWorkers != "" {
			headers.Set(HeaderBlobWorkers, opts.BlobDownload.NumWorkers)
		}
	}

	if opts.ByteRange != "" {
		parsed, err := objval.ParseByteRange(opts.ByteRange)
		if err != nil {
			return nil, err
		}

		byteRange = parsed

		headers.Set(HeaderRange, opts.ByteRange)
	}

	var uname string
	if opts.Direct {
		uname = o.bucket.Path + o.name
	}

	objClient := &ObjectClient{
		client:    o.client,
		path:      o.path,
		params:    params,
		headers:   headers,
		byteRange: byteRange,
		uname:     uname,
	}

	reader := newObjectReader(ctx, objClient, opts.ChunkSize, func(props *objval.ObjectProps) { o.props = props })

	if opts.Writer != nil {
		if _, err := reader.WriteTo(opts.Writer); err != nil {
			return nil, err
		}
	}

	return reader, nil
}

// GetWriter returns a writer bound to the object's path/params; no request is issued.
func (o *Object) GetWriter() *ObjectWriter {
	return &ObjectWriter{
		client: o.client,
		path:   o.path,
		params: cloneParams(o.bucket.QueryParams),
	}
}

// GetURL returns the full URL of the object including any query parameters.
func (o *Object) GetURL(archpath string, etl *ETLConfig) (string, error) {
	params := cloneParams(o.bucket.QueryParams)

	if archpath != "" {
		params.Set(QueryArchpath, archpath)
	}

	if err := applyETLParams(params, etl); err != nil {
		return "", err
	}

	return o.client.FullURL(o.path, params), nil
}

// GetSemanticURL returns the location-independent identity of the object; the result is not fetchable.
func (o *Object) GetSemanticURL() string {
	return fmt.Sprintf("%s://%s/%s", o.bucket.Provider, o.bucket.Name, o.name)
}

// Copy copies the object onto the given destination, which may live in a different bucket.
//
// NOTE: Unless explicitly requested via the options, the copy neither fetches the latest remote version nor
// synchronizes with the remote source.
func (o *Object) Copy(ctx context.Context, dest *Object, opts CopyOptions) (*Response, error) {
	params := cloneParams(o.bucket.QueryParams)
	params.Set(QueryObjTo, dest.bucket.Path+dest.name)

	if err := applyETLParams(params, opts.ETL); err != nil {
		return nil, err
	}

	params.Set(QueryLatest, strconv.FormatBool(opts.Latest))
	params.Set(QuerySync, strconv.FormatBool(opts.Sync))

	resp, err := o.client.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   o.path,
		Params: params,
	})
	if err != nil {
		return nil, err
	}

	return resp, resp.Close()
}

// Promote ingests a file/directory resident on a cluster node's local filesystem into the bucket under the object's
// name; the request is dispatched against the bucket, not the object.
func (o *Object) Promote(ctx context.Context, sourcePath string, opts PromoteOptions) (*Response, error) {
	value := &PromoteArgs{
		TargetID:        opts.TargetID,
		SourcePath:      sourcePath,
		ObjectName:      o.name,
		Recursive:       opts.Recursive,
		OverwriteDest:   opts.OverwriteDest,
		DeleteSource:    opts.DeleteSource,
		SrcNotFileShare: opts.SrcNotFileShare,
	}

	resp, err := o.client.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("%s/%s", URLPathObjects, o.bucket.Name),
		Params: cloneParams(o.bucket.QueryParams),
		Value:  &ActionMessage{Action: ActionPromote, Name: sourcePath, Value: value},
	})
	if err != nil {
		return nil, err
	}

	return resp, resp.Close()
}

// BlobDownload triggers a cluster-side download of a large remote object, returning the ID of the job which may be
// used to track its progress.
func (o *Object) BlobDownload(ctx context.Context, opts BlobDownloadOptions) (string, error) {
	value := &BlobMessage{
		ChunkSize:  opts.ChunkSize,
		NumWorkers: opts.NumWorkers,
		Latest:     opts.Latest,
	}

	resp, err := o.client.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("%s/%s", URLPathObjects, o.bucket.Name),
		Params: cloneParams(o.bucket.QueryParams),
		Value:  &ActionMessage{Action: ActionBlobDownload, Name: o.name, Value: value},
	})
	if err != nil {
		return "", err
	}

	jobID, err := resp.Consume()
	if err != nil {
		return "", err
	}

	return string(jobID), nil
}

// Delete deletes the object from its bucket.
func (o *Object) Delete(ctx context.Context) error {
	resp, err := o.client.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   o.path,
		Params: cloneParams(o.bucket.QueryParams),
	})
	if err != nil {
		return err
	}

	return resp.Close()
}

// MultipartUpload returns a handle through which the object may be uploaded in parts.
func (o *Object) MultipartUpload() *MultipartUpload {
	return &MultipartUpload{client: o.client, path: o.path, params: cloneParams(o.bucket.QueryParams)}
}

// Get creates a reader which streams the object content.
//
// Deprecated: Use 'GetReader' instead.
func (o *Object) Get(ctx context.Context, opts GetReaderOptions) (*ObjectReader, error) {
	log.Warnf("(objcli) 'Get' is deprecated, use 'GetReader' instead")
	return o.GetReader(ctx, opts)
}

// PutContent puts the given bytes as the object's content.
//
// Deprecated: Use 'GetWriter().PutContent' instead.
func (o *Object) PutContent(ctx context.Context, content []byte) error {
	log.Warnf("(objcli) 'PutContent' is deprecated, use 'GetWriter' instead")
	return o.GetWriter().PutContent(ctx, content)
}

// PutFile puts the contents of the given local file as the object's content.
//
// Deprecated: Use 'GetWriter().PutFile' instead.
func (o *Object) PutFile(ctx context.Context, path string) error {
	log.Warnf("(objcli) 'PutFile' is deprecated, use 'GetWriter' instead")
	return o.GetWriter().PutFile(ctx, path)
}

// AppendContent appends the given bytes to the object, returning the handle to thread into the next append call.
//
// Deprecated: Use 'GetWriter().AppendContent' instead.
func (o *Object) AppendContent(ctx context.Context, content []byte, handle string, flush bool) (string, error) {
	log.Warnf("(objcli) 'AppendContent' is deprecated, use 'GetWriter' instead")
	return o.GetWriter().AppendContent(ctx, content, handle, flush)
}

// SetCustomProps assigns custom metadata to the object.
//
// Deprecated: Use 'GetWriter().SetCustomProps' instead.
func (o *Object) SetCustomProps(ctx context.Context, custom map[string]string, replaceExisting bool) error {
	log.Warnf("(objcli) 'SetCustomProps' is deprecated, use 'GetWriter' instead")
	return o.GetWriter().SetCustomProps(ctx, custom, replaceExisting)
}

// applyETLParams merges the given transform config into the provided query parameters.
func applyETLParams(params url.Values, etl *ETLConfig) error {
	if etl == nil {
		return nil
	}

	params.Set(QueryETLName, etl.Name)

	if etl.Args == nil {
		return nil
	}

	args, err := marshalETLArgs(etl.Args)
	if err != nil {
		return err
	}

	params.Set(QueryETLArgs, args)

	return nil
}

// cloneParams copies the given base parameters so per-call keys may be overlaid without mutating the bucket scoped
// mapping.
func cloneParams(base url.Values) url.Values {
	if base == nil {
		return make(url.Values)
	}

	return maps.Clone(base)
}
