package objcli

// URLPathObjects is the root path component shared by all object/bucket requests.
const URLPathObjects = "objects"

// Query parameter keys understood by the cluster API.
const (
	// QueryArchpath addresses a single member inside an archive-format object.
	QueryArchpath = "archpath"

	// QueryArchregx filters archive members by the given expression, interpreted per 'QueryArchmode'.
	QueryArchregx = "archregx"

	// QueryArchmode selects how 'QueryArchregx' is matched, see 'ArchiveMode'.
	QueryArchmode = "archmode"

	// QueryETLName applies the named inline transform to the object content.
	QueryETLName = "etl_name"

	// QueryETLArgs carries the optional transform arguments, compact JSON for structured values.
	QueryETLArgs = "etl_args"

	// QueryLatest instructs the cluster to fetch the latest version from the associated remote bucket.
	QueryLatest = "latest-ver"

	// QuerySync instructs the cluster to synchronize the destination with the remote source when copying.
	QuerySync = "synchronize"

	// QueryAppendType selects the append operation, one of 'AppendModeAppend'/'AppendModeFlush'.
	QueryAppendType = "append_type"

	// QueryAppendHandle threads the opaque handle returned by the previous append call.
	QueryAppendHandle = "append_handle"

	// QueryObjTo is the canonical destination path of a copy operation.
	QueryObjTo = "obj_to"

	// QueryNewCustom instructs the cluster to replace, rather than merge, existing custom metadata.
	QueryNewCustom = "set-new-custom"

	// QueryUname carries the fully qualified object name used by direct addressing.
	QueryUname = "uname"

	// QueryMptUploadID identifies an in-progress multipart upload.
	QueryMptUploadID = "upload_id"

	// QueryMptPartNo is the 1-based number of a multipart upload part.
	QueryMptPartNo = "part_number"
)

// Append operation modes.
const (
	AppendModeAppend = "append"
	AppendModeFlush  = "flush"
)

// Action names used in action envelopes dispatched to the cluster.
const (
	ActionPromote      = "promote"
	ActionBlobDownload = "blob-download"
	ActionMptUpload    = "mpt-upload"
	ActionMptComplete  = "mpt-complete"
	ActionMptAbort     = "mpt-abort"
)

// Request/response header keys.
const (
	// HeaderRange requests a single byte range of the object.
	HeaderRange = "Range"

	// HeaderAppendHandle carries the handle for the next call of an append chain; absent once flushed.
	HeaderAppendHandle = "Ais-Append-Handle"

	// HeaderBlobDownload enables the tuned blob download mode for a read.
	HeaderBlobDownload = "Ais-Blob-Download"

	// HeaderBlobChunkSize hints the chunk size used by the blob downloader.
	HeaderBlobChunkSize = "Ais-Blob-Chunk"

	// HeaderBlobWorkers hints the number of concurrent blob-downloading workers.
	HeaderBlobWorkers = "Ais-Blob-Workers"
)

// DefaultChunkSize is the chunk size used when streaming object content and no explicit size was requested.
const DefaultChunkSize = 32 * 1024
