package objcli

import "io"

// ArchiveMode selects how the archive member expression is matched.
type ArchiveMode string

const (
	// ArchiveModeRegexp treats the expression as a regular expression.
	ArchiveModeRegexp ArchiveMode = "regexp"

	// ArchiveModePrefix matches members whose name starts with the expression.
	ArchiveModePrefix ArchiveMode = "prefix"

	// ArchiveModeSubstr matches members whose name contains the expression.
	ArchiveModeSubstr ArchiveMode = "substr"

	// ArchiveModeWDSKey matches members by their WebDataset key.
	ArchiveModeWDSKey ArchiveMode = "wdskey"
)

// ArchiveConfig addresses content inside an archive-format object (tar/tgz/zip).
type ArchiveConfig struct {
	// ArchPath extracts the single member with the given path.
	ArchPath string

	// Regex selects members matching the given expression, interpreted per 'Mode'.
	Regex string

	// Mode selects how 'Regex' is matched.
	Mode ArchiveMode
}

// ETLConfig names an inline transform applied to object content by the cluster.
type ETLConfig struct {
	// Name is the name of the transform.
	Name string

	// Args are optional transform arguments; a string is passed through unchanged, anything structured is
	// serialized as compact JSON.
	Args any
}

// BlobDownloadConfig tunes the cluster-side blob download machinery for a read.
type BlobDownloadConfig struct {
	// ChunkSize is the chunk size hint, e.g. "4mb".
	ChunkSize string

	// NumWorkers is the number of concurrent blob-downloading workers.
	NumWorkers string
}

// GetReaderOptions encapsulates the options available when creating an object reader.
type GetReaderOptions struct {
	// Archive addresses content inside an archive-format object.
	Archive *ArchiveConfig

	// ChunkSize bounds the size of the chunks produced when streaming, defaults to 'DefaultChunkSize'.
	ChunkSize int

	// ETL applies the named inline transform to the returned content.
	ETL *ETLConfig

	// Writer, when non-nil, is synchronously drained with the object content before the reader is returned.
	//
	// NOTE: The caller remains responsible for closing the writer.
	Writer io.Writer

	// BlobDownload enables the tuned blob download read mode; mutually exclusive with 'ByteRange'.
	BlobDownload *BlobDownloadConfig

	// ByteRange requests a single byte range in the HTTP range header format, e.g. "bytes=100-200"; mutually
	// exclusive with 'BlobDownload'.
	ByteRange string

	// Latest fetches the latest object version from the associated remote bucket.
	Latest bool

	// Direct addresses the object by its fully qualified name, bypassing bucket-relative addressing.
	Direct bool
}

// CopyOptions encapsulates the options available when copying an object.
type CopyOptions struct {
	// ETL transforms the content whilst copying.
	ETL *ETLConfig

	// Latest fetches the latest source version from the associated remote bucket before copying.
	Latest bool

	// Sync synchronizes the destination with the remote source.
	Sync bool
}

// PromoteOptions encapsulates the options available when promoting cluster-resident files.
type PromoteOptions struct {
	// TargetID promotes files from the given target node only.
	TargetID string

	// Recursive promotes files in nested directories.
	Recursive bool

	// OverwriteDest overwrites objects which already exist in the bucket.
	OverwriteDest bool

	// DeleteSource removes the source files once promoted.
	DeleteSource bool

	// SrcNotFileShare optimizes promotion when the source is guaranteed not to be on a file share.
	SrcNotFileShare bool
}

// BlobDownloadOptions encapsulates the options available when triggering a blob download job.
type BlobDownloadOptions struct {
	// ChunkSize is the chunk size in bytes, omitted when <nil>.
	ChunkSize *int64

	// NumWorkers is the number of concurrent blob-downloading workers, omitted when <nil>.
	NumWorkers *int

	// Latest fetches the latest object version from the associated remote bucket.
	Latest bool
}
