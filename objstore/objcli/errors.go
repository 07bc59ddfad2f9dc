package objcli

import "errors"

// ErrByteRangeAndBlobDownload is returned when a read supplies both a byte range and a blob download config; the two
// read modes are mutually exclusive.
var ErrByteRangeAndBlobDownload = errors.New("byte range and blob download are mutually exclusive")

// ErrNotARegularFile is returned when the path given to 'PutFile' exists but is not a regular file.
var ErrNotARegularFile = errors.New("not a regular file")

// ErrMultipartUploadNotCreated is returned when parts are added/completed against a multipart upload which hasn't
// been created yet.
var ErrMultipartUploadNotCreated = errors.New("multipart upload not created")

// ErrInvalidPartNumber is returned when a multipart part number is not a positive integer.
var ErrInvalidPartNumber = errors.New("part number must be a positive integer")
