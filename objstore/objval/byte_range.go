package objval

import (
	"fmt"
	"strconv"
	"strings"
)

// rangePrefix is the units prefix of a range specifier as defined by RFC 7233 section 2.1.
const rangePrefix = "bytes="

// InvalidByteRangeError is returned when a byte range specifier could not be parsed or is invalid for some reason.
type InvalidByteRangeError struct {
	Spec string
}

func (e *InvalidByteRangeError) Error() string {
	return fmt.Sprintf("invalid byte range %q", e.Spec)
}

// ByteRange represents a single byte range of an object, parsed from the HTTP range header format.
//
// The three valid shapes are 'bytes=<start>-<end>' (closed), 'bytes=<start>-' (open ended) and 'bytes=-<length>'
// (suffix), <nil> fields indicate the omitted bound.
type ByteRange struct {
	Start *int64
	End   *int64
}

// ParseByteRange parses the given range specifier into a 'ByteRange', returning an 'InvalidByteRangeError' for
// anything which isn't one of the three valid shapes.
func ParseByteRange(spec string) (*ByteRange, error) {
	if !strings.HasPrefix(spec, rangePrefix) {
		return nil, &InvalidByteRangeError{Spec: spec}
	}

	start, end, found := strings.Cut(strings.TrimPrefix(spec, rangePrefix), "-")
	if !found || (start == "" && end == "") {
		return nil, &InvalidByteRangeError{Spec: spec}
	}

	br := &ByteRange{}

	if start != "" {
		parsed, err := strconv.ParseInt(start, 10, 64)
		if err != nil || parsed < 0 {
			return nil, &InvalidByteRangeError{Spec: spec}
		}

		br.Start = &parsed
	}

	if end != "" {
		parsed, err := strconv.ParseInt(end, 10, 64)
		if err != nil || parsed < 0 {
			return nil, &InvalidByteRangeError{Spec: spec}
		}

		br.End = &parsed
	}

	if br.Start != nil && br.End != nil && *br.End < *br.Start {
		return nil, &InvalidByteRangeError{Spec: spec}
	}

	return br, nil
}

// ToRangeHeader returns the range in the HTTP range header format.
func (b *ByteRange) ToRangeHeader() string {
	var start, end string

	if b.Start != nil {
		start = strconv.FormatInt(*b.Start, 10)
	}

	if b.End != nil {
		end = strconv.FormatInt(*b.End, 10)
	}

	return rangePrefix + start + "-" + end
}
