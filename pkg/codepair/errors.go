package codepair

import (
	"errors"
	"fmt"
)

// Sentinel errors usable with errors.Is against any of the typed errors
// below, following the pattern the XDR encoder in this codebase's lineage
// uses: a small closed set of sentinels plus richer typed wrappers that
// answer Is() against them.
var (
	ErrUnexpectedEOF       = errors.New("codepair: unexpected end of input")
	ErrMalformedPair       = errors.New("codepair: malformed pair")
	ErrExtensionDataTooDeep = errors.New("codepair: extension data nested too deep")
	ErrUnsupportedVersion  = errors.New("codepair: unsupported version")
	ErrInvalidThumbnail    = errors.New("codepair: invalid thumbnail")
)

// IOError wraps an underlying stream I/O failure.
type IOError struct {
	Err error
}

func (e IOError) Error() string { return fmt.Sprintf("codepair: io error: %v", e.Err) }
func (e IOError) Unwrap() error { return e.Err }

// InvalidEncoding reports a bad sentinel, bad code, truncated binary value,
// or invalid UTF-8, at a specific byte offset.
type InvalidEncoding struct {
	Offset int64
	Detail string
}

func (e InvalidEncoding) Error() string {
	return fmt.Sprintf("codepair: invalid encoding at offset %d: %s", e.Offset, e.Detail)
}

// UnexpectedEOF is returned when the stream ends inside a frame that
// requires more data (e.g. mid code-pair, mid binary value).
type UnexpectedEOF struct {
	Offset  int64
	Context string
}

func (e UnexpectedEOF) Error() string {
	return fmt.Sprintf("codepair: unexpected EOF at offset %d (%s)", e.Offset, e.Context)
}

func (e UnexpectedEOF) Is(target error) bool { return target == ErrUnexpectedEOF }

// MalformedPair reports a code/value-class mismatch, e.g. a non-numeric
// value line for a double code.
type MalformedPair struct {
	Offset  int64
	Code    int
	Excerpt string
}

func (e MalformedPair) Error() string {
	return fmt.Sprintf("codepair: malformed pair at offset %d (code %d): %q", e.Offset, e.Code, e.Excerpt)
}

func (e MalformedPair) Is(target error) bool { return target == ErrMalformedPair }

// WrongValueType is a programmer-error signal: the caller asked for a Kind
// the Pair does not hold.
type WrongValueType struct {
	Expected, Actual Kind
}

func (e WrongValueType) Error() string {
	return fmt.Sprintf("codepair: wrong value type: expected %s, got %s", e.Expected, e.Actual)
}

// UnexpectedEnumValue is only ever surfaced when the caller has explicitly
// disabled fallback-on-unknown for the given enum (non-default).
type UnexpectedEnumValue struct {
	Enum  string
	Value int64
}

func (e UnexpectedEnumValue) Error() string {
	return fmt.Sprintf("codepair: unexpected value %d for enum %s", e.Value, e.Enum)
}

// ExtensionDataTooDeep is returned when an extension-data group nests more
// than 16 levels deep.
type ExtensionDataTooDeep struct {
	Offset int64
}

func (e ExtensionDataTooDeep) Error() string {
	return fmt.Sprintf("codepair: extension data too deep at offset %d", e.Offset)
}

func (e ExtensionDataTooDeep) Is(target error) bool { return target == ErrExtensionDataTooDeep }

// UnsupportedVersion is returned when a drawing or pair stream names a
// version this library does not know how to encode/decode.
type UnsupportedVersion struct {
	Version string
}

func (e UnsupportedVersion) Error() string {
	return fmt.Sprintf("codepair: unsupported version %q", e.Version)
}

func (e UnsupportedVersion) Is(target error) bool { return target == ErrUnsupportedVersion }

// InvalidThumbnail is non-fatal: callers that encounter it while reading a
// drawing drop the thumbnail and continue (see pkg/thumbnail and
// pkg/drawing), reporting it through the Diagnostics sink instead of failing
// the read.
type InvalidThumbnail struct {
	Detail string
}

func (e InvalidThumbnail) Error() string {
	return fmt.Sprintf("codepair: invalid thumbnail: %s", e.Detail)
}

func (e InvalidThumbnail) Is(target error) bool { return target == ErrInvalidThumbnail }
